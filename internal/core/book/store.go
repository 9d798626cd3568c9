package book

import (
	"context"

	"github.com/google/uuid"

	"github.com/shelfmark/shelfmark/internal/catalog/query"
)

type Repository interface {
	ListBooks(context context.Context, ownerID uuid.UUID, plan *query.Plan) ([]*Book, int, error)
	TrashedBooks(context context.Context, ownerID uuid.UUID) ([]*Book, error)
	GetBook(context context.Context, ownerID uuid.UUID, id int64) (*Book, error)
	CreateBook(context context.Context, ownerID uuid.UUID, book *Book) error
	UpdateBook(context context.Context, ownerID uuid.UUID, book *Book) error
}
