package booktype

import (
	"context"

	"github.com/google/uuid"

	"github.com/shelfmark/shelfmark/internal/catalog/query"
)

type Repository interface {
	ListBookTypes(context context.Context, ownerID uuid.UUID, plan *query.Plan) ([]*BookType, int, error)
	TrashedBookTypes(context context.Context, ownerID uuid.UUID) ([]*BookType, error)
	GetBookType(context context.Context, ownerID uuid.UUID, id int64) (*BookType, error)
	CreateBookType(context context.Context, ownerID uuid.UUID, bookType *BookType) error
	UpdateBookType(context context.Context, ownerID uuid.UUID, bookType *BookType) error
}
