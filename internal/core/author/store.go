package author

import (
	"context"

	"github.com/google/uuid"

	"github.com/shelfmark/shelfmark/internal/catalog/query"
)

type Repository interface {
	ListAuthors(context context.Context, ownerID uuid.UUID, plan *query.Plan) ([]*Author, int, error)
	TrashedAuthors(context context.Context, ownerID uuid.UUID) ([]*Author, error)
	GetAuthor(context context.Context, ownerID uuid.UUID, id int64) (*Author, error)
	CreateAuthor(context context.Context, ownerID uuid.UUID, author *Author) error
	UpdateAuthor(context context.Context, ownerID uuid.UUID, author *Author) error
}
