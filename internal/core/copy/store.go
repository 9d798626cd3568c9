package copy

import (
	"context"

	"github.com/google/uuid"

	"github.com/shelfmark/shelfmark/internal/catalog/query"
)

// Repository defines the storage operations for copies.
type Repository interface {
	ListCopies(context context.Context, ownerID uuid.UUID, plan *query.Plan) ([]*Copy, int, error)
	TrashedCopies(context context.Context, ownerID uuid.UUID) ([]*Copy, error)
	GetCopy(context context.Context, ownerID uuid.UUID, id int64) (*Copy, error)
	CreateCopy(context context.Context, ownerID uuid.UUID, copy *Copy) error
	UpdateCopy(context context.Context, ownerID uuid.UUID, copy *Copy) error
}
