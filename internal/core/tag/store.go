package tag

import (
	"context"

	"github.com/google/uuid"

	"github.com/shelfmark/shelfmark/internal/catalog/query"
)

type Repository interface {
	ListTags(context context.Context, ownerID uuid.UUID, plan *query.Plan) ([]*Tag, int, error)
	TrashedTags(context context.Context, ownerID uuid.UUID) ([]*Tag, error)
	GetTag(context context.Context, ownerID uuid.UUID, id int64) (*Tag, error)
	CreateTag(context context.Context, ownerID uuid.UUID, tag *Tag) error
	UpdateTag(context context.Context, ownerID uuid.UUID, tag *Tag) error
}
