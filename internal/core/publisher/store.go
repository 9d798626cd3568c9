package publisher

import (
	"context"

	"github.com/google/uuid"

	"github.com/shelfmark/shelfmark/internal/catalog/query"
)

type Repository interface {
	ListPublishers(context context.Context, ownerID uuid.UUID, plan *query.Plan) ([]*Publisher, int, error)
	TrashedPublishers(context context.Context, ownerID uuid.UUID) ([]*Publisher, error)
	GetPublisher(context context.Context, ownerID uuid.UUID, id int64) (*Publisher, error)
	CreatePublisher(context context.Context, ownerID uuid.UUID, publisher *Publisher) error
	UpdatePublisher(context context.Context, ownerID uuid.UUID, publisher *Publisher) error
}
