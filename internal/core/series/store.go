package series

import (
	"context"

	"github.com/google/uuid"

	"github.com/shelfmark/shelfmark/internal/catalog/query"
)

type Repository interface {
	ListSeries(context context.Context, ownerID uuid.UUID, plan *query.Plan) ([]*Series, int, error)
	TrashedSeries(context context.Context, ownerID uuid.UUID) ([]*Series, error)
	GetSeries(context context.Context, ownerID uuid.UUID, id int64) (*Series, error)
	CreateSeries(context context.Context, ownerID uuid.UUID, series *Series) error
	UpdateSeries(context context.Context, ownerID uuid.UUID, series *Series) error
}
