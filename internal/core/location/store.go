package location

import (
	"context"

	"github.com/google/uuid"

	"github.com/shelfmark/shelfmark/internal/catalog/query"
)

type Repository interface {
	ListLocations(context context.Context, ownerID uuid.UUID, plan *query.Plan) ([]*Location, int, error)
	TrashedLocations(context context.Context, ownerID uuid.UUID) ([]*Location, error)
	GetLocation(context context.Context, ownerID uuid.UUID, id int64) (*Location, error)
	CreateLocation(context context.Context, ownerID uuid.UUID, location *Location) error
	UpdateLocation(context context.Context, ownerID uuid.UUID, location *Location) error
}
