package location

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/shelfmark/shelfmark/internal/catalog/lifecycle"
	"github.com/shelfmark/shelfmark/internal/catalog/query"
	"github.com/shelfmark/shelfmark/internal/catalog/resolve"
	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/validate"
)

type Service struct {
	repo      Repository
	lifecycle *lifecycle.Manager
	resolver  *resolve.Resolver
	logger    *slog.Logger
}

func NewService(repo Repository, manager *lifecycle.Manager, resolver *resolve.Resolver, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		lifecycle: manager,
		resolver:  resolver,
		logger:    logger,
	}
}

func (service *Service) ListLocations(context context.Context, ownerID uuid.UUID, plan *query.Plan) ([]*Location, int, error) {
	return service.repo.ListLocations(context, ownerID, plan)
}

func (service *Service) TrashedLocations(context context.Context, ownerID uuid.UUID) ([]*Location, error) {
	return service.repo.TrashedLocations(context, ownerID)
}

func (service *Service) GetLocation(context context.Context, ownerID uuid.UUID, id int64) (*Location, error) {
	return service.repo.GetLocation(context, ownerID, id)
}

func (service *Service) CreateLocation(context context.Context, ownerID uuid.UUID, location *Location) error {
	if err := validateLocation(location); err != nil {
		return err
	}

	if err := service.repo.CreateLocation(context, ownerID, location); err != nil {
		return err
	}

	service.logger.Info("location_created", slog.String("name", location.Name))
	return nil
}

func (service *Service) UpdateLocation(context context.Context, ownerID uuid.UUID, id int64, location *Location) error {
	location.ID = id
	if err := validateLocation(location); err != nil {
		return err
	}

	if err := service.repo.UpdateLocation(context, ownerID, location); err != nil {
		return err
	}

	service.logger.Info("location_updated", slog.Int64("location_id", location.ID))
	return nil
}

func (service *Service) DeleteLocation(context context.Context, ownerID uuid.UUID, id int64) error {
	if err := service.lifecycle.SoftDelete(context, definition, ownerID, id); err != nil {
		return err
	}

	service.logger.Warn("location_trashed", slog.Int64("location_id", id))
	return nil
}

func (service *Service) RestoreLocation(context context.Context, ownerID uuid.UUID, id int64, mode lifecycle.Mode) (lifecycle.Outcome, error) {
	outcome, err := service.lifecycle.Restore(context, definition, ownerID, id, mode)
	if err != nil {
		return lifecycle.Outcome{}, err
	}
	if !outcome.Restored {
		return lifecycle.Outcome{}, apperr.Conflict(outcome.Reason)
	}
	return outcome, nil
}

func (service *Service) RestoreLocations(context context.Context, ownerID uuid.UUID, ids []int64, mode lifecycle.Mode) (lifecycle.BatchOutcome, error) {
	return service.lifecycle.RestoreBatch(context, definition, ownerID, ids, mode)
}

func (service *Service) PurgeLocation(context context.Context, ownerID uuid.UUID, id int64) error {
	if err := service.lifecycle.Purge(context, definition, ownerID, id); err != nil {
		return err
	}

	service.logger.Warn("location_purged", slog.Int64("location_id", id))
	return nil
}

func (service *Service) ResolveLocation(context context.Context, ownerID uuid.UUID, id *int64, name *string, includeTrashed bool) (*int64, error) {
	resolution, err := service.resolver.Resolve(context, ownerID, resolveTarget, resolve.Input{
		ID:             id,
		Key:            name,
		IncludeTrashed: includeTrashed,
	})
	if err != nil {
		return nil, err
	}

	switch {
	case resolution.Mismatch:
		return nil, apperr.Mismatch("The id and name do not refer to the same location")
	case resolution.Multiple:
		return nil, apperr.MultipleMatches("More than one location matches this name")
	default:
		return resolution.ID, nil
	}
}

func validateLocation(location *Location) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, location.Name).MaxLen(FieldName, location.Name, 100)
	if location.Description != nil {
		validator.MaxLen(FieldDescription, *location.Description, 1000)
	}

	return validator.Err()
}
