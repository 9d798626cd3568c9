package series

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

func (service *Service) ListSeries(context context.Context, ownerID uuid.UUID, plan *query.Plan) ([]*Series, int, error) {
	return service.repo.ListSeries(context, ownerID, plan)
}

func (service *Service) TrashedSeries(context context.Context, ownerID uuid.UUID) ([]*Series, error) {
	return service.repo.TrashedSeries(context, ownerID)
}

func (service *Service) GetSeries(context context.Context, ownerID uuid.UUID, id int64) (*Series, error) {
	return service.repo.GetSeries(context, ownerID, id)
}

func (service *Service) CreateSeries(context context.Context, ownerID uuid.UUID, series *Series) error {
	if err := validateSeries(series); err != nil {
		return err
	}

	if err := service.repo.CreateSeries(context, ownerID, series); err != nil {
		return err
	}

	service.logger.Info("series_created", slog.String("name", series.Name))
	return nil
}

func (service *Service) UpdateSeries(context context.Context, ownerID uuid.UUID, id int64, series *Series) error {
	series.ID = id
	if err := validateSeries(series); err != nil {
		return err
	}

	if err := service.repo.UpdateSeries(context, ownerID, series); err != nil {
		return err
	}

	service.logger.Info("series_updated", slog.Int64("series_id", series.ID))
	return nil
}

func (service *Service) DeleteSeries(context context.Context, ownerID uuid.UUID, id int64) error {
	if err := service.lifecycle.SoftDelete(context, definition, ownerID, id); err != nil {
		return err
	}

	service.logger.Warn("series_trashed", slog.Int64("series_id", id))
	return nil
}

func (service *Service) RestoreSeries(context context.Context, ownerID uuid.UUID, id int64, mode lifecycle.Mode) (lifecycle.Outcome, error) {
	outcome, err := service.lifecycle.Restore(context, definition, ownerID, id, mode)
	if err != nil {
		return lifecycle.Outcome{}, err
	}
	if !outcome.Restored {
		return lifecycle.Outcome{}, apperr.Conflict(outcome.Reason)
	}
	return outcome, nil
}

func (service *Service) RestoreSeriesBatch(context context.Context, ownerID uuid.UUID, ids []int64, mode lifecycle.Mode) (lifecycle.BatchOutcome, error) {
	return service.lifecycle.RestoreBatch(context, definition, ownerID, ids, mode)
}

func (service *Service) PurgeSeries(context context.Context, ownerID uuid.UUID, id int64) error {
	if err := service.lifecycle.Purge(context, definition, ownerID, id); err != nil {
		return err
	}

	service.logger.Warn("series_purged", slog.Int64("series_id", id))
	return nil
}

func (service *Service) ResolveSeries(context context.Context, ownerID uuid.UUID, id *int64, name *string, includeTrashed bool) (*int64, error) {
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
		return nil, apperr.Mismatch("The id and name do not refer to the same series")
	case resolution.Multiple:
		return nil, apperr.MultipleMatches("More than one series matches this name")
	default:
		return resolution.ID, nil
	}
}

func validateSeries(series *Series) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, series.Name).MaxLen(FieldName, series.Name, 100)
	if series.Description != nil {
		validator.MaxLen(FieldDescription, *series.Description, 1000)
	}

	return validator.Err()
}
