package copy

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

func (service *Service) ListCopies(context context.Context, ownerID uuid.UUID, plan *query.Plan) ([]*Copy, int, error) {
	return service.repo.ListCopies(context, ownerID, plan)
}

func (service *Service) TrashedCopies(context context.Context, ownerID uuid.UUID) ([]*Copy, error) {
	return service.repo.TrashedCopies(context, ownerID)
}

func (service *Service) GetCopy(context context.Context, ownerID uuid.UUID, id int64) (*Copy, error) {
	return service.repo.GetCopy(context, ownerID, id)
}

func (service *Service) CreateCopy(context context.Context, ownerID uuid.UUID, copy *Copy) error {
	if err := validateCopy(copy); err != nil {
		return err
	}

	if err := service.repo.CreateCopy(context, ownerID, copy); err != nil {
		return err
	}

	service.logger.Info("copy_created", slog.String("code", copy.Code))
	return nil
}

func (service *Service) UpdateCopy(context context.Context, ownerID uuid.UUID, id int64, copy *Copy) error {
	copy.ID = id
	if err := validateCopy(copy); err != nil {
		return err
	}

	if err := service.repo.UpdateCopy(context, ownerID, copy); err != nil {
		return err
	}

	service.logger.Info("copy_updated", slog.Int64("copy_id", copy.ID))
	return nil
}

func (service *Service) DeleteCopy(context context.Context, ownerID uuid.UUID, id int64) error {
	if err := service.lifecycle.SoftDelete(context, definition, ownerID, id); err != nil {
		return err
	}

	service.logger.Warn("copy_trashed", slog.Int64("copy_id", id))
	return nil
}

func (service *Service) RestoreCopy(context context.Context, ownerID uuid.UUID, id int64, mode lifecycle.Mode) (lifecycle.Outcome, error) {
	outcome, err := service.lifecycle.Restore(context, definition, ownerID, id, mode)
	if err != nil {
		return lifecycle.Outcome{}, err
	}
	if !outcome.Restored {
		return lifecycle.Outcome{}, apperr.Conflict(outcome.Reason)
	}
	return outcome, nil
}

func (service *Service) RestoreCopies(context context.Context, ownerID uuid.UUID, ids []int64, mode lifecycle.Mode) (lifecycle.BatchOutcome, error) {
	return service.lifecycle.RestoreBatch(context, definition, ownerID, ids, mode)
}

func (service *Service) PurgeCopy(context context.Context, ownerID uuid.UUID, id int64) error {
	if err := service.lifecycle.Purge(context, definition, ownerID, id); err != nil {
		return err
	}

	service.logger.Warn("copy_purged", slog.Int64("copy_id", id))
	return nil
}

// ResolveCopy maps an id and/or shelf code to a single copy id. A nil
// result with nil error means nothing matched.
func (service *Service) ResolveCopy(context context.Context, ownerID uuid.UUID, id *int64, code *string, includeTrashed bool) (*int64, error) {
	resolution, err := service.resolver.Resolve(context, ownerID, resolveTarget, resolve.Input{
		ID:             id,
		Key:            code,
		IncludeTrashed: includeTrashed,
	})
	if err != nil {
		return nil, err
	}

	switch {
	case resolution.Mismatch:
		return nil, apperr.Mismatch("The id and code do not refer to the same copy")
	case resolution.Multiple:
		return nil, apperr.MultipleMatches("More than one copy matches this code")
	default:
		return resolution.ID, nil
	}
}

func validateCopy(copy *Copy) error {
	validator := &validate.Validator{}

	validator.Required(FieldCode, copy.Code).MaxLen(FieldCode, copy.Code, 60)
	if copy.AcquiredOn != nil && *copy.AcquiredOn != "" {
		validator.PartialDate(FieldAcquiredOn, *copy.AcquiredOn)
	}
	if copy.PriceCents != nil {
		validator.NonNegative(FieldPriceCents, *copy.PriceCents)
	}
	if copy.Condition != nil {
		validator.MaxLen(FieldCondition, *copy.Condition, 60)
	}
	if copy.Notes != nil {
		validator.MaxLen(FieldNotes, *copy.Notes, 4000)
	}

	return validator.Err()
}
