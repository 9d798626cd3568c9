package booktype

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

func (service *Service) ListBookTypes(context context.Context, ownerID uuid.UUID, plan *query.Plan) ([]*BookType, int, error) {
	return service.repo.ListBookTypes(context, ownerID, plan)
}

func (service *Service) TrashedBookTypes(context context.Context, ownerID uuid.UUID) ([]*BookType, error) {
	return service.repo.TrashedBookTypes(context, ownerID)
}

func (service *Service) GetBookType(context context.Context, ownerID uuid.UUID, id int64) (*BookType, error) {
	return service.repo.GetBookType(context, ownerID, id)
}

func (service *Service) CreateBookType(context context.Context, ownerID uuid.UUID, bookType *BookType) error {
	if err := validateBookType(bookType); err != nil {
		return err
	}

	if err := service.repo.CreateBookType(context, ownerID, bookType); err != nil {
		return err
	}

	service.logger.Info("booktype_created", slog.String("name", bookType.Name))
	return nil
}

func (service *Service) UpdateBookType(context context.Context, ownerID uuid.UUID, id int64, bookType *BookType) error {
	bookType.ID = id
	if err := validateBookType(bookType); err != nil {
		return err
	}

	if err := service.repo.UpdateBookType(context, ownerID, bookType); err != nil {
		return err
	}

	service.logger.Info("booktype_updated", slog.Int64("booktype_id", bookType.ID))
	return nil
}

func (service *Service) DeleteBookType(context context.Context, ownerID uuid.UUID, id int64) error {
	if err := service.lifecycle.SoftDelete(context, definition, ownerID, id); err != nil {
		return err
	}

	service.logger.Warn("booktype_trashed", slog.Int64("booktype_id", id))
	return nil
}

func (service *Service) RestoreBookType(context context.Context, ownerID uuid.UUID, id int64, mode lifecycle.Mode) (lifecycle.Outcome, error) {
	outcome, err := service.lifecycle.Restore(context, definition, ownerID, id, mode)
	if err != nil {
		return lifecycle.Outcome{}, err
	}
	if !outcome.Restored {
		return lifecycle.Outcome{}, apperr.Conflict(outcome.Reason)
	}
	return outcome, nil
}

func (service *Service) RestoreBookTypes(context context.Context, ownerID uuid.UUID, ids []int64, mode lifecycle.Mode) (lifecycle.BatchOutcome, error) {
	return service.lifecycle.RestoreBatch(context, definition, ownerID, ids, mode)
}

func (service *Service) PurgeBookType(context context.Context, ownerID uuid.UUID, id int64) error {
	if err := service.lifecycle.Purge(context, definition, ownerID, id); err != nil {
		return err
	}

	service.logger.Warn("booktype_purged", slog.Int64("booktype_id", id))
	return nil
}

func (service *Service) ResolveBookType(context context.Context, ownerID uuid.UUID, id *int64, name *string, includeTrashed bool) (*int64, error) {
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
		return nil, apperr.Mismatch("The id and name do not refer to the same book type")
	case resolution.Multiple:
		return nil, apperr.MultipleMatches("More than one book type matches this name")
	default:
		return resolution.ID, nil
	}
}

func validateBookType(bookType *BookType) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, bookType.Name).MaxLen(FieldName, bookType.Name, 100)
	if bookType.Description != nil {
		validator.MaxLen(FieldDescription, *bookType.Description, 1000)
	}

	return validator.Err()
}
