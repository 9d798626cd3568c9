package publisher

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

func (service *Service) ListPublishers(context context.Context, ownerID uuid.UUID, plan *query.Plan) ([]*Publisher, int, error) {
	return service.repo.ListPublishers(context, ownerID, plan)
}

func (service *Service) TrashedPublishers(context context.Context, ownerID uuid.UUID) ([]*Publisher, error) {
	return service.repo.TrashedPublishers(context, ownerID)
}

func (service *Service) GetPublisher(context context.Context, ownerID uuid.UUID, id int64) (*Publisher, error) {
	return service.repo.GetPublisher(context, ownerID, id)
}

func (service *Service) CreatePublisher(context context.Context, ownerID uuid.UUID, publisher *Publisher) error {
	if err := validatePublisher(publisher); err != nil {
		return err
	}

	if err := service.repo.CreatePublisher(context, ownerID, publisher); err != nil {
		return err
	}

	service.logger.Info("publisher_created", slog.String("name", publisher.Name))
	return nil
}

func (service *Service) UpdatePublisher(context context.Context, ownerID uuid.UUID, id int64, publisher *Publisher) error {
	publisher.ID = id
	if err := validatePublisher(publisher); err != nil {
		return err
	}

	if err := service.repo.UpdatePublisher(context, ownerID, publisher); err != nil {
		return err
	}

	service.logger.Info("publisher_updated", slog.Int64("publisher_id", publisher.ID))
	return nil
}

func (service *Service) DeletePublisher(context context.Context, ownerID uuid.UUID, id int64) error {
	if err := service.lifecycle.SoftDelete(context, definition, ownerID, id); err != nil {
		return err
	}

	service.logger.Warn("publisher_trashed", slog.Int64("publisher_id", id))
	return nil
}

func (service *Service) RestorePublisher(context context.Context, ownerID uuid.UUID, id int64, mode lifecycle.Mode) (lifecycle.Outcome, error) {
	outcome, err := service.lifecycle.Restore(context, definition, ownerID, id, mode)
	if err != nil {
		return lifecycle.Outcome{}, err
	}
	if !outcome.Restored {
		return lifecycle.Outcome{}, apperr.Conflict(outcome.Reason)
	}
	return outcome, nil
}

func (service *Service) RestorePublishers(context context.Context, ownerID uuid.UUID, ids []int64, mode lifecycle.Mode) (lifecycle.BatchOutcome, error) {
	return service.lifecycle.RestoreBatch(context, definition, ownerID, ids, mode)
}

func (service *Service) PurgePublisher(context context.Context, ownerID uuid.UUID, id int64) error {
	if err := service.lifecycle.Purge(context, definition, ownerID, id); err != nil {
		return err
	}

	service.logger.Warn("publisher_purged", slog.Int64("publisher_id", id))
	return nil
}

func (service *Service) ResolvePublisher(context context.Context, ownerID uuid.UUID, id *int64, name *string, includeTrashed bool) (*int64, error) {
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
		return nil, apperr.Mismatch("The id and name do not refer to the same publisher")
	case resolution.Multiple:
		return nil, apperr.MultipleMatches("More than one publisher matches this name")
	default:
		return resolution.ID, nil
	}
}

func validatePublisher(publisher *Publisher) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, publisher.Name).MaxLen(FieldName, publisher.Name, 200)
	if publisher.City != nil {
		validator.MaxLen(FieldCity, *publisher.City, 120)
	}
	if publisher.Website != nil && *publisher.Website != "" {
		validator.URL(FieldWebsite, *publisher.Website)
	}

	return validator.Err()
}
