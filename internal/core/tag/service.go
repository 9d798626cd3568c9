package tag

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/shelfmark/shelfmark/internal/catalog/lifecycle"
	"github.com/shelfmark/shelfmark/internal/catalog/query"
	"github.com/shelfmark/shelfmark/internal/catalog/resolve"
	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/validate"
	"github.com/shelfmark/shelfmark/pkg/slug"
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

func (service *Service) ListTags(context context.Context, ownerID uuid.UUID, plan *query.Plan) ([]*Tag, int, error) {
	return service.repo.ListTags(context, ownerID, plan)
}

func (service *Service) TrashedTags(context context.Context, ownerID uuid.UUID) ([]*Tag, error) {
	return service.repo.TrashedTags(context, ownerID)
}

func (service *Service) GetTag(context context.Context, ownerID uuid.UUID, id int64) (*Tag, error) {
	return service.repo.GetTag(context, ownerID, id)
}

func (service *Service) CreateTag(context context.Context, ownerID uuid.UUID, tag *Tag) error {
	if err := validateTag(tag); err != nil {
		return err
	}
	tag.Slug = slug.From(tag.Name)

	if err := service.repo.CreateTag(context, ownerID, tag); err != nil {
		return err
	}

	service.logger.Info("tag_created", slog.String("name", tag.Name), slog.String("slug", tag.Slug))
	return nil
}

func (service *Service) UpdateTag(context context.Context, ownerID uuid.UUID, id int64, tag *Tag) error {
	tag.ID = id
	if err := validateTag(tag); err != nil {
		return err
	}
	tag.Slug = slug.From(tag.Name)

	if err := service.repo.UpdateTag(context, ownerID, tag); err != nil {
		return err
	}

	service.logger.Info("tag_updated", slog.Int64("tag_id", tag.ID))
	return nil
}

func (service *Service) DeleteTag(context context.Context, ownerID uuid.UUID, id int64) error {
	if err := service.lifecycle.SoftDelete(context, definition, ownerID, id); err != nil {
		return err
	}

	service.logger.Warn("tag_trashed", slog.Int64("tag_id", id))
	return nil
}

func (service *Service) RestoreTag(context context.Context, ownerID uuid.UUID, id int64, mode lifecycle.Mode) (lifecycle.Outcome, error) {
	outcome, err := service.lifecycle.Restore(context, definition, ownerID, id, mode)
	if err != nil {
		return lifecycle.Outcome{}, err
	}
	if !outcome.Restored {
		return lifecycle.Outcome{}, apperr.Conflict(outcome.Reason)
	}
	return outcome, nil
}

func (service *Service) RestoreTags(context context.Context, ownerID uuid.UUID, ids []int64, mode lifecycle.Mode) (lifecycle.BatchOutcome, error) {
	return service.lifecycle.RestoreBatch(context, definition, ownerID, ids, mode)
}

func (service *Service) PurgeTag(context context.Context, ownerID uuid.UUID, id int64) error {
	if err := service.lifecycle.Purge(context, definition, ownerID, id); err != nil {
		return err
	}

	service.logger.Warn("tag_purged", slog.Int64("tag_id", id))
	return nil
}

func (service *Service) ResolveTag(context context.Context, ownerID uuid.UUID, id *int64, name *string, includeTrashed bool) (*int64, error) {
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
		return nil, apperr.Mismatch("The id and name do not refer to the same tag")
	case resolution.Multiple:
		return nil, apperr.MultipleMatches("More than one tag matches this name")
	default:
		return resolution.ID, nil
	}
}

func validateTag(tag *Tag) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, tag.Name).MaxLen(FieldName, tag.Name, 100)
	return validator.Err()
}
