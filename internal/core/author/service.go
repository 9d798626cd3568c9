package author

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

func (service *Service) ListAuthors(context context.Context, ownerID uuid.UUID, plan *query.Plan) ([]*Author, int, error) {
	return service.repo.ListAuthors(context, ownerID, plan)
}

func (service *Service) TrashedAuthors(context context.Context, ownerID uuid.UUID) ([]*Author, error) {
	return service.repo.TrashedAuthors(context, ownerID)
}

func (service *Service) GetAuthor(context context.Context, ownerID uuid.UUID, id int64) (*Author, error) {
	return service.repo.GetAuthor(context, ownerID, id)
}

func (service *Service) CreateAuthor(context context.Context, ownerID uuid.UUID, author *Author) error {
	if err := validateAuthor(author); err != nil {
		return err
	}

	if err := service.repo.CreateAuthor(context, ownerID, author); err != nil {
		return err
	}

	service.logger.Info("author_created", slog.String("name", author.Name))
	return nil
}

func (service *Service) UpdateAuthor(context context.Context, ownerID uuid.UUID, id int64, author *Author) error {
	author.ID = id
	if err := validateAuthor(author); err != nil {
		return err
	}

	if err := service.repo.UpdateAuthor(context, ownerID, author); err != nil {
		return err
	}

	service.logger.Info("author_updated", slog.Int64("author_id", author.ID))
	return nil
}

func (service *Service) DeleteAuthor(context context.Context, ownerID uuid.UUID, id int64) error {
	if err := service.lifecycle.SoftDelete(context, definition, ownerID, id); err != nil {
		return err
	}

	service.logger.Warn("author_trashed", slog.Int64("author_id", id))
	return nil
}

func (service *Service) RestoreAuthor(context context.Context, ownerID uuid.UUID, id int64, mode lifecycle.Mode) (lifecycle.Outcome, error) {
	outcome, err := service.lifecycle.Restore(context, definition, ownerID, id, mode)
	if err != nil {
		return lifecycle.Outcome{}, err
	}
	if !outcome.Restored {
		return lifecycle.Outcome{}, apperr.Conflict(outcome.Reason)
	}
	return outcome, nil
}

func (service *Service) RestoreAuthors(context context.Context, ownerID uuid.UUID, ids []int64, mode lifecycle.Mode) (lifecycle.BatchOutcome, error) {
	return service.lifecycle.RestoreBatch(context, definition, ownerID, ids, mode)
}

func (service *Service) PurgeAuthor(context context.Context, ownerID uuid.UUID, id int64) error {
	if err := service.lifecycle.Purge(context, definition, ownerID, id); err != nil {
		return err
	}

	service.logger.Warn("author_purged", slog.Int64("author_id", id))
	return nil
}

// ResolveAuthor maps an id and/or name to a single author id. A nil result
// with nil error means nothing matched.
func (service *Service) ResolveAuthor(context context.Context, ownerID uuid.UUID, id *int64, name *string, includeTrashed bool) (*int64, error) {
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
		return nil, apperr.Mismatch("The id and name do not refer to the same author")
	case resolution.Multiple:
		return nil, apperr.MultipleMatches("More than one author matches this name")
	default:
		return resolution.ID, nil
	}
}

func validateAuthor(author *Author) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, author.Name).MaxLen(FieldName, author.Name, 200)
	if author.Bio != nil {
		validator.MaxLen(FieldBio, *author.Bio, 4000)
	}
	if author.Born != nil && *author.Born != "" {
		validator.PartialDate(FieldBorn, *author.Born)
	}
	if author.Died != nil && *author.Died != "" {
		validator.PartialDate(FieldDied, *author.Died)
	}

	return validator.Err()
}
