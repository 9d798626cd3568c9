package book

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

func (service *Service) ListBooks(context context.Context, ownerID uuid.UUID, plan *query.Plan) ([]*Book, int, error) {
	return service.repo.ListBooks(context, ownerID, plan)
}

func (service *Service) TrashedBooks(context context.Context, ownerID uuid.UUID) ([]*Book, error) {
	return service.repo.TrashedBooks(context, ownerID)
}

func (service *Service) GetBook(context context.Context, ownerID uuid.UUID, id int64) (*Book, error) {
	return service.repo.GetBook(context, ownerID, id)
}

func (service *Service) CreateBook(context context.Context, ownerID uuid.UUID, book *Book) error {
	if err := validateBook(book); err != nil {
		return err
	}

	if err := service.repo.CreateBook(context, ownerID, book); err != nil {
		return err
	}

	service.logger.Info("book_created", slog.String("title", book.Title))
	return nil
}

func (service *Service) UpdateBook(context context.Context, ownerID uuid.UUID, id int64, book *Book) error {
	book.ID = id
	if err := validateBook(book); err != nil {
		return err
	}

	if err := service.repo.UpdateBook(context, ownerID, book); err != nil {
		return err
	}

	service.logger.Info("book_updated", slog.Int64("book_id", book.ID))
	return nil
}

func (service *Service) DeleteBook(context context.Context, ownerID uuid.UUID, id int64) error {
	if err := service.lifecycle.SoftDelete(context, definition, ownerID, id); err != nil {
		return err
	}

	service.logger.Warn("book_trashed", slog.Int64("book_id", id))
	return nil
}

func (service *Service) RestoreBook(context context.Context, ownerID uuid.UUID, id int64, mode lifecycle.Mode) (lifecycle.Outcome, error) {
	outcome, err := service.lifecycle.Restore(context, definition, ownerID, id, mode)
	if err != nil {
		return lifecycle.Outcome{}, err
	}
	if !outcome.Restored {
		return lifecycle.Outcome{}, apperr.Conflict(outcome.Reason)
	}
	return outcome, nil
}

func (service *Service) RestoreBooks(context context.Context, ownerID uuid.UUID, ids []int64, mode lifecycle.Mode) (lifecycle.BatchOutcome, error) {
	return service.lifecycle.RestoreBatch(context, definition, ownerID, ids, mode)
}

func (service *Service) PurgeBook(context context.Context, ownerID uuid.UUID, id int64) error {
	if err := service.lifecycle.Purge(context, definition, ownerID, id); err != nil {
		return err
	}

	service.logger.Warn("book_purged", slog.Int64("book_id", id))
	return nil
}

// ResolveBook maps an id, ISBN and/or title to a single book id. The ISBN
// is the stronger key and wins when both are supplied; a title lookup may
// legitimately match several books, reported as MULTIPLE_MATCHES.
func (service *Service) ResolveBook(context context.Context, ownerID uuid.UUID, id *int64, isbn, title *string, includeTrashed bool) (*int64, error) {
	target := isbnTarget
	key := isbn
	if key == nil {
		target = titleTarget
		key = title
	}

	resolution, err := service.resolver.Resolve(context, ownerID, target, resolve.Input{
		ID:             id,
		Key:            key,
		IncludeTrashed: includeTrashed,
	})
	if err != nil {
		return nil, err
	}

	switch {
	case resolution.Mismatch:
		return nil, apperr.Mismatch("The supplied identifiers do not refer to the same book")
	case resolution.Multiple:
		return nil, apperr.MultipleMatches("More than one book matches this title")
	default:
		return resolution.ID, nil
	}
}

func validateBook(book *Book) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, book.Title).MaxLen(FieldTitle, book.Title, 300)
	if book.ISBN != nil && *book.ISBN != "" {
		validator.ISBN(FieldISBN, *book.ISBN)
	}
	if book.Published != nil && *book.Published != "" {
		validator.PartialDate(FieldPublished, *book.Published)
	}
	if book.PageCount != nil {
		validator.NonNegative(FieldPageCount, int64(*book.PageCount))
	}
	if book.SeriesIndex != nil {
		validator.NonNegative(FieldSeriesIndex, int64(*book.SeriesIndex))
	}
	if book.Notes != nil {
		validator.MaxLen(FieldNotes, *book.Notes, 4000)
	}

	return validator.Err()
}
