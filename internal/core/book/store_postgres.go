package book

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelfmark/shelfmark/internal/catalog/query"
	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/database/schema"
	"github.com/shelfmark/shelfmark/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func bookColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.CatalogBook.ID, schema.CatalogBook.Title, schema.CatalogBook.ISBN,
		schema.CatalogBook.AuthorID, schema.CatalogBook.PublisherID, schema.CatalogBook.TypeID,
		schema.CatalogBook.SeriesID, schema.CatalogBook.SeriesIndex, schema.CatalogBook.Published,
		schema.CatalogBook.PageCount, schema.CatalogBook.Notes, schema.CatalogBook.CreatedAt,
	) + ", " + schema.CatalogBook.UpdatedAt
}

func scanBook(row pgx.Row, book *Book) error {
	return row.Scan(
		&book.ID, &book.Title, &book.ISBN,
		&book.AuthorID, &book.PublisherID, &book.TypeID,
		&book.SeriesID, &book.SeriesIndex, &book.Published,
		&book.PageCount, &book.Notes, &book.CreatedAt, &book.UpdatedAt,
	)
}

func (repository *PostgresRepository) ListBooks(context context.Context, ownerID uuid.UUID, plan *query.Plan) ([]*Book, int, error) {
	base := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		bookColumns(), schema.CatalogBook.DeletedAt,
		schema.CatalogBook.Table, schema.CatalogBook.OwnerID,
	)
	countBase := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.CatalogBook.Table, schema.CatalogBook.OwnerID,
	)
	if !plan.IncludeTrashed {
		activeOnly := fmt.Sprintf(` AND %s IS NULL`, schema.CatalogBook.DeletedAt)
		base += activeOnly
		countBase += activeOnly
	}

	where, whereArgs := plan.Where(1)
	args := append([]any{ownerID}, whereArgs...)

	var total int
	if err := repository.db.QueryRow(context, countBase+where, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_books")
	}

	tail, tailArgs := plan.Tail(len(args))
	rows, err := repository.db.Query(context, base+where+tail, append(args, tailArgs...)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		b := &Book{}
		if err := rows.Scan(
			&b.ID, &b.Title, &b.ISBN,
			&b.AuthorID, &b.PublisherID, &b.TypeID,
			&b.SeriesID, &b.SeriesIndex, &b.Published,
			&b.PageCount, &b.Notes, &b.CreatedAt, &b.UpdatedAt, &b.DeletedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		books = append(books, b)
	}

	if err := repository.loadTagIDs(context, books); err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (repository *PostgresRepository) TrashedBooks(context context.Context, ownerID uuid.UUID) ([]*Book, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NOT NULL
		ORDER BY %s DESC`,
		bookColumns(), schema.CatalogBook.DeletedAt,
		schema.CatalogBook.Table, schema.CatalogBook.OwnerID, schema.CatalogBook.DeletedAt,
		schema.CatalogBook.DeletedAt,
	)

	rows, err := repository.db.Query(context, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_trashed_books")
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		b := &Book{}
		if err := rows.Scan(
			&b.ID, &b.Title, &b.ISBN,
			&b.AuthorID, &b.PublisherID, &b.TypeID,
			&b.SeriesID, &b.SeriesIndex, &b.Published,
			&b.PageCount, &b.Notes, &b.CreatedAt, &b.UpdatedAt, &b.DeletedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_trashed_book")
		}
		books = append(books, b)
	}

	if err := repository.loadTagIDs(context, books); err != nil {
		return nil, err
	}
	return books, nil
}

func (repository *PostgresRepository) GetBook(context context.Context, ownerID uuid.UUID, id int64) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2 AND %s IS NULL`,
		bookColumns(), schema.CatalogBook.Table,
		schema.CatalogBook.ID, schema.CatalogBook.OwnerID, schema.CatalogBook.DeletedAt,
	)

	b := &Book{}
	if err := scanBook(repository.db.QueryRow(context, query, id, ownerID), b); err != nil {
		return nil, dberr.Wrap(err, "get_book")
	}

	if err := repository.loadTagIDs(context, []*Book{b}); err != nil {
		return nil, err
	}
	return b, nil
}

func (repository *PostgresRepository) CreateBook(context context.Context, ownerID uuid.UUID, book *Book) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_book")
	}
	defer tx.Rollback(context)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING %s, %s, %s`,
		schema.CatalogBook.Table,
		schema.CatalogBook.OwnerID, schema.CatalogBook.Title, schema.CatalogBook.ISBN,
		schema.CatalogBook.AuthorID, schema.CatalogBook.PublisherID, schema.CatalogBook.TypeID,
		schema.CatalogBook.SeriesID, schema.CatalogBook.SeriesIndex, schema.CatalogBook.Published,
		schema.CatalogBook.PageCount, schema.CatalogBook.Notes,
		schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
		schema.CatalogBook.ID, schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
	)

	err = tx.QueryRow(context, query,
		ownerID, book.Title, book.ISBN,
		book.AuthorID, book.PublisherID, book.TypeID,
		book.SeriesID, book.SeriesIndex, book.Published,
		book.PageCount, book.Notes,
	).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("An active book with this ISBN already exists")
		}
		return dberr.Wrap(err, "create_book")
	}

	if err := replaceTagLinks(context, tx, ownerID, book.ID, book.TagIDs); err != nil {
		return err
	}

	return dberr.Wrap(tx.Commit(context), "commit_create_book")
}

func (repository *PostgresRepository) UpdateBook(context context.Context, ownerID uuid.UUID, book *Book) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_book")
	}
	defer tx.Rollback(context)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = $10, %s = $11, %s = $12, %s = NOW()
		WHERE %s = $1 AND %s = $2 AND %s IS NULL
		RETURNING %s`,
		schema.CatalogBook.Table,
		schema.CatalogBook.Title, schema.CatalogBook.ISBN,
		schema.CatalogBook.AuthorID, schema.CatalogBook.PublisherID, schema.CatalogBook.TypeID,
		schema.CatalogBook.SeriesID, schema.CatalogBook.SeriesIndex, schema.CatalogBook.Published,
		schema.CatalogBook.PageCount, schema.CatalogBook.Notes, schema.CatalogBook.UpdatedAt,
		schema.CatalogBook.ID, schema.CatalogBook.OwnerID, schema.CatalogBook.DeletedAt,
		schema.CatalogBook.UpdatedAt,
	)

	err = tx.QueryRow(context, query,
		book.ID, ownerID, book.Title, book.ISBN,
		book.AuthorID, book.PublisherID, book.TypeID,
		book.SeriesID, book.SeriesIndex, book.Published,
		book.PageCount, book.Notes,
	).Scan(&book.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("An active book with this ISBN already exists")
		}
		return dberr.Wrap(err, "update_book")
	}

	del := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogBookTag.Table, schema.CatalogBookTag.BookID,
	)
	if _, err := tx.Exec(context, del, book.ID); err != nil {
		return dberr.Wrap(err, "clear_book_tags")
	}

	if err := replaceTagLinks(context, tx, ownerID, book.ID, book.TagIDs); err != nil {
		return err
	}

	return dberr.Wrap(tx.Commit(context), "commit_update_book")
}

// replaceTagLinks inserts the junction rows for a book. The join against
// the tag table scopes the link to the owner's own active tags.
func replaceTagLinks(context context.Context, tx pgx.Tx, ownerID uuid.UUID, bookID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		SELECT $1, t.%s FROM %s t
		WHERE t.%s = ANY($2) AND t.%s = $3 AND t.%s IS NULL`,
		schema.CatalogBookTag.Table, schema.CatalogBookTag.BookID, schema.CatalogBookTag.TagID,
		schema.CatalogTag.ID, schema.CatalogTag.Table,
		schema.CatalogTag.ID, schema.CatalogTag.OwnerID, schema.CatalogTag.DeletedAt,
	)

	if _, err := tx.Exec(context, query, bookID, tagIDs, ownerID); err != nil {
		return dberr.Wrap(err, "link_book_tags")
	}
	return nil
}

// loadTagIDs fills TagIDs for a set of books with one junction query.
func (repository *PostgresRepository) loadTagIDs(context context.Context, books []*Book) error {
	if len(books) == 0 {
		return nil
	}

	byID := make(map[int64]*Book, len(books))
	ids := make([]int64, 0, len(books))
	for _, b := range books {
		byID[b.ID] = b
		ids = append(ids, b.ID)
	}

	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = ANY($1) ORDER BY %s`,
		schema.CatalogBookTag.BookID, schema.CatalogBookTag.TagID,
		schema.CatalogBookTag.Table, schema.CatalogBookTag.BookID, schema.CatalogBookTag.TagID,
	)

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "load_book_tags")
	}
	defer rows.Close()

	for rows.Next() {
		var bookID, tagID int64
		if err := rows.Scan(&bookID, &tagID); err != nil {
			return dberr.Wrap(err, "scan_book_tag")
		}
		if b, ok := byID[bookID]; ok {
			b.TagIDs = append(b.TagIDs, tagID)
		}
	}

	return nil
}
