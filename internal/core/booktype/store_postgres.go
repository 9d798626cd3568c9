package booktype

import (
	"context"
	"fmt"

	"github.com/google/uuid"
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

func (repository *PostgresRepository) ListBookTypes(context context.Context, ownerID uuid.UUID, plan *query.Plan) ([]*BookType, int, error) {
	base := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.CatalogBookType.ID, schema.CatalogBookType.Name, schema.CatalogBookType.Description,
		schema.CatalogBookType.CreatedAt, schema.CatalogBookType.UpdatedAt, schema.CatalogBookType.DeletedAt,
		schema.CatalogBookType.Table, schema.CatalogBookType.OwnerID,
	)
	countBase := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.CatalogBookType.Table, schema.CatalogBookType.OwnerID,
	)
	if !plan.IncludeTrashed {
		activeOnly := fmt.Sprintf(` AND %s IS NULL`, schema.CatalogBookType.DeletedAt)
		base += activeOnly
		countBase += activeOnly
	}

	where, whereArgs := plan.Where(1)
	args := append([]any{ownerID}, whereArgs...)

	var total int
	if err := repository.db.QueryRow(context, countBase+where, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_booktypes")
	}

	tail, tailArgs := plan.Tail(len(args))
	rows, err := repository.db.Query(context, base+where+tail, append(args, tailArgs...)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_booktypes")
	}
	defer rows.Close()

	var bookTypes []*BookType
	for rows.Next() {
		bt := &BookType{}
		if err := rows.Scan(&bt.ID, &bt.Name, &bt.Description, &bt.CreatedAt, &bt.UpdatedAt, &bt.DeletedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_booktype")
		}
		bookTypes = append(bookTypes, bt)
	}

	return bookTypes, total, nil
}

func (repository *PostgresRepository) TrashedBookTypes(context context.Context, ownerID uuid.UUID) ([]*BookType, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NOT NULL
		ORDER BY %s DESC`,
		schema.CatalogBookType.ID, schema.CatalogBookType.Name, schema.CatalogBookType.Description,
		schema.CatalogBookType.CreatedAt, schema.CatalogBookType.UpdatedAt, schema.CatalogBookType.DeletedAt,
		schema.CatalogBookType.Table, schema.CatalogBookType.OwnerID, schema.CatalogBookType.DeletedAt,
		schema.CatalogBookType.DeletedAt,
	)

	rows, err := repository.db.Query(context, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_trashed_booktypes")
	}
	defer rows.Close()

	var bookTypes []*BookType
	for rows.Next() {
		bt := &BookType{}
		if err := rows.Scan(&bt.ID, &bt.Name, &bt.Description, &bt.CreatedAt, &bt.UpdatedAt, &bt.DeletedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_trashed_booktype")
		}
		bookTypes = append(bookTypes, bt)
	}

	return bookTypes, nil
}

func (repository *PostgresRepository) GetBookType(context context.Context, ownerID uuid.UUID, id int64) (*BookType, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s IS NULL`,
		schema.CatalogBookType.ID, schema.CatalogBookType.Name, schema.CatalogBookType.Description,
		schema.CatalogBookType.CreatedAt, schema.CatalogBookType.UpdatedAt,
		schema.CatalogBookType.Table, schema.CatalogBookType.ID, schema.CatalogBookType.OwnerID,
		schema.CatalogBookType.DeletedAt,
	)

	bt := &BookType{}
	err := repository.db.QueryRow(context, query, id, ownerID).Scan(
		&bt.ID, &bt.Name, &bt.Description, &bt.CreatedAt, &bt.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_booktype")
	}
	return bt, nil
}

func (repository *PostgresRepository) CreateBookType(context context.Context, ownerID uuid.UUID, bookType *BookType) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING %s, %s, %s`,
		schema.CatalogBookType.Table,
		schema.CatalogBookType.OwnerID, schema.CatalogBookType.Name, schema.CatalogBookType.Description,
		schema.CatalogBookType.CreatedAt, schema.CatalogBookType.UpdatedAt,
		schema.CatalogBookType.ID, schema.CatalogBookType.CreatedAt, schema.CatalogBookType.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, ownerID, bookType.Name, bookType.Description).
		Scan(&bookType.ID, &bookType.CreatedAt, &bookType.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("An active book type with this name already exists")
		}
		return dberr.Wrap(err, "create_booktype")
	}
	return nil
}

func (repository *PostgresRepository) UpdateBookType(context context.Context, ownerID uuid.UUID, bookType *BookType) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1 AND %s = $2 AND %s IS NULL
		RETURNING %s`,
		schema.CatalogBookType.Table,
		schema.CatalogBookType.Name, schema.CatalogBookType.Description, schema.CatalogBookType.UpdatedAt,
		schema.CatalogBookType.ID, schema.CatalogBookType.OwnerID, schema.CatalogBookType.DeletedAt,
		schema.CatalogBookType.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, bookType.ID, ownerID, bookType.Name, bookType.Description).
		Scan(&bookType.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("An active book type with this name already exists")
		}
		return dberr.Wrap(err, "update_booktype")
	}
	return nil
}
