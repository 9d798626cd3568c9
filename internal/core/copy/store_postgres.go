package copy

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

func (repository *PostgresRepository) ListCopies(context context.Context, ownerID uuid.UUID, plan *query.Plan) ([]*Copy, int, error) {
	base := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.CatalogCopy.ID, schema.CatalogCopy.Code, schema.CatalogCopy.BookID,
		schema.CatalogCopy.LocationID, schema.CatalogCopy.AcquiredOn, schema.CatalogCopy.PriceCents,
		schema.CatalogCopy.Condition, schema.CatalogCopy.Notes,
		schema.CatalogCopy.CreatedAt, schema.CatalogCopy.UpdatedAt, schema.CatalogCopy.DeletedAt,
		schema.CatalogCopy.Table, schema.CatalogCopy.OwnerID,
	)
	countBase := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.CatalogCopy.Table, schema.CatalogCopy.OwnerID,
	)
	if !plan.IncludeTrashed {
		activeOnly := fmt.Sprintf(` AND %s IS NULL`, schema.CatalogCopy.DeletedAt)
		base += activeOnly
		countBase += activeOnly
	}

	where, whereArgs := plan.Where(1)
	args := append([]any{ownerID}, whereArgs...)

	var total int
	if err := repository.db.QueryRow(context, countBase+where, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_copies")
	}

	tail, tailArgs := plan.Tail(len(args))
	rows, err := repository.db.Query(context, base+where+tail, append(args, tailArgs...)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_copies")
	}
	defer rows.Close()

	var copies []*Copy
	for rows.Next() {
		c := &Copy{}
		if err := rows.Scan(
			&c.ID, &c.Code, &c.BookID, &c.LocationID, &c.AcquiredOn,
			&c.PriceCents, &c.Condition, &c.Notes, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_copy")
		}
		copies = append(copies, c)
	}

	return copies, total, nil
}

func (repository *PostgresRepository) TrashedCopies(context context.Context, ownerID uuid.UUID) ([]*Copy, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NOT NULL
		ORDER BY %s DESC`,
		schema.CatalogCopy.ID, schema.CatalogCopy.Code, schema.CatalogCopy.BookID,
		schema.CatalogCopy.LocationID, schema.CatalogCopy.AcquiredOn, schema.CatalogCopy.PriceCents,
		schema.CatalogCopy.Condition, schema.CatalogCopy.Notes,
		schema.CatalogCopy.CreatedAt, schema.CatalogCopy.UpdatedAt, schema.CatalogCopy.DeletedAt,
		schema.CatalogCopy.Table, schema.CatalogCopy.OwnerID, schema.CatalogCopy.DeletedAt,
		schema.CatalogCopy.DeletedAt,
	)

	rows, err := repository.db.Query(context, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_trashed_copies")
	}
	defer rows.Close()

	var copies []*Copy
	for rows.Next() {
		c := &Copy{}
		if err := rows.Scan(
			&c.ID, &c.Code, &c.BookID, &c.LocationID, &c.AcquiredOn,
			&c.PriceCents, &c.Condition, &c.Notes, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_trashed_copy")
		}
		copies = append(copies, c)
	}

	return copies, nil
}

func (repository *PostgresRepository) GetCopy(context context.Context, ownerID uuid.UUID, id int64) (*Copy, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s IS NULL`,
		schema.CatalogCopy.ID, schema.CatalogCopy.Code, schema.CatalogCopy.BookID,
		schema.CatalogCopy.LocationID, schema.CatalogCopy.AcquiredOn, schema.CatalogCopy.PriceCents,
		schema.CatalogCopy.Condition, schema.CatalogCopy.Notes,
		schema.CatalogCopy.CreatedAt, schema.CatalogCopy.UpdatedAt,
		schema.CatalogCopy.Table, schema.CatalogCopy.ID, schema.CatalogCopy.OwnerID,
		schema.CatalogCopy.DeletedAt,
	)

	c := &Copy{}
	err := repository.db.QueryRow(context, query, id, ownerID).Scan(
		&c.ID, &c.Code, &c.BookID, &c.LocationID, &c.AcquiredOn,
		&c.PriceCents, &c.Condition, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_copy")
	}
	return c, nil
}

func (repository *PostgresRepository) CreateCopy(context context.Context, ownerID uuid.UUID, copy *Copy) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING %s, %s, %s`,
		schema.CatalogCopy.Table,
		schema.CatalogCopy.OwnerID, schema.CatalogCopy.Code, schema.CatalogCopy.BookID,
		schema.CatalogCopy.LocationID, schema.CatalogCopy.AcquiredOn, schema.CatalogCopy.PriceCents,
		schema.CatalogCopy.Condition, schema.CatalogCopy.Notes,
		schema.CatalogCopy.CreatedAt, schema.CatalogCopy.UpdatedAt,
		schema.CatalogCopy.ID, schema.CatalogCopy.CreatedAt, schema.CatalogCopy.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		ownerID, copy.Code, copy.BookID, copy.LocationID,
		copy.AcquiredOn, copy.PriceCents, copy.Condition, copy.Notes,
	).Scan(&copy.ID, &copy.CreatedAt, &copy.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("An active copy with this code already exists")
		}
		return dberr.Wrap(err, "create_copy")
	}
	return nil
}

func (repository *PostgresRepository) UpdateCopy(context context.Context, ownerID uuid.UUID, copy *Copy) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = NOW()
		WHERE %s = $1 AND %s = $2 AND %s IS NULL
		RETURNING %s`,
		schema.CatalogCopy.Table,
		schema.CatalogCopy.Code, schema.CatalogCopy.BookID, schema.CatalogCopy.LocationID,
		schema.CatalogCopy.AcquiredOn, schema.CatalogCopy.PriceCents,
		schema.CatalogCopy.Condition, schema.CatalogCopy.Notes, schema.CatalogCopy.UpdatedAt,
		schema.CatalogCopy.ID, schema.CatalogCopy.OwnerID, schema.CatalogCopy.DeletedAt,
		schema.CatalogCopy.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		copy.ID, ownerID, copy.Code, copy.BookID, copy.LocationID,
		copy.AcquiredOn, copy.PriceCents, copy.Condition, copy.Notes,
	).Scan(&copy.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("An active copy with this code already exists")
		}
		return dberr.Wrap(err, "update_copy")
	}
	return nil
}
