package series

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

func (repository *PostgresRepository) ListSeries(context context.Context, ownerID uuid.UUID, plan *query.Plan) ([]*Series, int, error) {
	base := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.CatalogSeries.ID, schema.CatalogSeries.Name, schema.CatalogSeries.Description,
		schema.CatalogSeries.CreatedAt, schema.CatalogSeries.UpdatedAt, schema.CatalogSeries.DeletedAt,
		schema.CatalogSeries.Table, schema.CatalogSeries.OwnerID,
	)
	countBase := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.CatalogSeries.Table, schema.CatalogSeries.OwnerID,
	)
	if !plan.IncludeTrashed {
		activeOnly := fmt.Sprintf(` AND %s IS NULL`, schema.CatalogSeries.DeletedAt)
		base += activeOnly
		countBase += activeOnly
	}

	where, whereArgs := plan.Where(1)
	args := append([]any{ownerID}, whereArgs...)

	var total int
	if err := repository.db.QueryRow(context, countBase+where, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_series")
	}

	tail, tailArgs := plan.Tail(len(args))
	rows, err := repository.db.Query(context, base+where+tail, append(args, tailArgs...)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_series")
	}
	defer rows.Close()

	var items []*Series
	for rows.Next() {
		s := &Series{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_series")
		}
		items = append(items, s)
	}

	return items, total, nil
}

func (repository *PostgresRepository) TrashedSeries(context context.Context, ownerID uuid.UUID) ([]*Series, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NOT NULL
		ORDER BY %s DESC`,
		schema.CatalogSeries.ID, schema.CatalogSeries.Name, schema.CatalogSeries.Description,
		schema.CatalogSeries.CreatedAt, schema.CatalogSeries.UpdatedAt, schema.CatalogSeries.DeletedAt,
		schema.CatalogSeries.Table, schema.CatalogSeries.OwnerID, schema.CatalogSeries.DeletedAt,
		schema.CatalogSeries.DeletedAt,
	)

	rows, err := repository.db.Query(context, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_trashed_seriess")
	}
	defer rows.Close()

	var items []*Series
	for rows.Next() {
		s := &Series{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_trashed_series")
		}
		items = append(items, s)
	}

	return items, nil
}

func (repository *PostgresRepository) GetSeries(context context.Context, ownerID uuid.UUID, id int64) (*Series, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s IS NULL`,
		schema.CatalogSeries.ID, schema.CatalogSeries.Name, schema.CatalogSeries.Description,
		schema.CatalogSeries.CreatedAt, schema.CatalogSeries.UpdatedAt,
		schema.CatalogSeries.Table, schema.CatalogSeries.ID, schema.CatalogSeries.OwnerID,
		schema.CatalogSeries.DeletedAt,
	)

	s := &Series{}
	err := repository.db.QueryRow(context, query, id, ownerID).Scan(
		&s.ID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_series")
	}
	return s, nil
}

func (repository *PostgresRepository) CreateSeries(context context.Context, ownerID uuid.UUID, series *Series) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING %s, %s, %s`,
		schema.CatalogSeries.Table,
		schema.CatalogSeries.OwnerID, schema.CatalogSeries.Name, schema.CatalogSeries.Description,
		schema.CatalogSeries.CreatedAt, schema.CatalogSeries.UpdatedAt,
		schema.CatalogSeries.ID, schema.CatalogSeries.CreatedAt, schema.CatalogSeries.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, ownerID, series.Name, series.Description).
		Scan(&series.ID, &series.CreatedAt, &series.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("An active series with this name already exists")
		}
		return dberr.Wrap(err, "create_series")
	}
	return nil
}

func (repository *PostgresRepository) UpdateSeries(context context.Context, ownerID uuid.UUID, series *Series) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1 AND %s = $2 AND %s IS NULL
		RETURNING %s`,
		schema.CatalogSeries.Table,
		schema.CatalogSeries.Name, schema.CatalogSeries.Description, schema.CatalogSeries.UpdatedAt,
		schema.CatalogSeries.ID, schema.CatalogSeries.OwnerID, schema.CatalogSeries.DeletedAt,
		schema.CatalogSeries.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, series.ID, ownerID, series.Name, series.Description).
		Scan(&series.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("An active series with this name already exists")
		}
		return dberr.Wrap(err, "update_series")
	}
	return nil
}
