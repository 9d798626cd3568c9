package location

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

func (repository *PostgresRepository) ListLocations(context context.Context, ownerID uuid.UUID, plan *query.Plan) ([]*Location, int, error) {
	base := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.CatalogLocation.ID, schema.CatalogLocation.Name, schema.CatalogLocation.Description,
		schema.CatalogLocation.CreatedAt, schema.CatalogLocation.UpdatedAt, schema.CatalogLocation.DeletedAt,
		schema.CatalogLocation.Table, schema.CatalogLocation.OwnerID,
	)
	countBase := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.CatalogLocation.Table, schema.CatalogLocation.OwnerID,
	)
	if !plan.IncludeTrashed {
		activeOnly := fmt.Sprintf(` AND %s IS NULL`, schema.CatalogLocation.DeletedAt)
		base += activeOnly
		countBase += activeOnly
	}

	where, whereArgs := plan.Where(1)
	args := append([]any{ownerID}, whereArgs...)

	var total int
	if err := repository.db.QueryRow(context, countBase+where, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_locations")
	}

	tail, tailArgs := plan.Tail(len(args))
	rows, err := repository.db.Query(context, base+where+tail, append(args, tailArgs...)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_locations")
	}
	defer rows.Close()

	var locations []*Location
	for rows.Next() {
		l := &Location{}
		if err := rows.Scan(&l.ID, &l.Name, &l.Description, &l.CreatedAt, &l.UpdatedAt, &l.DeletedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_location")
		}
		locations = append(locations, l)
	}

	return locations, total, nil
}

func (repository *PostgresRepository) TrashedLocations(context context.Context, ownerID uuid.UUID) ([]*Location, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NOT NULL
		ORDER BY %s DESC`,
		schema.CatalogLocation.ID, schema.CatalogLocation.Name, schema.CatalogLocation.Description,
		schema.CatalogLocation.CreatedAt, schema.CatalogLocation.UpdatedAt, schema.CatalogLocation.DeletedAt,
		schema.CatalogLocation.Table, schema.CatalogLocation.OwnerID, schema.CatalogLocation.DeletedAt,
		schema.CatalogLocation.DeletedAt,
	)

	rows, err := repository.db.Query(context, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_trashed_locations")
	}
	defer rows.Close()

	var locations []*Location
	for rows.Next() {
		l := &Location{}
		if err := rows.Scan(&l.ID, &l.Name, &l.Description, &l.CreatedAt, &l.UpdatedAt, &l.DeletedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_trashed_location")
		}
		locations = append(locations, l)
	}

	return locations, nil
}

func (repository *PostgresRepository) GetLocation(context context.Context, ownerID uuid.UUID, id int64) (*Location, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s IS NULL`,
		schema.CatalogLocation.ID, schema.CatalogLocation.Name, schema.CatalogLocation.Description,
		schema.CatalogLocation.CreatedAt, schema.CatalogLocation.UpdatedAt,
		schema.CatalogLocation.Table, schema.CatalogLocation.ID, schema.CatalogLocation.OwnerID,
		schema.CatalogLocation.DeletedAt,
	)

	l := &Location{}
	err := repository.db.QueryRow(context, query, id, ownerID).Scan(
		&l.ID, &l.Name, &l.Description, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_location")
	}
	return l, nil
}

func (repository *PostgresRepository) CreateLocation(context context.Context, ownerID uuid.UUID, location *Location) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING %s, %s, %s`,
		schema.CatalogLocation.Table,
		schema.CatalogLocation.OwnerID, schema.CatalogLocation.Name, schema.CatalogLocation.Description,
		schema.CatalogLocation.CreatedAt, schema.CatalogLocation.UpdatedAt,
		schema.CatalogLocation.ID, schema.CatalogLocation.CreatedAt, schema.CatalogLocation.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, ownerID, location.Name, location.Description).
		Scan(&location.ID, &location.CreatedAt, &location.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("An active location with this name already exists")
		}
		return dberr.Wrap(err, "create_location")
	}
	return nil
}

func (repository *PostgresRepository) UpdateLocation(context context.Context, ownerID uuid.UUID, location *Location) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1 AND %s = $2 AND %s IS NULL
		RETURNING %s`,
		schema.CatalogLocation.Table,
		schema.CatalogLocation.Name, schema.CatalogLocation.Description, schema.CatalogLocation.UpdatedAt,
		schema.CatalogLocation.ID, schema.CatalogLocation.OwnerID, schema.CatalogLocation.DeletedAt,
		schema.CatalogLocation.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, location.ID, ownerID, location.Name, location.Description).
		Scan(&location.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("An active location with this name already exists")
		}
		return dberr.Wrap(err, "update_location")
	}
	return nil
}
