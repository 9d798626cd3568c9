package publisher

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

func (repository *PostgresRepository) ListPublishers(context context.Context, ownerID uuid.UUID, plan *query.Plan) ([]*Publisher, int, error) {
	base := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.CatalogPublisher.ID, schema.CatalogPublisher.Name, schema.CatalogPublisher.City,
		schema.CatalogPublisher.Website, schema.CatalogPublisher.CreatedAt, schema.CatalogPublisher.UpdatedAt,
		schema.CatalogPublisher.DeletedAt,
		schema.CatalogPublisher.Table, schema.CatalogPublisher.OwnerID,
	)
	countBase := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.CatalogPublisher.Table, schema.CatalogPublisher.OwnerID,
	)
	if !plan.IncludeTrashed {
		activeOnly := fmt.Sprintf(` AND %s IS NULL`, schema.CatalogPublisher.DeletedAt)
		base += activeOnly
		countBase += activeOnly
	}

	where, whereArgs := plan.Where(1)
	args := append([]any{ownerID}, whereArgs...)

	var total int
	if err := repository.db.QueryRow(context, countBase+where, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_publishers")
	}

	tail, tailArgs := plan.Tail(len(args))
	rows, err := repository.db.Query(context, base+where+tail, append(args, tailArgs...)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_publishers")
	}
	defer rows.Close()

	var publishers []*Publisher
	for rows.Next() {
		p := &Publisher{}
		if err := rows.Scan(&p.ID, &p.Name, &p.City, &p.Website, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_publisher")
		}
		publishers = append(publishers, p)
	}

	return publishers, total, nil
}

func (repository *PostgresRepository) TrashedPublishers(context context.Context, ownerID uuid.UUID) ([]*Publisher, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NOT NULL
		ORDER BY %s DESC`,
		schema.CatalogPublisher.ID, schema.CatalogPublisher.Name, schema.CatalogPublisher.City,
		schema.CatalogPublisher.Website, schema.CatalogPublisher.CreatedAt, schema.CatalogPublisher.UpdatedAt,
		schema.CatalogPublisher.DeletedAt,
		schema.CatalogPublisher.Table, schema.CatalogPublisher.OwnerID, schema.CatalogPublisher.DeletedAt,
		schema.CatalogPublisher.DeletedAt,
	)

	rows, err := repository.db.Query(context, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_trashed_publishers")
	}
	defer rows.Close()

	var publishers []*Publisher
	for rows.Next() {
		p := &Publisher{}
		if err := rows.Scan(&p.ID, &p.Name, &p.City, &p.Website, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_trashed_publisher")
		}
		publishers = append(publishers, p)
	}

	return publishers, nil
}

func (repository *PostgresRepository) GetPublisher(context context.Context, ownerID uuid.UUID, id int64) (*Publisher, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s IS NULL`,
		schema.CatalogPublisher.ID, schema.CatalogPublisher.Name, schema.CatalogPublisher.City,
		schema.CatalogPublisher.Website, schema.CatalogPublisher.CreatedAt, schema.CatalogPublisher.UpdatedAt,
		schema.CatalogPublisher.Table, schema.CatalogPublisher.ID, schema.CatalogPublisher.OwnerID,
		schema.CatalogPublisher.DeletedAt,
	)

	p := &Publisher{}
	err := repository.db.QueryRow(context, query, id, ownerID).Scan(
		&p.ID, &p.Name, &p.City, &p.Website, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_publisher")
	}
	return p, nil
}

func (repository *PostgresRepository) CreatePublisher(context context.Context, ownerID uuid.UUID, publisher *Publisher) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s, %s, %s`,
		schema.CatalogPublisher.Table,
		schema.CatalogPublisher.OwnerID, schema.CatalogPublisher.Name, schema.CatalogPublisher.City,
		schema.CatalogPublisher.Website, schema.CatalogPublisher.CreatedAt, schema.CatalogPublisher.UpdatedAt,
		schema.CatalogPublisher.ID, schema.CatalogPublisher.CreatedAt, schema.CatalogPublisher.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, ownerID, publisher.Name, publisher.City, publisher.Website).
		Scan(&publisher.ID, &publisher.CreatedAt, &publisher.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("An active publisher with this name already exists")
		}
		return dberr.Wrap(err, "create_publisher")
	}
	return nil
}

func (repository *PostgresRepository) UpdatePublisher(context context.Context, ownerID uuid.UUID, publisher *Publisher) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1 AND %s = $2 AND %s IS NULL
		RETURNING %s`,
		schema.CatalogPublisher.Table,
		schema.CatalogPublisher.Name, schema.CatalogPublisher.City, schema.CatalogPublisher.Website,
		schema.CatalogPublisher.UpdatedAt,
		schema.CatalogPublisher.ID, schema.CatalogPublisher.OwnerID, schema.CatalogPublisher.DeletedAt,
		schema.CatalogPublisher.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, publisher.ID, ownerID, publisher.Name, publisher.City, publisher.Website).
		Scan(&publisher.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("An active publisher with this name already exists")
		}
		return dberr.Wrap(err, "update_publisher")
	}
	return nil
}
