package tag

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

func (repository *PostgresRepository) ListTags(context context.Context, ownerID uuid.UUID, plan *query.Plan) ([]*Tag, int, error) {
	base := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.CatalogTag.ID, schema.CatalogTag.Name, schema.CatalogTag.Slug,
		schema.CatalogTag.CreatedAt, schema.CatalogTag.UpdatedAt, schema.CatalogTag.DeletedAt,
		schema.CatalogTag.Table, schema.CatalogTag.OwnerID,
	)
	countBase := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.CatalogTag.Table, schema.CatalogTag.OwnerID,
	)
	if !plan.IncludeTrashed {
		activeOnly := fmt.Sprintf(` AND %s IS NULL`, schema.CatalogTag.DeletedAt)
		base += activeOnly
		countBase += activeOnly
	}

	where, whereArgs := plan.Where(1)
	args := append([]any{ownerID}, whereArgs...)

	var total int
	if err := repository.db.QueryRow(context, countBase+where, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_tags")
	}

	tail, tailArgs := plan.Tail(len(args))
	rows, err := repository.db.Query(context, base+where+tail, append(args, tailArgs...)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_tags")
	}
	defer rows.Close()

	var tags []*Tag
	for rows.Next() {
		t := &Tag{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_tag")
		}
		tags = append(tags, t)
	}

	return tags, total, nil
}

func (repository *PostgresRepository) TrashedTags(context context.Context, ownerID uuid.UUID) ([]*Tag, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NOT NULL
		ORDER BY %s DESC`,
		schema.CatalogTag.ID, schema.CatalogTag.Name, schema.CatalogTag.Slug,
		schema.CatalogTag.CreatedAt, schema.CatalogTag.UpdatedAt, schema.CatalogTag.DeletedAt,
		schema.CatalogTag.Table, schema.CatalogTag.OwnerID, schema.CatalogTag.DeletedAt,
		schema.CatalogTag.DeletedAt,
	)

	rows, err := repository.db.Query(context, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_trashed_tags")
	}
	defer rows.Close()

	var tags []*Tag
	for rows.Next() {
		t := &Tag{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_trashed_tag")
		}
		tags = append(tags, t)
	}

	return tags, nil
}

func (repository *PostgresRepository) GetTag(context context.Context, ownerID uuid.UUID, id int64) (*Tag, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s IS NULL`,
		schema.CatalogTag.ID, schema.CatalogTag.Name, schema.CatalogTag.Slug,
		schema.CatalogTag.CreatedAt, schema.CatalogTag.UpdatedAt,
		schema.CatalogTag.Table, schema.CatalogTag.ID, schema.CatalogTag.OwnerID,
		schema.CatalogTag.DeletedAt,
	)

	t := &Tag{}
	err := repository.db.QueryRow(context, query, id, ownerID).Scan(
		&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_tag")
	}
	return t, nil
}

func (repository *PostgresRepository) CreateTag(context context.Context, ownerID uuid.UUID, tag *Tag) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING %s, %s, %s`,
		schema.CatalogTag.Table,
		schema.CatalogTag.OwnerID, schema.CatalogTag.Name, schema.CatalogTag.Slug,
		schema.CatalogTag.CreatedAt, schema.CatalogTag.UpdatedAt,
		schema.CatalogTag.ID, schema.CatalogTag.CreatedAt, schema.CatalogTag.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, ownerID, tag.Name, tag.Slug).
		Scan(&tag.ID, &tag.CreatedAt, &tag.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("An active tag with this name already exists")
		}
		return dberr.Wrap(err, "create_tag")
	}
	return nil
}

func (repository *PostgresRepository) UpdateTag(context context.Context, ownerID uuid.UUID, tag *Tag) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1 AND %s = $2 AND %s IS NULL
		RETURNING %s`,
		schema.CatalogTag.Table,
		schema.CatalogTag.Name, schema.CatalogTag.Slug, schema.CatalogTag.UpdatedAt,
		schema.CatalogTag.ID, schema.CatalogTag.OwnerID, schema.CatalogTag.DeletedAt,
		schema.CatalogTag.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, tag.ID, ownerID, tag.Name, tag.Slug).
		Scan(&tag.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("An active tag with this name already exists")
		}
		return dberr.Wrap(err, "update_tag")
	}
	return nil
}
