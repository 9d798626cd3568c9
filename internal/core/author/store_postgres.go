package author

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

func (repository *PostgresRepository) ListAuthors(context context.Context, ownerID uuid.UUID, plan *query.Plan) ([]*Author, int, error) {
	base := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.CatalogAuthor.ID, schema.CatalogAuthor.Name, schema.CatalogAuthor.Bio,
		schema.CatalogAuthor.Born, schema.CatalogAuthor.Died,
		schema.CatalogAuthor.CreatedAt, schema.CatalogAuthor.UpdatedAt, schema.CatalogAuthor.DeletedAt,
		schema.CatalogAuthor.Table, schema.CatalogAuthor.OwnerID,
	)
	countBase := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.CatalogAuthor.Table, schema.CatalogAuthor.OwnerID,
	)
	if !plan.IncludeTrashed {
		activeOnly := fmt.Sprintf(` AND %s IS NULL`, schema.CatalogAuthor.DeletedAt)
		base += activeOnly
		countBase += activeOnly
	}

	where, whereArgs := plan.Where(1)
	args := append([]any{ownerID}, whereArgs...)

	var total int
	if err := repository.db.QueryRow(context, countBase+where, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_authors")
	}

	tail, tailArgs := plan.Tail(len(args))
	rows, err := repository.db.Query(context, base+where+tail, append(args, tailArgs...)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_authors")
	}
	defer rows.Close()

	var authors []*Author
	for rows.Next() {
		a := &Author{}
		if err := rows.Scan(&a.ID, &a.Name, &a.Bio, &a.Born, &a.Died, &a.CreatedAt, &a.UpdatedAt, &a.DeletedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_author")
		}
		authors = append(authors, a)
	}

	return authors, total, nil
}

func (repository *PostgresRepository) TrashedAuthors(context context.Context, ownerID uuid.UUID) ([]*Author, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NOT NULL
		ORDER BY %s DESC`,
		schema.CatalogAuthor.ID, schema.CatalogAuthor.Name, schema.CatalogAuthor.Bio,
		schema.CatalogAuthor.Born, schema.CatalogAuthor.Died,
		schema.CatalogAuthor.CreatedAt, schema.CatalogAuthor.UpdatedAt, schema.CatalogAuthor.DeletedAt,
		schema.CatalogAuthor.Table, schema.CatalogAuthor.OwnerID, schema.CatalogAuthor.DeletedAt,
		schema.CatalogAuthor.DeletedAt,
	)

	rows, err := repository.db.Query(context, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_trashed_authors")
	}
	defer rows.Close()

	var authors []*Author
	for rows.Next() {
		a := &Author{}
		if err := rows.Scan(&a.ID, &a.Name, &a.Bio, &a.Born, &a.Died, &a.CreatedAt, &a.UpdatedAt, &a.DeletedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_trashed_author")
		}
		authors = append(authors, a)
	}

	return authors, nil
}

func (repository *PostgresRepository) GetAuthor(context context.Context, ownerID uuid.UUID, id int64) (*Author, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s IS NULL`,
		schema.CatalogAuthor.ID, schema.CatalogAuthor.Name, schema.CatalogAuthor.Bio,
		schema.CatalogAuthor.Born, schema.CatalogAuthor.Died,
		schema.CatalogAuthor.CreatedAt, schema.CatalogAuthor.UpdatedAt,
		schema.CatalogAuthor.Table, schema.CatalogAuthor.ID, schema.CatalogAuthor.OwnerID,
		schema.CatalogAuthor.DeletedAt,
	)

	a := &Author{}
	err := repository.db.QueryRow(context, query, id, ownerID).Scan(
		&a.ID, &a.Name, &a.Bio, &a.Born, &a.Died, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_author")
	}
	return a, nil
}

func (repository *PostgresRepository) CreateAuthor(context context.Context, ownerID uuid.UUID, author *Author) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s, %s`,
		schema.CatalogAuthor.Table,
		schema.CatalogAuthor.OwnerID, schema.CatalogAuthor.Name, schema.CatalogAuthor.Bio,
		schema.CatalogAuthor.Born, schema.CatalogAuthor.Died,
		schema.CatalogAuthor.CreatedAt, schema.CatalogAuthor.UpdatedAt,
		schema.CatalogAuthor.ID, schema.CatalogAuthor.CreatedAt, schema.CatalogAuthor.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, ownerID, author.Name, author.Bio, author.Born, author.Died).
		Scan(&author.ID, &author.CreatedAt, &author.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("An active author with this name already exists")
		}
		return dberr.Wrap(err, "create_author")
	}
	return nil
}

func (repository *PostgresRepository) UpdateAuthor(context context.Context, ownerID uuid.UUID, author *Author) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1 AND %s = $2 AND %s IS NULL
		RETURNING %s`,
		schema.CatalogAuthor.Table,
		schema.CatalogAuthor.Name, schema.CatalogAuthor.Bio,
		schema.CatalogAuthor.Born, schema.CatalogAuthor.Died, schema.CatalogAuthor.UpdatedAt,
		schema.CatalogAuthor.ID, schema.CatalogAuthor.OwnerID, schema.CatalogAuthor.DeletedAt,
		schema.CatalogAuthor.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, author.ID, ownerID, author.Name, author.Bio, author.Born, author.Died).
		Scan(&author.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("An active author with this name already exists")
		}
		return dberr.Wrap(err, "update_author")
	}
	return nil
}
