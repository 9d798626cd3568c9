// Copyright (c) 2026 Shelfmark. All rights reserved.

package resolve

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelfmark/shelfmark/internal/platform/dberr"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (store *PostgresStore) KeyByID(context context.Context, target Target, ownerID uuid.UUID, id int64, includeTrashed bool) (*string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		target.KeyColumn, target.Table, target.IDColumn, target.OwnerColumn,
	)
	if !includeTrashed {
		query += fmt.Sprintf(` AND %s IS NULL`, target.DeletedColumn)
	}

	// Nullable scan: a book row may carry no ISBN.
	var value *string
	if err := store.db.QueryRow(context, query, id, ownerID).Scan(&value); err != nil {
		return nil, dberr.Wrap(err, "resolve_"+target.Label+"_by_id")
	}
	return value, nil
}

func (store *PostgresStore) IDsByKey(context context.Context, target Target, ownerID uuid.UUID, value string, includeTrashed bool) ([]int64, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE lower(%s) = lower($1) AND %s = $2`,
		target.IDColumn, target.Table, target.KeyColumn, target.OwnerColumn,
	)
	if !includeTrashed {
		query += fmt.Sprintf(` AND %s IS NULL`, target.DeletedColumn)
	}
	// Two rows are enough to know the key is ambiguous.
	query += fmt.Sprintf(` ORDER BY %s LIMIT 2`, target.IDColumn)

	rows, err := store.db.Query(context, query, value, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, "resolve_"+target.Label+"_by_key")
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan_resolved_id")
		}
		ids = append(ids, id)
	}

	return ids, nil
}
