// Copyright (c) 2026 Shelfmark. All rights reserved.

package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/ctxutil"
	"github.com/shelfmark/shelfmark/internal/platform/dberr"
)

// Item statuses reported by batch restore.
const (
	StatusRestored = "restored"
	StatusFailed   = "failed"
)

// Outcome is the result of a single restore. A blocked restore is a normal
// outcome, not an error: Restored is false and Reason names the blocking
// row.
type Outcome struct {
	Restored    bool   `json:"restored"`
	Reason      string `json:"reason,omitempty"`
	EffectiveID int64  `json:"effective_id"`
}

// ItemResult is one entry of a batch restore, in input order.
type ItemResult struct {
	ID          int64  `json:"id"`
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
	EffectiveID *int64 `json:"effective_id,omitempty"`
}

// BatchOutcome aggregates a batch restore.
type BatchOutcome struct {
	Results       []ItemResult `json:"results"`
	RestoredCount int          `json:"restored_count"`
	FailedCount   int          `json:"failed_count"`
}

// Manager executes lifecycle transitions. Every state-changing update is
// guarded by a condition on the expected current state, so two concurrent
// calls on the same id cannot both succeed.
type Manager struct {
	db *pgxpool.Pool
}

func NewManager(db *pgxpool.Pool) *Manager {
	return &Manager{db: db}
}

// SoftDelete moves an active row to the trash. Deleting a row that is
// already trashed fails as not-found — the operation is not idempotent.
func (manager *Manager) SoftDelete(context context.Context, definition Definition, ownerID uuid.UUID, id int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW(), %s = NOW() WHERE %s = $1 AND %s = $2 AND %s IS NULL`,
		definition.Table, definition.DeletedColumn, definition.UpdatedColumn,
		definition.IDColumn, definition.OwnerColumn, definition.DeletedColumn,
	)

	cmd, err := manager.db.Exec(context, query, id, ownerID)
	if err != nil {
		return dberr.Wrap(err, "trash_"+definition.Label)
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	ctxutil.GetLogger(context).Info("row trashed", "resource", definition.Label, "id", id)
	return nil
}

// Restore brings a trashed row back to active, reconciling natural-key
// collisions according to mode. The whole transition is one transaction.
func (manager *Manager) Restore(context context.Context, definition Definition, ownerID uuid.UUID, id int64, mode Mode) (Outcome, error) {
	if !definition.SupportsMode(mode) {
		return Outcome{}, definition.modeError(mode)
	}
	return manager.restoreOne(context, definition, ownerID, id, mode)
}

// RestoreBatch restores each id as its own unit of work. One item's failure
// never rolls back a sibling's success; results come back one per input id,
// in input order.
func (manager *Manager) RestoreBatch(context context.Context, definition Definition, ownerID uuid.UUID, ids []int64, mode Mode) (BatchOutcome, error) {
	if !definition.SupportsMode(mode) {
		return BatchOutcome{}, definition.modeError(mode)
	}

	return RestoreEach(context, definition, ids, func(id int64) (Outcome, error) {
		return manager.restoreOne(context, definition, ownerID, id, mode)
	}), nil
}

// RestoreEach drives restore over each id in turn and folds the outcomes
// into a BatchOutcome, one result per input id in input order. A blocked
// restore and an error from restore both fail only their own item; an
// error's message is surfaced when it is a client-grade AppError and
// replaced by a generic reason otherwise.
func RestoreEach(context context.Context, definition Definition, ids []int64, restore func(id int64) (Outcome, error)) BatchOutcome {
	logger := ctxutil.GetLogger(context)
	outcome := BatchOutcome{Results: make([]ItemResult, 0, len(ids))}

	for _, id := range ids {
		single, err := restore(id)
		switch {
		case err != nil:
			reason := "Internal error"
			if appError := apperr.As(err); appError != nil && appError.HTTPStatus < 500 {
				reason = appError.Message
			} else {
				logger.Error("batch restore item failed",
					"resource", definition.Label, "id", id, "error", err)
			}
			outcome.Results = append(outcome.Results, ItemResult{ID: id, Status: StatusFailed, Reason: reason})
			outcome.FailedCount++

		case !single.Restored:
			outcome.Results = append(outcome.Results, ItemResult{ID: id, Status: StatusFailed, Reason: single.Reason})
			outcome.FailedCount++

		default:
			effective := single.EffectiveID
			outcome.Results = append(outcome.Results, ItemResult{ID: id, Status: StatusRestored, EffectiveID: &effective})
			outcome.RestoredCount++
		}
	}

	return outcome
}

// Purge physically removes a trashed row. Dependent references are nulled
// out (or deleted, for junction rows) in the same transaction so no id is
// left dangling. Active rows cannot be purged.
func (manager *Manager) Purge(context context.Context, definition Definition, ownerID uuid.UUID, id int64) error {
	tx, err := manager.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_purge")
	}
	defer tx.Rollback(context)

	lock := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2 AND %s IS NOT NULL FOR UPDATE`,
		definition.IDColumn, definition.Table,
		definition.IDColumn, definition.OwnerColumn, definition.DeletedColumn,
	)
	var locked int64
	if err := tx.QueryRow(context, lock, id, ownerID).Scan(&locked); err != nil {
		return dberr.Wrap(err, "lock_purge_"+definition.Label)
	}

	if err := detachRefs(context, tx, definition, id); err != nil {
		return err
	}

	del := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, definition.Table, definition.IDColumn)
	if _, err := tx.Exec(context, del, id); err != nil {
		return dberr.Wrap(err, "purge_"+definition.Label)
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_purge")
	}

	ctxutil.GetLogger(context).Info("row purged", "resource", definition.Label, "id", id)
	return nil
}

// restoreOne runs the lock → decide → apply sequence for one id inside one
// transaction.
func (manager *Manager) restoreOne(context context.Context, definition Definition, ownerID uuid.UUID, id int64, mode Mode) (Outcome, error) {
	tx, err := manager.db.Begin(context)
	if err != nil {
		return Outcome{}, dberr.Wrap(err, "begin_restore")
	}
	defer tx.Rollback(context)

	trashed, err := lockTrashed(context, tx, definition, ownerID, id)
	if err != nil {
		return Outcome{}, err
	}

	// A row without a natural-key value cannot collide.
	var active *Row
	if trashed.Key != "" {
		active, err = lockCollision(context, tx, definition, ownerID, trashed.Key, id)
		if err != nil {
			return Outcome{}, err
		}
	}

	script := Decide(definition, *trashed, active, mode)
	if script.Blocked {
		// Nothing was written; the open transaction only held locks.
		return Outcome{Reason: script.BlockReason, EffectiveID: script.EffectiveID}, nil
	}

	if err := applyScript(context, tx, definition, script); err != nil {
		return Outcome{}, err
	}
	if err := tx.Commit(context); err != nil {
		return Outcome{}, dberr.Wrap(err, "commit_restore")
	}

	ctxutil.GetLogger(context).Info("row restored",
		"resource", definition.Label, "id", id, "mode", string(mode), "effectiveId", script.EffectiveID)
	return Outcome{Restored: true, EffectiveID: script.EffectiveID}, nil
}

// lockTrashed loads and locks the trashed row being restored.
func lockTrashed(context context.Context, tx pgx.Tx, definition Definition, ownerID uuid.UUID, id int64) (*Row, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2 AND %s IS NOT NULL FOR UPDATE`,
		strings.Join(rowColumns(definition), ", "), definition.Table,
		definition.IDColumn, definition.OwnerColumn, definition.DeletedColumn,
	)

	row, err := scanRow(tx.QueryRow(context, query, id, ownerID), definition)
	if err != nil {
		return nil, dberr.Wrap(err, "lock_trashed_"+definition.Label)
	}
	return row, nil
}

// lockCollision loads and locks the active row holding the same natural
// key, if there is one.
func lockCollision(context context.Context, tx pgx.Tx, definition Definition, ownerID uuid.UUID, key string, excludeID int64) (*Row, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE lower(%s) = lower($1) AND %s = $2 AND %s <> $3 AND %s IS NULL LIMIT 1 FOR UPDATE`,
		strings.Join(rowColumns(definition), ", "), definition.Table,
		definition.KeyColumn, definition.OwnerColumn, definition.IDColumn, definition.DeletedColumn,
	)

	row, err := scanRow(tx.QueryRow(context, query, key, ownerID, excludeID), definition)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "lock_collision_"+definition.Label)
	}
	return row, nil
}

func rowColumns(definition Definition) []string {
	return append([]string{definition.IDColumn, definition.KeyColumn}, definition.MergeColumns...)
}

func scanRow(row pgx.Row, definition Definition) (*Row, error) {
	out := &Row{Fields: map[string]any{}}

	// The key column may be nullable (books without an ISBN).
	var key *string
	values := make([]any, len(definition.MergeColumns))
	targets := []any{&out.ID, &key}
	for i := range values {
		targets = append(targets, &values[i])
	}
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}

	if key != nil {
		out.Key = *key
	}
	for i, column := range definition.MergeColumns {
		out.Fields[column] = values[i]
	}
	return out, nil
}

// applyScript executes the decided writes in their fixed order. Both rows
// involved are already locked by the caller's transaction.
func applyScript(context context.Context, tx pgx.Tx, definition Definition, script Script) error {
	if script.TrashID != nil {
		query := fmt.Sprintf(`UPDATE %s SET %s = NOW(), %s = NOW() WHERE %s = $1 AND %s IS NULL`,
			definition.Table, definition.DeletedColumn, definition.UpdatedColumn,
			definition.IDColumn, definition.DeletedColumn,
		)
		cmd, err := tx.Exec(context, query, *script.TrashID)
		if err != nil {
			return dberr.Wrap(err, "trash_displaced_"+definition.Label)
		}
		if cmd.RowsAffected() == 0 {
			return apperr.Conflict("The blocking row changed during restore")
		}
	}

	if len(script.SetOnActive) > 0 && script.RepointTo != nil {
		// Sorted column order keeps the generated SQL deterministic.
		columns := make([]string, 0, len(script.SetOnActive))
		for column := range script.SetOnActive {
			columns = append(columns, column)
		}
		sort.Strings(columns)

		args := []any{*script.RepointTo}
		sets := make([]string, 0, len(columns)+1)
		for _, column := range columns {
			args = append(args, script.SetOnActive[column])
			sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
		}
		sets = append(sets, fmt.Sprintf("%s = NOW()", definition.UpdatedColumn))

		query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1 AND %s IS NULL`,
			definition.Table, strings.Join(sets, ", "),
			definition.IDColumn, definition.DeletedColumn,
		)
		if _, err := tx.Exec(context, query, args...); err != nil {
			return dberr.Wrap(err, "merge_fields_"+definition.Label)
		}
	}

	if script.RepointFrom != nil && script.RepointTo != nil {
		if err := repointRefs(context, tx, definition, *script.RepointFrom, *script.RepointTo); err != nil {
			return err
		}
	}

	if script.PurgeID != nil {
		query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s IS NOT NULL`,
			definition.Table, definition.IDColumn, definition.DeletedColumn,
		)
		cmd, err := tx.Exec(context, query, *script.PurgeID)
		if err != nil {
			return dberr.Wrap(err, "purge_merged_"+definition.Label)
		}
		if cmd.RowsAffected() == 0 {
			return apperr.Conflict("The trashed row changed during restore")
		}
	}

	if script.RestoreID != nil {
		query := fmt.Sprintf(`UPDATE %s SET %s = NULL, %s = NOW() WHERE %s = $1 AND %s IS NOT NULL`,
			definition.Table, definition.DeletedColumn, definition.UpdatedColumn,
			definition.IDColumn, definition.DeletedColumn,
		)
		cmd, err := tx.Exec(context, query, *script.RestoreID)
		if err != nil {
			return dberr.Wrap(err, "restore_"+definition.Label)
		}
		if cmd.RowsAffected() == 0 {
			return apperr.Conflict("The trashed row changed during restore")
		}
	}

	return nil
}

// repointRefs moves every dependent reference from one id to another. For
// junction tables the rows that would become duplicates after the move are
// deleted first.
func repointRefs(context context.Context, tx pgx.Tx, definition Definition, from, to int64) error {
	for _, ref := range definition.Refs {
		if ref.DeleteRow && ref.DedupColumn != "" {
			dedup := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s IN (SELECT %s FROM %s WHERE %s = $2)`,
				ref.Table, ref.Column, ref.DedupColumn,
				ref.DedupColumn, ref.Table, ref.Column,
			)
			if _, err := tx.Exec(context, dedup, from, to); err != nil {
				return dberr.Wrap(err, "dedup_refs_"+definition.Label)
			}
		}

		update := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`, ref.Table, ref.Column, ref.Column)
		if _, err := tx.Exec(context, update, from, to); err != nil {
			return dberr.Wrap(err, "repoint_refs_"+definition.Label)
		}
	}
	return nil
}

// detachRefs prepares a row for physical removal: junction rows are
// deleted, scalar references are nulled out.
func detachRefs(context context.Context, tx pgx.Tx, definition Definition, id int64) error {
	for _, ref := range definition.Refs {
		var query string
		if ref.DeleteRow {
			query = fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, ref.Table, ref.Column)
		} else {
			query = fmt.Sprintf(`UPDATE %s SET %s = NULL WHERE %s = $1`, ref.Table, ref.Column, ref.Column)
		}
		if _, err := tx.Exec(context, query, id); err != nil {
			return dberr.Wrap(err, "detach_refs_"+definition.Label)
		}
	}
	return nil
}
