// Copyright (c) 2026 Shelfmark. All rights reserved.

package lifecycle

import "fmt"

// Row is a snapshot of one catalog row, loaded and locked at the start of a
// restore transaction. Fields holds the merge-eligible columns by name.
type Row struct {
	ID     int64
	Key    string
	Fields map[string]any
}

// Script is the write plan for one restore, produced by Decide. Pointer
// fields are nil when the corresponding write is not needed. Steps apply in
// a fixed order: trash, set-on-active, repoint, purge, restore — the order
// keeps the partial unique index on active natural keys satisfied at every
// step.
type Script struct {
	Blocked     bool
	BlockReason string

	TrashID     *int64
	SetOnActive map[string]any
	RepointFrom *int64
	RepointTo   *int64
	PurgeID     *int64
	RestoreID   *int64

	// EffectiveID is the id that ends up holding the natural-key slot.
	EffectiveID int64
}

// Decide is the conflict reconciliation decision: given the trashed row
// being restored and the active row (if any) holding the same natural key,
// it returns the writes to perform. Pure — no store access, no side
// effects; the caller is responsible for mode gating and for executing the
// script atomically.
func Decide(definition Definition, trashed Row, active *Row, mode Mode) Script {
	if active == nil {
		return Script{
			RestoreID:   &trashed.ID,
			EffectiveID: trashed.ID,
		}
	}

	switch mode {
	case ModeMerge:
		setOnActive := map[string]any{}
		for _, column := range definition.MergeColumns {
			if emptyValue(active.Fields[column]) && !emptyValue(trashed.Fields[column]) {
				setOnActive[column] = trashed.Fields[column]
			}
		}
		return Script{
			SetOnActive: setOnActive,
			RepointFrom: &trashed.ID,
			RepointTo:   &active.ID,
			PurgeID:     &trashed.ID,
			EffectiveID: active.ID,
		}

	case ModeOverride:
		return Script{
			TrashID:     &active.ID,
			RepointFrom: &active.ID,
			RepointTo:   &trashed.ID,
			RestoreID:   &trashed.ID,
			EffectiveID: trashed.ID,
		}

	default: // ModeDecline
		return Script{
			Blocked: true,
			BlockReason: fmt.Sprintf("%s %q is already active with id %d",
				definition.Label, active.Key, active.ID),
			EffectiveID: trashed.ID,
		}
	}
}

// emptyValue reports whether a merge-eligible value counts as absent. Only
// SQL NULL and the empty string do; zero numbers are real values.
func emptyValue(value any) bool {
	if value == nil {
		return true
	}
	text, ok := value.(string)
	return ok && text == ""
}
