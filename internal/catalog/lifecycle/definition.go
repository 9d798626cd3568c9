// Copyright (c) 2026 Shelfmark. All rights reserved.

// Package lifecycle governs the Active / Trashed / Purged state of catalog
// rows: soft delete, restore (with natural-key conflict reconciliation) and
// physical purge. One Definition per resource describes the table the
// transitions run against; the transition logic itself is shared.
package lifecycle

import (
	"fmt"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
)

// Mode selects how a restore behaves when the row's natural key collides
// with a currently active row.
type Mode string

const (
	// ModeDecline aborts the restore and reports the blocking row.
	ModeDecline Mode = "decline"
	// ModeMerge enriches the active row with the trashed row's values,
	// repoints references, and purges the trashed row.
	ModeMerge Mode = "merge"
	// ModeOverride trashes the active row and restores this one in its
	// place, taking over its references.
	ModeOverride Mode = "override"
)

// ParseMode maps a raw request value to a Mode. An empty value defaults to
// decline.
func ParseMode(raw string) (Mode, error) {
	switch raw {
	case "", string(ModeDecline):
		return ModeDecline, nil
	case string(ModeMerge):
		return ModeMerge, nil
	case string(ModeOverride):
		return ModeOverride, nil
	default:
		return "", apperr.ValidationError("Invalid conflict mode",
			apperr.FieldError{Field: "mode", Message: "Must be one of: decline, merge, override"},
		)
	}
}

// Ref names a dependent table column holding this resource's id. On purge
// the reference must not dangle: scalar columns are nulled out, junction
// rows (DeleteRow) are removed outright. DedupColumn names the junction's
// sibling key column, so a repoint can drop the rows that would become
// duplicates.
type Ref struct {
	Table       string
	Column      string
	DeleteRow   bool
	DedupColumn string
}

// Definition describes one resource's table for the shared transition
// logic. Column references come from the schema package, never from
// request input.
type Definition struct {
	Label         string
	Table         string
	IDColumn      string
	OwnerColumn   string
	KeyColumn     string
	DeletedColumn string
	UpdatedColumn string

	// MergeColumns are the scalar columns merge mode may copy from the
	// trashed row onto the active row when the active value is empty.
	MergeColumns []string

	// Refs lists every dependent column pointing at this table.
	Refs []Ref

	// Modes lists the conflict modes enabled beyond decline.
	Modes []Mode
}

// SupportsMode reports whether the resource allows the given conflict mode.
// Decline is always available.
func (definition Definition) SupportsMode(mode Mode) bool {
	if mode == ModeDecline {
		return true
	}
	for _, allowed := range definition.Modes {
		if allowed == mode {
			return true
		}
	}
	return false
}

// modeError is the rejection for a mode the resource does not support.
func (definition Definition) modeError(mode Mode) error {
	return apperr.ValidationError("Invalid conflict mode",
		apperr.FieldError{Field: "mode", Message: fmt.Sprintf("Mode %q is not supported for %s", mode, definition.Label)},
	)
}
