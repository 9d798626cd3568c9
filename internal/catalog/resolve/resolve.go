// Copyright (c) 2026 Shelfmark. All rights reserved.

// Package resolve turns the identifying attributes a client supplies — a
// surrogate id, a natural key, or both — into a single row id. The same
// logic runs for every catalog resource; a Target describes the table the
// lookup is scoped to.
package resolve

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/shelfmark/shelfmark/internal/platform/ctxutil"
	"github.com/shelfmark/shelfmark/internal/platform/dberr"
)

// Target names the table and columns a resolution runs against. Column
// references come from the schema package, never from request input.
type Target struct {
	Label         string
	Table         string
	IDColumn      string
	KeyColumn     string
	OwnerColumn   string
	DeletedColumn string
}

// For builds a Target with the standard catalog column layout.
func For(label, table, keyColumn string) Target {
	return Target{
		Label:         label,
		Table:         table,
		IDColumn:      "id",
		KeyColumn:     keyColumn,
		OwnerColumn:   "ownerid",
		DeletedColumn: "deletedat",
	}
}

// Input is the set of identifying attributes supplied by the caller.
// IncludeTrashed widens natural-key lookups to soft-deleted rows.
type Input struct {
	ID             *int64
	Key            *string
	IncludeTrashed bool
}

// Resolution is the outcome of a resolve call.
//
// A nil ID with neither flag set means no row matched. Mismatch reports a
// contradictory id/key pair; Multiple reports a natural key shared by more
// than one row, where picking either would be arbitrary.
type Resolution struct {
	ID       *int64
	Mismatch bool
	Multiple bool
}

// Store is the read-only persistence surface the resolver needs.
type Store interface {
	// KeyByID fetches the natural-key value of one row, scoped to its
	// owner. A nil value means the row exists but carries no key (books
	// may have no ISBN). Returns dberr.ErrNotFound when the row does not
	// exist.
	KeyByID(context context.Context, target Target, ownerID uuid.UUID, id int64, includeTrashed bool) (*string, error)

	// IDsByKey fetches the ids of rows whose natural key matches value
	// case-insensitively, scoped to the owner. At most two ids are
	// returned; two is enough to detect ambiguity.
	IDsByKey(context context.Context, target Target, ownerID uuid.UUID, value string, includeTrashed bool) ([]int64, error)
}

type Resolver struct {
	store Store
}

func New(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve maps the supplied attributes to a row id.
//
// When both attributes are present the id is authoritative for the lookup,
// but the stored key must agree with the supplied one — the resolver never
// silently prefers one attribute over the other. An id alone passes through
// untouched; existence is the caller's next fetch to decide. A key alone is
// looked up by value.
func (resolver *Resolver) Resolve(context context.Context, ownerID uuid.UUID, target Target, input Input) (Resolution, error) {
	logger := ctxutil.GetLogger(context)

	switch {
	case input.ID != nil && input.Key != nil:
		stored, err := resolver.store.KeyByID(context, target, ownerID, *input.ID, input.IncludeTrashed)
		if errors.Is(err, dberr.ErrNotFound) {
			logger.Info("identifier mismatch: id not found", "resource", target.Label, "id", *input.ID)
			return Resolution{Mismatch: true}, nil
		}
		if err != nil {
			return Resolution{}, err
		}
		// A row without a key value cannot agree with any supplied key.
		if stored == nil || !strings.EqualFold(*stored, *input.Key) {
			logger.Info("identifier mismatch: key differs", "resource", target.Label, "id", *input.ID)
			return Resolution{Mismatch: true}, nil
		}
		return Resolution{ID: input.ID}, nil

	case input.ID != nil:
		return Resolution{ID: input.ID}, nil

	case input.Key != nil:
		ids, err := resolver.store.IDsByKey(context, target, ownerID, *input.Key, input.IncludeTrashed)
		if err != nil {
			return Resolution{}, err
		}
		switch len(ids) {
		case 0:
			return Resolution{}, nil
		case 1:
			return Resolution{ID: &ids[0]}, nil
		default:
			logger.Info("identifier ambiguous: multiple rows share key", "resource", target.Label)
			return Resolution{Multiple: true}, nil
		}

	default:
		return Resolution{}, nil
	}
}
