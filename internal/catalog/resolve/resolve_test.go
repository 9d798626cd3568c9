// Copyright (c) 2026 Shelfmark. All rights reserved.

package resolve_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/catalog/resolve"
	"github.com/shelfmark/shelfmark/internal/platform/dberr"
	"github.com/shelfmark/shelfmark/pkg/pointer"
)

// fakeStore serves canned rows: keys maps id → natural key (nil for a row
// without one), ids maps lowercased key → matching ids.
type fakeStore struct {
	keys map[int64]*string
	ids  map[string][]int64
}

func (store *fakeStore) KeyByID(_ context.Context, _ resolve.Target, _ uuid.UUID, id int64, _ bool) (*string, error) {
	key, ok := store.keys[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return key, nil
}

func (store *fakeStore) IDsByKey(_ context.Context, _ resolve.Target, _ uuid.UUID, value string, _ bool) ([]int64, error) {
	matched := store.ids[value]
	if len(matched) > 2 {
		matched = matched[:2]
	}
	return matched, nil
}

/*
TestResolve covers the full outcome matrix: pass-through ids, key lookups
with zero, one, and many matches, and mismatch detection when both
attributes are supplied.
*/
func TestResolve(t *testing.T) {
	store := &fakeStore{
		keys: map[int64]*string{
			10: pointer.To("Jane Doe"),
			11: pointer.To("John Roe"),
			12: nil,
		},
		ids: map[string][]int64{
			"jane doe": {10},
			"shared":   {20, 21},
		},
	}
	resolver := resolve.New(store)
	target := resolve.For("author", "catalog.author", "name")
	owner := uuid.New()

	tests := []struct {
		name  string
		input resolve.Input
		want  resolve.Resolution
	}{
		{
			name:  "nothing supplied",
			input: resolve.Input{},
			want:  resolve.Resolution{},
		},
		{
			name:  "id only passes through",
			input: resolve.Input{ID: pointer.To(int64(999))},
			want:  resolve.Resolution{ID: pointer.To(int64(999))},
		},
		{
			name:  "key only, single match",
			input: resolve.Input{Key: pointer.To("jane doe")},
			want:  resolve.Resolution{ID: pointer.To(int64(10))},
		},
		{
			name:  "key only, no match",
			input: resolve.Input{Key: pointer.To("nobody")},
			want:  resolve.Resolution{},
		},
		{
			name:  "key only, ambiguous",
			input: resolve.Input{Key: pointer.To("shared")},
			want:  resolve.Resolution{Multiple: true},
		},
		{
			name:  "both agree",
			input: resolve.Input{ID: pointer.To(int64(10)), Key: pointer.To("Jane Doe")},
			want:  resolve.Resolution{ID: pointer.To(int64(10))},
		},
		{
			name:  "both agree case-insensitively",
			input: resolve.Input{ID: pointer.To(int64(10)), Key: pointer.To("JANE DOE")},
			want:  resolve.Resolution{ID: pointer.To(int64(10))},
		},
		{
			name:  "both supplied, key differs",
			input: resolve.Input{ID: pointer.To(int64(10)), Key: pointer.To("John Roe")},
			want:  resolve.Resolution{Mismatch: true},
		},
		{
			name:  "both supplied, id missing",
			input: resolve.Input{ID: pointer.To(int64(404)), Key: pointer.To("Jane Doe")},
			want:  resolve.Resolution{Mismatch: true},
		},
		{
			// A row with no stored key (a book without an ISBN) can
			// never agree with a supplied one.
			name:  "both supplied, stored key is null",
			input: resolve.Input{ID: pointer.To(int64(12)), Key: pointer.To("0441013597")},
			want:  resolve.Resolution{Mismatch: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.Resolve(context.Background(), owner, target, tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.want.Mismatch, got.Mismatch)
			assert.Equal(t, tt.want.Multiple, got.Multiple)
			if tt.want.ID == nil {
				assert.Nil(t, got.ID)
			} else {
				require.NotNil(t, got.ID)
				assert.Equal(t, *tt.want.ID, *got.ID)
			}
		})
	}
}

/*
TestResolve_SingleAttributeNeverMismatches pins the contract that mismatch
can only arise when both attributes are supplied.
*/
func TestResolve_SingleAttributeNeverMismatches(t *testing.T) {
	resolver := resolve.New(&fakeStore{})
	target := resolve.For("author", "catalog.author", "name")
	owner := uuid.New()

	byID, err := resolver.Resolve(context.Background(), owner, target, resolve.Input{ID: pointer.To(int64(1))})
	require.NoError(t, err)
	assert.False(t, byID.Mismatch)

	byKey, err := resolver.Resolve(context.Background(), owner, target, resolve.Input{Key: pointer.To("anything")})
	require.NoError(t, err)
	assert.False(t, byKey.Mismatch)
}
