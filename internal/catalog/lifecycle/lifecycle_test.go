// Copyright (c) 2026 Shelfmark. All rights reserved.

package lifecycle_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/catalog/lifecycle"
	"github.com/shelfmark/shelfmark/internal/platform/dberr"
)

/*
TestRestoreEach_MixedOutcomes verifies the batch contract: every id yields
one result in input order, a blocked sibling never disturbs the others, and
the counters match the per-item statuses.
*/
func TestRestoreEach_MixedOutcomes(t *testing.T) {
	definition := publisherDefinition()
	outcomes := map[int64]lifecycle.Outcome{
		11: {Restored: true, EffectiveID: 11},
		22: {Reason: `An active publisher "Ace Books" (id 9) holds this name`, EffectiveID: 9},
		33: {Restored: true, EffectiveID: 33},
	}

	var calls []int64
	batch := lifecycle.RestoreEach(context.Background(), definition, []int64{11, 22, 33}, func(id int64) (lifecycle.Outcome, error) {
		calls = append(calls, id)
		return outcomes[id], nil
	})

	assert.Equal(t, []int64{11, 22, 33}, calls)
	assert.Equal(t, 2, batch.RestoredCount)
	assert.Equal(t, 1, batch.FailedCount)
	require.Len(t, batch.Results, 3)

	assert.Equal(t, int64(11), batch.Results[0].ID)
	assert.Equal(t, lifecycle.StatusRestored, batch.Results[0].Status)
	require.NotNil(t, batch.Results[0].EffectiveID)
	assert.Equal(t, int64(11), *batch.Results[0].EffectiveID)

	assert.Equal(t, int64(22), batch.Results[1].ID)
	assert.Equal(t, lifecycle.StatusFailed, batch.Results[1].Status)
	assert.Contains(t, batch.Results[1].Reason, "Ace Books")
	assert.Nil(t, batch.Results[1].EffectiveID)

	assert.Equal(t, int64(33), batch.Results[2].ID)
	assert.Equal(t, lifecycle.StatusRestored, batch.Results[2].Status)
}

/*
TestRestoreEach_ErrorIsolation checks that one item's error fails only that
item: a client-grade error surfaces its message, an unexpected one is
replaced by a generic reason, and later ids still run.
*/
func TestRestoreEach_ErrorIsolation(t *testing.T) {
	definition := publisherDefinition()

	batch := lifecycle.RestoreEach(context.Background(), definition, []int64{1, 2, 3}, func(id int64) (lifecycle.Outcome, error) {
		switch id {
		case 1:
			return lifecycle.Outcome{}, dberr.ErrNotFound
		case 2:
			return lifecycle.Outcome{}, errors.New("connection reset")
		default:
			return lifecycle.Outcome{Restored: true, EffectiveID: id}, nil
		}
	})

	assert.Equal(t, 1, batch.RestoredCount)
	assert.Equal(t, 2, batch.FailedCount)
	require.Len(t, batch.Results, 3)

	assert.Equal(t, lifecycle.StatusFailed, batch.Results[0].Status)
	assert.Equal(t, dberr.ErrNotFound.Message, batch.Results[0].Reason)

	assert.Equal(t, lifecycle.StatusFailed, batch.Results[1].Status)
	assert.Equal(t, "Internal error", batch.Results[1].Reason)

	assert.Equal(t, lifecycle.StatusRestored, batch.Results[2].Status)
}

/*
TestRestoreEach_EmptyInput pins the zero case: no ids, no results, both
counters zero.
*/
func TestRestoreEach_EmptyInput(t *testing.T) {
	batch := lifecycle.RestoreEach(context.Background(), publisherDefinition(), nil, func(int64) (lifecycle.Outcome, error) {
		t.Fatal("restore must not run without ids")
		return lifecycle.Outcome{}, nil
	})

	assert.Empty(t, batch.Results)
	assert.Zero(t, batch.RestoredCount)
	assert.Zero(t, batch.FailedCount)
}
