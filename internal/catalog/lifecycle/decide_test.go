// Copyright (c) 2026 Shelfmark. All rights reserved.

package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/catalog/lifecycle"
)

func publisherDefinition() lifecycle.Definition {
	return lifecycle.Definition{
		Label:         "publisher",
		Table:         "catalog.publisher",
		IDColumn:      "id",
		OwnerColumn:   "ownerid",
		KeyColumn:     "name",
		DeletedColumn: "deletedat",
		UpdatedColumn: "updatedat",
		MergeColumns:  []string{"city", "website"},
		Modes:         []lifecycle.Mode{lifecycle.ModeMerge, lifecycle.ModeOverride},
	}
}

/*
TestDecide_NoCollision verifies that without a blocking active row the plan
is a plain restore regardless of mode.
*/
func TestDecide_NoCollision(t *testing.T) {
	definition := publisherDefinition()
	trashed := lifecycle.Row{ID: 5, Key: "Ace Books"}

	for _, mode := range []lifecycle.Mode{lifecycle.ModeDecline, lifecycle.ModeMerge, lifecycle.ModeOverride} {
		script := lifecycle.Decide(definition, trashed, nil, mode)

		assert.False(t, script.Blocked)
		require.NotNil(t, script.RestoreID)
		assert.Equal(t, int64(5), *script.RestoreID)
		assert.Equal(t, int64(5), script.EffectiveID)
		assert.Nil(t, script.TrashID)
		assert.Nil(t, script.PurgeID)
		assert.Nil(t, script.RepointFrom)
	}
}

/*
TestDecide_Decline verifies the default mode blocks with a reason naming
the active row and plans no writes.
*/
func TestDecide_Decline(t *testing.T) {
	definition := publisherDefinition()
	trashed := lifecycle.Row{ID: 5, Key: "Ace Books"}
	active := &lifecycle.Row{ID: 9, Key: "ace books"}

	script := lifecycle.Decide(definition, trashed, active, lifecycle.ModeDecline)

	assert.True(t, script.Blocked)
	assert.Contains(t, script.BlockReason, "ace books")
	assert.Contains(t, script.BlockReason, "9")
	assert.Nil(t, script.RestoreID)
	assert.Nil(t, script.TrashID)
	assert.Nil(t, script.PurgeID)
	assert.Nil(t, script.RepointFrom)
}

/*
TestDecide_Merge verifies merge fills only the active row's empty fields,
repoints references toward the active id, and purges the trashed id. The
surviving id is the active one.
*/
func TestDecide_Merge(t *testing.T) {
	definition := publisherDefinition()
	trashed := lifecycle.Row{
		ID:  5,
		Key: "Ace Books",
		Fields: map[string]any{
			"city":    "New York",
			"website": "https://aceb.example",
		},
	}
	active := &lifecycle.Row{
		ID:  9,
		Key: "Ace Books",
		Fields: map[string]any{
			"city":    "",
			"website": "https://ace.example",
		},
	}

	script := lifecycle.Decide(definition, trashed, active, lifecycle.ModeMerge)

	assert.False(t, script.Blocked)
	assert.Equal(t, map[string]any{"city": "New York"}, script.SetOnActive)
	require.NotNil(t, script.RepointFrom)
	require.NotNil(t, script.RepointTo)
	assert.Equal(t, int64(5), *script.RepointFrom)
	assert.Equal(t, int64(9), *script.RepointTo)
	require.NotNil(t, script.PurgeID)
	assert.Equal(t, int64(5), *script.PurgeID)
	assert.Nil(t, script.RestoreID)
	assert.Nil(t, script.TrashID)
	assert.Equal(t, int64(9), script.EffectiveID)
}

/*
TestDecide_MergeTreatsNullAndEmptyAlike checks the emptiness rule: SQL NULL
and "" both count as absent on the active side, and an empty trashed value
is never copied.
*/
func TestDecide_MergeTreatsNullAndEmptyAlike(t *testing.T) {
	definition := publisherDefinition()
	trashed := lifecycle.Row{
		ID:  5,
		Key: "Ace Books",
		Fields: map[string]any{
			"city":    "Boston",
			"website": nil,
		},
	}
	active := &lifecycle.Row{
		ID:  9,
		Key: "Ace Books",
		Fields: map[string]any{
			"city":    nil,
			"website": nil,
		},
	}

	script := lifecycle.Decide(definition, trashed, active, lifecycle.ModeMerge)

	assert.Equal(t, map[string]any{"city": "Boston"}, script.SetOnActive)
}

/*
TestDecide_Override verifies override trashes the active row, repoints its
references at the restored id, and restores the trashed row. The restored
id wins the natural-key slot.
*/
func TestDecide_Override(t *testing.T) {
	definition := publisherDefinition()
	trashed := lifecycle.Row{ID: 5, Key: "Ace Books"}
	active := &lifecycle.Row{ID: 9, Key: "Ace Books"}

	script := lifecycle.Decide(definition, trashed, active, lifecycle.ModeOverride)

	assert.False(t, script.Blocked)
	require.NotNil(t, script.TrashID)
	assert.Equal(t, int64(9), *script.TrashID)
	require.NotNil(t, script.RepointFrom)
	require.NotNil(t, script.RepointTo)
	assert.Equal(t, int64(9), *script.RepointFrom)
	assert.Equal(t, int64(5), *script.RepointTo)
	require.NotNil(t, script.RestoreID)
	assert.Equal(t, int64(5), *script.RestoreID)
	assert.Nil(t, script.PurgeID)
	assert.Equal(t, int64(5), script.EffectiveID)
}

/*
TestParseMode covers the request-value mapping, including the decline
default.
*/
func TestParseMode(t *testing.T) {
	tests := []struct {
		raw   string
		want  lifecycle.Mode
		valid bool
	}{
		{"", lifecycle.ModeDecline, true},
		{"decline", lifecycle.ModeDecline, true},
		{"merge", lifecycle.ModeMerge, true},
		{"override", lifecycle.ModeOverride, true},
		{"obliterate", "", false},
		{"MERGE", "", false},
	}

	for _, tt := range tests {
		t.Run("mode_"+tt.raw, func(t *testing.T) {
			mode, err := lifecycle.ParseMode(tt.raw)
			if !tt.valid {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, mode)
		})
	}
}

/*
TestSupportsMode checks decline is always available and the rest is gated
by the definition.
*/
func TestSupportsMode(t *testing.T) {
	withModes := publisherDefinition()
	assert.True(t, withModes.SupportsMode(lifecycle.ModeDecline))
	assert.True(t, withModes.SupportsMode(lifecycle.ModeMerge))
	assert.True(t, withModes.SupportsMode(lifecycle.ModeOverride))

	declineOnly := lifecycle.Definition{Label: "book"}
	assert.True(t, declineOnly.SupportsMode(lifecycle.ModeDecline))
	assert.False(t, declineOnly.SupportsMode(lifecycle.ModeMerge))
	assert.False(t, declineOnly.SupportsMode(lifecycle.ModeOverride))
}
