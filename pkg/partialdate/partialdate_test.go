// Copyright (c) 2026 Shelfmark. All rights reserved.

package partialdate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/pkg/partialdate"
)

/*
TestParse_Structured covers the year / year-month / year-month-day forms.
*/
func TestParse_Structured(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  partialdate.Date
		fails bool
	}{
		{"year_only", "1954", partialdate.Date{Year: 1954}, false},
		{"year_month", "1954-07", partialdate.Date{Year: 1954, Month: 7}, false},
		{"full_date", "1954-07-29", partialdate.Date{Year: 1954, Month: 7, Day: 29}, false},
		{"leap_day", "2020-02-29", partialdate.Date{Year: 2020, Month: 2, Day: 29}, false},
		{"invalid_month", "1954-13", partialdate.Date{}, true},
		{"invalid_day", "1954-02-30", partialdate.Date{}, true},
		{"non_leap_feb29", "2019-02-29", partialdate.Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := partialdate.Parse(tt.raw)
			if tt.fails {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestParse_FreeText verifies that unstructured strings become text dates.
*/
func TestParse_FreeText(t *testing.T) {
	got, err := partialdate.Parse("circa 1920")
	require.NoError(t, err)

	assert.True(t, got.IsText())
	assert.Equal(t, "circa 1920", got.String())
}

/*
TestParse_Empty verifies the zero-value round trip.
*/
func TestParse_Empty(t *testing.T) {
	got, err := partialdate.Parse("   ")
	require.NoError(t, err)

	assert.True(t, got.IsZero())
	assert.Equal(t, "", got.String())
}

/*
TestSortKey checks chronological ordering, including text-after-structured.
*/
func TestSortKey(t *testing.T) {
	yearOnly, _ := partialdate.Parse("1954")
	yearMonth, _ := partialdate.Parse("1954-01")
	fullDate, _ := partialdate.Parse("1954-01-15")
	text, _ := partialdate.Parse("circa 1920")

	assert.Less(t, yearOnly.SortKey(), yearMonth.SortKey())
	assert.Less(t, yearMonth.SortKey(), fullDate.SortKey())
	assert.Greater(t, text.SortKey(), fullDate.SortKey())
}
