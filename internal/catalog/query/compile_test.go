// Copyright (c) 2026 Shelfmark. All rights reserved.

package query_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/catalog/query"
)

// bookSchema mirrors the shape of a real resource allow-list.
func bookSchema() *query.Schema {
	return &query.Schema{
		Filters: map[string]query.Field{
			"title":     {Column: "title", Op: query.OpContains, Kind: query.KindString},
			"isbn":      {Column: "isbn", Op: query.OpEquals, Kind: query.KindString},
			"author":    {Column: "authorid", Op: query.OpIn, Kind: query.KindInt},
			"pages_min": {Column: "pagecount", Op: query.OpGte, Kind: query.KindInt},
			"pages_max": {Column: "pagecount", Op: query.OpLte, Kind: query.KindInt},
		},
		Sorts: map[string]string{
			"title":   "title",
			"created": "createdat",
		},
		DefaultSort: "title",
		MaxLimit:    200,
	}
}

/*
TestCompile_Defaults verifies that an empty request compiles to default
sorting and no limiting clauses at all.
*/
func TestCompile_Defaults(t *testing.T) {
	plan, errs := query.Compile(bookSchema(), url.Values{})
	require.Empty(t, errs)

	assert.Empty(t, plan.Predicates)
	assert.Nil(t, plan.Limit)
	assert.Nil(t, plan.Offset)

	where, args := plan.Where(1)
	assert.Equal(t, "", where)
	assert.Empty(t, args)

	tail, tailArgs := plan.Tail(1)
	assert.Equal(t, " ORDER BY title ASC", tail)
	assert.Empty(t, tailArgs)
}

/*
TestCompile_UnknownField ensures anything outside the allow-list is rejected
and never reaches SQL rendering.
*/
func TestCompile_UnknownField(t *testing.T) {
	plan, errs := query.Compile(bookSchema(), url.Values{"publisherName": {"acme"}})

	require.Nil(t, plan)
	require.Len(t, errs, 1)
	assert.Equal(t, "publisherName", errs[0].Field)
	assert.Equal(t, "Unknown filter field", errs[0].Message)
}

/*
TestCompile_AccumulatesErrors checks the no-fail-fast contract: a request
with several problems reports all of them together.
*/
func TestCompile_AccumulatesErrors(t *testing.T) {
	raw := url.Values{
		"title": {"foo"},
		"sort":  {"bogusField"},
		"limit": {"99999"},
	}

	plan, errs := query.Compile(bookSchema(), raw)
	require.Nil(t, plan)
	require.Len(t, errs, 2)

	fields := []string{errs[0].Field, errs[1].Field}
	assert.Contains(t, fields, "sort")
	assert.Contains(t, fields, "limit")

	for _, fieldError := range errs {
		if fieldError.Field == "limit" {
			assert.Contains(t, fieldError.Message, "200")
		}
	}
}

/*
TestCompile_TypedValues verifies value coercion and coercion failures.
*/
func TestCompile_TypedValues(t *testing.T) {
	tests := []struct {
		name   string
		params url.Values
		valid  bool
	}{
		{"int_ok", url.Values{"pages_min": {"100"}}, true},
		{"int_bad", url.Values{"pages_min": {"lots"}}, false},
		{"set_ok", url.Values{"author": {"1,2,3"}}, true},
		{"set_bad_element", url.Values{"author": {"1,two"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, errs := query.Compile(bookSchema(), tt.params)
			if tt.valid {
				require.Empty(t, errs)
				require.Len(t, plan.Predicates, 1)
			} else {
				assert.NotEmpty(t, errs)
			}
		})
	}
}

/*
TestCompile_WhereRendering checks placeholder numbering and bound args for a
mixed predicate set.
*/
func TestCompile_WhereRendering(t *testing.T) {
	raw := url.Values{
		"title":     {"dune"},
		"pages_min": {"100"},
	}

	plan, errs := query.Compile(bookSchema(), raw)
	require.Empty(t, errs)

	// Base query binds $1 (owner id); compiled predicates continue from $2.
	where, args := plan.Where(1)
	assert.Equal(t, " AND pagecount >= $2 AND title ILIKE $3", where)
	require.Len(t, args, 2)
	assert.Equal(t, int64(100), args[0])
	assert.Equal(t, "%dune%", args[1])
}

/*
TestCompile_MatchModes covers the and/or combination of repeated values.
*/
func TestCompile_MatchModes(t *testing.T) {
	// Default: each value is its own conjunct.
	plan, errs := query.Compile(bookSchema(), url.Values{"title": {"dune", "messiah"}})
	require.Empty(t, errs)
	assert.Len(t, plan.Predicates, 2)

	where, args := plan.Where(0)
	assert.Equal(t, " AND title ILIKE $1 AND title ILIKE $2", where)
	assert.Len(t, args, 2)

	// match=any: one disjunct predicate.
	plan, errs = query.Compile(bookSchema(), url.Values{
		"title": {"dune", "messiah"},
		"match": {"any"},
	})
	require.Empty(t, errs)
	require.Len(t, plan.Predicates, 1)

	where, args = plan.Where(0)
	assert.Equal(t, "(title ILIKE $1 OR title ILIKE $2)", where[len(" AND "):])
	assert.Len(t, args, 2)
}

/*
TestCompile_SetMembership checks IN-set compilation to a bound array.
*/
func TestCompile_SetMembership(t *testing.T) {
	plan, errs := query.Compile(bookSchema(), url.Values{"author": {"4,7"}})
	require.Empty(t, errs)

	where, args := plan.Where(0)
	assert.Equal(t, " AND authorid = ANY($1)", where)
	require.Len(t, args, 1)
	assert.Equal(t, []int64{4, 7}, args[0])
}

/*
TestCompile_Pagination covers limit/offset bounds and rendering.
*/
func TestCompile_Pagination(t *testing.T) {
	tests := []struct {
		name   string
		limit  string
		offset string
		valid  bool
	}{
		{"both_ok", "50", "100", true},
		{"limit_zero", "0", "", false},
		{"limit_negative", "-5", "", false},
		{"limit_over_max", "201", "", false},
		{"offset_negative", "", "-1", false},
		{"limit_not_int", "abc", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := url.Values{}
			if tt.limit != "" {
				raw.Set("limit", tt.limit)
			}
			if tt.offset != "" {
				raw.Set("offset", tt.offset)
			}

			plan, errs := query.Compile(bookSchema(), raw)
			if !tt.valid {
				assert.NotEmpty(t, errs)
				return
			}

			require.Empty(t, errs)
			tail, args := plan.Tail(0)
			assert.Equal(t, " ORDER BY title ASC LIMIT $1 OFFSET $2", tail)
			assert.Equal(t, []any{50, 100}, args)
		})
	}
}

/*
TestCompile_ContainsEscapesWildcards ensures LIKE metacharacters in a
substring filter match literally instead of acting as wildcards.
*/
func TestCompile_ContainsEscapesWildcards(t *testing.T) {
	plan, errs := query.Compile(bookSchema(), url.Values{"title": {`100%_\`}})
	require.Empty(t, errs)

	_, args := plan.Where(0)
	require.Len(t, args, 1)
	assert.Equal(t, `%100\%\_\\%`, args[0])
}

/*
TestCompile_IncludeTrashed covers the trash-visibility flag: off by default,
parsed as a boolean, never treated as a filter field.
*/
func TestCompile_IncludeTrashed(t *testing.T) {
	plan, errs := query.Compile(bookSchema(), url.Values{})
	require.Empty(t, errs)
	assert.False(t, plan.IncludeTrashed)

	plan, errs = query.Compile(bookSchema(), url.Values{"include_trashed": {"true"}})
	require.Empty(t, errs)
	assert.True(t, plan.IncludeTrashed)
	assert.Empty(t, plan.Predicates)

	_, errs = query.Compile(bookSchema(), url.Values{"include_trashed": {"maybe"}})
	require.Len(t, errs, 1)
	assert.Equal(t, "include_trashed", errs[0].Field)
}

/*
TestCompile_CaseInsensitiveEquality verifies string equality binds through
lower() on both sides rather than concatenating the value.
*/
func TestCompile_CaseInsensitiveEquality(t *testing.T) {
	plan, errs := query.Compile(bookSchema(), url.Values{"isbn": {"978-0441013593"}})
	require.Empty(t, errs)

	where, args := plan.Where(0)
	assert.Equal(t, " AND lower(isbn) = lower($1)", where)
	assert.Equal(t, []any{"978-0441013593"}, args)
}
