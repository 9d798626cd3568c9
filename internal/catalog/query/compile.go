// Copyright (c) 2026 Shelfmark. All rights reserved.

package query

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	querystr "github.com/shelfmark/shelfmark/pkg/query"
)

// MatchMode selects how multiple values for the same logical field combine.
type MatchMode int

const (
	// MatchAll makes each value its own conjunct predicate (the default).
	MatchAll MatchMode = iota
	// MatchAny combines the values into a single disjunct predicate.
	MatchAny
)

// Predicate is one compiled, injection-safe comparison. The column
// reference comes from the allow-list schema; the values are emitted as
// typed bound parameters, never as query text.
type Predicate struct {
	column   string
	op       Op
	kind     Kind
	values   []any
	disjunct bool
}

// Plan is the validated output of Compile: everything a store needs to
// append to its base query.
//
// A nil Limit or Offset means "no clause" — omitting pagination returns the
// full result set by design.
type Plan struct {
	Predicates []Predicate
	SortColumn string
	Desc       bool
	Limit      *int
	Offset     *int

	// IncludeTrashed widens the listing to soft-deleted rows alongside
	// active ones. The default lists active rows only.
	IncludeTrashed bool
}

// Compile validates raw request parameters against the schema and produces
// a query plan.
//
// All violations are accumulated into the returned error list; a non-empty
// list means the request must be rejected wholesale and the plan discarded.
func Compile(schema *Schema, raw url.Values) (*Plan, []apperr.FieldError) {
	plan := &Plan{}
	var errs []apperr.FieldError

	fail := func(field, message string) {
		errs = append(errs, apperr.FieldError{Field: field, Message: message})
	}

	// ── Match mode ────────────────────────────────────────────────────────
	mode := MatchAll
	switch raw.Get("match") {
	case "", "all":
	case "any":
		mode = MatchAny
	default:
		fail("match", "Must be one of: all, any")
	}

	// ── Sorting ───────────────────────────────────────────────────────────
	sortName := raw.Get("sort")
	if sortName == "" {
		sortName = schema.DefaultSort
		plan.Desc = schema.DefaultDesc
	}
	if column, ok := schema.Sorts[sortName]; ok {
		plan.SortColumn = column
	} else {
		fail("sort", fmt.Sprintf("Unknown sort field %q", sortName))
	}

	switch raw.Get("order") {
	case "":
	case "asc":
		plan.Desc = false
	case "desc":
		plan.Desc = true
	default:
		fail("order", "Must be one of: asc, desc")
	}

	// ── Trash visibility ──────────────────────────────────────────────────
	if rawTrashed := raw.Get("include_trashed"); rawTrashed != "" {
		includeTrashed, err := strconv.ParseBool(rawTrashed)
		if err != nil {
			fail("include_trashed", "Must be a boolean")
		}
		plan.IncludeTrashed = includeTrashed
	}

	// ── Pagination ────────────────────────────────────────────────────────
	if rawLimit := raw.Get("limit"); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		switch {
		case err != nil:
			fail("limit", "Must be an integer")
		case limit < 1:
			fail("limit", "Must be at least 1")
		case limit > schema.MaxLimit:
			fail("limit", fmt.Sprintf("Exceeds the maximum of %d", schema.MaxLimit))
		default:
			plan.Limit = &limit
		}
	}

	if rawOffset := raw.Get("offset"); rawOffset != "" {
		offset, err := strconv.Atoi(rawOffset)
		switch {
		case err != nil:
			fail("offset", "Must be an integer")
		case offset < 0:
			fail("offset", "Must not be negative")
		default:
			plan.Offset = &offset
		}
	}

	// ── Filters ───────────────────────────────────────────────────────────
	// Parameter names are visited in sorted order so that the compiled
	// predicate list (and therefore the SQL text) is deterministic.
	names := make([]string, 0, len(raw))
	for name := range raw {
		if !reservedParams[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		field, ok := schema.Filters[name]
		if !ok {
			fail(name, "Unknown filter field")
			continue
		}

		compileField(plan, name, field, raw[name], mode, fail)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return plan, nil
}

// compileField turns all raw values supplied for one logical field into
// predicates, honoring the requested match mode.
func compileField(plan *Plan, name string, field Field, rawValues []string, mode MatchMode, fail func(string, string)) {
	if field.Op == OpIn {
		compileSetField(plan, name, field, rawValues, mode, fail)
		return
	}

	typed := make([]any, 0, len(rawValues))
	for _, rawValue := range rawValues {
		value, err := coerce(field.Kind, rawValue)
		if err != nil {
			fail(name, err.Error())
			continue
		}
		typed = append(typed, value)
	}
	if len(typed) == 0 {
		return
	}

	// Range operators have no meaningful disjunct form; each bound is
	// always its own conjunct.
	if mode == MatchAny && len(typed) > 1 && field.Op != OpGte && field.Op != OpLte {
		plan.Predicates = append(plan.Predicates, Predicate{
			column:   field.Column,
			op:       field.Op,
			kind:     field.Kind,
			values:   typed,
			disjunct: true,
		})
		return
	}

	for _, value := range typed {
		plan.Predicates = append(plan.Predicates, Predicate{
			column: field.Column,
			op:     field.Op,
			kind:   field.Kind,
			values: []any{value},
		})
	}
}

// compileSetField handles OpIn fields, whose raw values are comma-separated
// sets. In all-mode every raw occurrence becomes its own set-membership
// predicate; in any-mode the sets are unioned into one.
func compileSetField(plan *Plan, name string, field Field, rawValues []string, mode MatchMode, fail func(string, string)) {
	var sets [][]any
	for _, rawValue := range rawValues {
		var set []any
		for _, element := range querystr.StringSlice(rawValue) {
			value, err := coerce(field.Kind, element)
			if err != nil {
				fail(name, err.Error())
				continue
			}
			set = append(set, value)
		}
		if len(set) > 0 {
			sets = append(sets, set)
		}
	}
	if len(sets) == 0 {
		return
	}

	if mode == MatchAny && len(sets) > 1 {
		var union []any
		for _, set := range sets {
			union = append(union, set...)
		}
		sets = [][]any{union}
	}

	for _, set := range sets {
		plan.Predicates = append(plan.Predicates, Predicate{
			column: field.Column,
			op:     OpIn,
			kind:   field.Kind,
			values: set,
		})
	}
}

// coerce converts one raw string into the field's bound-parameter type.
func coerce(kind Kind, raw string) (any, error) {
	switch kind {
	case KindInt:
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", raw)
		}
		return value, nil
	case KindBool:
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not a boolean", raw)
		}
		return value, nil
	default:
		return raw, nil
	}
}

// # SQL Rendering

// Where renders the predicate list as SQL to append after a base WHERE
// clause. The fragment is either empty or begins with " AND "; argStart is
// the number of bound parameters the base query already holds.
func (p *Plan) Where(argStart int) (string, []any) {
	var builder strings.Builder
	var args []any

	next := func(value any) string {
		args = append(args, value)
		return "$" + strconv.Itoa(argStart+len(args))
	}

	for _, predicate := range p.Predicates {
		builder.WriteString(" AND ")
		builder.WriteString(renderPredicate(predicate, next))
	}

	return builder.String(), args
}

// Tail renders the ORDER BY / LIMIT / OFFSET clauses. argStart must account
// for every parameter already bound, including those emitted by Where.
func (p *Plan) Tail(argStart int) (string, []any) {
	var builder strings.Builder
	var args []any

	direction := "ASC"
	if p.Desc {
		direction = "DESC"
	}
	fmt.Fprintf(&builder, " ORDER BY %s %s", p.SortColumn, direction)

	if p.Limit != nil {
		args = append(args, *p.Limit)
		fmt.Fprintf(&builder, " LIMIT $%d", argStart+len(args))
	}
	if p.Offset != nil {
		args = append(args, *p.Offset)
		fmt.Fprintf(&builder, " OFFSET $%d", argStart+len(args))
	}

	return builder.String(), args
}

// renderPredicate emits the SQL fragment for one predicate. The column name
// comes from the schema allow-list; every value is routed through next(),
// which binds it and returns its placeholder.
func renderPredicate(predicate Predicate, next func(any) string) string {
	switch predicate.op {
	case OpContains:
		if len(predicate.values) == 1 {
			return fmt.Sprintf("%s ILIKE %s", predicate.column, next(contains(predicate.values[0])))
		}
		parts := make([]string, 0, len(predicate.values))
		for _, value := range predicate.values {
			parts = append(parts, fmt.Sprintf("%s ILIKE %s", predicate.column, next(contains(value))))
		}
		return "(" + strings.Join(parts, " OR ") + ")"

	case OpIn:
		return fmt.Sprintf("%s = ANY(%s)", predicate.column, next(anyArray(predicate)))

	case OpGte:
		return fmt.Sprintf("%s >= %s", predicate.column, next(predicate.values[0]))

	case OpLte:
		return fmt.Sprintf("%s <= %s", predicate.column, next(predicate.values[0]))

	default: // OpEquals
		if predicate.disjunct {
			if predicate.kind == KindString {
				return fmt.Sprintf("lower(%s) = ANY(%s)", predicate.column, next(lowerStrings(predicate.values)))
			}
			return fmt.Sprintf("%s = ANY(%s)", predicate.column, next(anyArray(predicate)))
		}
		if predicate.kind == KindString {
			return fmt.Sprintf("lower(%s) = lower(%s)", predicate.column, next(predicate.values[0]))
		}
		return fmt.Sprintf("%s = %s", predicate.column, next(predicate.values[0]))
	}
}

// likeEscaper neutralizes LIKE metacharacters in user-supplied values so a
// filter like "100%" matches the literal text, not a wildcard.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// contains wraps a bound value for ILIKE substring matching.
func contains(value any) string {
	return "%" + likeEscaper.Replace(fmt.Sprint(value)) + "%"
}

// anyArray converts the predicate's values into a typed slice pgx can bind
// as a Postgres array.
func anyArray(predicate Predicate) any {
	switch predicate.kind {
	case KindInt:
		out := make([]int64, len(predicate.values))
		for i, value := range predicate.values {
			out[i] = value.(int64)
		}
		return out
	case KindBool:
		out := make([]bool, len(predicate.values))
		for i, value := range predicate.values {
			out[i] = value.(bool)
		}
		return out
	default:
		out := make([]string, len(predicate.values))
		for i, value := range predicate.values {
			out[i] = value.(string)
		}
		return out
	}
}

// lowerStrings lowercases string values so they can compare against
// lower(column) in a disjunct equality.
func lowerStrings(values []any) []string {
	out := make([]string, len(values))
	for i, value := range values {
		out[i] = strings.ToLower(value.(string))
	}
	return out
}
