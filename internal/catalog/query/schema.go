// Copyright (c) 2026 Shelfmark. All rights reserved.

/*
Package query compiles raw, untyped list-request parameters into a validated
query plan of predicates, sort clauses, and pagination bounds.

# Architecture

Every catalog resource declares a static [Schema]: an allow-list mapping
external filter names to internal column references, accepted operators, and
value types. Compilation rejects anything outside the allow-list — an
unvalidated field name is never interpolated into SQL, and every comparison
value travels as a typed bound parameter.

Validation failures accumulate; the compiler never fails fast. The caller
receives every malformed filter, unknown sort field, and out-of-range bound
in one list, so the whole request can be rejected with a single complete
error response.

# Concurrency

Compilation is a pure in-memory function with no shared mutable state; a
single Schema value is safely shared by concurrent requests.
*/
package query

// Op identifies the comparison operator a filter field supports.
type Op int

const (
	// OpEquals matches exact values (case-insensitive for strings).
	OpEquals Op = iota
	// OpContains performs a case-insensitive substring match.
	OpContains
	// OpIn matches any value of a comma-separated set.
	OpIn
	// OpGte matches values greater than or equal to the bound.
	OpGte
	// OpLte matches values less than or equal to the bound.
	OpLte
)

// Kind identifies the Go/SQL type a filter value is coerced to.
type Kind int

const (
	// KindString binds the value as text.
	KindString Kind = iota
	// KindInt binds the value as a 64-bit integer.
	KindInt
	// KindBool binds the value as a boolean.
	KindBool
)

// Field describes one allow-listed filter: the column it targets, the
// operator applied, and the type its values are coerced to.
type Field struct {
	Column string
	Op     Op
	Kind   Kind
}

// Schema is the static, per-resource allow-list driving compilation.
//
// Filters and Sorts map external request names to internal column
// references; nothing outside these maps ever reaches the SQL layer.
type Schema struct {
	// Filters maps external filter names to their field definitions.
	Filters map[string]Field

	// Sorts maps external sort names to sortable column references.
	Sorts map[string]string

	// DefaultSort is the external sort name applied when none is requested.
	// It must be a key of Sorts.
	DefaultSort string

	// DefaultDesc orders the default sort descending when true.
	DefaultDesc bool

	// MaxLimit is the largest page size this resource accepts.
	MaxLimit int
}

// reserved parameter names consumed by the compiler itself rather than
// treated as filters.
var reservedParams = map[string]bool{
	"sort":            true,
	"order":           true,
	"limit":           true,
	"offset":          true,
	"match":           true,
	"include_trashed": true,
}
