// Copyright (c) 2026 Shelfmark. All rights reserved.

// Package pagination provides shared types for API list responses.
//
// # Overview
//
// It standardizes how list metadata is delivered in the API response
// envelope. Parsing and validation of limit/offset inputs is owned by the
// query compiler; a list endpoint that sends no limit returns the full
// result set and a Meta with a nil Limit.
package pagination

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	// Total is the number of rows matching the request, ignoring limit/offset.
	Total int `json:"total"`
	// Returned is the number of rows in this response.
	Returned int `json:"returned"`
	// Limit echoes the applied limit; null when the full set was returned.
	Limit *int `json:"limit"`
	// Offset echoes the applied offset; null when none was requested.
	Offset *int `json:"offset"`
}

// NewMeta constructs list metadata for a response.
func NewMeta(total, returned int, limit, offset *int) Meta {
	return Meta{
		Total:    total,
		Returned: returned,
		Limit:    limit,
		Offset:   offset,
	}
}
