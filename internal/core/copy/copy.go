// Copyright (c) 2026 Shelfmark. All rights reserved.

// Package copy manages the physical copies of books in a user's catalog.
// One book can have several copies, each tracked by a unique shelf code.
package copy

import (
	"time"

	"github.com/shelfmark/shelfmark/internal/catalog/lifecycle"
	"github.com/shelfmark/shelfmark/internal/catalog/query"
	"github.com/shelfmark/shelfmark/internal/catalog/resolve"
	"github.com/shelfmark/shelfmark/internal/platform/database/schema"
)

// Copy represents one physical copy. AcquiredOn is a partial date:
// "2019", "2019-11" and "2019-11-02" are all valid.
type Copy struct {
	ID         int64      `json:"id"`
	Code       string     `json:"code"`
	BookID     *int64     `json:"book_id"`
	LocationID *int64     `json:"location_id"`
	AcquiredOn *string    `json:"acquired_on"`
	PriceCents *int64     `json:"price_cents"`
	Condition  *string    `json:"condition"`
	Notes      *string    `json:"notes"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// Global field names for validation
const (
	FieldCode       = "code"
	FieldAcquiredOn = "acquired_on"
	FieldPriceCents = "price_cents"
	FieldCondition  = "condition"
	FieldNotes      = "notes"
)

// listSchema is the filter/sort allow-list for copy listings.
var listSchema = &query.Schema{
	Filters: map[string]query.Field{
		"code":      {Column: schema.CatalogCopy.Code, Op: query.OpContains, Kind: query.KindString},
		"book":      {Column: schema.CatalogCopy.BookID, Op: query.OpIn, Kind: query.KindInt},
		"location":  {Column: schema.CatalogCopy.LocationID, Op: query.OpIn, Kind: query.KindInt},
		"condition": {Column: schema.CatalogCopy.Condition, Op: query.OpEquals, Kind: query.KindString},
	},
	Sorts: map[string]string{
		"code":     schema.CatalogCopy.Code,
		"created":  schema.CatalogCopy.CreatedAt,
		"acquired": schema.CatalogCopy.AcquiredOn,
	},
	DefaultSort: "code",
	MaxLimit:    200,
}

// Copies allow only the decline conflict mode: a shelf code names one
// physical object, so no two records can ever stand in for each other.
var definition = lifecycle.Definition{
	Label:         "copy",
	Table:         schema.CatalogCopy.Table,
	IDColumn:      schema.CatalogCopy.ID,
	OwnerColumn:   schema.CatalogCopy.OwnerID,
	KeyColumn:     schema.CatalogCopy.Code,
	DeletedColumn: schema.CatalogCopy.DeletedAt,
	UpdatedColumn: schema.CatalogCopy.UpdatedAt,
}

var resolveTarget = resolve.For("copy", schema.CatalogCopy.Table, schema.CatalogCopy.Code)
