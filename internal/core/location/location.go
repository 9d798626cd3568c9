// Copyright (c) 2026 Shelfmark. All rights reserved.

// Package location manages the physical storage places in a user's
// catalog, such as a shelf, a box or a room.
package location

import (
	"time"

	"github.com/shelfmark/shelfmark/internal/catalog/lifecycle"
	"github.com/shelfmark/shelfmark/internal/catalog/query"
	"github.com/shelfmark/shelfmark/internal/catalog/resolve"
	"github.com/shelfmark/shelfmark/internal/platform/database/schema"
)

type Location struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// Global field names for validation
const (
	FieldName        = "name"
	FieldDescription = "description"
)

var listSchema = &query.Schema{
	Filters: map[string]query.Field{
		"name": {Column: schema.CatalogLocation.Name, Op: query.OpContains, Kind: query.KindString},
	},
	Sorts: map[string]string{
		"name":    schema.CatalogLocation.Name,
		"created": schema.CatalogLocation.CreatedAt,
	},
	DefaultSort: "name",
	MaxLimit:    200,
}

var definition = lifecycle.Definition{
	Label:         "location",
	Table:         schema.CatalogLocation.Table,
	IDColumn:      schema.CatalogLocation.ID,
	OwnerColumn:   schema.CatalogLocation.OwnerID,
	KeyColumn:     schema.CatalogLocation.Name,
	DeletedColumn: schema.CatalogLocation.DeletedAt,
	UpdatedColumn: schema.CatalogLocation.UpdatedAt,
	MergeColumns:  []string{schema.CatalogLocation.Description},
	Refs: []lifecycle.Ref{
		{Table: schema.CatalogCopy.Table, Column: schema.CatalogCopy.LocationID},
	},
	Modes: []lifecycle.Mode{lifecycle.ModeMerge, lifecycle.ModeOverride},
}

var resolveTarget = resolve.For("location", schema.CatalogLocation.Table, schema.CatalogLocation.Name)
