// Copyright (c) 2026 Shelfmark. All rights reserved.

// Package series manages the book series in a user's catalog.
package series

import (
	"time"

	"github.com/shelfmark/shelfmark/internal/catalog/lifecycle"
	"github.com/shelfmark/shelfmark/internal/catalog/query"
	"github.com/shelfmark/shelfmark/internal/catalog/resolve"
	"github.com/shelfmark/shelfmark/internal/platform/database/schema"
)

type Series struct {
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
		"name": {Column: schema.CatalogSeries.Name, Op: query.OpContains, Kind: query.KindString},
	},
	Sorts: map[string]string{
		"name":    schema.CatalogSeries.Name,
		"created": schema.CatalogSeries.CreatedAt,
	},
	DefaultSort: "name",
	MaxLimit:    200,
}

var definition = lifecycle.Definition{
	Label:         "series",
	Table:         schema.CatalogSeries.Table,
	IDColumn:      schema.CatalogSeries.ID,
	OwnerColumn:   schema.CatalogSeries.OwnerID,
	KeyColumn:     schema.CatalogSeries.Name,
	DeletedColumn: schema.CatalogSeries.DeletedAt,
	UpdatedColumn: schema.CatalogSeries.UpdatedAt,
	MergeColumns:  []string{schema.CatalogSeries.Description},
	Refs: []lifecycle.Ref{
		{Table: schema.CatalogBook.Table, Column: schema.CatalogBook.SeriesID},
	},
	Modes: []lifecycle.Mode{lifecycle.ModeMerge, lifecycle.ModeOverride},
}

var resolveTarget = resolve.For("series", schema.CatalogSeries.Table, schema.CatalogSeries.Name)
