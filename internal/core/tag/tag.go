// Copyright (c) 2026 Shelfmark. All rights reserved.

// Package tag manages the free-form labels a user attaches to books. The
// URL-safe slug is derived from the name, never supplied by the client.
package tag

import (
	"time"

	"github.com/shelfmark/shelfmark/internal/catalog/lifecycle"
	"github.com/shelfmark/shelfmark/internal/catalog/query"
	"github.com/shelfmark/shelfmark/internal/catalog/resolve"
	"github.com/shelfmark/shelfmark/internal/platform/database/schema"
)

type Tag struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Global field names for validation
const (
	FieldName = "name"
)

var listSchema = &query.Schema{
	Filters: map[string]query.Field{
		"name": {Column: schema.CatalogTag.Name, Op: query.OpContains, Kind: query.KindString},
		"slug": {Column: schema.CatalogTag.Slug, Op: query.OpEquals, Kind: query.KindString},
	},
	Sorts: map[string]string{
		"name":    schema.CatalogTag.Name,
		"created": schema.CatalogTag.CreatedAt,
	},
	DefaultSort: "name",
	MaxLimit:    200,
}

// Tags have no merge-eligible fields; merge mode still repoints book links
// onto the surviving tag and purges the trashed one.
var definition = lifecycle.Definition{
	Label:         "tag",
	Table:         schema.CatalogTag.Table,
	IDColumn:      schema.CatalogTag.ID,
	OwnerColumn:   schema.CatalogTag.OwnerID,
	KeyColumn:     schema.CatalogTag.Name,
	DeletedColumn: schema.CatalogTag.DeletedAt,
	UpdatedColumn: schema.CatalogTag.UpdatedAt,
	Refs: []lifecycle.Ref{
		{
			Table:       schema.CatalogBookTag.Table,
			Column:      schema.CatalogBookTag.TagID,
			DeleteRow:   true,
			DedupColumn: schema.CatalogBookTag.BookID,
		},
	},
	Modes: []lifecycle.Mode{lifecycle.ModeMerge, lifecycle.ModeOverride},
}

var resolveTarget = resolve.For("tag", schema.CatalogTag.Table, schema.CatalogTag.Name)
