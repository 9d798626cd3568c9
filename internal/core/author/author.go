// Copyright (c) 2026 Shelfmark. All rights reserved.

// Package author manages the writers in a user's catalog.
package author

import (
	"time"

	"github.com/shelfmark/shelfmark/internal/catalog/lifecycle"
	"github.com/shelfmark/shelfmark/internal/catalog/query"
	"github.com/shelfmark/shelfmark/internal/catalog/resolve"
	"github.com/shelfmark/shelfmark/internal/platform/database/schema"
)

// Author represents one writer in a user's catalog. Born and Died are
// partial dates: "1960", "1960-05" and "1960-05-17" are all valid.
type Author struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Bio       *string    `json:"bio"`
	Born      *string    `json:"born"`
	Died      *string    `json:"died"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Global field names for validation
const (
	FieldName = "name"
	FieldBio  = "bio"
	FieldBorn = "born"
	FieldDied = "died"
)

// listSchema is the filter/sort allow-list for author listings.
var listSchema = &query.Schema{
	Filters: map[string]query.Field{
		"name": {Column: schema.CatalogAuthor.Name, Op: query.OpContains, Kind: query.KindString},
	},
	Sorts: map[string]string{
		"name":    schema.CatalogAuthor.Name,
		"created": schema.CatalogAuthor.CreatedAt,
		"born":    schema.CatalogAuthor.Born,
	},
	DefaultSort: "name",
	MaxLimit:    200,
}

// Authors allow only the decline conflict mode: two people can share a
// name, so merging or overriding records automatically is never safe.
var definition = lifecycle.Definition{
	Label:         "author",
	Table:         schema.CatalogAuthor.Table,
	IDColumn:      schema.CatalogAuthor.ID,
	OwnerColumn:   schema.CatalogAuthor.OwnerID,
	KeyColumn:     schema.CatalogAuthor.Name,
	DeletedColumn: schema.CatalogAuthor.DeletedAt,
	UpdatedColumn: schema.CatalogAuthor.UpdatedAt,
	Refs: []lifecycle.Ref{
		{Table: schema.CatalogBook.Table, Column: schema.CatalogBook.AuthorID},
	},
}

var resolveTarget = resolve.For("author", schema.CatalogAuthor.Table, schema.CatalogAuthor.Name)
