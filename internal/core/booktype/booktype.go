// Copyright (c) 2026 Shelfmark. All rights reserved.

// Package booktype manages the edition formats in a user's catalog, such
// as hardcover, paperback or ebook.
package booktype

import (
	"time"

	"github.com/shelfmark/shelfmark/internal/catalog/lifecycle"
	"github.com/shelfmark/shelfmark/internal/catalog/query"
	"github.com/shelfmark/shelfmark/internal/catalog/resolve"
	"github.com/shelfmark/shelfmark/internal/platform/database/schema"
)

type BookType struct {
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
		"name": {Column: schema.CatalogBookType.Name, Op: query.OpContains, Kind: query.KindString},
	},
	Sorts: map[string]string{
		"name":    schema.CatalogBookType.Name,
		"created": schema.CatalogBookType.CreatedAt,
	},
	DefaultSort: "name",
	MaxLimit:    200,
}

var definition = lifecycle.Definition{
	Label:         "book type",
	Table:         schema.CatalogBookType.Table,
	IDColumn:      schema.CatalogBookType.ID,
	OwnerColumn:   schema.CatalogBookType.OwnerID,
	KeyColumn:     schema.CatalogBookType.Name,
	DeletedColumn: schema.CatalogBookType.DeletedAt,
	UpdatedColumn: schema.CatalogBookType.UpdatedAt,
	MergeColumns:  []string{schema.CatalogBookType.Description},
	Refs: []lifecycle.Ref{
		{Table: schema.CatalogBook.Table, Column: schema.CatalogBook.TypeID},
	},
	Modes: []lifecycle.Mode{lifecycle.ModeMerge, lifecycle.ModeOverride},
}

var resolveTarget = resolve.For("book type", schema.CatalogBookType.Table, schema.CatalogBookType.Name)
