// Copyright (c) 2026 Shelfmark. All rights reserved.

// Package publisher manages the publishing houses in a user's catalog.
package publisher

import (
	"time"

	"github.com/shelfmark/shelfmark/internal/catalog/lifecycle"
	"github.com/shelfmark/shelfmark/internal/catalog/query"
	"github.com/shelfmark/shelfmark/internal/catalog/resolve"
	"github.com/shelfmark/shelfmark/internal/platform/database/schema"
)

type Publisher struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	City      *string    `json:"city"`
	Website   *string    `json:"website"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Global field names for validation
const (
	FieldName    = "name"
	FieldCity    = "city"
	FieldWebsite = "website"
)

var listSchema = &query.Schema{
	Filters: map[string]query.Field{
		"name": {Column: schema.CatalogPublisher.Name, Op: query.OpContains, Kind: query.KindString},
		"city": {Column: schema.CatalogPublisher.City, Op: query.OpEquals, Kind: query.KindString},
	},
	Sorts: map[string]string{
		"name":    schema.CatalogPublisher.Name,
		"created": schema.CatalogPublisher.CreatedAt,
	},
	DefaultSort: "name",
	MaxLimit:    200,
}

var definition = lifecycle.Definition{
	Label:         "publisher",
	Table:         schema.CatalogPublisher.Table,
	IDColumn:      schema.CatalogPublisher.ID,
	OwnerColumn:   schema.CatalogPublisher.OwnerID,
	KeyColumn:     schema.CatalogPublisher.Name,
	DeletedColumn: schema.CatalogPublisher.DeletedAt,
	UpdatedColumn: schema.CatalogPublisher.UpdatedAt,
	MergeColumns:  []string{schema.CatalogPublisher.City, schema.CatalogPublisher.Website},
	Refs: []lifecycle.Ref{
		{Table: schema.CatalogBook.Table, Column: schema.CatalogBook.PublisherID},
	},
	Modes: []lifecycle.Mode{lifecycle.ModeMerge, lifecycle.ModeOverride},
}

var resolveTarget = resolve.For("publisher", schema.CatalogPublisher.Table, schema.CatalogPublisher.Name)
