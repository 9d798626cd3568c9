// Copyright (c) 2026 Shelfmark. All rights reserved.

// Package book manages the titles in a user's catalog. A book carries two
// natural keys: the ISBN, unique among active rows, and the title, which
// may legitimately repeat (reissues, translations).
package book

import (
	"time"

	"github.com/shelfmark/shelfmark/internal/catalog/lifecycle"
	"github.com/shelfmark/shelfmark/internal/catalog/query"
	"github.com/shelfmark/shelfmark/internal/catalog/resolve"
	"github.com/shelfmark/shelfmark/internal/platform/database/schema"
)

type Book struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	ISBN        *string    `json:"isbn"`
	AuthorID    *int64     `json:"author_id"`
	PublisherID *int64     `json:"publisher_id"`
	TypeID      *int64     `json:"type_id"`
	SeriesID    *int64     `json:"series_id"`
	SeriesIndex *int       `json:"series_index"`
	Published   *string    `json:"published"`
	PageCount   *int       `json:"page_count"`
	Notes       *string    `json:"notes"`
	TagIDs      []int64    `json:"tag_ids"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// Global field names for validation
const (
	FieldTitle       = "title"
	FieldISBN        = "isbn"
	FieldSeriesIndex = "series_index"
	FieldPublished   = "published"
	FieldPageCount   = "page_count"
	FieldNotes       = "notes"
)

var listSchema = &query.Schema{
	Filters: map[string]query.Field{
		"title":     {Column: schema.CatalogBook.Title, Op: query.OpContains, Kind: query.KindString},
		"isbn":      {Column: schema.CatalogBook.ISBN, Op: query.OpEquals, Kind: query.KindString},
		"author":    {Column: schema.CatalogBook.AuthorID, Op: query.OpIn, Kind: query.KindInt},
		"publisher": {Column: schema.CatalogBook.PublisherID, Op: query.OpIn, Kind: query.KindInt},
		"type":      {Column: schema.CatalogBook.TypeID, Op: query.OpIn, Kind: query.KindInt},
		"series":    {Column: schema.CatalogBook.SeriesID, Op: query.OpIn, Kind: query.KindInt},
		"pages_min": {Column: schema.CatalogBook.PageCount, Op: query.OpGte, Kind: query.KindInt},
		"pages_max": {Column: schema.CatalogBook.PageCount, Op: query.OpLte, Kind: query.KindInt},
	},
	Sorts: map[string]string{
		"title":     schema.CatalogBook.Title,
		"created":   schema.CatalogBook.CreatedAt,
		"published": schema.CatalogBook.Published,
		"pages":     schema.CatalogBook.PageCount,
	},
	DefaultSort: "title",
	MaxLimit:    200,
}

// Books allow only the decline conflict mode. The lifecycle key is the
// ISBN; a book without one can never collide on restore.
var definition = lifecycle.Definition{
	Label:         "book",
	Table:         schema.CatalogBook.Table,
	IDColumn:      schema.CatalogBook.ID,
	OwnerColumn:   schema.CatalogBook.OwnerID,
	KeyColumn:     schema.CatalogBook.ISBN,
	DeletedColumn: schema.CatalogBook.DeletedAt,
	UpdatedColumn: schema.CatalogBook.UpdatedAt,
	Refs: []lifecycle.Ref{
		{Table: schema.CatalogCopy.Table, Column: schema.CatalogCopy.BookID},
		{
			Table:       schema.CatalogBookTag.Table,
			Column:      schema.CatalogBookTag.BookID,
			DeleteRow:   true,
			DedupColumn: schema.CatalogBookTag.TagID,
		},
	},
}

var (
	isbnTarget  = resolve.For("book", schema.CatalogBook.Table, schema.CatalogBook.ISBN)
	titleTarget = resolve.For("book", schema.CatalogBook.Table, schema.CatalogBook.Title)
)
