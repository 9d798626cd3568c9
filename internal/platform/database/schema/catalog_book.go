package schema

// CatalogBookTable represents the 'catalog.book' table
type CatalogBookTable struct {
	Table       string
	ID          string
	OwnerID     string
	Title       string
	ISBN        string
	AuthorID    string
	PublisherID string
	TypeID      string
	SeriesID    string
	SeriesIndex string
	Published   string
	PageCount   string
	Notes       string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// CatalogBook is the schema definition for catalog.book
var CatalogBook = CatalogBookTable{
	Table:       "catalog.book",
	ID:          "id",
	OwnerID:     "ownerid",
	Title:       "title",
	ISBN:        "isbn",
	AuthorID:    "authorid",
	PublisherID: "publisherid",
	TypeID:      "typeid",
	SeriesID:    "seriesid",
	SeriesIndex: "seriesindex",
	Published:   "published",
	PageCount:   "pagecount",
	Notes:       "notes",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

func (t CatalogBookTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.Title, t.ISBN, t.AuthorID, t.PublisherID, t.TypeID,
		t.SeriesID, t.SeriesIndex, t.Published, t.PageCount, t.Notes,
		t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
