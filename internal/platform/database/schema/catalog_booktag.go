package schema

// CatalogBookTagTable represents the 'catalog.booktag' junction table
type CatalogBookTagTable struct {
	Table  string
	BookID string
	TagID  string
}

// CatalogBookTag is the schema definition for catalog.booktag
var CatalogBookTag = CatalogBookTagTable{
	Table:  "catalog.booktag",
	BookID: "bookid",
	TagID:  "tagid",
}

func (t CatalogBookTagTable) Columns() []string {
	return []string{t.BookID, t.TagID}
}
