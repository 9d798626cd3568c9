package schema

// CatalogTagTable represents the 'catalog.tag' table
type CatalogTagTable struct {
	Table     string
	ID        string
	OwnerID   string
	Name      string
	Slug      string
	CreatedAt string
	UpdatedAt string
	DeletedAt string
}

// CatalogTag is the schema definition for catalog.tag
var CatalogTag = CatalogTagTable{
	Table:     "catalog.tag",
	ID:        "id",
	OwnerID:   "ownerid",
	Name:      "name",
	Slug:      "slug",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
	DeletedAt: "deletedat",
}

func (t CatalogTagTable) Columns() []string {
	return []string{t.ID, t.OwnerID, t.Name, t.Slug, t.CreatedAt, t.UpdatedAt, t.DeletedAt}
}
