package schema

// CatalogBookTypeTable represents the 'catalog.booktype' table
type CatalogBookTypeTable struct {
	Table       string
	ID          string
	OwnerID     string
	Name        string
	Description string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// CatalogBookType is the schema definition for catalog.booktype
var CatalogBookType = CatalogBookTypeTable{
	Table:       "catalog.booktype",
	ID:          "id",
	OwnerID:     "ownerid",
	Name:        "name",
	Description: "description",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

func (t CatalogBookTypeTable) Columns() []string {
	return []string{t.ID, t.OwnerID, t.Name, t.Description, t.CreatedAt, t.UpdatedAt, t.DeletedAt}
}
