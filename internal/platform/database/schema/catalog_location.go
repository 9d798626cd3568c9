package schema

// CatalogLocationTable represents the 'catalog.location' table
type CatalogLocationTable struct {
	Table       string
	ID          string
	OwnerID     string
	Name        string
	Description string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// CatalogLocation is the schema definition for catalog.location
var CatalogLocation = CatalogLocationTable{
	Table:       "catalog.location",
	ID:          "id",
	OwnerID:     "ownerid",
	Name:        "name",
	Description: "description",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

func (t CatalogLocationTable) Columns() []string {
	return []string{t.ID, t.OwnerID, t.Name, t.Description, t.CreatedAt, t.UpdatedAt, t.DeletedAt}
}
