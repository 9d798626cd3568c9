package schema

// CatalogPublisherTable represents the 'catalog.publisher' table
type CatalogPublisherTable struct {
	Table     string
	ID        string
	OwnerID   string
	Name      string
	City      string
	Website   string
	CreatedAt string
	UpdatedAt string
	DeletedAt string
}

// CatalogPublisher is the schema definition for catalog.publisher
var CatalogPublisher = CatalogPublisherTable{
	Table:     "catalog.publisher",
	ID:        "id",
	OwnerID:   "ownerid",
	Name:      "name",
	City:      "city",
	Website:   "website",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
	DeletedAt: "deletedat",
}

func (t CatalogPublisherTable) Columns() []string {
	return []string{t.ID, t.OwnerID, t.Name, t.City, t.Website, t.CreatedAt, t.UpdatedAt, t.DeletedAt}
}
