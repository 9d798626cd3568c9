package schema

// CatalogSeriesTable represents the 'catalog.series' table
type CatalogSeriesTable struct {
	Table       string
	ID          string
	OwnerID     string
	Name        string
	Description string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// CatalogSeries is the schema definition for catalog.series
var CatalogSeries = CatalogSeriesTable{
	Table:       "catalog.series",
	ID:          "id",
	OwnerID:     "ownerid",
	Name:        "name",
	Description: "description",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

func (t CatalogSeriesTable) Columns() []string {
	return []string{t.ID, t.OwnerID, t.Name, t.Description, t.CreatedAt, t.UpdatedAt, t.DeletedAt}
}
