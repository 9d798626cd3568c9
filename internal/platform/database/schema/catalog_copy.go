package schema

// CatalogCopyTable represents the 'catalog.copy' table
type CatalogCopyTable struct {
	Table      string
	ID         string
	OwnerID    string
	Code       string
	BookID     string
	LocationID string
	AcquiredOn string
	PriceCents string
	Condition  string
	Notes      string
	CreatedAt  string
	UpdatedAt  string
	DeletedAt  string
}

// CatalogCopy is the schema definition for catalog.copy
var CatalogCopy = CatalogCopyTable{
	Table:      "catalog.copy",
	ID:         "id",
	OwnerID:    "ownerid",
	Code:       "code",
	BookID:     "bookid",
	LocationID: "locationid",
	AcquiredOn: "acquiredon",
	PriceCents: "pricecents",
	Condition:  "condition",
	Notes:      "notes",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
	DeletedAt:  "deletedat",
}

func (t CatalogCopyTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.Code, t.BookID, t.LocationID, t.AcquiredOn,
		t.PriceCents, t.Condition, t.Notes, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
