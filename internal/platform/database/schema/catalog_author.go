package schema

// CatalogAuthorTable represents the 'catalog.author' table
type CatalogAuthorTable struct {
	Table     string
	ID        string
	OwnerID   string
	Name      string
	Bio       string
	Born      string
	Died      string
	CreatedAt string
	UpdatedAt string
	DeletedAt string
}

// CatalogAuthor is the schema definition for catalog.author
var CatalogAuthor = CatalogAuthorTable{
	Table:     "catalog.author",
	ID:        "id",
	OwnerID:   "ownerid",
	Name:      "name",
	Bio:       "bio",
	Born:      "born",
	Died:      "died",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
	DeletedAt: "deletedat",
}

func (t CatalogAuthorTable) Columns() []string {
	return []string{t.ID, t.OwnerID, t.Name, t.Bio, t.Born, t.Died, t.CreatedAt, t.UpdatedAt, t.DeletedAt}
}
