// ABOUTME: Contact and company table mappings
// ABOUTME: Contacts search by name, email and company; companies by name and domain
package db

import (
	"database/sql"

	"github.com/harperreed/crmview/models"
)

// NewContactStore returns the SQLite contact store.
func NewContactStore(db *sql.DB) *Store[models.Contact] {
	return &Store[models.Contact]{db: db, t: table[models.Contact]{
		kind:    models.ContactKind,
		name:    "contacts",
		columns: []string{"id", "name", "email", "phone", "company", "position", "notes", "created_at", "updated_at"},
		values: func(c models.Contact) ([]any, error) {
			return []any{c.ID.String(), c.Name, c.Email, c.Phone, c.Company, c.Position, c.Notes, c.CreatedAt, c.UpdatedAt}, nil
		},
		scan: func(row scanner) (models.Contact, error) {
			var c models.Contact
			err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Position, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
			return c, err
		},
		order:  "created_at, id",
		search: []string{"name", "email", "company"},
		sortable: map[string]string{
			"name":       "name",
			"company":    "company",
			"created_at": "created_at",
		},
	}}
}

// NewCompanyStore returns the SQLite company store.
func NewCompanyStore(db *sql.DB) *Store[models.Company] {
	return &Store[models.Company]{db: db, t: table[models.Company]{
		kind:    models.CompanyKind,
		name:    "companies",
		columns: []string{"id", "name", "domain", "industry", "notes", "created_at", "updated_at"},
		values: func(c models.Company) ([]any, error) {
			return []any{c.ID.String(), c.Name, c.Domain, c.Industry, c.Notes, c.CreatedAt, c.UpdatedAt}, nil
		},
		scan: func(row scanner) (models.Company, error) {
			var c models.Company
			err := row.Scan(&c.ID, &c.Name, &c.Domain, &c.Industry, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
			return c, err
		},
		order:  "name, id",
		search: []string{"name", "domain"},
		sortable: map[string]string{
			"name":       "name",
			"created_at": "created_at",
		},
	}}
}
