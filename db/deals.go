// ABOUTME: Deal table mapping
// ABOUTME: Stores value in cents and an optional expected close date
package db

import (
	"database/sql"

	"github.com/harperreed/crmview/models"
)

// NewDealStore returns the SQLite deal store.
func NewDealStore(db *sql.DB) *Store[models.Deal] {
	return &Store[models.Deal]{db: db, t: table[models.Deal]{
		kind:    models.DealKind,
		name:    "deals",
		columns: []string{"id", "title", "value", "stage", "contact_id", "probability", "expected_close_date", "created_at", "updated_at"},
		values: func(d models.Deal) ([]any, error) {
			return []any{
				d.ID.String(), d.Title, d.Value, string(d.Stage), refValue(d.ContactID),
				d.Probability, timeValue(d.ExpectedCloseDate), d.CreatedAt, d.UpdatedAt,
			}, nil
		},
		scan: func(row scanner) (models.Deal, error) {
			var d models.Deal
			var contactID sql.NullString
			var closeDate sql.NullTime
			err := row.Scan(&d.ID, &d.Title, &d.Value, &d.Stage, &contactID, &d.Probability, &closeDate, &d.CreatedAt, &d.UpdatedAt)
			if err != nil {
				return d, err
			}
			d.ContactID = refFrom(contactID)
			d.ExpectedCloseDate = timeFrom(closeDate)
			return d, nil
		},
		order:  "created_at, id",
		search: []string{"title"},
		sortable: map[string]string{
			"title":               "title",
			"value":               "value",
			"stage":               "stage",
			"expected_close_date": "expected_close_date",
			"created_at":          "created_at",
		},
	}}
}
