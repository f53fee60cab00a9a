// ABOUTME: Activity table mapping
// ABOUTME: Activities list newest first; tags are stored as a JSON array
package db

import (
	"database/sql"

	"github.com/harperreed/crmview/models"
)

// NewActivityStore returns the SQLite activity store.
func NewActivityStore(db *sql.DB) *Store[models.Activity] {
	return &Store[models.Activity]{db: db, t: table[models.Activity]{
		kind:    models.ActivityKind,
		name:    "activities",
		columns: []string{"id", "type", "contact_id", "deal_id", "description", "date", "duration", "tags", "created_at", "updated_at"},
		values: func(a models.Activity) ([]any, error) {
			tags, err := tagsValue(a.Tags)
			if err != nil {
				return nil, err
			}
			return []any{
				a.ID.String(), string(a.Type), refValue(a.ContactID), refValue(a.DealID),
				a.Description, a.Date, a.Duration, tags, a.CreatedAt, a.UpdatedAt,
			}, nil
		},
		scan: func(row scanner) (models.Activity, error) {
			var a models.Activity
			var contactID, dealID sql.NullString
			var tags string
			err := row.Scan(&a.ID, &a.Type, &contactID, &dealID, &a.Description, &a.Date, &a.Duration, &tags, &a.CreatedAt, &a.UpdatedAt)
			if err != nil {
				return a, err
			}
			a.ContactID = refFrom(contactID)
			a.DealID = refFrom(dealID)
			a.Tags, err = tagsFrom(tags)
			return a, err
		},
		order:  "date DESC, id",
		search: []string{"description"},
		sortable: map[string]string{
			"date": "date",
			"type": "type",
		},
	}}
}
