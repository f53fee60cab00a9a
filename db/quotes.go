// ABOUTME: Quote table mapping
// ABOUTME: Quotes support server-side name search, sorting and paging
package db

import (
	"database/sql"

	"github.com/harperreed/crmview/models"
)

// NewQuoteStore returns the SQLite quote store.
func NewQuoteStore(db *sql.DB) *Store[models.Quote] {
	return &Store[models.Quote]{db: db, t: table[models.Quote]{
		kind: models.QuoteKind,
		name: "quotes",
		columns: []string{
			"id", "name", "status", "company_id", "contact_id", "deal_id", "delivery_method", "quote_date", "expires_on",
			"billing_name_to", "billing_street", "billing_city", "billing_state", "billing_country", "billing_pincode",
			"shipping_name_to", "shipping_street", "shipping_city", "shipping_state", "shipping_country", "shipping_pincode",
			"tags", "created_at", "updated_at",
		},
		values: func(q models.Quote) ([]any, error) {
			tags, err := tagsValue(q.Tags)
			if err != nil {
				return nil, err
			}
			b, s := q.Billing, q.Shipping
			return []any{
				q.ID.String(), q.Name, string(q.Status), refValue(q.CompanyID), refValue(q.ContactID), refValue(q.DealID),
				q.DeliveryMethod, q.QuoteDate, timeValue(q.ExpiresOn),
				b.NameTo, b.Street, b.City, b.State, b.Country, b.Pincode,
				s.NameTo, s.Street, s.City, s.State, s.Country, s.Pincode,
				tags, q.CreatedAt, q.UpdatedAt,
			}, nil
		},
		scan: func(row scanner) (models.Quote, error) {
			var q models.Quote
			var companyID, contactID, dealID sql.NullString
			var expires sql.NullTime
			var tags string
			b, s := &q.Billing, &q.Shipping
			err := row.Scan(
				&q.ID, &q.Name, &q.Status, &companyID, &contactID, &dealID, &q.DeliveryMethod, &q.QuoteDate, &expires,
				&b.NameTo, &b.Street, &b.City, &b.State, &b.Country, &b.Pincode,
				&s.NameTo, &s.Street, &s.City, &s.State, &s.Country, &s.Pincode,
				&tags, &q.CreatedAt, &q.UpdatedAt,
			)
			if err != nil {
				return q, err
			}
			q.CompanyID = refFrom(companyID)
			q.ContactID = refFrom(contactID)
			q.DealID = refFrom(dealID)
			q.ExpiresOn = timeFrom(expires)
			q.Tags, err = tagsFrom(tags)
			return q, err
		},
		order:  "created_at DESC, id",
		search: []string{"name"},
		sortable: map[string]string{
			"name":       "name COLLATE NOCASE",
			"status":     "status",
			"quote_date": "quote_date",
			"expires_on": "expires_on",
			"created_at": "created_at",
		},
	}}
}
