// ABOUTME: Partial-update payloads for every entity
// ABOUTME: Nil fields keep the prior value; Clear flags null optional references
package models

import (
	"time"

	"github.com/google/uuid"
)

type ContactPatch struct {
	Name     *string
	Email    *string
	Phone    *string
	Company  *string
	Position *string
	Notes    *string
}

func (p ContactPatch) Apply(c *Contact) {
	set(&c.Name, p.Name)
	set(&c.Email, p.Email)
	set(&c.Phone, p.Phone)
	set(&c.Company, p.Company)
	set(&c.Position, p.Position)
	set(&c.Notes, p.Notes)
}

type CompanyPatch struct {
	Name     *string
	Domain   *string
	Industry *string
	Notes    *string
}

func (p CompanyPatch) Apply(c *Company) {
	set(&c.Name, p.Name)
	set(&c.Domain, p.Domain)
	set(&c.Industry, p.Industry)
	set(&c.Notes, p.Notes)
}

type DealPatch struct {
	Title              *string
	Value              *int64
	Stage              *Stage
	ContactID          *uuid.UUID
	Probability        *int
	ExpectedCloseDate  *time.Time
	ClearExpectedClose bool
}

func (p DealPatch) Apply(d *Deal) {
	set(&d.Title, p.Title)
	set(&d.Value, p.Value)
	set(&d.Stage, p.Stage)
	setRef(&d.ContactID, p.ContactID, false)
	set(&d.Probability, p.Probability)
	setRef(&d.ExpectedCloseDate, p.ExpectedCloseDate, p.ClearExpectedClose)
}

type TaskPatch struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	Priority     *Priority
	Completed    *bool
	ContactID    *uuid.UUID
	ClearContact bool
}

func (p TaskPatch) Apply(t *Task) {
	set(&t.Title, p.Title)
	set(&t.Description, p.Description)
	set(&t.DueDate, p.DueDate)
	set(&t.Priority, p.Priority)
	set(&t.Completed, p.Completed)
	setRef(&t.ContactID, p.ContactID, p.ClearContact)
}

type ActivityPatch struct {
	Type        *ActivityType
	ContactID   *uuid.UUID
	DealID      *uuid.UUID
	ClearDeal   bool
	Description *string
	Date        *time.Time
	Duration    *int
	Tags        *[]string
}

func (p ActivityPatch) Apply(a *Activity) {
	set(&a.Type, p.Type)
	setRef(&a.ContactID, p.ContactID, false)
	setRef(&a.DealID, p.DealID, p.ClearDeal)
	set(&a.Description, p.Description)
	set(&a.Date, p.Date)
	set(&a.Duration, p.Duration)
	set(&a.Tags, p.Tags)
}

type QuotePatch struct {
	Name           *string
	Status         *QuoteStatus
	CompanyID      *uuid.UUID
	ContactID      *uuid.UUID
	DealID         *uuid.UUID
	ClearCompany   bool
	ClearContact   bool
	ClearDeal      bool
	DeliveryMethod *string
	QuoteDate      *time.Time
	ExpiresOn      *time.Time
	ClearExpiry    bool
	Billing        *Address
	Shipping       *Address
	Tags           *[]string
}

func (p QuotePatch) Apply(q *Quote) {
	set(&q.Name, p.Name)
	set(&q.Status, p.Status)
	setRef(&q.CompanyID, p.CompanyID, p.ClearCompany)
	setRef(&q.ContactID, p.ContactID, p.ClearContact)
	setRef(&q.DealID, p.DealID, p.ClearDeal)
	set(&q.DeliveryMethod, p.DeliveryMethod)
	set(&q.QuoteDate, p.QuoteDate)
	setRef(&q.ExpiresOn, p.ExpiresOn, p.ClearExpiry)
	set(&q.Billing, p.Billing)
	set(&q.Shipping, p.Shipping)
	set(&q.Tags, p.Tags)
}

func set[V any](dst *V, src *V) {
	if src != nil {
		*dst = *src
	}
}

func setRef[V any](dst **V, src *V, unset bool) {
	switch {
	case unset:
		*dst = nil
	case src != nil:
		v := *src
		*dst = &v
	}
}
