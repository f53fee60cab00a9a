// ABOUTME: Data models for CRM entities
// ABOUTME: Defines Contact, Company, Deal, Task, Activity and Quote structs
package models

import (
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Position  string    `json:"position,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Company struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Domain    string    `json:"domain,omitempty"`
	Industry  string    `json:"industry,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Deal struct {
	ID                uuid.UUID  `json:"id"`
	Title             string     `json:"title" validate:"required"`
	Value             int64      `json:"value" validate:"gte=0"` // in cents
	Stage             Stage      `json:"stage"`
	ContactID         *uuid.UUID `json:"contact_id,omitempty" validate:"required"`
	Probability       int        `json:"probability" validate:"gte=0,lte=100"`
	ExpectedCloseDate *time.Time `json:"expected_close_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description,omitempty"`
	DueDate     time.Time  `json:"due_date" validate:"required"`
	Priority    Priority   `json:"priority"`
	Completed   bool       `json:"completed"`
	ContactID   *uuid.UUID `json:"contact_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsOverdue returns true if the task is past its due date and not completed.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Completed {
		return false
	}
	return t.DueDate.Before(now)
}

type Activity struct {
	ID          uuid.UUID    `json:"id"`
	Type        ActivityType `json:"type"`
	ContactID   *uuid.UUID   `json:"contact_id" validate:"required"`
	DealID      *uuid.UUID   `json:"deal_id,omitempty"`
	Description string       `json:"description" validate:"required"`
	Date        time.Time    `json:"date"`
	Duration    int          `json:"duration,omitempty" validate:"gte=0"` // minutes
	Tags        []string     `json:"tags,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Address is a postal block used for quote billing and shipping.
type Address struct {
	NameTo  string `json:"name_to,omitempty"`
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	Pincode string `json:"pincode,omitempty"`
}

type Quote struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name" validate:"required"`
	Status         QuoteStatus `json:"status"`
	CompanyID      *uuid.UUID  `json:"company_id,omitempty"`
	ContactID      *uuid.UUID  `json:"contact_id,omitempty"`
	DealID         *uuid.UUID  `json:"deal_id,omitempty"`
	DeliveryMethod string      `json:"delivery_method,omitempty"`
	QuoteDate      time.Time   `json:"quote_date"`
	ExpiresOn      *time.Time  `json:"expires_on,omitempty"`
	Billing        Address     `json:"billing"`
	Shipping       Address     `json:"shipping"`
	Tags           []string    `json:"tags,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
