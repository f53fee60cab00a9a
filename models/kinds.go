// ABOUTME: Per-entity descriptors shared by stores, repositories and resolvers
// ABOUTME: Each Kind knows how to identify, stamp and normalize its record type
package models

import (
	"cmp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind describes one entity type to the generic storage and lookup layers.
type Kind[T any] struct {
	// Name is the singular lowercase entity name, also used as storage key prefix.
	Name string
	// Label is the display name used in messages and placeholders.
	Label string
	// ID returns the record identifier.
	ID func(T) uuid.UUID
	// Assign stamps identity and timestamps on create.
	Assign func(*T, uuid.UUID, time.Time)
	// Touch stamps the update timestamp.
	Touch func(*T, time.Time)
	// Normalize canonicalises a record before it is written.
	Normalize func(*T)
	// Search returns the text matched by ListParams.Search. Nil disables search.
	Search func(T) []string
	// Order maps ListParams.SortBy values onto comparisons.
	Order map[string]func(a, b T) int
}

// Placeholder is the label shown when a reference to this kind cannot be resolved.
func (k Kind[T]) Placeholder() string {
	return "Unknown " + k.Label
}

var ContactKind = Kind[Contact]{
	Name:  "contact",
	Label: "Contact",
	ID:    func(c Contact) uuid.UUID { return c.ID },
	Assign: func(c *Contact, id uuid.UUID, now time.Time) {
		c.ID, c.CreatedAt, c.UpdatedAt = id, now, now
	},
	Touch:     func(c *Contact, now time.Time) { c.UpdatedAt = now },
	Normalize: (*Contact).Normalize,
	Search:    func(c Contact) []string { return []string{c.Name, c.Email, c.Company} },
	Order: map[string]func(a, b Contact) int{
		"name":       byText(func(c Contact) string { return c.Name }),
		"company":    byText(func(c Contact) string { return c.Company }),
		"created_at": byTime(func(c Contact) time.Time { return c.CreatedAt }),
	},
}

var CompanyKind = Kind[Company]{
	Name:  "company",
	Label: "Company",
	ID:    func(c Company) uuid.UUID { return c.ID },
	Assign: func(c *Company, id uuid.UUID, now time.Time) {
		c.ID, c.CreatedAt, c.UpdatedAt = id, now, now
	},
	Touch:     func(c *Company, now time.Time) { c.UpdatedAt = now },
	Normalize: (*Company).Normalize,
	Search:    func(c Company) []string { return []string{c.Name, c.Domain} },
	Order: map[string]func(a, b Company) int{
		"name":       byText(func(c Company) string { return c.Name }),
		"created_at": byTime(func(c Company) time.Time { return c.CreatedAt }),
	},
}

var DealKind = Kind[Deal]{
	Name:  "deal",
	Label: "Deal",
	ID:    func(d Deal) uuid.UUID { return d.ID },
	Assign: func(d *Deal, id uuid.UUID, now time.Time) {
		d.ID, d.CreatedAt, d.UpdatedAt = id, now, now
	},
	Touch:     func(d *Deal, now time.Time) { d.UpdatedAt = now },
	Normalize: (*Deal).Normalize,
	Search:    func(d Deal) []string { return []string{d.Title} },
	Order: map[string]func(a, b Deal) int{
		"title":               byText(func(d Deal) string { return d.Title }),
		"value":               func(a, b Deal) int { return cmp.Compare(a.Value, b.Value) },
		"stage":               byText(func(d Deal) string { return string(d.Stage) }),
		"expected_close_date": byOptionalTime(func(d Deal) *time.Time { return d.ExpectedCloseDate }),
		"created_at":          byTime(func(d Deal) time.Time { return d.CreatedAt }),
	},
}

var TaskKind = Kind[Task]{
	Name:  "task",
	Label: "Task",
	ID:    func(t Task) uuid.UUID { return t.ID },
	Assign: func(t *Task, id uuid.UUID, now time.Time) {
		t.ID, t.CreatedAt, t.UpdatedAt = id, now, now
		t.Completed = false
	},
	Touch:     func(t *Task, now time.Time) { t.UpdatedAt = now },
	Normalize: (*Task).Normalize,
	Search:    func(t Task) []string { return []string{t.Title, t.Description} },
	Order: map[string]func(a, b Task) int{
		"title":    byText(func(t Task) string { return t.Title }),
		"due_date": byTime(func(t Task) time.Time { return t.DueDate }),
		"priority": byText(func(t Task) string { return string(t.Priority) }),
	},
}

var ActivityKind = Kind[Activity]{
	Name:  "activity",
	Label: "Activity",
	ID:    func(a Activity) uuid.UUID { return a.ID },
	Assign: func(a *Activity, id uuid.UUID, now time.Time) {
		a.ID, a.CreatedAt, a.UpdatedAt = id, now, now
	},
	Touch:     func(a *Activity, now time.Time) { a.UpdatedAt = now },
	Normalize: (*Activity).Normalize,
	Search:    func(a Activity) []string { return []string{a.Description} },
	Order: map[string]func(a, b Activity) int{
		"date": byTime(func(a Activity) time.Time { return a.Date }),
		"type": byText(func(a Activity) string { return string(a.Type) }),
	},
}

var QuoteKind = Kind[Quote]{
	Name:  "quote",
	Label: "Quote",
	ID:    func(q Quote) uuid.UUID { return q.ID },
	Assign: func(q *Quote, id uuid.UUID, now time.Time) {
		q.ID, q.CreatedAt, q.UpdatedAt = id, now, now
	},
	Touch:     func(q *Quote, now time.Time) { q.UpdatedAt = now },
	Normalize: (*Quote).Normalize,
	Search:    func(q Quote) []string { return []string{q.Name} },
	Order: map[string]func(a, b Quote) int{
		"name":       byText(func(q Quote) string { return q.Name }),
		"status":     byText(func(q Quote) string { return string(q.Status) }),
		"quote_date": byTime(func(q Quote) time.Time { return q.QuoteDate }),
		"expires_on": byOptionalTime(func(q Quote) *time.Time { return q.ExpiresOn }),
		"created_at": byTime(func(q Quote) time.Time { return q.CreatedAt }),
	},
}

func byText[T any](field func(T) string) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(strings.ToLower(field(a)), strings.ToLower(field(b)))
	}
}

func byTime[T any](field func(T) time.Time) func(a, b T) int {
	return func(a, b T) int { return field(a).Compare(field(b)) }
}

// byOptionalTime sorts records without a date first, as SQLite does with NULL.
func byOptionalTime[T any](field func(T) *time.Time) func(a, b T) int {
	return func(a, b T) int {
		x, y := field(a), field(b)
		switch {
		case x == nil && y == nil:
			return 0
		case x == nil:
			return -1
		case y == nil:
			return 1
		}
		return x.Compare(*y)
	}
}
