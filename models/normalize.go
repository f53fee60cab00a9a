// ABOUTME: Record normalization applied before every write
// ABOUTME: Trims text, fills enum defaults and clamps numeric ranges
package models

import (
	"strings"
	"time"
)

func (c *Contact) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Company = strings.TrimSpace(c.Company)
	c.Position = strings.TrimSpace(c.Position)
}

func (c *Company) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Domain = strings.ToLower(strings.TrimSpace(c.Domain))
}

func (d *Deal) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	if d.Stage == "" {
		d.Stage = StageLead
	}
	d.Stage = canonical(d.Stage, Stages)
	if d.Probability < 0 {
		d.Probability = 0
	}
	if d.Probability > 100 {
		d.Probability = 100
	}
}

func (t *Task) Normalize() {
	t.Title = strings.TrimSpace(t.Title)
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	t.Priority = canonical(t.Priority, Priorities)
}

func (a *Activity) Normalize() {
	a.Description = strings.TrimSpace(a.Description)
	if a.Type == "" {
		a.Type = ActivityCall
	}
	a.Type = canonical(a.Type, ActivityTypes)
	if a.Date.IsZero() {
		a.Date = time.Now()
	}
	if a.Duration < 0 || !a.Type.Timed() {
		a.Duration = 0
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
}

func (q *Quote) Normalize() {
	q.Name = strings.TrimSpace(q.Name)
	if q.Status == "" {
		q.Status = QuoteDraft
	}
	q.Status = canonical(q.Status, QuoteStatuses)
	if q.QuoteDate.IsZero() {
		q.QuoteDate = time.Now()
	}
	if q.Tags == nil {
		q.Tags = []string{}
	}
}
