// ABOUTME: Shared helpers and output shapes for MCP tool handlers
// ABOUTME: Outputs use string ids and RFC3339 times so tool schemas stay simple
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/repository"
	"github.com/harperreed/crmview/resolve"
	"github.com/harperreed/crmview/view"
)

// Deps is what every handler group needs.
type Deps struct {
	Repos  *repository.Set
	Labels resolve.Labels
	Logger *log.Logger
	Now    func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d Deps) logger() *log.Logger {
	if d.Logger == nil {
		return log.Default()
	}
	return d.Logger
}

// session loads page and returns its Ready coordinator.
func session[C, V any](ctx context.Context, d Deps, page view.Page[C, V], criteria C) (*view.Coordinator[C, V], error) {
	c := view.New(page, d.Repos, criteria, view.WithLogger(d.logger()), view.WithClock(d.now))
	if err := c.Reload(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", c.Current().Message, err)
	}
	return c, nil
}

func parseID(value, field string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, fmt.Errorf("%s is required", field)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", field, err)
	}
	return id, nil
}

func optionalID(value, field string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := parseID(value, field)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseTime accepts RFC3339 or a bare YYYY-MM-DD date.
func parseTime(value, field string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s format (use ISO 8601/RFC3339): %w", field, err)
	}
	return t, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func idString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

type ContactOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	Position  string `json:"position,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func contactToOutput(c models.Contact) ContactOutput {
	return ContactOutput{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Position:  c.Position,
		Notes:     c.Notes,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

type CompanyOutput struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Domain   string `json:"domain,omitempty"`
	Industry string `json:"industry,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

func companyToOutput(c models.Company) CompanyOutput {
	return CompanyOutput{ID: c.ID.String(), Name: c.Name, Domain: c.Domain, Industry: c.Industry, Notes: c.Notes}
}

type DealOutput struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Value             int64  `json:"value"`
	Stage             string `json:"stage"`
	ContactID         string `json:"contact_id,omitempty"`
	Contact           string `json:"contact,omitempty"`
	Probability       int    `json:"probability"`
	ExpectedCloseDate string `json:"expected_close_date,omitempty"`
	CloseLabel        string `json:"close_label,omitempty"`
}

func dealToOutput(d models.Deal) DealOutput {
	return DealOutput{
		ID:                d.ID.String(),
		Title:             d.Title,
		Value:             d.Value,
		Stage:             string(models.NormalizeStage(d.Stage)),
		ContactID:         idString(d.ContactID),
		Probability:       d.Probability,
		ExpectedCloseDate: formatOptionalTime(d.ExpectedCloseDate),
	}
}

type TaskOutput struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date"`
	DueLabel    string `json:"due_label,omitempty"`
	Priority    string `json:"priority"`
	Completed   bool   `json:"completed"`
	Overdue     bool   `json:"overdue"`
	ContactID   string `json:"contact_id,omitempty"`
	Contact     string `json:"contact,omitempty"`
}

func taskToOutput(t models.Task, now time.Time) TaskOutput {
	return TaskOutput{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		DueDate:     formatTime(t.DueDate),
		Priority:    string(models.NormalizePriority(t.Priority)),
		Completed:   t.Completed,
		Overdue:     t.IsOverdue(now),
		ContactID:   idString(t.ContactID),
	}
}

type ActivityOutput struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Duration    int    `json:"duration,omitempty"`
	ContactID   string `json:"contact_id,omitempty"`
	Contact     string `json:"contact,omitempty"`
	DealID      string `json:"deal_id,omitempty"`
	Deal        string `json:"deal,omitempty"`
}

func activityToOutput(a models.Activity) ActivityOutput {
	return ActivityOutput{
		ID:          a.ID.String(),
		Type:        string(models.NormalizeActivityType(a.Type)),
		Description: a.Description,
		Date:        formatTime(a.Date),
		Duration:    a.Duration,
		ContactID:   idString(a.ContactID),
		DealID:      idString(a.DealID),
	}
}

type QuoteOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Company   string `json:"company,omitempty"`
	Contact   string `json:"contact,omitempty"`
	Deal      string `json:"deal,omitempty"`
	QuoteDate string `json:"quote_date,omitempty"`
	ExpiresOn string `json:"expires_on,omitempty"`
}
