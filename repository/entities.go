// ABOUTME: Repository set and entity-specific operations
// ABOUTME: Deal stage changes, task completion toggles and per-contact lookups
package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/store"
)

// Set holds one repository per entity type.
type Set struct {
	Contacts   *Repository[models.Contact]
	Companies  *Repository[models.Company]
	Deals      *Repository[models.Deal]
	Tasks      *Repository[models.Task]
	Activities *Repository[models.Activity]
	Quotes     *Repository[models.Quote]
}

func NewSet(s *store.Set) *Set {
	return &Set{
		Contacts:   New(models.ContactKind, s.Contacts),
		Companies:  New(models.CompanyKind, s.Companies),
		Deals:      New(models.DealKind, s.Deals),
		Tasks:      New(models.TaskKind, s.Tasks),
		Activities: New(models.ActivityKind, s.Activities),
		Quotes:     New(models.QuoteKind, s.Quotes),
	}
}

// UpdateStage moves a deal to stage. Only the six pipeline stages are accepted.
func (s *Set) UpdateStage(ctx context.Context, id uuid.UUID, stage models.Stage) (models.Deal, error) {
	canonical := models.NormalizeStage(stage)
	if !strings.EqualFold(string(canonical), string(stage)) {
		return models.Deal{}, &models.ValidationError{
			Entity: models.DealKind.Name,
			Fields: []models.FieldError{{Field: "stage", Reason: "must be one of " + stageList()}},
		}
	}
	return s.Deals.Update(ctx, id, models.DealPatch{Stage: &canonical})
}

func stageList() string {
	names := make([]string, len(models.Stages))
	for i, st := range models.Stages {
		names[i] = string(st)
	}
	return strings.Join(names, ", ")
}

// ToggleComplete flips a task's completion flag.
func (s *Set) ToggleComplete(ctx context.Context, id uuid.UUID) (models.Task, error) {
	return s.Tasks.Modify(ctx, id, func(t *models.Task) {
		t.Completed = !t.Completed
	})
}

// DealsForContact lists the deals owned by a contact.
func (s *Set) DealsForContact(ctx context.Context, contactID uuid.UUID) ([]models.Deal, error) {
	return Related(ctx, s.Deals, contactID, func(d models.Deal) *uuid.UUID { return d.ContactID })
}

// ActivitiesForContact lists the activities logged against a contact.
func (s *Set) ActivitiesForContact(ctx context.Context, contactID uuid.UUID) ([]models.Activity, error) {
	return Related(ctx, s.Activities, contactID, func(a models.Activity) *uuid.UUID { return a.ContactID })
}

// ActivitiesForDeal lists the activities logged against a deal.
func (s *Set) ActivitiesForDeal(ctx context.Context, dealID uuid.UUID) ([]models.Activity, error) {
	return Related(ctx, s.Activities, dealID, func(a models.Activity) *uuid.UUID { return a.DealID })
}

// TasksForContact lists the tasks attached to a contact.
func (s *Set) TasksForContact(ctx context.Context, contactID uuid.UUID) ([]models.Task, error) {
	return Related(ctx, s.Tasks, contactID, func(t models.Task) *uuid.UUID { return t.ContactID })
}
