// ABOUTME: Tests for entity repositories
// ABOUTME: Covers validation, partial merge, typed errors and related-record lookups
package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSet() *Set {
	return NewSet(store.NewMemorySet())
}

func seedContact(t *testing.T, s *Set, name string) models.Contact {
	t.Helper()
	c, err := s.Contacts.Create(context.Background(), models.Contact{Name: name})
	require.NoError(t, err)
	return c
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	s := newSet()

	_, err := s.Deals.Create(context.Background(), models.Deal{Value: 100})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrValidation))

	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "deal", ve.Entity)

	fields := map[string]string{}
	for _, f := range ve.Fields {
		fields[f.Field] = f.Reason
	}
	assert.Equal(t, "is required", fields["title"])
	assert.Equal(t, "is required", fields["contact_id"])

	page, err := s.Deals.List(context.Background(), models.ListParams{})
	require.NoError(t, err)
	assert.Empty(t, page.Records, "invalid records never reach the store")
}

func TestCreateRejectsMalformedValues(t *testing.T) {
	s := newSet()
	contact := seedContact(t, s, "Ada")

	_, err := s.Contacts.Create(context.Background(), models.Contact{Name: "Bad", Email: "not-an-email"})
	assert.ErrorContains(t, err, "email must be a valid email")

	_, err = s.Deals.Create(context.Background(), models.Deal{Title: "Neg", Value: -5, ContactID: &contact.ID})
	assert.ErrorContains(t, err, "value must be at least 0")

	_, err = s.Tasks.Create(context.Background(), models.Task{Title: "No due date"})
	assert.ErrorContains(t, err, "due_date is required")
}

func TestCreateNormalizesDefaults(t *testing.T) {
	s := newSet()
	contact := seedContact(t, s, "Ada")
	ctx := context.Background()

	deal, err := s.Deals.Create(ctx, models.Deal{Title: "  Renewal  ", ContactID: &contact.ID})
	require.NoError(t, err)
	assert.Equal(t, "Renewal", deal.Title)
	assert.Equal(t, models.StageLead, deal.Stage)

	activity, err := s.Activities.Create(ctx, models.Activity{
		ContactID:   &contact.ID,
		Description: "Sent deck",
		Type:        "EMAIL",
		Duration:    30,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ActivityEmail, activity.Type)
	assert.Zero(t, activity.Duration)
	assert.False(t, activity.Date.IsZero())

	task, err := s.Tasks.Create(ctx, models.Task{Title: "Call", DueDate: time.Now(), Completed: true})
	require.NoError(t, err)
	assert.False(t, task.Completed, "new tasks start incomplete")
	assert.Equal(t, models.PriorityMedium, task.Priority)
}

func TestUpdateMergesPartialFields(t *testing.T) {
	s := newSet()
	ctx := context.Background()
	contact, err := s.Contacts.Create(ctx, models.Contact{Name: "Grace", Email: "grace@example.com", Phone: "555"})
	require.NoError(t, err)

	position := "Admiral"
	updated, err := s.Contacts.Update(ctx, contact.ID, models.ContactPatch{Position: &position})
	require.NoError(t, err)
	assert.Equal(t, "Admiral", updated.Position)
	assert.Equal(t, "grace@example.com", updated.Email)
	assert.Equal(t, "555", updated.Phone)
}

func TestUpdateValidatesMergedRecord(t *testing.T) {
	s := newSet()
	ctx := context.Background()
	contact := seedContact(t, s, "Grace")

	empty := ""
	_, err := s.Contacts.Update(ctx, contact.ID, models.ContactPatch{Name: &empty})
	assert.True(t, errors.Is(err, models.ErrValidation))

	got, err := s.Contacts.Get(ctx, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grace", got.Name, "failed update leaves the record untouched")
}

func TestNotFound(t *testing.T) {
	s := newSet()
	ctx := context.Background()
	missing := uuid.New()

	title := "x"
	_, err := s.Deals.Update(ctx, missing, models.DealPatch{Title: &title})
	assert.True(t, errors.Is(err, models.ErrNotFound))

	_, err = s.Deals.Delete(ctx, missing)
	assert.True(t, errors.Is(err, models.ErrNotFound))

	_, err = s.Deals.Get(ctx, missing)
	assert.True(t, errors.Is(err, models.ErrNotFound))
	assert.False(t, errors.Is(err, models.ErrStoreUnavailable))
}

func TestDeleteReturnsRecord(t *testing.T) {
	s := newSet()
	contact := seedContact(t, s, "Edsger")

	deleted, err := s.Contacts.Delete(context.Background(), contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edsger", deleted.Name)

	_, err = s.Contacts.Get(context.Background(), contact.ID)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

type brokenStore[T any] struct {
	store.RecordStore[T]
	err error
}

func (b brokenStore[T]) List(context.Context, models.ListParams) (models.Page[T], error) {
	return models.Page[T]{}, b.err
}

func (b brokenStore[T]) Create(context.Context, T) (T, error) {
	var zero T
	return zero, b.err
}

func TestStoreFailuresAreWrapped(t *testing.T) {
	cause := errors.New("connection refused")
	r := New(models.ContactKind, store.RecordStore[models.Contact](brokenStore[models.Contact]{err: cause}))

	_, err := r.List(context.Background(), models.ListParams{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrStoreUnavailable))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "failed to list contact: connection refused", err.Error())

	_, err = r.Create(context.Background(), models.Contact{Name: "Ada"})
	assert.True(t, errors.Is(err, models.ErrStoreUnavailable))
}

func TestUpdateStage(t *testing.T) {
	s := newSet()
	ctx := context.Background()
	contact := seedContact(t, s, "Ada")
	deal, err := s.Deals.Create(ctx, models.Deal{Title: "Pilot", ContactID: &contact.ID})
	require.NoError(t, err)

	moved, err := s.UpdateStage(ctx, deal.ID, "negotiation")
	require.NoError(t, err)
	assert.Equal(t, models.StageNegotiation, moved.Stage)
	assert.Equal(t, "Pilot", moved.Title)

	_, err = s.UpdateStage(ctx, deal.ID, "Frozen")
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestToggleComplete(t *testing.T) {
	s := newSet()
	ctx := context.Background()
	task, err := s.Tasks.Create(ctx, models.Task{Title: "Send contract", DueDate: time.Now()})
	require.NoError(t, err)

	toggled, err := s.ToggleComplete(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	toggled, err = s.ToggleComplete(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)
}

func TestDealsForContactWithNoDeals(t *testing.T) {
	s := newSet()
	ctx := context.Background()
	lonely := seedContact(t, s, "Lonely")
	busy := seedContact(t, s, "Busy")

	_, err := s.Deals.Create(ctx, models.Deal{Title: "A", ContactID: &busy.ID})
	require.NoError(t, err)

	deals, err := s.DealsForContact(ctx, lonely.ID)
	require.NoError(t, err)
	assert.NotNil(t, deals)
	assert.Empty(t, deals)

	deals, err = s.DealsForContact(ctx, busy.ID)
	require.NoError(t, err)
	assert.Len(t, deals, 1)
}

func TestActivitiesForDeal(t *testing.T) {
	s := newSet()
	ctx := context.Background()
	contact := seedContact(t, s, "Ada")
	deal, err := s.Deals.Create(ctx, models.Deal{Title: "A", ContactID: &contact.ID})
	require.NoError(t, err)

	_, err = s.Activities.Create(ctx, models.Activity{ContactID: &contact.ID, DealID: &deal.ID, Description: "linked"})
	require.NoError(t, err)
	_, err = s.Activities.Create(ctx, models.Activity{ContactID: &contact.ID, Description: "unlinked"})
	require.NoError(t, err)

	linked, err := s.ActivitiesForDeal(ctx, deal.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, "linked", linked[0].Description)

	all, err := s.ActivitiesForContact(ctx, contact.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
