// ABOUTME: Tests for the web UI server
// ABOUTME: Drives the routes with httptest against in-memory stores
package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/repository"
	"github.com/harperreed/crmview/resolve"
	"github.com/harperreed/crmview/store"
)

var fixedNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

type fixture struct {
	handler http.Handler
	repos   *repository.Set
	contact models.Contact
	deal    models.Deal
	task    models.Task
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	repos := repository.NewSet(store.NewMemorySet())

	contact, err := repos.Contacts.Create(ctx, models.Contact{Name: "Ada Lovelace", Email: "ada@example.com"})
	require.NoError(t, err)
	deal, err := repos.Deals.Create(ctx, models.Deal{Title: "Engine retrofit", Value: 250000, ContactID: &contact.ID})
	require.NoError(t, err)
	task, err := repos.Tasks.Create(ctx, models.Task{
		Title:     "Chase invoice",
		DueDate:   fixedNow.Add(-24 * time.Hour),
		ContactID: &contact.ID,
	})
	require.NoError(t, err)

	server, err := NewServer(Options{
		Repos:  repos,
		Labels: resolve.DefaultLabels(),
		Logger: log.New(io.Discard),
		Now:    func() time.Time { return fixedNow },
	})
	require.NoError(t, err)

	return fixture{handler: server.Handler(), repos: repos, contact: contact, deal: deal, task: task}
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestDashboard(t *testing.T) {
	f := setup(t)
	rec := get(t, f.handler, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "$2500.00")
	assert.Contains(t, body, "Chase invoice")
}

func TestPipelineGroupsDealsByStage(t *testing.T) {
	f := setup(t)
	rec := get(t, f.handler, "/pipeline")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Engine retrofit")
	assert.Contains(t, body, "Ada Lovelace")
	assert.Contains(t, body, "Negotiation")
}

func TestTasksStatusFilter(t *testing.T) {
	f := setup(t)

	rec := get(t, f.handler, "/tasks?status=overdue")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Chase invoice")

	rec = get(t, f.handler, "/tasks?status=completed")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Chase invoice")
}

func TestContactsSearch(t *testing.T) {
	f := setup(t)
	_, err := f.repos.Contacts.Create(context.Background(), models.Contact{Name: "Grace Hopper"})
	require.NoError(t, err)

	rec := get(t, f.handler, "/contacts?q=grace")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Grace Hopper")
	assert.NotContains(t, body, "Ada Lovelace")
}

func TestContactDetail(t *testing.T) {
	f := setup(t)

	rec := get(t, f.handler, "/partials/contact-detail?id="+f.contact.ID.String())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Engine retrofit")

	rec = get(t, f.handler, "/partials/contact-detail?id=nope")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, f.handler, "/partials/contact-detail?id=00000000-0000-0000-0000-000000000001")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGraphPartial(t *testing.T) {
	f := setup(t)

	rec := get(t, f.handler, "/partials/graph?type=pipeline")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "digraph")

	rec = get(t, f.handler, "/partials/graph?type=bogus")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToggleTask(t *testing.T) {
	f := setup(t)

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tasks/"+f.task.ID.String()+"/toggle", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "checked")

	task, err := f.repos.Tasks.Get(context.Background(), f.task.ID)
	require.NoError(t, err)
	assert.True(t, task.Completed)
}

func TestMoveStage(t *testing.T) {
	f := setup(t)

	post := func(stage string) *httptest.ResponseRecorder {
		form := url.Values{"stage": {stage}}
		req := httptest.NewRequest(http.MethodPost, "/deals/"+f.deal.ID.String()+"/stage", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, req)
		return rec
	}

	rec := post("Won")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	deal, err := f.repos.Deals.Get(context.Background(), f.deal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StageWon, deal.Stage)

	rec = post("Sideways")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
