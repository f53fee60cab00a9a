// ABOUTME: Tests for the TUI model
// ABOUTME: Commands run synchronously and their messages are fed back through Update
package tui

import (
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/pages"
	"github.com/harperreed/crmview/repository"
	"github.com/harperreed/crmview/resolve"
	"github.com/harperreed/crmview/store"
)

var fixedNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

type fixture struct {
	repos   *repository.Set
	contact models.Contact
	deal    models.Deal
	task    models.Task
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	repos := repository.NewSet(store.NewMemorySet())

	contact, err := repos.Contacts.Create(ctx, models.Contact{Name: "Ada Lovelace", Email: "ada@example.com", Company: "Analytical"})
	require.NoError(t, err)

	deal, err := repos.Deals.Create(ctx, models.Deal{
		Title:     "Engine retrofit",
		Value:     500000,
		Stage:     models.StageLead,
		ContactID: &contact.ID,
	})
	require.NoError(t, err)

	task, err := repos.Tasks.Create(ctx, models.Task{
		Title:     "Send proposal",
		DueDate:   fixedNow.Add(48 * time.Hour),
		Priority:  models.PriorityHigh,
		ContactID: &contact.ID,
	})
	require.NoError(t, err)

	return fixture{repos: repos, contact: contact, deal: deal, task: task}
}

func newTestModel(f fixture) Model {
	return NewModel(Options{
		Repos:  f.repos,
		Labels: resolve.DefaultLabels(),
		Logger: log.New(io.Discard),
		Now:    func() time.Time { return fixedNow },
	})
}

// settle runs cmd and feeds its messages back until nothing is left.
func settle(m tea.Model, cmd tea.Cmd) tea.Model {
	for i := 0; cmd != nil && i < 10; i++ {
		msg := cmd()
		if msg == nil {
			return m
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			return m
		}
		m, cmd = m.Update(msg)
	}
	return m
}

func key(k string) tea.KeyMsg {
	switch k {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = m.Update(key(k))
		m = settle(m, cmd)
	}
	return m
}

func start(t *testing.T, f fixture) Model {
	t.Helper()
	m := newTestModel(f)
	out := settle(m, m.Init())
	return out.(Model)
}

func TestInitLoadsDashboard(t *testing.T) {
	m := start(t, setup(t))

	out := m.View()
	assert.Contains(t, out, "CRMVIEW DASHBOARD")
	assert.Contains(t, out, "Send proposal")
}

func TestPipelineTabListsDeals(t *testing.T) {
	f := setup(t)
	m := press(start(t, f), "tab").(Model)

	assert.Equal(t, TabPipeline, m.tab)
	require.Len(t, m.rowIDs, 1)
	assert.Equal(t, f.deal.ID, m.rowIDs[0])

	out := m.View()
	assert.Contains(t, out, "Engine retrofit")
	assert.Contains(t, out, "Ada Lovelace")
}

func TestPipelineShowsUnknownContact(t *testing.T) {
	f := setup(t)
	ghost := uuid.New()
	_, err := f.repos.Deals.Create(context.Background(), models.Deal{Title: "Orphan", ContactID: &ghost})
	require.NoError(t, err)

	m := press(start(t, f), "tab").(Model)
	assert.Contains(t, m.View(), "Unknown Contact")
}

func TestMoveStageForward(t *testing.T) {
	f := setup(t)
	m := press(start(t, f), "tab", "]").(Model)

	deal, err := f.repos.Deals.Get(context.Background(), f.deal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StageQualified, deal.Stage)

	cols := m.pages.deals.Current().View.Columns
	assert.Equal(t, models.StageQualified, cols[1].Stage)
	assert.Len(t, cols[1].Cards, 1)
}

func TestMoveStageBackFromLeadIsIgnored(t *testing.T) {
	f := setup(t)
	press(start(t, f), "tab", "[")

	deal, err := f.repos.Deals.Get(context.Background(), f.deal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StageLead, deal.Stage)
}

func TestToggleTask(t *testing.T) {
	f := setup(t)
	m := press(start(t, f), "tab", "tab", "x").(Model)

	task, err := f.repos.Tasks.Get(context.Background(), f.task.ID)
	require.NoError(t, err)
	assert.True(t, task.Completed)
	assert.Equal(t, 1, m.pages.tasks.Current().View.Completed)
	assert.Contains(t, m.View(), "Task completed")
}

func TestTaskStatusFilterCycles(t *testing.T) {
	f := setup(t)
	m := press(start(t, f), "tab", "tab", "s").(Model)

	assert.Equal(t, pages.StatusPending, m.pages.tasks.Criteria().Status)
	assert.Len(t, m.rowIDs, 1)

	m = press(m, "s").(Model)
	assert.Equal(t, pages.StatusCompleted, m.pages.tasks.Criteria().Status)
	assert.Empty(t, m.rowIDs)
}

func TestSearchNarrowsContacts(t *testing.T) {
	f := setup(t)
	_, err := f.repos.Contacts.Create(context.Background(), models.Contact{Name: "Grace Hopper"})
	require.NoError(t, err)

	m := press(start(t, f), "tab", "tab", "tab", "tab").(Model)
	require.Equal(t, TabContacts, m.tab)
	assert.Len(t, m.rowIDs, 2)

	m = press(m, "/", "g", "r", "a", "c", "e", "enter").(Model)
	assert.False(t, m.searching)
	assert.Equal(t, "grace", m.pages.contacts.Criteria().Search)
	require.Len(t, m.rowNames, 1)
	assert.Equal(t, "Grace Hopper", m.rowNames[0])
}

func TestContactDetail(t *testing.T) {
	f := setup(t)
	m := press(start(t, f), "tab", "tab", "tab", "tab", "enter").(Model)

	require.Equal(t, ViewDetail, m.viewMode)
	require.NotNil(t, m.detail)
	out := m.View()
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "Engine retrofit")

	m = press(m, "esc").(Model)
	assert.Equal(t, ViewList, m.viewMode)
}

func TestDeleteContactWithConfirmation(t *testing.T) {
	f := setup(t)
	m := press(start(t, f), "tab", "tab", "tab", "tab", "d").(Model)

	require.Equal(t, ViewConfirmDelete, m.viewMode)
	assert.Contains(t, m.View(), "Ada Lovelace")

	m = press(m, "y").(Model)
	assert.Equal(t, ViewList, m.viewMode)
	assert.Empty(t, m.rowIDs)

	_, err := f.repos.Contacts.Get(context.Background(), f.contact.ID)
	var nf *models.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestDeleteCancelled(t *testing.T) {
	f := setup(t)
	m := press(start(t, f), "tab", "d", "n").(Model)

	assert.Equal(t, ViewList, m.viewMode)
	_, err := f.repos.Deals.Get(context.Background(), f.deal.ID)
	assert.NoError(t, err)
}

func TestPipelineGraph(t *testing.T) {
	f := setup(t)
	m := press(start(t, f), "tab", "g").(Model)

	require.Equal(t, ViewGraph, m.viewMode)
	assert.Contains(t, m.graphDOT, "digraph")

	m = press(m, "esc").(Model)
	assert.Equal(t, ViewList, m.viewMode)
}

func TestQuit(t *testing.T) {
	m := start(t, setup(t))
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
