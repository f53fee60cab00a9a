// ABOUTME: Tests for graph generation and dashboard rendering
// ABOUTME: Builds small collections in memory and checks the rendered output
package viz

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/crmview/datewindow"
	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/pages"
	"github.com/harperreed/crmview/resolve"
	"github.com/harperreed/crmview/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCollections() view.Collections {
	ada := models.Contact{ID: uuid.New(), Name: "Ada Lovelace", Email: "ada@example.com"}
	acme := models.Company{ID: uuid.New(), Name: "Acme Corp"}
	gone := uuid.New()
	apollo := models.Deal{ID: uuid.New(), Title: "Apollo", Value: 150000, Stage: models.StageProposal, ContactID: &ada.ID}
	orphan := models.Deal{ID: uuid.New(), Title: "Orphan", Value: 5000, Stage: "mystery", ContactID: &gone}

	return view.Collections{
		Contacts:  []models.Contact{ada},
		Companies: []models.Company{acme},
		Deals:     []models.Deal{apollo, orphan},
		Tasks: []models.Task{
			{ID: uuid.New(), Title: "Send proposal", DueDate: time.Now().Add(24 * time.Hour), ContactID: &ada.ID},
			{ID: uuid.New(), Title: "Done already", Completed: true, ContactID: &ada.ID},
		},
		Activities: []models.Activity{
			{ID: uuid.New(), Type: models.ActivityCall, ContactID: &ada.ID, Description: "Intro call"},
		},
		Quotes: []models.Quote{
			{ID: uuid.New(), Name: "Web hosting", Status: models.QuoteSent, CompanyID: &acme.ID, DealID: &apollo.ID},
		},
	}
}

func TestGeneratePipelineGraph(t *testing.T) {
	gen := NewGraphGenerator(sampleCollections(), resolve.DefaultLabels())

	dot, err := gen.GeneratePipelineGraph()
	require.NoError(t, err)

	assert.Contains(t, dot, "digraph")
	assert.Contains(t, dot, "Deal Pipeline")
	assert.Contains(t, dot, "Apollo")
	assert.Contains(t, dot, "Ada Lovelace")
	// Unknown stage lands in Lead; dangling contact gets the placeholder.
	assert.Contains(t, dot, "stage_Lead")
	assert.Contains(t, dot, "Unknown Contact")
}

func TestGenerateContactGraph(t *testing.T) {
	cols := sampleCollections()
	gen := NewGraphGenerator(cols, resolve.DefaultLabels())

	dot, err := gen.GenerateContactGraph(&cols.Contacts[0].ID)
	require.NoError(t, err)
	assert.Contains(t, dot, "Ada Lovelace")
	assert.Contains(t, dot, "Send proposal")
	assert.NotContains(t, dot, "Done already")

	missing := uuid.New()
	_, err = gen.GenerateContactGraph(&missing)
	var nf *models.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestGenerateCompleteGraph(t *testing.T) {
	gen := NewGraphGenerator(sampleCollections(), resolve.DefaultLabels())

	dot, err := gen.GenerateCompleteGraph()
	require.NoError(t, err)
	for _, want := range []string{"Acme Corp", "Ada Lovelace", "Apollo", "Web hosting"} {
		assert.Contains(t, dot, want)
	}
}

func TestRenderDashboard(t *testing.T) {
	v := pages.DashboardView{
		TotalValue:   155000,
		WonValue:     0,
		ActiveDeals:  2,
		OverdueTasks: 1,
		Pipeline: []pages.StageSummary{
			{Stage: models.StageLead, Count: 1, Value: 5000},
			{Stage: models.StageProposal, Count: 2, Value: 150000},
		},
		Upcoming: []pages.TaskRow{
			{Task: models.Task{Title: "Send proposal"}, Contact: "Ada Lovelace", Due: datewindow.Label{Text: "Tomorrow"}},
		},
	}

	out := RenderDashboard(v)
	assert.Contains(t, out, "CRMVIEW DASHBOARD")
	assert.Contains(t, out, "$1550.00 pipeline")
	assert.Contains(t, out, "1 overdue task(s)")
	assert.Contains(t, out, "Tomorrow")
	assert.NotContains(t, out, "RECENT ACTIVITY")

	lines := strings.Split(out, "\n")
	var proposal string
	for _, l := range lines {
		if strings.Contains(l, "Proposal") {
			proposal = l
		}
	}
	assert.Contains(t, proposal, strings.Repeat("█", 10))
}
