// ABOUTME: GraphViz source view for the TUI
// ABOUTME: Renders the pipeline or a contact neighbourhood as xdot text
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/harperreed/crmview/pages"
	"github.com/harperreed/crmview/view"
	"github.com/harperreed/crmview/viz"
)

func (m Model) renderGraphView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("GRAPH VIEW"))
	s.WriteString("\n\n")

	if m.graphDOT == "" {
		s.WriteString("Generating graph...\n")
	} else {
		s.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Render(m.graphDOT))
	}

	s.WriteString("\n\n")
	s.WriteString(m.renderGraphHelp())

	return s.String()
}

func (m Model) renderGraphHelp() string {
	help := []string{
		"Esc: Back",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleGraphKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.graphDOT = ""
		if m.detail != nil {
			m.viewMode = ViewDetail
		} else {
			m.viewMode = ViewList
		}
	}
	return m, nil
}

// openGraph shows the pipeline graph, or the selected contact's graph on
// the contacts tab.
func (m Model) openGraph() (tea.Model, tea.Cmd) {
	switch m.tab {
	case TabPipeline:
		m.viewMode = ViewGraph
		m.graphDOT = ""
		return m, m.generateGraph(nil)
	case TabContacts:
		id, _, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.viewMode = ViewGraph
		m.graphDOT = ""
		return m, m.generateGraph(&id)
	}
	return m, nil
}

// generateGraph loads every collection and renders the pipeline graph, or
// the contact graph when contactID is set.
func (m Model) generateGraph(contactID *uuid.UUID) tea.Cmd {
	opts := m.opts
	return func() tea.Msg {
		c := view.New(pages.Graph(), opts.Repos, struct{}{}, view.WithLogger(opts.Logger), view.WithClock(opts.Now))
		if err := c.Reload(context.Background()); err != nil {
			return graphMsg{err: err}
		}

		generator := viz.NewGraphGenerator(c.Current().View, opts.Labels)
		var dot string
		var err error
		if contactID != nil {
			dot, err = generator.GenerateContactGraph(contactID)
		} else {
			dot, err = generator.GeneratePipelineGraph()
		}
		return graphMsg{dot: dot, err: err}
	}
}
