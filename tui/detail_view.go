// ABOUTME: Contact detail panel for the TUI
// ABOUTME: Shows one contact with their deals and activity history
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/pages"
)

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Width(20)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	sectionStyle = lipgloss.NewStyle().Bold(true)
)

func (m Model) loadDetail(id uuid.UUID) tea.Cmd {
	repos := m.opts.Repos
	return func() tea.Msg {
		d, err := pages.LoadContactDetail(context.Background(), repos, id)
		return detailMsg{detail: d, err: err}
	}
}

func (m Model) renderDetailView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("CONTACT"))
	s.WriteString("\n\n")

	if m.detail == nil {
		s.WriteString("Loading...\n")
	} else {
		s.WriteString(m.renderContactDetail(*m.detail))
	}

	s.WriteString("\n\n")
	s.WriteString(m.renderDetailHelp())

	return s.String()
}

func (m Model) renderContactDetail(d pages.ContactDetail) string {
	var s strings.Builder

	s.WriteString(m.renderField("Name", d.Contact.Name))
	s.WriteString(m.renderField("Email", d.Contact.Email))
	s.WriteString(m.renderField("Phone", d.Contact.Phone))
	s.WriteString(m.renderField("Company", d.Contact.Company))
	s.WriteString(m.renderField("Position", d.Contact.Position))
	s.WriteString(m.renderField("Notes", d.Contact.Notes))

	s.WriteString("\n")
	s.WriteString(sectionStyle.Render(fmt.Sprintf("DEALS (%d)", len(d.Deals))))
	s.WriteString("\n")
	if len(d.Deals) == 0 {
		s.WriteString("  No deals\n")
	}
	for _, deal := range d.Deals {
		s.WriteString(fmt.Sprintf("  • %s [%s] %s\n", deal.Title, models.NormalizeStage(deal.Stage), money(deal.Value)))
	}

	s.WriteString("\n")
	s.WriteString(sectionStyle.Render(fmt.Sprintf("ACTIVITIES (%d)", len(d.Activities))))
	s.WriteString("\n")
	if len(d.Activities) == 0 {
		s.WriteString("  No activities\n")
	}
	for _, a := range d.Activities {
		s.WriteString(fmt.Sprintf("  • [%s] %s: %s\n",
			a.Date.Format("2006-01-02"), models.NormalizeActivityType(a.Type), a.Description))
	}

	return s.String()
}

func (m Model) renderField(label, value string) string {
	if value == "" {
		value = "-"
	}
	return fmt.Sprintf("%s %s\n",
		fieldLabelStyle.Render(label+":"),
		fieldValueStyle.Render(value))
}

func (m Model) renderDetailHelp() string {
	help := []string{
		"Esc: Back",
		"g: View graph",
		"d: Delete",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.detail == nil {
		if msg.String() == "esc" {
			m.viewMode = ViewList
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.viewMode = ViewList
		m.detail = nil
	case "d":
		m.pendingID, m.pendingName = m.detail.Contact.ID, m.detail.Contact.Name
		m.viewMode = ViewConfirmDelete
	case "g":
		id := m.detail.Contact.ID
		m.viewMode = ViewGraph
		m.graphDOT = ""
		return m, m.generateGraph(&id)
	}

	return m, nil
}
