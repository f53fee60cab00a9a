// ABOUTME: Delete confirmation view for TUI
// ABOUTME: Deletes the highlighted record through the session of its tab
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/crmview/view"
)

var (
	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 2).
			Width(60).
			Align(lipgloss.Center)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	confirmButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("9")).
				Padding(0, 2).
				MarginRight(2)

	cancelButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("8")).
				Padding(0, 2)
)

func (m Model) renderConfirmDeleteView() string {
	entityType := m.pendingKind()

	title := warningStyle.Render("⚠  DELETE CONFIRMATION  ⚠")
	message := fmt.Sprintf("Are you sure you want to delete this %s?", entityType)
	entityInfo := fmt.Sprintf("\n%s: %s\n", strings.ToUpper(entityType), m.pendingName)
	warning := "\nThis action cannot be undone!"

	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		confirmButtonStyle.Render("Yes, Delete (y)"),
		cancelButtonStyle.Render("Cancel (n/esc)"),
	)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		message,
		entityInfo,
		warning,
		"",
		buttons,
	)

	box := confirmBoxStyle.Render(content)

	// Center the box on screen
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}

func (m Model) pendingKind() string {
	switch m.tab {
	case TabPipeline:
		return "deal"
	case TabTasks:
		return "task"
	case TabActivities:
		return "activity"
	case TabContacts:
		return "contact"
	case TabQuotes:
		return "quote"
	}
	return "record"
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		cmd := m.performDelete()
		m.viewMode = ViewList
		m.detail = nil
		return m, cmd
	case "n", "N", "esc":
		if m.detail != nil {
			m.viewMode = ViewDetail
		} else {
			m.viewMode = ViewList
		}
	}

	return m, nil
}

// performDelete removes the pending record through the active tab's
// session, which drops the row once the store confirms.
func (m Model) performDelete() tea.Cmd {
	p, repos, id := m.pages, m.opts.Repos, m.pendingID

	var mutate func(ctx context.Context) error
	switch m.tab {
	case TabPipeline:
		mutate = func(ctx context.Context) error {
			return p.deals.Mutate(ctx, view.Delete(repos.Deals, view.DealSlot, id))
		}
	case TabTasks:
		mutate = func(ctx context.Context) error {
			return p.tasks.Mutate(ctx, view.Delete(repos.Tasks, view.TaskSlot, id))
		}
	case TabActivities:
		mutate = func(ctx context.Context) error {
			return p.activities.Mutate(ctx, view.Delete(repos.Activities, view.ActivitySlot, id))
		}
	case TabContacts:
		mutate = func(ctx context.Context) error {
			return p.contacts.Mutate(ctx, view.Delete(repos.Contacts, view.ContactSlot, id))
		}
	case TabQuotes:
		mutate = func(ctx context.Context) error {
			return p.quotes.Mutate(ctx, view.Delete(repos.Quotes, view.QuoteSlot, id))
		}
	default:
		return nil
	}
	return run(m.tab, mutate)
}
