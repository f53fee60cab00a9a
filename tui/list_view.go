package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/harperreed/crmview/datewindow"
	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/pages"
	"github.com/harperreed/crmview/view"
	"github.com/harperreed/crmview/viz"
)

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("CRMVIEW"))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	state, message, err := m.snapshot(m.tab)
	switch {
	case state == view.Loading:
		s.WriteString("Loading...\n\n")
	case err != nil:
		s.WriteString(errorStyle.Render(message))
		s.WriteString("\n\n")
	case m.err != nil:
		s.WriteString(errorStyle.Render(m.err.Error()))
		s.WriteString("\n\n")
	case message != "":
		s.WriteString(noticeStyle.Render(message))
		s.WriteString("\n\n")
	}

	if m.searching {
		s.WriteString(m.search.View())
		s.WriteString("\n\n")
	} else if filters := m.filterSummary(); filters != "" {
		s.WriteString(helpStyle.Render(filters))
		s.WriteString("\n\n")
	}

	if m.tab == TabDashboard {
		s.WriteString(viz.RenderDashboard(m.pages.dashboard.Current().View))
	} else if state != view.Failed || len(m.rowIDs) > 0 {
		s.WriteString(m.table.View())
		s.WriteString("\n")
		s.WriteString(m.renderSummary())
	}
	s.WriteString("\n")

	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderTabs() string {
	var rendered []string
	for i, tab := range tabNames {
		if Tab(i) == m.tab {
			rendered = append(rendered, tabActiveStyle.Render(tab))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func money(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100.0)
}

// refreshTable rebuilds columns and rows from the active tab's view.
func (m *Model) refreshTable() {
	var columns []table.Column
	var rows []table.Row
	m.rowIDs = nil
	m.rowNames = nil
	add := func(id uuid.UUID, name string, row table.Row) {
		m.rowIDs = append(m.rowIDs, id)
		m.rowNames = append(m.rowNames, name)
		rows = append(rows, row)
	}

	switch m.tab {
	case TabPipeline:
		columns = []table.Column{
			{Title: "Stage", Width: 12},
			{Title: "Title", Width: 28},
			{Title: "Contact", Width: 20},
			{Title: "Value", Width: 12},
			{Title: "Close", Width: 10},
		}
		for _, col := range m.pages.deals.Current().View.Columns {
			for _, card := range col.Cards {
				closing := ""
				if card.Close != nil {
					closing = card.Close.Text
				}
				add(card.Deal.ID, card.Deal.Title, table.Row{
					string(col.Stage), card.Deal.Title, card.Contact, money(card.Deal.Value), closing,
				})
			}
		}

	case TabTasks:
		columns = []table.Column{
			{Title: "✓", Width: 2},
			{Title: "Title", Width: 30},
			{Title: "Priority", Width: 8},
			{Title: "Due", Width: 10},
			{Title: "Contact", Width: 20},
		}
		for _, row := range m.pages.tasks.Current().View.Rows {
			done := ""
			if row.Task.Completed {
				done = "✓"
			}
			add(row.Task.ID, row.Task.Title, table.Row{
				done, row.Task.Title, string(models.NormalizePriority(row.Task.Priority)), row.Due.Text, row.Contact,
			})
		}

	case TabActivities:
		columns = []table.Column{
			{Title: "Date", Width: 10},
			{Title: "Type", Width: 8},
			{Title: "Description", Width: 32},
			{Title: "Contact", Width: 18},
			{Title: "Deal", Width: 16},
		}
		for _, row := range m.pages.activities.Current().View.Rows {
			add(row.Activity.ID, row.Activity.Description, table.Row{
				row.Activity.Date.Format("2006-01-02"), string(models.NormalizeActivityType(row.Activity.Type)),
				row.Activity.Description, row.Contact, row.Deal,
			})
		}

	case TabContacts:
		columns = []table.Column{
			{Title: "Name", Width: 24},
			{Title: "Email", Width: 28},
			{Title: "Company", Width: 20},
			{Title: "Position", Width: 16},
		}
		for _, c := range m.pages.contacts.Current().View.Contacts {
			add(c.ID, c.Name, table.Row{c.Name, c.Email, c.Company, c.Position})
		}

	case TabQuotes:
		columns = []table.Column{
			{Title: "Name", Width: 24},
			{Title: "Status", Width: 9},
			{Title: "Company", Width: 18},
			{Title: "Contact", Width: 18},
			{Title: "Deal", Width: 16},
		}
		for _, row := range m.pages.quotes.Current().View.Rows {
			add(row.Quote.ID, row.Quote.Name, table.Row{
				row.Quote.Name, string(row.Status), row.Company, row.Contact, row.Deal,
			})
		}
	}

	// Rows must never be wider than the columns they are drawn with.
	m.table.SetRows(nil)
	m.table.SetColumns(columns)
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// selected returns the id and display name of the highlighted row.
func (m Model) selected() (uuid.UUID, string, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rowIDs) {
		return uuid.Nil, "", false
	}
	return m.rowIDs[i], m.rowNames[i], true
}

func (m Model) renderSummary() string {
	switch m.tab {
	case TabPipeline:
		v := m.pages.deals.Current().View
		return fmt.Sprintf("%d deal(s), %s", v.Count, money(v.Value))
	case TabTasks:
		v := m.pages.tasks.Current().View
		return fmt.Sprintf("%d total • %d pending • %d completed • %d overdue", v.Total, v.Pending, v.Completed, v.Overdue)
	case TabActivities:
		v := m.pages.activities.Current().View
		return fmt.Sprintf("%d total • %d calls • %d emails • %d meetings", v.Total, v.Calls, v.Emails, v.Meetings)
	case TabContacts:
		return fmt.Sprintf("%d contact(s)", m.pages.contacts.Current().View.Total)
	case TabQuotes:
		v := m.pages.quotes.Current().View
		return fmt.Sprintf("Page %d of %d • %d quote(s)", v.Page+1, max(v.Pages, 1), v.Total)
	}
	return ""
}

func (m Model) filterSummary() string {
	var parts []string
	if q := m.currentSearch(); q != "" {
		parts = append(parts, "search: "+q)
	}
	switch m.tab {
	case TabTasks:
		c := m.pages.tasks.Criteria()
		parts = append(parts, "status: "+string(c.Status), "priority: "+string(c.Priority))
	case TabActivities:
		c := m.pages.activities.Criteria()
		date := c.Date
		if date == "" {
			date = datewindow.All
		}
		parts = append(parts, "type: "+string(c.Type), "date: "+string(date))
	case TabQuotes:
		c := m.pages.quotes.Criteria()
		order := "asc"
		if c.Desc {
			order = "desc"
		}
		sortBy := c.SortBy
		if sortBy == "" {
			sortBy = "name"
		}
		parts = append(parts, "sort: "+sortBy+" "+order)
	}
	return strings.Join(parts, " • ")
}

func (m Model) renderListHelp() string {
	help := []string{"Tab: Switch", "r: Reload"}
	switch m.tab {
	case TabPipeline:
		help = append(help, "/: Search", "[ ]: Move stage", "g: Graph", "d: Delete")
	case TabTasks:
		help = append(help, "/: Search", "x: Toggle", "s: Status", "p: Priority", "d: Delete")
	case TabActivities:
		help = append(help, "/: Search", "t: Type", "w: Window", "d: Delete")
	case TabContacts:
		help = append(help, "/: Search", "Enter: Details", "g: Graph", "d: Delete")
	case TabQuotes:
		help = append(help, "/: Search", "o: Sort", "O: Order", "n/b: Page", "d: Delete")
	}
	help = append(help, "q: Quit")
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return m.switchTab((m.tab + 1) % Tab(len(tabNames)))
	case "shift+tab":
		return m.switchTab((m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
	case "r":
		return m, m.reload(m.tab)
	case "/":
		if m.tab == TabDashboard {
			return m, nil
		}
		m.searching = true
		m.search.SetValue(m.currentSearch())
		m.search.Focus()
		return m, textinput.Blink
	case "d":
		if id, name, ok := m.selected(); ok && m.tab != TabDashboard {
			m.pendingID, m.pendingName = id, name
			m.viewMode = ViewConfirmDelete
		}
		return m, nil
	case "g":
		return m.openGraph()
	case "enter":
		if m.tab == TabContacts {
			if id, _, ok := m.selected(); ok {
				m.viewMode = ViewDetail
				m.detail = nil
				return m, m.loadDetail(id)
			}
		}
		return m, nil
	}

	if cmd, ok := m.tabAction(msg.String()); ok {
		return m, cmd
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	m.tab = tab
	m.err = nil
	m.table.SetCursor(0)
	m.refreshTable()
	// Each visit loads fresh, as other tabs may have written since.
	return m, m.reload(tab)
}

// tabAction handles the keys that only mean something on one tab.
func (m Model) tabAction(key string) (tea.Cmd, bool) {
	p := m.pages
	id, _, hasRow := m.selected()

	switch m.tab {
	case TabPipeline:
		if (key == "[" || key == "]") && hasRow {
			stage, ok := m.adjacentStage(id, key == "]")
			if !ok {
				return nil, true
			}
			return run(TabPipeline, func(ctx context.Context) error {
				return p.deals.Mutate(ctx, pages.MoveStage(m.opts.Repos, id, stage))
			}), true
		}

	case TabTasks:
		switch key {
		case "x", " ":
			if !hasRow {
				return nil, true
			}
			for _, row := range p.tasks.Current().View.Rows {
				if row.Task.ID == id {
					task := row.Task
					return run(TabTasks, func(ctx context.Context) error {
						return p.tasks.Mutate(ctx, pages.ToggleTask(m.opts.Repos, task))
					}), true
				}
			}
			return nil, true
		case "s":
			c := p.tasks.Criteria()
			c.Status = cycle(c.Status, []pages.TaskStatus{pages.StatusAll, pages.StatusPending, pages.StatusCompleted, pages.StatusOverdue})
			return run(TabTasks, func(ctx context.Context) error { return p.tasks.SetCriteria(ctx, c) }), true
		case "p":
			c := p.tasks.Criteria()
			c.Priority = cycle(c.Priority, append([]models.Priority{pages.All}, models.Priorities...))
			return run(TabTasks, func(ctx context.Context) error { return p.tasks.SetCriteria(ctx, c) }), true
		}

	case TabActivities:
		switch key {
		case "t":
			c := p.activities.Criteria()
			c.Type = cycle(c.Type, append([]models.ActivityType{pages.All}, models.ActivityTypes...))
			return run(TabActivities, func(ctx context.Context) error { return p.activities.SetCriteria(ctx, c) }), true
		case "w":
			c := p.activities.Criteria()
			if c.Date == "" {
				c.Date = datewindow.All
			}
			c.Date = cycle(c.Date, datewindow.Tokens)
			return run(TabActivities, func(ctx context.Context) error { return p.activities.SetCriteria(ctx, c) }), true
		}

	case TabQuotes:
		c := p.quotes.Criteria()
		switch key {
		case "o":
			c.SortBy = cycle(c.SortBy, []string{"name", "status", "quote_date", "expires_on", "created_at"})
			c.Page = 0
		case "O":
			c.Desc = !c.Desc
		case "n":
			if c.Page+1 >= p.quotes.Current().View.Pages {
				return nil, true
			}
			c.Page++
		case "b":
			if c.Page == 0 {
				return nil, true
			}
			c.Page--
		default:
			return nil, false
		}
		return run(TabQuotes, func(ctx context.Context) error { return p.quotes.SetCriteria(ctx, c) }), true
	}
	return nil, false
}

// adjacentStage returns the stage before or after the deal's current one.
func (m Model) adjacentStage(id uuid.UUID, forward bool) (models.Stage, bool) {
	for i, col := range m.pages.deals.Current().View.Columns {
		for _, card := range col.Cards {
			if card.Deal.ID != id {
				continue
			}
			next := i - 1
			if forward {
				next = i + 1
			}
			if next < 0 || next >= len(models.Stages) {
				return "", false
			}
			return models.Stages[next], true
		}
	}
	return "", false
}

// cycle returns the value after cur in values, wrapping around. An
// unlisted cur restarts at the first value.
func cycle[T comparable](cur T, values []T) T {
	for i, v := range values {
		if v == cur {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

func (m Model) currentSearch() string {
	switch m.tab {
	case TabPipeline:
		return m.pages.deals.Criteria().Search
	case TabTasks:
		return m.pages.tasks.Criteria().Search
	case TabActivities:
		return m.pages.activities.Criteria().Search
	case TabContacts:
		return m.pages.contacts.Criteria().Search
	case TabQuotes:
		return m.pages.quotes.Criteria().Search
	}
	return ""
}

// applySearch pushes query into the active tab's criteria.
func (m Model) applySearch(query string) tea.Cmd {
	p := m.pages
	switch m.tab {
	case TabPipeline:
		c := p.deals.Criteria()
		c.Search = query
		return run(m.tab, func(ctx context.Context) error { return p.deals.SetCriteria(ctx, c) })
	case TabTasks:
		c := p.tasks.Criteria()
		c.Search = query
		return run(m.tab, func(ctx context.Context) error { return p.tasks.SetCriteria(ctx, c) })
	case TabActivities:
		c := p.activities.Criteria()
		c.Search = query
		return run(m.tab, func(ctx context.Context) error { return p.activities.SetCriteria(ctx, c) })
	case TabContacts:
		c := p.contacts.Criteria()
		c.Search = query
		return run(m.tab, func(ctx context.Context) error { return p.contacts.SetCriteria(ctx, c) })
	case TabQuotes:
		c := p.quotes.Criteria()
		c.Search = query
		c.Page = 0
		return run(m.tab, func(ctx context.Context) error { return p.quotes.SetCriteria(ctx, c) })
	}
	return nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, m.applySearch(strings.TrimSpace(m.search.Value()))
	case "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}
