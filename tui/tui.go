// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: One page session per tab; commands drive loads and mutations, views render snapshots
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/harperreed/crmview/pages"
	"github.com/harperreed/crmview/repository"
	"github.com/harperreed/crmview/resolve"
	"github.com/harperreed/crmview/view"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewGraph
	ViewConfirmDelete
)

// Tab is one page of the interface.
type Tab int

const (
	TabDashboard Tab = iota
	TabPipeline
	TabTasks
	TabActivities
	TabContacts
	TabQuotes
)

var tabNames = []string{"Dashboard", "Pipeline", "Tasks", "Activities", "Contacts", "Quotes"}

func (t Tab) String() string { return tabNames[t] }

// Options wires the TUI to the CRM.
type Options struct {
	Repos    *repository.Set
	Labels   resolve.Labels
	Logger   *log.Logger
	Now      func() time.Time
	PageSize int
}

// sessions holds one coordinator per tab.
type sessions struct {
	dashboard  *view.Coordinator[struct{}, pages.DashboardView]
	deals      *view.Coordinator[pages.DealsCriteria, pages.DealsView]
	tasks      *view.Coordinator[pages.TasksCriteria, pages.TasksView]
	activities *view.Coordinator[pages.ActivitiesCriteria, pages.ActivitiesView]
	contacts   *view.Coordinator[pages.ContactsCriteria, pages.ContactsView]
	quotes     *view.Coordinator[pages.QuotesCriteria, pages.QuotesView]
}

// Model is the main bubbletea model
type Model struct {
	opts     Options
	pages    sessions
	viewMode ViewMode
	tab      Tab

	// List view state
	table     table.Model
	rowIDs    []uuid.UUID
	rowNames  []string
	search    textinput.Model
	searching bool

	// Detail view state
	detail *pages.ContactDetail

	// Graph view state
	graphDOT string

	// Delete confirmation state
	pendingID   uuid.UUID
	pendingName string

	// UI state
	width  int
	height int
	err    error
}

// NewModel creates a new TUI model
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	vopts := []view.Option{view.WithLogger(opts.Logger), view.WithClock(opts.Now)}

	search := textinput.New()
	search.Placeholder = "Search..."
	search.CharLimit = 100

	return Model{
		opts: opts,
		pages: sessions{
			dashboard: view.New(pages.Dashboard(opts.Labels), opts.Repos, struct{}{}, vopts...),
			deals:     view.New(pages.Deals(opts.Labels), opts.Repos, pages.DealsCriteria{}, vopts...),
			tasks: view.New(pages.Tasks(opts.Labels), opts.Repos,
				pages.TasksCriteria{Status: pages.StatusAll, Priority: pages.All}, vopts...),
			activities: view.New(pages.Activities(opts.Labels), opts.Repos,
				pages.ActivitiesCriteria{Type: pages.All}, vopts...),
			contacts: view.New(pages.Contacts(), opts.Repos, pages.ContactsCriteria{}, vopts...),
			quotes:   view.New(pages.Quotes(opts.Labels, opts.PageSize), opts.Repos, pages.QuotesCriteria{}, vopts...),
		},
		viewMode: ViewList,
		tab:      TabDashboard,
		table:    table.New(table.WithFocused(true)),
		search:   search,
		width:    100,
		height:   30,
	}
}

// doneMsg reports a finished load or mutation on a tab.
type doneMsg struct {
	tab Tab
	err error
}

type detailMsg struct {
	detail pages.ContactDetail
	err    error
}

type graphMsg struct {
	dot string
	err error
}

func run(tab Tab, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return doneMsg{tab: tab, err: fn(context.Background())}
	}
}

func (m Model) Init() tea.Cmd {
	return m.reload(m.tab)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(m.height-12, 5))
		return m, nil
	case doneMsg:
		if errors.Is(msg.err, view.ErrSuperseded) {
			return m, nil
		}
		if msg.tab == m.tab {
			m.err = msg.err
			m.refreshTable()
		}
		return m, nil
	case detailMsg:
		if msg.err != nil {
			m.err = msg.err
			m.viewMode = ViewList
			return m, nil
		}
		m.detail = &msg.detail
		return m, nil
	case graphMsg:
		if msg.err != nil {
			m.err = msg.err
			m.viewMode = ViewList
			return m, nil
		}
		m.graphDOT = msg.dot
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewDetail:
		return m.renderDetailView()
	case ViewGraph:
		return m.renderGraphView()
	case ViewConfirmDelete:
		return m.renderConfirmDeleteView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}

	// Delegate to view-specific handlers
	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewGraph:
		return m.handleGraphKeys(msg)
	case ViewConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	}

	return m, nil
}

// reload starts a load for tab.
func (m Model) reload(tab Tab) tea.Cmd {
	p := m.pages
	switch tab {
	case TabDashboard:
		return run(tab, p.dashboard.Reload)
	case TabPipeline:
		return run(tab, p.deals.Reload)
	case TabTasks:
		return run(tab, p.tasks.Reload)
	case TabActivities:
		return run(tab, p.activities.Reload)
	case TabContacts:
		return run(tab, p.contacts.Reload)
	case TabQuotes:
		return run(tab, p.quotes.Reload)
	}
	return nil
}

// snapshot returns the lifecycle state and notice of tab.
func (m Model) snapshot(tab Tab) (view.State, string, error) {
	p := m.pages
	switch tab {
	case TabDashboard:
		s := p.dashboard.Current()
		return s.State, s.Message, s.Err
	case TabPipeline:
		s := p.deals.Current()
		return s.State, s.Message, s.Err
	case TabTasks:
		s := p.tasks.Current()
		return s.State, s.Message, s.Err
	case TabActivities:
		s := p.activities.Current()
		return s.State, s.Message, s.Err
	case TabContacts:
		s := p.contacts.Current()
		return s.State, s.Message, s.Err
	case TabQuotes:
		s := p.quotes.Current()
		return s.State, s.Message, s.Err
	}
	return view.Idle, "", nil
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)
