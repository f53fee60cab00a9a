// ABOUTME: Web UI server with embedded templates
// ABOUTME: Serves the dashboard, pipeline, task, activity, contact and quote pages over HTTP
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/harperreed/crmview/datewindow"
	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/pages"
	"github.com/harperreed/crmview/repository"
	"github.com/harperreed/crmview/resolve"
	"github.com/harperreed/crmview/view"
	"github.com/harperreed/crmview/viz"
)

//go:embed templates/*.html templates/partials/*.html
var templatesFS embed.FS

// Options wires the server to the CRM.
type Options struct {
	Repos    *repository.Set
	Labels   resolve.Labels
	Logger   *log.Logger
	Now      func() time.Time
	PageSize int
}

type Server struct {
	opts      Options
	templates *template.Template
}

func NewServer(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	// Helper functions for templates
	funcMap := template.FuncMap{
		"money": func(cents int64) string {
			return fmt.Sprintf("$%.2f", float64(cents)/100.0)
		},
		"date": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"percent": func(part, whole int64) int64 {
			if whole == 0 {
				return 0
			}
			return part * 100 / whole
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{opts: opts, templates: tmpl}, nil
}

// Handler returns the routes of the web UI.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("GET /pipeline", s.handlePipeline)
	mux.HandleFunc("GET /tasks", s.handleTasks)
	mux.HandleFunc("GET /activities", s.handleActivities)
	mux.HandleFunc("GET /contacts", s.handleContacts)
	mux.HandleFunc("GET /quotes", s.handleQuotes)
	mux.HandleFunc("GET /graphs", s.handleGraphs)

	// Partials for HTMX
	mux.HandleFunc("GET /partials/contact-detail", s.handleContactDetail)
	mux.HandleFunc("GET /partials/graph", s.handleGraphPartial)
	mux.HandleFunc("POST /tasks/{id}/toggle", s.handleToggleTask)
	mux.HandleFunc("POST /deals/{id}/stage", s.handleMoveStage)
	return mux
}

func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.opts.Logger.Info("Starting web server", "url", "http://localhost"+addr)
	return http.ListenAndServe(addr, s.Handler())
}

// open starts a page session and waits for its first load.
func open[C, V any](ctx context.Context, s *Server, page view.Page[C, V], criteria C) (*view.Coordinator[C, V], error) {
	c := view.New(page, s.opts.Repos, criteria, view.WithLogger(s.opts.Logger), view.WithClock(s.opts.Now))
	if err := c.Reload(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", c.Current().Message, err)
	}
	return c, nil
}

func (s *Server) renderPage(w http.ResponseWriter, title, content string, data map[string]any) {
	data["Title"] = title
	data["ContentTemplate"] = content
	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data any) {
	// The layout picks its content block from data["ContentTemplate"]
	err := s.templates.ExecuteTemplate(w, name, data)
	if err != nil {
		s.opts.Logger.Error("Template error", "template", name, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// fail reports err with a status matching its kind.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrValidation):
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	c, err := open(r.Context(), s, pages.Dashboard(s.opts.Labels), struct{}{})
	if err != nil {
		s.fail(w, err)
		return
	}

	s.renderPage(w, "Dashboard", "dashboard-content", map[string]any{
		"Dashboard": c.Current().View,
	})
}

func (s *Server) handlePipeline(w http.ResponseWriter, r *http.Request) {
	criteria := pages.DealsCriteria{Search: r.URL.Query().Get("q")}
	c, err := open(r.Context(), s, pages.Deals(s.opts.Labels), criteria)
	if err != nil {
		s.fail(w, err)
		return
	}

	s.renderPage(w, "Pipeline", "pipeline-content", map[string]any{
		"Pipeline": c.Current().View,
		"Query":    criteria.Search,
		"Stages":   models.Stages,
	})
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := pages.TasksCriteria{
		Search:   q.Get("q"),
		Status:   pages.TaskStatus(orAll(q.Get("status"))),
		Priority: models.Priority(orAll(q.Get("priority"))),
	}
	c, err := open(r.Context(), s, pages.Tasks(s.opts.Labels), criteria)
	if err != nil {
		s.fail(w, err)
		return
	}

	s.renderPage(w, "Tasks", "tasks-content", map[string]any{
		"Tasks":      c.Current().View,
		"Criteria":   criteria,
		"Statuses":   []pages.TaskStatus{pages.StatusAll, pages.StatusPending, pages.StatusCompleted, pages.StatusOverdue},
		"Priorities": append([]models.Priority{pages.All}, models.Priorities...),
	})
}

func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := pages.ActivitiesCriteria{
		Search: q.Get("q"),
		Type:   models.ActivityType(orAll(q.Get("type"))),
		Date:   datewindow.Token(orAll(q.Get("date"))),
	}
	c, err := open(r.Context(), s, pages.Activities(s.opts.Labels), criteria)
	if err != nil {
		s.fail(w, err)
		return
	}

	s.renderPage(w, "Activities", "activities-content", map[string]any{
		"Activities": c.Current().View,
		"Criteria":   criteria,
		"Types":      append([]models.ActivityType{pages.All}, models.ActivityTypes...),
		"Windows":    datewindow.Tokens,
	})
}

func (s *Server) handleContacts(w http.ResponseWriter, r *http.Request) {
	criteria := pages.ContactsCriteria{Search: r.URL.Query().Get("q")}
	c, err := open(r.Context(), s, pages.Contacts(), criteria)
	if err != nil {
		s.fail(w, err)
		return
	}

	s.renderPage(w, "Contacts", "contacts-content", map[string]any{
		"Contacts": c.Current().View,
		"Query":    criteria.Search,
	})
}

func (s *Server) handleQuotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := pages.QuotesCriteria{
		Search: q.Get("q"),
		SortBy: q.Get("sort"),
		Desc:   q.Get("desc") == "true",
	}
	// Pages are 1-based in URLs
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 1 {
		criteria.Page = n - 1
	}

	c, err := open(r.Context(), s, pages.Quotes(s.opts.Labels, s.opts.PageSize), criteria)
	if err != nil {
		s.fail(w, err)
		return
	}

	s.renderPage(w, "Quotes", "quotes-content", map[string]any{
		"Quotes":   c.Current().View,
		"Criteria": criteria,
	})
}

func (s *Server) handleContactDetail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	detail, err := pages.LoadContactDetail(r.Context(), s.opts.Repos, id)
	if err != nil {
		s.fail(w, err)
		return
	}

	s.renderTemplate(w, "partials/contact-detail.html", map[string]any{
		"Detail": detail,
	})
}

func (s *Server) handleGraphs(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "Graphs", "graphs-content", map[string]any{})
}

func (s *Server) handleGraphPartial(w http.ResponseWriter, r *http.Request) {
	graphType := r.URL.Query().Get("type")
	entityIDStr := r.URL.Query().Get("entity_id")

	c, err := open(r.Context(), s, pages.Graph(), struct{}{})
	if err != nil {
		s.fail(w, err)
		return
	}
	generator := viz.NewGraphGenerator(c.Current().View, s.opts.Labels)

	var dot string
	switch graphType {
	case "contacts":
		var contactID *uuid.UUID
		if entityIDStr != "" {
			id, parseErr := uuid.Parse(entityIDStr)
			if parseErr != nil {
				http.Error(w, "Invalid contact ID", http.StatusBadRequest)
				return
			}
			contactID = &id
		}
		dot, err = generator.GenerateContactGraph(contactID)

	case "pipeline":
		dot, err = generator.GeneratePipelineGraph()

	case "all":
		dot, err = generator.GenerateCompleteGraph()

	default:
		http.Error(w, "Invalid graph type", http.StatusBadRequest)
		return
	}

	if err != nil {
		s.fail(w, err)
		return
	}

	s.renderTemplate(w, "partials/graph.html", map[string]any{
		"DOT": dot,
	})
}

// handleToggleTask flips a task through the tasks page and answers with
// the updated row.
func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid task ID", http.StatusBadRequest)
		return
	}

	c, err := open(r.Context(), s, pages.Tasks(s.opts.Labels), pages.TasksCriteria{Status: pages.StatusAll, Priority: pages.All})
	if err != nil {
		s.fail(w, err)
		return
	}

	var task *models.Task
	for _, t := range c.Data().Tasks {
		if t.ID == id {
			task = &t
			break
		}
	}
	if task == nil {
		s.fail(w, &models.NotFoundError{Entity: models.TaskKind.Name, ID: id})
		return
	}

	if err := c.Mutate(r.Context(), pages.ToggleTask(s.opts.Repos, *task)); err != nil {
		s.fail(w, fmt.Errorf("%s: %w", c.Current().Message, err))
		return
	}

	for _, row := range c.Current().View.Rows {
		if row.Task.ID == id {
			s.renderTemplate(w, "partials/task-row.html", row)
			return
		}
	}
}

// handleMoveStage moves a deal to the stage named in the form and
// redirects back to the pipeline.
func (s *Server) handleMoveStage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid deal ID", http.StatusBadRequest)
		return
	}
	stage := strings.TrimSpace(r.FormValue("stage"))
	if stage == "" {
		http.Error(w, "stage is required", http.StatusBadRequest)
		return
	}

	c, err := open(r.Context(), s, pages.Deals(s.opts.Labels), pages.DealsCriteria{})
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := c.Mutate(r.Context(), pages.MoveStage(s.opts.Repos, id, models.Stage(stage))); err != nil {
		s.fail(w, fmt.Errorf("%s: %w", c.Current().Message, err))
		return
	}

	http.Redirect(w, r, "/pipeline", http.StatusSeeOther)
}

func orAll(v string) string {
	if v == "" {
		return pages.All
	}
	return v
}
