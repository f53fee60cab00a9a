// ABOUTME: Page view MCP tool handlers
// ABOUTME: Each tool loads one page session and returns its derived view
package handlers

import (
	"context"

	"github.com/harperreed/crmview/datewindow"
	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/pages"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ViewHandlers struct {
	deps     Deps
	pageSize int
}

func NewViewHandlers(deps Deps, pageSize int) *ViewHandlers {
	return &ViewHandlers{deps: deps, pageSize: pageSize}
}

type StageOutput struct {
	Stage string       `json:"stage"`
	Count int          `json:"count"`
	Value int64        `json:"value"`
	Deals []DealOutput `json:"deals,omitempty"`
}

type DashboardOutput struct {
	TotalValue   int64            `json:"total_value"`
	WonValue     int64            `json:"won_value"`
	ActiveDeals  int              `json:"active_deals"`
	OverdueTasks int              `json:"overdue_tasks"`
	Pipeline     []StageOutput    `json:"pipeline"`
	Recent       []ActivityOutput `json:"recent_activities"`
	Upcoming     []TaskOutput     `json:"upcoming_tasks"`
}

type ViewDashboardInput struct{}

func (h *ViewHandlers) ViewDashboard(ctx context.Context, _ *mcp.CallToolRequest, _ ViewDashboardInput) (*mcp.CallToolResult, DashboardOutput, error) {
	c, err := session(ctx, h.deps, pages.Dashboard(h.deps.Labels), struct{}{})
	if err != nil {
		return nil, DashboardOutput{}, err
	}

	v := c.Current().View
	out := DashboardOutput{
		TotalValue:   v.TotalValue,
		WonValue:     v.WonValue,
		ActiveDeals:  v.ActiveDeals,
		OverdueTasks: v.OverdueTasks,
		Pipeline:     make([]StageOutput, 0, len(v.Pipeline)),
		Recent:       make([]ActivityOutput, 0, len(v.Recent)),
		Upcoming:     make([]TaskOutput, 0, len(v.Upcoming)),
	}
	for _, s := range v.Pipeline {
		out.Pipeline = append(out.Pipeline, StageOutput{Stage: string(s.Stage), Count: s.Count, Value: s.Value})
	}
	for _, row := range v.Recent {
		out.Recent = append(out.Recent, activityRowOutput(row))
	}
	for _, row := range v.Upcoming {
		out.Upcoming = append(out.Upcoming, h.taskRowOutput(row))
	}
	return nil, out, nil
}

type ViewPipelineInput struct {
	Search string `json:"search,omitempty" jsonschema:"Filter by deal title or contact name"`
}

type PipelineOutput struct {
	Stages []StageOutput `json:"stages"`
	Count  int           `json:"count"`
	Value  int64         `json:"value"`
}

func (h *ViewHandlers) ViewPipeline(ctx context.Context, _ *mcp.CallToolRequest, input ViewPipelineInput) (*mcp.CallToolResult, PipelineOutput, error) {
	c, err := session(ctx, h.deps, pages.Deals(h.deps.Labels), pages.DealsCriteria{Search: input.Search})
	if err != nil {
		return nil, PipelineOutput{}, err
	}

	v := c.Current().View
	out := PipelineOutput{Stages: make([]StageOutput, 0, len(v.Columns)), Count: v.Count, Value: v.Value}
	for _, col := range v.Columns {
		stage := StageOutput{Stage: string(col.Stage), Count: col.Count, Value: col.Value, Deals: []DealOutput{}}
		for _, card := range col.Cards {
			d := dealToOutput(card.Deal)
			d.Contact = card.Contact
			if card.Close != nil {
				d.CloseLabel = card.Close.Text
			}
			stage.Deals = append(stage.Deals, d)
		}
		out.Stages = append(out.Stages, stage)
	}
	return nil, out, nil
}

type ViewTasksInput struct {
	Search   string `json:"search,omitempty" jsonschema:"Filter by title or description"`
	Status   string `json:"status,omitempty" jsonschema:"Status: all, completed, pending, overdue (default all)"`
	Priority string `json:"priority,omitempty" jsonschema:"Priority: all, low, medium, high (default all)"`
}

type TasksOutput struct {
	Tasks     []TaskOutput `json:"tasks"`
	Total     int          `json:"total"`
	Completed int          `json:"completed"`
	Pending   int          `json:"pending"`
	Overdue   int          `json:"overdue"`
}

func (h *ViewHandlers) ViewTasks(ctx context.Context, _ *mcp.CallToolRequest, input ViewTasksInput) (*mcp.CallToolResult, TasksOutput, error) {
	criteria := pages.TasksCriteria{
		Search:   input.Search,
		Status:   pages.TaskStatus(orAll(input.Status)),
		Priority: models.Priority(orAll(input.Priority)),
	}
	c, err := session(ctx, h.deps, pages.Tasks(h.deps.Labels), criteria)
	if err != nil {
		return nil, TasksOutput{}, err
	}

	v := c.Current().View
	out := TasksOutput{
		Tasks:     make([]TaskOutput, 0, len(v.Rows)),
		Total:     v.Total,
		Completed: v.Completed,
		Pending:   v.Pending,
		Overdue:   v.Overdue,
	}
	for _, row := range v.Rows {
		out.Tasks = append(out.Tasks, h.taskRowOutput(row))
	}
	return nil, out, nil
}

type ViewActivitiesInput struct {
	Search string `json:"search,omitempty" jsonschema:"Filter by description or contact name"`
	Type   string `json:"type,omitempty" jsonschema:"Type: all, call, email, meeting, note (default all)"`
	Date   string `json:"date,omitempty" jsonschema:"Window: all, today, yesterday, thisWeek, lastWeek (default all)"`
}

type ActivitiesOutput struct {
	Activities []ActivityOutput `json:"activities"`
	Total      int              `json:"total"`
	Calls      int              `json:"calls"`
	Emails     int              `json:"emails"`
	Meetings   int              `json:"meetings"`
}

func (h *ViewHandlers) ViewActivities(ctx context.Context, _ *mcp.CallToolRequest, input ViewActivitiesInput) (*mcp.CallToolResult, ActivitiesOutput, error) {
	criteria := pages.ActivitiesCriteria{
		Search: input.Search,
		Type:   models.ActivityType(orAll(input.Type)),
		Date:   datewindow.Token(orAll(input.Date)),
	}
	c, err := session(ctx, h.deps, pages.Activities(h.deps.Labels), criteria)
	if err != nil {
		return nil, ActivitiesOutput{}, err
	}

	v := c.Current().View
	out := ActivitiesOutput{
		Activities: make([]ActivityOutput, 0, len(v.Rows)),
		Total:      v.Total,
		Calls:      v.Calls,
		Emails:     v.Emails,
		Meetings:   v.Meetings,
	}
	for _, row := range v.Rows {
		out.Activities = append(out.Activities, activityRowOutput(row))
	}
	return nil, out, nil
}

type ViewQuotesInput struct {
	Search string `json:"search,omitempty" jsonschema:"Filter by quote name"`
	SortBy string `json:"sort_by,omitempty" jsonschema:"Sort: name, status, quote_date, expires_on, created_at (default name)"`
	Desc   bool   `json:"desc,omitempty" jsonschema:"Sort descending"`
	Page   int    `json:"page,omitempty" jsonschema:"Zero-based page number"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Quotes per page"`
}

type QuotesOutput struct {
	Quotes []QuoteOutput `json:"quotes"`
	Total  int           `json:"total"`
	Page   int           `json:"page"`
	Pages  int           `json:"pages"`
}

func (h *ViewHandlers) ViewQuotes(ctx context.Context, _ *mcp.CallToolRequest, input ViewQuotesInput) (*mcp.CallToolResult, QuotesOutput, error) {
	criteria := pages.QuotesCriteria{
		Search: input.Search,
		SortBy: input.SortBy,
		Desc:   input.Desc,
		Page:   input.Page,
		Limit:  input.Limit,
	}
	c, err := session(ctx, h.deps, pages.Quotes(h.deps.Labels, h.pageSize), criteria)
	if err != nil {
		return nil, QuotesOutput{}, err
	}

	v := c.Current().View
	out := QuotesOutput{Quotes: make([]QuoteOutput, 0, len(v.Rows)), Total: v.Total, Page: v.Page, Pages: v.Pages}
	for _, row := range v.Rows {
		out.Quotes = append(out.Quotes, QuoteOutput{
			ID:        row.Quote.ID.String(),
			Name:      row.Quote.Name,
			Status:    string(row.Status),
			Company:   row.Company,
			Contact:   row.Contact,
			Deal:      row.Deal,
			QuoteDate: formatTime(row.Quote.QuoteDate),
			ExpiresOn: formatOptionalTime(row.Quote.ExpiresOn),
		})
	}
	return nil, out, nil
}

func orAll(s string) string {
	if s == "" {
		return pages.All
	}
	return s
}

func activityRowOutput(row pages.ActivityRow) ActivityOutput {
	o := activityToOutput(row.Activity)
	o.Contact = row.Contact
	o.Deal = row.Deal
	return o
}

func (h *ViewHandlers) taskRowOutput(row pages.TaskRow) TaskOutput {
	o := taskToOutput(row.Task, h.deps.now())
	o.DueLabel = row.Due.Text
	o.Overdue = row.Overdue
	o.Contact = row.Contact
	return o
}
