// ABOUTME: MCP prompt handlers for reusable CRM workflow templates
// ABOUTME: Provides contact-summary, pipeline-review and follow-up-plan prompts
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/crmview/pages"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type PromptHandlers struct {
	deps  Deps
	views *ViewHandlers
}

func NewPromptHandlers(deps Deps) *PromptHandlers {
	return &PromptHandlers{deps: deps, views: NewViewHandlers(deps, 0)}
}

// Prompts lists the prompt templates the server advertises.
func (h *PromptHandlers) Prompts() []*mcp.Prompt {
	return []*mcp.Prompt{
		{
			Name:        "contact-summary",
			Description: "Summarize a contact with their deals and recent activity",
			Arguments: []*mcp.PromptArgument{
				{Name: "contact_id", Description: "Contact ID", Required: true},
			},
		},
		{
			Name:        "pipeline-review",
			Description: "Review the deal pipeline stage by stage",
		},
		{
			Name:        "follow-up-plan",
			Description: "Plan follow-ups from overdue and upcoming tasks",
		},
	}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(ctx context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	switch request.Params.Name {
	case "contact-summary":
		return h.contactSummary(ctx, request.Params.Arguments)
	case "pipeline-review":
		return h.pipelineReview(ctx)
	case "follow-up-plan":
		return h.followUpPlan(ctx)
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func userPrompt(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: text}},
		},
	}
}

func (h *PromptHandlers) contactSummary(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
	id, err := parseID(args["contact_id"], "contact_id")
	if err != nil {
		return nil, err
	}

	d, err := pages.LoadContactDetail(ctx, h.deps.Repos, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contact: %w", err)
	}

	var b strings.Builder
	b.WriteString("Please provide a comprehensive summary of this contact:\n\n")
	b.WriteString(fmt.Sprintf("Name: %s\n", d.Contact.Name))
	if d.Contact.Email != "" {
		b.WriteString(fmt.Sprintf("Email: %s\n", d.Contact.Email))
	}
	if d.Contact.Company != "" {
		b.WriteString(fmt.Sprintf("Company: %s\n", d.Contact.Company))
	}
	if d.Contact.Position != "" {
		b.WriteString(fmt.Sprintf("Position: %s\n", d.Contact.Position))
	}

	if len(d.Deals) > 0 {
		b.WriteString(fmt.Sprintf("\nDeals (%d):\n", len(d.Deals)))
		for _, deal := range d.Deals {
			b.WriteString(fmt.Sprintf("- %s: %s, $%.2f\n", deal.Title, deal.Stage, float64(deal.Value)/100.0))
		}
	}
	if len(d.Activities) > 0 {
		b.WriteString(fmt.Sprintf("\nRecent activity (%d):\n", len(d.Activities)))
		for i, a := range d.Activities {
			if i >= 10 {
				break
			}
			b.WriteString(fmt.Sprintf("- %s %s: %s\n", a.Date.Format("2006-01-02"), a.Type, a.Description))
		}
	}
	if d.Contact.Notes != "" {
		b.WriteString(fmt.Sprintf("\nNotes: %s\n", d.Contact.Notes))
	}

	b.WriteString("\nPlease analyze this contact and provide:")
	b.WriteString("\n1. A brief summary of their role and the state of our deals")
	b.WriteString("\n2. Recommendations for next steps")

	return userPrompt("Summary for contact: "+d.Contact.Name, b.String()), nil
}

func (h *PromptHandlers) pipelineReview(ctx context.Context) (*mcp.GetPromptResult, error) {
	_, pipeline, err := h.views.ViewPipeline(ctx, nil, ViewPipelineInput{})
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("Please review this sales pipeline:\n\n")
	for _, stage := range pipeline.Stages {
		b.WriteString(fmt.Sprintf("%s: %d deal(s), $%.2f\n", stage.Stage, stage.Count, float64(stage.Value)/100.0))
		for _, deal := range stage.Deals {
			line := fmt.Sprintf("  - %s (%s)", deal.Title, deal.Contact)
			if deal.CloseLabel != "" {
				line += ", closes " + deal.CloseLabel
			}
			b.WriteString(line + "\n")
		}
	}
	b.WriteString(fmt.Sprintf("\nTotal: %d deal(s), $%.2f\n", pipeline.Count, float64(pipeline.Value)/100.0))
	b.WriteString("\nIdentify stalled deals, risks and the most promising opportunities.")

	return userPrompt("Pipeline review", b.String()), nil
}

func (h *PromptHandlers) followUpPlan(ctx context.Context) (*mcp.GetPromptResult, error) {
	_, tasks, err := h.views.ViewTasks(ctx, nil, ViewTasksInput{Status: string(pages.StatusPending)})
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("I have %d pending task(s), %d of them overdue:\n\n", tasks.Pending, tasks.Overdue))
	for _, t := range tasks.Tasks {
		b.WriteString(fmt.Sprintf("- [%s] %s (%s, %s priority)\n", t.DueLabel, t.Title, t.Contact, t.Priority))
	}
	b.WriteString("\nSuggest an order to work through these and a short message for each contact.")

	return userPrompt("Follow-up plan", b.String()), nil
}
