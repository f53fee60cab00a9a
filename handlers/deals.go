// ABOUTME: Deal MCP tool handlers
// ABOUTME: Implements create_deal, update_deal, move_deal_stage and delete_deal tools
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/pages"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type DealHandlers struct {
	deps Deps
}

func NewDealHandlers(deps Deps) *DealHandlers {
	return &DealHandlers{deps: deps}
}

func stageList() string {
	names := make([]string, len(models.Stages))
	for i, s := range models.Stages {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

type CreateDealInput struct {
	Title             string `json:"title" jsonschema:"Deal title (required)"`
	ContactID         string `json:"contact_id" jsonschema:"ID of the contact the deal is with (required)"`
	Value             int64  `json:"value,omitempty" jsonschema:"Deal value in cents"`
	Stage             string `json:"stage,omitempty" jsonschema:"Deal stage: Lead, Qualified, Proposal, Negotiation, Won, Lost"`
	Probability       int    `json:"probability,omitempty" jsonschema:"Win probability 0-100"`
	ExpectedCloseDate string `json:"expected_close_date,omitempty" jsonschema:"Expected close date in ISO 8601 format"`
}

func (h *DealHandlers) CreateDeal(ctx context.Context, _ *mcp.CallToolRequest, input CreateDealInput) (*mcp.CallToolResult, DealOutput, error) {
	contactID, err := parseID(input.ContactID, "contact_id")
	if err != nil {
		return nil, DealOutput{}, err
	}

	deal := models.Deal{
		Title:       input.Title,
		Value:       input.Value,
		Stage:       models.Stage(input.Stage),
		ContactID:   &contactID,
		Probability: input.Probability,
	}
	if input.ExpectedCloseDate != "" {
		t, err := parseTime(input.ExpectedCloseDate, "expected_close_date")
		if err != nil {
			return nil, DealOutput{}, err
		}
		deal.ExpectedCloseDate = &t
	}

	deal, err = h.deps.Repos.Deals.Create(ctx, deal)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to create deal: %w", err)
	}
	return nil, dealToOutput(deal), nil
}

type UpdateDealInput struct {
	ID                string  `json:"id" jsonschema:"Deal ID (required)"`
	Title             *string `json:"title,omitempty" jsonschema:"New title"`
	Value             *int64  `json:"value,omitempty" jsonschema:"New value in cents"`
	Probability       *int    `json:"probability,omitempty" jsonschema:"New win probability 0-100"`
	ExpectedCloseDate *string `json:"expected_close_date,omitempty" jsonschema:"New expected close date in ISO 8601 format, empty to clear"`
}

func (h *DealHandlers) UpdateDeal(ctx context.Context, _ *mcp.CallToolRequest, input UpdateDealInput) (*mcp.CallToolResult, DealOutput, error) {
	id, err := parseID(input.ID, "id")
	if err != nil {
		return nil, DealOutput{}, err
	}

	patch := models.DealPatch{Title: input.Title, Value: input.Value, Probability: input.Probability}
	if input.ExpectedCloseDate != nil {
		if *input.ExpectedCloseDate == "" {
			patch.ClearExpectedClose = true
		} else {
			t, err := parseTime(*input.ExpectedCloseDate, "expected_close_date")
			if err != nil {
				return nil, DealOutput{}, err
			}
			patch.ExpectedCloseDate = &t
		}
	}

	deal, err := h.deps.Repos.Deals.Update(ctx, id, patch)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to update deal: %w", err)
	}
	return nil, dealToOutput(deal), nil
}

type MoveDealStageInput struct {
	ID    string `json:"id" jsonschema:"Deal ID (required)"`
	Stage string `json:"stage" jsonschema:"Target stage: Lead, Qualified, Proposal, Negotiation, Won, Lost"`
}

type MoveDealStageOutput struct {
	Deal    DealOutput `json:"deal"`
	Message string     `json:"message"`
}

// MoveDealStage runs the stage change through a pipeline page session so
// the reply carries the same notice the board shows.
func (h *DealHandlers) MoveDealStage(ctx context.Context, _ *mcp.CallToolRequest, input MoveDealStageInput) (*mcp.CallToolResult, MoveDealStageOutput, error) {
	id, err := parseID(input.ID, "id")
	if err != nil {
		return nil, MoveDealStageOutput{}, err
	}
	if input.Stage == "" {
		return nil, MoveDealStageOutput{}, fmt.Errorf("stage is required (valid: %s)", stageList())
	}

	c, err := session(ctx, h.deps, pages.Deals(h.deps.Labels), pages.DealsCriteria{})
	if err != nil {
		return nil, MoveDealStageOutput{}, err
	}
	if err := c.Mutate(ctx, pages.MoveStage(h.deps.Repos, id, models.Stage(input.Stage))); err != nil {
		return nil, MoveDealStageOutput{}, fmt.Errorf("%s: %w", c.Current().Message, err)
	}

	out := MoveDealStageOutput{Message: c.Current().Message}
	for _, col := range c.Current().View.Columns {
		for _, card := range col.Cards {
			if card.Deal.ID == id {
				out.Deal = dealToOutput(card.Deal)
				out.Deal.Contact = card.Contact
			}
		}
	}
	return nil, out, nil
}

func (h *DealHandlers) DeleteDeal(ctx context.Context, _ *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	id, err := parseID(input.ID, "id")
	if err != nil {
		return nil, DeleteOutput{}, err
	}
	if _, err := h.deps.Repos.Deals.Delete(ctx, id); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete deal: %w", err)
	}
	return nil, DeleteOutput{ID: id.String(), Message: "Deal deleted successfully"}, nil
}
