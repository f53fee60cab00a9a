// ABOUTME: Activity MCP tool handlers
// ABOUTME: Implements log_activity and delete_activity tools
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/crmview/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ActivityHandlers struct {
	deps Deps
}

func NewActivityHandlers(deps Deps) *ActivityHandlers {
	return &ActivityHandlers{deps: deps}
}

type LogActivityInput struct {
	Type        string   `json:"type,omitempty" jsonschema:"Activity type: call, email, meeting, note (default call)"`
	ContactID   string   `json:"contact_id" jsonschema:"ID of the contact (required)"`
	DealID      string   `json:"deal_id,omitempty" jsonschema:"ID of a related deal"`
	Description string   `json:"description" jsonschema:"What happened (required)"`
	Date        string   `json:"date,omitempty" jsonschema:"When it happened in ISO 8601 format (default now)"`
	Duration    int      `json:"duration,omitempty" jsonschema:"Duration in minutes for calls and meetings"`
	Tags        []string `json:"tags,omitempty" jsonschema:"Free-form tags"`
}

func (h *ActivityHandlers) LogActivity(ctx context.Context, _ *mcp.CallToolRequest, input LogActivityInput) (*mcp.CallToolResult, ActivityOutput, error) {
	contactID, err := parseID(input.ContactID, "contact_id")
	if err != nil {
		return nil, ActivityOutput{}, err
	}
	dealID, err := optionalID(input.DealID, "deal_id")
	if err != nil {
		return nil, ActivityOutput{}, err
	}

	activity := models.Activity{
		Type:        models.ActivityType(input.Type),
		ContactID:   &contactID,
		DealID:      dealID,
		Description: input.Description,
		Duration:    input.Duration,
		Tags:        input.Tags,
	}
	if input.Date != "" {
		if activity.Date, err = parseTime(input.Date, "date"); err != nil {
			return nil, ActivityOutput{}, err
		}
	}

	activity, err = h.deps.Repos.Activities.Create(ctx, activity)
	if err != nil {
		return nil, ActivityOutput{}, fmt.Errorf("failed to log activity: %w", err)
	}
	return nil, activityToOutput(activity), nil
}

func (h *ActivityHandlers) DeleteActivity(ctx context.Context, _ *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	id, err := parseID(input.ID, "id")
	if err != nil {
		return nil, DeleteOutput{}, err
	}
	if _, err := h.deps.Repos.Activities.Delete(ctx, id); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete activity: %w", err)
	}
	return nil, DeleteOutput{ID: id.String(), Message: "Activity deleted successfully"}, nil
}
