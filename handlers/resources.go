// ABOUTME: MCP resource handlers for exposing CRM data
// ABOUTME: Provides read-only access to contacts, deals, the pipeline and the dashboard via URI
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harperreed/crmview/pages"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ResourceHandlers struct {
	deps  Deps
	views *ViewHandlers
}

func NewResourceHandlers(deps Deps, pageSize int) *ResourceHandlers {
	return &ResourceHandlers{deps: deps, views: NewViewHandlers(deps, pageSize)}
}

// Resources lists the static resources the server advertises.
func (h *ResourceHandlers) Resources() []*mcp.Resource {
	return []*mcp.Resource{
		{URI: "crm://contacts", Name: "contacts", Description: "All contacts", MIMEType: "application/json"},
		{URI: "crm://deals", Name: "deals", Description: "All deals", MIMEType: "application/json"},
		{URI: "crm://pipeline", Name: "pipeline", Description: "Deals grouped by stage with totals", MIMEType: "application/json"},
		{URI: "crm://dashboard", Name: "dashboard", Description: "Pipeline totals, overdue tasks and recent activity", MIMEType: "application/json"},
	}
}

// ContactTemplate addresses a single contact with its deals and activities.
func (h *ResourceHandlers) ContactTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "contact",
		Description: "One contact with deals and activities. URI format: crm://contacts/{id}",
		MIMEType:    "application/json",
		URITemplate: "crm://contacts/{id}",
	}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, "crm://") {
		return nil, fmt.Errorf("invalid URI scheme: expected crm://")
	}

	parts := strings.Split(strings.TrimPrefix(uri, "crm://"), "/")

	var payload any
	var err error
	switch parts[0] {
	case "contacts":
		if len(parts) == 1 {
			payload, err = h.allContacts(ctx)
		} else {
			_, payload, err = NewContactHandlers(h.deps).GetContact(ctx, nil, GetContactInput{ID: parts[1]})
		}

	case "deals":
		payload, err = h.allDeals(ctx)

	case "pipeline":
		_, payload, err = h.views.ViewPipeline(ctx, nil, ViewPipelineInput{})

	case "dashboard":
		_, payload, err = h.views.ViewDashboard(ctx, nil, ViewDashboardInput{})

	default:
		return nil, fmt.Errorf("unknown resource: %s", parts[0])
	}
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", parts[0], err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}

func (h *ResourceHandlers) allContacts(ctx context.Context) ([]ContactOutput, error) {
	c, err := session(ctx, h.deps, pages.Contacts(), pages.ContactsCriteria{})
	if err != nil {
		return nil, err
	}
	out := []ContactOutput{}
	for _, contact := range c.Current().View.Contacts {
		out = append(out, contactToOutput(contact))
	}
	return out, nil
}

func (h *ResourceHandlers) allDeals(ctx context.Context) ([]DealOutput, error) {
	_, pipeline, err := h.views.ViewPipeline(ctx, nil, ViewPipelineInput{})
	if err != nil {
		return nil, err
	}
	out := []DealOutput{}
	for _, stage := range pipeline.Stages {
		out = append(out, stage.Deals...)
	}
	return out, nil
}
