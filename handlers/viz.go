// ABOUTME: GraphViz visualization MCP handlers
// ABOUTME: Provides generate_graph tool for agents
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/crmview/pages"
	"github.com/harperreed/crmview/viz"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type VizHandlers struct {
	deps Deps
}

func NewVizHandlers(deps Deps) *VizHandlers {
	return &VizHandlers{deps: deps}
}

type GenerateGraphInput struct {
	Type     string `json:"type" jsonschema:"Graph type: pipeline, contacts, or all"`
	EntityID string `json:"entity_id,omitempty" jsonschema:"Contact UUID to focus a contacts graph on"`
}

type GenerateGraphOutput struct {
	GraphType string `json:"graph_type"`
	DOTSource string `json:"dot_source"`
	NodeCount int    `json:"node_count"`
	EdgeCount int    `json:"edge_count"`
}

func (h *VizHandlers) GenerateGraph(ctx context.Context, _ *mcp.CallToolRequest, input GenerateGraphInput) (*mcp.CallToolResult, GenerateGraphOutput, error) {
	if input.Type == "" {
		return nil, GenerateGraphOutput{}, fmt.Errorf("type is required")
	}

	c, err := session(ctx, h.deps, pages.Graph(), struct{}{})
	if err != nil {
		return nil, GenerateGraphOutput{}, err
	}
	generator := viz.NewGraphGenerator(c.Current().View, h.deps.Labels)

	var dot string
	switch input.Type {
	case "pipeline":
		dot, err = generator.GeneratePipelineGraph()

	case "contacts":
		contactID, perr := optionalID(input.EntityID, "entity_id")
		if perr != nil {
			return nil, GenerateGraphOutput{}, perr
		}
		dot, err = generator.GenerateContactGraph(contactID)

	case "all":
		dot, err = generator.GenerateCompleteGraph()

	default:
		return nil, GenerateGraphOutput{}, fmt.Errorf("unknown graph type: %s (valid types: pipeline, contacts, all)", input.Type)
	}

	if err != nil {
		return nil, GenerateGraphOutput{}, fmt.Errorf("failed to generate graph: %w", err)
	}

	// Count nodes and edges for stats
	nodeCount := strings.Count(dot, "[label=")
	edgeCount := strings.Count(dot, "->")

	return nil, GenerateGraphOutput{
		GraphType: input.Type,
		DOTSource: dot,
		NodeCount: nodeCount,
		EdgeCount: edgeCount,
	}, nil
}
