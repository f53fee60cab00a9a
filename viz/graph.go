// ABOUTME: GraphViz generation over cached CRM collections
// ABOUTME: Pipeline graph links stages to deals and deals to their contacts
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/google/uuid"
	"github.com/harperreed/crmview/aggregate"
	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/resolve"
	"github.com/harperreed/crmview/view"
)

// GraphGenerator renders DOT graphs from one snapshot of collections.
type GraphGenerator struct {
	cols     view.Collections
	labels   resolve.Labels
	contacts *resolve.Index[models.Contact]
}

func NewGraphGenerator(cols view.Collections, labels resolve.Labels) *GraphGenerator {
	return &GraphGenerator{
		cols:     cols,
		labels:   labels,
		contacts: resolve.NewIndex(models.ContactKind, cols.Contacts, labels),
	}
}

// render creates a graph, lets build populate it and returns the XDOT source.
func render(build func(graph *cgraph.Graph) error) (string, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer func() { _ = gv.Close() }()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() { _ = graph.Close() }()

	if err := build(graph); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.String(), nil
}

func nodeName(prefix string, id uuid.UUID) string {
	return prefix + "_" + id.String()[:8]
}

// contactNode returns the node for a deal's contact, creating it on first
// use. Dangling references share a single placeholder node.
func (g *GraphGenerator) contactNode(graph *cgraph.Graph, nodes map[string]*cgraph.Node, id *uuid.UUID) (*cgraph.Node, error) {
	ref := g.contacts.Resolve(id)
	key := "contact_unknown"
	if ref.Known {
		key = nodeName("contact", ref.Record.ID)
	} else if id == nil {
		return nil, nil
	}
	if node, ok := nodes[key]; ok {
		return node, nil
	}

	node, err := graph.CreateNodeByName(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact node: %w", err)
	}
	node.SetLabel(g.contacts.Name(id, func(c models.Contact) string { return c.Name }))
	node.SetShape("ellipse")
	node.SetStyle("filled")
	if ref.Known {
		node.SetFillColor("lightgreen")
	} else {
		node.SetFillColor("lightgrey")
	}
	nodes[key] = node
	return node, nil
}

func dealLabel(d models.Deal) string {
	return fmt.Sprintf("%s\n$%.2f", d.Title, float64(d.Value)/100.0)
}

// GeneratePipelineGraph draws one node per stage, in pipeline order, with
// that stage's deals hanging off it.
func (g *GraphGenerator) GeneratePipelineGraph() (string, error) {
	groups := aggregate.GroupBy(g.cols.Deals, func(d models.Deal) models.Stage {
		return models.NormalizeStage(d.Stage)
	}, models.Stages)

	return render(func(graph *cgraph.Graph) error {
		graph.SetLabel("Deal Pipeline")
		graph.SetRankDir(cgraph.LRRank)

		contactNodes := make(map[string]*cgraph.Node)
		var prev *cgraph.Node
		for _, group := range groups {
			stage, err := graph.CreateNodeByName("stage_" + string(group.Key))
			if err != nil {
				return fmt.Errorf("failed to create stage node: %w", err)
			}
			stage.SetLabel(fmt.Sprintf("%s\n%d deal(s) $%.2f", group.Key, len(group.Items),
				float64(aggregate.Sum(group.Items, func(d models.Deal) int64 { return d.Value }))/100.0))
			stage.SetShape("box")
			stage.SetStyle("filled")
			stage.SetFillColor("lightblue")

			if prev != nil {
				edge, err := graph.CreateEdgeByName("next", prev, stage)
				if err != nil {
					return fmt.Errorf("failed to create edge: %w", err)
				}
				edge.SetStyle("invis")
			}
			prev = stage

			for _, deal := range group.Items {
				node, err := graph.CreateNodeByName(nodeName("deal", deal.ID))
				if err != nil {
					return fmt.Errorf("failed to create deal node: %w", err)
				}
				node.SetLabel(dealLabel(deal))
				node.SetShape("diamond")
				node.SetStyle("filled")
				node.SetFillColor("lightyellow")

				if _, err := graph.CreateEdgeByName("in_stage", stage, node); err != nil {
					return fmt.Errorf("failed to create edge: %w", err)
				}

				contact, err := g.contactNode(graph, contactNodes, deal.ContactID)
				if err != nil {
					return err
				}
				if contact != nil {
					edge, err := graph.CreateEdgeByName("contact_for", contact, node)
					if err != nil {
						return fmt.Errorf("failed to create edge: %w", err)
					}
					edge.SetStyle("dotted")
				}
			}
		}
		return nil
	})
}
