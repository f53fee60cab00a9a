// ABOUTME: Complete graph generation combining all entities
// ABOUTME: Generates comprehensive visualization of contacts, companies, deals and quotes
package viz

import (
	"fmt"

	"github.com/goccy/go-graphviz/cgraph"
	"github.com/google/uuid"
	"github.com/harperreed/crmview/models"
)

// GenerateCompleteGraph creates a graph of every company, contact, deal and quote.
func (g *GraphGenerator) GenerateCompleteGraph() (string, error) {
	return render(func(graph *cgraph.Graph) error {
		graph.SetLabel("Complete CRM Graph")

		nodes := make(map[uuid.UUID]*cgraph.Node)
		add := func(prefix string, id uuid.UUID, label, shape, color string) error {
			node, err := graph.CreateNodeByName(nodeName(prefix, id))
			if err != nil {
				return fmt.Errorf("failed to create %s node: %w", prefix, err)
			}
			node.SetLabel(label)
			node.SetShape(cgraph.Shape(shape))
			node.SetStyle("filled")
			node.SetFillColor(color)
			nodes[id] = node
			return nil
		}
		link := func(name string, from *uuid.UUID, to uuid.UUID, style string) error {
			if from == nil {
				return nil
			}
			src, ok := nodes[*from]
			if !ok {
				return nil
			}
			edge, err := graph.CreateEdgeByName(name, src, nodes[to])
			if err != nil {
				return fmt.Errorf("failed to create edge: %w", err)
			}
			edge.SetLabel(name)
			edge.SetStyle(cgraph.EdgeStyle(style))
			return nil
		}

		for _, company := range g.cols.Companies {
			if err := add("company", company.ID, company.Name+"\n(Company)", "box", "lightblue"); err != nil {
				return err
			}
		}
		for _, contact := range g.cols.Contacts {
			if err := add("contact", contact.ID, contact.Name+"\n"+contact.Email, "ellipse", "lightgreen"); err != nil {
				return err
			}
		}
		for _, deal := range g.cols.Deals {
			label := fmt.Sprintf("%s\n(%s)", dealLabel(deal), models.NormalizeStage(deal.Stage))
			if err := add("deal", deal.ID, label, "diamond", "lightyellow"); err != nil {
				return err
			}
			if err := link("contact", deal.ContactID, deal.ID, "dotted"); err != nil {
				return err
			}
		}
		for _, quote := range g.cols.Quotes {
			label := fmt.Sprintf("%s\n(%s)", quote.Name, models.NormalizeQuoteStatus(quote.Status))
			if err := add("quote", quote.ID, label, "note", "white"); err != nil {
				return err
			}
			if err := link("quote", quote.CompanyID, quote.ID, "solid"); err != nil {
				return err
			}
			if err := link("quote", quote.ContactID, quote.ID, "dashed"); err != nil {
				return err
			}
			if err := link("quote", quote.DealID, quote.ID, "dotted"); err != nil {
				return err
			}
		}
		return nil
	})
}
