package viz

import (
	"fmt"

	"github.com/goccy/go-graphviz/cgraph"
	"github.com/google/uuid"
	"github.com/harperreed/crmview/models"
)

// GenerateContactGraph draws contacts with their deals, open tasks and
// activity counts. A non-nil contactID limits the graph to that contact.
func (g *GraphGenerator) GenerateContactGraph(contactID *uuid.UUID) (string, error) {
	contacts := g.cols.Contacts
	if contactID != nil {
		ref := g.contacts.Resolve(contactID)
		if !ref.Known {
			return "", &models.NotFoundError{Entity: models.ContactKind.Name, ID: *contactID}
		}
		contacts = []models.Contact{ref.Record}
	}

	return render(func(graph *cgraph.Graph) error {
		graph.SetRankDir(cgraph.LRRank)

		for _, contact := range contacts {
			node, err := graph.CreateNodeByName(nodeName("contact", contact.ID))
			if err != nil {
				return fmt.Errorf("failed to create contact node: %w", err)
			}
			activities := 0
			for _, a := range g.cols.Activities {
				if a.ContactID != nil && *a.ContactID == contact.ID {
					activities++
				}
			}
			node.SetLabel(fmt.Sprintf("%s\n%d activit(ies)", contact.Name, activities))
			node.SetShape("ellipse")

			for _, deal := range g.cols.Deals {
				if deal.ContactID == nil || *deal.ContactID != contact.ID {
					continue
				}
				dn, err := graph.CreateNodeByName(nodeName("deal", deal.ID))
				if err != nil {
					return fmt.Errorf("failed to create deal node: %w", err)
				}
				dn.SetLabel(fmt.Sprintf("%s\n(%s)", deal.Title, models.NormalizeStage(deal.Stage)))
				dn.SetShape("diamond")
				if _, err := graph.CreateEdgeByName("deal", node, dn); err != nil {
					return fmt.Errorf("failed to create edge: %w", err)
				}
			}

			for _, task := range g.cols.Tasks {
				if task.Completed || task.ContactID == nil || *task.ContactID != contact.ID {
					continue
				}
				tn, err := graph.CreateNodeByName(nodeName("task", task.ID))
				if err != nil {
					return fmt.Errorf("failed to create task node: %w", err)
				}
				tn.SetLabel(fmt.Sprintf("%s\ndue %s", task.Title, task.DueDate.Format("Jan 2")))
				tn.SetShape("note")
				edge, err := graph.CreateEdgeByName("task", node, tn)
				if err != nil {
					return fmt.Errorf("failed to create edge: %w", err)
				}
				edge.SetStyle("dashed")
			}
		}
		return nil
	})
}
