// ABOUTME: Graph page: loads every collection for relationship graphs
// ABOUTME: The view is the raw cache; rendering happens in the viz package
package pages

import (
	"time"

	"github.com/harperreed/crmview/view"
)

// Graph loads all six collections and hands them through unchanged.
func Graph() view.Page[struct{}, view.Collections] {
	return view.Page[struct{}, view.Collections]{
		Name:      "graph",
		LoadError: "Failed to load graph data",
		Requires:  []view.Collection{view.Contacts, view.Companies, view.Deals, view.Tasks, view.Activities, view.Quotes},
		Derive: func(cols view.Collections, _ struct{}, _ time.Time) view.Collections {
			return cols
		},
	}
}
