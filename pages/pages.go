// ABOUTME: Page definitions binding criteria and derived views to the coordinator
// ABOUTME: Shared display helpers for resolved names and record ordering
package pages

import (
	"sort"

	"github.com/google/uuid"
	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/resolve"
)

// All is the categorical sentinel that disables a filter.
const All = "all"

// names resolves foreign keys to display names for one derive pass.
type names struct {
	contacts  *resolve.Index[models.Contact]
	companies *resolve.Index[models.Company]
	deals     *resolve.Index[models.Deal]
}

func newNames(contacts []models.Contact, companies []models.Company, deals []models.Deal, labels resolve.Labels) names {
	return names{
		contacts:  resolve.NewIndex(models.ContactKind, contacts, labels),
		companies: resolve.NewIndex(models.CompanyKind, companies, labels),
		deals:     resolve.NewIndex(models.DealKind, deals, labels),
	}
}

func (n names) contact(id *uuid.UUID) string {
	return n.contacts.Name(id, func(c models.Contact) string { return c.Name })
}

func (n names) company(id *uuid.UUID) string {
	return n.companies.Name(id, func(c models.Company) string { return c.Name })
}

func (n names) deal(id *uuid.UUID) string {
	return n.deals.Name(id, func(d models.Deal) string { return d.Title })
}

// newestFirst sorts activities by date, latest first, in place.
func newestFirst(items []models.Activity) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
}

// soonestFirst sorts tasks by due date, earliest first, in place.
func soonestFirst(items []models.Task) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DueDate.Before(items[j].DueDate)
	})
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
