// ABOUTME: Cached entity collections and their concurrent loading
// ABOUTME: All required collections load in parallel and succeed or fail together
package view

import (
	"context"

	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/repository"
	"golang.org/x/sync/errgroup"
)

// Collection names one cached entity collection.
type Collection int

const (
	Contacts Collection = iota
	Companies
	Deals
	Tasks
	Activities
	Quotes
)

func (c Collection) String() string {
	return [...]string{"contacts", "companies", "deals", "tasks", "activities", "quotes"}[c]
}

// Collections is the per-page cache. Only the collections a page requires
// are populated.
type Collections struct {
	Contacts   []models.Contact
	Companies  []models.Company
	Deals      []models.Deal
	Tasks      []models.Task
	Activities []models.Activity
	Quotes     []models.Quote

	// QuoteTotal is the store's match count for the quote listing.
	QuoteTotal int
	// QuotesQueried reports that the store applied the quote search, sort
	// and paging. When false Quotes holds the whole collection.
	QuotesQueried bool
}

// Slot selects one collection of the cache.
type Slot[T any] func(*Collections) *[]T

var (
	ContactSlot  Slot[models.Contact]  = func(c *Collections) *[]models.Contact { return &c.Contacts }
	CompanySlot  Slot[models.Company]  = func(c *Collections) *[]models.Company { return &c.Companies }
	DealSlot     Slot[models.Deal]     = func(c *Collections) *[]models.Deal { return &c.Deals }
	TaskSlot     Slot[models.Task]     = func(c *Collections) *[]models.Task { return &c.Tasks }
	ActivitySlot Slot[models.Activity] = func(c *Collections) *[]models.Activity { return &c.Activities }
	QuoteSlot    Slot[models.Quote]    = func(c *Collections) *[]models.Quote { return &c.Quotes }
)

// loadAll fetches every required collection concurrently. Each goroutine
// writes a distinct field. The first failure is returned once every load
// has finished; siblings are not cancelled.
func loadAll(ctx context.Context, src *repository.Set, required []Collection, params func(Collection) models.ListParams) (Collections, error) {
	var cols Collections
	var g errgroup.Group

	for _, col := range required {
		p := params(col)
		switch col {
		case Contacts:
			g.Go(func() error { return into(ctx, src.Contacts, p, &cols.Contacts, nil, nil) })
		case Companies:
			g.Go(func() error { return into(ctx, src.Companies, p, &cols.Companies, nil, nil) })
		case Deals:
			g.Go(func() error { return into(ctx, src.Deals, p, &cols.Deals, nil, nil) })
		case Tasks:
			g.Go(func() error { return into(ctx, src.Tasks, p, &cols.Tasks, nil, nil) })
		case Activities:
			g.Go(func() error { return into(ctx, src.Activities, p, &cols.Activities, nil, nil) })
		case Quotes:
			g.Go(func() error { return into(ctx, src.Quotes, p, &cols.Quotes, &cols.QuoteTotal, &cols.QuotesQueried) })
		}
	}

	if err := g.Wait(); err != nil {
		return Collections{}, err
	}
	return cols, nil
}

func into[T any](ctx context.Context, r *repository.Repository[T], params models.ListParams, dst *[]T, total *int, queried *bool) error {
	page, err := r.List(ctx, params)
	if err != nil {
		return err
	}
	*dst = page.Records
	if total != nil {
		*total = page.Total
	}
	if queried != nil {
		*queried = page.Queried
	}
	return nil
}
