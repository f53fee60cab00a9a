// ABOUTME: Quotes page: search, sort and paging pushed to the store
// ABOUTME: Falls back to client-side search and paging when the store returns everything
package pages

import (
	"slices"
	"strings"
	"time"

	"github.com/harperreed/crmview/filter"
	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/resolve"
	"github.com/harperreed/crmview/view"
)

// DefaultQuoteLimit is the page size when none is configured.
const DefaultQuoteLimit = 20

type QuotesCriteria struct {
	Search string
	SortBy string // name, status, quote_date, expires_on or created_at
	Desc   bool
	Page   int // zero-based
	Limit  int
}

type QuoteRow struct {
	Quote   models.Quote
	Status  models.QuoteStatus
	Company string
	Contact string
	Deal    string
}

type QuotesView struct {
	Rows  []QuoteRow
	Total int
	Page  int
	Pages int
}

// Quotes builds the quotes page. limit is the default page size used when
// the criteria carry none.
func Quotes(labels resolve.Labels, limit int) view.Page[QuotesCriteria, QuotesView] {
	if limit <= 0 {
		limit = DefaultQuoteLimit
	}
	return view.Page[QuotesCriteria, QuotesView]{
		Name:       "quotes",
		LoadError:  "Failed to load quotes",
		Requires:   []view.Collection{view.Quotes, view.Companies, view.Contacts, view.Deals},
		ServerSide: true,
		Params: func(c QuotesCriteria, col view.Collection) models.ListParams {
			if col != view.Quotes {
				return models.ListParams{}
			}
			return quoteParams(c, limit)
		},
		Derive: func(cols view.Collections, c QuotesCriteria, _ time.Time) QuotesView {
			return deriveQuotes(cols, quoteParams(c, limit), labels)
		},
	}
}

func quoteParams(c QuotesCriteria, limit int) models.ListParams {
	p := models.ListParams{
		Search: strings.TrimSpace(c.Search),
		SortBy: strings.ToLower(c.SortBy),
		Desc:   c.Desc,
		Page:   c.Page,
		Limit:  c.Limit,
	}
	if p.SortBy == "" {
		p.SortBy = "name"
	}
	if p.Limit <= 0 {
		p.Limit = limit
	}
	if p.Page < 0 {
		p.Page = 0
	}
	return p
}

// deriveQuotes presents the loaded quotes. When the store applied the
// listing parameters the rows are its page and Total its count; otherwise
// the full collection is searched, sorted and paged here.
func deriveQuotes(cols view.Collections, p models.ListParams, labels resolve.Labels) QuotesView {
	n := newNames(cols.Contacts, cols.Companies, cols.Deals, labels)

	quotes := filter.Apply(cols.Quotes, filter.Text(p.Search, func(q models.Quote) string { return q.Name }))
	sortQuotes(quotes, p.SortBy, p.Desc)

	total := cols.QuoteTotal
	if !cols.QuotesQueried {
		total = len(quotes)
		quotes = models.Paginate(quotes, p)
	}

	v := QuotesView{
		Rows:  make([]QuoteRow, 0, len(quotes)),
		Total: total,
		Page:  p.Page,
		Pages: models.Page[models.Quote]{Total: total}.Pages(p.Limit),
	}
	for _, q := range quotes {
		v.Rows = append(v.Rows, QuoteRow{
			Quote:   q,
			Status:  models.NormalizeQuoteStatus(q.Status),
			Company: n.company(q.CompanyID),
			Contact: n.contact(q.ContactID),
			Deal:    n.deal(q.DealID),
		})
	}
	return v
}

func sortQuotes(quotes []models.Quote, by string, desc bool) {
	less, ok := models.QuoteKind.Order[by]
	if !ok {
		return
	}
	slices.SortStableFunc(quotes, func(a, b models.Quote) int {
		if desc {
			return less(b, a)
		}
		return less(a, b)
	})
}
