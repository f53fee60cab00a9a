// ABOUTME: Deals pipeline page: one column per stage with count and value
// ABOUTME: Cards resolve their contact; stage moves go through the repository
package pages

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/crmview/aggregate"
	"github.com/harperreed/crmview/datewindow"
	"github.com/harperreed/crmview/filter"
	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/repository"
	"github.com/harperreed/crmview/resolve"
	"github.com/harperreed/crmview/view"
)

type DealsCriteria struct {
	Search string
}

// DealCard is one deal as shown in a stage column.
type DealCard struct {
	Deal    models.Deal
	Contact string
	// Close labels the expected close date, nil when none is set.
	Close *datewindow.Label
}

type StageColumn struct {
	Stage models.Stage
	Cards []DealCard
	Count int
	Value int64
}

type DealsView struct {
	Columns []StageColumn
	Count   int
	Value   int64
}

// Deals builds the pipeline page. Deals with an unrecognised stage land in
// the Lead column.
func Deals(labels resolve.Labels) view.Page[DealsCriteria, DealsView] {
	return view.Page[DealsCriteria, DealsView]{
		Name:      "deals",
		LoadError: "Failed to load deals data",
		Requires:  []view.Collection{view.Deals, view.Contacts},
		Derive: func(cols view.Collections, c DealsCriteria, now time.Time) DealsView {
			return deriveDeals(cols, c, now, labels)
		},
	}
}

func deriveDeals(cols view.Collections, c DealsCriteria, now time.Time, labels resolve.Labels) DealsView {
	n := newNames(cols.Contacts, nil, nil, labels)

	deals := filter.Apply(cols.Deals, filter.Text(c.Search,
		func(d models.Deal) string { return d.Title },
		func(d models.Deal) string { return n.contact(d.ContactID) },
	))

	groups := aggregate.GroupBy(deals, func(d models.Deal) models.Stage {
		return models.NormalizeStage(d.Stage)
	}, models.Stages)

	v := DealsView{Columns: make([]StageColumn, 0, len(groups))}
	for _, g := range groups {
		col := StageColumn{
			Stage: g.Key,
			Cards: make([]DealCard, 0, len(g.Items)),
			Count: len(g.Items),
			Value: aggregate.Sum(g.Items, dealValue),
		}
		for _, d := range g.Items {
			col.Cards = append(col.Cards, dealCard(d, n, now))
		}
		v.Columns = append(v.Columns, col)
		v.Count += col.Count
		v.Value += col.Value
	}
	return v
}

func dealCard(d models.Deal, n names, now time.Time) DealCard {
	card := DealCard{Deal: d, Contact: n.contact(d.ContactID)}
	if d.ExpectedCloseDate != nil {
		label := datewindow.LabelFor(*d.ExpectedCloseDate, now)
		card.Close = &label
	}
	return card
}

func dealValue(d models.Deal) int64 { return d.Value }

// MoveStage moves deal id to stage and swaps the stored deal into the cache.
func MoveStage(repos *repository.Set, id uuid.UUID, stage models.Stage) view.Mutation {
	return view.Replace(models.DealKind, view.DealSlot, func(ctx context.Context) (models.Deal, error) {
		return repos.UpdateStage(ctx, id, stage)
	}, "Deal moved to "+string(models.NormalizeStage(stage)), "Failed to update deal stage")
}
