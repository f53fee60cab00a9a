// ABOUTME: Dashboard page: pipeline totals, overdue work and recent activity
// ABOUTME: Takes no criteria; everything derives from the cached collections
package pages

import (
	"time"

	"github.com/harperreed/crmview/aggregate"
	"github.com/harperreed/crmview/filter"
	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/resolve"
	"github.com/harperreed/crmview/view"
)

const (
	recentActivities = 5
	upcomingTasks    = 8
)

type StageSummary struct {
	Stage models.Stage
	Count int
	Value int64
}

type DashboardView struct {
	TotalValue   int64
	WonValue     int64
	ActiveDeals  int
	OverdueTasks int
	Pipeline     []StageSummary
	Recent       []ActivityRow
	Upcoming     []TaskRow
}

func Dashboard(labels resolve.Labels) view.Page[struct{}, DashboardView] {
	return view.Page[struct{}, DashboardView]{
		Name:      "dashboard",
		LoadError: "Failed to load dashboard data",
		Requires:  []view.Collection{view.Deals, view.Tasks, view.Activities, view.Contacts},
		Derive: func(cols view.Collections, _ struct{}, now time.Time) DashboardView {
			return deriveDashboard(cols, now, labels)
		},
	}
}

func deriveDashboard(cols view.Collections, now time.Time, labels resolve.Labels) DashboardView {
	n := newNames(cols.Contacts, nil, cols.Deals, labels)
	stageOf := func(d models.Deal) models.Stage { return models.NormalizeStage(d.Stage) }

	v := DashboardView{
		TotalValue: aggregate.Sum(cols.Deals, dealValue),
		ActiveDeals: aggregate.Count(cols.Deals, func(d models.Deal) bool {
			return !stageOf(d).Closed()
		}),
		OverdueTasks: aggregate.Count(cols.Tasks, func(t models.Task) bool { return t.IsOverdue(now) }),
	}

	for _, g := range aggregate.GroupBy(cols.Deals, stageOf, models.Stages) {
		summary := StageSummary{Stage: g.Key, Count: len(g.Items), Value: aggregate.Sum(g.Items, dealValue)}
		if g.Key == models.StageWon {
			v.WonValue = summary.Value
		}
		v.Pipeline = append(v.Pipeline, summary)
	}

	recent := append([]models.Activity{}, cols.Activities...)
	newestFirst(recent)
	for _, a := range firstN(recent, recentActivities) {
		v.Recent = append(v.Recent, activityRow(a, n))
	}

	open := filter.Apply(cols.Tasks, filter.Where(func(t models.Task) bool { return !t.Completed }))
	soonestFirst(open)
	for _, t := range firstN(open, upcomingTasks) {
		v.Upcoming = append(v.Upcoming, taskRow(t, n, now))
	}
	return v
}
