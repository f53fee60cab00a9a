// ABOUTME: Activities timeline page: search, type and date-window filters
// ABOUTME: Rows resolve contact name and deal title, newest first
package pages

import (
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/crmview/aggregate"
	"github.com/harperreed/crmview/datewindow"
	"github.com/harperreed/crmview/filter"
	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/resolve"
	"github.com/harperreed/crmview/view"
)

type ActivitiesCriteria struct {
	Search string
	Type   models.ActivityType
	Date   datewindow.Token
}

type ActivityRow struct {
	Activity models.Activity
	Contact  string
	Deal     string
}

type ActivitiesView struct {
	Rows     []ActivityRow
	Total    int
	Calls    int
	Emails   int
	Meetings int
}

func Activities(labels resolve.Labels) view.Page[ActivitiesCriteria, ActivitiesView] {
	return view.Page[ActivitiesCriteria, ActivitiesView]{
		Name:      "activities",
		LoadError: "Failed to load activities data",
		Requires:  []view.Collection{view.Activities, view.Contacts, view.Deals},
		Derive: func(cols view.Collections, c ActivitiesCriteria, now time.Time) ActivitiesView {
			return deriveActivities(cols, c, now, labels)
		},
	}
}

func deriveActivities(cols view.Collections, c ActivitiesCriteria, now time.Time, labels resolve.Labels) ActivitiesView {
	n := newNames(cols.Contacts, nil, cols.Deals, labels)

	activities := filter.Apply(cols.Activities,
		filter.Text(c.Search,
			func(a models.Activity) string { return a.Description },
			func(a models.Activity) string { return n.contact(a.ContactID) },
		),
		filter.Equals(c.Type, models.ActivityType(All), activityType),
		filter.InWindow(datewindow.For(c.Date, now), func(a models.Activity) (time.Time, bool) {
			return a.Date, !a.Date.IsZero()
		}),
	)
	newestFirst(activities)

	ofType := func(t models.ActivityType) func(models.Activity) bool {
		return func(a models.Activity) bool { return activityType(a) == t }
	}
	v := ActivitiesView{
		Rows:     make([]ActivityRow, 0, len(activities)),
		Total:    aggregate.Count(cols.Activities, nil),
		Calls:    aggregate.Count(cols.Activities, ofType(models.ActivityCall)),
		Emails:   aggregate.Count(cols.Activities, ofType(models.ActivityEmail)),
		Meetings: aggregate.Count(cols.Activities, ofType(models.ActivityMeeting)),
	}
	for _, a := range activities {
		v.Rows = append(v.Rows, activityRow(a, n))
	}
	return v
}

func activityRow(a models.Activity, n names) ActivityRow {
	return ActivityRow{Activity: a, Contact: n.contact(a.ContactID), Deal: n.deal(a.DealID)}
}

func activityType(a models.Activity) models.ActivityType {
	return models.NormalizeActivityType(a.Type)
}

// DealOptions lists the cached deals a new activity for contactID may link to.
func DealOptions(cols view.Collections, contactID uuid.UUID) []models.Deal {
	return filter.Apply(cols.Deals, filter.Where(func(d models.Deal) bool {
		return d.ContactID != nil && *d.ContactID == contactID
	}))
}
