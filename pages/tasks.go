// ABOUTME: Tasks page: search, status and priority filters with due-date labels
// ABOUTME: Status counts are taken over the unfiltered task list
package pages

import (
	"context"
	"time"

	"github.com/harperreed/crmview/aggregate"
	"github.com/harperreed/crmview/datewindow"
	"github.com/harperreed/crmview/filter"
	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/repository"
	"github.com/harperreed/crmview/resolve"
	"github.com/harperreed/crmview/view"
)

// TaskStatus narrows tasks by completion.
type TaskStatus string

const (
	StatusAll       TaskStatus = All
	StatusCompleted TaskStatus = "completed"
	StatusPending   TaskStatus = "pending"
	StatusOverdue   TaskStatus = "overdue"
)

type TasksCriteria struct {
	Search   string
	Status   TaskStatus
	Priority models.Priority
}

type TaskRow struct {
	Task    models.Task
	Contact string
	Due     datewindow.Label
	Overdue bool
}

type TasksView struct {
	Rows      []TaskRow
	Total     int
	Completed int
	Pending   int
	Overdue   int
}

func Tasks(labels resolve.Labels) view.Page[TasksCriteria, TasksView] {
	return view.Page[TasksCriteria, TasksView]{
		Name:      "tasks",
		LoadError: "Failed to load tasks data",
		Requires:  []view.Collection{view.Tasks, view.Contacts},
		Derive: func(cols view.Collections, c TasksCriteria, now time.Time) TasksView {
			return deriveTasks(cols, c, now, labels)
		},
	}
}

func deriveTasks(cols view.Collections, c TasksCriteria, now time.Time, labels resolve.Labels) TasksView {
	n := newNames(cols.Contacts, nil, nil, labels)

	tasks := filter.Apply(cols.Tasks,
		filter.Text(c.Search,
			func(t models.Task) string { return t.Title },
			func(t models.Task) string { return t.Description },
		),
		filter.Where(statusMatcher(c.Status, now)),
		filter.Equals(c.Priority, models.Priority(All), func(t models.Task) models.Priority {
			return models.NormalizePriority(t.Priority)
		}),
	)
	soonestFirst(tasks)

	v := TasksView{
		Rows:      make([]TaskRow, 0, len(tasks)),
		Total:     len(cols.Tasks),
		Completed: aggregate.Count(cols.Tasks, func(t models.Task) bool { return t.Completed }),
		Overdue:   aggregate.Count(cols.Tasks, func(t models.Task) bool { return t.IsOverdue(now) }),
	}
	v.Pending = v.Total - v.Completed

	for _, t := range tasks {
		v.Rows = append(v.Rows, taskRow(t, n, now))
	}
	return v
}

func taskRow(t models.Task, n names, now time.Time) TaskRow {
	return TaskRow{
		Task:    t,
		Contact: n.contact(t.ContactID),
		Due:     datewindow.LabelFor(t.DueDate, now),
		Overdue: t.IsOverdue(now),
	}
}

// statusMatcher returns nil for "all" and unrecognised statuses, which
// leaves the filter inactive.
func statusMatcher(status TaskStatus, now time.Time) func(models.Task) bool {
	switch status {
	case StatusCompleted:
		return func(t models.Task) bool { return t.Completed }
	case StatusPending:
		return func(t models.Task) bool { return !t.Completed }
	case StatusOverdue:
		return func(t models.Task) bool { return t.IsOverdue(now) }
	}
	return nil
}

// ToggleTask flips the completion flag of t.
func ToggleTask(repos *repository.Set, t models.Task) view.Mutation {
	success := "Task completed"
	if t.Completed {
		success = "Task reopened"
	}
	return view.Replace(models.TaskKind, view.TaskSlot, func(ctx context.Context) (models.Task, error) {
		return repos.ToggleComplete(ctx, t.ID)
	}, success, "Failed to update task")
}
