// ABOUTME: Relative due-date labels for single records
// ABOUTME: Evaluates today, tomorrow, overdue and this week in that priority order
package datewindow

import "time"

// Variant is the display emphasis of a label.
type Variant string

const (
	VariantDefault Variant = "default"
	VariantInfo    Variant = "info"
	VariantWarning Variant = "warning"
	VariantDanger  Variant = "danger"
)

// Label is the relative description of a record date.
type Label struct {
	Text    string
	Variant Variant
}

// LabelFor describes date relative to now. The checks run in a fixed
// order because a date can satisfy several of them: a time later today is
// both "today" and "this week", an earlier time today is also past.
func LabelFor(date, now time.Time) Label {
	switch {
	case SameDay(date, now):
		return Label{Text: "Today", Variant: VariantWarning}
	case SameDay(date, now.AddDate(0, 0, 1)):
		return Label{Text: "Tomorrow", Variant: VariantInfo}
	case date.Before(now):
		return Label{Text: "Overdue", Variant: VariantDanger}
	case For(ThisWeek, now).Contains(date.In(now.Location())):
		return Label{Text: "This week", Variant: VariantDefault}
	}
	return Label{Text: date.In(now.Location()).Format("Jan 2"), Variant: VariantDefault}
}
