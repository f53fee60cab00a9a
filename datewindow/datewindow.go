// ABOUTME: Maps symbolic period tokens onto concrete date windows
// ABOUTME: Calendar-day and Monday-start week boundaries in the location of now
package datewindow

import "time"

// Token is a symbolic period name.
type Token string

const (
	All       Token = "all"
	Today     Token = "today"
	Yesterday Token = "yesterday"
	ThisWeek  Token = "thisWeek"
	LastWeek  Token = "lastWeek"
	Overdue   Token = "overdue"
	Upcoming  Token = "upcoming"

	// Week is accepted as an alias of ThisWeek.
	Week Token = "week"
)

// Tokens lists the filterable periods in menu order.
var Tokens = []Token{All, Today, Yesterday, ThisWeek, LastWeek}

// Kind describes the shape of a Window.
type Kind int

const (
	// Unbounded windows contain every instant.
	Unbounded Kind = iota
	// Bounded windows contain [Start, End], inclusive.
	Bounded
	// Before windows contain instants strictly before Start.
	Before
	// After windows contain instants at or after Start.
	After
)

// Window is a concrete interval computed for a token.
type Window struct {
	Kind  Kind
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	switch w.Kind {
	case Bounded:
		return !t.Before(w.Start) && !t.After(w.End)
	case Before:
		return t.Before(w.Start)
	case After:
		return !t.Before(w.Start)
	default:
		return true
	}
}

// IsUnbounded reports whether the window admits every instant.
func (w Window) IsUnbounded() bool {
	return w.Kind == Unbounded
}

// For computes the window for token relative to now. Unknown tokens and
// All yield an unbounded window.
func For(token Token, now time.Time) Window {
	switch token {
	case Today:
		return Window{Kind: Bounded, Start: StartOfDay(now), End: EndOfDay(now)}
	case Yesterday:
		y := now.AddDate(0, 0, -1)
		return Window{Kind: Bounded, Start: StartOfDay(y), End: EndOfDay(y)}
	case ThisWeek, Week:
		return Window{Kind: Bounded, Start: StartOfWeek(now), End: EndOfWeek(now)}
	case LastWeek:
		prev := now.AddDate(0, 0, -7)
		return Window{Kind: Bounded, Start: StartOfWeek(prev), End: EndOfWeek(prev)}
	case Overdue:
		return Window{Kind: Before, Start: now}
	case Upcoming:
		return Window{Kind: After, Start: now}
	}
	return Window{Kind: Unbounded}
}

// StartOfDay returns midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfWeek returns midnight of the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return StartOfDay(t).AddDate(0, 0, -offset)
}

// EndOfWeek returns the last nanosecond of the Sunday ending t's week.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// SameDay reports whether a and b share a calendar day in b's location.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
