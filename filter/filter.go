// ABOUTME: Composable record filters applied in a fixed stage order
// ABOUTME: Text search runs first, then categorical equality, then date windows
package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/harperreed/crmview/datewindow"
	"golang.org/x/text/cases"
)

// Stage orders specs inside Apply.
type Stage int

const (
	StageSearch Stage = iota
	StageCategory
	StageDate
)

// Spec is one predicate of a filter pipeline. Inactive specs pass every
// record and are skipped.
type Spec[T any] interface {
	Stage() Stage
	Active() bool
	Match(T) bool
}

// Apply returns the items matching every active spec, in input order.
// Stages run search, category, date; each consumes the previous output.
// Specs of the same stage keep their given order.
func Apply[T any](items []T, specs ...Spec[T]) []T {
	active := make([]Spec[T], 0, len(specs))
	for _, s := range specs {
		if s != nil && s.Active() {
			active = append(active, s)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Stage() < active[j].Stage()
	})

	out := append([]T{}, items...)
	for _, s := range active {
		kept := out[:0]
		for _, item := range out {
			if s.Match(item) {
				kept = append(kept, item)
			}
		}
		out = kept
	}
	return out
}

// TextSpec matches when any field contains the query, ignoring case.
type TextSpec[T any] struct {
	query  string
	fields []func(T) string
}

// Text builds a search spec over fields. An empty query is inactive.
func Text[T any](query string, fields ...func(T) string) TextSpec[T] {
	return TextSpec[T]{query: fold(strings.TrimSpace(query)), fields: fields}
}

func (s TextSpec[T]) Stage() Stage { return StageSearch }
func (s TextSpec[T]) Active() bool { return s.query != "" }

func (s TextSpec[T]) Match(item T) bool {
	for _, field := range s.fields {
		if strings.Contains(fold(field(item)), s.query) {
			return true
		}
	}
	return false
}

// A Caser keeps state between calls, so each fold gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// EqualsSpec matches records whose field equals a selected value.
type EqualsSpec[T any, V comparable] struct {
	value V
	all   V
	field func(T) V
}

// Equals builds a categorical spec. Selecting all, or the zero value,
// makes the spec inactive.
func Equals[T any, V comparable](value, all V, field func(T) V) EqualsSpec[T, V] {
	return EqualsSpec[T, V]{value: value, all: all, field: field}
}

func (s EqualsSpec[T, V]) Stage() Stage { return StageCategory }

func (s EqualsSpec[T, V]) Active() bool {
	var zero V
	return s.value != s.all && s.value != zero
}

func (s EqualsSpec[T, V]) Match(item T) bool { return s.field(item) == s.value }

// WhereSpec is a categorical predicate that is active when set.
type WhereSpec[T any] struct {
	fn func(T) bool
}

// Where wraps fn as a categorical spec. A nil fn is inactive.
func Where[T any](fn func(T) bool) WhereSpec[T] {
	return WhereSpec[T]{fn: fn}
}

func (s WhereSpec[T]) Stage() Stage      { return StageCategory }
func (s WhereSpec[T]) Active() bool      { return s.fn != nil }
func (s WhereSpec[T]) Match(item T) bool { return s.fn(item) }

// WindowSpec matches records whose date falls in a window.
type WindowSpec[T any] struct {
	window datewindow.Window
	date   func(T) (time.Time, bool)
}

// InWindow builds a date spec. date reports false for records without a
// date; those never match a bounded window. Unbounded windows are inactive.
func InWindow[T any](window datewindow.Window, date func(T) (time.Time, bool)) WindowSpec[T] {
	return WindowSpec[T]{window: window, date: date}
}

func (s WindowSpec[T]) Stage() Stage { return StageDate }
func (s WindowSpec[T]) Active() bool { return !s.window.IsUnbounded() }

func (s WindowSpec[T]) Match(item T) bool {
	d, ok := s.date(item)
	return ok && s.window.Contains(d)
}
