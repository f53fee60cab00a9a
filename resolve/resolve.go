// ABOUTME: Foreign-key resolution against cached collections
// ABOUTME: Misses degrade to an Unknown reference and a per-kind placeholder label
package resolve

import (
	"github.com/google/uuid"
	"github.com/harperreed/crmview/models"
)

// Ref is the outcome of a lookup. Known is false for the Unknown sentinel,
// in which case Record is the zero value.
type Ref[T any] struct {
	Record T
	Known  bool
}

// Unknown returns the sentinel reference.
func Unknown[T any]() Ref[T] {
	return Ref[T]{}
}

// Resolve scans items for key. A nil key or an id not present yields Unknown.
func Resolve[T any](kind models.Kind[T], items []T, key *uuid.UUID) Ref[T] {
	if key == nil {
		return Unknown[T]()
	}
	for _, item := range items {
		if kind.ID(item) == *key {
			return Ref[T]{Record: item, Known: true}
		}
	}
	return Unknown[T]()
}

// Index answers repeated lookups against one collection.
type Index[T any] struct {
	kind   models.Kind[T]
	labels Labels
	byID   map[uuid.UUID]T
}

// NewIndex indexes items by id. Later duplicates of an id win.
func NewIndex[T any](kind models.Kind[T], items []T, labels Labels) *Index[T] {
	byID := make(map[uuid.UUID]T, len(items))
	for _, item := range items {
		byID[kind.ID(item)] = item
	}
	return &Index[T]{kind: kind, labels: labels, byID: byID}
}

func (ix *Index[T]) Resolve(key *uuid.UUID) Ref[T] {
	if key == nil {
		return Unknown[T]()
	}
	rec, ok := ix.byID[*key]
	if !ok {
		return Unknown[T]()
	}
	return Ref[T]{Record: rec, Known: true}
}

// Len reports how many records are indexed.
func (ix *Index[T]) Len() int {
	return len(ix.byID)
}

// Name returns the display name of the referenced record. A nil key uses
// the kind's missing label when one is configured; every other miss uses
// the kind's unknown placeholder.
func (ix *Index[T]) Name(key *uuid.UUID, name func(T) string) string {
	if ref := ix.Resolve(key); ref.Known {
		return name(ref.Record)
	}
	if key == nil {
		if label, ok := ix.labels.Missing[ix.kind.Name]; ok {
			return label
		}
	}
	return ix.labels.UnknownFor(ix.kind.Name, ix.kind.Placeholder())
}
