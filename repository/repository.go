// ABOUTME: Entity repositories layered over the record stores
// ABOUTME: Normalize and validate before every write, merge partial updates, type every failure
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/store"
)

// Patch is a partial update for records of type T.
type Patch[T any] interface {
	Apply(*T)
}

// Repository exposes CRUD for one entity type. Failures come back as
// *models.NotFoundError, *models.ValidationError or *models.StoreError.
// Nothing is retried.
type Repository[T any] struct {
	kind  models.Kind[T]
	store store.RecordStore[T]
}

func New[T any](kind models.Kind[T], s store.RecordStore[T]) *Repository[T] {
	return &Repository[T]{kind: kind, store: s}
}

// Kind returns the entity descriptor.
func (r *Repository[T]) Kind() models.Kind[T] {
	return r.kind
}

func (r *Repository[T]) List(ctx context.Context, params models.ListParams) (models.Page[T], error) {
	page, err := r.store.List(ctx, params)
	if err != nil {
		return models.Page[T]{}, r.wrap("list", err)
	}
	if page.Records == nil {
		page.Records = []T{}
	}
	return page, nil
}

// All lists the full collection.
func (r *Repository[T]) All(ctx context.Context) ([]T, error) {
	page, err := r.List(ctx, models.ListParams{})
	if err != nil {
		return nil, err
	}
	return page.Records, nil
}

func (r *Repository[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	rec, err := r.store.Get(ctx, id)
	if err != nil {
		return rec, r.wrap("get", err)
	}
	return rec, nil
}

// Create normalizes and validates rec before handing it to the store,
// which assigns the identifier and timestamps.
func (r *Repository[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	r.kind.Normalize(&rec)
	if err := r.validate(rec); err != nil {
		return zero, err
	}

	created, err := r.store.Create(ctx, rec)
	if err != nil {
		return zero, r.wrap("create", err)
	}
	return created, nil
}

// Update merges patch into the stored record. Fields the patch leaves
// unset keep their prior values.
func (r *Repository[T]) Update(ctx context.Context, id uuid.UUID, patch Patch[T]) (T, error) {
	return r.Modify(ctx, id, patch.Apply)
}

// Modify applies fn to the stored record, then normalizes and validates
// the result before it is written.
func (r *Repository[T]) Modify(ctx context.Context, id uuid.UUID, fn func(*T)) (T, error) {
	updated, err := r.store.Update(ctx, id, func(rec *T) error {
		fn(rec)
		r.kind.Normalize(rec)
		return r.validate(*rec)
	})
	if err != nil {
		var zero T
		return zero, r.wrap("update", err)
	}
	return updated, nil
}

// Delete removes the record and returns it as it was.
func (r *Repository[T]) Delete(ctx context.Context, id uuid.UUID) (T, error) {
	var zero T
	rec, err := r.Get(ctx, id)
	if err != nil {
		return zero, err
	}

	ok, err := r.store.Delete(ctx, id)
	if err != nil {
		return zero, r.wrap("delete", err)
	}
	if !ok {
		return zero, &models.NotFoundError{Entity: r.kind.Name, ID: id}
	}
	return rec, nil
}

func (r *Repository[T]) wrap(op string, err error) error {
	if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrValidation) {
		return err
	}
	var se *models.StoreError
	if errors.As(err, &se) {
		return err
	}
	return &models.StoreError{Entity: r.kind.Name, Op: op, Err: err}
}

// Related lists the records of r whose reference equals id. A record
// with no matches yields an empty slice.
func Related[T any](ctx context.Context, r *Repository[T], id uuid.UUID, ref func(T) *uuid.UUID) ([]T, error) {
	all, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	out := []T{}
	for _, rec := range all {
		if key := ref(rec); key != nil && *key == id {
			out = append(out, rec)
		}
	}
	return out, nil
}
