// ABOUTME: Mutations: store round trips paired with cache updates
// ABOUTME: Builders for create, update, replace and delete on any cached collection
package view

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/repository"
)

// Mutation is a write the coordinator performs before touching its cache.
// Do runs the round trip and returns the cache update to apply on success.
type Mutation struct {
	Do      func(ctx context.Context) (func(*Collections), error)
	Success string
	Failure string
}

// Create adds rec through r and appends the stored record to slot.
func Create[T any](r *repository.Repository[T], slot Slot[T], rec T) Mutation {
	label := r.Kind().Label
	return Mutation{
		Do: func(ctx context.Context) (func(*Collections), error) {
			created, err := r.Create(ctx, rec)
			if err != nil {
				return nil, err
			}
			return func(c *Collections) {
				s := slot(c)
				*s = append(append([]T{}, *s...), created)
			}, nil
		},
		Success: label + " created successfully",
		Failure: "Failed to create " + strings.ToLower(label),
	}
}

// Update merges patch into record id and replaces it in slot.
func Update[T any](r *repository.Repository[T], slot Slot[T], id uuid.UUID, patch repository.Patch[T]) Mutation {
	label := r.Kind().Label
	return Replace(r.Kind(), slot, func(ctx context.Context) (T, error) {
		return r.Update(ctx, id, patch)
	}, label+" updated successfully", "Failed to update "+strings.ToLower(label))
}

// Replace runs do and swaps the returned record into slot by id.
func Replace[T any](kind models.Kind[T], slot Slot[T], do func(ctx context.Context) (T, error), success, failure string) Mutation {
	return Mutation{
		Do: func(ctx context.Context) (func(*Collections), error) {
			updated, err := do(ctx)
			if err != nil {
				return nil, err
			}
			id := kind.ID(updated)
			return func(c *Collections) {
				s := slot(c)
				next := make([]T, len(*s))
				for i, rec := range *s {
					if kind.ID(rec) == id {
						rec = updated
					}
					next[i] = rec
				}
				*s = next
			}, nil
		},
		Success: success,
		Failure: failure,
	}
}

// Delete removes record id through r and drops it from slot. Records
// elsewhere that still reference it resolve as unknown.
func Delete[T any](r *repository.Repository[T], slot Slot[T], id uuid.UUID) Mutation {
	kind := r.Kind()
	return Mutation{
		Do: func(ctx context.Context) (func(*Collections), error) {
			if _, err := r.Delete(ctx, id); err != nil {
				return nil, err
			}
			return func(c *Collections) {
				s := slot(c)
				next := make([]T, 0, len(*s))
				for _, rec := range *s {
					if kind.ID(rec) != id {
						next = append(next, rec)
					}
				}
				*s = next
			}, nil
		},
		Success: kind.Label + " deleted successfully",
		Failure: "Failed to delete " + strings.ToLower(kind.Label),
	}
}
