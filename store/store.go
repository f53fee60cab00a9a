// ABOUTME: Record Store boundary shared by every persistence backend
// ABOUTME: Defines the generic CRUD contract and the JSON record codec
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/crmview/models"
)

// RecordStore is the CRUD collaborator for one entity type. Stores assign
// identifiers and timestamps on create. Get and Update return a
// *models.NotFoundError for absent ids; Delete reports absence as false.
type RecordStore[T any] interface {
	List(ctx context.Context, params models.ListParams) (models.Page[T], error)
	Get(ctx context.Context, id uuid.UUID) (T, error)
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, id uuid.UUID, apply func(*T) error) (T, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// Option configures the in-process stores.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Records are held encoded so callers never share memory with the store.
func encode[T any](kind models.Kind[T], rec T) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", kind.Name, err)
	}
	return data, nil
}

func decode[T any](kind models.Kind[T], data []byte) (T, error) {
	var rec T
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("failed to decode %s: %w", kind.Name, err)
	}
	return rec, nil
}

func notFound[T any](kind models.Kind[T], id uuid.UUID) error {
	return &models.NotFoundError{Entity: kind.Name, ID: id}
}
