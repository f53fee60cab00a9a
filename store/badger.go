// ABOUTME: Badger-backed record store for a single entity type
// ABOUTME: Stores JSON records under "<kind>/<id>" keys in an embedded KV database
package store

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/harperreed/crmview/models"
)

// OpenBadger opens a badger database in dir. An empty dir opens an
// in-memory database.
func OpenBadger(dir string, logger *log.Logger) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	} else if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	if logger != nil {
		opts = opts.WithLogger(badgerLogger{logger.WithPrefix("badger")})
	} else {
		opts = opts.WithLogger(nil)
	}

	return badger.Open(opts)
}

// badgerLogger adapts the application logger to badger's logging interface.
type badgerLogger struct {
	*log.Logger
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}

// Badger is a RecordStore over a shared badger database. Listings search,
// sort and page in memory after a prefix scan; unsorted records come back
// in key order.
type Badger[T any] struct {
	db   *badger.DB
	kind models.Kind[T]
	opts options
}

// NewBadger creates a store for kind on db. Several kinds may share one db.
func NewBadger[T any](db *badger.DB, kind models.Kind[T], opts ...Option) *Badger[T] {
	return &Badger[T]{db: db, kind: kind, opts: buildOptions(opts)}
}

func (b *Badger[T]) prefix() []byte {
	return []byte(b.kind.Name + "/")
}

func (b *Badger[T]) key(id uuid.UUID) []byte {
	return []byte(b.kind.Name + "/" + id.String())
}

func (b *Badger[T]) List(ctx context.Context, params models.ListParams) (models.Page[T], error) {
	if err := ctx.Err(); err != nil {
		return models.Page[T]{}, err
	}

	var all []T
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := b.prefix()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				rec, err := decode(b.kind, val)
				if err != nil {
					return err
				}
				all = append(all, rec)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Page[T]{}, err
	}

	return b.kind.Query(all, params), nil
}

func (b *Badger[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	var rec T
	if err := ctx.Err(); err != nil {
		return rec, err
	}

	err := b.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = b.read(txn, id)
		return err
	})
	return rec, err
}

func (b *Badger[T]) read(txn *badger.Txn, id uuid.UUID) (T, error) {
	var rec T
	item, err := txn.Get(b.key(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return rec, notFound(b.kind, id)
	}
	if err != nil {
		return rec, err
	}
	err = item.Value(func(val []byte) error {
		rec, err = decode(b.kind, val)
		return err
	})
	return rec, err
}

func (b *Badger[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	id := uuid.New()
	b.kind.Assign(&rec, id, b.opts.now())

	data, err := encode(b.kind, rec)
	if err != nil {
		return zero, err
	}

	if err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(b.key(id), data)
	}); err != nil {
		return zero, err
	}

	return decode(b.kind, data)
}

func (b *Badger[T]) Update(ctx context.Context, id uuid.UUID, apply func(*T) error) (T, error) {
	var rec T
	if err := ctx.Err(); err != nil {
		return rec, err
	}

	err := b.db.Update(func(txn *badger.Txn) error {
		var err error
		rec, err = b.read(txn, id)
		if err != nil {
			return err
		}
		if err := apply(&rec); err != nil {
			return err
		}
		b.kind.Touch(&rec, b.opts.now())

		data, err := encode(b.kind, rec)
		if err != nil {
			return err
		}
		return txn.Set(b.key(id), data)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

func (b *Badger[T]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	deleted := false
	err := b.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(b.key(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		deleted = true
		return txn.Delete(b.key(id))
	})
	return deleted, err
}
