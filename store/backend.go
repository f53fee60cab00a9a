// ABOUTME: Backend selection for the per-entity record stores
// ABOUTME: Opens SQLite, badger or in-memory stores behind one Set
package store

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harperreed/crmview/db"
	"github.com/harperreed/crmview/models"
)

const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Set holds one RecordStore per entity type.
type Set struct {
	Contacts   RecordStore[models.Contact]
	Companies  RecordStore[models.Company]
	Deals      RecordStore[models.Deal]
	Tasks      RecordStore[models.Task]
	Activities RecordStore[models.Activity]
	Quotes     RecordStore[models.Quote]

	close func() error
}

// Close releases the underlying database.
func (s *Set) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open builds a Set for backend. path is the SQLite file or the badger
// directory; memory ignores it.
func Open(backend, path string, logger *log.Logger) (*Set, error) {
	switch backend {
	case BackendSQLite, "":
		database, err := db.OpenDatabase(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		return &Set{
			Contacts:   db.NewContactStore(database),
			Companies:  db.NewCompanyStore(database),
			Deals:      db.NewDealStore(database),
			Tasks:      db.NewTaskStore(database),
			Activities: db.NewActivityStore(database),
			Quotes:     db.NewQuoteStore(database),
			close:      database.Close,
		}, nil

	case BackendBadger:
		kv, err := OpenBadger(path, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open badger: %w", err)
		}
		return &Set{
			Contacts:   NewBadger(kv, models.ContactKind),
			Companies:  NewBadger(kv, models.CompanyKind),
			Deals:      NewBadger(kv, models.DealKind),
			Tasks:      NewBadger(kv, models.TaskKind),
			Activities: NewBadger(kv, models.ActivityKind),
			Quotes:     NewBadger(kv, models.QuoteKind),
			close:      kv.Close,
		}, nil

	case BackendMemory:
		return NewMemorySet(), nil
	}

	return nil, errors.New("unknown backend: " + backend)
}

// NewMemorySet returns a Set of empty in-memory stores.
func NewMemorySet(opts ...Option) *Set {
	return &Set{
		Contacts:   NewMemory(models.ContactKind, opts...),
		Companies:  NewMemory(models.CompanyKind, opts...),
		Deals:      NewMemory(models.DealKind, opts...),
		Tasks:      NewMemory(models.TaskKind, opts...),
		Activities: NewMemory(models.ActivityKind, opts...),
		Quotes:     NewMemory(models.QuoteKind, opts...),
	}
}
