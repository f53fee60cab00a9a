// ABOUTME: Per-page view coordinator: loads, caches, derives and republishes views
// ABOUTME: Loads are sequence-tagged so only the latest issued load can update the page
package view

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/repository"
	"github.com/oklog/ulid/v2"
)

// Page describes one screen: what it loads and how it derives its view.
type Page[C, V any] struct {
	// Name identifies the page in logs.
	Name string
	// LoadError is the message shown when loading fails.
	LoadError string
	// Requires lists the collections loaded on every reload.
	Requires []Collection
	// Params returns list parameters for a collection. Nil lists everything.
	Params func(criteria C, col Collection) models.ListParams
	// ServerSide pages push criteria to the store: criteria changes and
	// mutations trigger a reload instead of a local recompute.
	ServerSide bool
	// Derive computes the view from cached collections.
	Derive func(cols Collections, criteria C, now time.Time) V
}

// Option configures a Coordinator.
type Option func(*settings)

type settings struct {
	logger *log.Logger
	now    func() time.Time
}

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithClock overrides the time source handed to Derive.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// Coordinator owns one page session: its cached collections, criteria and
// derived view. All methods are safe for concurrent use.
type Coordinator[C, V any] struct {
	page    Page[C, V]
	src     *repository.Set
	logger  *log.Logger
	now     func() time.Time
	session ulid.ULID

	mu       sync.Mutex
	state    State
	seq      uint64
	data     Collections
	criteria C
	view     V
	err      error
	message  string
	version  uint64
	subs     map[int]func(Snapshot[V])
	nextSub  int

	pubMu     sync.Mutex
	published uint64
}

// New creates an Idle coordinator for page over src.
func New[C, V any](page Page[C, V], src *repository.Set, criteria C, opts ...Option) *Coordinator[C, V] {
	s := settings{logger: log.Default(), now: time.Now}
	for _, opt := range opts {
		opt(&s)
	}

	session := ulid.Make()
	return &Coordinator[C, V]{
		page:     page,
		src:      src,
		logger:   s.logger.With("page", page.Name, "session", session.String()),
		now:      s.now,
		session:  session,
		criteria: criteria,
		subs:     make(map[int]func(Snapshot[V])),
	}
}

// Session returns the coordinator's session id.
func (c *Coordinator[C, V]) Session() ulid.ULID {
	return c.session
}

// Subscribe registers fn for every published snapshot and returns a
// function that removes it. Snapshots are delivered in publication order;
// fn must not call back into the coordinator synchronously.
func (c *Coordinator[C, V]) Subscribe(fn func(Snapshot[V])) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Current returns the latest snapshot.
func (c *Coordinator[C, V]) Current() Snapshot[V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Criteria returns the active criteria.
func (c *Coordinator[C, V]) Criteria() C {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.criteria
}

// Data returns the cached collections of the last successful load.
func (c *Coordinator[C, V]) Data() Collections {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data
}

// Reload fetches every required collection and, when this is still the
// latest load, replaces the cache and derives a fresh view. A load
// overtaken by a newer one returns ErrSuperseded and changes nothing.
func (c *Coordinator[C, V]) Reload(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	criteria := c.criteria
	c.state = Loading
	c.err = nil
	c.message = ""
	snap, version := c.stampLocked()
	c.mu.Unlock()
	c.publish(snap, version)

	c.logger.Debug("loading", "seq", seq, "collections", c.page.Requires)
	start := time.Now()

	params := func(col Collection) models.ListParams {
		if c.page.Params == nil {
			return models.ListParams{}
		}
		return c.page.Params(criteria, col)
	}
	data, err := loadAll(ctx, c.src, c.page.Requires, params)

	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		c.logger.Debug("discarding stale load", "seq", seq, "latest", c.latestSeq())
		return ErrSuperseded
	}

	if err != nil {
		c.state = Failed
		c.err = err
		c.message = c.page.LoadError
		snap, version = c.stampLocked()
		c.mu.Unlock()
		c.logger.Error("load failed", "seq", seq, "err", err)
		c.publish(snap, version)
		return err
	}

	c.data = data
	c.state = Ready
	c.view = c.page.Derive(c.data, c.criteria, c.now())
	snap, version = c.stampLocked()
	c.mu.Unlock()

	c.logger.Debug("loaded", "seq", seq, "elapsed", time.Since(start))
	c.publish(snap, version)
	return nil
}

// SetCriteria replaces the criteria. A Ready page recomputes its view from
// the cache before returning; a loading or failed page applies the criteria
// when its next load lands. Other server-side pages reload instead.
func (c *Coordinator[C, V]) SetCriteria(ctx context.Context, criteria C) error {
	c.mu.Lock()
	c.criteria = criteria

	if c.state == Failed {
		c.mu.Unlock()
		return nil
	}

	if c.page.ServerSide {
		c.mu.Unlock()
		return c.Reload(ctx)
	}

	if c.state != Ready {
		c.mu.Unlock()
		return nil
	}

	c.view = c.page.Derive(c.data, c.criteria, c.now())
	snap, version := c.stampLocked()
	c.mu.Unlock()

	c.publish(snap, version)
	return nil
}

// Refresh recomputes the view against the current time without reloading.
func (c *Coordinator[C, V]) Refresh() {
	c.mu.Lock()
	if c.state != Ready {
		c.mu.Unlock()
		return
	}
	c.view = c.page.Derive(c.data, c.criteria, c.now())
	snap, version := c.stampLocked()
	c.mu.Unlock()
	c.publish(snap, version)
}

// Mutate performs m's round trip first. Only on success is the change
// applied to the cache and the view republished; on failure the prior
// view stays and the failure is published as the snapshot message.
// A load in flight when the round trip succeeds is superseded by a fresh
// one so that it cannot publish data read before the write. A failed page
// keeps its load error until an explicit reload.
func (c *Coordinator[C, V]) Mutate(ctx context.Context, m Mutation) error {
	apply, err := m.Do(ctx)

	c.mu.Lock()
	if err != nil {
		c.err = err
		c.message = Describe(err, m.Failure)
		snap, version := c.stampLocked()
		c.mu.Unlock()
		c.logger.Warn("mutation failed", "action", m.Failure, "err", err)
		c.publish(snap, version)
		return err
	}

	switch {
	case c.state == Failed:
		c.mu.Unlock()
		c.logger.Debug("mutation applied to a failed page", "action", m.Success)
		return nil

	case c.page.ServerSide || c.state == Loading:
		c.mu.Unlock()
		if err := c.Reload(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
			return err
		}
		c.mu.Lock()
		if c.state != Ready {
			c.mu.Unlock()
			return nil
		}
		c.message = m.Success
		snap, version := c.stampLocked()
		c.mu.Unlock()
		c.publish(snap, version)
		return nil
	}

	if c.state == Ready && apply != nil {
		apply(&c.data)
		c.view = c.page.Derive(c.data, c.criteria, c.now())
	}
	c.err = nil
	c.message = m.Success
	snap, version := c.stampLocked()
	c.mu.Unlock()

	c.publish(snap, version)
	return nil
}

func (c *Coordinator[C, V]) latestSeq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

func (c *Coordinator[C, V]) snapshotLocked() Snapshot[V] {
	return Snapshot[V]{
		State:   c.state,
		View:    c.view,
		Err:     c.err,
		Message: c.message,
		Seq:     c.seq,
	}
}

func (c *Coordinator[C, V]) stampLocked() (Snapshot[V], uint64) {
	c.version++
	return c.snapshotLocked(), c.version
}

// publish delivers snap unless a later snapshot has already gone out.
func (c *Coordinator[C, V]) publish(snap Snapshot[V], version uint64) {
	c.pubMu.Lock()
	defer c.pubMu.Unlock()

	if version <= c.published {
		return
	}
	c.published = version

	c.mu.Lock()
	subs := make([]func(Snapshot[V]), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
