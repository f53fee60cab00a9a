// ABOUTME: Lifecycle states and published snapshots of a page view
// ABOUTME: Snapshots are what presentation layers render
package view

import "errors"

// ErrSuperseded is returned by a load whose result was discarded because a
// newer load was issued while it ran.
var ErrSuperseded = errors.New("load superseded by a newer request")

// State is the lifecycle state of a coordinator.
type State int

const (
	Idle State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Snapshot is one published state of a page. View is the derived view of
// the last successful load; Err and Message describe the latest failure
// or, when Err is nil, the latest success notice.
type Snapshot[V any] struct {
	State   State
	View    V
	Err     error
	Message string
	Seq     uint64
}
