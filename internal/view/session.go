package view

import (
	"errors"

	"github.com/google/uuid"
)

// Errors returned by Session operations.
var (
	// ErrNoGraph is returned when an operation needs a loaded graph.
	ErrNoGraph = errors.New("load a graph first")

	// ErrDisposed is returned after Dispose.
	ErrDisposed = errors.New("session disposed")

	// ErrStaleResponse is returned when a response's generation has been
	// superseded by a newer request of the same action class.
	ErrStaleResponse = errors.New("stale response discarded")

	// ErrUnknownNode is returned by SelectNode for an unloaded node ID.
	ErrUnknownNode = errors.New("node not in current graph")
)

// Action classifies user-triggered requests for generation tracking.
type Action int

const (
	ActionLoad Action = iota
	ActionSearch
	ActionPath
	actionCount
)

// Session is the explicit view-state object for one graph view: the current
// snapshot plus a monotonic generation counter per action class. Responses
// carry the generation handed out when their request started; a response
// whose generation is no longer current is discarded, so rapid repeated
// actions resolve to the most recent request rather than last-arrival-wins.
//
// Session is not safe for concurrent use; all mutation happens on the
// handler that owns it, mirroring a single-threaded event loop.
type Session struct {
	id       string
	snap     *Snapshot
	gens     [actionCount]uint64
	disposed bool
}

// NewSession creates an empty session with no graph loaded.
func NewSession() *Session {
	return &Session{id: uuid.NewString()}
}

// ID returns the session's unique identifier, used to correlate log lines
// and responses with a view.
func (s *Session) ID() string {
	return s.id
}

// Begin registers a new request of the given action class and returns its
// generation. Any in-flight response from an earlier Begin of the same
// class becomes stale.
func (s *Session) Begin(a Action) uint64 {
	s.gens[a]++
	return s.gens[a]
}

// current reports whether gen is still the live generation for a.
func (s *Session) current(a Action, gen uint64) bool {
	return s.gens[a] == gen
}

// Load replaces the snapshot wholesale with a styled snapshot of g. The old
// snapshot is discarded; nothing is merged. gen must come from
// Begin(ActionLoad) and is rejected with ErrStaleResponse if superseded.
func (s *Session) Load(gen uint64, snap *Snapshot) error {
	if s.disposed {
		return ErrDisposed
	}
	if !s.current(ActionLoad, gen) {
		return ErrStaleResponse
	}
	s.snap = snap
	return nil
}

// Snapshot returns the current snapshot, or nil before the first load.
func (s *Session) Snapshot() *Snapshot {
	return s.snap
}

// SelectNode returns the state of a node for detail display. It is a pure
// read and never mutates the snapshot.
func (s *Session) SelectNode(id string) (*NodeState, error) {
	if s.disposed {
		return nil, ErrDisposed
	}
	if s.snap == nil {
		return nil, ErrNoGraph
	}
	n := s.snap.Node(id)
	if n == nil {
		return nil, ErrUnknownNode
	}
	return n, nil
}

// HighlightPath applies a path highlight to the current snapshot. gen must
// come from Begin(ActionPath). Calling before any load returns ErrNoGraph
// and mutates nothing.
func (s *Session) HighlightPath(gen uint64, path []string) error {
	if s.disposed {
		return ErrDisposed
	}
	if s.snap == nil {
		return ErrNoGraph
	}
	if !s.current(ActionPath, gen) {
		return ErrStaleResponse
	}
	s.snap.HighlightPath(path)
	return nil
}

// Reset restores the base visual state of the current snapshot. Resetting
// with no graph loaded is a no-op.
func (s *Session) Reset() {
	if s.disposed || s.snap == nil {
		return
	}
	s.snap.Reset()
}

// Dispose releases the snapshot and marks the session unusable. Disposing
// twice is harmless.
func (s *Session) Dispose() {
	s.snap = nil
	s.disposed = true
}
