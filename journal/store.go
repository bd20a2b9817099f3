package journal

import (
	"context"
	"errors"
	"sync"
)

// ErrConcurrencyConflict is returned by Append when the expected version
// does not match the current stream version.
var ErrConcurrencyConflict = errors.New("journal: concurrency conflict")

// EventFilter selects events for ReadAll. Zero-value fields match
// everything.
type EventFilter struct {
	StreamID string   // only this stream, if non-empty
	Types    []string // only these event types, if non-empty
}

func (f EventFilter) matches(e *Event) bool {
	if f.StreamID != "" && e.StreamID != f.StreamID {
		return false
	}
	if len(f.Types) > 0 {
		found := false
		for _, t := range f.Types {
			if e.Type == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Store is an append-only event store with optimistic concurrency.
// Versions are zero-based; a stream with no events has version -1.
type Store interface {
	// Append adds events to a stream. expectedVersion must equal the
	// current stream version (-1 for a new stream) or Append fails with
	// ErrConcurrencyConflict and stores nothing. Returns the new stream
	// version.
	Append(ctx context.Context, streamID string, expectedVersion int, events []*Event) (int, error)

	// Read returns the events of a stream starting at fromVersion, in
	// version order.
	Read(ctx context.Context, streamID string, fromVersion int) ([]*Event, error)

	// ReadAll returns events across streams matching the filter, in append
	// order.
	ReadAll(ctx context.Context, filter EventFilter) ([]*Event, error)

	// StreamVersion returns the version of the last event in a stream,
	// -1 if the stream does not exist.
	StreamVersion(ctx context.Context, streamID string) (int, error)

	// DeleteStream removes all events of a stream.
	DeleteStream(ctx context.Context, streamID string) error

	// Close releases store resources.
	Close() error
}

// MemoryStore is an in-memory Store, safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[string][]*Event
	order   []*Event // global append order for ReadAll
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		streams: make(map[string][]*Event),
	}
}

// Append adds events to a stream under optimistic concurrency control.
func (s *MemoryStore) Append(ctx context.Context, streamID string, expectedVersion int, events []*Event) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stream := s.streams[streamID]
	current := len(stream) - 1
	if expectedVersion != current {
		return 0, ErrConcurrencyConflict
	}

	for i, e := range events {
		stored := *e
		stored.StreamID = streamID
		stored.Version = current + 1 + i
		s.streams[streamID] = append(s.streams[streamID], &stored)
		s.order = append(s.order, &stored)
	}
	return len(s.streams[streamID]) - 1, nil
}

// Read returns the events of a stream starting at fromVersion.
func (s *MemoryStore) Read(ctx context.Context, streamID string, fromVersion int) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Event
	for _, e := range s.streams[streamID] {
		if e.Version >= fromVersion {
			out = append(out, e)
		}
	}
	return out, nil
}

// ReadAll returns events across streams matching the filter.
func (s *MemoryStore) ReadAll(ctx context.Context, filter EventFilter) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Event
	for _, e := range s.order {
		if filter.matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// StreamVersion returns the version of the last event in a stream.
func (s *MemoryStore) StreamVersion(ctx context.Context, streamID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.streams[streamID]) - 1, nil
}

// DeleteStream removes all events of a stream.
func (s *MemoryStore) DeleteStream(ctx context.Context, streamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.streams, streamID)
	kept := s.order[:0]
	for _, e := range s.order {
		if e.StreamID != streamID {
			kept = append(kept, e)
		}
	}
	s.order = kept
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
