package revisions

import (
	"reflect"
	"sync"
	"time"
)

// Revision is one stored point-in-time copy of an event's state, shaped
// like the authoritative store's records: a reference token, a creation
// timestamp and an opaque payload.
type Revision struct {
	Ref       int64          `json:"ref"`
	CreatedAt time.Time      `json:"created_at"`
	Payload   map[string]any `json:"payload"`
}

// InMemoryStore keeps append-only revision streams per event id. It stands
// in for the external revision API in tests, the example binary and the
// facade's offline mode; it is not a persistence layer.
type InMemoryStore struct {
	streams map[int64][]Revision
	mutex   sync.RWMutex
	now     func() time.Time
}

// NewInMemoryStore creates an empty revision store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		streams: make(map[int64][]Revision),
		now:     time.Now,
	}
}

// Append records a new revision of the event and returns it. When the
// payload deep-equals the latest stored revision nothing is written and the
// existing revision is returned, so saving an unchanged event never inflates
// the history. Refs are assigned sequentially from 1 per event.
func (s *InMemoryStore) Append(eventID int64, payload map[string]any) (Revision, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	stream := s.streams[eventID]
	if n := len(stream); n > 0 && reflect.DeepEqual(stream[n-1].Payload, payload) {
		return stream[n-1], false
	}

	rev := Revision{
		Ref:       int64(len(stream) + 1),
		CreatedAt: s.now(),
		Payload:   payload,
	}
	s.streams[eventID] = append(stream, rev)
	return rev, true
}

// List returns a copy of the event's revisions in append order.
func (s *InMemoryStore) List(eventID int64) []Revision {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	stream := s.streams[eventID]
	out := make([]Revision, len(stream))
	copy(out, stream)
	return out
}

// Get returns the revision with the given ref, if present.
func (s *InMemoryStore) Get(eventID, ref int64) (Revision, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, rev := range s.streams[eventID] {
		if rev.Ref == ref {
			return rev, true
		}
	}
	return Revision{}, false
}

// RawList returns the revisions as loosely-typed records, the shape the
// normalizer consumes and the external API returns.
func (s *InMemoryStore) RawList(eventID int64) []any {
	revs := s.List(eventID)
	raw := make([]any, 0, len(revs))
	for _, rev := range revs {
		raw = append(raw, map[string]any{
			"ref":        rev.Ref,
			"created_at": rev.CreatedAt.Format(time.RFC3339),
			"payload":    rev.Payload,
		})
	}
	return raw
}
