package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store using an in-memory map.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// Create persists a new session, assigning an ID if unset.
func (s *MemoryStore) Create(_ context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	clone := *sess
	s.sessions[sess.ID] = &clone
	return nil
}

// Get retrieves a session by ID. Returns nil, nil if not found.
func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil //nolint:nilnil // Store interface specifies nil,nil for not-found
	}
	clone := *sess
	return &clone, nil
}

// List returns all sessions.
func (s *MemoryStore) List(_ context.Context) ([]*Session, error) {
	return s.list(func(*Session) bool { return true }), nil
}

// ListByUser returns sessions booked by a user.
func (s *MemoryStore) ListByUser(_ context.Context, userID string) ([]*Session, error) {
	return s.list(func(sess *Session) bool { return sess.UserID == userID }), nil
}

// ListByTherapist returns sessions assigned to a therapist.
func (s *MemoryStore) ListByTherapist(_ context.Context, therapistID string) ([]*Session, error) {
	return s.list(func(sess *Session) bool { return sess.TherapistID == therapistID }), nil
}

// ListByStatus returns sessions in a given status.
func (s *MemoryStore) ListByStatus(_ context.Context, status Status) ([]*Session, error) {
	return s.list(func(sess *Session) bool { return sess.Status == status }), nil
}

// ListByUserAndStatus returns a user's sessions in a given status.
func (s *MemoryStore) ListByUserAndStatus(_ context.Context, userID string, status Status) ([]*Session, error) {
	return s.list(func(sess *Session) bool {
		return sess.UserID == userID && sess.Status == status
	}), nil
}

// ListByDateRange returns sessions with start <= session_date <= end.
func (s *MemoryStore) ListByDateRange(_ context.Context, start, end time.Time) ([]*Session, error) {
	return s.list(func(sess *Session) bool {
		return !sess.SessionDate.Before(start) && !sess.SessionDate.After(end)
	}), nil
}

func (s *MemoryStore) list(match func(*Session) bool) []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Session
	for _, sess := range s.sessions {
		if !match(sess) {
			continue
		}
		clone := *sess
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SessionDate.Equal(out[j].SessionDate) {
			return out[i].SessionDate.Before(out[j].SessionDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Update overwrites an existing session record.
func (s *MemoryStore) Update(_ context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *sess
	s.sessions[sess.ID] = &clone
	return nil
}

// Delete removes a session. Deleting an absent id is a no-op.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// Verify interface compliance.
var _ Store = (*MemoryStore)(nil)
