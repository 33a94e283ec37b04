package notification

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements Store using an in-memory map.
type MemoryStore struct {
	mu            sync.RWMutex
	notifications map[string]*Notification
}

// NewMemoryStore creates a new in-memory notification store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{notifications: make(map[string]*Notification)}
}

// Create persists a new notification, assigning an ID if unset.
func (s *MemoryStore) Create(_ context.Context, n *Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	clone := *n
	s.notifications[n.ID] = &clone
	return nil
}

// Get retrieves a notification by ID. Returns nil, nil if not found.
func (s *MemoryStore) Get(_ context.Context, id string) (*Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notifications[id]
	if !ok {
		return nil, nil //nolint:nilnil // Store interface specifies nil,nil for not-found
	}
	clone := *n
	return &clone, nil
}

// ListByUser returns all notifications for a user, newest first.
func (s *MemoryStore) ListByUser(_ context.Context, userID string) ([]*Notification, error) {
	return s.list(userID, false), nil
}

// ListUnreadByUser returns unread notifications for a user, newest first.
func (s *MemoryStore) ListUnreadByUser(_ context.Context, userID string) ([]*Notification, error) {
	return s.list(userID, true), nil
}

func (s *MemoryStore) list(userID string, unreadOnly bool) []*Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Notification
	for _, n := range s.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		clone := *n
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Update overwrites a notification record.
func (s *MemoryStore) Update(_ context.Context, n *Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *n
	s.notifications[n.ID] = &clone
	return nil
}

// Delete removes a notification.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.notifications, id)
	return nil
}

// Verify interface compliance.
var _ Store = (*MemoryStore)(nil)
