package notification

import (
	"context"
	"fmt"
	"time"
)

// Service exposes notification access operations. Records are created
// either by the session service through the emitter or directly via
// Create; mutation is limited to the read flag.
type Service struct {
	store Store
}

// NewService creates a notification service backed by store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create persists a notification directly, bypassing session logic.
// CreatedAt is assigned here when unset and never updated afterwards.
func (s *Service) Create(ctx context.Context, n *Notification) (*Notification, error) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if err := s.store.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("creating notification: %w", err)
	}
	return n, nil
}

// Get retrieves a notification by ID.
func (s *Service) Get(ctx context.Context, id string) (*Notification, error) {
	n, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting notification: %w", err)
	}
	if n == nil {
		return nil, ErrNotFound
	}
	return n, nil
}

// ListByUser returns all notifications for a user, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*Notification, error) {
	return s.store.ListByUser(ctx, userID)
}

// ListUnreadByUser returns unread notifications for a user, newest first.
func (s *Service) ListUnreadByUser(ctx context.Context, userID string) ([]*Notification, error) {
	return s.store.ListUnreadByUser(ctx, userID)
}

// MarkAsRead flips the read flag to true. It is idempotent: marking an
// already-read notification succeeds without a second store write.
func (s *Service) MarkAsRead(ctx context.Context, id string) (*Notification, error) {
	n, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting notification: %w", err)
	}
	if n == nil {
		return nil, ErrNotFound
	}
	if n.Read {
		return n, nil
	}

	n.Read = true
	if err := s.store.Update(ctx, n); err != nil {
		return nil, fmt.Errorf("marking notification read: %w", err)
	}
	return n, nil
}

// Delete removes a notification unconditionally.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting notification: %w", err)
	}
	return nil
}
