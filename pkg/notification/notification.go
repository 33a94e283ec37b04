// Package notification provides the notification record model, the
// emitter that builds records from session lifecycle events, and the
// service for reading and acknowledging them. Delivery (email, SMS,
// push) is out of scope; only record creation is handled here.
package notification

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a notification id does not resolve.
var ErrNotFound = errors.New("notification not found")

// Type categorizes a notification and fixes the semantic meaning of its
// message text.
type Type string

// Notification types.
const (
	TypeSessionCancelled   Type = "SESSION_CANCELLED"
	TypeSessionRescheduled Type = "SESSION_RESCHEDULED"
	TypeSessionCompleted   Type = "SESSION_COMPLETED"
	TypeSessionReminder    Type = "SESSION_REMINDER"
)

// Notification is a one-way informational record for a user,
// optionally tied to the session that caused it.
type Notification struct {
	// ID is the unique notification identifier, assigned by the store.
	ID string `json:"id"`

	// UserID is the recipient.
	UserID string `json:"user_id"`

	// SessionID references the session that caused the notification.
	// Empty when the notification was created directly.
	SessionID string `json:"session_id,omitempty"`

	Title   string `json:"title"`
	Message string `json:"message"`
	Type    Type   `json:"type"`

	// Read transitions only false to true, via MarkAsRead.
	Read bool `json:"read"`

	// CreatedAt is set once at construction and never updated.
	CreatedAt time.Time `json:"created_at"`
}

// Store defines the interface for notification persistence.
type Store interface {
	// Create persists a new notification, assigning an ID if unset.
	Create(ctx context.Context, n *Notification) error

	// Get retrieves a notification by ID. Returns nil, nil if not found.
	Get(ctx context.Context, id string) (*Notification, error)

	// ListByUser returns all notifications for a user, newest first.
	ListByUser(ctx context.Context, userID string) ([]*Notification, error)

	// ListUnreadByUser returns unread notifications for a user, newest first.
	ListUnreadByUser(ctx context.Context, userID string) ([]*Notification, error)

	// Update overwrites a notification record (used for the read flag).
	Update(ctx context.Context, n *Notification) error

	// Delete removes a notification.
	Delete(ctx context.Context, id string) error
}
