// Package session implements the session lifecycle: creation against
// resolved actors, updates with reschedule detection, status changes
// with their coupled notification emission, and lookups. It defines the
// Session type, the Store interface for persistence, and the Service
// that owns all transition rules.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a session id does not resolve.
var ErrNotFound = errors.New("session not found")

// ReferenceNotFoundError reports that a user or therapist referenced at
// session creation does not exist.
type ReferenceNotFoundError struct {
	// Kind is "user" or "therapist".
	Kind string
	ID   string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// Status is a session lifecycle state. Transition rules compare
// statuses only for equality; no ordering is implied.
type Status string

// Session statuses.
const (
	StatusScheduled   Status = "SCHEDULED"
	StatusRescheduled Status = "RESCHEDULED"
	StatusCancelled   Status = "CANCELLED"
	StatusCompleted   Status = "COMPLETED"
)

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusScheduled, StatusRescheduled, StatusCancelled, StatusCompleted:
		return Status(s), nil
	}
	return "", fmt.Errorf("invalid session status %q", s)
}

// Session is one booked interaction between a client and a therapist.
type Session struct {
	// ID is the unique session identifier, assigned by the store.
	ID string `json:"id"`

	UserID      string `json:"user_id"`
	TherapistID string `json:"therapist_id"`

	// SessionDate is the scheduled start. A change to this field during
	// an update is what classifies the update as a reschedule.
	SessionDate time.Time `json:"session_date"`

	DurationMinutes int    `json:"duration_minutes"`
	SessionType     string `json:"session_type"`
	Status          Status `json:"status"`
	Notes           string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store defines the interface for session persistence.
type Store interface {
	// Create persists a new session, assigning an ID if unset.
	Create(ctx context.Context, sess *Session) error

	// Get retrieves a session by ID. Returns nil, nil if not found.
	Get(ctx context.Context, id string) (*Session, error)

	// List returns all sessions.
	List(ctx context.Context) ([]*Session, error)

	// ListByUser returns sessions booked by a user.
	ListByUser(ctx context.Context, userID string) ([]*Session, error)

	// ListByTherapist returns sessions assigned to a therapist.
	ListByTherapist(ctx context.Context, therapistID string) ([]*Session, error)

	// ListByStatus returns sessions in a given status.
	ListByStatus(ctx context.Context, status Status) ([]*Session, error)

	// ListByUserAndStatus returns a user's sessions in a given status.
	ListByUserAndStatus(ctx context.Context, userID string, status Status) ([]*Session, error)

	// ListByDateRange returns sessions with start <= session_date <= end.
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*Session, error)

	// Update overwrites an existing session record.
	Update(ctx context.Context, sess *Session) error

	// Delete removes a session. Deleting an absent id is a no-op.
	Delete(ctx context.Context, id string) error
}
