// Package actor defines the user and therapist records referenced by
// sessions, and the directory interfaces the session service resolves
// them through. Actors are pass-through persistence: the core never
// derives behavior from them beyond existence checks and message text.
package actor

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by directory-backed services when an actor id
// does not resolve.
var ErrNotFound = errors.New("actor not found")

// User is a client who books sessions.
type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Therapist is a session provider. LastName is embedded in notification
// messages ("Dr. <LastName>").
type Therapist struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Specialization string    `json:"specialization"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserDirectory persists user records.
type UserDirectory interface {
	// Create persists a new user, assigning an ID if unset.
	Create(ctx context.Context, u *User) error

	// Get retrieves a user by ID. Returns nil, nil if not found.
	Get(ctx context.Context, id string) (*User, error)

	// List returns all users.
	List(ctx context.Context) ([]*User, error)

	// Update overwrites an existing user record.
	Update(ctx context.Context, u *User) error

	// Delete removes a user.
	Delete(ctx context.Context, id string) error
}

// TherapistDirectory persists therapist records.
type TherapistDirectory interface {
	// Create persists a new therapist, assigning an ID if unset.
	Create(ctx context.Context, t *Therapist) error

	// Get retrieves a therapist by ID. Returns nil, nil if not found.
	Get(ctx context.Context, id string) (*Therapist, error)

	// List returns all therapists.
	List(ctx context.Context) ([]*Therapist, error)

	// Update overwrites an existing therapist record.
	Update(ctx context.Context, t *Therapist) error

	// Delete removes a therapist.
	Delete(ctx context.Context, id string) error
}
