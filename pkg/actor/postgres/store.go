// Package postgres provides PostgreSQL storage for users and therapists.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/txn2/mind-connect/pkg/actor"
	"github.com/txn2/mind-connect/pkg/database"
)

// UserDirectory implements actor.UserDirectory using PostgreSQL.
type UserDirectory struct {
	db *sql.DB
}

// NewUserDirectory creates a new PostgreSQL user directory.
func NewUserDirectory(db *sql.DB) *UserDirectory {
	return &UserDirectory{db: db}
}

// Create persists a new user, assigning an ID if unset.
func (d *UserDirectory) Create(ctx context.Context, u *actor.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	query := `
		INSERT INTO users (id, first_name, last_name, email, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := database.FromContext(ctx, d.db).ExecContext(ctx, query,
		u.ID, u.FirstName, u.LastName, u.Email, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// Get retrieves a user by ID. Returns nil, nil if not found.
func (d *UserDirectory) Get(ctx context.Context, id string) (*actor.User, error) {
	query := `
		SELECT id, first_name, last_name, email, created_at
		FROM users
		WHERE id = $1
	`
	var u actor.User
	err := database.FromContext(ctx, d.db).QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil //nolint:nilnil // UserDirectory specifies nil,nil for not-found
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return &u, nil
}

// List returns all users.
func (d *UserDirectory) List(ctx context.Context) ([]*actor.User, error) {
	query := `
		SELECT id, first_name, last_name, email, created_at
		FROM users
		ORDER BY last_name, first_name
	`
	rows, err := database.FromContext(ctx, d.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []*actor.User
	for rows.Next() {
		var u actor.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}
	return users, nil
}

// Update overwrites an existing user record.
func (d *UserDirectory) Update(ctx context.Context, u *actor.User) error {
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, email = $4
		WHERE id = $1
	`
	_, err := database.FromContext(ctx, d.db).ExecContext(ctx, query,
		u.ID, u.FirstName, u.LastName, u.Email,
	)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	return nil
}

// Delete removes a user.
func (d *UserDirectory) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`
	_, err := database.FromContext(ctx, d.db).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}

// TherapistDirectory implements actor.TherapistDirectory using PostgreSQL.
type TherapistDirectory struct {
	db *sql.DB
}

// NewTherapistDirectory creates a new PostgreSQL therapist directory.
func NewTherapistDirectory(db *sql.DB) *TherapistDirectory {
	return &TherapistDirectory{db: db}
}

// Create persists a new therapist, assigning an ID if unset.
func (d *TherapistDirectory) Create(ctx context.Context, t *actor.Therapist) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	query := `
		INSERT INTO therapists (id, first_name, last_name, email, specialization, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := database.FromContext(ctx, d.db).ExecContext(ctx, query,
		t.ID, t.FirstName, t.LastName, t.Email, t.Specialization, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting therapist: %w", err)
	}
	return nil
}

// Get retrieves a therapist by ID. Returns nil, nil if not found.
func (d *TherapistDirectory) Get(ctx context.Context, id string) (*actor.Therapist, error) {
	query := `
		SELECT id, first_name, last_name, email, specialization, created_at
		FROM therapists
		WHERE id = $1
	`
	var t actor.Therapist
	err := database.FromContext(ctx, d.db).QueryRowContext(ctx, query, id).
		Scan(&t.ID, &t.FirstName, &t.LastName, &t.Email, &t.Specialization, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil //nolint:nilnil // TherapistDirectory specifies nil,nil for not-found
	}
	if err != nil {
		return nil, fmt.Errorf("scanning therapist: %w", err)
	}
	return &t, nil
}

// List returns all therapists.
func (d *TherapistDirectory) List(ctx context.Context) ([]*actor.Therapist, error) {
	query := `
		SELECT id, first_name, last_name, email, specialization, created_at
		FROM therapists
		ORDER BY last_name, first_name
	`
	rows, err := database.FromContext(ctx, d.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying therapists: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var therapists []*actor.Therapist
	for rows.Next() {
		var t actor.Therapist
		if err := rows.Scan(&t.ID, &t.FirstName, &t.LastName, &t.Email, &t.Specialization, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning therapist row: %w", err)
		}
		therapists = append(therapists, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating therapist rows: %w", err)
	}
	return therapists, nil
}

// Update overwrites an existing therapist record.
func (d *TherapistDirectory) Update(ctx context.Context, t *actor.Therapist) error {
	query := `
		UPDATE therapists
		SET first_name = $2, last_name = $3, email = $4, specialization = $5
		WHERE id = $1
	`
	_, err := database.FromContext(ctx, d.db).ExecContext(ctx, query,
		t.ID, t.FirstName, t.LastName, t.Email, t.Specialization,
	)
	if err != nil {
		return fmt.Errorf("updating therapist: %w", err)
	}
	return nil
}

// Delete removes a therapist.
func (d *TherapistDirectory) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM therapists WHERE id = $1`
	_, err := database.FromContext(ctx, d.db).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting therapist: %w", err)
	}
	return nil
}

// Verify interface compliance.
var (
	_ actor.UserDirectory      = (*UserDirectory)(nil)
	_ actor.TherapistDirectory = (*TherapistDirectory)(nil)
)
