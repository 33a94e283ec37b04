package actor

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryUserDirectory implements UserDirectory using an in-memory map.
type MemoryUserDirectory struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewMemoryUserDirectory creates a new in-memory user directory.
func NewMemoryUserDirectory() *MemoryUserDirectory {
	return &MemoryUserDirectory{users: make(map[string]*User)}
}

// Create persists a new user, assigning an ID if unset.
func (d *MemoryUserDirectory) Create(_ context.Context, u *User) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	clone := *u
	d.users[u.ID] = &clone
	return nil
}

// Get retrieves a user by ID. Returns nil, nil if not found.
func (d *MemoryUserDirectory) Get(_ context.Context, id string) (*User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	u, ok := d.users[id]
	if !ok {
		return nil, nil //nolint:nilnil // UserDirectory specifies nil,nil for not-found
	}
	clone := *u
	return &clone, nil
}

// List returns all users sorted by ID for stable output.
func (d *MemoryUserDirectory) List(_ context.Context) ([]*User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	users := make([]*User, 0, len(d.users))
	for _, u := range d.users {
		clone := *u
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Update overwrites an existing user record.
func (d *MemoryUserDirectory) Update(_ context.Context, u *User) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	clone := *u
	d.users[u.ID] = &clone
	return nil
}

// Delete removes a user.
func (d *MemoryUserDirectory) Delete(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.users, id)
	return nil
}

// MemoryTherapistDirectory implements TherapistDirectory using an in-memory map.
type MemoryTherapistDirectory struct {
	mu         sync.RWMutex
	therapists map[string]*Therapist
}

// NewMemoryTherapistDirectory creates a new in-memory therapist directory.
func NewMemoryTherapistDirectory() *MemoryTherapistDirectory {
	return &MemoryTherapistDirectory{therapists: make(map[string]*Therapist)}
}

// Create persists a new therapist, assigning an ID if unset.
func (d *MemoryTherapistDirectory) Create(_ context.Context, t *Therapist) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	clone := *t
	d.therapists[t.ID] = &clone
	return nil
}

// Get retrieves a therapist by ID. Returns nil, nil if not found.
func (d *MemoryTherapistDirectory) Get(_ context.Context, id string) (*Therapist, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	t, ok := d.therapists[id]
	if !ok {
		return nil, nil //nolint:nilnil // TherapistDirectory specifies nil,nil for not-found
	}
	clone := *t
	return &clone, nil
}

// List returns all therapists sorted by ID for stable output.
func (d *MemoryTherapistDirectory) List(_ context.Context) ([]*Therapist, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	therapists := make([]*Therapist, 0, len(d.therapists))
	for _, t := range d.therapists {
		clone := *t
		therapists = append(therapists, &clone)
	}
	sort.Slice(therapists, func(i, j int) bool { return therapists[i].ID < therapists[j].ID })
	return therapists, nil
}

// Update overwrites an existing therapist record.
func (d *MemoryTherapistDirectory) Update(_ context.Context, t *Therapist) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	clone := *t
	d.therapists[t.ID] = &clone
	return nil
}

// Delete removes a therapist.
func (d *MemoryTherapistDirectory) Delete(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.therapists, id)
	return nil
}

// Verify interface compliance.
var (
	_ UserDirectory      = (*MemoryUserDirectory)(nil)
	_ TherapistDirectory = (*MemoryTherapistDirectory)(nil)
)
