package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/txn2/mind-connect/pkg/actor"
	"github.com/txn2/mind-connect/pkg/database"
	"github.com/txn2/mind-connect/pkg/notification"
)

// noReason is the cancellation reason used when a session has no notes.
const noReason = "No reason provided"

// ServiceConfig wires the service's collaborators. Store, Notifications,
// Users and Therapists are required; Tx defaults to the no-op runner.
type ServiceConfig struct {
	Store         Store
	Notifications notification.Store
	Users         actor.UserDirectory
	Therapists    actor.TherapistDirectory
	Tx            database.TxRunner
	Emitter       *notification.Emitter
}

// Service owns the session lifecycle rules: which field changes count
// as a reschedule, which status transitions notify, and the pairing of
// each session write with its derived notification write.
type Service struct {
	store         Store
	notifications notification.Store
	users         actor.UserDirectory
	therapists    actor.TherapistDirectory
	tx            database.TxRunner
	emitter       *notification.Emitter
}

// NewService creates a session service.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Tx == nil {
		cfg.Tx = database.NopTxRunner{}
	}
	if cfg.Emitter == nil {
		cfg.Emitter = &notification.Emitter{}
	}
	return &Service{
		store:         cfg.Store,
		notifications: cfg.Notifications,
		users:         cfg.Users,
		therapists:    cfg.Therapists,
		tx:            cfg.Tx,
		emitter:       cfg.Emitter,
	}
}

// CreateParams are the caller-supplied fields of a new session.
type CreateParams struct {
	UserID          string
	TherapistID     string
	SessionDate     time.Time
	DurationMinutes int
	SessionType     string
	Notes           string
}

// Create validates both actor references and persists a new session in
// the SCHEDULED status. No notification is emitted on creation.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Session, error) {
	user, err := s.users.Get(ctx, params.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolving user: %w", err)
	}
	if user == nil {
		return nil, &ReferenceNotFoundError{Kind: "user", ID: params.UserID}
	}

	therapist, err := s.therapists.Get(ctx, params.TherapistID)
	if err != nil {
		return nil, fmt.Errorf("resolving therapist: %w", err)
	}
	if therapist == nil {
		return nil, &ReferenceNotFoundError{Kind: "therapist", ID: params.TherapistID}
	}

	now := time.Now().UTC()
	sess := &Session{
		UserID:          params.UserID,
		TherapistID:     params.TherapistID,
		SessionDate:     params.SessionDate,
		DurationMinutes: params.DurationMinutes,
		SessionType:     params.SessionType,
		Status:          StatusScheduled,
		Notes:           params.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	slog.Info("session created",
		"session_id", sess.ID, "user_id", sess.UserID, "therapist_id", sess.TherapistID)
	return sess, nil
}

// UpdateParams overwrite all mutable session fields.
type UpdateParams struct {
	SessionDate     time.Time
	DurationMinutes int
	SessionType     string
	Status          Status
	Notes           string
}

// Update overwrites the session's mutable fields. A change to
// SessionDate (value inequality) classifies the update as a reschedule
// and emits one SESSION_RESCHEDULED notification to the session's user.
// Status changes applied through this entry point never notify; that is
// the job of UpdateStatus.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*Session, error) {
	sess, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	rescheduled := !sess.SessionDate.Equal(params.SessionDate)

	sess.SessionDate = params.SessionDate
	sess.DurationMinutes = params.DurationMinutes
	sess.SessionType = params.SessionType
	sess.Status = params.Status
	sess.Notes = params.Notes
	sess.UpdatedAt = time.Now().UTC()

	var note *notification.Notification
	if rescheduled {
		ev, err := s.sessionEvent(ctx, sess)
		if err != nil {
			return nil, err
		}
		note = s.emitter.Rescheduled(ev, params.SessionDate.Format(time.RFC3339))
	}

	if err := s.persist(ctx, sess, note); err != nil {
		return nil, err
	}

	if rescheduled {
		slog.Info("session rescheduled",
			"session_id", sess.ID, "user_id", sess.UserID, "session_date", sess.SessionDate)
	}
	return sess, nil
}

// UpdateStatus applies a status change and emits the matching
// notification, first match wins: to CANCELLED from any other status
// emits SESSION_CANCELLED; to COMPLETED from any other status emits
// SESSION_COMPLETED; everything else is silent. Setting a session to
// its current status never emits a duplicate. No transition graph is
// enforced beyond the equality check.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (*Session, error) {
	sess, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := sess.Status
	sess.Status = status
	sess.UpdatedAt = time.Now().UTC()

	var note *notification.Notification
	switch {
	case status == StatusCancelled && oldStatus != StatusCancelled:
		ev, err := s.sessionEvent(ctx, sess)
		if err != nil {
			return nil, err
		}
		reason := sess.Notes
		if reason == "" {
			reason = noReason
		}
		note = s.emitter.Cancelled(ev, reason)
	case status == StatusCompleted && oldStatus != StatusCompleted:
		ev, err := s.sessionEvent(ctx, sess)
		if err != nil {
			return nil, err
		}
		note = s.emitter.Completed(ev)
	}

	if err := s.persist(ctx, sess, note); err != nil {
		return nil, err
	}

	slog.Info("session status updated",
		"session_id", sess.ID, "old_status", oldStatus, "new_status", status)
	return sess, nil
}

// Delete removes a session unconditionally, bypassing the state machine.
// No notification is emitted; absence semantics are the store's.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// Get retrieves a session by ID.
func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.get(ctx, id)
}

// List returns all sessions.
func (s *Service) List(ctx context.Context) ([]*Session, error) {
	return s.store.List(ctx)
}

// ListByUser returns sessions booked by a user.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*Session, error) {
	return s.store.ListByUser(ctx, userID)
}

// ListByTherapist returns sessions assigned to a therapist.
func (s *Service) ListByTherapist(ctx context.Context, therapistID string) ([]*Session, error) {
	return s.store.ListByTherapist(ctx, therapistID)
}

// ListByStatus returns sessions in a given status.
func (s *Service) ListByStatus(ctx context.Context, status Status) ([]*Session, error) {
	return s.store.ListByStatus(ctx, status)
}

// ListUpcoming returns a user's sessions still in the SCHEDULED status.
func (s *Service) ListUpcoming(ctx context.Context, userID string) ([]*Session, error) {
	return s.store.ListByUserAndStatus(ctx, userID, StatusScheduled)
}

// ListInRange returns sessions scheduled between start and end inclusive.
func (s *Service) ListInRange(ctx context.Context, start, end time.Time) ([]*Session, error) {
	return s.store.ListByDateRange(ctx, start, end)
}

func (s *Service) get(ctx context.Context, id string) (*Session, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	if sess == nil {
		return nil, ErrNotFound
	}
	return sess, nil
}

// sessionEvent resolves the therapist and assembles the event a
// notification builder needs. An unresolvable therapist fails the whole
// operation rather than emitting a half-addressed record.
func (s *Service) sessionEvent(ctx context.Context, sess *Session) (notification.SessionEvent, error) {
	therapist, err := s.therapists.Get(ctx, sess.TherapistID)
	if err != nil {
		return notification.SessionEvent{}, fmt.Errorf("resolving therapist: %w", err)
	}
	if therapist == nil {
		return notification.SessionEvent{}, &ReferenceNotFoundError{Kind: "therapist", ID: sess.TherapistID}
	}
	return notification.SessionEvent{
		SessionID:         sess.ID,
		UserID:            sess.UserID,
		TherapistLastName: therapist.LastName,
	}, nil
}

// persist writes the session and, when present, its derived
// notification inside one transaction so a crash between the two writes
// cannot leave a state change without its notification.
func (s *Service) persist(ctx context.Context, sess *Session, note *notification.Notification) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.store.Update(ctx, sess); err != nil {
			return fmt.Errorf("updating session: %w", err)
		}
		if note != nil {
			if err := s.notifications.Create(ctx, note); err != nil {
				return fmt.Errorf("creating notification: %w", err)
			}
		}
		return nil
	})
}
