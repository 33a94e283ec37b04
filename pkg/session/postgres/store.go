// Package postgres provides PostgreSQL storage for sessions.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/txn2/mind-connect/pkg/database"
	"github.com/txn2/mind-connect/pkg/session"
)

// psq is the PostgreSQL statement builder with dollar placeholders.
var psq = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// sessionColumns lists columns returned by session SELECT queries.
var sessionColumns = []string{
	"id", "user_id", "therapist_id", "session_date", "duration_minutes",
	"session_type", "status", "notes", "created_at", "updated_at",
}

// Store implements session.Store using PostgreSQL. Statements run
// against the ambient transaction when one is carried in the context.
type Store struct {
	db *sql.DB
}

// New creates a new PostgreSQL session store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Create persists a new session, assigning an ID if unset.
func (s *Store) Create(ctx context.Context, sess *session.Session) error {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}

	query := `
		INSERT INTO sessions (id, user_id, therapist_id, session_date, duration_minutes, session_type, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := database.FromContext(ctx, s.db).ExecContext(ctx, query,
		sess.ID, sess.UserID, sess.TherapistID, sess.SessionDate, sess.DurationMinutes,
		sess.SessionType, string(sess.Status), sess.Notes, sess.CreatedAt, sess.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

// Get retrieves a session by ID. Returns nil, nil if not found.
func (s *Store) Get(ctx context.Context, id string) (*session.Session, error) {
	query := `
		SELECT id, user_id, therapist_id, session_date, duration_minutes, session_type, status, notes, created_at, updated_at
		FROM sessions
		WHERE id = $1
	`
	row := database.FromContext(ctx, s.db).QueryRowContext(ctx, query, id)
	return scanSession(row)
}

// List returns all sessions ordered by session date.
func (s *Store) List(ctx context.Context) ([]*session.Session, error) {
	return s.listWhere(ctx)
}

// ListByUser returns sessions booked by a user.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]*session.Session, error) {
	return s.listWhere(ctx, sq.Eq{"user_id": userID})
}

// ListByTherapist returns sessions assigned to a therapist.
func (s *Store) ListByTherapist(ctx context.Context, therapistID string) ([]*session.Session, error) {
	return s.listWhere(ctx, sq.Eq{"therapist_id": therapistID})
}

// ListByStatus returns sessions in a given status.
func (s *Store) ListByStatus(ctx context.Context, status session.Status) ([]*session.Session, error) {
	return s.listWhere(ctx, sq.Eq{"status": string(status)})
}

// ListByUserAndStatus returns a user's sessions in a given status.
func (s *Store) ListByUserAndStatus(ctx context.Context, userID string, status session.Status) ([]*session.Session, error) {
	return s.listWhere(ctx, sq.Eq{"user_id": userID, "status": string(status)})
}

// ListByDateRange returns sessions with start <= session_date <= end.
func (s *Store) ListByDateRange(ctx context.Context, start, end time.Time) ([]*session.Session, error) {
	return s.listWhere(ctx, sq.GtOrEq{"session_date": start}, sq.LtOrEq{"session_date": end})
}

// Update overwrites an existing session record.
func (s *Store) Update(ctx context.Context, sess *session.Session) error {
	query := `
		UPDATE sessions
		SET session_date = $2, duration_minutes = $3, session_type = $4, status = $5, notes = $6, updated_at = $7
		WHERE id = $1
	`
	_, err := database.FromContext(ctx, s.db).ExecContext(ctx, query,
		sess.ID, sess.SessionDate, sess.DurationMinutes, sess.SessionType,
		string(sess.Status), sess.Notes, sess.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	return nil
}

// Delete removes a session. Deleting an absent id is a silent no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM sessions WHERE id = $1`
	_, err := database.FromContext(ctx, s.db).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// listWhere runs a SELECT with the given conditions, ordered by
// session date.
func (s *Store) listWhere(ctx context.Context, conds ...sq.Sqlizer) ([]*session.Session, error) {
	qb := psq.Select(sessionColumns...).From("sessions")
	for _, cond := range conds {
		qb = qb.Where(cond)
	}
	qb = qb.OrderBy("session_date ASC")

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building session query: %w", err)
	}

	rows, err := database.FromContext(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*session.Session
	for rows.Next() {
		sess, err := scanSessionRow(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session rows: %w", err)
	}
	return sessions, nil
}

// scanSession scans a single row into a Session.
func scanSession(row *sql.Row) (*session.Session, error) {
	var sess session.Session
	var status string

	err := row.Scan(
		&sess.ID, &sess.UserID, &sess.TherapistID, &sess.SessionDate, &sess.DurationMinutes,
		&sess.SessionType, &status, &sess.Notes, &sess.CreatedAt, &sess.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil //nolint:nilnil // Store interface specifies nil,nil for not-found
	}
	if err != nil {
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	sess.Status = session.Status(status)
	return &sess, nil
}

// scanSessionRow scans a row from sql.Rows into a Session.
func scanSessionRow(rows *sql.Rows) (*session.Session, error) {
	var sess session.Session
	var status string

	err := rows.Scan(
		&sess.ID, &sess.UserID, &sess.TherapistID, &sess.SessionDate, &sess.DurationMinutes,
		&sess.SessionType, &status, &sess.Notes, &sess.CreatedAt, &sess.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning session row: %w", err)
	}

	sess.Status = session.Status(status)
	return &sess, nil
}

// Verify interface compliance.
var _ session.Store = (*Store)(nil)
