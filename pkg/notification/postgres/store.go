// Package postgres provides PostgreSQL storage for notifications.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/txn2/mind-connect/pkg/database"
	"github.com/txn2/mind-connect/pkg/notification"
)

// Store implements notification.Store using PostgreSQL. Statements run
// against the ambient transaction when one is carried in the context.
type Store struct {
	db *sql.DB
}

// New creates a new PostgreSQL notification store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Create persists a new notification, assigning an ID if unset.
func (s *Store) Create(ctx context.Context, n *notification.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	query := `
		INSERT INTO notifications (id, user_id, session_id, title, message, type, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := database.FromContext(ctx, s.db).ExecContext(ctx, query,
		n.ID, n.UserID, nullString(n.SessionID), n.Title, n.Message,
		string(n.Type), n.Read, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting notification: %w", err)
	}
	return nil
}

// Get retrieves a notification by ID. Returns nil, nil if not found.
func (s *Store) Get(ctx context.Context, id string) (*notification.Notification, error) {
	query := `
		SELECT id, user_id, session_id, title, message, type, read, created_at
		FROM notifications
		WHERE id = $1
	`
	row := database.FromContext(ctx, s.db).QueryRowContext(ctx, query, id)
	return scanNotification(row)
}

// ListByUser returns all notifications for a user, newest first.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]*notification.Notification, error) {
	query := `
		SELECT id, user_id, session_id, title, message, type, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return s.queryList(ctx, query, userID)
}

// ListUnreadByUser returns unread notifications for a user, newest first.
func (s *Store) ListUnreadByUser(ctx context.Context, userID string) ([]*notification.Notification, error) {
	query := `
		SELECT id, user_id, session_id, title, message, type, read, created_at
		FROM notifications
		WHERE user_id = $1 AND read = FALSE
		ORDER BY created_at DESC
	`
	return s.queryList(ctx, query, userID)
}

// Update overwrites a notification record. CreatedAt is deliberately
// not part of the statement; it is immutable after construction.
func (s *Store) Update(ctx context.Context, n *notification.Notification) error {
	query := `
		UPDATE notifications
		SET title = $2, message = $3, type = $4, read = $5
		WHERE id = $1
	`
	_, err := database.FromContext(ctx, s.db).ExecContext(ctx, query,
		n.ID, n.Title, n.Message, string(n.Type), n.Read,
	)
	if err != nil {
		return fmt.Errorf("updating notification: %w", err)
	}
	return nil
}

// Delete removes a notification.
func (s *Store) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM notifications WHERE id = $1`
	_, err := database.FromContext(ctx, s.db).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting notification: %w", err)
	}
	return nil
}

func (s *Store) queryList(ctx context.Context, query string, args ...any) ([]*notification.Notification, error) {
	rows, err := database.FromContext(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var notifications []*notification.Notification
	for rows.Next() {
		n, err := scanNotificationRow(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notification rows: %w", err)
	}
	return notifications, nil
}

// scanNotification scans a single row into a Notification.
func scanNotification(row *sql.Row) (*notification.Notification, error) {
	var n notification.Notification
	var sessionID sql.NullString
	var typ string

	err := row.Scan(&n.ID, &n.UserID, &sessionID, &n.Title, &n.Message, &typ, &n.Read, &n.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil //nolint:nilnil // Store interface specifies nil,nil for not-found
	}
	if err != nil {
		return nil, fmt.Errorf("scanning notification: %w", err)
	}

	n.SessionID = sessionID.String
	n.Type = notification.Type(typ)
	return &n, nil
}

// scanNotificationRow scans a row from sql.Rows into a Notification.
func scanNotificationRow(rows *sql.Rows) (*notification.Notification, error) {
	var n notification.Notification
	var sessionID sql.NullString
	var typ string

	err := rows.Scan(&n.ID, &n.UserID, &sessionID, &n.Title, &n.Message, &typ, &n.Read, &n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("scanning notification row: %w", err)
	}

	n.SessionID = sessionID.String
	n.Type = notification.Type(typ)
	return &n, nil
}

// nullString maps an empty string to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Verify interface compliance.
var _ notification.Store = (*Store)(nil)
