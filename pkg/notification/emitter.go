package notification

import (
	"fmt"
	"time"
)

// SessionEvent carries the session fields a notification message needs.
// It is a plain value so the emitter stays free of session-package
// dependencies and side effects.
type SessionEvent struct {
	SessionID         string
	UserID            string
	TherapistLastName string
}

// Emitter builds notification records from session lifecycle events.
// Builders return unpersisted records; the caller decides when and
// inside which transaction they are stored.
type Emitter struct {
	// Now overrides the construction timestamp. Nil means time.Now.
	Now func() time.Time
}

// Cancelled builds a SESSION_CANCELLED notification. The reason string
// is embedded verbatim in the message.
func (e *Emitter) Cancelled(ev SessionEvent, reason string) *Notification {
	return e.build(ev, TypeSessionCancelled, "Session Cancelled",
		fmt.Sprintf("Your session with Dr. %s has been cancelled. Reason: %s",
			ev.TherapistLastName, reason))
}

// Rescheduled builds a SESSION_RESCHEDULED notification carrying the
// new date as free text.
func (e *Emitter) Rescheduled(ev SessionEvent, newDate string) *Notification {
	return e.build(ev, TypeSessionRescheduled, "Session Rescheduled",
		fmt.Sprintf("Your session with Dr. %s has been rescheduled to %s",
			ev.TherapistLastName, newDate))
}

// Completed builds a SESSION_COMPLETED notification with the fixed
// thank-you message.
func (e *Emitter) Completed(ev SessionEvent) *Notification {
	return e.build(ev, TypeSessionCompleted, "Session Completed",
		fmt.Sprintf("Your session with Dr. %s has been marked as completed. Thank you for your time!",
			ev.TherapistLastName))
}

func (e *Emitter) build(ev SessionEvent, typ Type, title, message string) *Notification {
	return &Notification{
		UserID:    ev.UserID,
		SessionID: ev.SessionID,
		Title:     title,
		Message:   message,
		Type:      typ,
		Read:      false,
		CreatedAt: e.now(),
	}
}

func (e *Emitter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now().UTC()
}
