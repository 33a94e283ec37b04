package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var emitterTestTime = time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

func testEmitter() *Emitter {
	return &Emitter{Now: func() time.Time { return emitterTestTime }}
}

func testEvent() SessionEvent {
	return SessionEvent{
		SessionID:         "sess-1",
		UserID:            "user-1",
		TherapistLastName: "Rogers",
	}
}

func TestEmitter_Cancelled(t *testing.T) {
	n := testEmitter().Cancelled(testEvent(), "client request")

	assert.Equal(t, TypeSessionCancelled, n.Type)
	assert.Equal(t, "Session Cancelled", n.Title)
	assert.Equal(t, "Your session with Dr. Rogers has been cancelled. Reason: client request", n.Message)
	assert.Equal(t, "user-1", n.UserID)
	assert.Equal(t, "sess-1", n.SessionID)
	assert.False(t, n.Read)
	assert.Equal(t, emitterTestTime, n.CreatedAt)
	assert.Empty(t, n.ID, "the store assigns the id")
}

func TestEmitter_Rescheduled(t *testing.T) {
	n := testEmitter().Rescheduled(testEvent(), "2026-03-16T10:00:00Z")

	assert.Equal(t, TypeSessionRescheduled, n.Type)
	assert.Equal(t, "Session Rescheduled", n.Title)
	assert.Equal(t, "Your session with Dr. Rogers has been rescheduled to 2026-03-16T10:00:00Z", n.Message)
}

func TestEmitter_Completed(t *testing.T) {
	n := testEmitter().Completed(testEvent())

	assert.Equal(t, TypeSessionCompleted, n.Type)
	assert.Equal(t, "Session Completed", n.Title)
	assert.Equal(t, "Your session with Dr. Rogers has been marked as completed. Thank you for your time!", n.Message)
}

func TestEmitter_DefaultClock(t *testing.T) {
	var e Emitter
	before := time.Now().UTC()
	n := e.Completed(testEvent())
	after := time.Now().UTC()

	assert.False(t, n.CreatedAt.Before(before))
	assert.False(t, n.CreatedAt.After(after))
}
