package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CreateAssignsID(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	n := &Notification{UserID: "u1", Title: "t", Message: "m", CreatedAt: time.Now()}
	require.NoError(t, store.Create(ctx, n))
	assert.NotEmpty(t, n.ID)
}

func TestMemoryStore_GetNotFound(t *testing.T) {
	store := NewMemoryStore()

	got, err := store.Get(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	n := &Notification{ID: "n1", UserID: "u1", Title: "t", Message: "m"}
	require.NoError(t, store.Create(ctx, n))

	got, err := store.Get(ctx, "n1")
	require.NoError(t, err)
	got.Read = true

	again, err := store.Get(ctx, "n1")
	require.NoError(t, err)
	assert.False(t, again.Read, "mutating a returned notification must not affect the store")
}

func TestMemoryStore_ListByUser_NewestFirst(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Create(ctx, &Notification{ID: "old", UserID: "u1", CreatedAt: base}))
	require.NoError(t, store.Create(ctx, &Notification{ID: "new", UserID: "u1", CreatedAt: base.Add(time.Hour)}))

	notes, err := store.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "new", notes[0].ID)
}

func TestMemoryStore_ListUnreadByUser_FiltersRead(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &Notification{ID: "n1", UserID: "u1", Read: true}))
	require.NoError(t, store.Create(ctx, &Notification{ID: "n2", UserID: "u1"}))

	unread, err := store.ListUnreadByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "n2", unread[0].ID)
}
