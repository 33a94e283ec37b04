package actor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserDirectory_CRUD(t *testing.T) {
	dir := NewMemoryUserDirectory()
	ctx := context.Background()

	u := &User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	require.NoError(t, dir.Create(ctx, u))
	require.NotEmpty(t, u.ID)

	got, err := dir.Get(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Lovelace", got.LastName)

	got.Email = "ada@lovelace.dev"
	require.NoError(t, dir.Update(ctx, got))
	updated, err := dir.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@lovelace.dev", updated.Email)

	users, err := dir.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, dir.Delete(ctx, u.ID))
	gone, err := dir.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestMemoryUserDirectory_GetNotFound(t *testing.T) {
	dir := NewMemoryUserDirectory()

	got, err := dir.Get(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryTherapistDirectory_CRUD(t *testing.T) {
	dir := NewMemoryTherapistDirectory()
	ctx := context.Background()

	th := &Therapist{FirstName: "Carl", LastName: "Rogers", Specialization: "person-centered"}
	require.NoError(t, dir.Create(ctx, th))
	require.NotEmpty(t, th.ID)

	got, err := dir.Get(ctx, th.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Rogers", got.LastName)
	assert.Equal(t, "person-centered", got.Specialization)

	therapists, err := dir.List(ctx)
	require.NoError(t, err)
	assert.Len(t, therapists, 1)

	require.NoError(t, dir.Delete(ctx, th.ID))
	gone, err := dir.Get(ctx, th.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestMemoryTherapistDirectory_GetReturnsCopy(t *testing.T) {
	dir := NewMemoryTherapistDirectory()
	ctx := context.Background()

	th := &Therapist{ID: "t1", LastName: "Rogers"}
	require.NoError(t, dir.Create(ctx, th))

	got, err := dir.Get(ctx, "t1")
	require.NoError(t, err)
	got.LastName = "Jung"

	again, err := dir.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Rogers", again.LastName)
}
