package repository

import (
	"context"
	"testing"
	"time"

	"todo_reminder/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTask(text string, createdAt time.Time) domain.Task {
	return domain.Task{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: createdAt,
	}
}

// runStoreContract exercises the behaviour every TaskStore must share.
// The store is expected to be empty.
func runStoreContract(t *testing.T, store TaskStore) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)

	milk := newTask("Buy milk", base)
	milk.Date, milk.Time = "2025-01-01", "09:00"
	created, err := store.Create(ctx, milk)
	require.NoError(t, err)
	assert.Equal(t, milk.ID, created.ID)
	assert.False(t, created.Completed)

	bread := newTask("Buy bread", base.Add(time.Minute))
	_, err = store.Create(ctx, bread)
	require.NoError(t, err)

	// same createdAt as bread: insertion order breaks the tie
	eggs := newTask("Buy eggs", base.Add(time.Minute))
	_, err = store.Create(ctx, eggs)
	require.NoError(t, err)

	list, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{eggs.ID, bread.ID, milk.ID}, []string{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, "2025-01-01", list[2].Date)
	assert.Equal(t, "09:00", list[2].Time)
	assert.True(t, list[2].CreatedAt.Equal(base))

	toggled, err := store.Toggle(ctx, milk.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	assert.Equal(t, "Buy milk", toggled.Text)

	toggled, err = store.Toggle(ctx, milk.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)

	require.NoError(t, store.Delete(ctx, milk.ID))

	_, err = store.Toggle(ctx, milk.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, milk.ID), domain.ErrNotFound)

	_, err = store.Toggle(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err = store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	assert.NoError(t, store.Ping(ctx))
}
