package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym-frontend/internal/backend"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	owner := &backend.Owner{ID: "gym-1", Name: "Ravi", GymName: "Iron Temple"}
	require.NoError(t, store.Save(ctx, "s1", owner))

	got, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "gym-1", got.ID)
	assert.Equal(t, "Iron Temple", got.GymName)

	// Stored copy must not alias the caller's struct.
	owner.GymName = "changed"
	got, err = store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Iron Temple", got.GymName)
}

func TestMemoryStoreMissing(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", &backend.Owner{ID: "gym-1"}))
	require.NoError(t, store.Clear(ctx, "s1"))

	_, err := store.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Clearing twice is not an error.
	assert.NoError(t, store.Clear(ctx, "s1"))
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", &backend.Owner{ID: "gym-1", MonthlyFee: 1000}))
	require.NoError(t, store.Save(ctx, "s1", &backend.Owner{ID: "gym-1", MonthlyFee: 1500}))

	got, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, float64(1500), got.MonthlyFee)
}
