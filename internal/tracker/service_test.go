package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceLoadAbsentState(t *testing.T) {
	svc := NewService(NewMemStore())
	svc.Load(testCatalog())

	items := svc.Snapshot()
	require.Len(t, items, 4)
	for _, it := range items {
		assert.False(t, it.Watched)
	}
}

func TestServiceLoadMalformedState(t *testing.T) {
	store := NewMemStore()
	require.NoError(t, store.Set(StateKey, `{"a": broken json!!`))

	svc := NewService(store)
	svc.Load(testCatalog())

	// corrupt state behaves exactly like absent state
	items := svc.Snapshot()
	require.Len(t, items, 4)
	for _, it := range items {
		assert.False(t, it.Watched)
		assert.Zero(t, it.Rating)
	}
}

func TestServiceUpdateWriteThrough(t *testing.T) {
	store := NewMemStore()
	svc := NewService(store)
	svc.Load(testCatalog())

	updated, found, err := svc.Update("a", Patch{Watched: boolPtr(true), Rating: intPtr(5)})
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, updated.Watched)
	assert.Equal(t, 5, updated.Rating)

	// a fresh service over the same store sees the persisted overlay
	svc2 := NewService(store)
	svc2.Load(testCatalog())

	it, ok := svc2.Get("a")
	require.True(t, ok)
	assert.True(t, it.Watched)
	assert.Equal(t, 5, it.Rating)
}

func TestServiceUpdateUnknownID(t *testing.T) {
	store := NewMemStore()
	svc := NewService(store)
	svc.Load(testCatalog())

	_, found, err := svc.Update("nope", Patch{Watched: boolPtr(true)})
	require.NoError(t, err)
	assert.False(t, found)

	// nothing was persisted for the no-op
	_, ok, err := store.Get(StateKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestServiceSequentialUpdatesLastWriteWins(t *testing.T) {
	store := NewMemStore()
	svc := NewService(store)
	svc.Load(testCatalog())

	_, _, err := svc.Update("a", Patch{Rating: intPtr(3)})
	require.NoError(t, err)
	_, _, err = svc.Update("a", Patch{Rating: intPtr(5)})
	require.NoError(t, err)

	it, ok := svc.Get("a")
	require.True(t, ok)
	assert.Equal(t, 5, it.Rating)
}

func TestServiceSnapshotIsACopy(t *testing.T) {
	svc := NewService(NewMemStore())
	svc.Load(testCatalog())

	snap := svc.Snapshot()
	snap[0].Watched = true

	it, _ := svc.Get(snap[0].ID)
	assert.False(t, it.Watched, "mutating a snapshot must not leak into the service")
}
