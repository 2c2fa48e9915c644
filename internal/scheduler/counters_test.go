package scheduler

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *CounterStore {
	t.Helper()
	store, err := OpenCounterStore(filepath.Join(t.TempDir(), "metrics.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCounterStoreLoadEmpty(t *testing.T) {
	store := openTestStore(t)

	counters, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Counters{}, counters)
}

func TestCounterStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)

	counters := Counters{}
	counters.Observe(true, 120*time.Millisecond)
	counters.Observe(false, 80*time.Millisecond)
	require.NoError(t, store.Save(counters))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, int64(2), loaded.Attempts)
	assert.Equal(t, int64(1), loaded.Successes)
	assert.Equal(t, int64(1), loaded.Failures)
	assert.Equal(t, int64(80), loaded.LastDurationMS)
}

func TestCountersObserve(t *testing.T) {
	var c Counters
	c.Observe(true, 50*time.Millisecond)
	c.Observe(true, 75*time.Millisecond)
	c.Observe(false, time.Second)

	assert.Equal(t, int64(3), c.Attempts)
	assert.Equal(t, int64(2), c.Successes)
	assert.Equal(t, int64(1), c.Failures)
	assert.Equal(t, int64(1000), c.LastDurationMS)
}
