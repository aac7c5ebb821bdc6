package nasa

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheHitWithinTTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewMemoryCache(time.Hour, clock)

	c.Set("feed?start_date=2024-01-01", json.RawMessage(`{"a":1}`))

	clock.Advance(59 * time.Minute)
	data, ok := c.Get("feed?start_date=2024-01-01")
	require.True(t, ok)
	assert.JSONEq(t, `{"a":1}`, string(data))
}

func TestMemoryCacheMissAfterTTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewMemoryCache(time.Hour, clock)

	c.Set("k", json.RawMessage(`1`))
	clock.Advance(time.Hour)

	_, ok := c.Get("k")
	assert.False(t, ok)
	// Stale entries are not swept; they are only overwritten.
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCacheOverwriteRefreshesTimestamp(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewMemoryCache(time.Hour, clock)

	c.Set("k", json.RawMessage(`1`))
	clock.Advance(50 * time.Minute)
	c.Set("k", json.RawMessage(`2`))
	clock.Advance(50 * time.Minute)

	data, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "2", string(data))
}

func TestMemoryCacheClear(t *testing.T) {
	c := NewMemoryCache(time.Hour, clockwork.NewFakeClock())

	c.Set("a", json.RawMessage(`1`))
	c.Set("b", json.RawMessage(`2`))
	c.Clear()

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCacheMissOnUnknownKey(t *testing.T) {
	c := NewMemoryCache(time.Hour, clockwork.NewFakeClock())
	_, ok := c.Get("missing")
	assert.False(t, ok)
}
