package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// This test file lives in the cache package (not cache_test) so it can pin
// the clock via the unexported now field.

func TestTTL_SetGet(t *testing.T) {
	c := NewTTL[string](time.Minute)

	c.Set("spain", "cached")

	got, ok := c.Get("spain")
	require.True(t, ok)
	assert.Equal(t, "cached", got)
}

func TestTTL_MissingKey(t *testing.T) {
	c := NewTTL[string](time.Minute)

	_, ok := c.Get("nowhere")

	assert.False(t, ok)
}

func TestTTL_ExpiredEntryIsMissAndEvicted(t *testing.T) {
	c := NewTTL[int](time.Minute)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }
	c.Set("k", 42)

	// One second past expiry.
	c.now = func() time.Time { return base.Add(time.Minute + time.Second) }

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry should be evicted on read")
}

func TestTTL_SetResetsExpiry(t *testing.T) {
	c := NewTTL[int](time.Minute)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }
	c.Set("k", 1)

	// Refresh just before expiry, then read just after the original deadline.
	c.now = func() time.Time { return base.Add(59 * time.Second) }
	c.Set("k", 2)

	c.now = func() time.Time { return base.Add(90 * time.Second) }
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, got)
}

func TestTTL_ZeroTTLNeverExpires(t *testing.T) {
	c := NewTTL[int](0)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }
	c.Set("k", 7)

	c.now = func() time.Time { return base.Add(24 * 365 * time.Hour) }
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 7, got)
}

func TestTTL_Invalidate(t *testing.T) {
	c := NewTTL[int](time.Minute)
	c.Set("k", 1)

	c.Invalidate("k")

	_, ok := c.Get("k")
	assert.False(t, ok)
}
