package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCache returns a cache with a controllable clock.
func newTestCache() (*Cache, *time.Time) {
	now := time.Now()
	c := New()
	c.now = func() time.Time { return now }
	return c, &now
}

func TestGetSet(t *testing.T) {
	c, _ := newTestCache()

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("key", "value", time.Minute)
	value, ok := c.Get("key")
	require.True(t, ok)
	assert.Equal(t, "value", value)

	assert.Equal(t, 1, c.Size())

	c.Remove("key")
	_, ok = c.Get("key")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c, now := newTestCache()

	c.Set("short", "a", 5*time.Minute)
	c.Set("long", "b", time.Hour)

	*now = now.Add(10 * time.Minute)

	_, ok := c.Get("short")
	assert.False(t, ok, "expired entry must report a miss")

	value, ok := c.Get("long")
	require.True(t, ok)
	assert.Equal(t, "b", value)

	assert.Equal(t, 1, c.Size())
}

func TestClear(t *testing.T) {
	c, _ := newTestCache()

	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)
	require.Equal(t, 2, c.Size())

	c.Clear()
	assert.Equal(t, 0, c.Size())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestGetOrSet(t *testing.T) {
	c, now := newTestCache()

	calls := 0
	compute := func() (any, error) {
		calls++
		return "computed", nil
	}

	// Miss invokes compute once
	value, err := c.GetOrSet("key", 5*time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, "computed", value)
	assert.Equal(t, 1, calls)

	// Hit skips compute
	value, err = c.GetOrSet("key", 5*time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, "computed", value)
	assert.Equal(t, 1, calls)

	// Expiry makes it a miss again
	*now = now.Add(10 * time.Minute)
	_, err = c.GetOrSet("key", 5*time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGetOrSet_ComputeFailure(t *testing.T) {
	c, _ := newTestCache()

	boom := errors.New("backend down")
	_, err := c.GetOrSet("key", time.Minute, func() (any, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	// Failed compute stores nothing
	assert.Equal(t, 0, c.Size())

	// The next call computes again
	value, err := c.GetOrSet("key", time.Minute, func() (any, error) {
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", value)
}

func TestGetOrSetTyped(t *testing.T) {
	c, _ := newTestCache()

	type result struct{ Answer string }

	value, err := GetOrSetTyped(c, "key", time.Minute, func() (*result, error) {
		return &result{Answer: "42"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "42", value.Answer)

	// Hit returns the typed value without recomputing
	value, err = GetOrSetTyped(c, "key", time.Minute, func() (*result, error) {
		t.Fatal("compute must not run on a hit")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "42", value.Answer)

	// A value of the wrong type under the same key is recomputed
	c.Set("key", 123, time.Minute)
	value, err = GetOrSetTyped(c, "key", time.Minute, func() (*result, error) {
		return &result{Answer: "recomputed"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recomputed", value.Answer)
}
