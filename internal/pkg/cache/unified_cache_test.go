package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifiedCache(t *testing.T) {
	t.Run("set then get hits", func(t *testing.T) {
		c := NewUnifiedCache[string](time.Minute, "test", nil)
		defer c.Close()

		c.Set("rome", "### Day 1")
		value, found := c.Get("rome")

		assert.True(t, found)
		assert.Equal(t, "### Day 1", value)
		assert.Equal(t, CacheMetrics{Hits: 1, Sets: 1}, c.GetMetrics())
	})

	t.Run("missing key misses", func(t *testing.T) {
		c := NewUnifiedCache[string](time.Minute, "test", nil)
		defer c.Close()

		_, found := c.Get("paris")
		assert.False(t, found)
		assert.Equal(t, int64(1), c.GetMetrics().Misses)
	})

	t.Run("expired entries are dropped", func(t *testing.T) {
		c := NewUnifiedCache[string](10*time.Millisecond, "test", nil)
		defer c.Close()

		c.Set("rome", "text")
		time.Sleep(30 * time.Millisecond)

		_, found := c.Get("rome")
		assert.False(t, found)
	})

	t.Run("delete and clear", func(t *testing.T) {
		c := NewUnifiedCache[int](time.Minute, "test", nil)
		defer c.Close()

		c.Set("a", 1)
		c.Set("b", 2)
		c.Delete("a")
		assert.Equal(t, 1, c.Size())

		c.Clear()
		assert.Equal(t, 0, c.Size())
	})

	t.Run("close is idempotent", func(t *testing.T) {
		c := NewUnifiedCache[int](time.Minute, "test", nil)
		c.Close()
		assert.NotPanics(t, c.Close)
	})
}

func TestCacheKeyBuilder(t *testing.T) {
	t.Run("interest order and case do not matter", func(t *testing.T) {
		first, err := NewCacheKeyBuilder(nil).AddCity("Rome").AddInterests([]string{"food", "Art"}).Build()
		require.NoError(t, err)
		second, err := NewCacheKeyBuilder(nil).AddCity(" rome ").AddInterests([]string{"art", "food"}).Build()
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("different cities give different keys", func(t *testing.T) {
		rome := NewCacheKeyBuilder(nil).AddCity("Rome").AddInterests([]string{"art"}).BuildOrDefault()
		paris := NewCacheKeyBuilder(nil).AddCity("Paris").AddInterests([]string{"art"}).BuildOrDefault()

		assert.NotEmpty(t, rome)
		assert.NotEqual(t, rome, paris)
	})
}
