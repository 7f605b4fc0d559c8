package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New("redis://"+mr.Addr(), "", time.Minute)
	require.NotNil(t, c)
	return c, mr
}

func TestCache_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	type payload struct {
		Name string `json:"name"`
	}

	t.Run("MissReturnsFalse", func(t *testing.T) {
		var out payload
		found, err := c.GetJSON(ctx, "absent", &out)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("SetThenGet", func(t *testing.T) {
		require.NoError(t, c.SetJSON(ctx, "k", payload{Name: "movies"}))
		var out payload
		found, err := c.GetJSON(ctx, "k", &out)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "movies", out.Name)
	})

	t.Run("DeleteDropsKey", func(t *testing.T) {
		require.NoError(t, c.SetJSON(ctx, "gone", payload{Name: "x"}))
		c.Delete(ctx, "gone")
		var out payload
		found, err := c.GetJSON(ctx, "gone", &out)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("EntriesExpire", func(t *testing.T) {
		require.NoError(t, c.SetJSON(ctx, "ttl", payload{Name: "x"}))
		mr.FastForward(2 * time.Minute)
		var out payload
		found, err := c.GetJSON(ctx, "ttl", &out)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestCache_NilIsDisabled(t *testing.T) {
	ctx := context.Background()
	var c *Cache

	var out struct{}
	found, err := c.GetJSON(ctx, "k", &out)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.SetJSON(ctx, "k", struct{}{}))
	c.Delete(ctx, "k")
	assert.NoError(t, c.Ping(ctx))
}

func TestNew(t *testing.T) {
	assert.Nil(t, New("", "", time.Minute))
	assert.Nil(t, New("not a url", "", time.Minute))

	c, _ := newTestCache(t)
	assert.NoError(t, c.Ping(context.Background()))
}
