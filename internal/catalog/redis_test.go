package catalog

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rdb.Close() })
	return &RedisCache{RDB: rdb}, mr
}

func ids(items []Product) []int {
	out := make([]int, len(items))
	for i, p := range items {
		out[i] = p.ID
	}
	return out
}

func TestRedisCache_FillAndRange(t *testing.T) {
	ctx := context.Background()
	cache, _ := newRedisCache(t)

	n, err := cache.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, cache.Fill(ctx, All()))
	n, err = cache.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(51), n)

	tests := []struct {
		name          string
		offset, limit int
		want          []int
	}{
		{name: "first page", offset: 0, limit: 3, want: []int{1, 2, 3}},
		{name: "middle", offset: 10, limit: 5, want: []int{11, 12, 13, 14, 15}},
		{name: "tail", offset: 48, limit: 10, want: []int{49, 50, 51}},
		{name: "past end", offset: 60, limit: 10, want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := cache.Range(ctx, tt.offset, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(items))
		})
	}

	items, err := cache.Range(ctx, 0, 1)
	require.NoError(t, err)
	orig, _ := Find(1)
	assert.Equal(t, orig, items[0])
}

func TestRedisCache_FillReplaces(t *testing.T) {
	ctx := context.Background()
	cache, _ := newRedisCache(t)

	require.NoError(t, cache.Fill(ctx, All()))
	require.NoError(t, cache.Fill(ctx, All()[:3]))

	n, err := cache.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestRedisCache_SkipsUndecodableMembers(t *testing.T) {
	ctx := context.Background()
	cache, mr := newRedisCache(t)

	require.NoError(t, cache.Fill(ctx, All()[:2]))
	_, err := mr.ZAdd(productsKey, 1.5, "not-json")
	require.NoError(t, err)

	items, err := cache.Range(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids(items))
}

func TestCatalog_ListThroughRedis(t *testing.T) {
	ctx := context.Background()
	cache, mr := newRedisCache(t)
	c := &Catalog{Cache: cache}

	res, err := c.List(ctx, "", 2, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(51), res.Total)
	assert.Equal(t, []int{6, 7, 8, 9, 10}, ids(res.Items))
	assert.True(t, mr.Exists(productsKey))

	res, err = c.List(ctx, "", 1_000_000, 5)
	require.NoError(t, err)
	assert.Empty(t, res.Items)

	mr.Close()
	res, err = c.List(ctx, "", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids(res.Items))
}
