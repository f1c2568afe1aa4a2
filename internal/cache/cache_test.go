package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAsideMissThenHit(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *fixture) func() error {
		return func() error {
			calls++
			dest.Name = "fetched"
			dest.Count = calls
			return nil
		}
	}

	var first fixture
	require.NoError(t, Aside(ctx, "test:aside", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "fetched", first.Name)

	// Second read must come from the cache, not the fetcher.
	var second fixture
	require.NoError(t, Aside(ctx, "test:aside", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestAsideFetchErrorNotCached(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	var dest fixture
	wantErr := errors.New("boom")
	err := Aside(ctx, "test:err", &dest, time.Minute, func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)

	found, err := GetJSON(ctx, "test:err", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAsideBypassesWithoutClient(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	calls := 0
	var dest fixture
	for i := 0; i < 2; i++ {
		require.NoError(t, Aside(ctx, "test:nocache", &dest, time.Minute, func() error {
			calls++
			return nil
		}))
	}
	assert.Equal(t, 2, calls)
}

func TestInvalidate(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, ProfileListKey, fixture{Name: "cached"}, time.Minute))

	InvalidateProfileList(ctx)

	var dest fixture
	found, err := GetJSON(ctx, ProfileListKey, &dest)
	require.NoError(t, err)
	assert.False(t, found)
}
