package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
	got, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	now = now.Add(time.Minute)
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreZeroTTLKeeps(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "k", []byte("v"), 0))

	s.now = func() time.Time { return time.Now().Add(24 * time.Hour) }
	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStoreCounter(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	n, err := s.Counter(ctx, "gen")
	require.NoError(t, err)
	assert.Zero(t, n)

	for i := 1; i <= 3; i++ {
		n, err = s.Incr(ctx, "gen")
		require.NoError(t, err)
		assert.Equal(t, int64(i), n)
	}
}

func TestMemoryStoreSetNX(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	ok, err := s.SetNX(ctx, "k", []byte("first"), time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.SetNX(ctx, "k", []byte("second"), time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
	got, _, _ := s.Get(ctx, "k")
	assert.Equal(t, []byte("first"), got)

	now = now.Add(time.Minute)
	ok, err = s.SetNX(ctx, "k", []byte("third"), time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Delete(ctx, "k"))
	ok, err = s.SetNX(ctx, "k", []byte("fourth"), 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStoreSetNXSingleWinner(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.SetNX(ctx, "race", []byte("x"), time.Minute)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	type report struct {
		Total float64 `json:"total"`
	}
	require.NoError(t, SetJSON(ctx, s, "r", report{Total: 12.5}, time.Minute))

	var got report
	ok, err := GetJSON(ctx, s, "r", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 12.5, got.Total)

	ok, err = GetJSON(ctx, s, "missing", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}
