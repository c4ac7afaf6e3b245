package revocation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySetAddContains(t *testing.T) {
	s := NewMemorySet()
	ctx := context.Background()

	ok, err := s.Contains(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Add(ctx, "jti-1", time.Now().Add(time.Hour)))

	ok, err = s.Contains(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Contains(ctx, "jti-other")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemorySetExpiredEntryNotContained(t *testing.T) {
	s := NewMemorySet()
	ctx := context.Background()

	// An already-expired revocation is a no-op; exp handles the token.
	require.NoError(t, s.Add(ctx, "dead", time.Now().Add(-time.Minute)))
	ok, err := s.Contains(ctx, "dead")
	require.NoError(t, err)
	assert.False(t, ok)

	// A live entry stops matching once its deadline passes.
	require.NoError(t, s.Add(ctx, "short", time.Now().Add(20*time.Millisecond)))
	time.Sleep(40 * time.Millisecond)
	ok, err = s.Contains(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemorySetPrunesOnAdd(t *testing.T) {
	s := NewMemorySet()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, s.Add(ctx, fmt.Sprintf("old-%d", i), time.Now().Add(10*time.Millisecond)))
	}
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, s.Add(ctx, "fresh", time.Now().Add(time.Hour)))

	s.mu.RLock()
	defer s.mu.RUnlock()
	assert.Len(t, s.entries, 1, "expired entries should be dropped by the next Add")
}

func TestMemorySetConcurrent(t *testing.T) {
	s := NewMemorySet()
	ctx := context.Background()
	until := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			jti := fmt.Sprintf("jti-%d", n)
			_ = s.Add(ctx, jti, until)
			for j := 0; j < 50; j++ {
				_, _ = s.Contains(ctx, jti)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 16; i++ {
		ok, err := s.Contains(ctx, fmt.Sprintf("jti-%d", i))
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
