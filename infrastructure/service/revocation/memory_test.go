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

func TestMemoryRegistry_RevokeAndCheck(t *testing.T) {
	r := NewMemoryRegistry(time.Minute)
	defer r.Close()
	ctx := context.Background()

	revoked, err := r.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "token-a", time.Hour))

	revoked, err = r.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Other tokens are unaffected.
	revoked, err = r.IsRevoked(ctx, "token-b")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryRegistry_ExpiredEntryNotRevoked(t *testing.T) {
	r := NewMemoryRegistry(time.Minute)
	defer r.Close()
	ctx := context.Background()

	require.NoError(t, r.Revoke(ctx, "stale", 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	revoked, err := r.IsRevoked(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryRegistry_ZeroTTLIgnored(t *testing.T) {
	r := NewMemoryRegistry(time.Minute)
	defer r.Close()
	ctx := context.Background()

	require.NoError(t, r.Revoke(ctx, "already-expired", 0))
	assert.Equal(t, 0, r.size())
}

func TestMemoryRegistry_JanitorPrunes(t *testing.T) {
	r := NewMemoryRegistry(20 * time.Millisecond)
	defer r.Close()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, r.Revoke(ctx, fmt.Sprintf("token-%d", i), 10*time.Millisecond))
	}
	require.NoError(t, r.Revoke(ctx, "long-lived", time.Hour))

	assert.Eventually(t, func() bool {
		return r.size() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryRegistry_ConcurrentAccess(t *testing.T) {
	r := NewMemoryRegistry(time.Minute)
	defer r.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		token := fmt.Sprintf("token-%d", i)
		go func() {
			defer wg.Done()
			_ = r.Revoke(ctx, token, time.Hour)
		}()
		go func() {
			defer wg.Done()
			_, _ = r.IsRevoked(ctx, token)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, r.size())
}
