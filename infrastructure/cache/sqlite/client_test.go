package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestClient_SetGetDelete(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	key := "corpus:justdataplease:10"
	value := []byte(`{"articles":[]}`)

	require.NoError(t, client.Set(ctx, key, value, time.Hour))

	got, err := client.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, value, got)

	require.NoError(t, client.Delete(ctx, key))
	_, err = client.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestClient_ExpiredEntryIsMiss(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "short", []byte("v"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err := client.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestClient_ZeroTTLNeverExpires(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "forever", []byte("v"), 0))
	client.cleanup()

	got, err := client.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestClient_KeyAndValueValidation(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	assert.Error(t, client.Set(ctx, "", []byte("v"), time.Hour))
	assert.Error(t, client.Set(ctx, strings.Repeat("k", maxKeyLength+1), []byte("v"), time.Hour))
	assert.Error(t, client.Set(ctx, "k", nil, time.Hour))
	_, err := client.Get(ctx, "")
	assert.Error(t, err)
}

func TestClient_KeysAreParameterized(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	key := "corpus:x';DROP TABLE cache;--:0"
	require.NoError(t, client.Set(ctx, key, []byte("v"), time.Hour))
	require.NoError(t, client.Set(ctx, "other", []byte("w"), time.Hour))

	got, err := client.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	got, err = client.Get(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, []byte("w"), got)
}

func TestClient_Clear(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "a", []byte("1"), time.Hour))
	require.NoError(t, client.Set(ctx, "b", []byte("2"), time.Hour))
	require.NoError(t, client.Clear(ctx))

	_, err := client.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
