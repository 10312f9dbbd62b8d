package redisstore

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestMarkers connects to PATHWISE_TEST_REDIS_URL and isolates the test
// under its own key.
func openTestMarkers(t *testing.T) *Markers {
	t.Helper()
	url := os.Getenv("PATHWISE_TEST_REDIS_URL")
	if url == "" {
		t.Skip("PATHWISE_TEST_REDIS_URL not set")
	}
	m, err := New(url)
	require.NoError(t, err)
	m.key = "pathwise_test:" + t.Name()
	t.Cleanup(func() {
		m.client.Del(context.Background(), m.key)
		m.Close()
	})
	return m
}

func TestNew_BadURL(t *testing.T) {
	_, err := New("not-a-url")
	assert.Error(t, err)
}

func TestNewWithClient_UsesSharedKey(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	m := NewWithClient(client)
	assert.Equal(t, "new_unlocks", m.key)
}

func TestMarkers_AddIsIdempotent(t *testing.T) {
	m := openTestMarkers(t)
	ctx := context.Background()

	require.NoError(t, m.Add(ctx, "title_42"))
	require.NoError(t, m.Add(ctx, "title_42"))
	require.NoError(t, m.Add(ctx, "title_7"))

	got, err := m.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"title_42", "title_7"}, got)

	ok, err := m.Contains(ctx, "title_42")
	require.NoError(t, err)
	assert.True(t, ok)

	raw, err := m.client.Get(ctx, m.key).Result()
	require.NoError(t, err)
	assert.JSONEq(t, `["title_42","title_7"]`, raw)
}

func TestMarkers_EmptySet(t *testing.T) {
	m := openTestMarkers(t)

	ok, err := m.Contains(context.Background(), "title_1")
	require.NoError(t, err)
	assert.False(t, ok)
}
