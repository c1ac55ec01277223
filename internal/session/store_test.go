package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set, skipping session store tests")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("ping redis: %v", err)
	}
	return NewStore(client, time.Minute)
}

func TestStore_RoundTrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	ident := Identity{UserID: uuid.New(), Username: "alice", IsAdmin: true}
	token, err := store.Create(ctx, ident)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := store.Get(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, ident, *got)
}

func TestStore_UnknownToken(t *testing.T) {
	store := testStore(t)

	got, err := store.Get(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_Delete(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, Identity{UserID: uuid.New(), Username: "bob"})
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, token))

	got, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, got)
}
