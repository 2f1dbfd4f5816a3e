package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/waypoint/pkg/adapters/redis"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunDocumentStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	id := "doc-ttl"

	require.NoError(t, store.Save(ctx, id, []byte("payload")))

	ids, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, ids, id)

	// Expire the key inside miniredis.
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, id)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)

	// The index is pruned against the wall clock.
	time.Sleep(1200 * time.Millisecond)

	ids, err = store.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "my-doc", []byte{0x0a, 0x00}))

	assert.True(t, mr.Exists("custom:app:doc:my-doc"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	got, err := store.Load(ctx, "my-doc")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0x00}, got, "binary payloads survive")

	ids, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"my-doc"}, ids)
	assert.Same(t, client, store.Client())
}

func TestRedisStore_IndexIDDoesNotClobberIndex(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "index", []byte("a")))
	require.NoError(t, store.Save(ctx, "other", []byte("b")))
	assert.True(t, mr.Exists("waypoint:doc:index"))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"index", "other"}, ids)

	got, err := store.Load(ctx, "index")
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), got)
}
