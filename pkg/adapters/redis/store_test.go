package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/algoviz/pkg/adapters/redis"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports/tests"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	tests.PageStoreContractTest(t, redis.NewFromClient(client))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	now := time.Now()
	store := redis.NewFromClient(client,
		redis.WithTTL(time.Second),
		redis.WithClock(func() time.Time { return now }),
	)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.PageRecord{ID: "page-ttl", Algorithm: "BST"}))

	pages, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, pages, "page-ttl")

	mr.FastForward(2 * time.Second)
	now = now.Add(2 * time.Second)

	_, err = store.Load(ctx, "page-ttl")
	assert.ErrorIs(t, err, domain.ErrPageNotFound)

	pages, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.PageRecord{ID: "my-page"}))

	assert.True(t, mr.Exists("custom:app:my-page"), "record key uses the prefix")
	assert.True(t, mr.Exists("custom:app:index"), "index key uses the prefix")

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"my-page"}, list)
	assert.NoError(t, store.Ping(ctx))
}

func TestRedisStore_DefaultPrefix(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)

	require.NoError(t, store.Save(context.Background(), &domain.PageRecord{ID: "p"}))
	assert.True(t, mr.Exists(redis.DefaultPrefix+"p"))
}
