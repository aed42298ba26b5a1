package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/socks-api/internal/infrastructure/cache"
	"github.com/jhoicas/socks-api/pkg/config"
)

const (
	prefix = "test:qty"
	ttl    = time.Minute
	filter = `color="red"|cmp=-|cotton=-|min=-|max=-`
)

func TestQuantityCache_Disabled(t *testing.T) {
	ctx := context.Background()
	c := cache.NewQuantityCache(nil, prefix, ttl)

	assert.False(t, c.Enabled())
	_, found, _, err := c.Get(ctx, filter)
	require.NoError(t, err)
	assert.False(t, found, "caché desactivada nunca encuentra")
	assert.NoError(t, c.Set(ctx, filter, 0, 10))
	assert.NoError(t, c.Invalidate(ctx))
}

func TestNewRedisClient_Disabled(t *testing.T) {
	rdb, err := cache.NewRedisClient(context.Background(), config.RedisConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestQuantityCache_MissThenSet(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	c := cache.NewQuantityCache(db, prefix, ttl)

	mock.ExpectGet(prefix + ":gen").RedisNil()
	mock.ExpectGet(prefix + ":0:" + filter).RedisNil()
	mock.ExpectSet(prefix+":0:"+filter, "42", ttl).SetVal("OK")

	_, found, gen, err := c.Get(ctx, filter)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, int64(0), gen, "sin clave de generación se usa la 0")

	require.NoError(t, c.Set(ctx, filter, gen, 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuantityCache_HitOnCurrentGeneration(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	c := cache.NewQuantityCache(db, prefix, ttl)

	mock.ExpectGet(prefix + ":gen").SetVal("3")
	mock.ExpectGet(prefix + ":3:" + filter).SetVal("17")

	qty, found, gen, err := c.Get(ctx, filter)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(17), qty)
	assert.Equal(t, int64(3), gen)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuantityCache_InvalidateBumpsGeneration(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	c := cache.NewQuantityCache(db, prefix, ttl)

	mock.ExpectIncr(prefix + ":gen").SetVal(4)
	mock.ExpectGet(prefix + ":gen").SetVal("4")
	mock.ExpectGet(prefix + ":4:" + filter).RedisNil()

	require.NoError(t, c.Invalidate(ctx))
	_, found, gen, err := c.Get(ctx, filter)
	require.NoError(t, err)
	assert.False(t, found, "tras invalidar, las entradas previas no se leen")
	assert.Equal(t, int64(4), gen)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuantityCache_Errors(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	c := cache.NewQuantityCache(db, prefix, ttl)

	mock.ExpectGet(prefix + ":gen").SetErr(errors.New("connection refused"))
	_, _, _, err := c.Get(ctx, filter)
	assert.ErrorContains(t, err, "cache generation")

	mock.ExpectGet(prefix + ":gen").SetVal("1")
	mock.ExpectGet(prefix + ":1:" + filter).SetVal("no-es-numero")
	_, found, _, err := c.Get(ctx, filter)
	assert.Error(t, err)
	assert.False(t, found)

	mock.ExpectIncr(prefix + ":gen").SetErr(errors.New("READONLY"))
	assert.ErrorContains(t, c.Invalidate(ctx), "cache invalidate")
	assert.NoError(t, mock.ExpectationsWereMet())
}
