// Package cache caché de resultados de consultas de cantidad sobre Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	appsocks "github.com/jhoicas/socks-api/internal/application/socks"
	"github.com/jhoicas/socks-api/pkg/config"
)

var _ appsocks.QuantityCache = (*QuantityCache)(nil)

// NewRedisClient conecta a Redis y verifica la conexión con PING.
// Devuelve (nil, nil) si la caché está desactivada.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return rdb, nil
}

// QuantityCache guarda totales por filtro. Cada clave incluye una generación; Invalidate
// incrementa la generación y deja obsoletas todas las entradas previas (expiran por TTL).
type QuantityCache struct {
	rdb    redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewQuantityCache construye la caché. rdb nil equivale a caché desactivada.
func NewQuantityCache(rdb redis.Cmdable, prefix string, ttl time.Duration) *QuantityCache {
	if prefix == "" {
		prefix = "socks:qty"
	}
	return &QuantityCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

// Enabled indica si hay conexión configurada.
func (c *QuantityCache) Enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *QuantityCache) genKey() string {
	return c.prefix + ":gen"
}

func (c *QuantityCache) entryKey(gen int64, key string) string {
	return fmt.Sprintf("%s:%d:%s", c.prefix, gen, key)
}

func (c *QuantityCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, c.genKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache generation: %w", err)
	}
	return gen, nil
}

// Get devuelve el total guardado para key en la generación vigente y esa generación.
func (c *QuantityCache) Get(ctx context.Context, key string) (int64, bool, int64, error) {
	if !c.Enabled() {
		return 0, false, 0, nil
	}
	gen, err := c.generation(ctx)
	if err != nil {
		return 0, false, 0, err
	}
	raw, err := c.rdb.Get(ctx, c.entryKey(gen, key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, gen, nil
	}
	if err != nil {
		return 0, false, 0, fmt.Errorf("cache get: %w", err)
	}
	qty, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, 0, fmt.Errorf("cache value %q: %w", raw, err)
	}
	return qty, true, gen, nil
}

// Set guarda el total de key bajo la generación gen (la obtenida en Get).
func (c *QuantityCache) Set(ctx context.Context, key string, gen, qty int64) error {
	if !c.Enabled() {
		return nil
	}
	if err := c.rdb.Set(ctx, c.entryKey(gen, key), strconv.FormatInt(qty, 10), c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate pasa a la siguiente generación.
func (c *QuantityCache) Invalidate(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	if err := c.rdb.Incr(ctx, c.genKey()).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
