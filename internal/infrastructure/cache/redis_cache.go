// Package cache adaptador Redis para caches cortas de lectura.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chcomputer/almacen-api/internal/application/analytics"
)

var _ analytics.StatsCache = (*RedisCache)(nil)

// RedisCache implementa analytics.StatsCache sobre go-redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache construye la cache con el cliente dado.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get devuelve el valor cacheado, found=false si la clave no existe.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Set guarda el valor con la vigencia dada.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, data, ttl).Err()
}
