package cachedresults

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache stores JSON encoded provider answers. A nil *Cache is valid and never hits.
type Cache struct {
	Cache *cache.Cache[string]

	Prefix string
}

func New(client *redis.Client, prefix string, expiration time.Duration) *Cache {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	return NewWithStore(redisStore, prefix)
}

func NewWithStore(cacheStore store.StoreInterface, prefix string) *Cache {
	return &Cache{
		Cache:  cache.New[string](cacheStore),
		Prefix: prefix,
	}
}

func (c *Cache) key(key string) string {
	return c.Prefix + key
}

// Get decodes the cached value for key into v and reports whether there was one
func (c *Cache) Get(ctx context.Context, key string, v any) bool {
	if c == nil || c.Cache == nil {
		return false
	}

	cachedValue, err := c.Cache.Get(ctx, c.key(key))
	if err != nil || cachedValue == "" {
		return false
	}

	if err := json.Unmarshal([]byte(cachedValue), v); err != nil {
		log.Warn().Err(err).Str("key", c.key(key)).Msg("Discarding unreadable cached value")
		return false
	}

	return true
}

// Set stores v under key, failures are logged and otherwise ignored
func (c *Cache) Set(ctx context.Context, key string, v any, expiration time.Duration) {
	if c == nil || c.Cache == nil {
		return
	}

	encoded, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Str("key", c.key(key)).Msg("Failed to encode value for cache")
		return
	}

	var options []store.Option
	if expiration > 0 {
		options = append(options, store.WithExpiration(expiration))
	}

	if err := c.Cache.Set(ctx, c.key(key), string(encoded), options...); err != nil {
		log.Warn().Err(err).Str("key", c.key(key)).Msg("Failed to write cache")
	}
}
