package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lingobridge/lingobridge"
)

// RedisCache is a Redis-backed record cache. Records are stored as JSON under
// a prefixed key with a server-side TTL, so expiry needs no sweeping and the
// hot set survives process restarts. Redis does not enforce the memory
// cache's capacity bound; use maxmemory policies on the server for that.
type RedisCache struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
}

// RedisConfig holds configuration for the Redis cache.
type RedisConfig struct {
	URL       string        // Redis connection URL (e.g., "redis://localhost:6379")
	TTL       time.Duration // Entry lifetime (0 = no expiration)
	KeyPrefix string        // Prefix for all keys (default: "lingobridge:relay:")
}

// NewRedisCache creates a new Redis cache with the given configuration.
func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewRedisCacheFromClient(client, cfg.TTL, cfg.KeyPrefix), nil
}

// NewRedisCacheFromClient creates a RedisCache from an existing Redis client.
func NewRedisCacheFromClient(client *redis.Client, ttl time.Duration, keyPrefix string) *RedisCache {
	if keyPrefix == "" {
		keyPrefix = "lingobridge:relay:"
	}
	if ttl < 0 {
		ttl = 0
	}

	return &RedisCache{
		client:    client,
		ttl:       ttl,
		keyPrefix: keyPrefix,
	}
}

// Get retrieves a record from Redis.
func (c *RedisCache) Get(key int64) (lingobridge.TranslationRecord, bool) {
	ctx := context.Background()
	val, err := c.client.Get(ctx, c.redisKey(key)).Result()
	if err != nil {
		// redis.Nil and transport errors are both cache misses; the store
		// remains the source of truth.
		return lingobridge.TranslationRecord{}, false
	}

	var rec lingobridge.TranslationRecord
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return lingobridge.TranslationRecord{}, false
	}
	return rec, true
}

// Put stores a record in Redis with the configured TTL.
func (c *RedisCache) Put(key int64, rec lingobridge.TranslationRecord) {
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}

	ctx := context.Background()
	_ = c.client.Set(ctx, c.redisKey(key), data, c.ttl).Err()
}

// Remove evicts a key unconditionally.
func (c *RedisCache) Remove(key int64) {
	ctx := context.Background()
	_ = c.client.Del(ctx, c.redisKey(key)).Err()
}

// Sweep is a no-op: Redis expires entries server-side.
func (c *RedisCache) Sweep() int {
	return 0
}

// Clear removes all entries under the cache's key prefix.
func (c *RedisCache) Clear() {
	ctx := context.Background()
	iter := c.client.Scan(ctx, 0, c.keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		_ = c.client.Del(ctx, iter.Val()).Err()
	}
}

// Size returns the number of live entries under the cache's key prefix.
func (c *RedisCache) Size() int {
	ctx := context.Background()
	count := 0
	iter := c.client.Scan(ctx, 0, c.keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		count++
	}
	return count
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping tests the Redis connection.
func (c *RedisCache) Ping() error {
	ctx := context.Background()
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) redisKey(key int64) string {
	return c.keyPrefix + strconv.FormatInt(key, 10)
}

// Verify RedisCache implements RecordCache
var _ RecordCache = (*RedisCache)(nil)
