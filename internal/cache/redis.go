package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "showfinder:"
	redisOpTimeout   = 2 * time.Second
)

func init() {
	Register("redis", newRedisCache)
}

// redisCache keeps every entry of one cache in two Redis keys:
//
//   - {prefix}data, a hash of key -> value with a per-field TTL (HPEXPIRE,
//     Redis 7.4+ or Valkey 8+);
//   - {prefix}lru, a sorted set of key -> last access in microseconds.
//
// Reads and writes go through Lua scripts so that touching and evicting are
// atomic across instances sharing the server. Sorted-set members whose hash
// field already expired are dropped the next time eviction runs.
type redisCache struct {
	client  *redis.Client
	ttl     time.Duration
	maxSize int
	onEvict EvictCallback
	logger  Logger
	dataKey string
	lruKey  string
}

// KEYS[1] = data hash, KEYS[2] = LRU set; ARGV[1] = now (µs), ARGV[2] = key.
var getAndTouch = redis.NewScript(`
local val = redis.call('HGET', KEYS[1], ARGV[2])
if val then
    redis.call('ZADD', KEYS[2], ARGV[1], ARGV[2])
end
return val
`)

// KEYS[1] = data hash, KEYS[2] = LRU set
// ARGV[1] = value, ARGV[2] = now (µs), ARGV[3] = key, ARGV[4] = max size, ARGV[5] = TTL (ms)
// Returns the evicted keys.
var setAndEvict = redis.NewScript(`
local key     = ARGV[3]
local maxSize = tonumber(ARGV[4])

redis.call('HSET', KEYS[1], key, ARGV[1])
redis.call('HPEXPIRE', KEYS[1], tonumber(ARGV[5]), 'FIELDS', 1, key)
redis.call('ZADD', KEYS[2], ARGV[2], key)

local evicted = {}
local size = redis.call('ZCARD', KEYS[2])
while size > maxSize do
    local oldest = redis.call('ZPOPMIN', KEYS[2], 1)
    if #oldest == 0 then break end
    redis.call('HDEL', KEYS[1], oldest[1])
    table.insert(evicted, oldest[1])
    size = size - 1
end
return evicted
`)

func newRedisCache(cfg ProviderConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &redisCache{
		client:  client,
		ttl:     cfg.TTL,
		maxSize: cfg.Size,
		onEvict: cfg.OnEvict,
		logger:  cfg.Logger,
		dataKey: prefix + "data",
		lruKey:  prefix + "lru",
	}, nil
}

func (r *redisCache) keys() []string {
	return []string{r.dataKey, r.lruKey}
}

func (r *redisCache) logError(msg string, err error) {
	if r.logger != nil {
		r.logger.Error(msg, err)
	}
}

func now() string {
	return strconv.FormatInt(time.Now().UnixMicro(), 10)
}

func (r *redisCache) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	result, err := getAndTouch.Run(ctx, r.client, r.keys(), now(), key).Text()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logError("redis cache Get failed", err)
		}
		return nil, false
	}
	return []byte(result), true
}

func (r *redisCache) Set(key string, value []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	evicted, err := setAndEvict.Run(ctx, r.client, r.keys(),
		value, now(), key, strconv.Itoa(r.maxSize), strconv.FormatInt(r.ttl.Milliseconds(), 10),
	).StringSlice()
	if err != nil {
		r.logError("redis cache Set failed", err)
		return
	}

	if r.onEvict == nil {
		return
	}
	for _, k := range evicted {
		r.onEvict(k, nil)
	}
}

func (r *redisCache) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, r.dataKey, key)
		pipe.ZRem(ctx, r.lruKey, key)
		return nil
	})
	if err != nil {
		r.logError("redis cache Delete failed", err)
	}
}

func (r *redisCache) Contains(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	ok, err := r.client.HExists(ctx, r.dataKey, key).Result()
	if err != nil {
		r.logError("redis cache Contains failed", err)
		return false
	}
	return ok
}

func (r *redisCache) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	n, err := r.client.HLen(ctx, r.dataKey).Result()
	if err != nil {
		r.logError("redis cache Len failed", err)
		return 0
	}
	return int(n)
}

func (r *redisCache) Close() error {
	return r.client.Close()
}
