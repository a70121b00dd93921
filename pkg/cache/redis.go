package cache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	lerrors "github.com/matzehuels/leftysay/pkg/errors"
	"github.com/matzehuels/leftysay/pkg/observability"
)

// DefaultRedisPrefix namespaces every key leftysay writes to redis.
const DefaultRedisPrefix = "leftysay:"

// DefaultRedisTimeout bounds each redis round trip.
const DefaultRedisTimeout = 2 * time.Second

// RedisStore shares the render cache between machines through redis.
//
// Payloads live in plain string keys. A hash records each entry's size and
// a sorted set scored by last use drives LRU eviction. Writes go through a
// MULTI/EXEC pipeline so the payload and its index entries appear together.
type RedisStore struct {
	client   *goredis.Client
	prefix   string
	maxBytes int64
	timeout  time.Duration
	now      func() time.Time
}

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	// URL is the Redis connection URL (required).
	// Format: redis://[:password@]host:port[/db]
	URL      string
	Prefix   string
	MaxBytes int64
	Timeout  time.Duration
}

// NewRedisStore connects to redis and verifies the connection with PING.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if err := lerrors.ValidateRedisURL(cfg.URL); err != nil {
		return nil, err
	}
	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, lerrors.Wrap(lerrors.ErrCodeInvalidConfig, err, "invalid redis_url")
	}

	s := NewRedisStoreFromClient(goredis.NewClient(opts), cfg)

	pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.client.Ping(pingCtx).Err(); err != nil {
		_ = s.client.Close()
		return nil, lerrors.Wrap(lerrors.ErrCodeCacheUnavailable, err, "redis unreachable")
	}
	return s, nil
}

// NewRedisStoreFromClient wraps an existing client. cfg.URL is ignored.
func NewRedisStoreFromClient(client *goredis.Client, cfg RedisConfig) *RedisStore {
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultRedisPrefix
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRedisTimeout
	}
	return &RedisStore{
		client:   client,
		prefix:   cfg.Prefix,
		maxBytes: cfg.MaxBytes,
		timeout:  cfg.Timeout,
		now:      time.Now,
	}
}

func (s *RedisStore) entryKey(key string) string { return s.prefix + "entry:" + key }
func (s *RedisStore) sizesKey() string           { return s.prefix + "sizes" }
func (s *RedisStore) lruKey() string             { return s.prefix + "lru" }

// Get retrieves an entry and bumps its last-used score.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := s.client.Get(ctx, s.entryKey(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		// Drop stale index entries left by an external expiry.
		_, _ = s.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
			p.HDel(ctx, s.sizesKey(), key)
			p.ZRem(ctx, s.lruKey(), key)
			return nil
		})
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	s.client.ZAdd(ctx, s.lruKey(), goredis.Z{Score: s.score(), Member: key})
	return data, true, nil
}

// Set stores an entry, evicting least recently used entries to stay within
// the budget.
func (s *RedisStore) Set(ctx context.Context, key string, data []byte) error {
	size := int64(len(data))
	if size > s.maxBytes {
		return ErrTooLarge
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	sizes, err := s.client.HGetAll(ctx, s.sizesKey()).Result()
	if err != nil {
		return fmt.Errorf("redis sizes: %w", err)
	}
	var total int64
	for member, v := range sizes {
		if member == key {
			continue
		}
		n, _ := strconv.ParseInt(v, 10, 64)
		total += n
	}

	for total+size > s.maxBytes {
		oldest, err := s.client.ZRange(ctx, s.lruKey(), 0, 0).Result()
		if err != nil {
			return fmt.Errorf("redis lru: %w", err)
		}
		var victim string
		if len(oldest) > 0 {
			victim = oldest[0]
		} else if victim = unindexed(sizes, key); victim == "" {
			return ErrTooLarge
		}
		if victim == key {
			s.client.ZRem(ctx, s.lruKey(), victim)
			continue
		}
		n, _ := strconv.ParseInt(sizes[victim], 10, 64)
		if err := s.remove(ctx, victim); err != nil {
			return err
		}
		delete(sizes, victim)
		total -= n
		observability.Cache().OnCacheEvict(ctx, "redis", n)
	}

	_, err = s.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Set(ctx, s.entryKey(key), data, 0)
		p.HSet(ctx, s.sizesKey(), key, size)
		p.ZAdd(ctx, s.lruKey(), goredis.Z{Score: s.score(), Member: key})
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// unindexed picks a sized entry other than keep, for when the LRU set has
// run dry before the size index. Returns "" when none is left.
func unindexed(sizes map[string]string, keep string) string {
	members := make([]string, 0, len(sizes))
	for m := range sizes {
		if m != keep {
			members = append(members, m)
		}
	}
	if len(members) == 0 {
		return ""
	}
	sort.Strings(members)
	return members[0]
}

// Delete removes an entry and its index records.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.remove(ctx, key)
}

func (s *RedisStore) remove(ctx context.Context, key string) error {
	_, err := s.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Del(ctx, s.entryKey(key))
		p.HDel(ctx, s.sizesKey(), key)
		p.ZRem(ctx, s.lruKey(), key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}

// Stats totals the size index.
func (s *RedisStore) Stats(ctx context.Context) (Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	sizes, err := s.client.HGetAll(ctx, s.sizesKey()).Result()
	if err != nil {
		return Stats{}, fmt.Errorf("redis stats: %w", err)
	}

	st := Stats{
		Backend:  "redis",
		Location: s.client.Options().Addr,
		Entries:  len(sizes),
		MaxBytes: s.maxBytes,
	}
	for _, v := range sizes {
		n, _ := strconv.ParseInt(v, 10, 64)
		st.Bytes += n
	}

	oldest, err := s.client.ZRangeWithScores(ctx, s.lruKey(), 0, 0).Result()
	if err == nil && len(oldest) > 0 {
		st.Oldest = time.Unix(0, int64(oldest[0].Score))
	}
	return st, nil
}

// Clear removes every entry under the prefix.
func (s *RedisStore) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	members, err := s.client.HKeys(ctx, s.sizesKey()).Result()
	if err != nil {
		return fmt.Errorf("redis clear: %w", err)
	}

	keys := make([]string, 0, len(members)+2)
	for _, m := range members {
		keys = append(keys, s.entryKey(m))
	}
	keys = append(keys, s.sizesKey(), s.lruKey())

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis clear: %w", err)
	}
	return nil
}

// Close releases the redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) score() float64 {
	return float64(s.now().UnixNano())
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
