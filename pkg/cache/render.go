package cache

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/leftysay/pkg/block"
	lerrors "github.com/matzehuels/leftysay/pkg/errors"
	"github.com/matzehuels/leftysay/pkg/observability"
)

// RenderCache memoizes rendered image blocks in a Store.
//
// Storage problems never fail a render: they are logged as CACHE_UNAVAILABLE
// and the block is computed directly. Undecodable entries are deleted and
// treated as misses.
type RenderCache struct {
	store   Store
	enabled bool
	logger  *log.Logger
}

// NewRenderCache wraps store. A nil store or enabled=false turns the cache
// into a pass-through that always computes.
func NewRenderCache(store Store, enabled bool, logger *log.Logger) *RenderCache {
	if store == nil {
		store = NewNullStore()
		enabled = false
	}
	if logger == nil {
		logger = log.Default()
	}
	return &RenderCache{store: store, enabled: enabled, logger: logger}
}

// Enabled reports whether lookups and writes reach the store.
func (c *RenderCache) Enabled() bool {
	return c.enabled
}

// Store returns the underlying store.
func (c *RenderCache) Store() Store {
	return c.store
}

// GetOrCompute returns the cached block for key, or runs compute and stores
// its result. The bool reports a cache hit. compute's error is returned
// unchanged and nothing is stored for it.
func (c *RenderCache) GetOrCompute(ctx context.Context, key string, compute func(context.Context) (block.Block, error)) (block.Block, bool, error) {
	keyType := KeyType(key)

	if c.enabled {
		if b, ok := c.lookup(ctx, key); ok {
			observability.Cache().OnCacheHit(ctx, keyType)
			return b, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, keyType)
	}

	b, err := compute(ctx)
	if err != nil {
		return block.Block{}, false, err
	}

	if c.enabled {
		c.save(ctx, key, b)
	}
	return b, false, nil
}

func (c *RenderCache) lookup(ctx context.Context, key string) (block.Block, bool) {
	data, hit, err := c.store.Get(ctx, key)
	if err != nil {
		c.degrade(ctx, "get", err)
		return block.Block{}, false
	}
	if !hit {
		return block.Block{}, false
	}

	b, err := block.Decode(data)
	if err != nil {
		c.logger.Debug("dropping unreadable cache entry", "key", key, "err", err)
		_ = c.store.Delete(ctx, key)
		return block.Block{}, false
	}
	return b, true
}

func (c *RenderCache) save(ctx context.Context, key string, b block.Block) {
	data, err := block.Encode(b)
	if err != nil {
		c.degrade(ctx, "encode", err)
		return
	}
	if err := c.store.Set(ctx, key, data); err != nil {
		if errors.Is(err, ErrTooLarge) {
			c.logger.Debug("render too large to cache", "key", key, "bytes", len(data))
			return
		}
		c.degrade(ctx, "set", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, KeyType(key), len(data))
}

func (c *RenderCache) degrade(ctx context.Context, op string, err error) {
	err = lerrors.Wrap(lerrors.ErrCodeCacheUnavailable, err, "render cache %s failed", op)
	c.logger.Warn("cache unavailable, rendering without it", "op", op, "err", err)
	observability.Cache().OnCacheError(ctx, op, err)
}
