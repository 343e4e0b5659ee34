// Package cache memoizes an expensive registry.Loader's successful
// results as serialized wire bytes in a third-party byte cache. It is a
// loader-side optimization only: neither wrapper participates in the
// registry's own exact-eviction LRU (internal/lru) or its recency
// invariants, which remain solely the concern of registry.TokenRegistry.
package cache

import (
	"errors"
	"time"

	bc "github.com/allegro/bigcache/v3"
	rc "github.com/dgraph-io/ristretto"

	"github.com/unkn0wn-root/toon"
	"github.com/unkn0wn-root/toon/registry"
)

// RistrettoConfig mirrors the subset of ristretto.Config this wrapper needs.
type RistrettoConfig struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
	// EntryCost is charged against MaxCost for every cached token; 1 is a
	// reasonable default when cost should track entry count rather than
	// byte size.
	EntryCost int64
	TTL       time.Duration
}

// WrapRistretto returns a Loader that serves from a ristretto.Cache of
// serialized token bytes before falling through to inner, caching inner's
// successful results on the way out.
func WrapRistretto(inner registry.Loader, cfg RistrettoConfig) (registry.Loader, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("loader/cache: invalid ristretto config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	cost := cfg.EntryCost
	if cost <= 0 {
		cost = 1
	}

	return func(id toon.TokenId) (toon.Token, bool) {
		key := id.String()
		if v, ok := c.Get(key); ok {
			if b, ok := v.([]byte); ok {
				if tok, err := toon.Deserialize(b); err == nil {
					return tok, true
				}
				c.Del(key) // self-heal on a corrupted cached entry
			}
		}

		tok, ok := inner(id)
		if !ok {
			return toon.Token{}, false
		}
		if b, err := toon.Serialize(tok); err == nil {
			c.SetWithTTL(key, b, cost, cfg.TTL)
		}
		return tok, true
	}, nil
}

// BigCacheConfig mirrors the subset of bigcache.Config this wrapper needs.
type BigCacheConfig struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int
}

// WrapBigCache returns a Loader backed by a bigcache.BigCache of
// serialized token bytes, with the same fallthrough-and-populate policy
// as WrapRistretto.
func WrapBigCache(inner registry.Loader, cfg BigCacheConfig) (registry.Loader, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.NewBigCache(conf)
	if err != nil {
		return nil, err
	}

	return func(id toon.TokenId) (toon.Token, bool) {
		key := id.String()
		if b, err := c.Get(key); err == nil {
			if tok, err := toon.Deserialize(b); err == nil {
				return tok, true
			}
			_ = c.Delete(key)
		}

		tok, ok := inner(id)
		if !ok {
			return toon.Token{}, false
		}
		if b, err := toon.Serialize(tok); err == nil {
			_ = c.Set(key, b)
		}
		return tok, true
	}, nil
}
