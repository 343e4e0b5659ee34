// Package registry implements the reference registry: a bounded LRU
// cache of tokens keyed by identity (C7), strong/weak reference
// resolution, and the cycle-detecting graph walker (C8). It is the only
// component in this module with shared mutable state; everything else
// is stateless or operates purely on caller-owned data (spec.md §5).
package registry

import (
	"sync"

	"github.com/unkn0wn-root/toon"
	"github.com/unkn0wn-root/toon/clock"
	"github.com/unkn0wn-root/toon/internal/lru"
)

// Loader resolves a TokenId to a Token on a cache miss. It may be
// invoked multiple times for distinct identities within a single graph
// walk, at most once per identity, and only when that identity is not
// already cached. It must not call back into mutating registry
// operations for the same registry (spec.md §4.5).
type Loader func(toon.TokenId) (toon.Token, bool)

// Options configures a TokenRegistry. The zero value is a usable,
// unbounded registry with no logging.
type Options struct {
	// MaxEntries bounds the cache; 0 means unbounded.
	MaxEntries int
	// Logger receives a Debug event on eviction, an Error event when a
	// strong-reference load fails, and a Warn event when
	// EnsureLoadedAndAcyclic finds a cycle. Nil is treated as
	// toon.NopLogger{}.
	Logger toon.Logger
	// Clock stamps the "ts" field on those events. Nil is treated as
	// clock.System{}.
	Clock clock.Clock
}

// TokenRegistry is a thread-safe facade over an LRU cache of tokens,
// guarded by a single readers/writer lock held only for the duration of
// a single cache operation (spec.md §5) — it is never held across a
// Loader invocation or across a graph walk.
type TokenRegistry struct {
	mu    sync.RWMutex
	cache *lru.Cache[toon.TokenId, toon.Token]
	log   toon.Logger
	clock clock.Clock
}

// New constructs an empty registry per opts.
func New(opts Options) *TokenRegistry {
	var cache *lru.Cache[toon.TokenId, toon.Token]
	if opts.MaxEntries > 0 {
		cache = lru.NewWithMaxEntries[toon.TokenId, toon.Token](opts.MaxEntries)
	} else {
		cache = lru.New[toon.TokenId, toon.Token]()
	}
	return &TokenRegistry{
		cache: cache,
		log:   toon.Coalesce[toon.Logger](opts.Logger, toon.NopLogger{}),
		clock: toon.Coalesce[clock.Clock](opts.Clock, clock.System{}),
	}
}

// Register inserts token unconditionally; last registration wins for a
// given identity (spec.md §3 — conflicting tokens are last-writer-wins).
func (r *TokenRegistry) Register(token toon.Token) {
	r.insert(token)
}

// Get returns the cached token for id, if any. This counts as a touch
// for LRU recency.
func (r *TokenRegistry) Get(id toon.TokenId) (toon.Token, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.GetCloned(id)
}

// ResolveRef is a cache-only lookup; it never invokes a loader.
func (r *TokenRegistry) ResolveRef(ref toon.TokenRef) (toon.Token, error) {
	if t, ok := r.Get(ref.ID()); ok {
		return t, nil
	}
	return toon.Token{}, &toon.NotFoundError{ID: ref.ID()}
}

// ResolveRefOrLoad returns the cached token if present. Otherwise, for a
// Weak reference it returns (zero, false, nil) without invoking loader;
// for a Strong reference it invokes loader once — a miss becomes
// NotFoundError, a hit is inserted and returned.
func (r *TokenRegistry) ResolveRefOrLoad(ref toon.TokenRef, loader Loader) (toon.Token, bool, error) {
	if t, ok := r.Get(ref.ID()); ok {
		return t, true, nil
	}
	if ref.Strength() == toon.Weak {
		return toon.Token{}, false, nil
	}
	if loader == nil {
		return toon.Token{}, false, &toon.NotFoundError{ID: ref.ID()}
	}
	loaded, ok := loader(ref.ID())
	if !ok {
		r.log.Error("strong reference load failed", toon.Fields{"id": ref.ID().String(), "ts": r.clock.NowUnixMs()})
		return toon.Token{}, false, &toon.NotFoundError{ID: ref.ID()}
	}
	r.insert(loaded)
	return loaded, true, nil
}

// EnsureLoadedAndAcyclic guarantees that every Strong transitive
// reference reachable from root is materialized in the registry, and
// that the reachable subgraph contains no cycle under Strong edges plus
// any Weak edges to already-present tokens (spec.md §4.5).
func (r *TokenRegistry) EnsureLoadedAndAcyclic(root toon.TokenId, loader Loader) error {
	err := ensureLoadedAndAcyclic(r, root, loader)
	if cyc, ok := err.(*toon.CircularReferenceError); ok {
		r.log.Warn("circular reference detected", toon.Fields{"path": describeCycle(cyc.Path), "ts": r.clock.NowUnixMs()})
	}
	return err
}

func (r *TokenRegistry) insert(token toon.Token) {
	r.mu.Lock()
	evicted := r.cache.Insert(token.ID(), token)
	r.mu.Unlock()

	if evicted {
		r.log.Debug("registry cache eviction", toon.Fields{"id": token.ID().String(), "ts": r.clock.NowUnixMs()})
	}
}
