// Package redisloader provides a registry.Loader backed by Redis, for
// identities the in-process registry cache has evicted or never held.
package redisloader

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/toon"
	"github.com/unkn0wn-root/toon/registry"
)

// Loader fetches "<namespace>:<id>" from Redis and decodes it as a
// serialized toon token envelope. Anything placed under that key by a
// writer must therefore be a valid envelope produced by toon.Serialize.
type Loader struct {
	rdb redis.UniversalClient
	ns  string
	ctx context.Context
}

// New builds a registry.Loader. ctx bounds every Redis round trip the
// returned Loader makes; a background context is reasonable for a loader
// only ever called synchronously from the registry.
func New(ctx context.Context, rdb redis.UniversalClient, namespace string) registry.Loader {
	l := &Loader{rdb: rdb, ns: namespace, ctx: ctx}
	return l.load
}

func (l *Loader) key(id toon.TokenId) string { return l.ns + ":" + id.String() }

func (l *Loader) load(id toon.TokenId) (toon.Token, bool) {
	b, err := l.rdb.Get(l.ctx, l.key(id)).Bytes()
	if err == redis.Nil {
		return toon.Token{}, false
	}
	if err != nil {
		return toon.Token{}, false
	}
	tok, err := toon.Deserialize(b)
	if err != nil {
		return toon.Token{}, false
	}
	return tok, true
}
