// Package toon implements a binary codec and in-memory reference registry
// for self-describing tagged values ("tokens"). A token carries a stable
// 128-bit identity, a typed value tree (scalars, strings, arrays,
// string-keyed maps whose entry order is not kept, and inter-token
// references), and metadata that never travels on
// the wire.
//
// Components:
//   - internal/wire: the versioned, length-framed, CRC32-protected byte
//     envelope's primitives (bounds-checked reader/writer, header/layout
//     parsing). The recursive Value encoder/decoder built on top of it
//     lives in this package (codec.go), since it must know about Value.
//   - registry: a bounded LRU cache of tokens keyed by identity, with
//     strong/weak reference resolution and a cycle-detecting graph walk.
//   - validate: depth/length constraints and a shallow schema matcher,
//     treated as external collaborators the core consumes through narrow
//     contracts.
//   - interchange: non-wire JSON/CBOR/MessagePack export of a Value tree.
//   - loader/redisloader, loader/cache: composable registry.Loader
//     implementations backed by Redis and by byte-level memoizing caches.
//
// Wire format:
//
//	version(1) | id(16) | type_marker(1) | payload_len(4,le) | payload(N) | crc32(4,le)
//
// Only version 1 exists today; readers reject any other version.
package toon
