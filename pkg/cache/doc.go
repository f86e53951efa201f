// Package cache provides the storage layer for pipeline stage results.
//
// Three backends implement the [Cache] interface: [FileCache] for local
// CLI runs, [RedisCache] for shared server deployments, and [NullCache]
// to disable caching. Keys are produced by a [Keyer]; [DefaultKeyer]
// hashes the stage inputs, and [ScopedKeyer] prefixes keys for
// per-session isolation.
package cache
