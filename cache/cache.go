// Package cache provides relay record caching implementations.
package cache

import "github.com/lingobridge/lingobridge"

// RecordCache is the interface for relay record caching, keyed by
// forwarded-message id.
type RecordCache interface {
	// Get returns the cached record and true if present and not expired.
	// A hit marks the key as most recently used; the TTL is not refreshed.
	Get(key int64) (lingobridge.TranslationRecord, bool)

	// Put inserts or replaces a record and resets its expiry.
	Put(key int64, rec lingobridge.TranslationRecord)

	// Remove evicts a key unconditionally. No-op if absent.
	Remove(key int64)

	// Sweep evicts every expired entry and returns the count evicted.
	// Get and Put stay correct whether or not Sweep ever runs.
	Sweep() int

	// Clear removes all entries.
	Clear()

	// Size returns the current number of entries.
	Size() int
}
