// Package store provides durable persistence for relay records.
package store

import (
	"context"
	"time"

	"github.com/lingobridge/lingobridge"
)

// RecordStore is the durable key→record store backing the relay cache. It is
// the source of truth: cache contents are reconstructible from it, never the
// reverse.
type RecordStore interface {
	// Save persists a new record. It fails on a duplicate forwarded id or
	// I/O error; callers log and degrade rather than crash.
	Save(ctx context.Context, rec lingobridge.TranslationRecord) error

	// FindByForwardedID returns the record keyed by the forwarded message
	// id, with ok=false when none exists.
	FindByForwardedID(ctx context.Context, id int64) (lingobridge.TranslationRecord, bool, error)

	// DeleteOlderThan removes every record created before now-age and
	// returns the number removed. Intended as startup maintenance.
	DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error)
}
