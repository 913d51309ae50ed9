package lingobridge

import (
	"context"

	"github.com/sirupsen/logrus"
)

// RecordLookup resolves forwarded-message ids with a read-through strategy:
// cache first, store on a miss, backfilling the cache on a store hit so that
// later replies in the same thread stay hot.
type RecordLookup struct {
	cache  RecordCache
	store  RecordStore
	logger *logrus.Logger
}

// NewRecordLookup composes a lookup over an optional cache and a store.
func NewRecordLookup(cache RecordCache, store RecordStore, logger *logrus.Logger) *RecordLookup {
	if logger == nil {
		logger = logrus.New()
	}
	return &RecordLookup{
		cache:  cache,
		store:  store,
		logger: logger,
	}
}

// Lookup returns the record for a forwarded-message id, if any. Store errors
// are logged and reported as a miss; a miss is a routing decision, never an
// error.
func (l *RecordLookup) Lookup(ctx context.Context, forwardedID int64) (TranslationRecord, bool) {
	if l.cache != nil {
		if rec, ok := l.cache.Get(forwardedID); ok {
			l.logger.WithField("forwarded_message_id", forwardedID).Debug("record found in cache")
			return rec, true
		}
	}

	rec, ok, err := l.store.FindByForwardedID(ctx, forwardedID)
	if err != nil {
		pf := &PersistenceFailure{Op: "find", Cause: err}
		l.logger.WithError(pf).WithField("forwarded_message_id", forwardedID).
			Error("store lookup failed")
		return TranslationRecord{}, false
	}
	if !ok {
		return TranslationRecord{}, false
	}

	if l.cache != nil {
		l.cache.Put(forwardedID, rec)
		l.logger.WithField("forwarded_message_id", forwardedID).
			Debug("record found in store, cache backfilled")
	}
	return rec, true
}
