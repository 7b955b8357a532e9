package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/flarelab/combust/pkg/errors"
	"github.com/flarelab/combust/pkg/types/respecth"
)

// DocumentKey returns the SHA-256 hex digest of a raw document. The digest
// is both the cache key for the decoded record and the catalog dedup
// checksum.
func DocumentKey(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// RecordCache stores decoded experiment records keyed by document digest, so
// re-uploads of an identical file skip the decode entirely.
type RecordCache struct {
	cache Cache
	ttl   time.Duration
}

// NewRecordCache builds a RecordCache. A zero ttl falls back to the cache's
// default.
func NewRecordCache(cache Cache, ttl time.Duration) *RecordCache {
	return &RecordCache{cache: cache, ttl: ttl}
}

func recordKey(checksum string) string {
	return "record:" + checksum
}

// Get returns the cached record for a document digest. The second return is
// false on a miss.
func (c *RecordCache) Get(ctx context.Context, checksum string) (*respecth.ExperimentRecord, bool, error) {
	var rec respecth.ExperimentRecord
	err := c.cache.Get(ctx, recordKey(checksum), &rec)
	if err == nil {
		return &rec, true, nil
	}
	if errors.IsCode(err, errors.CodeNotFound) {
		return nil, false, nil
	}
	return nil, false, err
}

// Put caches a decoded record under its document digest.
func (c *RecordCache) Put(ctx context.Context, checksum string, rec *respecth.ExperimentRecord) error {
	if rec == nil {
		return errors.InvalidParam("record must not be nil")
	}
	return c.cache.Set(ctx, recordKey(checksum), rec, c.ttl)
}

// Invalidate drops the cached record for a document digest.
func (c *RecordCache) Invalidate(ctx context.Context, checksum string) error {
	return c.cache.Delete(ctx, recordKey(checksum))
}
