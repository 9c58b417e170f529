package memory

import (
	"context"
	"sync"
	"time"

	"ai-datachat-be/internal/entity"
	"ai-datachat-be/internal/repository/contract"

	"github.com/google/uuid"
)

// QueryCacheRepository is an in-memory cache store used by tests and
// local runs without a database.
type QueryCacheRepository struct {
	mu      sync.RWMutex
	entries []*entity.CacheEntry
}

func NewQueryCacheRepository() contract.QueryCacheRepository {
	return &QueryCacheRepository{}
}

func (r *QueryCacheRepository) Create(_ context.Context, entry *entity.CacheEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry.Id == uuid.Nil {
		entry.Id = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	stored := *entry
	r.entries = append(r.entries, &stored)
	return nil
}

func (r *QueryCacheRepository) FindLatestByFingerprint(_ context.Context, fingerprint string) (*entity.CacheEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	// entries are appended in order, so the last match is the newest
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].Fingerprint == fingerprint {
			found := *r.entries[i]
			return &found, nil
		}
	}
	return nil, nil
}

func (r *QueryCacheRepository) FindAllByDatasetId(_ context.Context, datasetId string) ([]*entity.CacheEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.CacheEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].DatasetId == datasetId {
			found := *r.entries[i]
			out = append(out, &found)
		}
	}
	return out, nil
}

func (r *QueryCacheRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	return nil
}

func (r *QueryCacheRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.entries)), nil
}
