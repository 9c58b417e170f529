package contract

import (
	"context"

	"ai-datachat-be/internal/entity"
)

type QueryCacheRepository interface {
	Create(ctx context.Context, entry *entity.CacheEntry) error
	// FindLatestByFingerprint returns nil without error when no entry exists.
	FindLatestByFingerprint(ctx context.Context, fingerprint string) (*entity.CacheEntry, error)
	FindAllByDatasetId(ctx context.Context, datasetId string) ([]*entity.CacheEntry, error)
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}
