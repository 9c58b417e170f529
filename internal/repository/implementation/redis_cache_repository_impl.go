package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ai-datachat-be/internal/entity"
	"ai-datachat-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	redisFingerprintPrefix = "datachat:cache:fp:"
	redisDatasetPrefix     = "datachat:cache:ds:"
	redisAllEntriesKey     = "datachat:cache:all"
	redisKeyPattern        = "datachat:cache:*"
)

// RedisCacheRepository is an alternative cache backend. Fingerprint keys
// hold the latest entry (append-only semantics come free: SET supersedes),
// dataset lists keep every entry for the similarity scan.
type RedisCacheRepository struct {
	client *redis.Client
}

func NewRedisCacheRepository(client *redis.Client) contract.QueryCacheRepository {
	return &RedisCacheRepository{client: client}
}

func (r *RedisCacheRepository) Create(ctx context.Context, entry *entity.CacheEntry) error {
	if entry.Id == uuid.Nil {
		entry.Id = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, redisFingerprintPrefix+entry.Fingerprint, payload, 0)
	pipe.RPush(ctx, redisDatasetPrefix+entry.DatasetId, payload)
	pipe.RPush(ctx, redisAllEntriesKey, payload)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *RedisCacheRepository) FindLatestByFingerprint(ctx context.Context, fingerprint string) (*entity.CacheEntry, error) {
	payload, err := r.client.Get(ctx, redisFingerprintPrefix+fingerprint).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var entry entity.CacheEntry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *RedisCacheRepository) FindAllByDatasetId(ctx context.Context, datasetId string) ([]*entity.CacheEntry, error) {
	payloads, err := r.client.LRange(ctx, redisDatasetPrefix+datasetId, 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	entries := make([]*entity.CacheEntry, 0, len(payloads))
	for _, payload := range payloads {
		var entry entity.CacheEntry
		if err := json.Unmarshal([]byte(payload), &entry); err != nil {
			continue
		}
		entries = append(entries, &entry)
	}
	return entries, nil
}

func (r *RedisCacheRepository) DeleteAll(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, redisKeyPattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisCacheRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.client.LLen(ctx, redisAllEntriesKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, err
	}
	return count, nil
}
