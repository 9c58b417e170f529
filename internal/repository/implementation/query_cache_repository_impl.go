package implementation

import (
	"context"
	"errors"

	"ai-datachat-be/internal/entity"
	"ai-datachat-be/internal/mapper"
	"ai-datachat-be/internal/model"
	"ai-datachat-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QueryCacheRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CacheEntryMapper
}

func NewQueryCacheRepository(db *gorm.DB) contract.QueryCacheRepository {
	return &QueryCacheRepositoryImpl{
		db:     db,
		mapper: mapper.NewCacheEntryMapper(),
	}
}

func (r *QueryCacheRepositoryImpl) Create(ctx context.Context, entry *entity.CacheEntry) error {
	if entry.Id == uuid.Nil {
		entry.Id = uuid.New()
	}
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *QueryCacheRepositoryImpl) FindLatestByFingerprint(ctx context.Context, fingerprint string) (*entity.CacheEntry, error) {
	var m model.QueryCacheEntry
	err := r.db.WithContext(ctx).
		Where("fingerprint = ?", fingerprint).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *QueryCacheRepositoryImpl) FindAllByDatasetId(ctx context.Context, datasetId string) ([]*entity.CacheEntry, error) {
	var models []model.QueryCacheEntry
	err := r.db.WithContext(ctx).
		Where("dataset_id = ?", datasetId).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	entries := make([]*entity.CacheEntry, len(models))
	for i := range models {
		entries[i] = r.mapper.ToEntity(&models[i])
	}
	return entries, nil
}

func (r *QueryCacheRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.QueryCacheEntry{}).Error
}

func (r *QueryCacheRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.QueryCacheEntry{}).Count(&count).Error
	return count, err
}
