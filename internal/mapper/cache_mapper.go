package mapper

import (
	"ai-datachat-be/internal/entity"
	"ai-datachat-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type CacheEntryMapper struct{}

func NewCacheEntryMapper() *CacheEntryMapper {
	return &CacheEntryMapper{}
}

func (m *CacheEntryMapper) ToEntity(e *model.QueryCacheEntry) *entity.CacheEntry {
	if e == nil {
		return nil
	}
	var embedding []float32
	if e.Embedding != nil {
		embedding = e.Embedding.Slice()
	}
	return &entity.CacheEntry{
		Id:          e.Id,
		Fingerprint: e.Fingerprint,
		Query:       e.Query,
		Embedding:   embedding,
		DatasetId:   e.DatasetId,
		Response:    e.Response,
		CreatedAt:   e.CreatedAt,
	}
}

func (m *CacheEntryMapper) ToModel(e *entity.CacheEntry) *model.QueryCacheEntry {
	if e == nil {
		return nil
	}
	// A vector column rejects the empty literal, so missing embeddings
	// map to NULL instead.
	var embedding *pgvector.Vector
	if len(e.Embedding) > 0 {
		v := pgvector.NewVector(e.Embedding)
		embedding = &v
	}
	return &model.QueryCacheEntry{
		Id:          e.Id,
		Fingerprint: e.Fingerprint,
		Query:       e.Query,
		Embedding:   embedding,
		DatasetId:   e.DatasetId,
		Response:    e.Response,
		CreatedAt:   e.CreatedAt,
	}
}
