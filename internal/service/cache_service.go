package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strings"

	"ai-datachat-be/internal/dto"
	"ai-datachat-be/internal/entity"
	"ai-datachat-be/internal/pkg/logger"
	"ai-datachat-be/internal/repository/contract"
	"ai-datachat-be/pkg/embedding"
)

type ICacheService interface {
	// Lookup returns (response, hit). Internal failures degrade to a miss
	// so the cache can never take the query pipeline down.
	Lookup(ctx context.Context, query, datasetId string) (string, bool)
	Store(ctx context.Context, query, datasetId, response string) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (*dto.CacheStatsResponse, error)
}

type cacheService struct {
	repo      contract.QueryCacheRepository
	embedder  embedding.EmbeddingProvider
	threshold float64
	backend   string
	log       logger.ILogger
}

func NewCacheService(
	repo contract.QueryCacheRepository,
	embedder embedding.EmbeddingProvider,
	threshold float64,
	backend string,
	log logger.ILogger,
) ICacheService {
	return &cacheService{
		repo:      repo,
		embedder:  embedder,
		threshold: threshold,
		backend:   backend,
		log:       log,
	}
}

// Fingerprint derives the exact-match cache key from the normalized query
// and the dataset identity.
func Fingerprint(query, datasetId string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	sum := md5.Sum([]byte(normalized + "_" + datasetId))
	return hex.EncodeToString(sum[:])
}

func (s *cacheService) Lookup(ctx context.Context, query, datasetId string) (string, bool) {
	fingerprint := Fingerprint(query, datasetId)

	// Exact path first: no embedding call needed.
	entry, err := s.repo.FindLatestByFingerprint(ctx, fingerprint)
	if err != nil {
		s.log.Warn("cache", "fingerprint lookup failed", map[string]interface{}{"error": err.Error()})
		return "", false
	}
	if entry != nil {
		return entry.Response, true
	}

	// Near-duplicate fallback: scan stored embeddings for this dataset.
	queryVec, err := s.embedQuery(query)
	if err != nil {
		s.log.Warn("cache", "query embedding failed, skipping similarity scan", map[string]interface{}{"error": err.Error()})
		return "", false
	}

	entries, err := s.repo.FindAllByDatasetId(ctx, datasetId)
	if err != nil {
		s.log.Warn("cache", "dataset scan failed", map[string]interface{}{"error": err.Error()})
		return "", false
	}
	for _, candidate := range entries {
		similarity := embedding.CosineSimilarity(queryVec, candidate.Embedding)
		if similarity >= s.threshold {
			s.log.Info("cache", "similarity hit", map[string]interface{}{
				"similarity": similarity,
				"stored":     candidate.Query,
			})
			return candidate.Response, true
		}
	}
	return "", false
}

func (s *cacheService) Store(ctx context.Context, query, datasetId, response string) error {
	entry := &entity.CacheEntry{
		Fingerprint: Fingerprint(query, datasetId),
		Query:       strings.ToLower(strings.TrimSpace(query)),
		DatasetId:   datasetId,
		Response:    response,
	}

	// A failed embedding still gets cached: the fingerprint path works,
	// and a nil vector has zero norm so it can never similarity-match.
	if vec, err := s.embedQuery(query); err != nil {
		s.log.Warn("cache", "storing entry without embedding", map[string]interface{}{"error": err.Error()})
	} else {
		entry.Embedding = vec
	}

	return s.repo.Create(ctx, entry)
}

func (s *cacheService) Clear(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}

func (s *cacheService) Stats(ctx context.Context) (*dto.CacheStatsResponse, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CacheStatsResponse{
		TotalEntries:        count,
		SimilarityThreshold: s.threshold,
		Backend:             s.backend,
	}, nil
}

func (s *cacheService) embedQuery(query string) ([]float32, error) {
	normalized := strings.ToLower(strings.TrimSpace(query))
	res, err := s.embedder.Generate(normalized, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}
	return res.Embedding.Values, nil
}
