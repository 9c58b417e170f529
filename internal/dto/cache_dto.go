package dto

type CacheStatsResponse struct {
	TotalEntries        int64   `json:"total_entries"`
	SimilarityThreshold float64 `json:"similarity_threshold"`
	Backend             string  `json:"backend"`
}

type ClearCacheResponse struct {
	Cleared bool `json:"cleared"`
}
