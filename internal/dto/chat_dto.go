package dto

type ChatQueryRequest struct {
	Query string `json:"query" validate:"required,min=1"`
}

type ChatQueryResponse struct {
	Answer           string   `json:"answer"`
	CacheHit         bool     `json:"cache_hit"`
	Failed           bool     `json:"failed"`
	Expression       string   `json:"expression,omitempty"`
	ContextDocuments []string `json:"context_documents"`
}
