package service

import (
	"context"

	"ai-datachat-be/internal/dto"
	"ai-datachat-be/internal/pkg/logger"
	"ai-datachat-be/pkg/agent/formatter"
	"ai-datachat-be/pkg/agent/sandbox"
	"ai-datachat-be/pkg/agent/translator"
	"ai-datachat-be/pkg/rag"
)

type IQueryService interface {
	Ask(ctx context.Context, req *dto.ChatQueryRequest) (*dto.ChatQueryResponse, error)
}

// queryService is the resolution pipeline: cache check, context
// retrieval, translation, sandboxed execution, normalization, cache
// write. Translation and execution failures produce a user-visible
// answer, never a fault, and are not cached.
type queryService struct {
	datasetService IDatasetService
	cacheService   ICacheService
	translator     *translator.Translator
	topK           int
	log            logger.ILogger
}

func NewQueryService(
	datasetService IDatasetService,
	cacheService ICacheService,
	tr *translator.Translator,
	topK int,
	log logger.ILogger,
) IQueryService {
	return &queryService{
		datasetService: datasetService,
		cacheService:   cacheService,
		translator:     tr,
		topK:           topK,
		log:            log,
	}
}

func (s *queryService) Ask(ctx context.Context, req *dto.ChatQueryRequest) (*dto.ChatQueryResponse, error) {
	session, err := s.datasetService.ActiveSession()
	if err != nil {
		return nil, err
	}

	if response, hit := s.cacheService.Lookup(ctx, req.Query, session.Id); hit {
		s.log.Info("chat", "cache hit", map[string]interface{}{"query": req.Query})
		return &dto.ChatQueryResponse{
			Answer:           response,
			CacheHit:         true,
			ContextDocuments: []string{},
		}, nil
	}

	docs, err := session.Index.Retrieve(req.Query, s.topK)
	if err != nil {
		s.log.Warn("chat", "context retrieval failed, translating without context", map[string]interface{}{"error": err.Error()})
		docs = nil
	}
	contextDocs := make([]string, len(docs))
	for i, doc := range docs {
		contextDocs[i] = doc.Content
	}

	code, err := s.translator.Translate(ctx, req.Query, session.Frame.Columns(), rag.ContextString(docs))
	if err != nil {
		s.log.Warn("chat", "translation failed", map[string]interface{}{
			"query": req.Query,
			"error": err.Error(),
		})
		return &dto.ChatQueryResponse{
			Answer:           "I couldn't translate that question into a dataset query. Please try rephrasing it.",
			Failed:           true,
			ContextDocuments: contextDocs,
		}, nil
	}

	result, err := sandbox.Execute(code, session.Frame)
	if err != nil {
		s.log.Warn("chat", "execution failed", map[string]interface{}{
			"expression": code,
			"error":      err.Error(),
		})
		return &dto.ChatQueryResponse{
			Answer:           "The query could not be executed against this dataset. Please try rephrasing your question.",
			Failed:           true,
			Expression:       code,
			ContextDocuments: contextDocs,
		}, nil
	}

	answer := formatter.Format(result)

	if err := s.cacheService.Store(ctx, req.Query, session.Id, answer); err != nil {
		s.log.Warn("chat", "cache write failed", map[string]interface{}{"error": err.Error()})
	}

	s.log.Info("chat", "query resolved", map[string]interface{}{
		"query":      req.Query,
		"expression": code,
	})

	return &dto.ChatQueryResponse{
		Answer:           answer,
		CacheHit:         false,
		Expression:       code,
		ContextDocuments: contextDocs,
	}, nil
}
