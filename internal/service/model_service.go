package service

import (
	"context"

	"ai-datachat-be/internal/dto"
	"ai-datachat-be/pkg/llm"
)

type IModelService interface {
	List(ctx context.Context) (*dto.ListModelsResponse, error)
}

type modelService struct {
	provider     llm.LLMProvider
	providerName string
}

func NewModelService(provider llm.LLMProvider, providerName string) IModelService {
	return &modelService{
		provider:     provider,
		providerName: providerName,
	}
}

func (s *modelService) List(ctx context.Context) (*dto.ListModelsResponse, error) {
	models, err := s.provider.ListModels(ctx)
	if err != nil {
		// Backend down is a valid answer, not a failure.
		return &dto.ListModelsResponse{
			Provider:  s.providerName,
			Available: false,
			Models:    []string{},
		}, nil
	}
	return &dto.ListModelsResponse{
		Provider:  s.providerName,
		Available: true,
		Models:    models,
	}, nil
}
