package mapper

import (
	"ai-datachat-be/internal/entity"
	"ai-datachat-be/internal/model"
)

type FeedbackMapper struct{}

func NewFeedbackMapper() *FeedbackMapper {
	return &FeedbackMapper{}
}

func (m *FeedbackMapper) ToEntity(e *model.Feedback) *entity.Feedback {
	if e == nil {
		return nil
	}
	return &entity.Feedback{
		Id:        e.Id,
		DatasetId: e.DatasetId,
		Query:     e.Query,
		Response:  e.Response,
		Rating:    e.Rating,
		Comment:   e.Comment,
		CreatedAt: e.CreatedAt,
	}
}

func (m *FeedbackMapper) ToModel(e *entity.Feedback) *model.Feedback {
	if e == nil {
		return nil
	}
	return &model.Feedback{
		Id:        e.Id,
		DatasetId: e.DatasetId,
		Query:     e.Query,
		Response:  e.Response,
		Rating:    e.Rating,
		Comment:   e.Comment,
		CreatedAt: e.CreatedAt,
	}
}
