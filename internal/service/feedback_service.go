package service

import (
	"bytes"
	"context"
	"encoding/csv"

	"ai-datachat-be/internal/dto"
	"ai-datachat-be/internal/entity"
	"ai-datachat-be/internal/repository/contract"
)

type IFeedbackService interface {
	Create(ctx context.Context, req *dto.CreateFeedbackRequest) (*dto.CreateFeedbackResponse, error)
	List(ctx context.Context) ([]*dto.FeedbackItem, error)
	Stats(ctx context.Context) (*dto.FeedbackStatsResponse, error)
	ExportCSV(ctx context.Context) ([]byte, error)
}

type feedbackService struct {
	repo           contract.FeedbackRepository
	datasetService IDatasetService
}

func NewFeedbackService(repo contract.FeedbackRepository, datasetService IDatasetService) IFeedbackService {
	return &feedbackService{
		repo:           repo,
		datasetService: datasetService,
	}
}

func (s *feedbackService) Create(ctx context.Context, req *dto.CreateFeedbackRequest) (*dto.CreateFeedbackResponse, error) {
	datasetId := ""
	if session, err := s.datasetService.ActiveSession(); err == nil {
		datasetId = session.Id
	}

	feedback := &entity.Feedback{
		DatasetId: datasetId,
		Query:     req.Query,
		Response:  req.Response,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.repo.Create(ctx, feedback); err != nil {
		return nil, err
	}
	return &dto.CreateFeedbackResponse{Id: feedback.Id}, nil
}

func (s *feedbackService) List(ctx context.Context) ([]*dto.FeedbackItem, error) {
	feedbacks, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.FeedbackItem, len(feedbacks))
	for i, f := range feedbacks {
		items[i] = &dto.FeedbackItem{
			Id:        f.Id,
			DatasetId: f.DatasetId,
			Query:     f.Query,
			Response:  f.Response,
			Rating:    f.Rating,
			Comment:   f.Comment,
			CreatedAt: f.CreatedAt,
		}
	}
	return items, nil
}

func (s *feedbackService) Stats(ctx context.Context) (*dto.FeedbackStatsResponse, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	positive, err := s.repo.CountByRating(ctx, "positive")
	if err != nil {
		return nil, err
	}
	negative, err := s.repo.CountByRating(ctx, "negative")
	if err != nil {
		return nil, err
	}
	rate := 0.0
	if total > 0 {
		rate = float64(positive) / float64(total)
	}
	return &dto.FeedbackStatsResponse{
		Total:        total,
		Positive:     positive,
		Negative:     negative,
		PositiveRate: rate,
	}, nil
}

func (s *feedbackService) ExportCSV(ctx context.Context) ([]byte, error) {
	feedbacks, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"dataset_id", "query", "response", "rating", "comment", "created_at"}); err != nil {
		return nil, err
	}
	for _, f := range feedbacks {
		record := []string{
			f.DatasetId,
			f.Query,
			f.Response,
			f.Rating,
			f.Comment,
			f.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
