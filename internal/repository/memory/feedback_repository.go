package memory

import (
	"context"
	"sync"
	"time"

	"ai-datachat-be/internal/entity"
	"ai-datachat-be/internal/repository/contract"

	"github.com/google/uuid"
)

type FeedbackRepository struct {
	mu        sync.RWMutex
	feedbacks []*entity.Feedback
}

func NewFeedbackRepository() contract.FeedbackRepository {
	return &FeedbackRepository{}
}

func (r *FeedbackRepository) Create(_ context.Context, feedback *entity.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if feedback.Id == uuid.Nil {
		feedback.Id = uuid.New()
	}
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now()
	}
	stored := *feedback
	r.feedbacks = append(r.feedbacks, &stored)
	return nil
}

func (r *FeedbackRepository) FindAll(_ context.Context) ([]*entity.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Feedback, 0, len(r.feedbacks))
	for i := len(r.feedbacks) - 1; i >= 0; i-- {
		found := *r.feedbacks[i]
		out = append(out, &found)
	}
	return out, nil
}

func (r *FeedbackRepository) CountByRating(_ context.Context, rating string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, f := range r.feedbacks {
		if f.Rating == rating {
			count++
		}
	}
	return count, nil
}

func (r *FeedbackRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.feedbacks)), nil
}
