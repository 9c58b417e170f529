package contract

import (
	"context"

	"ai-datachat-be/internal/entity"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.Feedback) error
	FindAll(ctx context.Context) ([]*entity.Feedback, error)
	CountByRating(ctx context.Context, rating string) (int64, error)
	Count(ctx context.Context) (int64, error)
}
