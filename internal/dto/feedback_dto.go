package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateFeedbackRequest struct {
	Query    string `json:"query" validate:"required"`
	Response string `json:"response" validate:"required"`
	Rating   string `json:"rating" validate:"required,oneof=positive negative"`
	Comment  string `json:"comment"`
}

type CreateFeedbackResponse struct {
	Id uuid.UUID `json:"id"`
}

type FeedbackItem struct {
	Id        uuid.UUID `json:"id"`
	DatasetId string    `json:"dataset_id"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Rating    string    `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type FeedbackStatsResponse struct {
	Total        int64   `json:"total"`
	Positive     int64   `json:"positive"`
	Negative     int64   `json:"negative"`
	PositiveRate float64 `json:"positive_rate"`
}
