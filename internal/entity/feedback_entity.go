package entity

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	Id        uuid.UUID
	DatasetId string
	Query     string
	Response  string
	Rating    string // "positive" or "negative"
	Comment   string
	CreatedAt time.Time
}
