package model

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DatasetId string    `gorm:"type:varchar(64);not null;index"`
	Query     string    `gorm:"type:text;not null"`
	Response  string    `gorm:"type:text;not null"`
	Rating    string    `gorm:"type:varchar(16);not null"`
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}
