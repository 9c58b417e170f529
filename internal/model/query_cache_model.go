package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type QueryCacheEntry struct {
	Id          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fingerprint string          `gorm:"type:varchar(64);not null;index"`
	Query       string          `gorm:"type:text;not null"`
	// Nullable: entries stored while the embedder was down carry no vector,
	// and the vector type rejects an empty literal.
	Embedding *pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text uses 768 dimensions
	DatasetId   string          `gorm:"type:varchar(64);not null;index"`
	Response    string          `gorm:"type:text;not null"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
}

func (QueryCacheEntry) TableName() string {
	return "query_cache_entries"
}
