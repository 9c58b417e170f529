package entity

import (
	"time"

	"github.com/google/uuid"
)

// CacheEntry is one stored (query, dataset, response) triple. Entries are
// append-only: a repeated fingerprint gets a new row, lookup takes the
// most recent.
type CacheEntry struct {
	Id          uuid.UUID
	Fingerprint string
	Query       string
	Embedding   []float32
	DatasetId   string
	Response    string
	CreatedAt   time.Time
}
