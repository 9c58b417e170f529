package entity

import (
	"time"

	"ai-datachat-be/pkg/dataset"
	"ai-datachat-be/pkg/rag"
)

// DatasetSession is the single active dataset plus its derived context
// index. Replacing the session drops the old index; persisted cache rows
// stay behind, scoped to the old dataset id.
type DatasetSession struct {
	Id         string // content hash of the raw upload
	Filename   string
	Frame      *dataset.Frame
	Index      *rag.Index
	UploadedAt time.Time
}
