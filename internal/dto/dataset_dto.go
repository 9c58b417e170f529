package dto

import "time"

type UploadDatasetResponse struct {
	DatasetId  string   `json:"dataset_id"`
	Filename   string   `json:"filename"`
	Rows       int      `json:"rows"`
	Columns    []string `json:"columns"`
	IndexedDocs int     `json:"indexed_documents"`
}

type DatasetColumnInfo struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	UniqueValues int    `json:"unique_values"`
	NullCount    int    `json:"null_count"`
}

type DatasetInfoResponse struct {
	DatasetId  string              `json:"dataset_id"`
	Filename   string              `json:"filename"`
	Rows       int                 `json:"rows"`
	Columns    []DatasetColumnInfo `json:"columns"`
	UploadedAt time.Time           `json:"uploaded_at"`
}
