package service

import (
	"context"
	"time"

	"ai-datachat-be/internal/dto"
	"ai-datachat-be/internal/entity"
	"ai-datachat-be/internal/pkg/logger"
	"ai-datachat-be/internal/pkg/serverutils"
	"ai-datachat-be/internal/repository/memory"
	"ai-datachat-be/pkg/dataset"
	"ai-datachat-be/pkg/embedding"
	"ai-datachat-be/pkg/rag"
)

type IDatasetService interface {
	Upload(ctx context.Context, filename string, data []byte) (*dto.UploadDatasetResponse, error)
	Info(ctx context.Context) (*dto.DatasetInfoResponse, error)
	ActiveSession() (*entity.DatasetSession, error)
}

type datasetService struct {
	sessions *memory.SessionRepository
	embedder embedding.EmbeddingProvider
	log      logger.ILogger
}

func NewDatasetService(
	sessions *memory.SessionRepository,
	embedder embedding.EmbeddingProvider,
	log logger.ILogger,
) IDatasetService {
	return &datasetService{
		sessions: sessions,
		embedder: embedder,
		log:      log,
	}
}

// Upload parses the raw file, replaces the active session, and rebuilds
// the context index. An index build failure is downgraded to a warning:
// queries still run, just without retrieved context.
func (s *datasetService) Upload(_ context.Context, filename string, data []byte) (*dto.UploadDatasetResponse, error) {
	frame, datasetId, err := dataset.Load(data)
	if err != nil {
		return nil, serverutils.NewBadRequest("Could not parse dataset: " + err.Error())
	}

	index := rag.NewIndex(s.embedder)
	if err := index.Build(frame); err != nil {
		s.log.Warn("dataset", "context index build failed, continuing without context", map[string]interface{}{
			"dataset_id": datasetId,
			"error":      err.Error(),
		})
	}

	session := &entity.DatasetSession{
		Id:         datasetId,
		Filename:   filename,
		Frame:      frame,
		Index:      index,
		UploadedAt: time.Now(),
	}
	s.sessions.Save(session)

	s.log.Info("dataset", "dataset session replaced", map[string]interface{}{
		"dataset_id": datasetId,
		"filename":   filename,
		"rows":       frame.NumRows(),
		"columns":    frame.NumCols(),
		"documents":  index.Size(),
	})

	return &dto.UploadDatasetResponse{
		DatasetId:   datasetId,
		Filename:    filename,
		Rows:        frame.NumRows(),
		Columns:     frame.Columns(),
		IndexedDocs: index.Size(),
	}, nil
}

func (s *datasetService) Info(_ context.Context) (*dto.DatasetInfoResponse, error) {
	session, err := s.ActiveSession()
	if err != nil {
		return nil, err
	}

	columns := make([]dto.DatasetColumnInfo, 0, session.Frame.NumCols())
	for _, name := range session.Frame.Columns() {
		col, err := session.Frame.Column(name)
		if err != nil {
			continue
		}
		columns = append(columns, dto.DatasetColumnInfo{
			Name:         name,
			Type:         col.Kind.String(),
			UniqueValues: col.NUnique(),
			NullCount:    col.NullCount(),
		})
	}

	return &dto.DatasetInfoResponse{
		DatasetId:  session.Id,
		Filename:   session.Filename,
		Rows:       session.Frame.NumRows(),
		Columns:    columns,
		UploadedAt: session.UploadedAt,
	}, nil
}

func (s *datasetService) ActiveSession() (*entity.DatasetSession, error) {
	session, found := s.sessions.GetActive()
	if !found {
		return nil, serverutils.NewNotFound("No dataset loaded. Upload a dataset first.")
	}
	return session, nil
}
