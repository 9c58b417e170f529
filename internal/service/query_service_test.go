package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-datachat-be/internal/dto"
	"ai-datachat-be/internal/repository/memory"
	"ai-datachat-be/pkg/agent/translator"
	"ai-datachat-be/pkg/embedding"
	"ai-datachat-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hashEmbedder maps any text to a crude bag-of-bytes vector so the
// pipeline has deterministic, non-degenerate embeddings.
type hashEmbedder struct{}

func (hashEmbedder) Generate(text string, _ string) (*embedding.EmbeddingResponse, error) {
	vec := make([]float32, 8)
	for _, r := range strings.ToLower(text) {
		vec[int(r)%8]++
	}
	return &embedding.EmbeddingResponse{Embedding: embedding.EmbeddingResponseEmbedding{Values: vec}}, nil
}

// countingLLM returns one canned response and counts invocations.
type countingLLM struct {
	response string
	err      error
	calls    int
}

func (c *countingLLM) Generate(context.Context, string, ...llm.Option) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

func (c *countingLLM) ListModels(context.Context) ([]string, error) { return nil, nil }
func (c *countingLLM) Available(context.Context) bool               { return true }

func newTestPipeline(t *testing.T, model *countingLLM) (IQueryService, IDatasetService, ICacheService) {
	t.Helper()
	embedder := hashEmbedder{}
	datasetSvc := NewDatasetService(memory.NewSessionRepository(), embedder, nopLogger{})
	cacheSvc := NewCacheService(memory.NewQueryCacheRepository(), embedder, 0.9, "memory", nopLogger{})
	querySvc := NewQueryService(datasetSvc, cacheSvc, translator.NewTranslator(model), 5, nopLogger{})
	return querySvc, datasetSvc, cacheSvc
}

func uploadGenderDataset(t *testing.T, datasetSvc IDatasetService) {
	t.Helper()
	csv := "name,gender\nJohn,Male\nJane,Female\nMary,Female\n"
	_, err := datasetSvc.Upload(context.Background(), "people.csv", []byte(csv))
	require.NoError(t, err)
}

func TestAskWithoutDatasetFails(t *testing.T) {
	querySvc, _, _ := newTestPipeline(t, &countingLLM{response: "len(df)"})

	_, err := querySvc.Ask(context.Background(), &dto.ChatQueryRequest{Query: "how many rows?"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No dataset loaded")
}

func TestAskEndToEndDistribution(t *testing.T) {
	model := &countingLLM{response: "df['gender'].value_counts().to_frame(name='Count')"}
	querySvc, datasetSvc, _ := newTestPipeline(t, model)
	uploadGenderDataset(t, datasetSvc)

	res, err := querySvc.Ask(context.Background(), &dto.ChatQueryRequest{Query: "distribution of gender"})
	require.NoError(t, err)

	assert.False(t, res.CacheHit)
	assert.False(t, res.Failed)
	assert.Contains(t, res.Answer, "| gender | Count |")
	assert.Contains(t, res.Answer, "| Female | 2 |")
	assert.Contains(t, res.Answer, "| Male | 1 |")
	assert.NotEmpty(t, res.ContextDocuments)
	assert.Equal(t, 1, model.calls)
}

func TestAskSecondIdenticalQueryHitsCache(t *testing.T) {
	model := &countingLLM{response: "df['gender'].value_counts().to_frame(name='Count')"}
	querySvc, datasetSvc, _ := newTestPipeline(t, model)
	uploadGenderDataset(t, datasetSvc)

	first, err := querySvc.Ask(context.Background(), &dto.ChatQueryRequest{Query: "distribution of gender"})
	require.NoError(t, err)
	require.False(t, first.CacheHit)

	second, err := querySvc.Ask(context.Background(), &dto.ChatQueryRequest{Query: "distribution of gender"})
	require.NoError(t, err)

	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Answer, second.Answer)
	assert.Empty(t, second.ContextDocuments)
	// translation must not run again
	assert.Equal(t, 1, model.calls)
}

func TestAskTranslationFailureIsNotCached(t *testing.T) {
	model := &countingLLM{err: errors.New("model unreachable")}
	querySvc, datasetSvc, cacheSvc := newTestPipeline(t, model)
	uploadGenderDataset(t, datasetSvc)

	res, err := querySvc.Ask(context.Background(), &dto.ChatQueryRequest{Query: "distribution of gender"})
	require.NoError(t, err)

	assert.True(t, res.Failed)
	assert.Contains(t, res.Answer, "rephrasing")

	stats, err := cacheSvc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalEntries)
}

func TestAskExecutionFailureIsNotCached(t *testing.T) {
	// valid-looking expression that fails at runtime: unknown column
	model := &countingLLM{response: "df['missing'].sum()"}
	querySvc, datasetSvc, cacheSvc := newTestPipeline(t, model)
	uploadGenderDataset(t, datasetSvc)

	res, err := querySvc.Ask(context.Background(), &dto.ChatQueryRequest{Query: "sum of missing"})
	require.NoError(t, err)

	assert.True(t, res.Failed)
	assert.Equal(t, "df['missing'].sum()", res.Expression)

	stats, err := cacheSvc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalEntries)
}

func TestAskScalarQuery(t *testing.T) {
	model := &countingLLM{response: "len(df)"}
	querySvc, datasetSvc, _ := newTestPipeline(t, model)
	uploadGenderDataset(t, datasetSvc)

	res, err := querySvc.Ask(context.Background(), &dto.ChatQueryRequest{Query: "how many rows?"})
	require.NoError(t, err)
	assert.Equal(t, "3", res.Answer)
}

func TestDatasetInfo(t *testing.T) {
	_, datasetSvc, _ := newTestPipeline(t, &countingLLM{})
	uploadGenderDataset(t, datasetSvc)

	info, err := datasetSvc.Info(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, info.Rows)
	require.Len(t, info.Columns, 2)
	assert.Equal(t, "gender", info.Columns[1].Name)
	assert.Equal(t, "object", info.Columns[1].Type)
	assert.Equal(t, 2, info.Columns[1].UniqueValues)
}

func TestUploadReplacesSession(t *testing.T) {
	_, datasetSvc, _ := newTestPipeline(t, &countingLLM{})
	uploadGenderDataset(t, datasetSvc)

	first, err := datasetSvc.ActiveSession()
	require.NoError(t, err)

	_, err = datasetSvc.Upload(context.Background(), "other.csv", []byte("a,b\n1,2\n"))
	require.NoError(t, err)

	second, err := datasetSvc.ActiveSession()
	require.NoError(t, err)
	assert.NotEqual(t, first.Id, second.Id)
	assert.Equal(t, "other.csv", second.Filename)
}
