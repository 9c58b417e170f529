package rag

import (
	"strings"
	"testing"

	"ai-datachat-be/pkg/dataset"
	"ai-datachat-be/pkg/embedding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbedder maps known strings to fixed vectors; unknown text hashes to
// a crude bag-of-bytes vector so similar strings land near each other.
type fakeEmbedder struct {
	fixed map[string][]float32
}

func (f *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	if v, ok := f.fixed[text]; ok {
		return &embedding.EmbeddingResponse{Embedding: embedding.EmbeddingResponseEmbedding{Values: v}}, nil
	}
	vec := make([]float32, 8)
	for _, r := range strings.ToLower(text) {
		vec[int(r)%8]++
	}
	return &embedding.EmbeddingResponse{Embedding: embedding.EmbeddingResponseEmbedding{Values: vec}}, nil
}

func loadFrame(t *testing.T, csv string) *dataset.Frame {
	t.Helper()
	f, _, err := dataset.Load([]byte(csv))
	require.NoError(t, err)
	return f
}

func TestBuildDocumentsOrdering(t *testing.T) {
	// No missing values, no strong correlations between age and salary.
	f := loadFrame(t, "name,age,salary\nJohn,25,50000\nJane,30,40000\nBob,35,45000\n")
	docs := BuildDocuments(f)

	require.GreaterOrEqual(t, len(docs), 8)

	// 3 column documents first, in column order
	assert.True(t, strings.HasPrefix(docs[0], "Column: name,"))
	assert.True(t, strings.HasPrefix(docs[1], "Column: age,"))
	assert.True(t, strings.HasPrefix(docs[2], "Column: salary,"))

	// then numeric summaries for age and salary, in that order
	assert.True(t, strings.HasPrefix(docs[3], "Statistics for age:"))
	assert.True(t, strings.HasPrefix(docs[4], "Statistics for salary:"))

	// then sample rows
	assert.True(t, strings.HasPrefix(docs[5], "Sample row 0:"))
	assert.True(t, strings.HasPrefix(docs[6], "Sample row 1:"))
	assert.True(t, strings.HasPrefix(docs[7], "Sample row 2:"))
}

func TestBuildDocumentsColumnContent(t *testing.T) {
	f := loadFrame(t, "gender,age\nMale,25\nFemale,30\nFemale,35\n")
	docs := BuildDocuments(f)

	assert.Equal(t, "Column: gender, Type: object, Unique values: 2, Null count: 0, Sample values: Male, Female", docs[0])
}

func TestBuildDocumentsCorrelation(t *testing.T) {
	// x and y perfectly correlated
	f := loadFrame(t, "x,y\n1,2\n2,4\n3,6\n")
	docs := BuildDocuments(f)

	last := docs[len(docs)-1]
	assert.Equal(t, "Correlation between x and y: 1.00", last)
}

func TestRetrieveRanksBySimilarity(t *testing.T) {
	f := loadFrame(t, "a,b\nx,1\ny,2\n")
	docs := BuildDocuments(f)
	require.NotEmpty(t, docs)

	fixed := map[string][]float32{"target query": {1, 0, 0, 0, 0, 0, 0, 0}}
	// Make the second document the closest to the query.
	fe := &fakeEmbedder{fixed: fixed}
	for i, d := range docs {
		v := make([]float32, 8)
		if i == 1 {
			v[0] = 1
		} else {
			v[1] = 1
		}
		fixed[d] = v
	}

	idx := NewIndex(fe)
	require.NoError(t, idx.Build(f))

	got, err := idx.Retrieve("target query", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, docs[1], got[0].Content)
	assert.InDelta(t, 0.0, got[0].Distance, 1e-6)
}

func TestRetrieveEmptyIndex(t *testing.T) {
	idx := NewIndex(&fakeEmbedder{})
	got, err := idx.Retrieve("anything", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRetrieveCapsAtCorpusSize(t *testing.T) {
	f := loadFrame(t, "a,b\nx,1\ny,2\n")
	idx := NewIndex(&fakeEmbedder{})
	require.NoError(t, idx.Build(f))

	got, err := idx.Retrieve("query", 100)
	require.NoError(t, err)
	assert.Equal(t, idx.Size(), len(got))
}

func TestContextString(t *testing.T) {
	out := ContextString([]ScoredDocument{{Content: "doc one"}, {Content: "doc two"}})
	assert.Equal(t, "Relevant Dataset Information:\n1. doc one\n2. doc two", out)

	assert.Equal(t, "", ContextString(nil))
}
