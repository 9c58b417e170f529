package rag

import (
	"fmt"
	"sort"
	"strings"

	"ai-datachat-be/pkg/dataset"
	"ai-datachat-be/pkg/embedding"
)

// ScoredDocument is a retrieved context document with its distance to the
// query (squared Euclidean over normalized embeddings; smaller is closer).
type ScoredDocument struct {
	Content  string  `json:"content"`
	Distance float64 `json:"distance"`
}

// Index is an in-memory vector index over dataset context documents.
// It is rebuilt atomically per dataset session and is safe for concurrent
// reads after Build returns.
type Index struct {
	provider embedding.EmbeddingProvider

	documents []string
	vectors   [][]float32
}

func NewIndex(provider embedding.EmbeddingProvider) *Index {
	return &Index{provider: provider}
}

// Build regenerates the document corpus and embeddings for a dataset.
// Either every document embeds successfully and the index is replaced, or
// an error is returned and the previous state stays untouched.
func (idx *Index) Build(frame *dataset.Frame) error {
	docs := BuildDocuments(frame)

	vectors := make([][]float32, len(docs))
	for i, doc := range docs {
		res, err := idx.provider.Generate(doc, "RETRIEVAL_DOCUMENT")
		if err != nil {
			return fmt.Errorf("embed document %d: %w", i, err)
		}
		vectors[i] = embedding.NormalizeVector(res.Embedding.Values)
	}

	idx.documents = docs
	idx.vectors = vectors
	return nil
}

// Size returns the number of indexed documents.
func (idx *Index) Size() int { return len(idx.documents) }

// Documents returns the corpus in insertion order.
func (idx *Index) Documents() []string {
	return append([]string(nil), idx.documents...)
}

// Retrieve returns up to k documents ranked by similarity to the query,
// most similar first. An empty corpus yields an empty result, not an error.
func (idx *Index) Retrieve(query string, k int) ([]ScoredDocument, error) {
	if len(idx.documents) == 0 || k <= 0 {
		return []ScoredDocument{}, nil
	}

	res, err := idx.provider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	queryVec := embedding.NormalizeVector(res.Embedding.Values)

	scored := make([]ScoredDocument, len(idx.documents))
	for i, vec := range idx.vectors {
		scored[i] = ScoredDocument{
			Content:  idx.documents[i],
			Distance: squaredL2(queryVec, vec),
		}
	}
	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Distance < scored[b].Distance
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

// ContextString formats retrieved documents as a numbered block for prompt
// injection. Empty retrieval yields an empty string.
func ContextString(docs []ScoredDocument) string {
	if len(docs) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Relevant Dataset Information:")
	for i, doc := range docs {
		sb.WriteString(fmt.Sprintf("\n%d. %s", i+1, doc.Content))
	}
	return sb.String()
}

// squaredL2 computes squared Euclidean distance. On normalized vectors this
// equals 2-2cos(a,b), so ranking by it matches ranking by cosine similarity.
func squaredL2(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
