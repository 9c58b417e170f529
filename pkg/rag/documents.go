package rag

import (
	"fmt"
	"math"
	"strings"

	"ai-datachat-be/pkg/dataset"
)

const (
	// Columns with fewer distinct values than this get example values
	// embedded in their document.
	sampleCardinalityLimit = 20
	maxSampleValues        = 5
	sampleRowCount         = 3
	correlationThreshold   = 0.5
)

// BuildDocuments derives the context corpus for a dataset. Order is fixed
// and deterministic: column documents, numeric summaries, sample rows,
// then strongly correlated pairs.
func BuildDocuments(frame *dataset.Frame) []string {
	var docs []string

	// One document per column
	for _, name := range frame.Columns() {
		col, err := frame.Column(name)
		if err != nil {
			continue
		}
		doc := fmt.Sprintf("Column: %s, Type: %s, Unique values: %d, Null count: %d",
			name, col.Kind.String(), col.NUnique(), col.NullCount())
		if col.NUnique() < sampleCardinalityLimit {
			samples := col.Unique()
			if len(samples) > maxSampleValues {
				samples = samples[:maxSampleValues]
			}
			if len(samples) > 0 {
				doc += fmt.Sprintf(", Sample values: %s", strings.Join(samples, ", "))
			}
		}
		docs = append(docs, doc)
	}

	// Summary statistics per numeric column
	numeric := frame.NumericColumns()
	for _, name := range numeric {
		col, err := frame.Column(name)
		if err != nil {
			continue
		}
		mean, _ := col.Mean()
		std, _ := col.Std()
		minV, _ := col.Min()
		maxV, _ := col.Max()
		docs = append(docs, fmt.Sprintf("Statistics for %s: mean=%.2f, std=%.2f, min=%.2f, max=%.2f",
			name, mean, std, minV, maxV))
	}

	// First rows rendered as column=value pairs
	head := frame.Head(sampleRowCount)
	for i := 0; i < head.NumRows(); i++ {
		var pairs []string
		for _, name := range head.Columns() {
			col, err := head.Column(name)
			if err != nil {
				continue
			}
			pairs = append(pairs, fmt.Sprintf("%s=%s", name, col.Cell(i)))
		}
		docs = append(docs, fmt.Sprintf("Sample row %d: %s", i, strings.Join(pairs, ", ")))
	}

	// Strongly correlated numeric pairs
	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			r, err := frame.Correlation(numeric[i], numeric[j])
			if err != nil || math.IsNaN(r) {
				continue
			}
			if math.Abs(r) > correlationThreshold {
				docs = append(docs, fmt.Sprintf("Correlation between %s and %s: %.2f",
					numeric[i], numeric[j], r))
			}
		}
	}

	return docs
}
