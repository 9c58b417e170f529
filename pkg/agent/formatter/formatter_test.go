package formatter

import (
	"fmt"
	"strings"
	"testing"

	"ai-datachat-be/pkg/agent/sandbox"
	"ai-datachat-be/pkg/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallTable(t *testing.T, rows int) *dataset.Frame {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("name,age\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&sb, "person%d,%d\n", i, 20+i)
	}
	f, _, err := dataset.Load([]byte(sb.String()))
	require.NoError(t, err)
	return f
}

func TestTableRendersMarkdown(t *testing.T) {
	out := Format(&sandbox.Result{Kind: sandbox.ResultTable, Table: smallTable(t, 2)})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| name | age |", lines[0])
	assert.Equal(t, "| --- | --- |", lines[1])
	assert.Equal(t, "| person0 | 20 |", lines[2])
	assert.Equal(t, "| person1 | 21 |", lines[3])
}

func TestTableTruncationNotice(t *testing.T) {
	out := Format(&sandbox.Result{Kind: sandbox.ResultTable, Table: smallTable(t, 25)})

	assert.Contains(t, out, "Showing first 20 of 25 rows")
	// header + separator + exactly 20 data rows before the notice
	body := strings.Split(out, "\n\n")[0]
	assert.Len(t, strings.Split(body, "\n"), 22)
}

func TestTableAtLimitHasNoNotice(t *testing.T) {
	out := Format(&sandbox.Result{Kind: sandbox.ResultTable, Table: smallTable(t, 20)})
	assert.NotContains(t, out, "Showing first")
}

func TestEmptyTable(t *testing.T) {
	f, _, err := dataset.Load([]byte("a,b\n1,2\n"))
	require.NoError(t, err)
	empty := f.Head(0)
	out := Format(&sandbox.Result{Kind: sandbox.ResultTable, Table: empty})
	assert.Equal(t, "*(Empty result)*", out)
}

func TestLabeledSeriesAsTwoColumnTable(t *testing.T) {
	s := dataset.NewLabeledFloatSeries("Count", "gender", []string{"Female", "Male"}, []float64{2, 1})
	out := Format(&sandbox.Result{Kind: sandbox.ResultSeries, Series: s})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| gender | Count |", lines[0])
	assert.Equal(t, "| Female | 2 |", lines[2])
	assert.Equal(t, "| Male | 1 |", lines[3])
}

func TestSeriesHeaderFallbacks(t *testing.T) {
	s := dataset.NewLabeledFloatSeries("", "", []string{"a"}, []float64{1})
	out := Format(&sandbox.Result{Kind: sandbox.ResultSeries, Series: s})
	assert.True(t, strings.HasPrefix(out, "| Item | Value |"))
}

func TestSeriesTruncationNotice(t *testing.T) {
	labels := make([]string, 30)
	values := make([]float64, 30)
	for i := range labels {
		labels[i] = fmt.Sprintf("k%d", i)
		values[i] = float64(i)
	}
	s := dataset.NewLabeledFloatSeries("Count", "key", labels, values)
	out := Format(&sandbox.Result{Kind: sandbox.ResultSeries, Series: s})
	assert.Contains(t, out, "Showing first 20 of 30 values")
}

func TestListJoining(t *testing.T) {
	out := Format(&sandbox.Result{Kind: sandbox.ResultList, List: []string{"a", "b", "c"}})
	assert.Equal(t, "a, b, c", out)
}

func TestListTruncationNotice(t *testing.T) {
	items := make([]string, 23)
	for i := range items {
		items[i] = fmt.Sprintf("v%d", i)
	}
	out := Format(&sandbox.Result{Kind: sandbox.ResultList, List: items})
	assert.Contains(t, out, "Showing first 20 of 23 items")
	assert.NotContains(t, out, "v20,")
}

func TestEmptyList(t *testing.T) {
	out := Format(&sandbox.Result{Kind: sandbox.ResultList})
	assert.Equal(t, "*(Empty result)*", out)
}

func TestNumberFormatting(t *testing.T) {
	tests := []struct {
		value    float64
		integral bool
		want     string
	}{
		{1234567, true, "1,234,567"},
		{180000, true, "180,000"},
		{999, true, "999"},
		{-4200, true, "-4,200"},
		{1234.5, false, "1,234.50"},
		{0.5, false, "0.50"},
		{30, false, "30.00"},
	}
	for _, tt := range tests {
		out := Format(&sandbox.Result{Kind: sandbox.ResultNumber, Number: tt.value, Integral: tt.integral})
		assert.Equal(t, tt.want, out)
	}
}

func TestBooleanYesNo(t *testing.T) {
	assert.Equal(t, "Yes", Format(&sandbox.Result{Kind: sandbox.ResultBool, Bool: true}))
	assert.Equal(t, "No", Format(&sandbox.Result{Kind: sandbox.ResultBool, Bool: false}))
}

func TestShape(t *testing.T) {
	out := Format(&sandbox.Result{Kind: sandbox.ResultShape, Rows: 15000, Cols: 8})
	assert.Equal(t, "Rows: 15,000, Columns: 8", out)
}

func TestMapping(t *testing.T) {
	out := Format(&sandbox.Result{
		Kind:   sandbox.ResultMapping,
		Keys:   []string{"mean", "max"},
		Values: []string{"30.00", "35"},
	})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| Key | Value |", lines[0])
	assert.Equal(t, "| mean | 30.00 |", lines[2])
}

func TestStringPassthrough(t *testing.T) {
	assert.Equal(t, "hello", Format(&sandbox.Result{Kind: sandbox.ResultString, Str: "hello"}))
	assert.Equal(t, "*(Empty result)*", Format(&sandbox.Result{Kind: sandbox.ResultString}))
}

func TestNilResultDegrades(t *testing.T) {
	assert.Equal(t, "*(Empty result)*", Format(nil))
}

func TestFaultDegradesToGeneric(t *testing.T) {
	// A series result with a nil series must not panic through Format.
	out := Format(&sandbox.Result{Kind: sandbox.ResultSeries})
	assert.NotEmpty(t, out)
}

func TestEveryKindProducesNonEmptyOutput(t *testing.T) {
	f := smallTable(t, 1)
	results := []*sandbox.Result{
		{Kind: sandbox.ResultTable, Table: f},
		{Kind: sandbox.ResultSeries, Series: dataset.NewLabeledFloatSeries("n", "k", []string{"a"}, []float64{1})},
		{Kind: sandbox.ResultList, List: []string{"x"}},
		{Kind: sandbox.ResultNumber, Number: 1, Integral: true},
		{Kind: sandbox.ResultString, Str: "s"},
		{Kind: sandbox.ResultBool, Bool: true},
		{Kind: sandbox.ResultShape, Rows: 1, Cols: 1},
		{Kind: sandbox.ResultMapping, Keys: []string{"k"}, Values: []string{"v"}},
	}
	for _, res := range results {
		assert.NotEmpty(t, Format(res))
	}
}
