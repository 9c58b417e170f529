package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"ai-datachat-be/pkg/agent/sandbox"
	"ai-datachat-be/pkg/dataset"
)

const (
	maxDisplayRows = 20
	emptyMarker    = "*(Empty result)*"
)

// Format converts an execution result into its canonical display string.
// It is total: every result kind maps to a rule, and an internal fault
// degrades to a generic rendering instead of propagating.
func Format(res *sandbox.Result) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = generic(res)
		}
	}()
	if res == nil {
		return emptyMarker
	}

	switch res.Kind {
	case sandbox.ResultTable:
		return formatTable(res.Table)
	case sandbox.ResultSeries:
		return formatSeries(res.Series)
	case sandbox.ResultList:
		return formatList(res.List)
	case sandbox.ResultNumber:
		return formatNumber(res.Number, res.Integral)
	case sandbox.ResultString:
		if res.Str == "" {
			return emptyMarker
		}
		return res.Str
	case sandbox.ResultBool:
		if res.Bool {
			return "Yes"
		}
		return "No"
	case sandbox.ResultShape:
		return fmt.Sprintf("Rows: %s, Columns: %s",
			groupDigits(strconv.Itoa(res.Rows)), groupDigits(strconv.Itoa(res.Cols)))
	case sandbox.ResultMapping:
		return formatMapping(res.Keys, res.Values)
	}
	return generic(res)
}

func formatTable(f *dataset.Frame) string {
	if f == nil || f.NumRows() == 0 || f.NumCols() == 0 {
		return emptyMarker
	}
	total := f.NumRows()
	shown := total
	if shown > maxDisplayRows {
		shown = maxDisplayRows
	}

	headers := f.Columns()
	rows := make([][]string, shown)
	for i := 0; i < shown; i++ {
		row := make([]string, len(headers))
		for j, col := range headers {
			s, err := f.Column(col)
			if err != nil {
				row[j] = ""
				continue
			}
			row[j] = s.Cell(i)
		}
		rows[i] = row
	}

	out := markdownTable(headers, rows)
	if total > maxDisplayRows {
		out += fmt.Sprintf("\n\nShowing first %d of %d rows", maxDisplayRows, total)
	}
	return out
}

// formatSeries renders a labeled sequence as a two-column table. The
// index header falls back to Item and the value header to Value.
func formatSeries(s *dataset.Series) string {
	if s == nil || s.Len() == 0 {
		return emptyMarker
	}
	indexHeader := s.IndexName
	if indexHeader == "" {
		indexHeader = "Item"
	}
	valueHeader := s.Name
	if valueHeader == "" {
		valueHeader = "Value"
	}

	total := s.Len()
	shown := total
	if shown > maxDisplayRows {
		shown = maxDisplayRows
	}

	rows := make([][]string, shown)
	for i := 0; i < shown; i++ {
		rows[i] = []string{s.Label(i), seriesCell(s, i)}
	}

	out := markdownTable([]string{indexHeader, valueHeader}, rows)
	if total > maxDisplayRows {
		out += fmt.Sprintf("\n\nShowing first %d of %d values", maxDisplayRows, total)
	}
	return out
}

func seriesCell(s *dataset.Series, i int) string {
	if s.IsNull(i) {
		return ""
	}
	if s.Kind == dataset.KindFloat {
		return formatNumber(s.Float(i), s.Integral())
	}
	return s.Cell(i)
}

func formatList(items []string) string {
	if len(items) == 0 {
		return emptyMarker
	}
	if len(items) <= maxDisplayRows {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:maxDisplayRows], ", ") +
		fmt.Sprintf("\n\nShowing first %d of %d items", maxDisplayRows, len(items))
}

func formatMapping(keys, values []string) string {
	if len(keys) == 0 {
		return emptyMarker
	}
	rows := make([][]string, len(keys))
	for i, k := range keys {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		rows[i] = []string{k, v}
	}
	return markdownTable([]string{"Key", "Value"}, rows)
}

// formatNumber applies thousands separators; floats get exactly two
// decimal places, integral values none.
func formatNumber(v float64, integral bool) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if math.IsInf(v, 0) {
		if v > 0 {
			return "Inf"
		}
		return "-Inf"
	}
	if integral && math.Abs(v) < 1e15 {
		return groupDigits(strconv.FormatInt(int64(v), 10))
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	dot := strings.Index(s, ".")
	return groupDigits(s[:dot]) + s[dot:]
}

// groupDigits inserts comma separators into a decimal integer string,
// preserving a leading sign.
func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	var sb strings.Builder
	first := n % 3
	if first > 0 {
		sb.WriteString(s[:first])
	}
	for i := first; i < n; i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sign + sb.String()
}

func markdownTable(headers []string, rows [][]string) string {
	var sb strings.Builder
	sb.WriteString("|")
	for _, h := range headers {
		sb.WriteString(" ")
		sb.WriteString(h)
		sb.WriteString(" |")
	}
	sb.WriteString("\n|")
	for range headers {
		sb.WriteString(" --- |")
	}
	for _, row := range rows {
		sb.WriteString("\n|")
		for _, cell := range row {
			sb.WriteString(" ")
			sb.WriteString(cell)
			sb.WriteString(" |")
		}
	}
	return sb.String()
}

// generic is the last-resort rendering; it must never fail itself.
func generic(res *sandbox.Result) string {
	if res == nil {
		return emptyMarker
	}
	return fmt.Sprintf("Result: %+v", *res)
}
