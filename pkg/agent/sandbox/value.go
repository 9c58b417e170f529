package sandbox

import (
	"math"
	"strconv"

	"ai-datachat-be/pkg/dataset"
)

type valueKind int

const (
	valFrame valueKind = iota
	valSeries
	valNumber
	valString
	valBool
	valList
	valShape
	valColumns
	valStrAccessor
)

// value is the evaluator's internal union. Some kinds (columns objects,
// string accessors) exist only mid-expression and never escape as results.
type value struct {
	kind     valueKind
	frame    *dataset.Frame
	series   *dataset.Series
	num      float64
	integral bool
	str      string
	boolean  bool
	list     []value
	rows     int
	colCount int
	columns  []string
}

func frameValue(f *dataset.Frame) value   { return value{kind: valFrame, frame: f} }
func seriesValue(s *dataset.Series) value { return value{kind: valSeries, series: s} }
func stringValue(s string) value          { return value{kind: valString, str: s} }
func boolValue(b bool) value              { return value{kind: valBool, boolean: b} }
func listValue(elems []value) value       { return value{kind: valList, list: elems} }

func numberValue(v float64, integral bool) value {
	return value{kind: valNumber, num: v, integral: integral}
}

func floatValue(v float64) value {
	return numberValue(v, v == math.Trunc(v) && !math.IsNaN(v) && !math.IsInf(v, 0))
}

func intValue(v int) value { return numberValue(float64(v), true) }

// isMask reports whether the value is a row-aligned boolean series.
func (v value) isMask() bool {
	return v.kind == valSeries && v.series.Kind == dataset.KindBool
}

func (v value) kindName() string {
	switch v.kind {
	case valFrame:
		return "dataframe"
	case valSeries:
		return "series"
	case valNumber:
		return "number"
	case valString:
		return "string"
	case valBool:
		return "boolean"
	case valList:
		return "list"
	case valShape:
		return "shape"
	case valColumns:
		return "columns"
	case valStrAccessor:
		return "string accessor"
	}
	return "unknown"
}

// renderScalar renders a scalar value for display inside lists and str().
func renderScalar(v value) string {
	switch v.kind {
	case valNumber:
		if math.IsNaN(v.num) {
			return "NaN"
		}
		if v.integral && math.Abs(v.num) < 1e15 {
			return strconv.FormatInt(int64(v.num), 10)
		}
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case valString:
		return v.str
	case valBool:
		if v.boolean {
			return "True"
		}
		return "False"
	case valShape:
		return "(" + strconv.Itoa(v.rows) + ", " + strconv.Itoa(v.colCount) + ")"
	}
	return ""
}
