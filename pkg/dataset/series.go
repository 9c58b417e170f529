package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Kind is the inferred type of a column.
type Kind int

const (
	KindString Kind = iota
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float64"
	case KindBool:
		return "bool"
	default:
		return "object"
	}
}

// Series is a single typed column. Labeled series (value counts, null
// counts, dtypes) additionally carry index labels.
type Series struct {
	Name      string
	Kind      Kind
	IndexName string // empty for plain columns

	strs     []string
	floats   []float64
	bools    []bool
	nulls    []bool
	labels   []string // index labels; nil for positional series
	integral bool     // float series whose non-null values are all whole
}

func NewStringSeries(name string, values []string, nulls []bool) *Series {
	if nulls == nil {
		nulls = make([]bool, len(values))
	}
	return &Series{Name: name, Kind: KindString, strs: values, nulls: nulls}
}

func NewFloatSeries(name string, values []float64, nulls []bool) *Series {
	if nulls == nil {
		nulls = make([]bool, len(values))
	}
	s := &Series{Name: name, Kind: KindFloat, floats: values, nulls: nulls}
	s.integral = true
	for i, v := range values {
		if nulls[i] {
			continue
		}
		if v != math.Trunc(v) {
			s.integral = false
			break
		}
	}
	return s
}

func NewBoolSeries(name string, values []bool, nulls []bool) *Series {
	if nulls == nil {
		nulls = make([]bool, len(values))
	}
	return &Series{Name: name, Kind: KindBool, bools: values, nulls: nulls}
}

// NewLabeledFloatSeries builds an index→value series, e.g. value counts.
func NewLabeledFloatSeries(name, indexName string, labels []string, values []float64) *Series {
	s := NewFloatSeries(name, values, nil)
	s.IndexName = indexName
	s.labels = labels
	return s
}

// NewLabeledStringSeries builds an index→text series, e.g. dtypes.
func NewLabeledStringSeries(name, indexName string, labels []string, values []string) *Series {
	s := NewStringSeries(name, values, nil)
	s.IndexName = indexName
	s.labels = labels
	return s
}

func (s *Series) Len() int { return s.lenValues() }

func (s *Series) lenValues() int {
	switch s.Kind {
	case KindFloat:
		return len(s.floats)
	case KindBool:
		return len(s.bools)
	default:
		return len(s.strs)
	}
}

func (s *Series) IsNull(i int) bool { return s.nulls[i] }

// Labels returns index labels, or nil for positional series.
func (s *Series) Labels() []string { return s.labels }

// Label returns the index label at i, falling back to the position.
func (s *Series) Label(i int) string {
	if s.labels != nil {
		return s.labels[i]
	}
	return strconv.Itoa(i)
}

// Integral reports whether a float series holds only whole numbers.
func (s *Series) Integral() bool { return s.Kind == KindFloat && s.integral }

// Float returns the numeric value at i. Bool values count as 0/1.
func (s *Series) Float(i int) float64 {
	switch s.Kind {
	case KindFloat:
		return s.floats[i]
	case KindBool:
		if s.bools[i] {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func (s *Series) Bool(i int) bool { return s.bools[i] }

// Cell renders the value at i for display. Nulls render empty.
func (s *Series) Cell(i int) string {
	if s.nulls[i] {
		return ""
	}
	switch s.Kind {
	case KindFloat:
		return formatFloatCell(s.floats[i])
	case KindBool:
		if s.bools[i] {
			return "True"
		}
		return "False"
	default:
		return s.strs[i]
	}
}

func formatFloatCell(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Count returns the number of non-null values.
func (s *Series) Count() int {
	n := 0
	for _, isNull := range s.nulls {
		if !isNull {
			n++
		}
	}
	return n
}

// NullCount returns the number of null values.
func (s *Series) NullCount() int {
	return s.Len() - s.Count()
}

func (s *Series) nonNullFloats() []float64 {
	if s.Kind != KindFloat && s.Kind != KindBool {
		return nil
	}
	out := make([]float64, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		if !s.nulls[i] {
			out = append(out, s.Float(i))
		}
	}
	return out
}

func (s *Series) requireNumeric(op string) error {
	if s.Kind == KindString {
		return fmt.Errorf("cannot compute %s of non-numeric column '%s'", op, s.Name)
	}
	return nil
}

func (s *Series) Sum() (float64, error) {
	if err := s.requireNumeric("sum"); err != nil {
		return 0, err
	}
	total := 0.0
	for _, v := range s.nonNullFloats() {
		total += v
	}
	return total, nil
}

func (s *Series) Mean() (float64, error) {
	if err := s.requireNumeric("mean"); err != nil {
		return 0, err
	}
	vals := s.nonNullFloats()
	if len(vals) == 0 {
		return math.NaN(), nil
	}
	total := 0.0
	for _, v := range vals {
		total += v
	}
	return total / float64(len(vals)), nil
}

func (s *Series) Median() (float64, error) {
	if err := s.requireNumeric("median"); err != nil {
		return 0, err
	}
	vals := s.nonNullFloats()
	if len(vals) == 0 {
		return math.NaN(), nil
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], nil
	}
	return (sorted[mid-1] + sorted[mid]) / 2, nil
}

// Std returns the sample standard deviation (n-1 denominator).
func (s *Series) Std() (float64, error) {
	if err := s.requireNumeric("std"); err != nil {
		return 0, err
	}
	vals := s.nonNullFloats()
	if len(vals) < 2 {
		return math.NaN(), nil
	}
	mean := 0.0
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))
	variance := 0.0
	for _, v := range vals {
		d := v - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(vals)-1)), nil
}

func (s *Series) Min() (float64, error) {
	if err := s.requireNumeric("min"); err != nil {
		return 0, err
	}
	vals := s.nonNullFloats()
	if len(vals) == 0 {
		return math.NaN(), nil
	}
	minV := vals[0]
	for _, v := range vals[1:] {
		if v < minV {
			minV = v
		}
	}
	return minV, nil
}

func (s *Series) Max() (float64, error) {
	if err := s.requireNumeric("max"); err != nil {
		return 0, err
	}
	vals := s.nonNullFloats()
	if len(vals) == 0 {
		return math.NaN(), nil
	}
	maxV := vals[0]
	for _, v := range vals[1:] {
		if v > maxV {
			maxV = v
		}
	}
	return maxV, nil
}

// Unique returns non-null rendered values in first-seen order.
func (s *Series) Unique() []string {
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < s.Len(); i++ {
		if s.nulls[i] {
			continue
		}
		v := s.Cell(i)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// NUnique returns the count of distinct non-null values.
func (s *Series) NUnique() int {
	return len(s.Unique())
}

// ValueCounts returns counts per distinct value, descending by count with
// first-seen order breaking ties. The result is labeled by the source column.
func (s *Series) ValueCounts() *Series {
	order := s.Unique()
	counts := make(map[string]float64, len(order))
	for i := 0; i < s.Len(); i++ {
		if !s.nulls[i] {
			counts[s.Cell(i)]++
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})
	values := make([]float64, len(order))
	for i, label := range order {
		values[i] = counts[label]
	}
	return NewLabeledFloatSeries("count", s.Name, order, values)
}

// IsNullSeries returns a boolean series marking nulls.
func (s *Series) IsNullSeries() *Series {
	out := make([]bool, s.Len())
	copy(out, s.nulls)
	return NewBoolSeries(s.Name, out, nil)
}

// Lower returns a copy with string values lower-cased. Non-string series
// are returned as rendered lower-cased strings so equality filters still work.
func (s *Series) Lower() *Series {
	values := make([]string, s.Len())
	nulls := make([]bool, s.Len())
	for i := 0; i < s.Len(); i++ {
		nulls[i] = s.nulls[i]
		if !s.nulls[i] {
			values[i] = lowerASCII(s.Cell(i))
		}
	}
	out := NewStringSeries(s.Name, values, nulls)
	return out
}

func lowerASCII(v string) string {
	b := []byte(v)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

// CompareScalar applies op between each value and a scalar, yielding a mask.
// Nulls never match.
func (s *Series) CompareScalar(op string, text string, num float64, isNum bool) (*Series, error) {
	mask := make([]bool, s.Len())
	for i := 0; i < s.Len(); i++ {
		if s.nulls[i] {
			continue
		}
		var match bool
		var err error
		if isNum {
			if s.Kind == KindString {
				return nil, fmt.Errorf("cannot compare column '%s' with a number", s.Name)
			}
			match, err = compareFloats(op, s.Float(i), num)
		} else {
			match, err = compareStrings(op, s.Cell(i), text)
		}
		if err != nil {
			return nil, err
		}
		mask[i] = match
	}
	return NewBoolSeries(s.Name, mask, nil), nil
}

func compareFloats(op string, a, b float64) (bool, error) {
	switch op {
	case "==":
		return a == b, nil
	case "!=":
		return a != b, nil
	case ">":
		return a > b, nil
	case ">=":
		return a >= b, nil
	case "<":
		return a < b, nil
	case "<=":
		return a <= b, nil
	}
	return false, fmt.Errorf("unsupported comparison operator %q", op)
}

func compareStrings(op string, a, b string) (bool, error) {
	switch op {
	case "==":
		return a == b, nil
	case "!=":
		return a != b, nil
	case ">":
		return a > b, nil
	case ">=":
		return a >= b, nil
	case "<":
		return a < b, nil
	case "<=":
		return a <= b, nil
	}
	return false, fmt.Errorf("unsupported comparison operator %q", op)
}

// And combines two boolean masks.
func (s *Series) And(other *Series) (*Series, error) {
	if err := requireMasks(s, other); err != nil {
		return nil, err
	}
	out := make([]bool, s.Len())
	for i := range out {
		out[i] = s.bools[i] && other.bools[i]
	}
	return NewBoolSeries(s.Name, out, nil), nil
}

// Or combines two boolean masks.
func (s *Series) Or(other *Series) (*Series, error) {
	if err := requireMasks(s, other); err != nil {
		return nil, err
	}
	out := make([]bool, s.Len())
	for i := range out {
		out[i] = s.bools[i] || other.bools[i]
	}
	return NewBoolSeries(s.Name, out, nil), nil
}

func requireMasks(a, b *Series) error {
	if a.Kind != KindBool || b.Kind != KindBool {
		return fmt.Errorf("logical operators require boolean masks")
	}
	if a.Len() != b.Len() {
		return fmt.Errorf("mask length mismatch: %d vs %d", a.Len(), b.Len())
	}
	return nil
}

// Head returns the first n entries, preserving labels.
func (s *Series) Head(n int) *Series {
	if n < 0 {
		n = 0
	}
	if n > s.Len() {
		n = s.Len()
	}
	out := &Series{Name: s.Name, Kind: s.Kind, IndexName: s.IndexName, integral: s.integral}
	out.nulls = append([]bool(nil), s.nulls[:n]...)
	switch s.Kind {
	case KindFloat:
		out.floats = append([]float64(nil), s.floats[:n]...)
	case KindBool:
		out.bools = append([]bool(nil), s.bools[:n]...)
	default:
		out.strs = append([]string(nil), s.strs[:n]...)
	}
	if s.labels != nil {
		out.labels = append([]string(nil), s.labels[:n]...)
	}
	return out
}
