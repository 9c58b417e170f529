package dataset

import (
	"fmt"
	"sort"
)

// Frame is an immutable in-memory tabular dataset. Column order is
// preserved from the source file.
type Frame struct {
	cols  []string
	data  map[string]*Series
	nrows int
}

// NewFrame builds a frame from ordered series. All series must share a length.
func NewFrame(series []*Series) (*Frame, error) {
	f := &Frame{data: make(map[string]*Series, len(series))}
	for i, s := range series {
		if i == 0 {
			f.nrows = s.Len()
		} else if s.Len() != f.nrows {
			return nil, fmt.Errorf("column '%s' has %d rows, expected %d", s.Name, s.Len(), f.nrows)
		}
		if _, dup := f.data[s.Name]; dup {
			return nil, fmt.Errorf("duplicate column '%s'", s.Name)
		}
		f.cols = append(f.cols, s.Name)
		f.data[s.Name] = s
	}
	return f, nil
}

func (f *Frame) Columns() []string {
	return append([]string(nil), f.cols...)
}

func (f *Frame) NumRows() int { return f.nrows }
func (f *Frame) NumCols() int { return len(f.cols) }

// Shape returns (rows, columns).
func (f *Frame) Shape() (int, int) { return f.nrows, len(f.cols) }

// Column returns the named series.
func (f *Frame) Column(name string) (*Series, error) {
	s, ok := f.data[name]
	if !ok {
		return nil, fmt.Errorf("column '%s' does not exist", name)
	}
	return s, nil
}

// NumericColumns returns names of float-typed columns in frame order.
func (f *Frame) NumericColumns() []string {
	var out []string
	for _, name := range f.cols {
		if f.data[name].Kind == KindFloat {
			out = append(out, name)
		}
	}
	return out
}

// DTypes returns a labeled series mapping column name to dtype string.
func (f *Frame) DTypes() *Series {
	labels := make([]string, len(f.cols))
	values := make([]string, len(f.cols))
	for i, name := range f.cols {
		labels[i] = name
		values[i] = f.data[name].Kind.String()
	}
	return NewLabeledStringSeries("Data Type", "Column", labels, values)
}

// NullCounts returns a labeled series mapping column name to null count.
func (f *Frame) NullCounts() *Series {
	labels := make([]string, len(f.cols))
	values := make([]float64, len(f.cols))
	for i, name := range f.cols {
		labels[i] = name
		values[i] = float64(f.data[name].NullCount())
	}
	return NewLabeledFloatSeries("Missing Values", "Column", labels, values)
}

func (f *Frame) takeRows(idx []int) *Frame {
	out := &Frame{cols: append([]string(nil), f.cols...), data: make(map[string]*Series, len(f.cols)), nrows: len(idx)}
	for _, name := range f.cols {
		src := f.data[name]
		dst := &Series{Name: src.Name, Kind: src.Kind, integral: src.integral}
		dst.nulls = make([]bool, len(idx))
		switch src.Kind {
		case KindFloat:
			dst.floats = make([]float64, len(idx))
			for j, i := range idx {
				dst.floats[j] = src.floats[i]
				dst.nulls[j] = src.nulls[i]
			}
		case KindBool:
			dst.bools = make([]bool, len(idx))
			for j, i := range idx {
				dst.bools[j] = src.bools[i]
				dst.nulls[j] = src.nulls[i]
			}
		default:
			dst.strs = make([]string, len(idx))
			for j, i := range idx {
				dst.strs[j] = src.strs[i]
				dst.nulls[j] = src.nulls[i]
			}
		}
		out.data[name] = dst
	}
	return out
}

// Head returns the first n rows.
func (f *Frame) Head(n int) *Frame {
	if n < 0 {
		n = 0
	}
	if n > f.nrows {
		n = f.nrows
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return f.takeRows(idx)
}

// Tail returns the last n rows.
func (f *Frame) Tail(n int) *Frame {
	if n < 0 {
		n = 0
	}
	if n > f.nrows {
		n = f.nrows
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = f.nrows - n + i
	}
	return f.takeRows(idx)
}

// FilterMask keeps rows where the boolean mask is true.
func (f *Frame) FilterMask(mask *Series) (*Frame, error) {
	if mask.Kind != KindBool {
		return nil, fmt.Errorf("frame filter requires a boolean mask")
	}
	if mask.Len() != f.nrows {
		return nil, fmt.Errorf("mask length %d does not match %d rows", mask.Len(), f.nrows)
	}
	var idx []int
	for i := 0; i < f.nrows; i++ {
		if mask.bools[i] {
			idx = append(idx, i)
		}
	}
	return f.takeRows(idx), nil
}

// Select returns a frame restricted to the named columns, in given order.
func (f *Frame) Select(names []string) (*Frame, error) {
	series := make([]*Series, 0, len(names))
	for _, name := range names {
		s, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		series = append(series, s)
	}
	out, err := NewFrame(series)
	if err != nil {
		return nil, err
	}
	out.nrows = f.nrows
	return out, nil
}

// SortValues sorts rows by a column. Nulls always sink to the bottom.
// The sort is stable so equal keys keep their original order.
func (f *Frame) SortValues(column string, ascending bool) (*Frame, error) {
	s, err := f.Column(column)
	if err != nil {
		return nil, err
	}
	idx := make([]int, f.nrows)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ia, ib := idx[a], idx[b]
		if s.nulls[ia] != s.nulls[ib] {
			return !s.nulls[ia]
		}
		if s.nulls[ia] {
			return false
		}
		var less bool
		if s.Kind == KindString {
			less = s.strs[ia] < s.strs[ib]
		} else {
			less = s.Float(ia) < s.Float(ib)
		}
		if ascending {
			return less
		}
		if s.Kind == KindString {
			return s.strs[ia] > s.strs[ib]
		}
		return s.Float(ia) > s.Float(ib)
	})
	return f.takeRows(idx), nil
}

// NLargest returns the n rows with the largest values in column.
func (f *Frame) NLargest(n int, column string) (*Frame, error) {
	sorted, err := f.SortValues(column, false)
	if err != nil {
		return nil, err
	}
	return sorted.Head(n), nil
}

// NSmallest returns the n rows with the smallest values in column.
func (f *Frame) NSmallest(n int, column string) (*Frame, error) {
	sorted, err := f.SortValues(column, true)
	if err != nil {
		return nil, err
	}
	return sorted.Head(n), nil
}

// IsNull returns a frame of boolean null markers, same shape.
func (f *Frame) IsNull() *Frame {
	out := &Frame{cols: append([]string(nil), f.cols...), data: make(map[string]*Series, len(f.cols)), nrows: f.nrows}
	for _, name := range f.cols {
		out.data[name] = f.data[name].IsNullSeries()
	}
	return out
}

// SumColumns reduces each column to its sum, yielding a labeled series.
// Boolean columns count true values; string columns are skipped the way
// a null-marker frame never contains them.
func (f *Frame) SumColumns() (*Series, error) {
	labels := make([]string, 0, len(f.cols))
	values := make([]float64, 0, len(f.cols))
	for _, name := range f.cols {
		s := f.data[name]
		if s.Kind == KindString {
			continue
		}
		total, err := s.Sum()
		if err != nil {
			return nil, err
		}
		labels = append(labels, name)
		values = append(values, total)
	}
	return NewLabeledFloatSeries("", "Column", labels, values), nil
}

// Describe computes summary statistics for numeric columns, with the
// statistic names as an explicit leading column.
func (f *Frame) Describe() (*Frame, error) {
	numeric := f.NumericColumns()
	if len(numeric) == 0 {
		return nil, fmt.Errorf("no numeric columns to describe")
	}
	statNames := []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}
	series := []*Series{NewStringSeries("Statistic", statNames, nil)}
	for _, name := range numeric {
		col := f.data[name]
		vals := col.nonNullFloats()
		stats := make([]float64, len(statNames))
		stats[0] = float64(len(vals))
		stats[1], _ = col.Mean()
		stats[2], _ = col.Std()
		stats[3], _ = col.Min()
		stats[4] = percentile(vals, 0.25)
		stats[5] = percentile(vals, 0.50)
		stats[6] = percentile(vals, 0.75)
		stats[7], _ = col.Max()
		series = append(series, NewFloatSeries(name, stats, nil))
	}
	return NewFrame(series)
}

// percentile uses linear interpolation between closest ranks, matching the
// conventional spreadsheet definition.
func percentile(sortedInput []float64, p float64) float64 {
	if len(sortedInput) == 0 {
		return 0
	}
	vals := append([]float64(nil), sortedInput...)
	sort.Float64s(vals)
	if len(vals) == 1 {
		return vals[0]
	}
	rank := p * float64(len(vals)-1)
	lo := int(rank)
	hi := lo + 1
	if hi >= len(vals) {
		return vals[len(vals)-1]
	}
	frac := rank - float64(lo)
	return vals[lo]*(1-frac) + vals[hi]*frac
}
