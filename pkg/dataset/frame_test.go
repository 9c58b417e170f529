package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame(t *testing.T) *Frame {
	t.Helper()
	f, _, err := Load([]byte("name,age,salary\nJohn,25,50000\nJane,30,60000\nBob,35,70000\n"))
	require.NoError(t, err)
	return f
}

func TestLoadInfersTypes(t *testing.T) {
	f := testFrame(t)

	assert.Equal(t, []string{"name", "age", "salary"}, f.Columns())
	assert.Equal(t, 3, f.NumRows())

	name, err := f.Column("name")
	require.NoError(t, err)
	assert.Equal(t, KindString, name.Kind)

	age, err := f.Column("age")
	require.NoError(t, err)
	assert.Equal(t, KindFloat, age.Kind)
	assert.True(t, age.Integral())
}

func TestLoadSniffsSemicolonDelimiter(t *testing.T) {
	f, _, err := Load([]byte("a;b\n1;2\n3;4\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, f.NumCols())
	assert.Equal(t, 2, f.NumRows())
}

func TestLoadHashIsContentDerived(t *testing.T) {
	_, h1, err := Load([]byte("a,b\n1,2\n"))
	require.NoError(t, err)
	_, h2, err := Load([]byte("a,b\n1,2\n"))
	require.NoError(t, err)
	_, h3, err := Load([]byte("a,b\n1,3\n"))
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
}

func TestLoadRejectsEmpty(t *testing.T) {
	_, _, err := Load([]byte("a,b\n"))
	assert.Error(t, err)
}

func TestSeriesAggregates(t *testing.T) {
	f := testFrame(t)
	salary, err := f.Column("salary")
	require.NoError(t, err)

	sum, err := salary.Sum()
	require.NoError(t, err)
	assert.Equal(t, 180000.0, sum)

	mean, err := salary.Mean()
	require.NoError(t, err)
	assert.Equal(t, 60000.0, mean)

	median, err := salary.Median()
	require.NoError(t, err)
	assert.Equal(t, 60000.0, median)

	std, err := salary.Std()
	require.NoError(t, err)
	assert.InDelta(t, 10000.0, std, 1e-9)

	minV, err := salary.Min()
	require.NoError(t, err)
	assert.Equal(t, 50000.0, minV)

	maxV, err := salary.Max()
	require.NoError(t, err)
	assert.Equal(t, 70000.0, maxV)
}

func TestSeriesAggregateRejectsStrings(t *testing.T) {
	f := testFrame(t)
	name, _ := f.Column("name")
	_, err := name.Sum()
	assert.Error(t, err)
}

func TestValueCounts(t *testing.T) {
	s := NewStringSeries("gender", []string{"Male", "Female", "Female"}, nil)
	vc := s.ValueCounts()

	assert.Equal(t, []string{"Female", "Male"}, vc.Labels())
	assert.Equal(t, "gender", vc.IndexName)
	assert.Equal(t, 2.0, vc.Float(0))
	assert.Equal(t, 1.0, vc.Float(1))
}

func TestFilterMaskAndLower(t *testing.T) {
	f := testFrame(t)
	name, _ := f.Column("name")

	mask, err := name.Lower().CompareScalar("==", "jane", 0, false)
	require.NoError(t, err)

	filtered, err := f.FilterMask(mask)
	require.NoError(t, err)
	assert.Equal(t, 1, filtered.NumRows())

	col, _ := filtered.Column("name")
	assert.Equal(t, "Jane", col.Cell(0))
}

func TestSortAndNLargest(t *testing.T) {
	f := testFrame(t)

	sorted, err := f.SortValues("salary", false)
	require.NoError(t, err)
	col, _ := sorted.Column("name")
	assert.Equal(t, "Bob", col.Cell(0))

	top, err := f.NLargest(2, "salary")
	require.NoError(t, err)
	assert.Equal(t, 2, top.NumRows())
	names, _ := top.Column("name")
	assert.Equal(t, "Bob", names.Cell(0))
	assert.Equal(t, "Jane", names.Cell(1))
}

func TestNullHandling(t *testing.T) {
	f, _, err := Load([]byte("a,b\n1,x\n,y\n3,\n"))
	require.NoError(t, err)

	counts := f.NullCounts()
	assert.Equal(t, []string{"a", "b"}, counts.Labels())
	assert.Equal(t, 1.0, counts.Float(0))
	assert.Equal(t, 1.0, counts.Float(1))

	total, err := f.IsNull().SumColumns()
	require.NoError(t, err)
	sum, err := total.Sum()
	require.NoError(t, err)
	assert.Equal(t, 2.0, sum)
}

func TestCorrelation(t *testing.T) {
	f, _, err := Load([]byte("x,y,z\n1,2,5\n2,4,1\n3,6,9\n4,8,2\n"))
	require.NoError(t, err)

	r, err := f.Correlation("x", "y")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 1e-9)

	r2, err := f.Correlation("x", "z")
	require.NoError(t, err)
	assert.Less(t, math.Abs(r2), 1.0)
}

func TestDescribe(t *testing.T) {
	f := testFrame(t)
	desc, err := f.Describe()
	require.NoError(t, err)

	assert.Equal(t, []string{"Statistic", "age", "salary"}, desc.Columns())
	assert.Equal(t, 8, desc.NumRows())

	stat, _ := desc.Column("Statistic")
	assert.Equal(t, "count", stat.Cell(0))
	age, _ := desc.Column("age")
	assert.Equal(t, 3.0, age.Float(0))  // count
	assert.Equal(t, 30.0, age.Float(1)) // mean
}
