package sandbox

import (
	"testing"

	"ai-datachat-be/pkg/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const peopleCSV = "name,age,salary,gender\n" +
	"John,25,50000,Male\n" +
	"Jane Doe,30,60000,Female\n" +
	"Bob,35,70000,Female\n"

func peopleFrame(t *testing.T) *dataset.Frame {
	t.Helper()
	f, _, err := dataset.Load([]byte(peopleCSV))
	require.NoError(t, err)
	return f
}

func run(t *testing.T, code string) *Result {
	t.Helper()
	res, err := Execute(code, peopleFrame(t))
	require.NoError(t, err)
	return res
}

func TestShape(t *testing.T) {
	res := run(t, "df.shape")
	assert.Equal(t, ResultShape, res.Kind)
	assert.Equal(t, 3, res.Rows)
	assert.Equal(t, 4, res.Cols)
}

func TestShapeIndexing(t *testing.T) {
	res := run(t, "df.shape[0]")
	assert.Equal(t, ResultNumber, res.Kind)
	assert.Equal(t, 3.0, res.Number)
	assert.True(t, res.Integral)
}

func TestColumnsToList(t *testing.T) {
	res := run(t, "df.columns.tolist()")
	assert.Equal(t, ResultList, res.Kind)
	assert.Equal(t, []string{"name", "age", "salary", "gender"}, res.List)
}

func TestLenOfFrame(t *testing.T) {
	res := run(t, "len(df)")
	assert.Equal(t, ResultNumber, res.Kind)
	assert.Equal(t, 3.0, res.Number)
	assert.True(t, res.Integral)
}

func TestLenOfColumns(t *testing.T) {
	res := run(t, "len(df.columns)")
	assert.Equal(t, 4.0, res.Number)
}

func TestColumnSum(t *testing.T) {
	res := run(t, "df['salary'].sum()")
	assert.Equal(t, ResultNumber, res.Kind)
	assert.Equal(t, 180000.0, res.Number)
	assert.True(t, res.Integral)
}

func TestColumnMeanIsFloat(t *testing.T) {
	res := run(t, "df['age'].mean()")
	assert.Equal(t, 30.0, res.Number)
	assert.False(t, res.Integral)
}

func TestValueCountsToFrame(t *testing.T) {
	res := run(t, "df['gender'].value_counts().to_frame(name='Count')")
	require.Equal(t, ResultSeries, res.Kind)
	s := res.Series
	assert.Equal(t, "Count", s.Name)
	assert.Equal(t, "gender", s.IndexName)
	require.Equal(t, 2, s.Len())
	assert.Equal(t, "Female", s.Label(0))
	assert.Equal(t, 2.0, s.Float(0))
	assert.Equal(t, "Male", s.Label(1))
	assert.Equal(t, 1.0, s.Float(1))
}

func TestCaseInsensitiveFilter(t *testing.T) {
	res := run(t, "df[df['name'].str.lower() == 'jane doe']")
	require.Equal(t, ResultTable, res.Kind)
	require.Equal(t, 1, res.Table.NumRows())
	name, err := res.Table.Column("name")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", name.Cell(0))
}

func TestFilteredCount(t *testing.T) {
	res := run(t, "(df['gender'].str.lower() == 'male').sum()")
	assert.Equal(t, 1.0, res.Number)
	assert.True(t, res.Integral)
}

func TestCombinedMasks(t *testing.T) {
	res := run(t, "df[(df['age'] > 25) & (df['gender'] == 'Female')]")
	require.Equal(t, ResultTable, res.Kind)
	assert.Equal(t, 2, res.Table.NumRows())

	res = run(t, "df[(df['age'] < 30) | (df['age'] > 30)]")
	assert.Equal(t, 2, res.Table.NumRows())
}

func TestIsNullChain(t *testing.T) {
	res := run(t, "df.isnull().sum()")
	require.Equal(t, ResultSeries, res.Kind)
	assert.Equal(t, "Column", res.Series.IndexName)

	res = run(t, "df.isnull().sum().sum()")
	assert.Equal(t, ResultNumber, res.Kind)
	assert.Equal(t, 0.0, res.Number)
}

func TestSortAndNLargest(t *testing.T) {
	res := run(t, "df.sort_values('salary', ascending=False)")
	require.Equal(t, ResultTable, res.Kind)
	name, err := res.Table.Column("name")
	require.NoError(t, err)
	assert.Equal(t, "Bob", name.Cell(0))

	res = run(t, "df.nlargest(2, 'salary')")
	assert.Equal(t, 2, res.Table.NumRows())

	res = run(t, "df.nsmallest(1, 'age')")
	name, err = res.Table.Column("name")
	require.NoError(t, err)
	assert.Equal(t, "John", name.Cell(0))
}

func TestHeadDefaultsToFive(t *testing.T) {
	res := run(t, "df.head()")
	require.Equal(t, ResultTable, res.Kind)
	assert.Equal(t, 3, res.Table.NumRows())

	res = run(t, "df.head(2)")
	assert.Equal(t, 2, res.Table.NumRows())

	res = run(t, "df.tail(1)")
	name, err := res.Table.Column("name")
	require.NoError(t, err)
	assert.Equal(t, "Bob", name.Cell(0))
}

func TestColumnSelection(t *testing.T) {
	res := run(t, "df[['name', 'salary']]")
	require.Equal(t, ResultTable, res.Kind)
	assert.Equal(t, []string{"name", "salary"}, res.Table.Columns())
}

func TestUniqueAndNUnique(t *testing.T) {
	res := run(t, "df['gender'].unique().tolist()")
	assert.Equal(t, []string{"Male", "Female"}, res.List)

	res = run(t, "df['gender'].nunique()")
	assert.Equal(t, 2.0, res.Number)
}

func TestDTypes(t *testing.T) {
	res := run(t, "df.dtypes")
	require.Equal(t, ResultSeries, res.Kind)
	assert.Equal(t, "object", res.Series.Cell(0))
	assert.Equal(t, "float64", res.Series.Cell(1))
}

func TestDescribe(t *testing.T) {
	res := run(t, "df.describe()")
	require.Equal(t, ResultTable, res.Kind)
	assert.Equal(t, []string{"Statistic", "age", "salary"}, res.Table.Columns())
	assert.Equal(t, 8, res.Table.NumRows())
}

func TestSemicolonSequenceReturnsLast(t *testing.T) {
	res := run(t, "len(df); df.shape")
	assert.Equal(t, ResultShape, res.Kind)
}

func TestArithmetic(t *testing.T) {
	res := run(t, "df['salary'].max() - df['salary'].min()")
	assert.Equal(t, 20000.0, res.Number)
	assert.True(t, res.Integral)

	res = run(t, "round(df['age'].std(), 2)")
	assert.Equal(t, 5.0, res.Number)
}

func TestScalarComparison(t *testing.T) {
	res := run(t, "df['age'].mean() > 25")
	assert.Equal(t, ResultBool, res.Kind)
	assert.True(t, res.Bool)
}

func TestReversedScalarComparison(t *testing.T) {
	res := run(t, "df[30 <= df['age']]")
	require.Equal(t, ResultTable, res.Kind)
	assert.Equal(t, 2, res.Table.NumRows())
}

func TestStrContains(t *testing.T) {
	res := run(t, "df[df['name'].str.contains('o')]")
	require.Equal(t, ResultTable, res.Kind)
	assert.Equal(t, 3, res.Table.NumRows())
}

func TestUndefinedNameFails(t *testing.T) {
	_, err := Execute("frame.head()", peopleFrame(t))
	var execErr *ExecError
	require.ErrorAs(t, err, &execErr)
	assert.Contains(t, err.Error(), "not defined")
}

func TestUnknownBuiltinFails(t *testing.T) {
	_, err := Execute("eval(df)", peopleFrame(t))
	require.Error(t, err)
}

func TestUnknownColumnFails(t *testing.T) {
	_, err := Execute("df['missing'].sum()", peopleFrame(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestStringAggregateFails(t *testing.T) {
	_, err := Execute("df['name'].mean()", peopleFrame(t))
	require.Error(t, err)
}

func TestDivisionByZeroFails(t *testing.T) {
	_, err := Execute("len(df) / 0", peopleFrame(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "division by zero")
}

func TestParseErrorSurfaces(t *testing.T) {
	_, err := Execute("df['unterminated", peopleFrame(t))
	var execErr *ExecError
	require.ErrorAs(t, err, &execErr)
}

func TestDanglingStrAccessorFails(t *testing.T) {
	_, err := Execute("df['name'].str", peopleFrame(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incomplete")
}

func TestNegativeListIndex(t *testing.T) {
	res := run(t, "df.columns.tolist()[-1]")
	assert.Equal(t, ResultString, res.Kind)
	assert.Equal(t, "gender", res.Str)
}

func TestBuiltinsOverLists(t *testing.T) {
	res := run(t, "sorted(df['age'].tolist())")
	assert.Equal(t, []string{"25", "30", "35"}, res.List)

	res = run(t, "max(df['age'].tolist())")
	assert.Equal(t, 35.0, res.Number)

	res = run(t, "sum(df['age'].tolist())")
	assert.Equal(t, 90.0, res.Number)
}
