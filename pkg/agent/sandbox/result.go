package sandbox

import (
	"fmt"

	"ai-datachat-be/pkg/dataset"
)

// ResultKind discriminates the closed set of shapes an expression can
// produce.
type ResultKind int

const (
	ResultTable ResultKind = iota
	ResultSeries
	ResultNumber
	ResultString
	ResultBool
	ResultList
	ResultShape
	ResultMapping
)

// Result is the typed outcome of executing an expression. Exactly one
// payload field is meaningful, selected by Kind.
type Result struct {
	Kind ResultKind

	Table    *dataset.Frame
	Series   *dataset.Series
	Number   float64
	Integral bool
	Str      string
	Bool     bool
	List     []string
	Rows     int
	Cols     int
	Keys     []string
	Values   []string
}

// toResult converts a final evaluator value to the public union.
// Mid-expression kinds that leaked to the end are errors.
func toResult(v value) (*Result, error) {
	switch v.kind {
	case valFrame:
		return &Result{Kind: ResultTable, Table: v.frame}, nil
	case valSeries:
		return &Result{Kind: ResultSeries, Series: v.series}, nil
	case valNumber:
		return &Result{Kind: ResultNumber, Number: v.num, Integral: v.integral}, nil
	case valString:
		return &Result{Kind: ResultString, Str: v.str}, nil
	case valBool:
		return &Result{Kind: ResultBool, Bool: v.boolean}, nil
	case valList:
		items := make([]string, len(v.list))
		for i, elem := range v.list {
			items[i] = renderScalar(elem)
		}
		return &Result{Kind: ResultList, List: items}, nil
	case valShape:
		return &Result{Kind: ResultShape, Rows: v.rows, Cols: v.colCount}, nil
	case valColumns:
		return &Result{Kind: ResultList, List: append([]string(nil), v.columns...)}, nil
	}
	return nil, fmt.Errorf("expression ended with an incomplete %s value", v.kindName())
}
