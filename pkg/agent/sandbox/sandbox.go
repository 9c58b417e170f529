package sandbox

import (
	"fmt"

	"ai-datachat-be/pkg/dataset"
)

// ExecError wraps any failure during parsing or evaluation with the
// offending expression.
type ExecError struct {
	Expr string
	Err  error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("execute %q: %v", e.Expr, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// Execute parses and evaluates a restricted expression against a dataset.
// Semicolon-separated statements all run; the last one's value is the
// result. Every failure path, including runtime faults, surfaces as an
// *ExecError rather than a panic.
func Execute(code string, frame *dataset.Frame) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = &ExecError{Expr: code, Err: fmt.Errorf("runtime fault: %v", r)}
		}
	}()

	stmts, perr := parseProgram(code)
	if perr != nil {
		return nil, &ExecError{Expr: code, Err: perr}
	}

	e := &evaluator{frame: frame}
	var last value
	for _, stmt := range stmts {
		last, perr = e.eval(stmt)
		if perr != nil {
			return nil, &ExecError{Expr: code, Err: perr}
		}
	}

	out, perr := toResult(last)
	if perr != nil {
		return nil, &ExecError{Expr: code, Err: perr}
	}
	return out, nil
}
