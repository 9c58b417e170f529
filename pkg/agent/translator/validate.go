package translator

import (
	"fmt"
	"regexp"
	"strings"
)

// invalidPatterns reject expressions that create new record structures.
var invalidPatterns = []string{
	"pd.DataFrame(",
	"{",
}

// reassignPattern catches `df = ...` without tripping on `df == ...`.
var reassignPattern = regexp.MustCompile(`\bdf\s*=(?:[^=]|$)`)

// Validate checks a candidate line against the restricted grammar rules.
func Validate(code string) error {
	if !strings.Contains(code, "df") {
		return fmt.Errorf("expression does not reference the dataset")
	}
	for _, pattern := range invalidPatterns {
		if strings.Contains(code, pattern) {
			return fmt.Errorf("expression contains forbidden pattern %q", pattern)
		}
	}
	if reassignPattern.MatchString(code) {
		return fmt.Errorf("expression reassigns the dataset binding")
	}
	if strings.Contains(code, "import") || strings.Contains(code, "__") {
		return fmt.Errorf("expression contains forbidden construct")
	}
	return nil
}

var comparisonOps = []string{"==", "!=", ">=", "<=", ">", "<"}
var chainedMethods = []string{".sum()", ".count()", ".mean()", ".any()", ".all()"}

// Repair fixes the common malformation of an aggregation glued directly
// onto a comparison value, e.g.
//
//	df['gender'] == 'male'.sum()  ->  (df['gender'] == 'male').sum()
//
// Already-parenthesized comparisons are left alone.
func Repair(code string) string {
	hasComparison := false
	for _, op := range comparisonOps {
		if strings.Contains(code, op) {
			hasComparison = true
			break
		}
	}
	if !hasComparison {
		return code
	}

	method := ""
	for _, m := range chainedMethods {
		if strings.Contains(code, m) {
			method = m
			break
		}
	}
	if method == "" {
		return code
	}

	// Wrapped already and the closing paren comes before the aggregation
	if strings.HasPrefix(code, "(") && strings.Index(code, ")") < strings.Index(code, method) {
		return code
	}

	for _, op := range comparisonOps {
		idx := strings.Index(code, op)
		if idx < 0 {
			continue
		}
		left := strings.TrimSpace(code[:idx])
		right := strings.TrimSpace(code[idx+len(op):])
		mIdx := strings.Index(right, method)
		if mIdx < 0 {
			return code
		}
		value := strings.TrimSpace(right[:mIdx])
		tail := right[mIdx:]
		return fmt.Sprintf("(%s %s %s)%s", left, op, value, tail)
	}
	return code
}
