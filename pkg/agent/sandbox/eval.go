package sandbox

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"ai-datachat-be/pkg/dataset"
)

// evaluator walks the AST with the dataset bound to the name 'df'. No
// other names resolve, so an expression can only ever read the frame.
type evaluator struct {
	frame *dataset.Frame
}

func (e *evaluator) eval(n node) (value, error) {
	switch n := n.(type) {
	case *nameNode:
		if n.name == "df" {
			return frameValue(e.frame), nil
		}
		return value{}, fmt.Errorf("name '%s' is not defined", n.name)
	case *numberNode:
		return numberValue(n.value, n.integral), nil
	case *stringNode:
		return stringValue(n.value), nil
	case *boolNode:
		return boolValue(n.value), nil
	case *listNode:
		elems := make([]value, len(n.elems))
		for i, elem := range n.elems {
			v, err := e.eval(elem)
			if err != nil {
				return value{}, err
			}
			elems[i] = v
		}
		return listValue(elems), nil
	case *unaryNode:
		return e.evalUnary(n)
	case *binaryNode:
		left, err := e.eval(n.left)
		if err != nil {
			return value{}, err
		}
		right, err := e.eval(n.right)
		if err != nil {
			return value{}, err
		}
		return evalBinary(n.op, left, right)
	case *attrNode:
		recv, err := e.eval(n.recv)
		if err != nil {
			return value{}, err
		}
		return evalAttr(recv, n.name)
	case *indexNode:
		return e.evalIndex(n)
	case *callNode:
		return e.evalCall(n)
	}
	return value{}, fmt.Errorf("unsupported syntax node")
}

func (e *evaluator) evalUnary(n *unaryNode) (value, error) {
	v, err := e.eval(n.operand)
	if err != nil {
		return value{}, err
	}
	if v.kind != valNumber {
		return value{}, fmt.Errorf("unary '%s' requires a number, got %s", n.op, v.kindName())
	}
	if n.op == "-" {
		return numberValue(-v.num, v.integral), nil
	}
	return v, nil
}

// evalAttr resolves data attributes. Method names are resolved at the
// call site, never here.
func evalAttr(recv value, name string) (value, error) {
	switch recv.kind {
	case valFrame:
		switch name {
		case "shape":
			rows, cols := recv.frame.Shape()
			return value{kind: valShape, rows: rows, colCount: cols}, nil
		case "columns":
			return value{kind: valColumns, columns: recv.frame.Columns()}, nil
		case "dtypes":
			return seriesValue(recv.frame.DTypes()), nil
		}
	case valSeries:
		if name == "str" {
			return value{kind: valStrAccessor, series: recv.series}, nil
		}
	}
	return value{}, fmt.Errorf("unknown attribute '%s' on %s", name, recv.kindName())
}

func (e *evaluator) evalIndex(n *indexNode) (value, error) {
	recv, err := e.eval(n.recv)
	if err != nil {
		return value{}, err
	}
	idx, err := e.eval(n.index)
	if err != nil {
		return value{}, err
	}

	switch recv.kind {
	case valFrame:
		switch {
		case idx.kind == valString:
			s, err := recv.frame.Column(idx.str)
			if err != nil {
				return value{}, err
			}
			return seriesValue(s), nil
		case idx.kind == valList:
			names := make([]string, len(idx.list))
			for i, elem := range idx.list {
				if elem.kind != valString {
					return value{}, fmt.Errorf("column selection list must contain only column names")
				}
				names[i] = elem.str
			}
			sub, err := recv.frame.Select(names)
			if err != nil {
				return value{}, err
			}
			return frameValue(sub), nil
		case idx.isMask():
			filtered, err := recv.frame.FilterMask(idx.series)
			if err != nil {
				return value{}, err
			}
			return frameValue(filtered), nil
		}
		return value{}, fmt.Errorf("dataframe index must be a column name, a name list, or a boolean mask")
	case valShape:
		i, err := scalarIndex(idx, 2)
		if err != nil {
			return value{}, err
		}
		if i == 0 {
			return intValue(recv.rows), nil
		}
		return intValue(recv.colCount), nil
	case valColumns:
		i, err := scalarIndex(idx, len(recv.columns))
		if err != nil {
			return value{}, err
		}
		return stringValue(recv.columns[i]), nil
	case valSeries:
		i, err := scalarIndex(idx, recv.series.Len())
		if err != nil {
			return value{}, err
		}
		return seriesScalar(recv.series, i), nil
	case valList:
		i, err := scalarIndex(idx, len(recv.list))
		if err != nil {
			return value{}, err
		}
		return recv.list[i], nil
	}
	return value{}, fmt.Errorf("%s is not subscriptable", recv.kindName())
}

// scalarIndex converts an index value to a bounds-checked position,
// supporting negative offsets from the end.
func scalarIndex(idx value, length int) (int, error) {
	if idx.kind != valNumber || !idx.integral {
		return 0, fmt.Errorf("index must be an integer")
	}
	i := int(idx.num)
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return 0, fmt.Errorf("index %d out of range for length %d", int(idx.num), length)
	}
	return i, nil
}

func (e *evaluator) evalCall(n *callNode) (value, error) {
	args := make([]value, len(n.args))
	for i, arg := range n.args {
		v, err := e.eval(arg)
		if err != nil {
			return value{}, err
		}
		args[i] = v
	}
	kwargs := make(map[string]value, len(n.kwargs))
	for _, kw := range n.kwargs {
		v, err := e.eval(kw.value)
		if err != nil {
			return value{}, err
		}
		kwargs[kw.name] = v
	}

	switch fn := n.fn.(type) {
	case *nameNode:
		if len(kwargs) > 0 {
			return value{}, fmt.Errorf("%s() takes no keyword arguments", fn.name)
		}
		return callBuiltin(fn.name, args)
	case *attrNode:
		recv, err := e.eval(fn.recv)
		if err != nil {
			return value{}, err
		}
		return callMethod(recv, fn.name, args, kwargs)
	}
	return value{}, fmt.Errorf("value is not callable")
}

func callMethod(recv value, name string, args []value, kwargs map[string]value) (value, error) {
	switch recv.kind {
	case valFrame:
		return frameMethod(recv.frame, name, args, kwargs)
	case valSeries:
		return seriesMethod(recv.series, name, args, kwargs)
	case valStrAccessor:
		return strMethod(recv.series, name, args)
	case valColumns:
		if name == "tolist" {
			elems := make([]value, len(recv.columns))
			for i, c := range recv.columns {
				elems[i] = stringValue(c)
			}
			return listValue(elems), nil
		}
	case valList:
		if name == "tolist" {
			return recv, nil
		}
	}
	return value{}, fmt.Errorf("unknown method '%s' on %s", name, recv.kindName())
}

func frameMethod(f *dataset.Frame, name string, args []value, kwargs map[string]value) (value, error) {
	switch name {
	case "head", "tail":
		n, err := optionalInt(args, 0, 5)
		if err != nil {
			return value{}, err
		}
		if name == "head" {
			return frameValue(f.Head(n)), nil
		}
		return frameValue(f.Tail(n)), nil
	case "describe":
		described, err := f.Describe()
		if err != nil {
			return value{}, err
		}
		return frameValue(described), nil
	case "isnull", "isna":
		return frameValue(f.IsNull()), nil
	case "sum":
		summed, err := f.SumColumns()
		if err != nil {
			return value{}, err
		}
		return seriesValue(summed), nil
	case "count":
		labels := f.Columns()
		values := make([]float64, len(labels))
		for i, col := range labels {
			s, err := f.Column(col)
			if err != nil {
				return value{}, err
			}
			values[i] = float64(s.Count())
		}
		return seriesValue(dataset.NewLabeledFloatSeries("count", "Column", labels, values)), nil
	case "sort_values":
		col, err := requireString(args, 0, "sort_values column")
		if err != nil {
			return value{}, err
		}
		ascending := true
		if v, ok := kwargs["ascending"]; ok {
			b, err := requireBool(v, "ascending")
			if err != nil {
				return value{}, err
			}
			ascending = b
		} else if len(args) > 1 {
			b, err := requireBool(args[1], "ascending")
			if err != nil {
				return value{}, err
			}
			ascending = b
		}
		sorted, err := f.SortValues(col, ascending)
		if err != nil {
			return value{}, err
		}
		return frameValue(sorted), nil
	case "nlargest", "nsmallest":
		n, err := requireInt(args, 0, name+" count")
		if err != nil {
			return value{}, err
		}
		col, err := requireString(args, 1, name+" column")
		if err != nil {
			return value{}, err
		}
		var out *dataset.Frame
		if name == "nlargest" {
			out, err = f.NLargest(n, col)
		} else {
			out, err = f.NSmallest(n, col)
		}
		if err != nil {
			return value{}, err
		}
		return frameValue(out), nil
	}
	return value{}, fmt.Errorf("unknown method '%s' on dataframe", name)
}

func seriesMethod(s *dataset.Series, name string, args []value, kwargs map[string]value) (value, error) {
	switch name {
	case "sum":
		total, err := s.Sum()
		if err != nil {
			return value{}, err
		}
		return numberValue(total, s.Kind == dataset.KindBool || s.Integral()), nil
	case "mean":
		v, err := s.Mean()
		if err != nil {
			return value{}, err
		}
		return numberValue(v, false), nil
	case "median":
		v, err := s.Median()
		if err != nil {
			return value{}, err
		}
		return numberValue(v, false), nil
	case "std":
		v, err := s.Std()
		if err != nil {
			return value{}, err
		}
		return numberValue(v, false), nil
	case "min":
		v, err := s.Min()
		if err != nil {
			return value{}, err
		}
		return numberValue(v, s.Integral()), nil
	case "max":
		v, err := s.Max()
		if err != nil {
			return value{}, err
		}
		return numberValue(v, s.Integral()), nil
	case "count":
		return intValue(s.Count()), nil
	case "nunique":
		return intValue(s.NUnique()), nil
	case "unique":
		uniques := s.Unique()
		elems := make([]value, len(uniques))
		for i, u := range uniques {
			elems[i] = stringValue(u)
		}
		return listValue(elems), nil
	case "value_counts":
		return seriesValue(s.ValueCounts()), nil
	case "to_frame":
		renamed := *s
		if v, ok := kwargs["name"]; ok {
			if v.kind != valString {
				return value{}, fmt.Errorf("to_frame name must be a string")
			}
			renamed.Name = v.str
		}
		return seriesValue(&renamed), nil
	case "isnull", "isna":
		return seriesValue(s.IsNullSeries()), nil
	case "tolist":
		elems := make([]value, s.Len())
		for i := 0; i < s.Len(); i++ {
			elems[i] = seriesScalar(s, i)
		}
		return listValue(elems), nil
	case "head":
		n, err := optionalInt(args, 0, 5)
		if err != nil {
			return value{}, err
		}
		return seriesValue(s.Head(n)), nil
	case "any":
		return boolValue(maskAny(s)), nil
	case "all":
		return boolValue(maskAll(s)), nil
	}
	return value{}, fmt.Errorf("unknown method '%s' on series", name)
}

func strMethod(s *dataset.Series, name string, args []value) (value, error) {
	switch name {
	case "lower":
		return seriesValue(s.Lower()), nil
	case "upper":
		values := make([]string, s.Len())
		nulls := make([]bool, s.Len())
		for i := 0; i < s.Len(); i++ {
			nulls[i] = s.IsNull(i)
			if !nulls[i] {
				values[i] = upperASCII(s.Cell(i))
			}
		}
		return seriesValue(dataset.NewStringSeries(s.Name, values, nulls)), nil
	case "contains":
		sub, err := requireString(args, 0, "contains pattern")
		if err != nil {
			return value{}, err
		}
		mask := make([]bool, s.Len())
		for i := 0; i < s.Len(); i++ {
			if !s.IsNull(i) {
				mask[i] = strings.Contains(s.Cell(i), sub)
			}
		}
		return seriesValue(dataset.NewBoolSeries(s.Name, mask, nil)), nil
	}
	return value{}, fmt.Errorf("unknown string method '%s'", name)
}

func upperASCII(v string) string {
	b := []byte(v)
	for i := range b {
		if b[i] >= 'a' && b[i] <= 'z' {
			b[i] -= 'a' - 'A'
		}
	}
	return string(b)
}

func maskAny(s *dataset.Series) bool {
	for i := 0; i < s.Len(); i++ {
		if !s.IsNull(i) && s.Float(i) != 0 {
			return true
		}
	}
	return false
}

func maskAll(s *dataset.Series) bool {
	for i := 0; i < s.Len(); i++ {
		if !s.IsNull(i) && s.Float(i) == 0 {
			return false
		}
	}
	return true
}

func callBuiltin(name string, args []value) (value, error) {
	switch name {
	case "len":
		v, err := oneArg(args, "len")
		if err != nil {
			return value{}, err
		}
		switch v.kind {
		case valFrame:
			return intValue(v.frame.NumRows()), nil
		case valSeries:
			return intValue(v.series.Len()), nil
		case valList:
			return intValue(len(v.list)), nil
		case valColumns:
			return intValue(len(v.columns)), nil
		case valString:
			return intValue(len(v.str)), nil
		}
		return value{}, fmt.Errorf("len() unsupported for %s", v.kindName())
	case "sum":
		v, err := oneArg(args, "sum")
		if err != nil {
			return value{}, err
		}
		switch v.kind {
		case valSeries:
			total, err := v.series.Sum()
			if err != nil {
				return value{}, err
			}
			return numberValue(total, v.series.Kind == dataset.KindBool || v.series.Integral()), nil
		case valList:
			total := 0.0
			integral := true
			for _, elem := range v.list {
				n, ok := numericOf(elem)
				if !ok {
					return value{}, fmt.Errorf("sum() requires numeric items")
				}
				total += n.num
				integral = integral && n.integral
			}
			return numberValue(total, integral), nil
		}
		return value{}, fmt.Errorf("sum() unsupported for %s", v.kindName())
	case "min", "max":
		return reduceMinMax(name, args)
	case "abs":
		v, err := oneArg(args, "abs")
		if err != nil {
			return value{}, err
		}
		if v.kind != valNumber {
			return value{}, fmt.Errorf("abs() requires a number")
		}
		return numberValue(math.Abs(v.num), v.integral), nil
	case "round":
		if len(args) < 1 || len(args) > 2 {
			return value{}, fmt.Errorf("round() takes 1 or 2 arguments")
		}
		if args[0].kind != valNumber {
			return value{}, fmt.Errorf("round() requires a number")
		}
		digits := 0
		if len(args) == 2 {
			d, err := requireInt(args, 1, "round digits")
			if err != nil {
				return value{}, err
			}
			digits = d
		}
		scale := math.Pow(10, float64(digits))
		rounded := math.Round(args[0].num*scale) / scale
		return floatValue(rounded), nil
	case "int":
		v, err := oneArg(args, "int")
		if err != nil {
			return value{}, err
		}
		switch v.kind {
		case valNumber:
			return numberValue(math.Trunc(v.num), true), nil
		case valString:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
			if err != nil {
				return value{}, fmt.Errorf("int() cannot parse %q", v.str)
			}
			return numberValue(math.Trunc(parsed), true), nil
		case valBool:
			if v.boolean {
				return intValue(1), nil
			}
			return intValue(0), nil
		}
		return value{}, fmt.Errorf("int() unsupported for %s", v.kindName())
	case "float":
		v, err := oneArg(args, "float")
		if err != nil {
			return value{}, err
		}
		switch v.kind {
		case valNumber:
			return numberValue(v.num, false), nil
		case valString:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
			if err != nil {
				return value{}, fmt.Errorf("float() cannot parse %q", v.str)
			}
			return numberValue(parsed, false), nil
		}
		return value{}, fmt.Errorf("float() unsupported for %s", v.kindName())
	case "str":
		v, err := oneArg(args, "str")
		if err != nil {
			return value{}, err
		}
		switch v.kind {
		case valNumber, valString, valBool, valShape:
			return stringValue(renderScalar(v)), nil
		}
		return value{}, fmt.Errorf("str() unsupported for %s", v.kindName())
	case "bool":
		v, err := oneArg(args, "bool")
		if err != nil {
			return value{}, err
		}
		b, err := truthy(v)
		if err != nil {
			return value{}, err
		}
		return boolValue(b), nil
	case "list":
		v, err := oneArg(args, "list")
		if err != nil {
			return value{}, err
		}
		switch v.kind {
		case valList:
			return v, nil
		case valColumns:
			elems := make([]value, len(v.columns))
			for i, c := range v.columns {
				elems[i] = stringValue(c)
			}
			return listValue(elems), nil
		case valSeries:
			return seriesMethod(v.series, "tolist", nil, nil)
		}
		return value{}, fmt.Errorf("list() unsupported for %s", v.kindName())
	case "sorted":
		v, err := oneArg(args, "sorted")
		if err != nil {
			return value{}, err
		}
		if v.kind != valList {
			return value{}, fmt.Errorf("sorted() requires a list")
		}
		out := append([]value(nil), v.list...)
		allNumeric := true
		for _, elem := range out {
			if _, ok := numericOf(elem); !ok {
				allNumeric = false
				break
			}
		}
		sort.SliceStable(out, func(a, b int) bool {
			if allNumeric {
				na, _ := numericOf(out[a])
				nb, _ := numericOf(out[b])
				return na.num < nb.num
			}
			return renderScalar(out[a]) < renderScalar(out[b])
		})
		return listValue(out), nil
	case "reversed":
		v, err := oneArg(args, "reversed")
		if err != nil {
			return value{}, err
		}
		if v.kind != valList {
			return value{}, fmt.Errorf("reversed() requires a list")
		}
		out := make([]value, len(v.list))
		for i, elem := range v.list {
			out[len(v.list)-1-i] = elem
		}
		return listValue(out), nil
	case "any", "all":
		v, err := oneArg(args, name)
		if err != nil {
			return value{}, err
		}
		if v.isMask() {
			if name == "any" {
				return boolValue(maskAny(v.series)), nil
			}
			return boolValue(maskAll(v.series)), nil
		}
		if v.kind != valList {
			return value{}, fmt.Errorf("%s() requires a list or boolean mask", name)
		}
		for _, elem := range v.list {
			b, err := truthy(elem)
			if err != nil {
				return value{}, err
			}
			if name == "any" && b {
				return boolValue(true), nil
			}
			if name == "all" && !b {
				return boolValue(false), nil
			}
		}
		return boolValue(name == "all"), nil
	case "range":
		if len(args) < 1 || len(args) > 3 {
			return value{}, fmt.Errorf("range() takes 1 to 3 arguments")
		}
		start, stop, step := 0, 0, 1
		var err error
		if len(args) == 1 {
			stop, err = requireInt(args, 0, "range stop")
		} else {
			start, err = requireInt(args, 0, "range start")
			if err == nil {
				stop, err = requireInt(args, 1, "range stop")
			}
			if err == nil && len(args) == 3 {
				step, err = requireInt(args, 2, "range step")
			}
		}
		if err != nil {
			return value{}, err
		}
		if step == 0 {
			return value{}, fmt.Errorf("range() step must not be zero")
		}
		var elems []value
		if step > 0 {
			for i := start; i < stop; i += step {
				elems = append(elems, intValue(i))
			}
		} else {
			for i := start; i > stop; i += step {
				elems = append(elems, intValue(i))
			}
		}
		return listValue(elems), nil
	case "enumerate":
		v, err := oneArg(args, "enumerate")
		if err != nil {
			return value{}, err
		}
		if v.kind != valList {
			return value{}, fmt.Errorf("enumerate() requires a list")
		}
		elems := make([]value, len(v.list))
		for i, elem := range v.list {
			elems[i] = listValue([]value{intValue(i), elem})
		}
		return listValue(elems), nil
	case "zip":
		if len(args) < 2 {
			return value{}, fmt.Errorf("zip() takes at least 2 lists")
		}
		shortest := -1
		for _, arg := range args {
			if arg.kind != valList {
				return value{}, fmt.Errorf("zip() requires lists")
			}
			if shortest < 0 || len(arg.list) < shortest {
				shortest = len(arg.list)
			}
		}
		elems := make([]value, shortest)
		for i := 0; i < shortest; i++ {
			pair := make([]value, len(args))
			for j, arg := range args {
				pair[j] = arg.list[i]
			}
			elems[i] = listValue(pair)
		}
		return listValue(elems), nil
	}
	return value{}, fmt.Errorf("name '%s' is not defined", name)
}

func reduceMinMax(name string, args []value) (value, error) {
	var elems []value
	switch {
	case len(args) == 1 && args[0].kind == valList:
		elems = args[0].list
	case len(args) == 1 && args[0].kind == valSeries:
		s := args[0].series
		var v float64
		var err error
		if name == "min" {
			v, err = s.Min()
		} else {
			v, err = s.Max()
		}
		if err != nil {
			return value{}, err
		}
		return numberValue(v, s.Integral()), nil
	case len(args) >= 2:
		elems = args
	default:
		return value{}, fmt.Errorf("%s() requires a list, a series, or multiple numbers", name)
	}
	if len(elems) == 0 {
		return value{}, fmt.Errorf("%s() of an empty sequence", name)
	}
	best, ok := numericOf(elems[0])
	if !ok {
		return value{}, fmt.Errorf("%s() requires numeric items", name)
	}
	for _, elem := range elems[1:] {
		n, ok := numericOf(elem)
		if !ok {
			return value{}, fmt.Errorf("%s() requires numeric items", name)
		}
		if (name == "min" && n.num < best.num) || (name == "max" && n.num > best.num) {
			best = n
		}
	}
	return best, nil
}

func evalBinary(op string, left, right value) (value, error) {
	switch op {
	case "&", "|":
		return evalLogical(op, left, right)
	case "==", "!=", ">", ">=", "<", "<=":
		return evalComparison(op, left, right)
	case "+", "-", "*", "/":
		return evalArithmetic(op, left, right)
	}
	return value{}, fmt.Errorf("unsupported operator %q", op)
}

func evalLogical(op string, left, right value) (value, error) {
	if left.isMask() && right.isMask() {
		var out *dataset.Series
		var err error
		if op == "&" {
			out, err = left.series.And(right.series)
		} else {
			out, err = left.series.Or(right.series)
		}
		if err != nil {
			return value{}, err
		}
		return seriesValue(out), nil
	}
	if left.kind == valBool && right.kind == valBool {
		if op == "&" {
			return boolValue(left.boolean && right.boolean), nil
		}
		return boolValue(left.boolean || right.boolean), nil
	}
	return value{}, fmt.Errorf("'%s' requires two boolean masks", op)
}

func evalComparison(op string, left, right value) (value, error) {
	if left.kind == valSeries && isScalar(right) {
		return compareSeries(left.series, op, right)
	}
	if right.kind == valSeries && isScalar(left) {
		return compareSeries(right.series, flipOp(op), left)
	}

	ln, lok := numericOf(left)
	rn, rok := numericOf(right)
	switch {
	case lok && rok:
		return boolValue(compareFloats(op, ln.num, rn.num)), nil
	case left.kind == valString && right.kind == valString:
		return boolValue(compareStrings(op, left.str, right.str)), nil
	}
	return value{}, fmt.Errorf("cannot compare %s with %s", left.kindName(), right.kindName())
}

func compareSeries(s *dataset.Series, op string, scalar value) (value, error) {
	var mask *dataset.Series
	var err error
	switch scalar.kind {
	case valNumber:
		mask, err = s.CompareScalar(op, "", scalar.num, true)
	case valBool:
		n := 0.0
		if scalar.boolean {
			n = 1.0
		}
		mask, err = s.CompareScalar(op, "", n, true)
	default:
		mask, err = s.CompareScalar(op, scalar.str, 0, false)
	}
	if err != nil {
		return value{}, err
	}
	return seriesValue(mask), nil
}

func flipOp(op string) string {
	switch op {
	case ">":
		return "<"
	case ">=":
		return "<="
	case "<":
		return ">"
	case "<=":
		return ">="
	}
	return op
}

func evalArithmetic(op string, left, right value) (value, error) {
	if op == "+" && left.kind == valString && right.kind == valString {
		return stringValue(left.str + right.str), nil
	}
	ln, lok := numericOf(left)
	rn, rok := numericOf(right)
	if !lok || !rok {
		return value{}, fmt.Errorf("'%s' unsupported between %s and %s", op, left.kindName(), right.kindName())
	}
	switch op {
	case "+":
		return numberValue(ln.num+rn.num, ln.integral && rn.integral), nil
	case "-":
		return numberValue(ln.num-rn.num, ln.integral && rn.integral), nil
	case "*":
		return numberValue(ln.num*rn.num, ln.integral && rn.integral), nil
	case "/":
		if rn.num == 0 {
			return value{}, fmt.Errorf("division by zero")
		}
		return numberValue(ln.num/rn.num, false), nil
	}
	return value{}, fmt.Errorf("unsupported operator %q", op)
}

func isScalar(v value) bool {
	return v.kind == valNumber || v.kind == valString || v.kind == valBool
}

// numericOf coerces numbers and booleans to a numeric value.
func numericOf(v value) (value, bool) {
	switch v.kind {
	case valNumber:
		return v, true
	case valBool:
		if v.boolean {
			return intValue(1), true
		}
		return intValue(0), true
	}
	return value{}, false
}

func truthy(v value) (bool, error) {
	switch v.kind {
	case valBool:
		return v.boolean, nil
	case valNumber:
		return v.num != 0, nil
	case valString:
		return v.str != "", nil
	case valList:
		return len(v.list) > 0, nil
	}
	return false, fmt.Errorf("cannot interpret %s as a boolean", v.kindName())
}

func compareFloats(op string, a, b float64) bool {
	switch op {
	case "==":
		return a == b
	case "!=":
		return a != b
	case ">":
		return a > b
	case ">=":
		return a >= b
	case "<":
		return a < b
	}
	return a <= b
}

func compareStrings(op string, a, b string) bool {
	switch op {
	case "==":
		return a == b
	case "!=":
		return a != b
	case ">":
		return a > b
	case ">=":
		return a >= b
	case "<":
		return a < b
	}
	return a <= b
}

func seriesScalar(s *dataset.Series, i int) value {
	if s.IsNull(i) {
		if s.Kind == dataset.KindFloat {
			return numberValue(math.NaN(), false)
		}
		return stringValue("None")
	}
	switch s.Kind {
	case dataset.KindFloat:
		return floatValue(s.Float(i))
	case dataset.KindBool:
		return boolValue(s.Bool(i))
	default:
		return stringValue(s.Cell(i))
	}
}

func oneArg(args []value, name string) (value, error) {
	if len(args) != 1 {
		return value{}, fmt.Errorf("%s() takes exactly 1 argument", name)
	}
	return args[0], nil
}

func optionalInt(args []value, i, def int) (int, error) {
	if len(args) <= i {
		return def, nil
	}
	return requireInt(args, i, "argument")
}

func requireInt(args []value, i int, what string) (int, error) {
	if len(args) <= i {
		return 0, fmt.Errorf("missing %s", what)
	}
	v := args[i]
	if v.kind != valNumber || !v.integral {
		return 0, fmt.Errorf("%s must be an integer", what)
	}
	return int(v.num), nil
}

func requireString(args []value, i int, what string) (string, error) {
	if len(args) <= i {
		return "", fmt.Errorf("missing %s", what)
	}
	if args[i].kind != valString {
		return "", fmt.Errorf("%s must be a string", what)
	}
	return args[i].str, nil
}

func requireBool(v value, what string) (bool, error) {
	if v.kind != valBool {
		return false, fmt.Errorf("%s must be True or False", what)
	}
	return v.boolean, nil
}
