package sandbox

import (
	"fmt"
	"strconv"
	"strings"
)

type node interface{}

type nameNode struct{ name string }

type numberNode struct {
	value    float64
	integral bool
}

type stringNode struct{ value string }

type boolNode struct{ value bool }

type listNode struct{ elems []node }

type unaryNode struct {
	op      string
	operand node
}

type binaryNode struct {
	op          string
	left, right node
}

type attrNode struct {
	recv node
	name string
}

type kwarg struct {
	name  string
	value node
}

type callNode struct {
	fn     node
	args   []node
	kwargs []kwarg
}

type indexNode struct {
	recv  node
	index node
}

type parser struct {
	toks []token
	pos  int
}

// parseProgram parses a semicolon-separated sequence of expressions.
func parseProgram(code string) ([]node, error) {
	toks, err := lex(code)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	var stmts []node
	for p.peek().kind != tokEOF {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, expr)
		if p.peek().kind == tokSemi {
			p.next()
			continue
		}
		if p.peek().kind != tokEOF {
			return nil, fmt.Errorf("unexpected token %q at position %d", p.peek().text, p.peek().pos)
		}
	}
	if len(stmts) == 0 {
		return nil, fmt.Errorf("empty expression")
	}
	return stmts, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) peekAt(offset int) token {
	i := p.pos + offset
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) peekOp(ops ...string) bool {
	t := p.peek()
	if t.kind != tokOp {
		return false
	}
	for _, op := range ops {
		if t.text == op {
			return true
		}
	}
	return false
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	t := p.peek()
	if t.kind != kind {
		return token{}, fmt.Errorf("expected %s at position %d, got %q", what, t.pos, t.text)
	}
	return p.next(), nil
}

func (p *parser) parseExpr() (node, error) { return p.parseOr() }

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peekOp("|") {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: "|", left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.peekOp("&") {
		p.next()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: "&", left: left, right: right}
	}
	return left, nil
}

// parseComparison handles a single, non-chained comparison.
func (p *parser) parseComparison() (node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if p.peekOp("==", "!=", ">=", "<=", ">", "<") {
		op := p.next().text
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return &binaryNode{op: op, left: left, right: right}, nil
	}
	return left, nil
}

func (p *parser) parseAdditive() (node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.peekOp("+", "-") {
		op := p.next().text
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peekOp("*", "/") {
		op := p.next().text
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.peekOp("-", "+") {
		op := p.next().text
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &unaryNode{op: op, operand: operand}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary followed by any chain of attribute
// accesses, calls, and subscripts.
func (p *parser) parsePostfix() (node, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokDot:
			p.next()
			name, err := p.expect(tokIdent, "attribute name")
			if err != nil {
				return nil, err
			}
			expr = &attrNode{recv: expr, name: name.text}
		case tokLParen:
			p.next()
			args, kwargs, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = &callNode{fn: expr, args: args, kwargs: kwargs}
		case tokLBracket:
			p.next()
			index, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(tokRBracket, "']'"); err != nil {
				return nil, err
			}
			expr = &indexNode{recv: expr, index: index}
		default:
			return expr, nil
		}
	}
}

func (p *parser) parseArgs() ([]node, []kwarg, error) {
	var args []node
	var kwargs []kwarg
	if p.peek().kind == tokRParen {
		p.next()
		return args, kwargs, nil
	}
	for {
		if p.peek().kind == tokIdent && p.peekAt(1).kind == tokOp && p.peekAt(1).text == "=" {
			name := p.next().text
			p.next() // '='
			val, err := p.parseExpr()
			if err != nil {
				return nil, nil, err
			}
			kwargs = append(kwargs, kwarg{name: name, value: val})
		} else {
			val, err := p.parseExpr()
			if err != nil {
				return nil, nil, err
			}
			if len(kwargs) > 0 {
				return nil, nil, fmt.Errorf("positional argument after keyword argument")
			}
			args = append(args, val)
		}
		if p.peek().kind == tokComma {
			p.next()
			continue
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, nil, err
		}
		return args, kwargs, nil
	}
}

func (p *parser) parsePrimary() (node, error) {
	t := p.peek()
	switch t.kind {
	case tokNumber:
		p.next()
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", t.text)
		}
		return &numberNode{value: v, integral: !strings.Contains(t.text, ".")}, nil
	case tokString:
		p.next()
		return &stringNode{value: t.text}, nil
	case tokIdent:
		p.next()
		switch t.text {
		case "True":
			return &boolNode{value: true}, nil
		case "False":
			return &boolNode{value: false}, nil
		}
		return &nameNode{name: t.text}, nil
	case tokLParen:
		p.next()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return expr, nil
	case tokLBracket:
		p.next()
		var elems []node
		if p.peek().kind == tokRBracket {
			p.next()
			return &listNode{}, nil
		}
		for {
			elem, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
			if p.peek().kind == tokComma {
				p.next()
				continue
			}
			if _, err := p.expect(tokRBracket, "']'"); err != nil {
				return nil, err
			}
			return &listNode{elems: elems}, nil
		}
	}
	return nil, fmt.Errorf("unexpected token %q at position %d", t.text, t.pos)
}
