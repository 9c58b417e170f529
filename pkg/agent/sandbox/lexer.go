package sandbox

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokOp
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokComma
	tokDot
	tokSemi
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// lex tokenizes a single expression. Anything outside the restricted
// grammar's alphabet is an immediate error.
func lex(input string) ([]token, error) {
	var toks []token
	i := 0
	n := len(input)
	for i < n {
		c := input[i]
		start := i
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case isIdentStart(c):
			for i < n && isIdentPart(input[i]) {
				i++
			}
			toks = append(toks, token{tokIdent, input[start:i], start})
		case isDigit(c):
			for i < n && isDigit(input[i]) {
				i++
			}
			if i+1 < n && input[i] == '.' && isDigit(input[i+1]) {
				i++
				for i < n && isDigit(input[i]) {
					i++
				}
			}
			toks = append(toks, token{tokNumber, input[start:i], start})
		case c == '\'' || c == '"':
			quote := c
			i++
			var sb strings.Builder
			closed := false
			for i < n {
				if input[i] == '\\' && i+1 < n {
					sb.WriteByte(input[i+1])
					i += 2
					continue
				}
				if input[i] == quote {
					closed = true
					i++
					break
				}
				sb.WriteByte(input[i])
				i++
			}
			if !closed {
				return nil, fmt.Errorf("unterminated string literal at position %d", start)
			}
			toks = append(toks, token{tokString, sb.String(), start})
		case c == '(':
			toks = append(toks, token{tokLParen, "(", start})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", start})
			i++
		case c == '[':
			toks = append(toks, token{tokLBracket, "[", start})
			i++
		case c == ']':
			toks = append(toks, token{tokRBracket, "]", start})
			i++
		case c == ',':
			toks = append(toks, token{tokComma, ",", start})
			i++
		case c == '.':
			toks = append(toks, token{tokDot, ".", start})
			i++
		case c == ';':
			toks = append(toks, token{tokSemi, ";", start})
			i++
		case c == '=' || c == '!' || c == '<' || c == '>':
			if i+1 < n && input[i+1] == '=' {
				toks = append(toks, token{tokOp, input[i : i+2], start})
				i += 2
			} else if c == '!' {
				return nil, fmt.Errorf("unexpected character '!' at position %d", start)
			} else {
				toks = append(toks, token{tokOp, string(c), start})
				i++
			}
		case c == '+' || c == '-' || c == '*' || c == '/' || c == '|' || c == '&':
			toks = append(toks, token{tokOp, string(c), start})
			i++
		default:
			return nil, fmt.Errorf("unexpected character %q at position %d", string(c), start)
		}
	}
	toks = append(toks, token{tokEOF, "", n})
	return toks, nil
}
