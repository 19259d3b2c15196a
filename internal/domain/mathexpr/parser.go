// Package mathexpr evaluates arithmetic expressions with a recursive
// descent parser. Only a closed grammar is accepted: numbers, the four
// basic operators, exponentiation, parentheses, sqrt and the constant
// pi. Anything else is rejected before evaluation.
package mathexpr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokenNumber tokenKind = iota
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenCaret
	tokenLParen
	tokenRParen
	tokenSqrt
	tokenPi
	tokenEOF
)

type token struct {
	kind  tokenKind
	value float64
	pos   int
}

// SyntaxError reports a malformed or unsupported expression.
type SyntaxError struct {
	Pos     int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid expression at position %d: %s", e.Pos, e.Message)
}

// EvalError reports an expression that parsed but produced no finite value.
type EvalError struct {
	Message string
}

func (e *EvalError) Error() string {
	return e.Message
}

// Normalize lowercases the expression and rewrites common spoken forms
// into operator syntax before lexing.
func Normalize(expr string) string {
	s := strings.ToLower(strings.TrimSpace(expr))
	replacer := strings.NewReplacer(
		"elevado a", "^",
		"raiz quadrada de", "sqrt",
		"vezes", "*",
		"dividido por", "/",
		"mais", "+",
		"menos", "-",
		",", ".",
	)
	return replacer.Replace(s)
}

// Eval normalizes, parses and evaluates expr. It returns an error on
// any token outside the grammar and on non-finite results such as
// division by zero.
func Eval(expr string) (float64, error) {
	tokens, err := lex(Normalize(expr))
	if err != nil {
		return 0, err
	}

	p := &parser{tokens: tokens}
	result, err := p.parseExpression()
	if err != nil {
		return 0, err
	}
	if p.peek().kind != tokenEOF {
		return 0, &SyntaxError{Pos: p.peek().pos, Message: "unexpected trailing input"}
	}
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, &EvalError{Message: "expression has no finite value"}
	}
	return result, nil
}

func lex(s string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n':
			i++
		case c == '+':
			tokens = append(tokens, token{kind: tokenPlus, pos: i})
			i++
		case c == '-':
			tokens = append(tokens, token{kind: tokenMinus, pos: i})
			i++
		case c == '*':
			tokens = append(tokens, token{kind: tokenStar, pos: i})
			i++
		case c == '/':
			tokens = append(tokens, token{kind: tokenSlash, pos: i})
			i++
		case c == '^':
			tokens = append(tokens, token{kind: tokenCaret, pos: i})
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokenLParen, pos: i})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokenRParen, pos: i})
			i++
		case c >= '0' && c <= '9' || c == '.':
			start := i
			for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
				i++
			}
			v, err := strconv.ParseFloat(s[start:i], 64)
			if err != nil {
				return nil, &SyntaxError{Pos: start, Message: fmt.Sprintf("malformed number %q", s[start:i])}
			}
			tokens = append(tokens, token{kind: tokenNumber, value: v, pos: start})
		case strings.HasPrefix(s[i:], "sqrt"):
			tokens = append(tokens, token{kind: tokenSqrt, pos: i})
			i += len("sqrt")
		case strings.HasPrefix(s[i:], "pi"):
			tokens = append(tokens, token{kind: tokenPi, pos: i})
			i += len("pi")
		default:
			return nil, &SyntaxError{Pos: i, Message: fmt.Sprintf("unsupported token %q", string(c))}
		}
	}
	tokens = append(tokens, token{kind: tokenEOF, pos: len(s)})
	return tokens, nil
}

// Grammar:
//
//	expression = term { ("+" | "-") term }
//	term       = power { ("*" | "/") power }
//	power      = unary [ "^" power ]
//	unary      = ["-"] primary
//	primary    = number | "pi" | "sqrt" primary | "(" expression ")"
type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokenEOF {
		p.pos++
	}
	return t
}

func (p *parser) parseExpression() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek().kind {
		case tokenPlus:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left += right
		case tokenMinus:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	left, err := p.parsePower()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek().kind {
		case tokenStar:
			p.next()
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			left *= right
		case tokenSlash:
			p.next()
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			left /= right
		default:
			return left, nil
		}
	}
}

// parsePower is right associative: 2^3^2 is 2^(3^2).
func (p *parser) parsePower() (float64, error) {
	base, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	if p.peek().kind == tokenCaret {
		p.next()
		exp, err := p.parsePower()
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exp), nil
	}
	return base, nil
}

func (p *parser) parseUnary() (float64, error) {
	if p.peek().kind == tokenMinus {
		p.next()
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return -v, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (float64, error) {
	t := p.next()
	switch t.kind {
	case tokenNumber:
		return t.value, nil
	case tokenPi:
		return math.Pi, nil
	case tokenSqrt:
		v, err := p.parsePrimary()
		if err != nil {
			return 0, err
		}
		return math.Sqrt(v), nil
	case tokenLParen:
		v, err := p.parseExpression()
		if err != nil {
			return 0, err
		}
		if closing := p.next(); closing.kind != tokenRParen {
			return 0, &SyntaxError{Pos: closing.pos, Message: "expected closing parenthesis"}
		}
		return v, nil
	case tokenEOF:
		return 0, &SyntaxError{Pos: t.pos, Message: "unexpected end of expression"}
	default:
		return 0, &SyntaxError{Pos: t.pos, Message: "unexpected token"}
	}
}
