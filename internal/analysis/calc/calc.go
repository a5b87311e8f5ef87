// Package calc evaluates restricted arithmetic expressions: decimal numbers,
// + - * / ^, parentheses, unary signs and whitespace. Nothing else is accepted.
package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidExpression marks input with disallowed characters or bad syntax.
	ErrInvalidExpression = errors.New("invalid expression")
	// ErrNonNumericResult marks evaluations that end in NaN or ±Inf.
	ErrNonNumericResult = errors.New("non-numeric result")
)

// maxDepth bounds parenthesis/unary nesting.
const maxDepth = 256

// Validate reports ErrInvalidExpression if expr contains a character outside
// digits, whitespace, "+-*/()^.".
func Validate(expr string) error {
	if expr == "" {
		return fmt.Errorf("%w: empty", ErrInvalidExpression)
	}
	for _, r := range expr {
		if !allowed(r) {
			return fmt.Errorf("%w: character %q not allowed", ErrInvalidExpression, r)
		}
	}
	return nil
}

func allowed(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r == ' ', r == '\t', r == '\n', r == '\r', r == '\v', r == '\f':
		return true
	}
	return strings.ContainsRune("+-*/()^.", r)
}

// Eval validates and evaluates expr. ^ is right-associative and binds tighter
// than unary minus, so -2^2 is -4 and 2^-1 is 0.5.
func Eval(expr string) (float64, error) {
	if err := Validate(expr); err != nil {
		return 0, err
	}

	tokens, err := tokenize(expr)
	if err != nil {
		return 0, err
	}

	p := &parser{tokens: tokens}
	value, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if !p.done() {
		return 0, fmt.Errorf("%w: unexpected %s", ErrInvalidExpression, p.peek())
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, ErrNonNumericResult
	}
	// normalise -0
	if value == 0 {
		value = 0
	}
	return value, nil
}

// Format renders a result the way users expect to read it: integers without a
// fractional part, very large or small magnitudes in exponent form with an
// unpadded exponent ("1e-7", "1e+21").
func Format(v float64) string {
	abs := math.Abs(v)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		s := strconv.FormatFloat(v, 'g', -1, 64)
		if i := strings.IndexByte(s, 'e'); i >= 0 && i+2 < len(s) {
			// s[i+1] is always the exponent sign
			s = s[:i+2] + strings.TrimLeft(s[i+2:], "0")
		}
		return s
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind  tokenKind
	op    byte
	value float64
	text  string
}

func (t token) String() string {
	if t.kind == tokNumber {
		return fmt.Sprintf("number %q", t.text)
	}
	return fmt.Sprintf("%q", t.text)
}

func tokenize(expr string) ([]token, error) {
	tokens := make([]token, 0, len(expr)/2+1)

	for i := 0; i < len(expr); {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f':
			i++
		case (c >= '0' && c <= '9') || c == '.':
			start := i
			dots := 0
			for i < len(expr) && ((expr[i] >= '0' && expr[i] <= '9') || expr[i] == '.') {
				if expr[i] == '.' {
					dots++
				}
				i++
			}
			text := expr[start:i]
			if dots > 1 || text == "." {
				return nil, fmt.Errorf("%w: malformed number %q", ErrInvalidExpression, text)
			}
			value, err := strconv.ParseFloat(text, 64)
			if err != nil {
				// out-of-range literals come back as ±Inf and are rejected after evaluation
				var numErr *strconv.NumError
				if !errors.As(err, &numErr) || !errors.Is(numErr.Err, strconv.ErrRange) {
					return nil, fmt.Errorf("%w: malformed number %q", ErrInvalidExpression, text)
				}
			}
			tokens = append(tokens, token{kind: tokNumber, value: value, text: text})
		case c == '(':
			tokens = append(tokens, token{kind: tokLParen, text: "("})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokRParen, text: ")"})
			i++
		default:
			tokens = append(tokens, token{kind: tokOp, op: c, text: string(c)})
			i++
		}
	}

	return tokens, nil
}

// parser is a recursive-descent evaluator over:
//
//	expr  = term { ("+" | "-") term }
//	term  = unary { ("*" | "/") unary }
//	unary = ("+" | "-") unary | power
//	power = primary [ "^" unary ]
//	primary = number | "(" expr ")"
type parser struct {
	tokens []token
	pos    int
	depth  int
}

func (p *parser) done() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) acceptOp(ops string) (byte, bool) {
	if p.done() {
		return 0, false
	}
	t := p.peek()
	if t.kind != tokOp || strings.IndexByte(ops, t.op) < 0 {
		return 0, false
	}
	p.pos++
	return t.op, true
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return fmt.Errorf("%w: nesting too deep", ErrInvalidExpression)
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.acceptOp("+-")
		if !ok {
			return left, nil
		}
		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.acceptOp("*/")
		if !ok {
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			left *= right
		} else {
			left /= right
		}
	}
}

func (p *parser) parseUnary() (float64, error) {
	if err := p.enter(); err != nil {
		return 0, err
	}
	defer p.leave()

	if op, ok := p.acceptOp("+-"); ok {
		value, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if op == '-' {
			return -value, nil
		}
		return value, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (float64, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}
	if _, ok := p.acceptOp("^"); !ok {
		return base, nil
	}
	exponent, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	return math.Pow(base, exponent), nil
}

func (p *parser) parsePrimary() (float64, error) {
	if p.done() {
		return 0, fmt.Errorf("%w: unexpected end of expression", ErrInvalidExpression)
	}

	t := p.peek()
	switch t.kind {
	case tokNumber:
		p.pos++
		return t.value, nil
	case tokLParen:
		if err := p.enter(); err != nil {
			return 0, err
		}
		defer p.leave()

		p.pos++
		value, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.done() || p.peek().kind != tokRParen {
			return 0, fmt.Errorf("%w: missing closing parenthesis", ErrInvalidExpression)
		}
		p.pos++
		return value, nil
	default:
		return 0, fmt.Errorf("%w: unexpected %s", ErrInvalidExpression, t)
	}
}
