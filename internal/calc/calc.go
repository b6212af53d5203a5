// Package calc evaluates plain arithmetic expressions for the /calc
// command. Only numbers, + - * /, and parentheses are accepted; anything
// else is rejected before evaluation. Commas read as decimal points.
package calc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmpty            = errors.New("empty expression")
	ErrInvalidCharacter = errors.New("invalid character in expression")
	ErrSyntax           = errors.New("malformed expression")
	ErrDivisionByZero   = errors.New("division by zero")
)

// Eval computes the value of expr. Operator precedence is the usual one:
// * and / bind tighter than + and -, parentheses override.
func Eval(expr string) (float64, error) {
	expr = strings.ReplaceAll(expr, ",", ".")
	p := &parser{input: expr}
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0, ErrEmpty
	}
	v, err := p.parseSum()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos < len(p.input) {
		if !isExprChar(p.input[p.pos]) {
			return 0, ErrInvalidCharacter
		}
		return 0, ErrSyntax
	}
	return v, nil
}

func isExprChar(ch byte) bool {
	switch {
	case ch >= '0' && ch <= '9':
		return true
	case ch == '+' || ch == '-' || ch == '*' || ch == '/':
		return true
	case ch == '(' || ch == ')' || ch == '.' || ch == ' ':
		return true
	}
	return false
}

type parser struct {
	input string
	pos   int
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) peek() (byte, bool) {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *parser) parseSum() (float64, error) {
	left, err := p.parseProduct()
	if err != nil {
		return 0, err
	}
	for {
		ch, ok := p.peek()
		if !ok || (ch != '+' && ch != '-') {
			return left, nil
		}
		p.pos++
		right, err := p.parseProduct()
		if err != nil {
			return 0, err
		}
		if ch == '+' {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *parser) parseProduct() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		ch, ok := p.peek()
		if !ok || (ch != '*' && ch != '/') {
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if ch == '*' {
			left *= right
		} else {
			if right == 0 {
				return 0, ErrDivisionByZero
			}
			left /= right
		}
	}
}

func (p *parser) parseUnary() (float64, error) {
	ch, ok := p.peek()
	if ok && ch == '-' {
		p.pos++
		v, err := p.parseUnary()
		return -v, err
	}
	if ok && ch == '+' {
		p.pos++
		return p.parseUnary()
	}
	return p.parseAtom()
}

func (p *parser) parseAtom() (float64, error) {
	ch, ok := p.peek()
	if !ok {
		return 0, ErrSyntax
	}
	if ch == '(' {
		p.pos++
		v, err := p.parseSum()
		if err != nil {
			return 0, err
		}
		ch, ok = p.peek()
		if !ok || ch != ')' {
			return 0, ErrSyntax
		}
		p.pos++
		return v, nil
	}
	if (ch < '0' || ch > '9') && ch != '.' {
		if !isExprChar(ch) {
			return 0, ErrInvalidCharacter
		}
		return 0, ErrSyntax
	}
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		p.pos++
	}
	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrSyntax, p.input[start:p.pos])
	}
	return v, nil
}
