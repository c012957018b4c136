// SPDX-License-Identifier: MIT

package dice

import (
	"fmt"
	"strconv"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokInt
	tokD
	tokPlus
	tokStar
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int // byte offset in the source
}

var punct = map[rune]tokenKind{
	'd': tokD, 'D': tokD, '+': tokPlus, '*': tokStar, '(': tokLParen, ')': tokRParen,
}

// lex splits src into tokens. 'd' and 'D' both introduce dice.
func lex(src string) ([]token, error) {
	var toks []token
	for i := 0; i < len(src); {
		c := rune(src[i])
		switch {
		case unicode.IsSpace(c):
			i++
		case c >= '0' && c <= '9':
			j := i
			for j < len(src) && src[j] >= '0' && src[j] <= '9' {
				j++
			}
			toks = append(toks, token{kind: tokInt, text: src[i:j], pos: i})
			i = j
		default:
			kind, ok := punct[c]
			if !ok {
				return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, c, i)
			}
			toks = append(toks, token{kind: kind, text: string(c), pos: i})
			i++
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(src)}), nil
}

type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) unexpected(t token) error {
	if t.kind == tokEOF {
		return fmt.Errorf("%w: unexpected end of input", ErrSyntax)
	}
	return fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, t.text, t.pos)
}

// Parse turns src into an expression tree.
//
// Errors: ErrSyntax, ErrInvalidDice.
func Parse(src string) (Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	e, err := p.sum()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.unexpected(t)
	}
	return e, nil
}

func (p *parser) sum() (Expr, error) {
	left, err := p.product()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokPlus {
		p.next()
		right, err := p.product()
		if err != nil {
			return nil, err
		}
		left = Sum{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) product() (Expr, error) {
	left, err := p.atom()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokStar {
		star := p.next()
		right, err := p.atom()
		if err != nil {
			return nil, err
		}
		if k, ok := left.(Const); ok {
			if k.Value < 1 {
				return nil, fmt.Errorf("%w: repeat count %d at offset %d", ErrInvalidDice, k.Value, star.pos)
			}
			left = Repeat{Count: int(k.Value), Operand: right}
			continue
		}
		left = Product{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) atom() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokLParen:
		e, err := p.sum()
		if err != nil {
			return nil, err
		}
		if r := p.next(); r.kind != tokRParen {
			return nil, p.unexpected(r)
		}
		return e, nil

	case tokD:
		sides, err := p.count("sides")
		if err != nil {
			return nil, err
		}
		return Dice{Count: 1, Sides: sides}, nil

	case tokInt:
		n, err := bounded(t, "constant", 0)
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokD {
			return Const{Value: int64(n)}, nil
		}
		p.next()
		if n < 1 {
			return nil, fmt.Errorf("%w: dice count %d at offset %d", ErrInvalidDice, n, t.pos)
		}
		sides, err := p.count("sides")
		if err != nil {
			return nil, err
		}
		return Dice{Count: n, Sides: sides}, nil
	}
	return nil, p.unexpected(t)
}

// count reads the integer after 'd'.
func (p *parser) count(what string) (int, error) {
	t := p.next()
	if t.kind != tokInt {
		return 0, p.unexpected(t)
	}
	return bounded(t, what, 1)
}

// bounded converts t to an int in [lo, MaxDice].
func bounded(t token, what string, lo int) (int, error) {
	n, err := strconv.Atoi(t.text)
	if err != nil || n > MaxDice {
		return 0, fmt.Errorf("%w: %s %s at offset %d exceeds %d", ErrInvalidDice, what, t.text, t.pos, MaxDice)
	}
	if n < lo {
		return 0, fmt.Errorf("%w: %s %d at offset %d", ErrInvalidDice, what, n, t.pos)
	}
	return n, nil
}
