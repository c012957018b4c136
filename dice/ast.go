// SPDX-License-Identifier: MIT

package dice

import (
	"fmt"
	"strconv"
)

// MaxDice bounds dice counts, side counts, repeat counts and constants.
const MaxDice = 1 << 20

// Expr is a parsed dice expression. String renders it in canonical form,
// which parses back to an equal tree.
type Expr interface {
	fmt.Stringer
	node()
}

// Dice is Count independent fair dice with Sides sides each.
type Dice struct {
	Count int
	Sides int
}

// Const is a constant value.
type Const struct {
	Value int64
}

// Sum adds two independent expressions.
type Sum struct {
	Left, Right Expr
}

// Product multiplies two independent expressions.
type Product struct {
	Left, Right Expr
}

// Repeat adds Count independent copies of Operand.
type Repeat struct {
	Count   int
	Operand Expr
}

func (Dice) node()    {}
func (Const) node()   {}
func (Sum) node()     {}
func (Product) node() {}
func (Repeat) node()  {}

func (d Dice) String() string { return strconv.Itoa(d.Count) + "d" + strconv.Itoa(d.Sides) }

func (c Const) String() string { return strconv.FormatInt(c.Value, 10) }

func (s Sum) String() string {
	if _, ok := s.Right.(Sum); ok {
		return s.Left.String() + " + (" + s.Right.String() + ")"
	}
	return s.Left.String() + " + " + s.Right.String()
}

func (p Product) String() string { return group(p.Left, false) + " * " + group(p.Right, true) }

func (r Repeat) String() string { return strconv.Itoa(r.Count) + " * " + group(r.Operand, true) }

// group parenthesises e where it would otherwise parse differently as an
// operand of *: sums always, products and repeats on the right.
func group(e Expr, right bool) string {
	switch e.(type) {
	case Sum:
		return "(" + e.String() + ")"
	case Product, Repeat:
		if right {
			return "(" + e.String() + ")"
		}
	}
	return e.String()
}
