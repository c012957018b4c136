// SPDX-License-Identifier: MIT

package dice

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/probcalc/exact"
	"github.com/katalvlaran/probcalc/numeric"
)

// Variable is the algebra Eval needs from a random variable type.
type Variable[T any] interface {
	Add(other T) (T, error)
	Multiply(other T) (T, error)
	Repeat(k int) (T, error)
}

// Family builds the leaves of an expression in one probability family.
type Family[T Variable[T]] struct {
	// Die is a single fair die with the given number of sides.
	Die func(sides int) (T, error)
	// Constant is a point mass of 1 at value.
	Constant func(value int64) (T, error)
}

// Exact is the family of exact.RandomVariable built with opts.
func Exact(opts ...exact.Option) Family[*exact.RandomVariable] {
	return Family[*exact.RandomVariable]{
		Die: func(sides int) (*exact.RandomVariable, error) { return exact.FairDie(sides, opts...) },
		Constant: func(value int64) (*exact.RandomVariable, error) {
			return exact.New([]exact.Outcome{{Value: big.NewRat(value, 1), P: big.NewRat(1, 1)}}, opts...)
		},
	}
}

// Numeric is the family of numeric.RandomVariable built with opts.
func Numeric(opts ...numeric.Option) Family[*numeric.RandomVariable] {
	return Family[*numeric.RandomVariable]{
		Die: func(sides int) (*numeric.RandomVariable, error) { return numeric.FairDie(sides, opts...) },
		Constant: func(value int64) (*numeric.RandomVariable, error) {
			return numeric.New([]numeric.Outcome{{Value: float64(value), P: 1}}, opts...)
		},
	}
}

// Eval computes the distribution of e in family f. Identical dice leaves
// are built once per call.
func Eval[T Variable[T]](e Expr, f Family[T]) (T, error) {
	ev := evaluator[T]{family: f, dice: make(map[int]T)}
	return ev.eval(e)
}

// Evaluate parses src and evaluates it in family f.
func Evaluate[T Variable[T]](src string, f Family[T]) (T, error) {
	e, err := Parse(src)
	if err != nil {
		var zero T
		return zero, err
	}
	return Eval(e, f)
}

type evaluator[T Variable[T]] struct {
	family Family[T]
	dice   map[int]T // single dice by side count
}

func (ev *evaluator[T]) die(sides int) (T, error) {
	if d, ok := ev.dice[sides]; ok {
		return d, nil
	}
	d, err := ev.family.Die(sides)
	if err != nil {
		return d, err
	}
	ev.dice[sides] = d
	return d, nil
}

func (ev *evaluator[T]) eval(e Expr) (T, error) {
	var zero T
	switch n := e.(type) {
	case Dice:
		d, err := ev.die(n.Sides)
		if err != nil {
			return zero, fmt.Errorf("dice: %s: %w", n, err)
		}
		return d.Repeat(n.Count)

	case Const:
		return ev.family.Constant(n.Value)

	case Repeat:
		x, err := ev.eval(n.Operand)
		if err != nil {
			return zero, err
		}
		return x.Repeat(n.Count)

	case Sum:
		l, r, err := ev.pair(n.Left, n.Right)
		if err != nil {
			return zero, err
		}
		return l.Add(r)

	case Product:
		l, r, err := ev.pair(n.Left, n.Right)
		if err != nil {
			return zero, err
		}
		return l.Multiply(r)
	}
	return zero, fmt.Errorf("%w: unknown node %T", ErrSyntax, e)
}

func (ev *evaluator[T]) pair(a, b Expr) (T, T, error) {
	var zero T
	l, err := ev.eval(a)
	if err != nil {
		return zero, zero, err
	}
	r, err := ev.eval(b)
	if err != nil {
		return zero, zero, err
	}
	return l, r, nil
}
