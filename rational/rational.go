// SPDX-License-Identifier: MIT

package rational

import (
	"fmt"
	"math/big"
	"strings"
)

// New returns num/den as a *big.Rat. den must be non-zero.
func New(num, den int64) *big.Rat {
	return big.NewRat(num, den)
}

// Int returns v as a *big.Rat.
func Int(v int64) *big.Rat {
	return new(big.Rat).SetInt64(v)
}

// Copy returns an independent copy of x.
func Copy(x *big.Rat) *big.Rat {
	return new(big.Rat).Set(x)
}

// Min returns a copy of the smaller of a and b.
func Min(a, b *big.Rat) *big.Rat {
	if a.Cmp(b) <= 0 {
		return Copy(a)
	}
	return Copy(b)
}

// Max returns a copy of the larger of a and b.
func Max(a, b *big.Rat) *big.Rat {
	if a.Cmp(b) >= 0 {
		return Copy(a)
	}
	return Copy(b)
}

// Clamp returns x limited to [lo, hi]. lo must not exceed hi.
func Clamp(x, lo, hi *big.Rat) *big.Rat {
	if x.Cmp(lo) < 0 {
		return Copy(lo)
	}
	if x.Cmp(hi) > 0 {
		return Copy(hi)
	}
	return Copy(x)
}

// Float64 converts x to the nearest float64.
func Float64(x *big.Rat) float64 {
	f, _ := x.Float64()
	return f
}

// Parse reads an integer, fraction ("1/6") or decimal ("0.125") literal.
func Parse(s string) (*big.Rat, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrParse)
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrParse, s)
	}
	return r, nil
}

// LimitDenominator returns the closest rational to x whose denominator is
// at most maxDen. When x already satisfies the bound a copy is returned.
//
// The search walks the continued-fraction convergents of x until the next
// convergent would exceed maxDen, then compares the last convergent with
// the best semiconvergent; both are best approximations, the closer one
// wins (ties go to the convergent).
//
// Complexity: O(log maxDen) big-integer steps.
func LimitDenominator(x *big.Rat, maxDen *big.Int) (*big.Rat, error) {
	if maxDen == nil || maxDen.Sign() <= 0 {
		return nil, ErrBadDenominator
	}
	if x.Denom().Cmp(maxDen) <= 0 {
		return Copy(x), nil
	}

	p0, q0 := big.NewInt(0), big.NewInt(1)
	p1, q1 := big.NewInt(1), big.NewInt(0)
	n := new(big.Int).Set(x.Num())
	d := new(big.Int).Set(x.Denom())
	a := new(big.Int)
	q2 := new(big.Int)
	tmp := new(big.Int)

	for {
		// Euclidean division equals floor division here since d > 0.
		a.Div(n, d)
		q2.Mul(a, q1)
		q2.Add(q2, q0)
		if q2.Cmp(maxDen) > 0 {
			break
		}
		// (p0, q0, p1, q1) = (p1, q1, p0+a*p1, q2)
		tmp.Mul(a, p1)
		tmp.Add(tmp, p0)
		p0.Set(p1)
		q0.Set(q1)
		p1.Set(tmp)
		q1.Set(q2)
		// (n, d) = (d, n-a*d)
		tmp.Mul(a, d)
		tmp.Sub(n, tmp)
		n.Set(d)
		d.Set(tmp)
	}

	k := new(big.Int).Sub(maxDen, q0)
	k.Div(k, q1)
	semi := new(big.Rat).SetFrac(
		new(big.Int).Add(p0, new(big.Int).Mul(k, p1)),
		new(big.Int).Add(q0, new(big.Int).Mul(k, q1)),
	)
	conv := new(big.Rat).SetFrac(p1, q1)

	dSemi := new(big.Rat).Sub(semi, x)
	dSemi.Abs(dSemi)
	dConv := new(big.Rat).Sub(conv, x)
	dConv.Abs(dConv)
	if dConv.Cmp(dSemi) <= 0 {
		return conv, nil
	}
	return semi, nil
}
