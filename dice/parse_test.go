// SPDX-License-Identifier: MIT

package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/probcalc/dice"
)

func TestParse(t *testing.T) {
	cases := []struct {
		src  string
		want dice.Expr
	}{
		{"d6", dice.Dice{Count: 1, Sides: 6}},
		{"3D6", dice.Dice{Count: 3, Sides: 6}},
		{"7", dice.Const{Value: 7}},
		{" 2d4 + 1 ", dice.Sum{Left: dice.Dice{Count: 2, Sides: 4}, Right: dice.Const{Value: 1}}},
		{"3*d6", dice.Repeat{Count: 3, Operand: dice.Dice{Count: 1, Sides: 6}}},
		{"d6*3", dice.Product{Left: dice.Dice{Count: 1, Sides: 6}, Right: dice.Const{Value: 3}}},
		{"d4 + d6*d8", dice.Sum{
			Left:  dice.Dice{Count: 1, Sides: 4},
			Right: dice.Product{Left: dice.Dice{Count: 1, Sides: 6}, Right: dice.Dice{Count: 1, Sides: 8}},
		}},
		{"2*(d4+1)", dice.Repeat{Count: 2, Operand: dice.Sum{Left: dice.Dice{Count: 1, Sides: 4}, Right: dice.Const{Value: 1}}}},
		{"3*d6*d4", dice.Product{
			Left:  dice.Repeat{Count: 3, Operand: dice.Dice{Count: 1, Sides: 6}},
			Right: dice.Dice{Count: 1, Sides: 4},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			got, err := dice.Parse(tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestParse_StringRoundTrip parses the canonical form back to the same tree.
func TestParse_StringRoundTrip(t *testing.T) {
	for _, src := range []string{
		"d6",
		"3d6 + 2",
		"d4 + (d6 + d8)",
		"2 * (d4 + 1)",
		"d6 * (d4 * d8)",
		"d6 * (2 * d4)",
		"3 * d6 * d4",
		"(d6 + 1) * d4",
		"3 * 2",
	} {
		first, err := dice.Parse(src)
		require.NoError(t, err, src)
		second, err := dice.Parse(first.String())
		require.NoError(t, err, first.String())
		assert.Equal(t, first, second, src)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		src  string
		want error
	}{
		{"", dice.ErrSyntax},
		{"d", dice.ErrSyntax},
		{"3d", dice.ErrSyntax},
		{"d6 +", dice.ErrSyntax},
		{"d6 - 1", dice.ErrSyntax},
		{"(d6", dice.ErrSyntax},
		{"d6)", dice.ErrSyntax},
		{"d6 d6", dice.ErrSyntax},
		{"d0", dice.ErrInvalidDice},
		{"0d6", dice.ErrInvalidDice},
		{"0*d6", dice.ErrInvalidDice},
		{"d99999999999999999999", dice.ErrInvalidDice},
		{"2000000d6", dice.ErrInvalidDice},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			_, err := dice.Parse(tc.src)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
