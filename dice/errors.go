// SPDX-License-Identifier: MIT

package dice

import "errors"

var (
	// ErrSyntax is returned for input the grammar does not accept.
	ErrSyntax = errors.New("dice: syntax error")

	// ErrInvalidDice is returned for a dice count, side count or repeat
	// count outside [1, MaxDice].
	ErrInvalidDice = errors.New("dice: invalid dice")
)
