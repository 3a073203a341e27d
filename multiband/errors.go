// SPDX-License-Identifier: EPL-2.0

package multiband

import "errors"

var (
	ErrCrossoverAboveNyquist = errors.New("crossover frequency must be below nyquist")
	ErrInvalidConfig         = errors.New("invalid multiband configuration")
)
