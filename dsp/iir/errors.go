// SPDX-License-Identifier: EPL-2.0

package iir

import "errors"

var (
	ErrInvalidOrder  = errors.New("filter order must be at least 1")
	ErrInvalidCutoff = errors.New("cutoff frequencies must satisfy 0 < f < nyquist")
	ErrBandOrder     = errors.New("band edges must be increasing")
	ErrUnknownKind   = errors.New("unknown filter kind")
)
