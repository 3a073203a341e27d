// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrInvalidChannels   = errors.New("source reports no channels")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrInvalidFactor     = errors.New("oversampling factor must be at least 1")
	ErrRaggedBuffer      = errors.New("buffer channels differ in length")
	ErrStalledSource     = errors.New("source stopped producing samples without EOF")
)
