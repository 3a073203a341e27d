// SPDX-License-Identifier: EPL-2.0

package probe

import "errors"

var (
	ErrDecodeFailure     = errors.New("audio could not be decoded")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrEmptyBuffer       = errors.New("audio contains no samples")
)
