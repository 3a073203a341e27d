// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	// ErrNotFlacFile indicates the input has no valid fLaC stream header.
	ErrNotFlacFile = errors.New("not a FLAC file")

	// ErrUnsupportedChannels indicates a channel count other than 1 or 2.
	ErrUnsupportedChannels = errors.New("only mono and stereo FLAC are supported")
)
