// SPDX-License-Identifier: EPL-2.0

// Package flac provides FLAC audio file decoding.
//
// This package uses github.com/faiface/beep/flac, which wraps the pure Go
// decoder github.com/mewkiz/flac.
//
//	src, err := flac.Decoder{}.Decode(file)
//	if errors.Is(err, flac.ErrNotFlacFile) {
//	    // not a FLAC stream
//	}
//	buf, err := audio.ReadAll(src)
//
// Mono and stereo streams are supported. The stored bit depth is reported
// through audio.SourceBitDepth.
package flac
