// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files.
//
// # Supported Formats
//
//   - PCM 8, 16, 24 and 32-bit
//   - Any channel count and sample rate
//
// AIFF-C compressed variants are not supported.
//
// # Decoding AIFF Files
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    fmt.Println("Not an AIFF file")
//	}
//	buf, err := audio.ReadAll(src)
//
// Samples are delivered as float32 in [-1.0, 1.0]; the stored bit depth is
// available through audio.SourceBitDepth.
//
// # Error Handling
//
//   - ErrNotAiffFile: the input is not a FORM/AIFF container
//   - ErrUnsupportedBitDepth: sample size other than 8, 16, 24 or 32 bits
//   - ErrUnsupportedAiffLayout: missing or invalid COMM chunk values
//
// The decoder needs to seek; a reader without Seek is read into memory first.
package aiff
