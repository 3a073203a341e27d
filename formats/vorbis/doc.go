// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis, a pure Go decoder.
//
// # Decoding Ogg Vorbis Files
//
//	src, err := vorbis.Decoder{}.Decode(file)
//	if errors.Is(err, vorbis.ErrNotOggVorbisFile) {
//	    // missing or corrupt Vorbis headers
//	}
//	buf, err := audio.ReadAll(src)
//
// # Output Format
//
//   - Sample format: float32, nominally in [-1.0, 1.0]; lossy decoding can
//     overshoot slightly, which the true peak meter reports as-is
//   - Channels and sample rate: those of the stream
//
// Samples are interleaved, [L0, R0, L1, R1, ...] for stereo. Vorbis is lossy,
// so the source reports an unknown bit depth (rendered "N/A").
package vorbis
