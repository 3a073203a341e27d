// SPDX-License-Identifier: EPL-2.0

// Package wav decodes RIFF/WAVE files.
//
// Integer PCM is read through github.com/go-audio/wav, so any chunk layout it
// understands (LIST, fact, padding, WAVE_FORMAT_EXTENSIBLE) is accepted.
// IEEE float data is read from the data chunk directly.
//
// # Supported Formats
//
//   - PCM 8-bit (unsigned), 16-bit, 24-bit and 32-bit
//   - IEEE float 32-bit and 64-bit
//   - Any channel count and sample rate
//
// # Decoding WAV Files
//
//	src, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // errors.Is(err, wav.ErrNotWavFile) for non-WAV input
//	}
//	buf, err := audio.ReadAll(src)
//
// Samples are delivered as float32 in [-1.0, 1.0]. The source reports its
// stored sample format through audio.SourceBitDepth, e.g. "24 bit" or
// "32 bit-f".
//
// The decoder needs to seek; a reader without Seek is read into memory first.
package wav
