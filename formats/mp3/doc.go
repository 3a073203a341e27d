// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MPEG-1/2 Layer 3
// streams.
//
// # Decoding MP3 Files
//
//	src, err := mp3.Decoder{}.Decode(file)
//	if errors.Is(err, mp3.ErrNotMP3File) {
//	    // no frame header found
//	}
//	buf, err := audio.ReadAll(src)
//
// # Output Format
//
//   - Sample format: float32 in range [-1.0, 1.0]
//   - Channels: always 2; go-mp3 duplicates mono streams to both channels
//   - Sample rate: that of the MP3 stream
//
// A decoded mono file therefore measures as two identical channels, which
// reads about 3 LU louder than the same signal measured as true mono.
//
// MP3 is lossy, so the source reports an unknown bit depth (rendered "N/A").
package mp3
