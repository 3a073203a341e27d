// SPDX-License-Identifier: EPL-2.0

// Package probe identifies an audio container, decodes it through an
// audio.Registry and describes the result.
//
// The container is sniffed from the leading bytes with mimetype; when the
// content is not recognised the file extension picks the decoder instead.
// The decoded signal is returned as an audio.Buffer together with a FileInfo
// carrying the display metadata (format, sample rate, bit depth, duration
// and size).
package probe
