// SPDX-License-Identifier: EPL-2.0

// Package audmeter measures the loudness and spectral balance of audio files.
//
// For every file it reports integrated loudness (LUFS-I), the maximum
// short-term loudness (LUFS-S max), loudness range (LRA), true peak and
// sample peak following ITU-R BS.1770 and EBU R128, plus the loudest RMS
// level in a low, mid and high band.
//
// # Quick Start
//
//	stream, err := audmeter.AnalyzeFiles(ctx, analysis.DefaultConfig(), []string{"a.wav", "b.flac"})
//	if err != nil {
//		return err
//	}
//	for ev := range stream.All() {
//		if ev.Kind == analysis.EventUpdate {
//			fmt.Println(ev.Record.Filename, ev.Record.Loudness.Integrated)
//		}
//	}
//
// # Supported Formats
//
// DefaultRegistry decodes:
//   - WAV (PCM 8/16/24/32-bit and 32/64-bit float) via formats/wav
//   - AIFF (PCM 8/16/24/32-bit) via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - FLAC (mono and stereo) via formats/flac
//
// # Packages
//
// The meters can be used on their own with an audio.Buffer:
//   - loudness: gated integrated loudness, windowed series and loudness range
//   - truepeak: sample peak and oversampled true peak
//   - multiband: Butterworth band split and block RMS
//   - dsp/kweight, dsp/iir: the filters behind them
//
// The analysis package runs all of them over a batch and streams ordered
// events; sse encodes those events as server-sent events.
package audmeter
