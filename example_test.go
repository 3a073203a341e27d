// SPDX-License-Identifier: EPL-2.0

package audmeter_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/audmeter"
	"github.com/ik5/audmeter/analysis"
	"github.com/ik5/audmeter/internal/audiotest"
	"github.com/sirupsen/logrus"
)

func Example() {
	dir, err := os.MkdirTemp("", "audmeter")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer os.RemoveAll(dir)

	// five seconds of a 1 kHz tone at -20 dBFS in both channels
	const rate = 48000
	tone := audiotest.Sine(rate, 5*rate, 1000, audiotest.Amplitude(-20))
	path := filepath.Join(dir, "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if err := audiotest.WriteWAV(f, rate, 24, audiotest.Replicate(2, tone)); err != nil {
		fmt.Println("error:", err)
		return
	}
	f.Close()

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	stream, err := audmeter.AnalyzeFiles(context.Background(), analysis.DefaultConfig(),
		[]string{path, filepath.Join(dir, "missing.mp3")}, analysis.WithLogger(logger))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for ev := range stream.All() {
		if ev.Kind != analysis.EventUpdate {
			continue
		}
		rec := ev.Record
		if rec.Status == analysis.StatusError {
			fmt.Println(rec.Filename, rec.Status)
			continue
		}
		fmt.Println(rec.Filename, rec.Info.Format, rec.Info.BitDepth, rec.Info.DurationString())
		fmt.Println("LUFS-I:", rec.Loudness.Integrated, "True peak:", rec.Loudness.TruePeak)
	}
	// Output:
	// tone.wav WAV 24 bit 00:05
	// LUFS-I: -20.0 True peak: -20.0
	// missing.mp3 error
}
