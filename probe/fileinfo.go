// SPDX-License-Identifier: EPL-2.0

package probe

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ik5/audmeter/audio"
)

// FileInfo describes a decoded file.
type FileInfo struct {
	// Filename is the display name, not necessarily a path.
	Filename string
	// Format is the upper-case container tag, e.g. "WAV".
	Format     string
	SampleRate int
	Channels   int
	BitDepth   audio.BitDepth
	Duration   time.Duration
	// Size in bytes of the encoded input; zero when unknown.
	Size int64
}

// SampleRateString renders the rate with thousands separators, "44,100 Hz".
func (fi FileInfo) SampleRateString() string {
	return humanize.Comma(int64(fi.SampleRate)) + " Hz"
}

// DurationString renders the whole seconds of the duration as MM:SS, or
// HH:MM:SS from one hour up.
func (fi FileInfo) DurationString() string {
	total := int(fi.Duration / time.Second)
	hours, rest := total/3600, total%3600
	minutes, seconds := rest/60, rest%60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// SizeString renders the size in decimal megabytes rounded to one digit,
// dropping a zero fraction: "1.2 MB", "3 MB", "0.4 MB".
func (fi FileInfo) SizeString() string {
	if fi.Size <= 0 {
		return "N/A"
	}
	mb := math.Round(float64(fi.Size)/1e5) / 10
	return humanize.FtoaWithDigits(mb, 1) + " MB"
}

type fileInfoJSON struct {
	Filename   string  `json:"filename"`
	Format     string  `json:"format"`
	SampleRate int     `json:"sample_rate"`
	Channels   int     `json:"channels"`
	BitDepth   string  `json:"bit_depth"`
	Duration   float64 `json:"duration_seconds"`
	Size       int64   `json:"size_bytes"`
}

// MarshalJSON encodes the raw values; the String helpers are for display.
func (fi FileInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(fileInfoJSON{
		Filename:   fi.Filename,
		Format:     fi.Format,
		SampleRate: fi.SampleRate,
		Channels:   fi.Channels,
		BitDepth:   fi.BitDepth.String(),
		Duration:   fi.Duration.Seconds(),
		Size:       fi.Size,
	})
}
