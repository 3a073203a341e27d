// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"github.com/ik5/audmeter/level"
	"github.com/ik5/audmeter/multiband"
	"github.com/ik5/audmeter/probe"
)

// Status is the state of a Record.
type Status string

const (
	StatusAnalyzing Status = "analyzing"
	StatusComplete  Status = "complete"
	StatusError     Status = "error"
)

// Loudness groups the loudness and peak meters.
type Loudness struct {
	Integrated   level.Value `json:"lufs_i"`
	ShortTermMax level.Value `json:"lufs_s_max"`
	Range        level.Value `json:"lra"`
	TruePeak     level.Value `json:"true_peak"`
	SamplePeak   level.Value `json:"sample_peak"`
}

// Record is the result for one input. Zero level values are Unavailable, so
// a partial or failed Record carries no measurements.
type Record struct {
	Filename string          `json:"filename"`
	Info     *probe.FileInfo `json:"file_info,omitempty"`
	Loudness Loudness        `json:"loudness"`
	Bands    multiband.Bands `json:"bands"`
	// Clipping is set when the true peak exceeds 0 dBFS.
	Clipping bool   `json:"clipping"`
	Status   Status `json:"status"`
	// Message is the text of Err.
	Message string `json:"error,omitempty"`
	Err     error  `json:"-"`
}

func errorRecord(name string, err error) *Record {
	return &Record{
		Filename: name,
		Status:   StatusError,
		Message:  err.Error(),
		Err:      err,
	}
}

// EventKind tags an Event.
type EventKind int

const (
	EventPartial EventKind = iota
	EventUpdate
	EventComplete
)

func (k EventKind) String() string {
	switch k {
	case EventPartial:
		return "partial"
	case EventUpdate:
		return "update"
	case EventComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Event is one element of a Stream. Record is nil for EventComplete.
type Event struct {
	Kind   EventKind
	Record *Record
}
