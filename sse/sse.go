// SPDX-License-Identifier: EPL-2.0

// Package sse encodes analysis events as server-sent events.
//
// Every event is one "data:" line holding a JSON object with a "type" of
// "partial", "update" or "complete":
//
//	data: {"type":"partial","result":{"file_info":{...},"filename":"a.wav","status":"analyzing"}}
//
//	data: {"type":"update","result":{"lufs_i":"-14.2",...,"low":-20.1,"mid":-18.3,"high":-30.9,...}}
//
//	data: {"type":"complete","message":"Analysis completed"}
//
// Loudness and peak values are strings with one fractional digit, or "N/A";
// band levels are numbers, or null. The file information fields are the
// display strings of probe.FileInfo.
package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"

	"github.com/ik5/audmeter/analysis"
	"github.com/ik5/audmeter/level"
	"github.com/ik5/audmeter/probe"
)

// CompleteMessage is the text of the final event.
const CompleteMessage = "Analysis completed"

// Headers are the HTTP response headers for an event stream.
var Headers = map[string]string{
	"Content-Type":      "text/event-stream",
	"Cache-Control":     "no-cache",
	"X-Accel-Buffering": "no",
}

type fileInfo struct {
	Filename   string `json:"filename"`
	Format     string `json:"format"`
	SampleRate string `json:"sample_rate"`
	BitDepth   string `json:"bit_depth"`
	Duration   string `json:"duration"`
	FileSize   string `json:"file_size"`
}

func newFileInfo(fi *probe.FileInfo) *fileInfo {
	if fi == nil {
		return nil
	}
	return &fileInfo{
		Filename:   fi.Filename,
		Format:     fi.Format,
		SampleRate: fi.SampleRateString(),
		BitDepth:   fi.BitDepth.String(),
		Duration:   fi.DurationString(),
		FileSize:   fi.SizeString(),
	}
}

type partialResult struct {
	FileInfo *fileInfo `json:"file_info"`
	Filename string    `json:"filename"`
	Status   string    `json:"status"`
}

type updateResult struct {
	LufsI      string      `json:"lufs_i"`
	LufsSMax   string      `json:"lufs_s_max"`
	LRA        string      `json:"lra"`
	TruePeak   string      `json:"true_peak"`
	SamplePeak string      `json:"sample_peak"`
	Low        level.Value `json:"low"`
	Mid        level.Value `json:"mid"`
	High       level.Value `json:"high"`
	Clipping   bool        `json:"clipping"`
	FileInfo   *fileInfo   `json:"file_info"`
	Filename   string      `json:"filename"`
	Status     string      `json:"status"`
	Error      string      `json:"error,omitempty"`
}

type message struct {
	Type    string `json:"type"`
	Result  any    `json:"result,omitempty"`
	Message string `json:"message,omitempty"`
}

// Payload returns the JSON object of ev.
func Payload(ev analysis.Event) ([]byte, error) {
	var msg message

	switch ev.Kind {
	case analysis.EventPartial:
		rec := ev.Record
		msg = message{Type: "partial", Result: partialResult{
			FileInfo: newFileInfo(rec.Info),
			Filename: rec.Filename,
			Status:   string(rec.Status),
		}}
	case analysis.EventUpdate:
		rec := ev.Record
		l := rec.Loudness
		msg = message{Type: "update", Result: updateResult{
			LufsI:      l.Integrated.String(),
			LufsSMax:   l.ShortTermMax.String(),
			LRA:        l.Range.String(),
			TruePeak:   l.TruePeak.String(),
			SamplePeak: l.SamplePeak.String(),
			Low:        rec.Bands.Low,
			Mid:        rec.Bands.Mid,
			High:       rec.Bands.High,
			Clipping:   rec.Clipping,
			FileInfo:   newFileInfo(rec.Info),
			Filename:   rec.Filename,
			Status:     string(rec.Status),
			Error:      rec.Message,
		}}
	case analysis.EventComplete:
		msg = message{Type: "complete", Message: CompleteMessage}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownEvent, ev.Kind)
	}

	return json.Marshal(msg)
}

// Encode writes ev as one server-sent event.
func Encode(w io.Writer, ev analysis.Event) error {
	payload, err := Payload(ev)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}

	return nil
}

type flusher interface {
	Flush()
}

// Write encodes every event of events, flushing w after each one when it
// supports it. When w is an http.ResponseWriter the event stream Headers
// are set before the first event.
func Write(w io.Writer, events iter.Seq[analysis.Event]) error {
	if rw, ok := w.(http.ResponseWriter); ok {
		for k, v := range Headers {
			rw.Header().Set(k, v)
		}
	}
	f, _ := w.(flusher)

	for ev := range events {
		if err := Encode(w, ev); err != nil {
			return err
		}
		if f != nil {
			f.Flush()
		}
	}

	return nil
}
