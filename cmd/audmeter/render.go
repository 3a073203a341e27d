// SPDX-License-Identifier: EPL-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ik5/audmeter/analysis"
	"github.com/ik5/audmeter/sse"
)

// renderer writes the events of one run.
type renderer interface {
	Event(ev analysis.Event) error
	Close() error
}

var renderers = map[string]func(io.Writer) renderer{
	"table": newTableRenderer,
	"json":  func(w io.Writer) renderer { return &jsonRenderer{enc: json.NewEncoder(w)} },
	"sse":   func(w io.Writer) renderer { return &sseRenderer{w: w} },
}

var tableColumns = []string{
	"FILE", "FORMAT", "RATE", "DEPTH", "DURATION", "SIZE",
	"LUFS-I", "LUFS-S MAX", "LRA", "TRUE PEAK", "SAMPLE PEAK",
	"LOW", "MID", "HIGH", "STATUS",
}

type tableRenderer struct {
	tw *tabwriter.Writer
}

func newTableRenderer(w io.Writer) renderer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tableColumns, "\t"))
	return &tableRenderer{tw: tw}
}

func (t *tableRenderer) Event(ev analysis.Event) error {
	if ev.Kind != analysis.EventUpdate {
		return nil
	}

	rec := ev.Record
	info := []string{"-", "-", "-", "-", "-"}
	if fi := rec.Info; fi != nil {
		info = []string{fi.Format, fi.SampleRateString(), fi.BitDepth.String(), fi.DurationString(), fi.SizeString()}
	}

	status := string(rec.Status)
	if rec.Clipping {
		status += " (clipping)"
	}

	l := rec.Loudness
	row := append([]string{rec.Filename}, info...)
	row = append(row,
		l.Integrated.String(), l.ShortTermMax.String(), l.Range.String(),
		l.TruePeak.String(), l.SamplePeak.String(),
		rec.Bands.Low.String(), rec.Bands.Mid.String(), rec.Bands.High.String(),
		status,
	)

	_, err := fmt.Fprintln(t.tw, strings.Join(row, "\t"))
	return err
}

func (t *tableRenderer) Close() error { return t.tw.Flush() }

type jsonRenderer struct {
	enc *json.Encoder
}

func (j *jsonRenderer) Event(ev analysis.Event) error {
	if ev.Kind != analysis.EventUpdate {
		return nil
	}
	return j.enc.Encode(ev.Record)
}

func (j *jsonRenderer) Close() error { return nil }

type sseRenderer struct {
	w io.Writer
}

func (s *sseRenderer) Event(ev analysis.Event) error { return sse.Encode(s.w, ev) }

func (s *sseRenderer) Close() error { return nil }
