// SPDX-License-Identifier: EPL-2.0

// Package analysis runs the loudness and band meters over a batch of inputs
// and streams the results.
//
// A Pipeline is built once from an immutable Config:
//
//	p, err := analysis.New(analysis.DefaultConfig(), analysis.WithWorkers(4))
//	if err != nil {
//		return err
//	}
//
//	stream := p.Analyze(ctx, []analysis.Input{
//		analysis.FileInput("a.wav", "", registry),
//		analysis.FileInput("b.mp3", "", registry),
//	})
//	for ev := range stream.All() {
//		// EventPartial, EventUpdate for each input in order, then EventComplete
//	}
//
// Each input is loaded (decoded and described), which yields an EventPartial
// carrying only the file information, and then measured, which yields an
// EventUpdate carrying the full Record. An input that cannot be loaded yields
// a single EventUpdate whose Record has StatusError and no measurements. The
// stream ends with one EventComplete.
//
// Inputs may be processed concurrently on a worker pool, but events are always
// delivered in input order.
//
// # Degraded metrics
//
// Every metric is computed independently. A metric that fails, or panics, is
// reported as level.Unavailable and the remaining metrics of the file are
// still delivered; the failure is logged and counted in Metrics.
package analysis
