// SPDX-License-Identifier: EPL-2.0

// Command audmeter prints loudness, peak and band levels of audio files.
//
//	audmeter [flags] file...
//
// Results go to stdout as a table, JSON lines or server-sent events; logs and
// the progress bar go to stderr.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/ik5/audmeter"
	"github.com/ik5/audmeter/analysis"
	"github.com/ik5/audmeter/internal/config"
	"github.com/ik5/audmeter/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Exit codes.
const (
	exitOK         = 0
	exitFileErrors = 1
	exitUsage      = 2
)

type options struct {
	configPath  string
	workers     int
	format      string
	step        float64
	logLevel    string
	logJSON     bool
	progress    bool
	metricsFile string
	paths       []string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("audmeter", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: audmeter [flags] file...")
		fs.PrintDefaults()
	}

	o := &options{}
	fs.StringVar(&o.configPath, "config", "", "YAML configuration file")
	fs.IntVar(&o.workers, "workers", 0, "files analysed at once (overrides the configuration)")
	fs.StringVar(&o.format, "format", "table", "output format: table, json or sse")
	fs.Float64Var(&o.step, "step", 0, "window step in seconds, e.g. 1 or 0.1 (overrides the configuration)")
	fs.StringVar(&o.logLevel, "log-level", "", "log level (overrides the configuration)")
	fs.BoolVar(&o.logJSON, "log-json", false, "log as JSON")
	fs.BoolVar(&o.progress, "progress", false, "show a progress bar on stderr")
	fs.StringVar(&o.metricsFile, "metrics-file", "", "write Prometheus metrics to this file when done")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	o.paths = fs.Args()
	if len(o.paths) == 0 {
		fs.Usage()
		return nil, errors.New("no input files")
	}
	if _, ok := renderers[o.format]; !ok {
		return nil, fmt.Errorf("unknown format %q", o.format)
	}

	return o, nil
}

func loadConfig(o *options) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}

	if o.workers > 0 {
		cfg.Workers = o.workers
	}
	if o.step != 0 {
		cfg.Analysis.StepSeconds = o.step
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logJSON {
		cfg.Log.JSON = true
	}

	if err := cfg.Analysis.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, "audmeter:", err)
		}
		return exitUsage
	}

	cfg, err := loadConfig(o)
	if err != nil {
		fmt.Fprintln(stderr, "audmeter:", err)
		return exitUsage
	}

	logger := logrus.New()
	if err := logging.Configure(logger, stderr, cfg.Log.Level, cfg.Log.JSON, cfg.Log.Colors); err != nil {
		fmt.Fprintln(stderr, "audmeter:", err)
		return exitUsage
	}

	reg := prometheus.NewRegistry()
	metrics, err := analysis.NewMetrics(reg)
	if err != nil {
		logger.WithError(err).Error("Failed to register metrics")
		return exitUsage
	}

	stream, err := audmeter.AnalyzeFiles(ctx, cfg.Analysis, o.paths,
		analysis.WithWorkers(cfg.Workers),
		analysis.WithLogger(logger),
		analysis.WithMetrics(metrics),
	)
	if err != nil {
		logger.WithError(err).Error("Failed to start analysis")
		return exitUsage
	}
	defer stream.Close()

	var bar *mpb.Bar
	var progress *mpb.Progress
	if o.progress {
		progress = mpb.NewWithContext(ctx, mpb.WithOutput(stderr), mpb.WithWidth(64))
		bar = progress.AddBar(int64(len(o.paths)),
			mpb.PrependDecorators(
				decor.Name("Analyzing: "),
				decor.CountersNoUnit("%d / %d"),
			),
			mpb.AppendDecorators(
				decor.Percentage(),
				decor.Elapsed(decor.ET_STYLE_GO),
			),
		)
	}

	render := renderers[o.format](stdout)
	failed := 0
	for ev := range stream.All() {
		if ev.Kind == analysis.EventUpdate {
			if ev.Record.Status == analysis.StatusError {
				failed++
			}
			if bar != nil {
				bar.Increment()
			}
		}
		if err := render.Event(ev); err != nil {
			logger.WithError(err).Error("Failed to write results")
			return exitUsage
		}
	}
	if progress != nil {
		if err := stream.Err(); err != nil {
			bar.Abort(false)
		}
		progress.Wait()
	}
	if err := render.Close(); err != nil {
		logger.WithError(err).Error("Failed to write results")
		return exitUsage
	}

	if err := stream.Err(); err != nil {
		logger.WithError(err).Warn("Analysis interrupted")
		return exitFileErrors
	}

	if o.metricsFile != "" {
		if err := prometheus.WriteToTextfile(o.metricsFile, reg); err != nil {
			logger.WithError(err).Error("Failed to write metrics")
		}
	}

	if failed > 0 {
		logger.WithField("failed", failed).Warn("Some files could not be analysed")
		return exitFileErrors
	}

	return exitOK
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
