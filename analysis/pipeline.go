// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"context"
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/Jeffail/tunny"
	"github.com/sirupsen/logrus"
)

// Pipeline measures batches of inputs. It holds no per-batch state and may
// run several batches at once.
type Pipeline struct {
	cfg     Config
	workers int
	log     logrus.FieldLogger
	metrics *Metrics
	meters  meters
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithWorkers sets how many inputs are processed at once. The default of one
// processes a batch strictly one input after another.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithLogger replaces the standard logrus logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// WithMetrics records outcomes into m.
func WithMetrics(m *Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// New validates cfg and builds a Pipeline.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:     cfg,
		workers: 1,
		log:     logrus.StandardLogger(),
		meters:  defaultMeters,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Config returns the configuration the pipeline was built with.
func (p *Pipeline) Config() Config { return p.cfg }

// job is the payload handed to a pool worker.
type job struct {
	ctx   context.Context
	input Input
	// events receives the Partial (when loading succeeds) and the Update
	// of this input; it has room for both.
	events chan Event
}

func (p *Pipeline) run(j *job) {
	if j.ctx.Err() != nil {
		return
	}

	start := time.Now()
	name := j.input.Name()
	log := p.log.WithField("file", name)

	log.Debug("Loading")
	res, err := j.input.Load()
	if err != nil {
		log.WithError(err).Warn("Failed to load input")
		p.metrics.fileDone(StatusError, time.Since(start))
		j.events <- Event{Kind: EventUpdate, Record: errorRecord(name, err)}
		return
	}

	info := res.Info
	j.events <- Event{Kind: EventPartial, Record: &Record{
		Filename: name,
		Info:     &info,
		Status:   StatusAnalyzing,
	}}

	log.Debug("Analyzing")
	rec := p.measure(log, name, res)
	p.metrics.fileDone(rec.Status, time.Since(start))
	log.WithField("elapsed", time.Since(start)).Debug("Analysis complete")

	j.events <- Event{Kind: EventUpdate, Record: rec}
}

// Analyze starts processing inputs and returns the stream of their events.
// Cancelling ctx, or closing the stream, stops inputs that have not started
// and ends the stream without EventComplete.
func (p *Pipeline) Analyze(ctx context.Context, inputs []Input) *Stream {
	ctx, cancel := context.WithCancel(ctx)

	s := &Stream{
		ctx:    ctx,
		cancel: cancel,
		slots:  make([]chan Event, len(inputs)),
		pool: tunny.NewFunc(p.workers, func(payload any) any {
			p.run(payload.(*job))
			return nil
		}),
	}
	for i := range s.slots {
		s.slots[i] = make(chan Event, 2)
	}

	p.log.WithField("inputs", len(inputs)).Debug("Starting batch")

	s.wg.Add(1)
	go s.dispatch(inputs, p.workers)

	return s
}

// Stream is the ordered, single-use sequence of events of one batch. It is
// not safe for concurrent use, apart from Close.
type Stream struct {
	ctx    context.Context
	cancel context.CancelFunc
	pool   *tunny.Pool
	wg     sync.WaitGroup

	slots []chan Event
	next  int
	done  bool

	closeOnce sync.Once
}

// dispatch submits inputs in order, keeping at most workers of them in
// flight so the pool starts them in input order.
func (s *Stream) dispatch(inputs []Input, workers int) {
	defer s.wg.Done()

	var inflight sync.WaitGroup
	defer inflight.Wait()

	sem := make(chan struct{}, workers)
	for i, in := range inputs {
		select {
		case sem <- struct{}{}:
		case <-s.ctx.Done():
			return
		}

		inflight.Add(1)
		go func(j *job) {
			defer inflight.Done()
			defer func() { <-sem }()

			if _, err := s.pool.ProcessCtx(s.ctx, j); err != nil {
				return
			}
		}(&job{ctx: s.ctx, input: in, events: s.slots[i]})
	}
}

// Next returns the next event, blocking until it is ready. It returns false
// after EventComplete, or once the stream was cancelled.
func (s *Stream) Next() (Event, bool) {
	if s.done {
		return Event{}, false
	}

	for s.next < len(s.slots) {
		if s.ctx.Err() != nil {
			return s.stop()
		}

		select {
		case ev := <-s.slots[s.next]:
			if ev.Kind == EventUpdate {
				s.next++
			}
			return ev, true
		case <-s.ctx.Done():
			return s.stop()
		}
	}

	s.done = true
	s.Close()
	return Event{Kind: EventComplete}, true
}

func (s *Stream) stop() (Event, bool) {
	s.done = true
	s.Close()
	return Event{}, false
}

// All ranges over the remaining events and closes the stream when the loop
// ends, including on break.
func (s *Stream) All() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		defer s.Close()

		for {
			ev, ok := s.Next()
			if !ok || !yield(ev) {
				return
			}
		}
	}
}

// Close cancels work that has not started, waits for running inputs and
// releases the worker pool. It is safe to call more than once.
func (s *Stream) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		s.wg.Wait()
		s.pool.Close()
	})
}

// Err reports why the stream ended early, if it did.
func (s *Stream) Err() error {
	if err := context.Cause(s.ctx); err != nil && s.next < len(s.slots) {
		return fmt.Errorf("stream stopped after %d of %d inputs: %w", s.next, len(s.slots), err)
	}
	return nil
}
