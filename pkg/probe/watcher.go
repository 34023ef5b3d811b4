// Package probe watches an external endpoint for liveness and hands each
// success to the waveform through a single-slot Flag.
package probe

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const DefaultInterval = 3 * time.Second

// Watcher runs a Prober on its own schedule. It never blocks the render
// loop; the only thing it shares is the Flag.
type Watcher struct {
	name     string
	prober   Prober
	flag     *Flag
	interval time.Duration
	timeout  time.Duration

	events chan Event
	stats  *Stats
	logger *slog.Logger
}

// NewWatcher constructs a Watcher with defaults and applies options.
func NewWatcher(p Prober, flag *Flag, opts ...Option) *Watcher {
	w := &Watcher{
		name:     "probe-" + uuid.NewString()[:8],
		prober:   p,
		flag:     flag,
		interval: DefaultInterval,
		stats:    NewStats(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

func (w *Watcher) Name() string { return w.name }
func (w *Watcher) Stats() *Stats { return w.stats }

// Run probes immediately, then again Interval after each attempt returns,
// until ctx is done. Failures are swallowed: the next scheduled attempt is
// the only retry.
func (w *Watcher) Run(ctx context.Context) error {
	t := time.NewTimer(0)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.attempt(ctx)
			if ctx.Err() != nil {
				return nil
			}
			t.Reset(w.interval)
		}
	}
}

func (w *Watcher) attempt(ctx context.Context) {
	pctx := ctx
	if w.timeout > 0 {
		var cancel context.CancelFunc
		pctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	start := time.Now()
	err := w.prober.Probe(pctx)
	latency := time.Since(start)

	if err != nil {
		if ctx.Err() != nil {
			// shutting down, not a probe failure
			return
		}
		w.stats.record(latency, err, false, start)
		w.logger.Debug("probe failed", "watcher", w.name, "latency", latency, "err", err)
		w.emit(EventProbeFail, map[string]any{"latency_ms": latency.Milliseconds(), "err": err.Error()})
		return
	}

	lost := !w.flag.Raise()
	w.stats.record(latency, nil, lost, start)
	w.logger.Debug("probe ok", "watcher", w.name, "latency", latency, "lost", lost)
	w.emit(EventProbeOK, map[string]any{"latency_ms": latency.Milliseconds()})
	if lost {
		w.emit(EventSignalLost, nil)
	}
}

func (w *Watcher) emit(t EventType, f map[string]any) {
	if w.events == nil {
		return
	}
	select {
	case w.events <- Event{Time: time.Now(), Source: w.name, Type: t, Fields: f}:
	default: // drop if the reader is slow
	}
}
