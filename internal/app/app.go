// Package app wires the dispatcher, waveform, probe watcher and canvas into
// a bubbletea program.
package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/juanpablocruz/pulsetrace/internal/config"
	"github.com/juanpablocruz/pulsetrace/internal/render"
	"github.com/juanpablocruz/pulsetrace/pkg/dispatch"
	"github.com/juanpablocruz/pulsetrace/pkg/probe"
	"github.com/juanpablocruz/pulsetrace/pkg/wave"
)

type App struct {
	cfg *config.Config

	flag       *probe.Flag
	machine    *wave.Machine
	watcher    *probe.Watcher
	dispatcher *dispatch.Dispatcher
	canvas     *render.Canvas

	logger *slog.Logger
}

type Option func(*appOptions)

type appOptions struct {
	logger *slog.Logger
	events chan probe.Event
	prober probe.Prober
}

func WithLogger(l *slog.Logger) Option {
	return func(o *appOptions) { o.logger = l }
}

// WithEvents receives probe events; the caller drains it.
func WithEvents(ch chan probe.Event) Option {
	return func(o *appOptions) { o.events = ch }
}

// WithProber replaces the HTTP prober built from the config.
func WithProber(p probe.Prober) Option {
	return func(o *appOptions) { o.prober = p }
}

// New builds the app from a validated config. in is the raw keyboard
// source; pass a cancelreader so shutdown can interrupt the read.
func New(cfg *config.Config, in io.Reader, opts ...Option) *App {
	o := appOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{cfg: cfg, flag: &probe.Flag{}, logger: o.logger}

	prober := o.prober
	if prober == nil && cfg.ProbeURL != "" {
		prober = &probe.HTTPProber{URL: cfg.ProbeURL, Client: &http.Client{}}
	}
	if prober != nil {
		a.watcher = probe.NewWatcher(prober, a.flag,
			probe.WithInterval(cfg.ProbeInterval),
			probe.WithTimeout(cfg.ProbeTimeout),
			probe.WithEvents(o.events),
			probe.WithLogger(o.logger),
		)
	}

	a.machine = wave.New(
		wave.WithWidth(cfg.Width),
		wave.WithCenter(cfg.Center),
		wave.WithTrail(cfg.Trail),
		wave.WithTrigger(a.flag),
		wave.WithSchedule(cfg.PulseEvery, cfg.PulsePhase),
	)
	a.dispatcher = dispatch.New(
		dispatch.Keys(in),
		dispatch.Ticker(cfg.TickRate),
	)
	a.canvas = render.NewCanvas(float64(cfg.Width), config.YMax, render.NewStyles(lipgloss.DefaultRenderer()))
	return a
}

func (a *App) Machine() *wave.Machine { return a.machine }

// Stats returns probe counters, nil when no probe is configured.
func (a *App) Stats() *probe.Stats {
	if a.watcher == nil {
		return nil
	}
	return a.watcher.Stats()
}

// Run blocks until the user quits or ctx is done. Every background task is
// cancelled and joined before it returns.
func (a *App) Run(ctx context.Context, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	if a.watcher != nil {
		g.Go(func() error { return a.watcher.Run(gctx) })
	}
	a.dispatcher.Start(gctx)

	p := tea.NewProgram(NewModel(a.machine, a.dispatcher, a.canvas),
		tea.WithContext(gctx),
		tea.WithInput(nil),
		tea.WithOutput(out),
		tea.WithAltScreen(),
		// ctx is the only shutdown signal; main owns SIGINT/SIGTERM
		tea.WithoutSignalHandler(),
	)
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if err != nil && ctx.Err() != nil {
			// killed by our own cancellation
			return nil
		}
		return err
	})

	a.logger.Info("running", "width", a.cfg.Width, "tick", a.cfg.TickRate, "probe", a.cfg.ProbeURL)
	err := g.Wait()
	a.dispatcher.Stop()
	a.logger.Info("stopped", "ticks", a.machine.Ticks(), "pulses", a.machine.Pulses())
	if s := a.Stats(); s != nil {
		a.logger.Info("probe stats", "stats", s.Snapshot().String())
	}
	return errors.Join(err, a.dispatcher.Err())
}
