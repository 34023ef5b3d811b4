package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/cancelreader"
	"golang.org/x/term"

	"github.com/juanpablocruz/pulsetrace/internal/app"
	"github.com/juanpablocruz/pulsetrace/internal/config"
	"github.com/juanpablocruz/pulsetrace/internal/logs"
	"github.com/juanpablocruz/pulsetrace/pkg/probe"
)

func main() {
	// Parse and validate configuration
	cfg, err := config.Parse(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("TUI error: %v", err)
	}
}

// run owns the terminal; its deferred restores happen before main reports
// any error.
func run(cfg *config.Config) error {
	level, _ := cfg.Level()
	lm, err := logs.New(cfg.LogDir, level)
	if err != nil {
		return fmt.Errorf("init logs: %w", err)
	}
	defer lm.Close()
	// Nothing may write to the terminal while the trace owns it
	slog.SetDefault(lm.Logger())

	events := make(chan probe.Event, 256)
	forwarded := make(chan struct{})
	go func() {
		lm.Forward(events)
		close(forwarded)
	}()
	defer func() {
		close(events)
		<-forwarded
	}()

	// Raw mode so single keypresses reach the input reader unbuffered
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("enter raw mode: %w", err)
		}
		defer func() { _ = term.Restore(fd, state) }()
	}

	in, err := cancelreader.NewReader(os.Stdin)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg, in, app.WithLogger(lm.Logger()), app.WithEvents(events))
	return a.Run(ctx, os.Stdout)
}
