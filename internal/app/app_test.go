package app

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/juanpablocruz/pulsetrace/internal/config"
	"github.com/juanpablocruz/pulsetrace/internal/render"
	"github.com/juanpablocruz/pulsetrace/pkg/dispatch"
	"github.com/juanpablocruz/pulsetrace/pkg/probe"
	"github.com/juanpablocruz/pulsetrace/pkg/wave"
)

func TestModelAdvancesOnTickAndQuitsOnQ(t *testing.T) {
	m := wave.New()
	d := dispatch.New()
	model := NewModel(m, d, render.NewCanvas(1000, 1000, nil))

	next, cmd := model.Update(eventMsg{ev: dispatch.Event{Kind: dispatch.KindTick}})
	if cmd == nil {
		t.Fatalf("tick should re-arm the event wait")
	}
	if m.Ticks() != 1 {
		t.Fatalf("ticks=%d want 1", m.Ticks())
	}

	_, cmd = next.Update(eventMsg{ev: dispatch.Event{Kind: dispatch.KindInput, Key: "x"}})
	if cmd == nil || m.Ticks() != 1 {
		t.Fatalf("unbound key should only re-arm")
	}

	next, cmd = next.Update(eventMsg{ev: dispatch.Event{Kind: dispatch.KindInput, Key: "q"}})
	if cmd == nil {
		t.Fatalf("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q should produce tea.QuitMsg")
	}
	if next.View() != "" {
		t.Fatalf("quitting model should render nothing")
	}
}

func TestWaitForEventReportsStop(t *testing.T) {
	d := dispatch.New(func(ctx context.Context, emit func(dispatch.Event) bool) error {
		emit(dispatch.Event{Kind: dispatch.KindInput, Key: "a"})
		<-ctx.Done()
		return nil
	})
	d.Start(context.Background())

	msg, ok := waitForEvent(d)().(eventMsg)
	if !ok || msg.ev.Key != "a" {
		t.Fatalf("first message = %#v, want the emitted key", msg)
	}

	d.Stop()
	if _, ok := waitForEvent(d)().(stoppedMsg); !ok {
		t.Fatalf("closed dispatcher should yield stoppedMsg")
	}
}

func TestModelResizesCanvas(t *testing.T) {
	m := wave.New()
	m.Advance()
	model := NewModel(m, dispatch.New(), render.NewCanvas(1000, 1000, nil))
	next, _ := model.Update(tea.WindowSizeMsg{Width: 20, Height: 6})
	if lines := bytes.Count([]byte(next.View()), []byte("\n")); lines != 5 {
		t.Fatalf("frame has %d line breaks, want 5", lines)
	}
}

func TestRunPulsesOnProbeAndQuits(t *testing.T) {
	cfg := config.Default()
	cfg.TickRate = time.Millisecond
	cfg.ProbeInterval = time.Hour

	in, w := io.Pipe()
	a := New(cfg, in, WithProber(probe.ProberFunc(func(context.Context) error { return nil })))

	go func() {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte("q"))
		_ = w.Close()
	}()

	done := make(chan error, 1)
	var out bytes.Buffer
	go func() { done <- a.Run(context.Background(), &out) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("run did not return after q")
	}

	if a.Machine().Ticks() == 0 {
		t.Fatalf("no ticks processed")
	}
	if a.Machine().Pulses() != 1 {
		t.Fatalf("pulses=%d want 1", a.Machine().Pulses())
	}
	if s := a.Stats().Snapshot(); s.Successes != 1 {
		t.Fatalf("unexpected stats %s", s)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	cfg := config.Default()
	cfg.ProbeURL = ""

	in, w := io.Pipe()
	defer w.Close()
	a := New(cfg, in)
	if a.Stats() != nil {
		t.Fatalf("no probe configured, stats should be nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx, io.Discard) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	// the pipe reader cannot be cancelled; closing it lets the key reader exit
	_ = w.Close()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("run did not return after cancel")
	}
}
