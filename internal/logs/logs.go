// Package logs writes pulsetrace diagnostics to files so they never reach
// the terminal the trace is drawn on.
package logs

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/juanpablocruz/pulsetrace/pkg/probe"
)

// Manager owns a slog text log and a JSON lines file of probe events.
// The zero-dir Manager discards everything.
type Manager struct {
	mu      sync.Mutex
	baseDir string
	logF    *os.File
	eventsF *os.File
	eventsW *bufio.Writer
	logger  *slog.Logger
}

type jsonEvent struct {
	Kind   string         `json:"kind"`
	Time   time.Time      `json:"time"`
	Source string         `json:"source,omitempty"`
	Type   string         `json:"type,omitempty"`
	Fields map[string]any `json:"fields,omitempty"`
}

// New opens pulsetrace-<ts>.log and events-<ts>.jsonl under dir. An empty
// dir yields a Manager whose logger discards.
func New(dir string, level slog.Level) (*Manager, error) {
	if dir == "" {
		return &Manager{
			logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError})),
		}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("make log dir: %w", err)
	}
	ts := time.Now().Format("20060102-150405")
	lf, err := os.Create(filepath.Join(dir, fmt.Sprintf("pulsetrace-%s.log", ts)))
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(filepath.Join(dir, fmt.Sprintf("events-%s.jsonl", ts)))
	if err != nil {
		_ = lf.Close()
		return nil, err
	}
	return &Manager{
		baseDir: dir,
		logF:    lf,
		eventsF: ef,
		eventsW: bufio.NewWriterSize(ef, 64<<10),
		logger:  slog.New(slog.NewTextHandler(lf, &slog.HandlerOptions{Level: level})),
	}, nil
}

func (lm *Manager) Logger() *slog.Logger { return lm.logger }

// Dir is where files are written, empty when discarding.
func (lm *Manager) Dir() string { return lm.baseDir }

func (lm *Manager) LogEvent(e probe.Event) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	if lm.eventsW == nil {
		return
	}
	enc := json.NewEncoder(lm.eventsW)
	_ = enc.Encode(jsonEvent{Kind: "probe", Time: e.Time, Source: e.Source, Type: string(e.Type), Fields: e.Fields})
}

// Forward writes every event from ch until it is closed.
func (lm *Manager) Forward(ch <-chan probe.Event) {
	for e := range ch {
		lm.LogEvent(e)
	}
}

func (lm *Manager) Close() {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	if lm.eventsW != nil {
		_ = lm.eventsW.Flush()
	}
	if lm.eventsF != nil {
		_ = lm.eventsF.Close()
	}
	if lm.logF != nil {
		_ = lm.logF.Close()
	}
	lm.eventsW = nil
}
