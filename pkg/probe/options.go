package probe

import (
	"log/slog"
	"time"
)

// Option configures a Watcher in NewWatcher.
type Option func(*Watcher)

// WithInterval sets the pause between the end of one attempt and the start
// of the next.
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) { w.interval = d }
}

// WithTimeout bounds each attempt. Zero leaves it to the prober.
func WithTimeout(d time.Duration) Option {
	return func(w *Watcher) { w.timeout = d }
}
func WithEvents(ch chan Event) Option {
	return func(w *Watcher) { w.events = ch }
}
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}
func WithStats(s *Stats) Option {
	return func(w *Watcher) { w.stats = s }
}
func WithName(name string) Option {
	return func(w *Watcher) { w.name = name }
}
