package probe

import (
	"fmt"
	"sync"
	"time"
)

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Attempts    int
	Successes   int
	Failures    int
	Lost        int // successes that collapsed into an already pending signal
	LastLatency time.Duration
	LastErr     string
	LastOK      time.Time
}

func (s StatsSnapshot) String() string {
	return fmt.Sprintf("Attempts: %d, Successes: %d, Failures: %d, Lost: %d, LastLatency: %s, LastErr: %q",
		s.Attempts, s.Successes, s.Failures, s.Lost, s.LastLatency, s.LastErr)
}

// Stats counts probe outcomes. Safe for concurrent use.
type Stats struct {
	mtx    sync.RWMutex
	latest StatsSnapshot
}

func NewStats() *Stats { return &Stats{} }

func (s *Stats) record(latency time.Duration, err error, lost bool, now time.Time) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.latest.Attempts++
	s.latest.LastLatency = latency
	if err != nil {
		s.latest.Failures++
		s.latest.LastErr = err.Error()
		return
	}
	s.latest.Successes++
	s.latest.LastErr = ""
	s.latest.LastOK = now
	if lost {
		s.latest.Lost++
	}
}

func (s *Stats) Snapshot() StatsSnapshot {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.latest
}
