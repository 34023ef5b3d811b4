package probe

import "time"

type EventType string

const (
	EventProbeOK   EventType = "probe_ok"
	EventProbeFail EventType = "probe_fail"
	// EventSignalLost is emitted when a success lands while a previous
	// signal is still pending.
	EventSignalLost EventType = "signal_lost"
)

type Event struct {
	Time   time.Time
	Source string
	Type   EventType
	Fields map[string]any
}
