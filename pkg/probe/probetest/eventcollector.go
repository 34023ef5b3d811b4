// Package probetest holds helpers for asserting on Watcher events.
package probetest

import (
	"slices"
	"sync"
	"time"

	"github.com/juanpablocruz/pulsetrace/pkg/probe"
)

// EventCollector records the events a Watcher emits and tallies them by
// type, so tests can block until a given number of one type has arrived.
type EventCollector struct {
	ch   chan probe.Event
	quit chan struct{}
	done chan struct{}

	mu     sync.Mutex
	events []probe.Event
	counts map[probe.EventType]int
	// arrived is closed and replaced on every recorded event.
	arrived chan struct{}
}

func NewEventCollector(buffer int) *EventCollector {
	return &EventCollector{
		ch:      make(chan probe.Event, buffer),
		counts:  make(map[probe.EventType]int),
		arrived: make(chan struct{}),
	}
}

// Chan is the channel to hand to probe.WithEvents.
func (ec *EventCollector) Chan() chan probe.Event { return ec.ch }

// Start records events in the background until Stop.
func (ec *EventCollector) Start() {
	ec.quit = make(chan struct{})
	ec.done = make(chan struct{})
	go func() {
		defer close(ec.done)
		for {
			select {
			case <-ec.quit:
				return
			case e := <-ec.ch:
				ec.record(e)
			}
		}
	}()
}

// Stop ends recording and waits for the background goroutine.
func (ec *EventCollector) Stop() {
	if ec.quit == nil {
		return
	}
	close(ec.quit)
	<-ec.done
	ec.quit = nil
}

func (ec *EventCollector) record(e probe.Event) {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	ec.events = append(ec.events, e)
	ec.counts[e.Type]++
	close(ec.arrived)
	ec.arrived = make(chan struct{})
}

// Events returns the recorded events in arrival order.
func (ec *EventCollector) Events() []probe.Event {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return slices.Clone(ec.events)
}

// Count returns how many events of type t were recorded.
func (ec *EventCollector) Count(t probe.EventType) int {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return ec.counts[t]
}

// WaitForType blocks until at least n events of type t were recorded. It
// reports false if timeout passes first.
func (ec *EventCollector) WaitForType(t probe.EventType, n int, timeout time.Duration) bool {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		ec.mu.Lock()
		got, arrived := ec.counts[t], ec.arrived
		ec.mu.Unlock()
		if got >= n {
			return true
		}
		select {
		case <-arrived:
		case <-timer.C:
			return false
		}
	}
}
