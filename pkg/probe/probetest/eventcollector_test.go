package probetest

import (
	"testing"
	"time"

	"github.com/juanpablocruz/pulsetrace/pkg/probe"
)

func TestWaitForTypeCountsPerType(t *testing.T) {
	ec := NewEventCollector(8)
	ec.Start()
	defer ec.Stop()

	ec.Chan() <- probe.Event{Type: probe.EventProbeFail}
	ec.Chan() <- probe.Event{Type: probe.EventProbeOK}
	ec.Chan() <- probe.Event{Type: probe.EventProbeFail}

	if !ec.WaitForType(probe.EventProbeFail, 2, time.Second) {
		t.Fatalf("probe_fail count=%d want 2", ec.Count(probe.EventProbeFail))
	}
	if !ec.WaitForType(probe.EventProbeOK, 1, time.Second) {
		t.Fatalf("probe_ok never recorded")
	}
	if ec.WaitForType(probe.EventSignalLost, 1, 20*time.Millisecond) {
		t.Fatalf("signal_lost was never sent")
	}
	if evs := ec.Events(); len(evs) != 3 || evs[1].Type != probe.EventProbeOK {
		t.Fatalf("events out of order: %+v", evs)
	}
}

func TestStopIsSafeTwice(t *testing.T) {
	ec := NewEventCollector(1)
	ec.Stop()
	ec.Start()
	ec.Stop()
	ec.Stop()
}
