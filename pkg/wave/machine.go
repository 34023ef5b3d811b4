// Package wave implements the heartbeat trace: a circular buffer of plotted
// points swept by a cursor, with a trailing eraser and an overlaid
// three-phase pulse.
package wave

import "github.com/juanpablocruz/pulsetrace/pkg/ring"

const (
	DefaultWidth  = 1000
	DefaultCenter = 500.0
	DefaultTrail  = 600

	// Pulse shape, in ticks since the pulse started.
	riseEnd    = 20
	fallEnd    = 50
	recoverEnd = 60

	pulseStep = 15.0
	pulseSpan = 15
)

// Phase identifies which edge of the pulse is being drawn.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseRise
	PhaseFall
	PhaseRecover
)

// PhaseAt maps ticks elapsed since pulse start to its phase. Elapsed 0 (the
// activation tick) and anything past the recovery edge are PhaseNone.
func PhaseAt(elapsed int) Phase {
	switch {
	case elapsed <= 0:
		return PhaseNone
	case elapsed <= riseEnd:
		return PhaseRise
	case elapsed <= fallEnd:
		return PhaseFall
	case elapsed <= recoverEnd:
		return PhaseRecover
	default:
		return PhaseNone
	}
}

type pulse struct {
	active  bool
	origin  int
	elapsed int
}

// Machine owns the point buffer, cursor and pulse state. It is not safe for
// concurrent use; a single render loop drives it.
type Machine struct {
	width  int
	center float64
	trail  int

	trigger    Trigger
	schedEvery int
	schedPhase int

	line  *ring.Ring[Point]
	x     int
	y     float64
	pulse pulse

	ticks  uint64
	pulses uint64
}

// New builds a Machine with all points at the sentinel and the cursor at 0.
func New(opts ...Option) *Machine {
	m := &Machine{
		width:  DefaultWidth,
		center: DefaultCenter,
		trail:  DefaultTrail,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	if m.width < 1 {
		m.width = DefaultWidth
	}
	// the eraser must stay behind the cursor and inside the buffer
	if m.trail >= m.width {
		m.trail = m.width - 1
	}
	if m.trail < 1 {
		m.trail = 1
	}
	m.line = ring.New[Point](m.width)
	m.y = m.center
	return m
}

// Advance moves the trace forward by one tick.
func (m *Machine) Advance() {
	if m.x >= m.width {
		m.x, m.y = 0, m.center
	}

	m.line.Set(m.x, Point{X: float64(m.x), Y: m.y})

	if m.trigger != nil && m.trigger.Take() {
		m.startPulse()
	}
	if m.schedEvery > 0 && m.x%m.schedEvery == m.schedPhase {
		m.startPulse()
	}

	if m.pulse.active {
		m.beat()
	}

	m.line.Set(m.x-m.trail, Point{})

	m.ticks++
	m.x++
	if m.x >= m.width {
		m.x, m.y = 0, m.center
	}
}

func (m *Machine) startPulse() {
	if m.pulse.active {
		return
	}
	m.pulse = pulse{active: true, origin: m.x}
	m.pulses++
}

// beat draws one tick of the pulse. Elapsed ticks are counted rather than
// derived from the cursor so a pulse that straddles the wrap still ends.
func (m *Machine) beat() {
	d := m.pulse.elapsed
	m.pulse.elapsed++

	switch PhaseAt(d) {
	case PhaseRise, PhaseRecover:
		m.y += pulseStep
		m.edge(1)
	case PhaseFall:
		m.y -= pulseStep
		m.edge(-1)
	default:
		if d > recoverEnd {
			m.pulse = pulse{}
		}
	}
}

// edge writes pulseSpan points ahead of the cursor, stepping y by dir.
func (m *Machine) edge(dir float64) {
	for k := 0; k < pulseSpan; k++ {
		m.line.Set(m.x+k, Point{X: float64(m.x), Y: m.y + dir*float64(k)})
	}
}

// Cursor returns the live point at the head of the trace.
func (m *Machine) Cursor() Point { return Point{X: float64(m.x), Y: m.y} }

// Points returns every non-sentinel entry in buffer order.
func (m *Machine) Points() []Point {
	out := make([]Point, 0, m.trail)
	m.line.Each(func(_ int, p Point) bool {
		if !p.IsZero() {
			out = append(out, p)
		}
		return true
	})
	return out
}

// At returns the buffer entry at i modulo Width.
func (m *Machine) At(i int) Point { return m.line.Get(i) }

func (m *Machine) Width() int { return m.width }
func (m *Machine) Center() float64 { return m.center }
func (m *Machine) Pulsing() bool { return m.pulse.active }

// PulseOrigin reports where the active pulse started.
func (m *Machine) PulseOrigin() (int, bool) { return m.pulse.origin, m.pulse.active }

// Ticks counts Advance calls.
func (m *Machine) Ticks() uint64 { return m.ticks }

// Pulses counts pulses started.
func (m *Machine) Pulses() uint64 { return m.pulses }
