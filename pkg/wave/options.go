package wave

// Trigger delivers an edge-triggered pulse request. Take must clear the
// request it reports.
type Trigger interface {
	Take() bool
}

// Option configures a Machine in New.
type Option func(*Machine)

func WithWidth(w int) Option {
	return func(m *Machine) { m.width = w }
}
func WithCenter(y float64) Option {
	return func(m *Machine) { m.center = y }
}

// WithTrail sets how far behind the cursor points are erased.
func WithTrail(n int) Option {
	return func(m *Machine) { m.trail = n }
}
func WithTrigger(t Trigger) Option {
	return func(m *Machine) { m.trigger = t }
}

// WithSchedule starts a pulse whenever the cursor sits at phase modulo
// every. every <= 0 disables it.
func WithSchedule(every, phase int) Option {
	return func(m *Machine) { m.schedEvery = every; m.schedPhase = phase }
}
