package probe

import "sync/atomic"

// Flag is a single-slot liveness signal. Raise overwrites, Take consumes.
// At most one signal is ever pending.
type Flag struct {
	v atomic.Bool
}

// Raise sets the flag. It reports false when a signal was already pending,
// meaning this one collapsed into it.
func (f *Flag) Raise() bool { return f.v.CompareAndSwap(false, true) }

// Take clears the flag and reports whether it was set.
func (f *Flag) Take() bool { return f.v.CompareAndSwap(true, false) }

// Pending reports the flag without consuming it.
func (f *Flag) Pending() bool { return f.v.Load() }
