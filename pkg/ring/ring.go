// Package ring provides a fixed-capacity circular slice addressed by
// logical index. Every index is taken modulo the capacity, so callers can
// write relative to a moving cursor without repeating wrap arithmetic.
package ring

// Ring holds exactly Len() values; there are no holes.
type Ring[T any] struct {
	buf []T
}

// New creates a ring with the given capacity. A capacity below 1 becomes 1.
func New[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// Len returns the capacity.
func (r *Ring[T]) Len() int { return len(r.buf) }

// Index maps any logical index, negative included, into [0, Len()).
func (r *Ring[T]) Index(i int) int {
	n := len(r.buf)
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func (r *Ring[T]) Get(i int) T { return r.buf[r.Index(i)] }

func (r *Ring[T]) Set(i int, v T) { r.buf[r.Index(i)] = v }

// Fill writes v to every slot.
func (r *Ring[T]) Fill(v T) {
	for i := range r.buf {
		r.buf[i] = v
	}
}

// Each calls fn for every slot in physical order until fn returns false.
func (r *Ring[T]) Each(fn func(i int, v T) bool) {
	for i, v := range r.buf {
		if !fn(i, v) {
			return
		}
	}
}
