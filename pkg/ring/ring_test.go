package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexWraps(t *testing.T) {
	r := New[int](10)
	cases := map[int]int{
		0:    0,
		9:    9,
		10:   0,
		23:   3,
		-1:   9,
		-10:  0,
		-600: 0,
		-595: 5,
	}
	for in, want := range cases {
		assert.Equalf(t, want, r.Index(in), "Index(%d)", in)
	}
}

func TestSetGetRelative(t *testing.T) {
	r := New[string](4)
	for k := 0; k < 6; k++ {
		r.Set(2+k, "x")
	}
	r.Set(-1, "last")

	require.Equal(t, "last", r.Get(3))
	require.Equal(t, "last", r.Get(7))
	require.Equal(t, "x", r.Get(0))
}

func TestZeroCapacityClamped(t *testing.T) {
	r := New[int](0)
	require.Equal(t, 1, r.Len())
	r.Set(5, 7)
	require.Equal(t, 7, r.Get(-3))
}

func TestEachStopsEarly(t *testing.T) {
	r := New[int](5)
	r.Fill(1)
	seen := 0
	r.Each(func(i, v int) bool {
		seen += v
		return i < 2
	})
	assert.Equal(t, 3, seen)
}
