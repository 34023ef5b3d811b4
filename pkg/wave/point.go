package wave

// Point is one plotted coordinate. The zero Point is the sentinel for an
// empty slot.
type Point struct {
	X, Y float64
}

func (p Point) IsZero() bool { return p.X == 0 && p.Y == 0 }
