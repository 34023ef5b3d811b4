package render

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanpablocruz/pulsetrace/pkg/wave"
)

func testCanvas(w, h int) *Canvas {
	c := NewCanvas(1000, 1000, NewStyles(lipgloss.NewRenderer(io.Discard)))
	c.Resize(w, h)
	return c
}

func TestRasterCorners(t *testing.T) {
	c := testCanvas(12, 6)
	cols, rows := c.inner()
	require.Equal(t, 10, cols)
	require.Equal(t, 4, rows)

	grid := c.raster(cols, rows, []Layer{{Points: []wave.Point{{X: 0, Y: 1000}, {X: 1000, Y: 0}}}})

	assert.Equal(t, uint8(0x01), grid[0].dots)
	assert.Equal(t, uint8(0x80), grid[3*cols+9].dots)
	for i, cl := range grid {
		if i != 0 && i != 3*cols+9 {
			assert.Zerof(t, cl.dots, "cell %d should be empty", i)
		}
	}
}

func TestRasterSkipsOutOfBounds(t *testing.T) {
	c := testCanvas(12, 6)
	cols, rows := c.inner()
	grid := c.raster(cols, rows, []Layer{{Points: []wave.Point{{X: -1, Y: 10}, {X: 10, Y: 1001}}}})
	for _, cl := range grid {
		assert.Zero(t, cl.dots)
	}
}

func TestLaterLayerWinsCell(t *testing.T) {
	c := testCanvas(12, 6)
	cols, rows := c.inner()
	grid := c.raster(cols, rows, []Layer{
		{Points: []wave.Point{{X: 0, Y: 1000}}},
		{Points: []wave.Point{{X: 1, Y: 999}}},
	})
	assert.Equal(t, 2, grid[0].layer)
	assert.Equal(t, uint8(0x01), grid[0].dots&0x01)
}

func TestFrameIsFullRepaint(t *testing.T) {
	c := testCanvas(12, 6)
	out := c.Frame([]wave.Point{{X: 0, Y: 1000}}, wave.Point{X: 1000, Y: 0})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)
	for _, l := range lines {
		assert.Equal(t, 12, lipgloss.Width(l))
	}
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, "⠁")
	assert.Contains(t, out, "⢀")

	empty := c.Frame(nil, wave.Point{X: 1000, Y: 0})
	assert.NotContains(t, empty, "⠁")
}
