// Package render paints the waveform into a bordered braille canvas. Every
// call produces a complete frame; nothing is carried over between frames.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/juanpablocruz/pulsetrace/pkg/wave"
)

const (
	dotsX = 2
	dotsY = 4

	brailleBase = 0x2800
)

// braille[row][col] is the dot bit for a sub-cell position.
var braille = [dotsY][dotsX]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Layer is a set of points drawn in one style. Later layers win a cell's
// style when they share it.
type Layer struct {
	Points []wave.Point
	Style  lipgloss.Style
}

type cell struct {
	dots  uint8
	layer int // index+1 of the last layer touching the cell, 0 if empty
}

// Canvas maps data coordinates within fixed bounds onto a terminal area.
type Canvas struct {
	width, height int // outer size, border included
	xMin, xMax    float64
	yMin, yMax    float64
	styles        *Styles
}

func NewCanvas(xMax, yMax float64, styles *Styles) *Canvas {
	if styles == nil {
		styles = NewStyles(lipgloss.DefaultRenderer())
	}
	return &Canvas{width: 80, height: 24, xMax: xMax, yMax: yMax, styles: styles}
}

func (c *Canvas) Resize(width, height int) {
	c.width, c.height = width, height
}

func (c *Canvas) Styles() *Styles { return c.styles }

// inner is the drawable area in cells.
func (c *Canvas) inner() (cols, rows int) {
	cols = max(c.width-c.styles.Frame.GetHorizontalFrameSize(), 1)
	rows = max(c.height-c.styles.Frame.GetVerticalFrameSize(), 1)
	return cols, rows
}

// Frame renders the trace in the trace style and the cursor on top.
func (c *Canvas) Frame(points []wave.Point, cursor wave.Point) string {
	return c.Render(
		Layer{Points: points, Style: c.styles.Trace},
		Layer{Points: []wave.Point{cursor}, Style: c.styles.Cursor},
	)
}

func (c *Canvas) Render(layers ...Layer) string {
	cols, rows := c.inner()
	grid := c.raster(cols, rows, layers)

	var sb strings.Builder
	for r := 0; r < rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		row := grid[r*cols : (r+1)*cols]
		for i := 0; i < len(row); {
			j := i
			for j < len(row) && row[j].layer == row[i].layer {
				j++
			}
			run := runes(row[i:j])
			if row[i].layer == 0 {
				sb.WriteString(run)
			} else {
				sb.WriteString(layers[row[i].layer-1].Style.Render(run))
			}
			i = j
		}
	}
	return c.styles.Frame.Width(cols).Render(sb.String())
}

func (c *Canvas) raster(cols, rows int, layers []Layer) []cell {
	grid := make([]cell, cols*rows)
	w, h := cols*dotsX, rows*dotsY
	for li, l := range layers {
		for _, p := range l.Points {
			px, py, ok := c.project(p, w, h)
			if !ok {
				continue
			}
			cl := &grid[(py/dotsY)*cols+px/dotsX]
			cl.dots |= braille[py%dotsY][px%dotsX]
			cl.layer = li + 1
		}
	}
	return grid
}

// project maps a data point to dot coordinates, y growing downwards.
func (c *Canvas) project(p wave.Point, w, h int) (int, int, bool) {
	if p.X < c.xMin || p.X > c.xMax || p.Y < c.yMin || p.Y > c.yMax {
		return 0, 0, false
	}
	px := int((p.X - c.xMin) / (c.xMax - c.xMin) * float64(w-1))
	py := int((c.yMax - p.Y) / (c.yMax - c.yMin) * float64(h-1))
	return px, py, true
}

func runes(cells []cell) string {
	var sb strings.Builder
	for _, cl := range cells {
		if cl.dots == 0 {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteRune(rune(brailleBase + int(cl.dots)))
	}
	return sb.String()
}
