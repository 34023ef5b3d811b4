package render

import "github.com/charmbracelet/lipgloss"

var (
	lightGreen = lipgloss.Color("10")
	white      = lipgloss.Color("15")
	gray       = lipgloss.Color("240")
)

type Styles struct {
	Frame  lipgloss.Style
	Trace  lipgloss.Style
	Cursor lipgloss.Style
}

func NewStyles(lg *lipgloss.Renderer) *Styles {
	s := Styles{}
	s.Frame = lg.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(gray)
	s.Trace = lg.NewStyle().
		Foreground(lightGreen)
	s.Cursor = lg.NewStyle().
		Foreground(white).
		Bold(true)
	return &s
}
