package dispatch

import (
	"time"
	"unicode/utf8"
)

type Kind int

const (
	KindInput Kind = iota
	KindTick
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindTick:
		return "tick"
	default:
		return "unknown"
	}
}

// Key is a decoded keypress named the way bubbles/key bindings expect
// ("q", "ctrl+c", "esc", "up").
type Key string

func (k Key) String() string { return string(k) }

type Event struct {
	Kind Kind
	Key  Key
	Time time.Time
}

var csiKeys = map[byte]Key{
	'A': "up",
	'B': "down",
	'C': "right",
	'D': "left",
	'H': "home",
	'F': "end",
}

// DecodeKeys splits one raw-mode read into keys. Unknown escape sequences
// collapse to "esc"; invalid UTF-8 bytes are skipped.
func DecodeKeys(b []byte) []Key {
	var out []Key
	for len(b) > 0 {
		c := b[0]
		switch {
		case c == 0x1b:
			if len(b) >= 3 && b[1] == '[' {
				if k, ok := csiKeys[b[2]]; ok {
					out = append(out, k)
					b = b[3:]
					continue
				}
			}
			out = append(out, "esc")
			b = b[1:]
		case c == '\r' || c == '\n':
			out = append(out, "enter")
			b = b[1:]
		case c == '\t':
			out = append(out, "tab")
			b = b[1:]
		case c == 0x7f || c == 0x08:
			out = append(out, "backspace")
			b = b[1:]
		case c >= 0x01 && c <= 0x1a:
			out = append(out, Key("ctrl+"+string(rune('a'+c-1))))
			b = b[1:]
		case c < 0x20:
			b = b[1:]
		default:
			r, size := utf8.DecodeRune(b)
			if r != utf8.RuneError {
				if r == ' ' {
					out = append(out, "space")
				} else {
					out = append(out, Key(string(r)))
				}
			}
			b = b[size:]
		}
	}
	return out
}
