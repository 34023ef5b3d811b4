package dispatch

import (
	"reflect"
	"testing"
)

func TestDecodeKeys(t *testing.T) {
	cases := []struct {
		in   string
		want []Key
	}{
		{"q", []Key{"q"}},
		{"\x03", []Key{"ctrl+c"}},
		{"\x1b[A\x1b[D", []Key{"up", "left"}},
		{"\x1b", []Key{"esc"}},
		{"\x1bx", []Key{"esc", "x"}},
		{"a b\r", []Key{"a", "space", "b", "enter"}},
		{"\x7f\t", []Key{"backspace", "tab"}},
		{"é", []Key{"é"}},
		{"\xff", nil},
	}
	for _, c := range cases {
		if got := DecodeKeys([]byte(c.in)); !reflect.DeepEqual(got, c.want) {
			t.Fatalf("DecodeKeys(%q) = %v want %v", c.in, got, c.want)
		}
	}
}

func TestKindString(t *testing.T) {
	if KindTick.String() != "tick" || KindInput.String() != "input" {
		t.Fatalf("unexpected kind names")
	}
}
