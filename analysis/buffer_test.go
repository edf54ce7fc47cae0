package analysis

import (
	"strings"
	"testing"
)

func TestUciBuffSet(t *testing.T) {
	// arrange
	cases := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "e2e4", want: "e2e4"},
		{in: "e7e8q", want: "e7e8q"},
		{in: "e7e8qq", want: "e7e8q"},
		{in: "this is far too long", want: "this "},
	}

	for _, c := range cases {
		// act
		var b UciBuff
		b.Set(c.in)

		// assert
		if got := b.String(); got != c.want {
			t.Errorf("Set(%q): want %q got %q", c.in, c.want, got)
		}
	}
}

func TestUciBuffValue(t *testing.T) {
	var b UciBuff

	if _, ok := b.Value(); ok {
		t.Error("empty buffer should report absent")
	}

	b.Set("g1f3")
	got, ok := b.Value()
	if !ok || got != "g1f3" {
		t.Errorf("want g1f3,true got %q,%v", got, ok)
	}

	b.Reset()
	if _, ok := b.Value(); ok {
		t.Error("reset buffer should report absent")
	}
}

func TestTrimIndex(t *testing.T) {
	// arrange
	cases := []struct {
		in   string
		max  int
		want string
	}{
		// whole string fits
		{in: "e2e4 e7e5", max: 9, want: "e2e4 e7e5"},
		{in: "", max: 9, want: ""},
		// drops the partial trailing token instead of splitting it
		{in: "e2e4 e7e5 g1f3 b8c6", max: 9, want: "e2e4 e7e5"},
		{in: "e2e4 e7e5 g1f3 b8c6", max: 13, want: "e2e4 e7e5"},
		{in: "e2e4 e7e5 g1f3 b8c6", max: 14, want: "e2e4 e7e5 g1f3"},
		// no boundary within reach: hard clamp
		{in: "abcdefghijklmn", max: 9, want: "abcdefghi"},
	}

	for _, c := range cases {
		// act
		got := c.in[:trimIndex(c.in, c.max, ' ')]

		// assert
		if got != c.want {
			t.Errorf("trimIndex(%q, %d): want %q got %q", c.in, c.max, c.want, got)
		}

		// idempotency: trimming the output again is a no-op
		if again := got[:trimIndex(got, c.max, ' ')]; again != got {
			t.Errorf("trimIndex(%q, %d) not idempotent: %q -> %q", c.in, c.max, got, again)
		}
	}
}

func TestPvBuffSetTrim(t *testing.T) {
	// arrange: 12 moves, 59 bytes, capacity holds 10 moves
	pv := "d2d4 d7d5 c2c4 e7e6 g1f3 g8f6 b1c3 f8e7 c1g5 e8g8 e2e3 h7h6"
	want := "d2d4 d7d5 c2c4 e7e6 g1f3 g8f6 b1c3 f8e7 c1g5 e8g8"

	// act
	var b PvBuff
	b.SetTrim(pv, ' ')

	// assert
	got := b.String()
	if got != want {
		t.Errorf("want %q got %q", want, got)
	}
	if strings.HasSuffix(got, " ") {
		t.Errorf("trimmed pv ends in boundary: %q", got)
	}

	b.SetTrim(got, ' ')
	if b.String() != want {
		t.Errorf("SetTrim not idempotent: %q -> %q", want, b.String())
	}
}
