package store

import (
	"errors"
	"testing"
	"time"
)

type point struct{ x, y int }

type marshaler struct{}

func (marshaler) MarshalBinary() ([]byte, error) { return []byte("bin"), nil }

func TestEncodeMatchesRedisArgs(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{"foo", "foo"},
		{[]byte("bar"), "bar"},
		{42, "42"},
		{int64(-7), "-7"},
		{uint8(255), "255"},
		{1.5, "1.5"},
		{3.0, "3"},
		{float32(0.25), "0.25"},
		{true, "1"},
		{false, "0"},
		{nil, ""},
		{2 * time.Second, "2000000000"},
		{marshaler{}, "bin"},
	}
	for _, tc := range cases {
		got, err := Encode(tc.in)
		if err != nil {
			t.Fatalf("Encode(%#v): %v", tc.in, err)
		}
		if string(got) != tc.want {
			t.Fatalf("Encode(%#v) = %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestEncodeRejectsUnknownTypes(t *testing.T) {
	if _, err := Encode(point{1, 2}); !errors.Is(err, ErrUnsupportedValue) {
		t.Fatalf("want ErrUnsupportedValue, got %v", err)
	}
}

func TestEncodeCopiesBytes(t *testing.T) {
	in := []byte("abc")
	out, _ := Encode(in)
	in[0] = 'X'
	if string(out) != "abc" {
		t.Fatalf("Encode shares the input slice: %q", out)
	}
}

func TestWindow(t *testing.T) {
	cases := []struct {
		n           int
		start, stop int64
		lo, hi      int
	}{
		{3, 0, -1, 0, 3},
		{3, 0, 0, 0, 1},
		{3, -2, -1, 1, 3},
		{3, 1, 100, 1, 3},
		{3, -100, 1, 0, 2},
		{3, 2, 1, 0, 0},
		{3, 5, 10, 0, 0},
		{0, 0, -1, 0, 0},
	}
	for _, tc := range cases {
		lo, hi := Window(tc.n, tc.start, tc.stop)
		if lo != tc.lo || hi != tc.hi {
			t.Fatalf("Window(%d,%d,%d) = [%d,%d) want [%d,%d)", tc.n, tc.start, tc.stop, lo, hi, tc.lo, tc.hi)
		}
	}
}
