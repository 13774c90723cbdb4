package handlers

import (
	"math"
	"testing"
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"1", 1},
		{"3", 3},
		{" 4", 4},
		{"2nd", 2},
		{"+5", 5},
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-2", 1},
		{"-", 1},
		{"99999999999999999999", math.MaxInt},
		{"-99999999999999999999", 1},
	}

	for _, tc := range cases {
		if got := ParsePage(tc.raw); got != tc.want {
			t.Fatalf("ParsePage(%q) = %d; want %d", tc.raw, got, tc.want)
		}
	}
}
