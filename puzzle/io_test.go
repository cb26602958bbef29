package puzzle

import (
	"testing"
)

func TestString(t *testing.T) {
	p := helperRaw(t, 3, []int{1, 2, 0, 3, 4, 5})
	if es := "1 2 0\n3 4 5\n"; p.String() != es {
		t.Errorf("3x2 renders as %q, expected %q", p.String(), es)
	}
	// two-digit values right-align the whole grid
	q, err := Solved(4, 4)
	if err != nil {
		t.Fatalf("Failed to make solved 4x4: %v", err)
	}
	es := " 0  1  2  3\n 4  5  6  7\n 8  9 10 11\n12 13 14 15\n"
	if q.String() != es {
		t.Errorf("4x4 renders as %q, expected %q", q.String(), es)
	}
}

func TestParse(t *testing.T) {
	p, err := Parse("0 1 2\n3 4 5")
	if err != nil {
		t.Fatalf("Failed to parse grid: %v", err)
	}
	q := helperRaw(t, 3, []int{0, 1, 2, 3, 4, 5})
	if p.Key() != q.Key() {
		t.Errorf("Parsed grid is %v, expected %v", p.Values(), q.Values())
	}
	// blank lines and extra whitespace are fine
	p, err = Parse("\n  0 1  2\n\n3 4 5\n\n")
	if err != nil {
		t.Fatalf("Failed to parse ragged whitespace: %v", err)
	}
	if p.Key() != q.Key() {
		t.Errorf("Whitespace parse is %v, expected %v", p.Values(), q.Values())
	}
}

func TestParseRoundTrip(t *testing.T) {
	p := helperRaw(t, 4, []int{1, 2, 0, 3, 4, 5, 9, 7, 8, 6, 10, 11})
	q, err := Parse(p.String())
	if err != nil {
		t.Fatalf("Failed to parse rendered grid: %v", err)
	}
	if q.Key() != p.Key() {
		t.Errorf("Render round trip changed the puzzle: %v vs %v", q.Values(), p.Values())
	}
}

type parseErrorTestcase struct {
	text      string
	condition ErrorCondition
}

func TestParseErrors(t *testing.T) {
	tcs := []parseErrorTestcase{
		{"", MalformedGridCondition},
		{"0 1 2\n3 4", MalformedGridCondition},
		{"0 1 2\n3 4 5 6", MalformedGridCondition},
		{"0 one 2\n3 4 5", MalformedGridCondition},
		{"0 1 2\n3 4 4", NotPermutationCondition},
		{"0 1\n2 3", TooSmallCondition},
	}
	for _, tc := range tcs {
		_, err := Parse(tc.text)
		if err == nil {
			t.Errorf("No error parsing %q", tc.text)
			continue
		}
		if e, ok := err.(Error); !ok || e.Condition != tc.condition {
			t.Errorf("Wrong error parsing %q: %v", tc.text, err)
		}
	}
}
