package format

import (
	"testing"
)

func TestParseSpan(t *testing.T) {
	tests := []struct{
		tok string
		lo, hi int
		valid bool
	} {
		{"", 0, 0, false},
		{"1", 1, 1, true},
		{"a", 0, 0, false},
		{"1..30", 1, 30, true},
		{"a..30", 0, 0, false},
		{"1..a", 0, 0, false},
		{"30..1", 0, 0, false},
		{"a..b", 0, 0, false},
		{"1..30..60", 0, 0, false},
	}

	for i := range tests {
		s, err := parseSpan(tests[i].tok)
		if tests[i].valid && err != nil {
			t.Errorf("%d) Expected token '%s' to be valid, but got error '%s'.",
				i, tests[i].tok, err.Error())
		} else if !tests[i].valid && err == nil {
			t.Errorf("%d) Expected token '%s' to be invalid, but got no error.",
				i, tests[i].tok)
		} else if tests[i].valid && (s.lo != tests[i].lo || s.hi != tests[i].hi) {
			t.Errorf("%d) Expected token '%s' to span %d..%d, got %d..%d.",
				i, tests[i].tok, tests[i].lo, tests[i].hi, s.lo, s.hi)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct{
		format string
		tok []string
		valid bool
	} {
		{"", nil, false},
		{"   ", nil, false},
		{"0", []string{"0"}, true},
		{"10..20", []string{"10..20"}, true},
		{"0+1", []string{"0", "+", "1"}, true},
		{"0 - 1", []string{"0", "-", "1"}, true},
		{"  0+       1    ", []string{"0", "+", "1"}, true},
		{"-0..100 + 0..200-9", []string{"-", "0..100", "+", "0..200",
			"-", "9"}, true},
		{"+-+-", []string{"+", "-", "+", "-"}, true},
	}

	for i := range tests {
		tok, err := tokenize(tests[i].format)
		if tests[i].valid && err != nil {
			t.Errorf("%d) Expected '%s' to be valid, but got error '%s'.",
				i, tests[i].format, err.Error())
		} else if !tests[i].valid && err == nil {
			t.Errorf("%d) Expected '%s' to be invalid, but got no error.",
				i, tests[i].format)
		} else if tests[i].valid && !stringsEq(tok, tests[i].tok) {
			t.Errorf("%d) Expected '%s' to tokenize to %s, got %s.",
				i, tests[i].format, tests[i].tok, tok)
		}
	}
}

func TestExpandSequence(t *testing.T) {
	tests := []struct{
		format string
		n []int
		valid bool
	} {
		{"", nil, false},
		{"a", nil, false},
		{"10..a", nil, false},
		{"a..10", nil, false},
		{"1", []int{ 1 }, true},
		{"1..5", []int{ 1, 2, 3, 4, 5 }, true},
		{"+1", []int{ 1 }, true},
		{"+ 1..5", []int{ 1, 2, 3, 4, 5 }, true},
		{"-1", nil, false},
		{"- 1..5", nil, false},
		{"1 + 2", []int{1, 2}, true},
		{"1+2", []int{1, 2}, true},
		{"1 + 1", nil, false},
		{"1 2", nil, false},
		{"1 * 2", nil, false},
		{"1 + + 2", nil, false},
		{"3..5 + 1 + 7..9", []int{1, 3, 4, 5, 7, 8, 9}, true},
		{"-3 + 3..5 - 4", []int{5}, true},
		{"1..10 - 2..9", []int{1, 10}, true},
		{"0..100 - 1..100", []int{0}, true},
		{"3..5 - 1", nil, false},
		{"3..5 - 4 - 4", nil, false},
		{"3..5 + 6+", nil, false},
		{"3..5 + 6-", nil, false},
		{"0..2000000", nil, false},
		{"0..9223372036854775807", nil, false},
		{"1 + 0..9223372036854775807", nil, false},
		{"0..1000000 + 1000001..2000000", nil, false},
		{"0 - 0..9223372036854775807", nil, false},
	}

	for i := range tests {
		n, err := ExpandSequence(tests[i].format)

		if tests[i].valid && err != nil {
			t.Errorf("%d) Expected '%s' could be expanded, got error '%s'",
				i, tests[i].format, err.Error())
		} else if !tests[i].valid && err == nil{
			t.Errorf("%d) Expected '%s' should fail, but got no error.",
				i, tests[i].format)
		} else if tests[i].valid && !intsEq(n, tests[i].n) {
			t.Errorf("%d) Expected '%s' to expand to %d, got %d",
				i, tests[i].format, tests[i].n, n)
		}
	}
}

func TestVariableBounds(t *testing.T) {
	tests := []struct{
		format string
		starts, ends []int
		valid bool
	} {
		{"aaaaaa", []int{}, []int{}, true},
		{"a{bb}a", []int{1}, []int{5}, true},
		{"{bb}aa", []int{0}, []int{4}, true},
		{"aa{bb}", []int{2}, []int{6}, true},
		{"{}", []int{0}, []int{2}, true},
		{"{}{bb}{}{}", []int{0, 2, 6, 8}, []int{2, 6, 8, 10}, true},
		{"{}{bb}a{}{}", []int{0, 2, 7, 9}, []int{2, 6, 9, 11}, true},
		{"{", nil, nil, false},
		{"}", nil, nil, false},
		{"{{", nil, nil, false},
		{"{{}}", nil, nil, false},
		{"{}{", nil, nil, false},
		{"{}}", nil, nil, false},
		{"}{}", nil, nil, false},
		{"{{}", nil, nil, false},
	}

	for i := range tests {
		starts, ends, err := variableBounds(tests[i].format)
		if tests[i].valid && err != nil {
			t.Errorf("%d) Expected '%s' could be processed, but got error '%s'",
				i, tests[i].format, err.Error())
		} else if !tests[i].valid && err == nil {
			t.Errorf("%d) Expected '%s' should fail, but got no error.",
				i, tests[i].format)
		} else if tests[i].valid && (!intsEq(starts, tests[i].starts) ||
			!intsEq(ends, tests[i].ends)) {
			t.Errorf("%d) Expected '%s' should have starts = %d, ends = %d, but got starts = %d, ends = %d",
				i, tests[i].format, tests[i].starts,
				tests[i].ends, starts, ends,
			)
		}
	}
}

func TestPattern(t *testing.T) {
	tests := []struct{
		format string
		frame int
		species string
		out string
		valid bool
	} {
		{"snap.bundle", 3, "elec", "snap.bundle", true},
		{"diags/{%s,species}/snap_{%05d,frame}.bundle", 40, "elec",
			"diags/elec/snap_00040.bundle", true},
		{"{%d,frame}-{%d,frame}", 7, "", "7-7", true},
		{"{ %03d , frame }", 7, "", "007", true},
		{"{%d,species}", 0, "", "", false},
		{"{%s,frame}", 0, "", "", false},
		{"{%d,snapshot}", 0, "", "", false},
		{"{%d}", 0, "", "", false},
		{"{d,frame}", 0, "", "", false},
		{"{%d%d,frame}", 0, "", "", false},
		{"snap_{%d,frame", 0, "", "", false},
	}

	for i := range tests {
		p, err := ParsePattern(tests[i].format)
		if tests[i].valid && err != nil {
			t.Errorf("%d) Expected '%s' to parse, but got error '%s'.",
				i, tests[i].format, err.Error())
			continue
		} else if !tests[i].valid {
			if err == nil {
				t.Errorf("%d) Expected '%s' to fail, but got no error.",
					i, tests[i].format)
			}
			continue
		}

		out := p.Expand(tests[i].frame, tests[i].species)
		if out != tests[i].out {
			t.Errorf("%d) Expected '%s' to expand to '%s', got '%s'.",
				i, tests[i].format, tests[i].out, out)
		}
		if p.String() != tests[i].format {
			t.Errorf("%d) Expected String() = '%s', got '%s'.",
				i, tests[i].format, p.String())
		}
	}

	p, err := ParsePattern("{%s,species}/{%d,frame}")
	if err != nil { t.Fatal(err.Error()) }
	if !p.Uses(FrameVar) || !p.Uses(SpeciesVar) {
		t.Errorf("Expected pattern to use both variables.")
	}
	p, err = ParsePattern("snap_{%d,frame}")
	if err != nil { t.Fatal(err.Error()) }
	if p.Uses(SpeciesVar) {
		t.Errorf("Expected pattern to not use the species variable.")
	}
}

//////////////////////
// Helper functions //
//////////////////////

func intsEq(x, y []int) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

func stringsEq(x, y []string) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}
