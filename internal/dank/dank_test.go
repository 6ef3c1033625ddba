package dank

import (
	"reflect"
	"testing"
)

func TestEncoderWords(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{
			name:    "literal",
			pattern: "abc",
			want:    []string{"abc"},
		},
		{
			name:    "alternation",
			pattern: "(a|b)c",
			want:    []string{"ac", "bc"},
		},
		{
			name:    "bracket range",
			pattern: "(dev)([1-3]).example.com",
			want: []string{
				"dev1.example.com",
				"dev2.example.com",
				"dev3.example.com",
			},
		},
		{
			name:    "optional group",
			pattern: "(a)(.staging)?.example.com",
			want: []string{
				"a.example.com",
				"a.staging.example.com",
			},
		},
		{
			name:    "optional digit position",
			pattern: "(1?[0-2])",
			want:    []string{"0", "1", "10", "11", "12", "2"},
		},
		{
			name:    "leftover alternation",
			pattern: "(([1-2])|(beta))",
			want:    []string{"1", "2", "beta"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := NewEncoder(tt.pattern, 256)
			if err != nil {
				t.Fatalf("NewEncoder() error = %v", err)
			}
			got := enc.Words()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Words() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEncoderNumWords(t *testing.T) {
	tests := []struct {
		pattern string
		want    int64
	}{
		{pattern: "abc", want: 1},
		{pattern: "(a|b)(1|2)", want: 4},
		{pattern: "(dev)([1-3]).example.com", want: 3},
		{pattern: "(1?[0-2])", want: 6},
		{pattern: "(a)(.staging)?.example.com", want: 2},
		{pattern: "(a|b)(c|d)?(e|f)?", want: 18},
	}
	for _, tt := range tests {
		enc, err := NewEncoder(tt.pattern, 256)
		if err != nil {
			t.Fatalf("NewEncoder(%q) error = %v", tt.pattern, err)
		}
		if got := enc.NumWords(1, 256); got != tt.want {
			t.Errorf("NumWords(%q) = %d, want %d", tt.pattern, got, tt.want)
		}
	}
}

func TestEncoderCountMatchesEnumeration(t *testing.T) {
	patterns := []string{
		"(dev)([1-3]).example.com",
		"(1?[0-2])",
		"(a|b)(c|d)?",
		"(web)(-[1-3]).example.com",
	}
	for _, pattern := range patterns {
		enc, err := NewEncoder(pattern, 256)
		if err != nil {
			t.Fatalf("NewEncoder(%q) error = %v", pattern, err)
		}
		words := enc.Words()
		if got := enc.NumWords(1, 256); got != int64(len(words)) {
			t.Errorf("NumWords(%q) = %d, but Words() yields %d", pattern, got, len(words))
		}
	}
}

func TestEncoderLengthBounds(t *testing.T) {
	enc, err := NewEncoder("(a|ab|abc)", 256)
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
	if got := enc.NumWords(2, 256); got != 2 {
		t.Errorf("NumWords(2, 256) = %d, want 2", got)
	}
	if got := enc.NumWords(1, 2); got != 2 {
		t.Errorf("NumWords(1, 2) = %d, want 2", got)
	}

	// maxLen bounds enumeration as well as counting
	enc, err = NewEncoder("(a|ab|abc)", 2)
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
	if got := enc.Words(); !reflect.DeepEqual(got, []string{"a", "ab"}) {
		t.Errorf("Words() = %v, want [a ab]", got)
	}
}

func TestEncoderMinimization(t *testing.T) {
	// equivalent patterns minimize to the same automaton size
	a, err := NewEncoder("(a|b)", 256)
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
	b, err := NewEncoder("((a)|(b))", 256)
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
	if a.NumStates() != b.NumStates() {
		t.Errorf("NumStates: %d vs %d for equivalent patterns", a.NumStates(), b.NumStates())
	}
	if a.NumStates() != 2 {
		t.Errorf("NumStates() = %d, want 2", a.NumStates())
	}
}

func TestEncoderErrors(t *testing.T) {
	for _, pattern := range []string{"(a", "(a|b", "a)b", "((a)"} {
		if _, err := NewEncoder(pattern, 256); err == nil {
			t.Errorf("NewEncoder(%q) succeeded, want error", pattern)
		}
	}
}

func TestExpandRanges(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "[1-3]", want: "(1|2|3)"},
		{input: "a[0-1]b", want: "a(0|1)b"},
		{input: "no ranges", want: "no ranges"},
		{input: "[1-3][5-6]", want: "(1|2|3)(5|6)"},
	}
	for _, tt := range tests {
		if got := expandRanges(tt.input); got != tt.want {
			t.Errorf("expandRanges(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
