package induce

import "testing"

func TestCompress(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{
			name:    "contiguous digits",
			pattern: "(dev)(1|2|3).example.com",
			want:    "(dev)([1-3]).example.com",
		},
		{
			name:    "gap still covered by span",
			pattern: "(dev)(1|3).example.com",
			want:    "(dev)([1-3]).example.com",
		},
		{
			name:    "mixed lengths get optional high digit",
			pattern: "(1|2|10)",
			want:    "(1?[0-2])",
		},
		{
			name:    "hyphenated numerals",
			pattern: "(web)(-1|-2|-3).example.com",
			want:    "(web)(-[1-3]).example.com",
		},
		{
			name:    "non numeric leftover preserved",
			pattern: "(1|2|beta)",
			want:    "(([1-2])|(beta))",
		},
		{
			name:    "mixed plain and hyphenated stays untouched",
			pattern: "(1|-2)",
			want:    "(1|-2)",
		},
		{
			name:    "single numeral stays untouched",
			pattern: "(1|beta)",
			want:    "(1|beta)",
		},
		{
			name:    "optional group keeps its marker",
			pattern: "(api)(1|2)?.example.com",
			want:    "(api)([1-2])?.example.com",
		},
		{
			name:    "word alternation stays untouched",
			pattern: "(dev|prod).example.com",
			want:    "(dev|prod).example.com",
		},
		{
			name:    "group nested in level wrapper",
			pattern: "(api)(.(1|2|3))?.example.com",
			want:    "(api)(.([1-3]))?.example.com",
		},
		{
			name:    "equal digits collapse to a literal",
			pattern: "(01|02)",
			want:    "(0[1-2])",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compress(tt.pattern); got != tt.want {
				t.Errorf("Compress(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

// Compressing an already compressed rule is a no-op, so persisted rules can
// be fed back through the pipeline safely.
func TestCompressIdempotent(t *testing.T) {
	patterns := []string{
		"(dev)(1|2|3).example.com",
		"(1|2|10)",
		"(1|2|beta)",
		"(api)(1|2)?.example.com",
		"(web)(-1|-2|-3).example.com",
	}
	for _, pattern := range patterns {
		once := Compress(pattern)
		if twice := Compress(once); twice != once {
			t.Errorf("Compress(%q) = %q, but Compress(Compress) = %q", pattern, once, twice)
		}
	}
}

func TestAlignDigits(t *testing.T) {
	spans := alignDigits([]string{"1", "2", "10"})
	if len(spans) != 2 {
		t.Fatalf("alignDigits() yielded %d spans, want 2", len(spans))
	}
	// most significant position first, only the longest numeral reaches it
	if spans[0].Lo != '1' || spans[0].Hi != '1' || !spans[0].Optional {
		t.Errorf("span[0] = %+v, want optional 1-1", spans[0])
	}
	if spans[1].Lo != '0' || spans[1].Hi != '2' || spans[1].Optional {
		t.Errorf("span[1] = %+v, want mandatory 0-2", spans[1])
	}
}
