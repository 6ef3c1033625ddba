package induce

import "testing"

func TestSynthesize(t *testing.T) {
	tests := []struct {
		name    string
		members []string
		want    string
	}{
		{
			name:    "single member",
			members: []string{"www.example.com"},
			want:    "(www).example.com",
		},
		{
			name:    "numeric alternation",
			members: []string{"dev1.example.com", "dev2.example.com", "dev3.example.com"},
			want:    "(dev)(1|2|3).example.com",
		},
		{
			name:    "leading token alternation",
			members: []string{"dev.example.com", "prod.example.com"},
			want:    "(dev|prod).example.com",
		},
		{
			name:    "position missing in some member",
			members: []string{"api.example.com", "api01.example.com"},
			want:    "(api)(01)?.example.com",
		},
		{
			name:    "hyphenated numbers",
			members: []string{"web-1.example.com", "web-2.example.com"},
			want:    "(web)(-1|-2).example.com",
		},
		{
			name:    "uniform deeper level stays mandatory",
			members: []string{"api.staging.example.com", "www.staging.example.com"},
			want:    "(api|www)(.staging).example.com",
		},
		{
			name:    "level missing in some member",
			members: []string{"api.example.com", "api.staging.example.com"},
			want:    "(api)(.staging)?.example.com",
		},
		{
			name:    "non uniform deeper level",
			members: []string{"api.staging.example.com", "api.prod.example.com"},
			want:    "(api)(.(staging|prod))?.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := Synthesize("example.com", tt.members)
			if err != nil {
				t.Fatalf("Synthesize() error = %v", err)
			}
			if got := Render(nodes); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSynthesizeErrors(t *testing.T) {
	if _, err := Synthesize("example.com", nil); err == nil {
		t.Error("Synthesize(nil) succeeded, want error")
	}
	if _, err := Synthesize("example.com", []string{"example.com"}); err == nil {
		t.Error("Synthesize(bare target) succeeded, want error")
	}
}

func TestSynthesizeAlternationOrder(t *testing.T) {
	// alternatives keep first-seen member order, not sorted order
	nodes, err := Synthesize("example.com", []string{"zeta.example.com", "alpha.example.com"})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if got := Render(nodes); got != "(zeta|alpha).example.com" {
		t.Errorf("Render() = %q, want %q", got, "(zeta|alpha).example.com")
	}
}
