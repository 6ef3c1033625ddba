package induce

import (
	"errors"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name   string
		host   string
		target string
		want   [][]string
	}{
		{
			name:   "single label",
			host:   "www.example.com",
			target: "example.com",
			want:   [][]string{{"www"}},
		},
		{
			name:   "trailing number",
			host:   "api01.example.com",
			target: "example.com",
			want:   [][]string{{"api", "01"}},
		},
		{
			name:   "hyphenated number stays one token",
			host:   "foo-12.example.com",
			target: "example.com",
			want:   [][]string{{"foo", "-12"}},
		},
		{
			name:   "hyphenated words",
			host:   "api-dev-01.example.com",
			target: "example.com",
			want:   [][]string{{"api", "-dev", "-01"}},
		},
		{
			name:   "digit run in the middle",
			host:   "api123test.example.com",
			target: "example.com",
			want:   [][]string{{"api", "123", "test"}},
		},
		{
			name:   "multi level",
			host:   "api.v1.staging.example.com",
			target: "example.com",
			want:   [][]string{{"api"}, {"v", "1"}, {"staging"}},
		},
		{
			name:   "mixed levels with hyphens",
			host:   "web-us-east-1.prod.example.com",
			target: "example.com",
			want:   [][]string{{"web", "-us", "-east", "-1"}, {"prod"}},
		},
		{
			name:   "multi part public suffix",
			host:   "api.example.co.uk",
			target: "example.co.uk",
			want:   [][]string{{"api"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.host, tt.target)
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}
			if got.Host != tt.host {
				t.Errorf("Host = %v, want %v", got.Host, tt.host)
			}
			if !reflect.DeepEqual(got.Levels, tt.want) {
				t.Errorf("Levels = %v, want %v", got.Levels, tt.want)
			}
		})
	}
}

func TestTokenizeMalformed(t *testing.T) {
	tests := []struct {
		name   string
		host   string
		target string
	}{
		{name: "bare target", host: "example.com", target: "example.com"},
		{name: "no dots and no suffix", host: "localhost", target: "example.com"},
		{name: "empty leading label", host: ".example.com", target: "example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.host, tt.target)
			if !errors.Is(err, ErrMalformedHost) {
				t.Fatalf("Tokenize(%q) error = %v, want ErrMalformedHost", tt.host, err)
			}
		})
	}
}

func TestTokenizeFallbackTarget(t *testing.T) {
	// a host outside the target domain still tokenizes against its own
	// registrable domain
	got, err := Tokenize("mail.other.org", "example.com")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	want := [][]string{{"mail"}}
	if !reflect.DeepEqual(got.Levels, want) {
		t.Errorf("Levels = %v, want %v", got.Levels, want)
	}
}

func TestFirstToken(t *testing.T) {
	th, err := Tokenize("web-us-east-1.prod.example.com", "example.com")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if got := th.FirstToken(); got != "web" {
		t.Errorf("FirstToken() = %v, want web", got)
	}
}

func TestSplitRuns(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{input: "api", want: []string{"api"}},
		{input: "api01", want: []string{"api", "01"}},
		{input: "api123test", want: []string{"api", "123", "test"}},
		{input: "123", want: []string{"123"}},
		{input: "server01rack02", want: []string{"server", "01", "rack", "02"}},
		{input: "", want: nil},
	}
	for _, tt := range tests {
		if got := splitRuns(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitRuns(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
