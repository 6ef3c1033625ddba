package induce

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// ErrMalformedHost is returned when a hostname yields no usable subdomain
// tokens relative to the target domain. Such hosts are excluded from the
// working set by callers, they are never fatal.
var ErrMalformedHost = errors.New("malformed host")

// Tokenize splits the subdomain portion of host (relative to target) into
// levels and lexical tokens.
//
// The subdomain is split on dots into levels, each level is split on hyphens
// and then into maximal alternating digit/non-digit runs. A hyphen that
// immediately precedes a pure digit run stays attached to that run, so
// "foo-12" tokenizes as ["foo", "-12"] rather than ["foo", "-", "12"].
func Tokenize(host, target string) (*TokenizedHost, error) {
	sub, err := subdomainOf(host, target)
	if err != nil {
		return nil, err
	}
	if sub == "" {
		return nil, fmt.Errorf("%w: %s has no subdomain", ErrMalformedHost, host)
	}

	labels := strings.Split(sub, ".")
	levels := make([][]string, 0, len(labels))
	for _, label := range labels {
		levels = append(levels, tokenizeLabel(label))
	}

	if len(levels) == 0 || len(levels[0]) == 0 || levels[0][0] == "" {
		return nil, fmt.Errorf("%w: %s yields no leading token", ErrMalformedHost, host)
	}
	return &TokenizedHost{Host: host, Levels: levels}, nil
}

// subdomainOf strips the target domain (or, when target does not match, the
// registrable domain derived from the public suffix list) from host.
func subdomainOf(host, target string) (string, error) {
	if host == target {
		return "", nil
	}
	if target != "" && strings.HasSuffix(host, "."+target) {
		return strings.TrimSuffix(host, "."+target), nil
	}
	root, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return "", fmt.Errorf("%w: %s is not a valid domain", ErrMalformedHost, host)
	}
	if host == root {
		return "", nil
	}
	return strings.TrimSuffix(host, "."+root), nil
}

// tokenizeLabel splits one dot-delimited label into lexical tokens.
func tokenizeLabel(label string) []string {
	var tokens []string
	for i, segment := range strings.Split(label, "-") {
		if i > 0 {
			segment = "-" + segment
		}
		runs := splitRuns(segment)
		for j := 0; j < len(runs); j++ {
			// keep the hyphen attached to a following digit run
			if runs[j] == "-" && j+1 < len(runs) && isNumeric(runs[j+1]) {
				tokens = append(tokens, "-"+runs[j+1])
				j++
				continue
			}
			tokens = append(tokens, runs[j])
		}
	}
	return tokens
}

// splitRuns breaks s into maximal runs of digit and non-digit characters.
func splitRuns(s string) []string {
	if s == "" {
		return nil
	}
	var runs []string
	start := 0
	digits := isDigit(s[0])
	for i := 1; i < len(s); i++ {
		if isDigit(s[i]) != digits {
			runs = append(runs, s[start:i])
			start = i
			digits = !digits
		}
	}
	return append(runs, s[start:])
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
