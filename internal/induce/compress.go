package induce

import (
	"strings"

	"github.com/projectdiscovery/gologger"
)

// CompressRanges rewrites every primitive numeric alternation group of the
// node sequence into a compact per-position digit-range expression. Groups
// that mix plain and hyphen-prefixed numerals, or that carry fewer than two
// numeric alternatives, stay untouched. Non-primitive groups (anything that
// parsed into Paren) are recursed into, never compressed as a whole.
func CompressRanges(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		switch v := n.(type) {
		case *Group:
			out[i] = compressGroup(v)
		case *Paren:
			out[i] = &Paren{Seq: CompressRanges(v.Seq), Optional: v.Optional}
		default:
			out[i] = n
		}
	}
	return out
}

// Compress applies range compression to rendered pattern text. It is a pure
// rewrite: already-compressed rules parse into non-primitive nodes and come
// back unchanged, so feeding persisted rules through Compress is a no-op.
func Compress(pattern string) string {
	nodes, err := Parse(pattern)
	if err != nil {
		gologger.Warning().Msgf("skipping range compression of unparsable pattern %q: %s", pattern, err)
		return pattern
	}
	return Render(CompressRanges(nodes))
}

// compressGroup turns one alternation group into a Ranged expression when it
// qualifies, or returns the group unchanged.
func compressGroup(g *Group) Node {
	var numbers, hyphenated, leftover []string
	for _, alt := range g.Alts {
		switch {
		case isNumeric(alt):
			numbers = append(numbers, alt)
		case strings.HasPrefix(alt, "-") && isNumeric(alt[1:]):
			hyphenated = append(hyphenated, alt[1:])
		default:
			leftover = append(leftover, alt)
		}
	}

	// one form or the other, never both in a single group
	if len(numbers) > 0 && len(hyphenated) > 0 {
		return g
	}

	hyphen := false
	numerals := numbers
	if len(numerals) < 2 {
		if len(hyphenated) < 2 {
			return g
		}
		numerals = hyphenated
		hyphen = true
	}

	return &Ranged{
		Hyphen:   hyphen,
		Spans:    alignDigits(numerals),
		Leftover: leftover,
		Optional: g.Optional,
	}
}

// alignDigits folds numeric strings into per-position digit spans. Numerals
// are aligned on their least significant digit (hostname counters grow at
// the right edge), and every position past the shortest numeral's length is
// optional. A span always covers [min-max] even when intermediate digits
// were never observed; the compression is an approximation, not an exact
// set.
func alignDigits(numerals []string) []DigitSpan {
	shortest, longest := len(numerals[0]), len(numerals[0])
	for _, num := range numerals[1:] {
		if len(num) < shortest {
			shortest = len(num)
		}
		if len(num) > longest {
			longest = len(num)
		}
	}

	// position 0 is the least significant digit
	spans := make([]DigitSpan, 0, longest)
	for pos := longest - 1; pos >= 0; pos-- {
		lo, hi := byte('9'), byte('0')
		for _, num := range numerals {
			if pos >= len(num) {
				continue
			}
			d := num[len(num)-1-pos]
			if d < lo {
				lo = d
			}
			if d > hi {
				hi = d
			}
		}
		spans = append(spans, DigitSpan{Lo: lo, Hi: hi, Optional: pos >= shortest})
	}
	return spans
}
