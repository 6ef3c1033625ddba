package induce

import (
	"fmt"
	"strings"
)

// The synthesizer and compressor operate over a small syntax tree of the
// emitted pattern dialect instead of rewriting pattern text in place. Text
// is only produced at the boundary by Render and consumed by Parse.
//
// The dialect is restricted: literal characters, single-level alternation
// groups (a|b|...), an optional suffix ?, and bracketed digit ranges [x-y]
// produced by range compression.

// Node is one element of a pattern sequence.
type Node interface {
	render(sb *strings.Builder)
}

// Text is a literal run rendered verbatim. Bracket ranges and optionality
// markers inside already-compressed rules survive a Parse/Render round trip
// as plain text.
type Text string

func (t Text) render(sb *strings.Builder) {
	sb.WriteString(string(t))
}

// Group is a primitive parenthesized alternation of literal alternatives.
type Group struct {
	Alts     []string
	Optional bool
}

func (g *Group) render(sb *strings.Builder) {
	sb.WriteByte('(')
	sb.WriteString(strings.Join(g.Alts, "|"))
	sb.WriteByte(')')
	if g.Optional {
		sb.WriteByte('?')
	}
}

// Paren is a parenthesized subsequence, used for level wrappers and for any
// parsed group that is not a primitive alternation.
type Paren struct {
	Seq      []Node
	Optional bool
}

func (p *Paren) render(sb *strings.Builder) {
	sb.WriteByte('(')
	for _, n := range p.Seq {
		n.render(sb)
	}
	sb.WriteByte(')')
	if p.Optional {
		sb.WriteByte('?')
	}
}

// DigitSpan is one digit position of a compressed numeric expression,
// most significant position first.
type DigitSpan struct {
	Lo, Hi   byte // '0'..'9'
	Optional bool
}

// Ranged is the compressed replacement of a numeric alternation group:
// a per-position digit range expression, optionally hyphen-prefixed, with
// any non-numeric alternatives of the original group preserved alongside.
type Ranged struct {
	Hyphen   bool
	Spans    []DigitSpan
	Leftover []string
	Optional bool
}

func (r *Ranged) render(sb *strings.Builder) {
	var core strings.Builder
	core.WriteByte('(')
	if r.Hyphen {
		core.WriteByte('-')
	}
	for _, span := range r.Spans {
		if span.Lo == span.Hi {
			core.WriteByte(span.Lo)
		} else {
			core.WriteByte('[')
			core.WriteByte(span.Lo)
			core.WriteByte('-')
			core.WriteByte(span.Hi)
			core.WriteByte(']')
		}
		if span.Optional {
			core.WriteByte('?')
		}
	}
	core.WriteByte(')')

	if len(r.Leftover) > 0 {
		sb.WriteByte('(')
		sb.WriteString(core.String())
		sb.WriteString("|(")
		sb.WriteString(strings.Join(r.Leftover, "|"))
		sb.WriteString("))")
	} else {
		sb.WriteString(core.String())
	}
	if r.Optional {
		sb.WriteByte('?')
	}
}

// Render serializes a node sequence back to pattern text.
func Render(nodes []Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		n.render(&sb)
	}
	return sb.String()
}

// Parse reads pattern text of the emitted dialect back into a node sequence.
// Parenthesized groups whose content holds neither nested parentheses nor an
// optionality marker become Group nodes; everything else parses structurally
// into Paren and Text nodes, so non-primitive groups round-trip untouched.
func Parse(pattern string) ([]Node, error) {
	var nodes []Node
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			nodes = append(nodes, Text(lit.String()))
			lit.Reset()
		}
	}

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '(':
			end, err := matchParen(pattern, i)
			if err != nil {
				return nil, err
			}
			content := pattern[i+1 : end]
			optional := end+1 < len(pattern) && pattern[end+1] == '?'
			flush()
			if !strings.ContainsAny(content, "(?") {
				nodes = append(nodes, &Group{
					Alts:     strings.Split(content, "|"),
					Optional: optional,
				})
			} else {
				inner, err := Parse(content)
				if err != nil {
					return nil, err
				}
				nodes = append(nodes, &Paren{Seq: inner, Optional: optional})
			}
			i = end
			if optional {
				i++
			}
		case ')':
			return nil, fmt.Errorf("unbalanced ) at offset %d in %q", i, pattern)
		default:
			lit.WriteByte(c)
		}
	}
	flush()
	return nodes, nil
}

// matchParen returns the index of the ) matching the ( at open.
func matchParen(pattern string, open int) (int, error) {
	depth := 0
	for i := open; i < len(pattern); i++ {
		switch pattern[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("unbalanced ( at offset %d in %q", open, pattern)
}
