package induce

import (
	"fmt"
	"strings"
)

// Synthesize aligns the tokenized members of a closure position by position
// into one generalized pattern for the target domain, returned as a node
// sequence (render with Render, compress with CompressRanges first).
//
// Alignment is purely positional: token j of level i of one member lines up
// with token j of level i of every other member, regardless of content.
// Callers must only pass groups that are already structurally similar, which
// is why the orchestrator feeds edit-distance-bounded or prefix-bounded sets
// into this function.
func Synthesize(target string, members []string) ([]Node, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("cannot synthesize a pattern from zero members")
	}

	tokenized := make([]*TokenizedHost, 0, len(members))
	maxLevel := 0
	for _, member := range members {
		th, err := Tokenize(member, target)
		if err != nil {
			return nil, err
		}
		tokenized = append(tokenized, th)
		if n := len(th.Levels); n > maxLevel {
			maxLevel = n
		}
	}

	var out []Node
	for li := 0; li < maxLevel; li++ {
		seq, present, uniform := alignLevel(tokenized, li, len(members))
		if len(seq) == 0 {
			continue
		}
		if li == 0 {
			out = append(out, seq...)
			continue
		}
		// deeper levels carry their separator dot inside the wrapper; the
		// whole level is optional when some member lacks it or when level
		// content is not uniform across members
		wrapped := &Paren{
			Seq:      append([]Node{Text(".")}, seq...),
			Optional: present != len(members) || !uniform,
		}
		out = append(out, wrapped)
	}

	out = append(out, Text("."+target))
	return out, nil
}

// alignLevel builds the position-aligned alternation sequence for level li.
// It returns the node sequence, the number of members having the level, and
// whether the level content is identical across those members.
func alignLevel(tokenized []*TokenizedHost, li, memberCount int) ([]Node, int, bool) {
	maxPos := 0
	present := 0
	uniform := true
	first := true
	rendered := ""
	for _, th := range tokenized {
		if li >= len(th.Levels) {
			continue
		}
		present++
		level := th.Levels[li]
		if n := len(level); n > maxPos {
			maxPos = n
		}
		joined := strings.Join(level, "")
		if first {
			rendered = joined
			first = false
		} else if joined != rendered {
			uniform = false
		}
	}

	var seq []Node
	for pos := 0; pos < maxPos; pos++ {
		alts, count := altsAt(tokenized, li, pos)
		switch {
		case li == 0 && pos == 0:
			// leading token of the DNS name, always a bare alternation
			seq = append(seq, &Group{Alts: alts})
		case li > 0 && pos == 0 && len(alts) == 1:
			// single candidate at the start of a deeper level
			seq = append(seq, Text(alts[0]))
		default:
			// a position is optional when some member has no token there
			seq = append(seq, &Group{Alts: alts, Optional: count != memberCount})
		}
	}
	return seq, present, uniform
}

// altsAt collects the distinct tokens at (level, position) in first-seen
// order, plus how many members contribute a token there.
func altsAt(tokenized []*TokenizedHost, li, pos int) ([]string, int) {
	var alts []string
	seen := make(map[string]struct{})
	count := 0
	for _, th := range tokenized {
		if li >= len(th.Levels) || pos >= len(th.Levels[li]) {
			continue
		}
		count++
		tok := th.Levels[li][pos]
		if _, ok := seen[tok]; !ok {
			seen[tok] = struct{}{}
			alts = append(alts, tok)
		}
	}
	return alts, count
}
