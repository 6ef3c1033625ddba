// Package dank compiles the restricted pattern dialect emitted by the
// induction engine into a minimal DFA over the DNS alphabet and answers
// cardinality and enumeration queries against it. Minimization follows
// Brzozowski: determinize, reverse, determinize, reverse, determinize.
package dank

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"strings"
)

// Alphabet is the character set candidate hostnames are generated over.
const Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789._-"

type nfaState struct {
	trans map[byte]map[int]struct{} // 0 is the epsilon edge
	final bool
}

type dfaState struct {
	trans map[byte]int
	final bool
}

// Encoder is a compiled pattern. It is immutable after construction and
// safe for concurrent queries.
type Encoder struct {
	pattern string
	maxLen  int

	nfa   []*nfaState
	start map[int]struct{}
	dfa   []*dfaState
}

// NewEncoder compiles pattern into a minimal DFA. maxLen bounds the length
// of every counted or enumerated word.
func NewEncoder(pattern string, maxLen int) (*Encoder, error) {
	e := &Encoder{pattern: pattern, maxLen: maxLen}
	if err := e.buildNFA(expandRanges(pattern)); err != nil {
		return nil, fmt.Errorf("compile %q: %w", pattern, err)
	}
	e.determinize()
	e.reverse()
	e.determinize()
	e.reverse()
	e.determinize()
	return e, nil
}

// Pattern returns the source pattern the encoder was compiled from.
func (e *Encoder) Pattern() string {
	return e.pattern
}

// NumStates returns the number of DFA states after minimization.
func (e *Encoder) NumStates() int {
	return len(e.dfa)
}

// NumWords counts the distinct words of length minLen through maxLen the
// pattern matches. The count saturates at math.MaxInt64.
func (e *Encoder) NumWords(minLen, maxLen int) int64 {
	if maxLen > e.maxLen {
		maxLen = e.maxLen
	}
	prev := map[int]*big.Int{0: big.NewInt(1)}
	total := new(big.Int)
	if minLen <= 0 && e.dfa[0].final {
		total.SetInt64(1)
	}
	for l := 1; l <= maxLen; l++ {
		next := make(map[int]*big.Int)
		for state, ways := range prev {
			for _, to := range e.dfa[state].trans {
				if n, ok := next[to]; ok {
					n.Add(n, ways)
				} else {
					next[to] = new(big.Int).Set(ways)
				}
			}
		}
		if l >= minLen {
			for state, ways := range next {
				if e.dfa[state].final {
					total.Add(total, ways)
				}
			}
		}
		prev = next
	}
	if !total.IsInt64() {
		return math.MaxInt64
	}
	return total.Int64()
}

// Words enumerates every matched word of length 1 through the encoder's
// bound, in lexicographic byte order. The emitted dialect has no unbounded
// repetition, so enumeration always terminates.
func (e *Encoder) Words() []string {
	var out []string
	var prefix []byte
	var walk func(state int)
	walk = func(state int) {
		if len(prefix) > 0 && e.dfa[state].final {
			out = append(out, string(prefix))
		}
		if len(prefix) == e.maxLen {
			return
		}
		st := e.dfa[state]
		chars := make([]byte, 0, len(st.trans))
		for c := range st.trans {
			chars = append(chars, c)
		}
		sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })
		for _, c := range chars {
			prefix = append(prefix, c)
			walk(st.trans[c])
			prefix = prefix[:len(prefix)-1]
		}
	}
	walk(0)
	return out
}

// expandRanges rewrites every bracketed range [x-y] into an explicit
// alternation (x|...|y).
func expandRanges(pattern string) string {
	var sb strings.Builder
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '[' && i+4 < len(pattern) && pattern[i+2] == '-' && pattern[i+4] == ']' {
			lo, hi := pattern[i+1], pattern[i+3]
			sb.WriteByte('(')
			for c := lo; c <= hi; c++ {
				if c > lo {
					sb.WriteByte('|')
				}
				sb.WriteByte(c)
			}
			sb.WriteByte(')')
			i += 4
			continue
		}
		sb.WriteByte(pattern[i])
	}
	return sb.String()
}

func (e *Encoder) buildNFA(expr string) error {
	e.nfa = []*nfaState{
		{trans: make(map[byte]map[int]struct{})},
		{trans: make(map[byte]map[int]struct{}), final: true},
	}
	if err := e.addExpr(0, 1, expr); err != nil {
		return err
	}
	e.start = map[int]struct{}{0: {}}
	e.closeEpsilon(e.start)
	return nil
}

// addExpr wires expr between NFA states s and t, Thompson style.
func (e *Encoder) addExpr(s, t int, expr string) error {
	if expr == "" {
		e.addEdge(s, 0, t)
		return nil
	}
	if len(expr) == 1 {
		e.addEdge(s, expr[0], t)
		return nil
	}

	// rightmost top-level alternation and start of the last top-level atom
	alt, atom := -1, -1
	depth := 0
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '(':
			if depth == 0 {
				atom = i
			}
			depth++
		case ')':
			depth--
			if depth < 0 {
				return fmt.Errorf("unbalanced ) near %q", expr)
			}
		case '|':
			if depth == 0 {
				alt = i
			}
		case '?', '*', '+':
			// postfix operators extend the preceding atom
		default:
			if depth == 0 {
				atom = i
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("unbalanced ( near %q", expr)
	}

	if alt >= 0 {
		for _, branch := range []string{expr[:alt], expr[alt+1:]} {
			i0, i1 := e.newState(), e.newState()
			e.addEdge(s, 0, i0)
			e.addEdge(i1, 0, t)
			if err := e.addExpr(i0, i1, branch); err != nil {
				return err
			}
		}
		return nil
	}

	if atom > 0 {
		i0, i1 := e.newState(), e.newState()
		e.addEdge(i0, 0, i1)
		if err := e.addExpr(s, i0, expr[:atom]); err != nil {
			return err
		}
		return e.addExpr(i1, t, expr[atom:])
	}

	switch expr[len(expr)-1] {
	case '?':
		i0, i1 := e.newState(), e.newState()
		e.addEdge(s, 0, i0)
		e.addEdge(s, 0, t)
		e.addEdge(i1, 0, t)
		return e.addExpr(i0, i1, expr[:len(expr)-1])
	case '*':
		i0, i1 := e.newState(), e.newState()
		e.addEdge(s, 0, i0)
		e.addEdge(s, 0, t)
		e.addEdge(i1, 0, i0)
		e.addEdge(i1, 0, t)
		return e.addExpr(i0, i1, expr[:len(expr)-1])
	case '+':
		i0, i1 := e.newState(), e.newState()
		e.addEdge(i0, 0, i1)
		if err := e.addExpr(s, i0, expr[:len(expr)-1]); err != nil {
			return err
		}
		j0, j1 := e.newState(), e.newState()
		e.addEdge(i1, 0, j0)
		e.addEdge(i1, 0, t)
		e.addEdge(j1, 0, j0)
		e.addEdge(j1, 0, t)
		return e.addExpr(j0, j1, expr[:len(expr)-1])
	}

	if expr[0] == '(' && expr[len(expr)-1] == ')' {
		return e.addExpr(s, t, expr[1:len(expr)-1])
	}
	return fmt.Errorf("unsupported syntax near %q", expr)
}

func (e *Encoder) newState() int {
	e.nfa = append(e.nfa, &nfaState{trans: make(map[byte]map[int]struct{})})
	return len(e.nfa) - 1
}

func (e *Encoder) addEdge(from int, c byte, to int) {
	if e.nfa[from].trans[c] == nil {
		e.nfa[from].trans[c] = make(map[int]struct{})
	}
	e.nfa[from].trans[c][to] = struct{}{}
}

// closeEpsilon extends states with everything reachable over epsilon edges.
func (e *Encoder) closeEpsilon(states map[int]struct{}) {
	queue := make([]int, 0, len(states))
	for s := range states {
		queue = append(queue, s)
	}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for to := range e.nfa[s].trans[0] {
			if _, ok := states[to]; !ok {
				states[to] = struct{}{}
				queue = append(queue, to)
			}
		}
	}
}

// determinize runs subset construction over the current NFA.
func (e *Encoder) determinize() {
	ids := map[string]int{setKey(e.start): 0}
	e.dfa = []*dfaState{{
		trans: make(map[byte]int),
		final: e.anyFinal(e.start),
	}}
	subsets := []map[int]struct{}{e.start}

	for i := 0; i < len(e.dfa); i++ {
		moves := make(map[byte]map[int]struct{})
		for s := range subsets[i] {
			for c, targets := range e.nfa[s].trans {
				if c == 0 {
					continue
				}
				if moves[c] == nil {
					moves[c] = make(map[int]struct{})
				}
				for to := range targets {
					moves[c][to] = struct{}{}
				}
			}
		}
		for c, subset := range moves {
			e.closeEpsilon(subset)
			key := setKey(subset)
			id, ok := ids[key]
			if !ok {
				id = len(e.dfa)
				ids[key] = id
				e.dfa = append(e.dfa, &dfaState{
					trans: make(map[byte]int),
					final: e.anyFinal(subset),
				})
				subsets = append(subsets, subset)
			}
			e.dfa[i].trans[c] = id
		}
	}
}

// reverse rebuilds the NFA as the reversal of the current DFA: edges flip,
// old finals become start states, the old start becomes the only final.
func (e *Encoder) reverse() {
	nfa := make([]*nfaState, len(e.dfa))
	for i := range nfa {
		nfa[i] = &nfaState{trans: make(map[byte]map[int]struct{})}
	}
	nfa[0].final = true

	start := make(map[int]struct{})
	for id, st := range e.dfa {
		if st.final {
			start[id] = struct{}{}
		}
		for c, to := range st.trans {
			if nfa[to].trans[c] == nil {
				nfa[to].trans[c] = make(map[int]struct{})
			}
			nfa[to].trans[c][id] = struct{}{}
		}
	}

	e.nfa = nfa
	e.start = start
	e.closeEpsilon(e.start)
}

func (e *Encoder) anyFinal(states map[int]struct{}) bool {
	for s := range states {
		if e.nfa[s].final {
			return true
		}
	}
	return false
}

func setKey(states map[int]struct{}) string {
	ids := make([]int, 0, len(states))
	for s := range states {
		ids = append(ids, s)
	}
	sort.Ints(ids)
	var sb strings.Builder
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d", id)
	}
	return sb.String()
}
