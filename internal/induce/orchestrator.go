package induce

import (
	"context"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/projectdiscovery/gologger"
)

// Search pass identifiers recorded in rule metadata.
const (
	PassGlobal = "global"
	PassNgram  = "ngram"
	PassPrefix = "prefix"
)

// Config holds the search parameters of the three sweep passes.
type Config struct {
	Target    string
	Threshold int
	MaxRatio  float64
	MaxLength int // global sweep only; 0 disables the cap
	DistLow   int
	DistHigh  int // exclusive
	Workers   int
}

// RuleMeta records the provenance of one accepted pattern.
type RuleMeta struct {
	Pass        string  `yaml:"pass"`
	Delta       int     `yaml:"delta,omitempty"`
	Ngram       string  `yaml:"ngram,omitempty"`
	Prefix      string  `yaml:"prefix,omitempty"`
	ClosureSize int     `yaml:"closure_size"`
	Cardinality int64   `yaml:"cardinality"`
	Ratio       float64 `yaml:"ratio"`
}

// RuleSet accumulates accepted patterns across all passes. It only grows
// during a run and deduplicates by exact pattern text. Insertion is the one
// piece of shared mutable state between search workers, so it is guarded.
type RuleSet struct {
	mu   sync.Mutex
	meta map[string]*RuleMeta
}

// NewRuleSet returns an empty rule set.
func NewRuleSet() *RuleSet {
	return &RuleSet{meta: make(map[string]*RuleMeta)}
}

// Add inserts pattern unless an identical pattern was already accepted.
// It reports whether the pattern was new.
func (rs *RuleSet) Add(pattern string, meta *RuleMeta) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if _, ok := rs.meta[pattern]; ok {
		return false
	}
	rs.meta[pattern] = meta
	return true
}

// Has reports whether pattern was already accepted.
func (rs *RuleSet) Has(pattern string) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	_, ok := rs.meta[pattern]
	return ok
}

// Len returns the number of accepted patterns.
func (rs *RuleSet) Len() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.meta)
}

// Patterns returns the accepted patterns in sorted order.
func (rs *RuleSet) Patterns() []string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	patterns := make([]string, 0, len(rs.meta))
	for p := range rs.meta {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)
	return patterns
}

// Metadata returns a copy of the per-pattern provenance records.
func (rs *RuleSet) Metadata() map[string]*RuleMeta {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	out := make(map[string]*RuleMeta, len(rs.meta))
	for p, m := range rs.meta {
		out[p] = m
	}
	return out
}

// Orchestrator drives the three search strategies over one host corpus:
// a global edit-distance sweep, an n-gram/prefix-anchored sweep, and a
// prefix-restricted edit-distance sweep.
type Orchestrator struct {
	cfg   Config
	hosts []string
	table *Table
	rules *RuleSet
}

// NewOrchestrator prepares a search over hosts, which must already be
// deduplicated, sorted, and free of malformed entries.
func NewOrchestrator(cfg Config, hosts []string) *Orchestrator {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Orchestrator{cfg: cfg, hosts: hosts, rules: NewRuleSet()}
}

// Run executes all three passes and returns the accumulated rule set. The
// distance table is fully built before the first closure is computed; ctx
// cancels between sweep units.
func (o *Orchestrator) Run(ctx context.Context) (*RuleSet, error) {
	gologger.Info().Msgf("Building distance table over %d observations", len(o.hosts))
	o.table = BuildTable(o.hosts, o.cfg.Workers)
	gologger.Info().Msgf("Distance table complete")

	if err := o.globalSweep(ctx); err != nil {
		return o.rules, err
	}
	if err := o.ngramSweep(ctx); err != nil {
		return o.rules, err
	}
	return o.rules, nil
}

// globalSweep is the first strategy: edit-distance closures over the whole
// corpus for every threshold in [DistLow, DistHigh).
func (o *Orchestrator) globalSweep(ctx context.Context) error {
	for delta := o.cfg.DistLow; delta < o.cfg.DistHigh; delta++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		gologger.Verbose().Msgf("Global sweep delta=%d", delta)
		closures := Closures(o.hosts, delta, o.table)
		o.forEachClosure(closures, func(closure []string) {
			if len(closure) < 2 {
				return
			}
			pattern, err := o.synthesize(closure)
			if err != nil {
				gologger.Warning().Msgf("synthesis failed for closure of %d hosts: %s", len(closure), err)
				return
			}
			// over-length rules are skipped here and only here; they tend
			// to be enormous at scale and the prefix passes retry the same
			// hosts in smaller groups
			if o.cfg.MaxLength > 0 && len(pattern) > o.cfg.MaxLength {
				return
			}
			o.test(pattern, len(closure), &RuleMeta{Pass: PassGlobal, Delta: delta})
		})
	}
	return nil
}

// ngramSweep is the second strategy, with the third nested inside it: every
// 1- and 2-character prefix over the DNS alphabet anchors a host group that
// gets a direct synthesis attempt, then per-first-token refinements, then a
// prefix-restricted edit-distance sweep.
func (o *Orchestrator) ngramSweep(ctx context.Context) error {
	index := NewIndex()
	for _, host := range o.hosts {
		index.Insert(host)
	}

	for _, ngram := range ngrams() {
		if err := ctx.Err(); err != nil {
			return err
		}
		keys := index.KeysWithPrefix(ngram)
		if len(keys) == 0 {
			continue
		}

		// first chance: the n-gram itself anchors the group
		if pattern, err := o.synthesize(keys); err == nil && !o.rules.Has(pattern) {
			o.test(pattern, len(keys), &RuleMeta{Pass: PassNgram, Ngram: ngram})
		}

		// second chance: refine by the first lexical token of each member.
		// This walk is strictly ordered: a prefix extending the immediately
		// preceding accepted prefix is redundant, and only the shortest of
		// such a chain is kept.
		last := ""
		for _, prefix := range o.firstTokens(keys) {
			gologger.Verbose().Msgf("Prefix=%s", prefix)
			subset := index.KeysWithPrefix(prefix)
			if len(subset) == 0 {
				continue
			}

			pattern, err := o.synthesize(subset)
			if err == nil && !o.rules.Has(pattern) {
				if ok, count := Evaluate(pattern, len(subset), o.cfg.Threshold, o.cfg.MaxRatio); ok {
					if last != "" && strings.HasPrefix(prefix, last) {
						gologger.Warning().Msgf("Rejecting redundant prefix: %s", prefix)
						continue
					}
					last = prefix
					o.accept(pattern, len(subset), count, &RuleMeta{Pass: PassNgram, Ngram: ngram, Prefix: prefix})
				}
			}

			// third chance: deconstruct the prefix group by edit distance;
			// closures that still fail here have no further fallback
			if len(prefix) > 1 {
				o.prefixSweep(ctx, ngram, prefix, subset)
			}
		}
	}
	return nil
}

// prefixSweep repeats the edit-distance sweep restricted to one prefix
// group. Unlike the global sweep it keeps singleton closures and applies no
// length cap, and it logs closures whose pattern can neither be found in
// the rule set nor accepted.
func (o *Orchestrator) prefixSweep(ctx context.Context, ngram, prefix string, subset []string) {
	for delta := o.cfg.DistLow; delta < o.cfg.DistHigh; delta++ {
		if ctx.Err() != nil {
			return
		}
		closures := Closures(subset, delta, o.table)
		o.forEachClosure(closures, func(closure []string) {
			pattern, err := o.synthesize(closure)
			if err != nil {
				gologger.Warning().Msgf("synthesis failed for closure of %d hosts: %s", len(closure), err)
				return
			}
			if o.rules.Has(pattern) {
				return
			}
			meta := &RuleMeta{Pass: PassPrefix, Delta: delta, Ngram: ngram, Prefix: prefix}
			if !o.test(pattern, len(closure), meta) {
				gologger.Error().Msgf("Rule cannot be processed: %s", pattern)
			}
		})
	}
}

// forEachClosure fans closures out over the configured worker count. Rule
// set insertion is synchronized, everything else the workers touch is
// read-only.
func (o *Orchestrator) forEachClosure(closures [][]string, fn func([]string)) {
	workers := o.cfg.Workers
	if workers > len(closures) {
		workers = len(closures)
	}
	if workers <= 1 {
		for _, closure := range closures {
			fn(closure)
		}
		return
	}
	jobs := make(chan []string, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for closure := range jobs {
				fn(closure)
			}
		}()
	}
	for _, closure := range closures {
		jobs <- closure
	}
	close(jobs)
	wg.Wait()
}

// synthesize builds and compresses the pattern generalizing members.
func (o *Orchestrator) synthesize(members []string) (string, error) {
	nodes, err := Synthesize(o.cfg.Target, members)
	if err != nil {
		return "", err
	}
	return Render(CompressRanges(nodes)), nil
}

// test runs the acceptance filter and records the pattern on success,
// skipping patterns that are already present. It reports acceptance.
func (o *Orchestrator) test(pattern string, evidence int, meta *RuleMeta) bool {
	if o.rules.Has(pattern) {
		return true
	}
	ok, count := Evaluate(pattern, evidence, o.cfg.Threshold, o.cfg.MaxRatio)
	if !ok {
		return false
	}
	o.accept(pattern, evidence, count, meta)
	return true
}

func (o *Orchestrator) accept(pattern string, evidence int, count int64, meta *RuleMeta) {
	meta.ClosureSize = evidence
	meta.Cardinality = count
	if evidence > 0 {
		meta.Ratio = float64(count) / float64(evidence)
	}
	if o.rules.Add(pattern, meta) {
		gologger.Verbose().Msgf("Accepted rule: %s", pattern)
	}
}

// firstTokens returns the sorted, deduplicated first lexical tokens of
// keys. Tokens of hosts that fail to tokenize are skipped; loading already
// filtered malformed hosts out.
func (o *Orchestrator) firstTokens(keys []string) []string {
	seen := make(map[string]struct{})
	var tokens []string
	for _, key := range keys {
		th, err := Tokenize(key, o.cfg.Target)
		if err != nil {
			continue
		}
		tok := th.FirstToken()
		if tok == "" {
			continue
		}
		if _, ok := seen[tok]; !ok {
			seen[tok] = struct{}{}
			tokens = append(tokens, tok)
		}
	}
	sort.Strings(tokens)
	return tokens
}

// ngrams returns all 1- and 2-character strings over the DNS alphabet in
// sorted order.
func ngrams() []string {
	out := make([]string, 0, len(DNSAlphabet)*(len(DNSAlphabet)+1))
	for i := 0; i < len(DNSAlphabet); i++ {
		out = append(out, string(DNSAlphabet[i]))
		for j := 0; j < len(DNSAlphabet); j++ {
			out = append(out, string(DNSAlphabet[i])+string(DNSAlphabet[j]))
		}
	}
	sort.Strings(out)
	return out
}
