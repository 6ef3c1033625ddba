// Package regulator synthesizes compact pattern rules from a corpus of
// observed DNS hostnames and expands them into plausible unobserved
// candidates sharing the same naming conventions.
package regulator

import (
	"context"
	"io"
	"sort"

	"github.com/projectdiscovery/gologger"
	errorutil "github.com/projectdiscovery/utils/errors"
	"gopkg.in/yaml.v3"

	"github.com/projectdiscovery/regulator/internal/dank"
	"github.com/projectdiscovery/regulator/internal/induce"
)

// Regulator runs pattern induction over one observed host corpus.
type Regulator struct {
	opts  *Options
	hosts []string
	rules *induce.RuleSet
}

// New validates opts and prepares a run. Options.Hosts is filtered into the
// working set (malformed entries are logged and dropped); at least one
// usable host is required.
func New(opts *Options) (*Regulator, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	hosts := make([]string, 0, len(opts.Hosts))
	seen := make(map[string]struct{}, len(opts.Hosts))
	for _, host := range opts.Hosts {
		if host == "" || host == opts.Target {
			continue
		}
		if _, ok := seen[host]; ok {
			continue
		}
		seen[host] = struct{}{}
		if _, err := induce.Tokenize(host, opts.Target); err != nil {
			gologger.Warning().Msgf("Rejecting malformed input: %s", host)
			continue
		}
		hosts = append(hosts, host)
	}
	if len(hosts) == 0 {
		return nil, errorutil.NewWithTag("regulator", "no valid hosts for target %v", opts.Target)
	}
	// the search passes assume a sorted corpus
	sort.Strings(hosts)
	return &Regulator{opts: opts, hosts: hosts}, nil
}

// Hosts returns the validated working set.
func (r *Regulator) Hosts() []string {
	return r.hosts
}

// Discover runs the three search passes and returns the accepted patterns
// in sorted order. The rule set is retained for later writes.
func (r *Regulator) Discover(ctx context.Context) ([]string, error) {
	gologger.Info().Msgf("Starting induction: threshold=%d max_ratio=%.1f", r.opts.Threshold, r.opts.MaxRatio)
	gologger.Info().Msgf("Loaded %d observations", len(r.hosts))

	orch := induce.NewOrchestrator(induce.Config{
		Target:    r.opts.Target,
		Threshold: r.opts.Threshold,
		MaxRatio:  r.opts.MaxRatio,
		MaxLength: r.opts.MaxLength,
		DistLow:   r.opts.DistLow,
		DistHigh:  r.opts.DistHigh,
		Workers:   r.opts.Workers,
	}, r.hosts)

	rules, err := orch.Run(ctx)
	r.rules = rules
	if err != nil {
		return rules.Patterns(), err
	}
	gologger.Info().Msgf("Discovered %d unique patterns", rules.Len())
	return rules.Patterns(), nil
}

// Rules returns the accepted patterns in sorted order.
func (r *Regulator) Rules() []string {
	if r.rules == nil {
		return nil
	}
	return r.rules.Patterns()
}

// WriteRules writes one accepted pattern per line.
func (r *Regulator) WriteRules(w io.Writer) error {
	for _, rule := range r.Rules() {
		if _, err := io.WriteString(w, rule+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteMetadata writes the per-rule provenance records as YAML.
func (r *Regulator) WriteMetadata(w io.Writer) error {
	if r.rules == nil {
		return nil
	}
	bin, err := yaml.Marshal(r.rules.Metadata())
	if err != nil {
		return err
	}
	_, err = w.Write(bin)
	return err
}

// EstimateCount returns the summed cardinality of all accepted rules, an
// upper bound on the generated candidate count before deduplication.
func (r *Regulator) EstimateCount() int64 {
	var total int64
	for _, rule := range r.Rules() {
		enc, err := dank.NewEncoder(rule, induce.MaxWordLength)
		if err != nil {
			continue
		}
		total += enc.NumWords(1, induce.MaxWordLength)
	}
	return total
}

// ExecuteWithWriter expands every accepted rule through the enumeration
// oracle and writes the deduplicated, sorted, dot-normalized candidate list
// to w.
func (r *Regulator) ExecuteWithWriter(ctx context.Context, w io.Writer) error {
	if w == nil {
		return errorutil.NewWithTag("regulator", "writer destination cannot be nil")
	}
	rules := r.Rules()
	if len(rules) == 0 {
		return errorutil.NewWithTag("regulator", "no rules to expand, run Discover first")
	}

	// estimate output bytes to pick the dedupe backend; candidates are
	// hostname-sized
	estimated := int(r.EstimateCount()) * 40
	dw := NewSortedDedupeWriter(w, estimated, r.opts.Limit)

	for _, rule := range rules {
		if err := ctx.Err(); err != nil {
			return err
		}
		enc, err := dank.NewEncoder(rule, induce.MaxWordLength)
		if err != nil {
			gologger.Warning().Msgf("skipping unexpandable rule %q: %s", rule, err)
			continue
		}
		for _, candidate := range enc.Words() {
			dw.WriteHost(candidate)
		}
	}

	if err := dw.Close(); err != nil {
		return err
	}
	gologger.Info().Msgf("Generated %d candidate hostnames", dw.Count())
	return nil
}
