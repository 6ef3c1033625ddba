package regulator

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults for the search parameters.
const (
	DefaultThreshold = 500
	DefaultMaxRatio  = 25.0
	DefaultMaxLength = 1000
	DefaultDistLow   = 2
	DefaultDistHigh  = 10
)

// DefaultRulesTemplate names the persisted rules file; {{target}} expands
// to the target domain.
const DefaultRulesTemplate = "{{target}}.rules"

// Options configures a pattern induction run.
type Options struct {
	// Target is the registrable domain all observed hosts belong to
	Target string
	// Hosts is the observed hostname corpus (will be validated, deduplicated
	// and sorted by New)
	Hosts []string
	// Threshold is the cardinality below which a rule is always accepted
	Threshold int
	// MaxRatio bounds cardinality/evidence for rules at or above Threshold
	MaxRatio float64
	// MaxLength skips over-length rules during the global sweep (0 = no cap)
	MaxLength int
	// DistLow/DistHigh bound the edit-distance sweep, half-open
	DistLow  int
	DistHigh int
	// Workers bounds search and distance-table parallelism (0 = NumCPU)
	Workers int
	// Limit caps the number of generated candidates (0 = unlimited)
	Limit int
}

func (opts *Options) validate() error {
	if opts.Target == "" {
		return fmt.Errorf("no target domain provided")
	}
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.MaxRatio <= 0 {
		opts.MaxRatio = DefaultMaxRatio
	}
	if opts.MaxLength < 0 {
		opts.MaxLength = DefaultMaxLength
	}
	if opts.DistLow <= 0 {
		opts.DistLow = DefaultDistLow
	}
	if opts.DistHigh <= 0 {
		opts.DistHigh = DefaultDistHigh
	}
	if opts.DistHigh < opts.DistLow {
		return fmt.Errorf("dist-high (%d) cannot be lower than dist-low (%d)", opts.DistHigh, opts.DistLow)
	}
	return nil
}

// Config is the YAML form of the search parameters.
type Config struct {
	Threshold int     `yaml:"threshold"`
	MaxRatio  float64 `yaml:"max_ratio"`
	MaxLength int     `yaml:"max_length"`
	DistLow   int     `yaml:"dist_low"`
	DistHigh  int     `yaml:"dist_high"`
	Workers   int     `yaml:"workers"`
}

// NewConfig reads config from file
func NewConfig(filePath string) (*Config, error) {
	bin, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err = yaml.Unmarshal(bin, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MergeInto copies every non-zero config value into opts.
func (c *Config) MergeInto(opts *Options) {
	if c.Threshold > 0 {
		opts.Threshold = c.Threshold
	}
	if c.MaxRatio > 0 {
		opts.MaxRatio = c.MaxRatio
	}
	if c.MaxLength > 0 {
		opts.MaxLength = c.MaxLength
	}
	if c.DistLow > 0 {
		opts.DistLow = c.DistLow
	}
	if c.DistHigh > 0 {
		opts.DistHigh = c.DistHigh
	}
	if c.Workers > 0 {
		opts.Workers = c.Workers
	}
}

// GenerateSample creates a sample yaml file with default values
func GenerateSample(filePath string) error {
	cfg := Config{
		Threshold: DefaultThreshold,
		MaxRatio:  DefaultMaxRatio,
		MaxLength: DefaultMaxLength,
		DistLow:   DefaultDistLow,
		DistHigh:  DefaultDistHigh,
	}
	bin, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, bin, 0644)
}
