package main

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/projectdiscovery/gologger"

	"github.com/projectdiscovery/regulator"
	"github.com/projectdiscovery/regulator/internal/runner"
)

func main() {
	cliOpts := runner.ParseFlags()

	target := cliOpts.Target
	if target == "" {
		derived, err := regulator.DeriveTarget(cliOpts.Domains)
		if err != nil {
			gologger.Fatal().Msgf("failed to derive target domain: %v", err)
		}
		target = derived
	}
	gologger.Info().Msgf("Target domain: %s", target)

	hosts, err := regulator.LoadHosts(strings.NewReader(strings.Join(cliOpts.Domains, "\n")), target)
	if err != nil {
		gologger.Fatal().Msgf("failed to load hosts: %v", err)
	}

	opts := &regulator.Options{
		Target:    target,
		Hosts:     hosts,
		Threshold: cliOpts.Threshold,
		MaxRatio:  float64(cliOpts.MaxRatio),
		MaxLength: cliOpts.MaxLength,
		DistLow:   cliOpts.DistLow,
		DistHigh:  cliOpts.DistHigh,
		Workers:   cliOpts.Workers,
		Limit:     cliOpts.Limit,
	}

	if cliOpts.EngineConfig != "" {
		config, err := regulator.NewConfig(cliOpts.EngineConfig)
		if err != nil {
			gologger.Fatal().Msgf("failed to read %v file got: %v", cliOpts.EngineConfig, err)
		}
		config.MergeInto(opts)
	}

	r, err := regulator.New(opts)
	if err != nil {
		gologger.Fatal().Msgf("failed to prepare induction run got %v", err)
	}

	if _, err := r.Discover(context.TODO()); err != nil {
		gologger.Fatal().Msgf("pattern discovery failed: %v", err)
	}

	saveRules(r, target, cliOpts.RulesTemplate)

	if cliOpts.Metadata != "" {
		saveMetadata(r, cliOpts.Metadata)
	}

	if cliOpts.Estimate {
		gologger.Info().Msgf("Estimated candidates (including duplicates): %v", r.EstimateCount())
		return
	}

	output := getOutputWriter(cliOpts.Output)
	defer closeOutput(output, cliOpts.Output)

	if err := r.ExecuteWithWriter(context.TODO(), output); err != nil {
		gologger.Error().Msgf("failed to write output to file got %v", err)
	}
}

// saveRules persists the accepted patterns next to the wordlist so a later
// run can re-expand them without re-learning.
func saveRules(r *regulator.Regulator, target, template string) {
	if template == "" {
		template = regulator.DefaultRulesTemplate
	}
	path := regulator.Replace(template, map[string]interface{}{"target": target})
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		gologger.Error().Msgf("failed to open rules file %v got %v", path, err)
		return
	}
	defer f.Close()
	if err := r.WriteRules(f); err != nil {
		gologger.Error().Msgf("failed to save rules: %v", err)
		return
	}
	gologger.Info().Msgf("Saved %d rules to %s", len(r.Rules()), path)
}

func saveMetadata(r *regulator.Regulator, path string) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		gologger.Error().Msgf("failed to open metadata file %v got %v", path, err)
		return
	}
	defer f.Close()
	if err := r.WriteMetadata(f); err != nil {
		gologger.Error().Msgf("failed to save metadata: %v", err)
	}
}

// getOutputWriter returns the appropriate output writer
func getOutputWriter(outputPath string) io.Writer {
	if outputPath != "" {
		fs, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			gologger.Fatal().Msgf("failed to open output file %v got %v", outputPath, err)
		}
		return fs
	}
	return os.Stdout
}

// closeOutput closes the output writer if it's a file
func closeOutput(output io.Writer, outputPath string) {
	if outputPath != "" {
		if closer, ok := output.(io.Closer); ok {
			closer.Close()
		}
	}
}
