package runner

import (
	"io"
	"os"
	"strings"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	fileutil "github.com/projectdiscovery/utils/file"
	updateutils "github.com/projectdiscovery/utils/update"
)

type Options struct {
	Target             string              // Target registrable domain
	Domains            goflags.StringSlice // Observed hostnames (stdin, comma-separated, file)
	Output             string
	RulesTemplate      string
	Metadata           string
	Config             string
	EngineConfig       string
	Estimate           bool
	DisableUpdateCheck bool
	Verbose            bool
	Silent             bool
	Threshold          int
	MaxRatio           int
	MaxLength          int
	DistLow            int
	DistHigh           int
	Workers            int
	Limit              int
}

func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Subdomain wordlist generator that learns naming patterns from observed DNS hostnames.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Target, "target", "t", "", "target registrable domain (derived from input when empty)"),
		flagSet.StringSliceVarP(&opts.Domains, "list", "l", nil, "observed hostnames to learn from (stdin, comma-separated, file)", goflags.FileCommaSeparatedStringSliceOptions),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.BoolVarP(&opts.Estimate, "estimate", "es", false, "estimate candidate count without generating hostnames"),
		flagSet.StringVarP(&opts.Output, "output", "o", "output", "output file to write generated hostname list"),
		flagSet.StringVarP(&opts.RulesTemplate, "rules", "r", "", "rules file path template (default '{{target}}.rules')"),
		flagSet.StringVarP(&opts.Metadata, "metadata", "md", "", "file to write per-rule provenance metadata (yaml)"),
		flagSet.IntVar(&opts.Limit, "limit", 0, "limit the number of generated hostnames (default 0)"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
		flagSet.CallbackVar(printVersion, "version", "display regulator version"),
	)

	flagSet.CreateGroup("search", "Search",
		flagSet.IntVarP(&opts.Threshold, "threshold", "th", 0, "cardinality below which a rule is always kept (default 500)"),
		flagSet.IntVarP(&opts.MaxRatio, "max-ratio", "mr", 0, "max cardinality to evidence ratio for large rules (default 25)"),
		flagSet.IntVarP(&opts.MaxLength, "max-length", "ml", 0, "skip rules longer than this during the global sweep (default 1000)"),
		flagSet.IntVarP(&opts.DistLow, "dist-low", "dl", 0, "edit distance sweep lower bound, inclusive (default 2)"),
		flagSet.IntVarP(&opts.DistHigh, "dist-high", "dh", 0, "edit distance sweep upper bound, exclusive (default 10)"),
		flagSet.IntVarP(&opts.Workers, "workers", "w", 0, "concurrent search workers (default number of CPUs)"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&opts.Config, "config", "", `regulator cli config file (default '$HOME/.config/regulator/config.yaml')`),
		flagSet.StringVarP(&opts.EngineConfig, "engine-config", "ec", "", "search parameter config file (yaml)"),
	)

	flagSet.CreateGroup("update", "Update",
		flagSet.CallbackVarP(GetUpdateCallback(), "update", "up", "update regulator to latest version"),
		flagSet.BoolVarP(&opts.DisableUpdateCheck, "disable-update-check", "duc", false, "disable automatic regulator update check"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("Could not read flags: %s\n", err)
	}

	if opts.Config != "" {
		if err := flagSet.MergeConfigFile(opts.Config); err != nil {
			gologger.Error().Msgf("failed to read config file got %v", err)
		}
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	showBanner()

	if !opts.DisableUpdateCheck {
		latestVersion, err := updateutils.GetVersionCheckCallback("regulator")()
		if err != nil {
			if opts.Verbose {
				gologger.Error().Msgf("regulator version check failed: %v", err.Error())
			}
		} else {
			gologger.Info().Msgf("Current regulator version %v %v", version, updateutils.GetVersionDescription(version, latestVersion))
		}
	}

	// read from stdin
	if fileutil.HasStdin() {
		bin, err := io.ReadAll(os.Stdin)
		if err != nil {
			gologger.Error().Msgf("failed to read input from stdin got %v", err)
		}
		opts.Domains = strings.Fields(string(bin))
	}

	if len(opts.Domains) == 0 {
		gologger.Fatal().Msgf("regulator: no input found")
	}

	return opts
}

func printVersion() {
	gologger.Info().Msgf("Current version: %s", version)
	os.Exit(0)
}
