// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"rqpcr/internal/cliutil"
	"rqpcr/internal/version"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputCSV  = "csv"
)

// Options holds all CLI flags and arguments for the analysis tool.
type Options struct {
	// Input
	Input  string // experiment file, or "-" for stdin
	Format string // "", "json", "yaml"; "" = by extension

	// Output
	Output string
	Sort   bool // order result genes by name
	Header bool // true unless --no-header

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: relative qPCR quantification and significance analysis

Reads an experiment document (genes, groups, samples with Ct values),
computes efficiency-corrected normalized expression against the control
group, and annotates groups with Welch p-values (2 groups) or one-way
ANOVA plus compact letter display (3+ groups).

Version: %s

Usage: %s [flags] EXPERIMENT_FILE
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help, noHeader bool

	fs.StringVar(&opt.Format, "format", "", "input format: json | yaml (default: by file extension)")
	fs.StringVar(&opt.Output, "output", OutputText, "output format: text | json | csv [text]")
	fs.BoolVar(&opt.Sort, "sort", false, "sort result genes by name for determinism [false]")
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text/CSV [false]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Header = !noHeader

	pos, err := cliutil.ExpandPositionals(posArgs)
	if err != nil {
		return opt, err
	}
	switch len(pos) {
	case 0:
		return opt, errors.New("an experiment file is required (or '-' for stdin)")
	case 1:
		opt.Input = pos[0]
	default:
		return opt, fmt.Errorf("exactly one experiment file expected, got %d", len(pos))
	}

	if opt.Format != "" && opt.Format != "json" && opt.Format != "yaml" {
		return opt, fmt.Errorf("invalid --format %q", opt.Format)
	}
	if opt.Input == "-" && opt.Format == "" {
		return opt, errors.New("--format is required when reading stdin")
	}
	if opt.Output != OutputText && opt.Output != OutputJSON && opt.Output != OutputCSV {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	return opt, nil
}
