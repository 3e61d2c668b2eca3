// internal/curvecli/options.go
package curvecli

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"strconv"
	"strings"

	"rqpcr/internal/version"
)

// Options holds all CLI flags for the standard-curve tool.
type Options struct {
	Cts      []float64 // NaN marks a skipped reading
	Dilution int
	Output   string // text | json

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: qPCR standard-curve efficiency calibration

Fits Ct readings from a serial dilution series (starting at relative
concentration 1) against log10 concentration and reports slope, R²,
amplification efficiency and a quality rating.

Version: %s

Usage: %s --ct 30.1,26.8,23.4 [flags]
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool
	var cts ctList

	fs.Var(&cts, "ct", "comma-separated Ct readings in dilution order; '-' or 'nan' skips a step (repeatable) [*]")
	fs.IntVar(&opt.Dilution, "dilution", 10, "serial dilution factor D (≥ 2) [10]")
	fs.StringVar(&opt.Output, "output", "text", "output format: text | json [text]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Cts = cts

	if len(opt.Cts) == 0 {
		return opt, errors.New("--ct is required")
	}
	if opt.Dilution < 2 {
		return opt, errors.New("--dilution must be ≥ 2")
	}
	if opt.Output != "text" && opt.Output != "json" {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	return opt, nil
}

// ctList accumulates comma-separated Ct readings across repeated flags.
type ctList []float64

func (c *ctList) String() string {
	parts := make([]string, len(*c))
	for i, v := range *c {
		if math.IsNaN(v) {
			parts[i] = "-"
			continue
		}
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (c *ctList) Set(v string) error {
	for _, tok := range strings.Split(v, ",") {
		tok = strings.TrimSpace(tok)
		switch {
		case tok == "":
			continue
		case tok == "-" || strings.EqualFold(tok, "nan"):
			*c = append(*c, math.NaN())
		default:
			f, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return fmt.Errorf("bad Ct value %q: %v", tok, err)
			}
			*c = append(*c, f)
		}
	}
	return nil
}
