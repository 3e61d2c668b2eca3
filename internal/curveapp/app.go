// internal/curveapp/app.go
package curveapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"rqpcr-core/curve"
	"rqpcr/internal/curvecli"
	"rqpcr/internal/output"
	"rqpcr/internal/version"
	"rqpcr/internal/writers"
	"rqpcr/pkg/api"
)

// RunContext parses argv, calibrates the standard curve and writes the
// fit. Exit codes: 0 ok, 2 usage/input error, 3 write error.
func RunContext(_ context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := curvecli.NewFlagSet("rqpcr-curve")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(outw)
		fs.Usage()
		return flushExit(outw, stderr, 0)
	}

	opts, err := curvecli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return flushExit(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "rqpcr-curve version %s\n", version.Version)
		return flushExit(outw, stderr, 0)
	}

	fit, err := curve.Calibrate(opts.Cts, opts.Dilution)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	v := api.CurveFitV1{
		Slope:             fit.Slope,
		Intercept:         fit.Intercept,
		R2:                fit.R2,
		Efficiency:        fit.Efficiency,
		PercentEfficiency: fit.PercentEfficiency,
		EfficiencyRating:  fit.EfficiencyRating,
		R2Rating:          fit.R2Rating,
		Status:            fit.Status.String(),
	}

	if opts.Output == "json" {
		err = output.WriteCurveJSON(outw, v)
	} else {
		err = output.WriteCurveText(outw, v)
	}
	if writers.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return flushExit(outw, stderr, 0)
}

// Run is RunContext with the ambient context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func flushExit(outw *bufio.Writer, stderr io.Writer, code int) int {
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return code
}
