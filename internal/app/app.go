// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"rqpcr-core/analysis"
	"rqpcr/internal/cli"
	"rqpcr/internal/input"
	"rqpcr/internal/output"
	"rqpcr/internal/version"
	"rqpcr/internal/writers"
)

// RunContext parses argv, loads the experiment, runs the analysis and
// writes results. Exit codes: 0 ok, 2 usage/input error, 3 write error.
func RunContext(_ context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("rqpcr")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(outw)
		fs.Usage()
		return flushExit(outw, stderr, 0)
	}

	opts, err := cli.ParseArgs(fs, argv)
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
		_, _ = fmt.Fprintf(outw, "rqpcr version %s\n", version.Version)
		return flushExit(outw, stderr, 0)
	}

	var exp input.Experiment
	if opts.Input == "-" {
		exp, err = input.Read(stdin, opts.Format)
	} else {
		exp, err = input.Load(opts.Input, opts.Format)
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	results, err := analysis.Compute(exp.Genes, exp.Groups, exp.Samples)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	list := output.ToAPIList(results)
	if opts.Sort {
		sort.SliceStable(list, func(i, j int) bool { return list[i].GeneName < list[j].GeneName })
	}

	switch opts.Output {
	case cli.OutputJSON:
		err = output.WriteJSON(outw, list)
	case cli.OutputCSV:
		err = output.WriteCSV(outw, list, opts.Header)
	default:
		err = output.WriteText(outw, list, opts.Header)
	}
	if writers.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return flushExit(outw, stderr, 0)
}

// Run is RunContext with the ambient context and stdin.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, os.Stdin, stdout, stderr)
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
