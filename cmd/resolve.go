package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/capgains"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// resolveCmd holds the flags for the 'resolve' subcommand.
type resolveCmd struct {
	input   string
	output  string
	path    string
	workers int
}

func (*resolveCmd) Name() string     { return "resolve" }
func (*resolveCmd) Synopsis() string { return "computes the tax owed after each transaction" }
func (*resolveCmd) Usage() string {
	return `cgt resolve [-i <file>] [-o <file>] [-path <jsonpath>] [-j <workers>]

  Reads one JSON array of transactions per line, and writes one JSON array of
  taxes per line, in the same order. Lines are resolved independently.

Usage Examples:
$ echo '[{"operation":"buy", "unit-cost":10.00, "quantity": 100}]' | cgt resolve
[{"amount":"0.00"}]

`
}

func (c *resolveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Input file. Defaults to stdin.")
	f.StringVar(&c.output, "o", "", "Output file. Defaults to stdout.")
	f.StringVar(&c.path, "path", "", "JSONPath expression selecting the transaction array in each line.")
	f.IntVar(&c.workers, "j", 1, "Number of lines resolved in parallel. Values above 1 read the whole input first.")
}

func (c *resolveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	taxer, err := NewTaxer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.workers < 1 {
		fmt.Fprintln(os.Stderr, "-j must be at least 1")
		return subcommands.ExitUsageError
	}

	logger := Logger()
	defer logger.Sync()

	in, err := openInput(c.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	out, err := openOutput(c.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.workers == 1 {
		observe := func(l capgains.Line, taxes []capgains.Tax) {
			logger.Debug("resolved line",
				zap.Int("line", l.Number),
				zap.Int("transactions", len(l.Transactions)),
				zap.Stringer("tax", capgains.TotalTax(taxes)),
			)
		}
		err = capgains.Process(ctx, in, out, taxer, capgains.WithPath(c.path), capgains.WithObserver(observe))
	} else {
		err = c.resolveParallel(ctx, in, out, taxer, logger)
	}
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("error closing output: %w", cerr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// resolveParallel reads all lines, resolves them on c.workers workers, and
// writes the results in input order.
func (c *resolveCmd) resolveParallel(ctx context.Context, in io.Reader, out io.Writer, taxer capgains.Taxer, logger *zap.Logger) error {
	var streams [][]capgains.Transaction
	for line, err := range capgains.ScanLines(in, c.path) {
		if err != nil {
			return err
		}
		streams = append(streams, line.Transactions)
	}
	logger.Debug("resolving in parallel", zap.Int("lines", len(streams)), zap.Int("workers", c.workers))

	results, err := capgains.ResolveAll(ctx, taxer, streams, c.workers)
	if err != nil {
		return err
	}
	for _, taxes := range results {
		if err := capgains.EncodeTaxes(out, taxes); err != nil {
			return err
		}
	}
	return nil
}
