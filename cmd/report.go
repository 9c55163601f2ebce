package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/renderer"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	input    string
	path     string
	currency string
	raw      bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "details the resolution of a transaction list" }
func (*reportCmd) Usage() string {
	return `cgt report [-i <file>] [-path <jsonpath>] [-c <currency>] [-raw]

  Resolves the first transaction line of the input and prints a table with
  the position, the average cost and the carried profit after each
  transaction, and the tax owed.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Input file. Defaults to stdin.")
	f.StringVar(&c.path, "path", "", "JSONPath expression selecting the transaction array.")
	f.StringVar(&c.currency, "c", *defaultCurrency, "Currency to display amounts in (e.g. EUR, USD).")
	f.BoolVar(&c.raw, "raw", false, "Print raw markdown instead of rendering it.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	taxer, err := NewTaxer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
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

	var txs []capgains.Transaction
	found := false
	for line, err := range capgains.ScanLines(in, c.path) {
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading transactions: %v\n", err)
			return subcommands.ExitFailure
		}
		txs, found = line.Transactions, true
		break
	}
	if !found {
		fmt.Fprintln(os.Stderr, "Warning: no transactions found.")
	}

	steps := taxer.Resolve(txs)
	for i, step := range steps {
		logger.Debug("step",
			zap.Int("index", i),
			zap.Stringer("transaction", step.Transaction),
			zap.Int64("position", step.State.Position),
			zap.Stringer("average", step.State.WeightedAverage),
			zap.Stringer("profit", step.State.Profit),
			zap.Stringer("tax", step.Tax.Amount),
		)
	}

	md := renderer.StepsMarkdown(steps, taxer.Policy(), c.currency)
	if c.raw {
		fmt.Fprint(stdout, md)
		return subcommands.ExitSuccess
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
