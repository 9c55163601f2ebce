// Package cmd implements the CLI application computing capital gains taxes.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/etnz/capgains"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Environment variables overriding the global flags defaults.
const (
	EnvRate      = "CAPGAINS_RATE"
	EnvExemption = "CAPGAINS_EXEMPTION"
	EnvCurrency  = "CAPGAINS_CURRENCY"
	EnvVerbose   = "CAPGAINS_VERBOSE"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	rate            = flag.String("rate", envOr(EnvRate, capgains.DefaultRate.String()), "Tax rate applied to taxable profit")
	exemption       = flag.String("exemption", envOr(EnvExemption, capgains.DefaultExemption.String()), "Notional sale value at or below which no tax is owed")
	defaultCurrency = flag.String("currency", envOr(EnvCurrency, ""), "Default currency to display amounts in")
	Verbose         = flag.Bool("v", envBool(EnvVerbose), "Log each resolved line on stderr")
)

// stdout is where commands print their results, replaced in tests.
var stdout io.Writer = os.Stdout

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&resolveCmd{}, "")
	c.Register(&reportCmd{}, "")
	c.Register(&topicCmd{}, "documentation")
}

// Config returns the resolver options set by the global flags.
func Config() ([]capgains.Option, error) {
	r, err := decimal.NewFromString(*rate)
	if err != nil {
		return nil, fmt.Errorf("invalid -rate %q: %w", *rate, err)
	}
	if r.IsNegative() {
		return nil, fmt.Errorf("invalid -rate %q: must not be negative", *rate)
	}
	e, err := capgains.ParseMoney(*exemption)
	if err != nil {
		return nil, fmt.Errorf("invalid -exemption: %w", err)
	}
	return []capgains.Option{
		capgains.WithRate(capgains.FlatRate(r)),
		capgains.WithExemption(e),
	}, nil
}

// NewTaxer returns the resolver configured by the global flags.
func NewTaxer() (*capgains.CapitalGains, error) {
	opts, err := Config()
	if err != nil {
		return nil, err
	}
	return capgains.NewCapitalGains(opts...), nil
}

// Logger returns the diagnostic logger: a development logger writing to
// stderr in verbose mode, a no-op one otherwise.
func Logger() *zap.Logger {
	if !*Verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot create logger: %v\n", err)
		return zap.NewNop()
	}
	return logger
}

// openInput opens filename for reading, or stdin when empty or "-".
func openInput(filename string) (io.ReadCloser, error) {
	if filename == "" || filename == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening input file %q: %w", filename, err)
	}
	return f, nil
}

// openOutput creates filename for writing, or returns stdout when empty or "-".
func openOutput(filename string) (io.WriteCloser, error) {
	if filename == "" || filename == "-" {
		return nopWriteCloser{stdout}, nil
	}
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("error creating output file %q: %w", filename, err)
	}
	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
