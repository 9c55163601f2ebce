// Command cgt computes the capital gains tax owed after each trade of a
// stream of transactions.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/capgains/cmd"
	"github.com/google/subcommands"
)

func main() {
	// handles shell completion requests, and returns immediately otherwise.
	cmd.Completion().Complete("cgt")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	if flag.NArg() == 0 {
		// without a command, behave as a filter.
		flag.CommandLine.Parse([]string{"resolve"})
	}
	os.Exit(int(commander.Execute(context.Background())))
}
