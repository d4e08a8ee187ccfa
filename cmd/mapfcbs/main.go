// Command mapfcbs solves, benchmarks, generates, and self-checks
// multi-agent pathfinding instances via Conflict-Based Search.
//
// The original program selected these modes at build time through
// Macros.h #defines; here they are ordinary kong subcommands, a
// runtime choice rather than a recompile, grounded on
// upside-down-research-agentic's cmd/agentic kong.Parse/ctx.Run shape.
package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/orangedot/mapf-cbs/internal/obslog"
)

var cli struct {
	Run   RunCmd   `cmd:"" help:"Solve one grid+agents instance and write a solution file"`
	Bench BenchCmd `cmd:"" help:"Generate and solve a batch of instances, reporting aggregate runtime statistics"`
	Gen   GenCmd   `cmd:"" help:"Generate a random grid and agent file pair"`
	Test  TestCmd  `cmd:"" help:"Run the self-check scenario suite"`

	LogLevel string `name:"log-level" default:"info" help:"debug, info, warn, or error"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("mapfcbs"),
		kong.Description("Multi-agent pathfinding over a grid, solved by Conflict-Based Search."),
		kong.UsageOnError(),
	)

	logger := obslog.New(cli.LogLevel)
	err := kctx.Run(logger)
	if err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
