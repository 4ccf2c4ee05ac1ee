package main

import (
	"github.com/scott-cotton/cli"
)

// MainCommand wires the single "jsurf" command, grounded on the teacher's
// MainCommand/GetCommand pair (cmd/o/commands.go, cmd/o/get.go): one
// struct-tag-driven flag set plus a positional path and file arguments.
func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "jsurf").
		WithSynopsis("jsurf [opts] <path> [files...]").
		WithDescription("jsurf streams JSON or YAML documents through a JSONPath-like matcher and prints every match.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jsurfMain(cfg, cc, args)
		})
}
