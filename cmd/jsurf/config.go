package main

import (
	"github.com/scott-cotton/cli"
)

// MainConfig holds the flags shared by the "jsurf" command, grounded on
// the teacher's MainConfig struct-tag option pattern (cmd/o/configs.go).
type MainConfig struct {
	YAML    bool   `cli:"name=y aliases=yaml desc='read input as YAML instead of JSON'"`
	Color   bool   `cli:"name=color desc='force colorized output'"`
	NoColor bool   `cli:"name=no-color desc='disable colorized output'"`
	Where   string `cli:"name=where desc='filter matches with an expr-lang expression over value and path'"`

	Main *cli.Command
}
