package main

import (
	"fmt"
	"io"
	"os"

	"github.com/expr-lang/expr"
	"github.com/scott-cotton/cli"

	"github.com/surfkit/jsonsurf"
	"github.com/surfkit/jsonsurf/jsonevents"
	"github.com/surfkit/jsonsurf/jsonevents/jsonlexer"
	"github.com/surfkit/jsonsurf/jsonevents/yamllexer"
	"github.com/surfkit/jsonsurf/listener"
	"github.com/surfkit/jsonsurf/pathcompile"
)

// jsurfMain implements "get"'s shape (cmd/o/get.go): parse flags, require
// a path as the first positional argument, then feed each remaining file
// (or stdin, if none given) through a matcher bound to that path.
func jsurfMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		cfg.Main.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: jsurf requires a path argument", cli.ErrUsage)
	}
	path := args[0]
	files := args[1:]

	pathExpr, err := pathcompile.Compile(path)
	if err != nil {
		return fmt.Errorf("error compiling %s: %w", path, err)
	}

	where, err := compileWhere(cfg.Where)
	if err != nil {
		return fmt.Errorf("error compiling -where: %w", err)
	}

	p := newPrinter(cc.Out, cfg)
	bind := func(b *jsonsurf.Builder) error {
		_, err := b.Bind(pathExpr, func(mctx listener.ParsingContext, v any) error {
			matched, err := where(v, mctx.JSONPath())
			if err != nil {
				return err
			}
			if matched {
				p.print(mctx.JSONPath(), v)
			}
			return nil
		})
		return err
	}

	if len(files) == 0 {
		b := jsonsurf.NewBuilder()
		if err := bind(b); err != nil {
			return err
		}
		return feedOne(b.Build(), cfg.YAML, os.Stdin)
	}
	for _, f := range files {
		b := jsonsurf.NewBuilder()
		if err := bind(b); err != nil {
			return err
		}
		fh, err := os.Open(f)
		if err != nil {
			return fmt.Errorf("error opening %s: %w", f, err)
		}
		err = feedOne(b.Build(), cfg.YAML, fh)
		fh.Close()
		if err != nil {
			return fmt.Errorf("error reading %s: %w", f, err)
		}
	}
	return nil
}

func feedOne(sink jsonevents.Sink, asYAML bool, r io.Reader) error {
	if asYAML {
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		return yamllexer.Feed(data, sink)
	}
	return jsonlexer.Feed(r, sink)
}

// compileWhere turns an optional expr-lang condition into a predicate over
// a matched value and its JSONPath, kept strictly outside the matching
// core (the matcher only ever sees structural/positional predicates).
func compileWhere(cond string) (func(value any, path string) (bool, error), error) {
	if cond == "" {
		return func(any, string) (bool, error) { return true, nil }, nil
	}
	program, err := expr.Compile(cond)
	if err != nil {
		return nil, err
	}
	return func(value any, path string) (bool, error) {
		out, err := expr.Run(program, map[string]any{"value": value, "path": path})
		if err != nil {
			return false, err
		}
		ok, _ := out.(bool)
		return ok, nil
	}, nil
}
