package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// printer writes "path value" lines for each match, colorizing the path
// and value independently when writing to a terminal — grounded on the
// teacher's per-field color.Map idiom (encode/encode_colors.go) and its
// isatty.IsTerminal(f.Fd()) gating (cmd/o/configs.go encOpts).
type printer struct {
	out       io.Writer
	pathColor func(format string, a ...any) string
	valColor  func(format string, a ...any) string
}

func newPrinter(out io.Writer, cfg *MainConfig) *printer {
	p := &printer{out: out, pathColor: fmt.Sprintf, valColor: fmt.Sprintf}
	if cfg.NoColor {
		return p
	}
	if cfg.Color || isColorTerminal(out) {
		p.out = colorable.NewColorable(asFile(out))
		p.pathColor = color.New(color.FgYellow).SprintfFunc()
		p.valColor = color.New(color.FgCyan).SprintfFunc()
	}
	return p
}

func isColorTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func asFile(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return os.Stdout
}

func (p *printer) print(path string, value any) {
	rendered, err := json.Marshal(value)
	if err != nil {
		rendered = []byte(fmt.Sprintf("%v", value))
	}
	fmt.Fprintf(p.out, "%s %s\n", p.pathColor(path), p.valColor(string(rendered)))
}
