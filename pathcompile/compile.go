// Package pathcompile is a small textual-to-operator compiler: a
// convenience adapter, not "the" canonical JSONPath compiler the matching
// core defers to external tooling (spec §1, §6). Grounded on the
// teacher's ir/path.go linked-list Path/ParsePath design (dot notation,
// quoted-field escaping) and on the slice/union token handling in the
// nspcc-dev-neo-go JSONPath tokenizer retrieved alongside it.
package pathcompile

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/surfkit/jsonsurf/pathop"
	"github.com/surfkit/jsonsurf/pathexpr"
)

// Compile parses a JSONPath-like expression — "$", ".field", "['field']",
// "[*]", "[i]", "[lo:hi]", ".." — into a pathexpr.Expression.
func Compile(s string) (*pathexpr.Expression, error) {
	p := &parser{src: s}
	ops, err := p.parse()
	if err != nil {
		return nil, err
	}
	return pathexpr.New(ops...), nil
}

// CompileMulti supports a single comma-separated index list in one
// bracket, e.g. "$.x[0,2]", by compiling it into one Expression per index
// (spec's supplemented feature: ArrayIndex only ever pins one index, so a
// multi-index binding is several definite bindings sharing a listener
// set, not a new union operator).
func CompileMulti(s string) ([]*pathexpr.Expression, error) {
	open := strings.IndexByte(s, '[')
	if open < 0 || !strings.Contains(s[open:], ",") {
		expr, err := Compile(s)
		if err != nil {
			return nil, err
		}
		return []*pathexpr.Expression{expr}, nil
	}
	closeIdx := strings.IndexByte(s[open:], ']')
	if closeIdx < 0 {
		return nil, errors.Errorf("pathcompile: unterminated [ in %q", s)
	}
	closeIdx += open
	inner := s[open+1 : closeIdx]
	prefix, suffix := s[:open], s[closeIdx+1:]

	var exprs []*pathexpr.Expression
	for _, part := range strings.Split(inner, ",") {
		expr, err := Compile(prefix + "[" + strings.TrimSpace(part) + "]" + suffix)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) parse() ([]pathop.Operator, error) {
	if !strings.HasPrefix(p.src, "$") {
		return nil, errors.Errorf("pathcompile: expression must start with $: %q", p.src)
	}
	ops := []pathop.Operator{pathop.NewRoot()}
	p.pos = 1
	for p.pos < len(p.src) {
		switch {
		case strings.HasPrefix(p.src[p.pos:], ".."):
			ops = append(ops, pathop.NewDeepScan())
			p.pos += 2
			if p.pos < len(p.src) && p.src[p.pos] != '[' {
				op, err := p.parseField()
				if err != nil {
					return nil, err
				}
				ops = append(ops, op)
			}
		case p.src[p.pos] == '.':
			p.pos++
			op, err := p.parseField()
			if err != nil {
				return nil, err
			}
			ops = append(ops, op)
		case p.src[p.pos] == '[':
			op, err := p.parseBracket()
			if err != nil {
				return nil, err
			}
			ops = append(ops, op)
		default:
			return nil, errors.Errorf("pathcompile: unexpected character %q at offset %d in %q", p.src[p.pos], p.pos, p.src)
		}
	}
	return ops, nil
}

func (p *parser) parseField() (pathop.Operator, error) {
	if p.pos < len(p.src) && p.src[p.pos] == '*' {
		if op, ok := lookupKeyword("*"); ok {
			p.pos++
			return op(), nil
		}
	}
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != '.' && p.src[p.pos] != '[' {
		p.pos++
	}
	if start == p.pos {
		return pathop.Operator{}, errors.Errorf("pathcompile: empty field name at offset %d in %q", start, p.src)
	}
	return pathop.NewChild(p.src[start:p.pos]), nil
}

func (p *parser) parseBracket() (pathop.Operator, error) {
	end := strings.IndexByte(p.src[p.pos:], ']')
	if end < 0 {
		return pathop.Operator{}, errors.Errorf("pathcompile: unterminated [ in %q", p.src)
	}
	inner := p.src[p.pos+1 : p.pos+end]
	p.pos += end + 1

	if op, ok := lookupKeyword(inner); ok {
		return op(), nil
	}
	switch {
	case strings.HasPrefix(inner, "'") && strings.HasSuffix(inner, "'") && len(inner) >= 2:
		field := strings.ReplaceAll(inner[1:len(inner)-1], "\\'", "'")
		return pathop.NewChild(field), nil
	case strings.Contains(inner, ":"):
		parts := strings.SplitN(inner, ":", 2)
		lo, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return pathop.Operator{}, errors.Wrapf(err, "pathcompile: bad slice lower bound in %q", inner)
		}
		hi, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return pathop.Operator{}, errors.Wrapf(err, "pathcompile: bad slice upper bound in %q", inner)
		}
		return pathop.NewArraySlice(lo, hi), nil
	default:
		i, err := strconv.Atoi(strings.TrimSpace(inner))
		if err != nil {
			return pathop.Operator{}, errors.Wrapf(err, "pathcompile: bad index in %q", inner)
		}
		return pathop.NewArrayIndex(i), nil
	}
}
