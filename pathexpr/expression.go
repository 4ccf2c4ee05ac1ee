// Package pathexpr implements the PathExpression (spec §3/§4.2, C2): an
// immutable ordered sequence of pathop.Operator values, with the
// two-pointer recursive-descent matcher against a live position.
package pathexpr

import (
	"strings"

	"github.com/surfkit/jsonsurf/pathop"
	"github.com/surfkit/jsonsurf/position"
)

// Expression is an immutable ordered sequence of path operators. Its
// derived attributes (isDefinite, pathDepth, minimumPathDepth) are computed
// once at construction, per spec §3.
type Expression struct {
	ops       []pathop.Operator
	definite  bool
	pathDepth int
	minDepth  int
}

// New builds an Expression from an ordered operator sequence.
func New(ops ...pathop.Operator) *Expression {
	cp := append([]pathop.Operator(nil), ops...)
	depth := countNonDeep(cp)
	return &Expression{
		ops:       cp,
		definite:  computeDefinite(cp),
		pathDepth: depth,
		minDepth:  depth,
	}
}

// IsDefinite reports whether this expression matches at most one position
// in any document: no Wildcard, no DeepScan, and every ArraySlice spans
// exactly one index (an ArraySlice of width >1 is, by construction,
// indefinite — it can match more than one element).
func (e *Expression) IsDefinite() bool { return e.definite }

// PathDepth is the count of non-DeepScan operators. Meaningful only when
// IsDefinite() — it indexes the definite slot of a BindingIndex.
func (e *Expression) PathDepth() int { return e.pathDepth }

// MinimumPathDepth is the lower bound on the live depth at which this
// expression could possibly match; used to sort and early-terminate scans
// over indefinite bindings.
func (e *Expression) MinimumPathDepth() int { return e.minDepth }

// Operators exposes the underlying sequence (read-only use expected).
func (e *Expression) Operators() []pathop.Operator { return e.ops }

func computeDefinite(ops []pathop.Operator) bool {
	for _, op := range ops {
		switch op.Kind() {
		case pathop.Wildcard, pathop.DeepScan:
			return false
		case pathop.ArraySlice:
			if op.Hi()-op.Lo() != 1 {
				return false
			}
		}
	}
	return true
}

func countNonDeep(ops []pathop.Operator) int {
	n := 0
	for _, op := range ops {
		if op.Kind() != pathop.DeepScan {
			n++
		}
	}
	return n
}

// Match runs the whole-expression two-pointer walk from spec §4.2 against
// pos. DeepScan ties are resolved greedy-first-fit, no backtracking.
func (e *Expression) Match(pos *position.Position) (bool, error) {
	depth := pos.Depth()
	ops := e.ops
	i, j := 0, 0
	for i < len(ops) && j < depth {
		op := ops[i]
		if op.Kind() == pathop.DeepScan {
			if i == len(ops)-1 {
				return true, nil
			}
			i++
			next := ops[i]
			for j < depth {
				ok, err := next.Match(pos, j)
				if err != nil {
					return false, err
				}
				if ok {
					break
				}
				j++
			}
			if j == depth {
				return false, nil
			}
			i++
			j++
			continue
		}
		ok, err := op.Match(pos, j)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		i++
		j++
	}
	return i == len(ops) && j == depth, nil
}

// String renders the expression in dot/bracket JSONPath notation.
func (e *Expression) String() string {
	var b strings.Builder
	afterDeep := false
	for _, op := range e.ops {
		switch {
		case op.Kind() == pathop.Root:
			b.WriteString("$")
		case afterDeep && op.Kind() == pathop.Child:
			// ".." already supplies the separator: "$..author".
			b.WriteString(op.Key())
		default:
			b.WriteString(op.String())
		}
		afterDeep = op.Kind() == pathop.DeepScan
	}
	return b.String()
}
