// Package pathop defines the PathOperator tagged union (spec §3, C1): the
// variant set describing one hop of a JSONPath, and the match predicate
// against a live position frame.
package pathop

import (
	"fmt"

	"github.com/surfkit/jsonsurf/position"
)

// Kind discriminates the PathOperator variants. Matched by switch, never by
// type assertion chains or interface downcasts (spec §9: "do not attempt to
// emulate virtual dispatch").
type Kind int

const (
	Root Kind = iota
	Child
	Wildcard
	ArrayIndex
	ArraySlice
	DeepScan
)

func (k Kind) String() string {
	switch k {
	case Root:
		return "Root"
	case Child:
		return "Child"
	case Wildcard:
		return "Wildcard"
	case ArrayIndex:
		return "ArrayIndex"
	case ArraySlice:
		return "ArraySlice"
	case DeepScan:
		return "DeepScan"
	default:
		return "Unknown"
	}
}

// Operator is one hop of a JSONPath expression. It is a closed tagged
// union: only the fields relevant to Kind() are meaningful, and callers
// must switch on Kind() rather than guess which field to read.
type Operator struct {
	kind Kind
	key  string
	idx  int
	lo   int
	hi   int
}

func NewRoot() Operator                 { return Operator{kind: Root} }
func NewChild(key string) Operator      { return Operator{kind: Child, key: key} }
func NewWildcard() Operator             { return Operator{kind: Wildcard} }
func NewArrayIndex(i int) Operator      { return Operator{kind: ArrayIndex, idx: i} }
func NewArraySlice(lo, hi int) Operator { return Operator{kind: ArraySlice, lo: lo, hi: hi} }
func NewDeepScan() Operator             { return Operator{kind: DeepScan} }

func (o Operator) Kind() Kind  { return o.kind }
func (o Operator) Key() string { return o.key }
func (o Operator) Index() int  { return o.idx }
func (o Operator) Lo() int     { return o.lo }
func (o Operator) Hi() int     { return o.hi }

// ErrUnsupportedPositionalMatch is returned when Match is called on a
// variant that has no positional meaning (DeepScan) or on a future variant
// this build doesn't recognize. Corresponds to spec §7's
// UnsupportedPathOperator error kind.
type ErrUnsupportedPositionalMatch struct {
	Kind Kind
}

func (e *ErrUnsupportedPositionalMatch) Error() string {
	return fmt.Sprintf("pathop: operator %s has no positional match", e.Kind)
}

// Match reports whether the operator applies to the frame at frameIndex
// within pos (spec §4.1). DeepScan never matches positionally; it is
// consumed by the whole-expression matcher in pathexpr instead.
func (o Operator) Match(pos *position.Position, frameIndex int) (bool, error) {
	frame, ok := pos.At(frameIndex)
	if !ok {
		return false, nil
	}
	switch o.kind {
	case Root:
		return frameIndex == 0, nil
	case Child:
		return frame.Kind() == position.Object && frame.Key() == o.key, nil
	case Wildcard:
		return frame.Kind() == position.Object || frame.Kind() == position.Array, nil
	case ArrayIndex:
		return frame.Kind() == position.Array && frame.Index() == o.idx, nil
	case ArraySlice:
		return frame.Kind() == position.Array && frame.Index() >= o.lo && frame.Index() < o.hi, nil
	case DeepScan:
		return false, &ErrUnsupportedPositionalMatch{Kind: o.kind}
	default:
		return false, &ErrUnsupportedPositionalMatch{Kind: o.kind}
	}
}

// String renders the operator in dot/bracket notation, for debug logging
// and round-trip compiler tests.
func (o Operator) String() string {
	switch o.kind {
	case Root:
		return "$"
	case Child:
		return "." + o.key
	case Wildcard:
		return "[*]"
	case ArrayIndex:
		return fmt.Sprintf("[%d]", o.idx)
	case ArraySlice:
		return fmt.Sprintf("[%d:%d]", o.lo, o.hi)
	case DeepScan:
		return ".."
	default:
		return "?"
	}
}
