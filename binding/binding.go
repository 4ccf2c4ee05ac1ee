// Package binding implements the BindingIndex (spec §3/§4.4, C4): the
// two-tier store of (expression → listeners) pairs, partitioned at
// build() time into a depth-indexed dense array (definite paths) and a
// depth-sorted slice (indefinite paths).
package binding

import (
	"sort"

	"github.com/surfkit/jsonsurf/internal/surflog"
	"github.com/surfkit/jsonsurf/listener"
	"github.com/surfkit/jsonsurf/pathexpr"
	"github.com/surfkit/jsonsurf/position"
	"go.uber.org/zap"
)

// Binding pairs one path expression with the listeners registered against
// it.
type Binding struct {
	Expr      *pathexpr.Expression
	Listeners []listener.Listener
}

type indefiniteEntry struct {
	binding  Binding
	minDepth int
}

// Builder accumulates bindings before Index construction. Not safe for
// concurrent use; mirrors the teacher's frozen-after-build Builder shape.
type Builder struct {
	definiteByDepth map[int][]Binding
	indefinite      []indefiniteEntry
	frozen          bool
}

func NewBuilder() *Builder {
	return &Builder{definiteByDepth: make(map[int][]Binding)}
}

// Bind registers a (expression, listeners) pair. Returns ErrFrozen if
// called after Build.
func (b *Builder) Bind(expr *pathexpr.Expression, listeners ...listener.Listener) error {
	if b.frozen {
		return ErrFrozen
	}
	bd := Binding{Expr: expr, Listeners: append([]listener.Listener(nil), listeners...)}
	if expr.IsDefinite() {
		d := expr.PathDepth()
		b.definiteByDepth[d] = append(b.definiteByDepth[d], bd)
		return nil
	}
	b.indefinite = append(b.indefinite, indefiniteEntry{binding: bd, minDepth: expr.MinimumPathDepth()})
	return nil
}

// Build freezes the Builder and materializes the Index. The Builder
// becomes unusable for further Bind calls.
func (b *Builder) Build() *Index {
	b.frozen = true

	sort.SliceStable(b.indefinite, func(i, j int) bool {
		return b.indefinite[i].minDepth < b.indefinite[j].minDepth
	})

	idx := &Index{indefinite: b.indefinite}
	if len(b.definiteByDepth) == 0 {
		surflog.Binding().Debug("binding index built", zap.Int("definite", 0), zap.Int("indefinite", len(b.indefinite)))
		return idx
	}

	minD, maxD := 0, 0
	first := true
	for d := range b.definiteByDepth {
		if first {
			minD, maxD = d, d
			first = false
			continue
		}
		if d < minD {
			minD = d
		}
		if d > maxD {
			maxD = d
		}
	}
	dense := make([][]Binding, maxD-minD+1)
	for d, bs := range b.definiteByDepth {
		dense[d-minD] = bs
	}
	idx.definite = dense
	idx.minDepth = minD
	idx.maxDepth = maxD

	surflog.Binding().Debug("binding index built",
		zap.Int("definiteDepthRange", maxD-minD+1),
		zap.Int("indefinite", len(b.indefinite)))
	return idx
}

// Index is the frozen, queryable binding table.
type Index struct {
	definite [][]Binding
	minDepth int
	maxDepth int

	indefinite []indefiniteEntry
}

// Lookup appends every Binding whose expression actually matches pos to
// dst, and returns the extended slice. It first narrows candidates by
// depth (the indefinite list's sorted minimumPathDepth lets the scan
// terminate early; the definite table is a direct index), then confirms
// each candidate with a full Expression.Match, since depth alone doesn't
// distinguish e.g. $.a from $.b at the same depth.
func (idx *Index) Lookup(pos *position.Position, dst []Binding) ([]Binding, error) {
	depth := pos.Depth()

	for _, e := range idx.indefinite {
		if e.minDepth > depth {
			break
		}
		ok, err := e.binding.Expr.Match(pos)
		if err != nil {
			return dst, err
		}
		if ok {
			dst = append(dst, e.binding)
		}
	}

	if len(idx.definite) > 0 && depth >= idx.minDepth && depth <= idx.maxDepth {
		for _, bd := range idx.definite[depth-idx.minDepth] {
			ok, err := bd.Expr.Match(pos)
			if err != nil {
				return dst, err
			}
			if ok {
				dst = append(dst, bd)
			}
		}
	}
	return dst, nil
}
