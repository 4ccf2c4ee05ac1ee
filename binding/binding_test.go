package binding

import (
	"testing"

	"github.com/surfkit/jsonsurf/listener"
	"github.com/surfkit/jsonsurf/pathexpr"
	"github.com/surfkit/jsonsurf/pathop"
	"github.com/surfkit/jsonsurf/position"
)

func noop(listener.ParsingContext, any) error { return nil }

func TestBindAfterBuildFails(t *testing.T) {
	b := NewBuilder()
	b.Build()
	err := b.Bind(pathexpr.New(pathop.NewRoot()), noop)
	if err != ErrFrozen {
		t.Errorf("got %v want ErrFrozen", err)
	}
}

func TestLookupDefiniteVsIndefinite(t *testing.T) {
	b := NewBuilder()
	dollarA := pathexpr.New(pathop.NewRoot(), pathop.NewChild("a"))
	deepAuthor := pathexpr.New(pathop.NewRoot(), pathop.NewDeepScan(), pathop.NewChild("author"))
	if err := b.Bind(dollarA, noop); err != nil {
		t.Fatal(err)
	}
	if err := b.Bind(deepAuthor, noop); err != nil {
		t.Fatal(err)
	}
	idx := b.Build()

	pos := position.New()
	pos.PushObjectEntry("a")
	got, err := idx.Lookup(pos, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Expr != dollarA {
		t.Errorf("expected exactly $.a to match at %s, got %d matches", pos.String(), len(got))
	}

	pos2 := position.New()
	pos2.PushObjectEntry("author")
	got2, err := idx.Lookup(pos2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got2) != 1 || got2[0].Expr != deepAuthor {
		t.Errorf("expected exactly $..author to match, got %d matches", len(got2))
	}
}

func TestLookupNoMatchOutsideDepthRange(t *testing.T) {
	b := NewBuilder()
	_ = b.Bind(pathexpr.New(pathop.NewRoot(), pathop.NewChild("a")), noop)
	idx := b.Build()

	pos := position.New()
	pos.PushObjectEntry("x")
	pos.PushObjectEntry("y")
	got, err := idx.Lookup(pos, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}

func TestMultiIndexBindingAsTwoBindings(t *testing.T) {
	// $.x[0,2] expressed as two definite bindings sharing a listener set.
	b := NewBuilder()
	idx0 := pathexpr.New(pathop.NewRoot(), pathop.NewChild("x"), pathop.NewArrayIndex(0))
	idx2 := pathexpr.New(pathop.NewRoot(), pathop.NewChild("x"), pathop.NewArrayIndex(2))
	_ = b.Bind(idx0, noop)
	_ = b.Bind(idx2, noop)
	index := b.Build()

	pos := position.New()
	pos.PushObjectEntry("x")
	pos.PushArray()
	pos.AdvanceArrayIndex()
	got, _ := index.Lookup(pos, nil)
	if len(got) != 1 || got[0].Expr != idx0 {
		t.Errorf("expected index 0 binding to fire at index 0")
	}

	pos.AdvanceArrayIndex()
	got, _ = index.Lookup(pos, nil)
	if len(got) != 0 {
		t.Errorf("expected no firing at index 1, got %d", len(got))
	}

	pos.AdvanceArrayIndex()
	got, _ = index.Lookup(pos, nil)
	if len(got) != 1 || got[0].Expr != idx2 {
		t.Errorf("expected index 2 binding to fire at index 2")
	}
}
