package pathop

import (
	"testing"

	"github.com/surfkit/jsonsurf/position"
)

func TestMatchRoot(t *testing.T) {
	pos := position.New()
	ok, err := NewRoot().Match(pos, 0)
	if err != nil || !ok {
		t.Errorf("got (%v, %v) want (true, nil)", ok, err)
	}
	ok, err = NewRoot().Match(pos, 1)
	if err != nil || ok {
		t.Errorf("root matched a non-root frame index")
	}
}

func TestMatchChild(t *testing.T) {
	pos := position.New()
	pos.PushObjectEntry("a")
	ok, err := NewChild("a").Match(pos, 1)
	if err != nil || !ok {
		t.Errorf("got (%v, %v) want (true, nil)", ok, err)
	}
	ok, _ = NewChild("b").Match(pos, 1)
	if ok {
		t.Error("Child(b) matched key a")
	}
}

func TestMatchWildcard(t *testing.T) {
	pos := position.New()
	pos.PushArray()
	ok, _ := NewWildcard().Match(pos, 1)
	if !ok {
		t.Error("wildcard should match an ARRAY frame")
	}
}

func TestMatchArrayIndex(t *testing.T) {
	pos := position.New()
	pos.PushArray()
	pos.AdvanceArrayIndex()
	pos.AdvanceArrayIndex()
	ok, _ := NewArrayIndex(1).Match(pos, 1)
	if !ok {
		t.Error("expected ArrayIndex(1) to match index 1")
	}
	ok, _ = NewArrayIndex(0).Match(pos, 1)
	if ok {
		t.Error("ArrayIndex(0) should not match index 1")
	}
}

func TestMatchArraySlice(t *testing.T) {
	pos := position.New()
	pos.PushArray()
	for i := 0; i < 5; i++ {
		pos.AdvanceArrayIndex()
		ok, _ := NewArraySlice(1, 3).Match(pos, 1)
		want := i >= 1 && i < 3
		if ok != want {
			t.Errorf("index %d: got %v want %v", i, ok, want)
		}
	}
}

func TestMatchDeepScanIsUnsupportedPositionally(t *testing.T) {
	pos := position.New()
	_, err := NewDeepScan().Match(pos, 0)
	if err == nil {
		t.Error("expected an error matching DeepScan positionally")
	}
}

func TestMatchOutOfRangeFrame(t *testing.T) {
	pos := position.New()
	ok, err := NewChild("a").Match(pos, 5)
	if err != nil || ok {
		t.Errorf("got (%v, %v) want (false, nil)", ok, err)
	}
}
