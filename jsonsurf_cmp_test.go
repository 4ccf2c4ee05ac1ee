package jsonsurf

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/surfkit/jsonsurf/internal/testdiff"
	"github.com/surfkit/jsonsurf/listener"
	"github.com/surfkit/jsonsurf/pathexpr"
	"github.com/surfkit/jsonsurf/pathop"
)

func TestAssembledValueDeepEquality(t *testing.T) {
	var got any
	b := NewBuilder()
	expr := pathexpr.New(pathop.NewRoot(), pathop.NewChild("x"), pathop.NewArrayIndex(1))
	_, err := b.Bind(expr, func(ctx listener.ParsingContext, v any) error {
		got = v
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	ctx := b.Build()
	feedXArray(t, ctx)

	want := map[string]any{"v": int64(2)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("assembled value mismatch (-want +got):\n%s\njson diff:\n%s", diff, testdiff.JSON(want, got))
	}
}
