package jsonsurf

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/surfkit/jsonsurf/listener"
	"github.com/surfkit/jsonsurf/pathexpr"
	"github.com/surfkit/jsonsurf/pathop"
)

type recorder struct {
	values []any
	paths  []string
}

func (r *recorder) listen() listener.Listener {
	return func(ctx listener.ParsingContext, v any) error {
		r.values = append(r.values, v)
		r.paths = append(r.paths, ctx.JSONPath())
		return nil
	}
}

func dollarA() *pathexpr.Expression {
	return pathexpr.New(pathop.NewRoot(), pathop.NewChild("a"))
}

// S1: {"a":1,"b":2}; binding $.a. Expected: ($.a, 1). No other firings.
func TestScenario1SimpleChild(t *testing.T) {
	var rec recorder
	b := NewBuilder()
	if _, err := b.Bind(dollarA(), rec.listen()); err != nil {
		t.Fatal(err)
	}
	ctx := b.Build()

	must(t, ctx.StartJSON())
	must(t, ctx.StartObject())
	must(t, ctx.StartObjectEntry("a"))
	must(t, ctx.Primitive(int64(1)))
	must(t, ctx.StartObjectEntry("b"))
	must(t, ctx.Primitive(int64(2)))
	must(t, ctx.EndObject())
	must(t, ctx.EndJSON())

	if len(rec.values) != 1 || rec.values[0] != int64(1) {
		t.Fatalf("got %#v want [1]", rec.values)
	}
	if rec.paths[0] != "$.a" {
		t.Errorf("got path %q want $.a", rec.paths[0])
	}
}

// S2: {"store":{"book":[{"author":"A"},{"author":"B"}]}}; binding $..author.
func TestScenario2DeepScan(t *testing.T) {
	var rec recorder
	b := NewBuilder()
	expr := pathexpr.New(pathop.NewRoot(), pathop.NewDeepScan(), pathop.NewChild("author"))
	if _, err := b.Bind(expr, rec.listen()); err != nil {
		t.Fatal(err)
	}
	ctx := b.Build()

	must(t, ctx.StartJSON())
	must(t, ctx.StartObject())
	must(t, ctx.StartObjectEntry("store"))
	must(t, ctx.StartObject())
	must(t, ctx.StartObjectEntry("book"))
	must(t, ctx.StartArray())

	must(t, ctx.StartObject())
	must(t, ctx.StartObjectEntry("author"))
	must(t, ctx.Primitive("A"))
	must(t, ctx.EndObject())

	must(t, ctx.StartObject())
	must(t, ctx.StartObjectEntry("author"))
	must(t, ctx.Primitive("B"))
	must(t, ctx.EndObject())

	must(t, ctx.EndArray())
	must(t, ctx.EndObject())
	must(t, ctx.EndObject())
	must(t, ctx.EndJSON())

	if len(rec.values) != 2 || rec.values[0] != "A" || rec.values[1] != "B" {
		t.Fatalf("got %#v want [A B]", rec.values)
	}
}

// S3: {"x":[{"v":1},{"v":2},{"v":3}]}; binding $.x[1].
func TestScenario3ArrayIndexAssemblesObject(t *testing.T) {
	var rec recorder
	b := NewBuilder()
	expr := pathexpr.New(pathop.NewRoot(), pathop.NewChild("x"), pathop.NewArrayIndex(1))
	if _, err := b.Bind(expr, rec.listen()); err != nil {
		t.Fatal(err)
	}
	ctx := b.Build()
	feedXArray(t, ctx)

	if len(rec.values) != 1 {
		t.Fatalf("got %d firings want 1", len(rec.values))
	}
	got, ok := rec.values[0].(map[string]any)
	if !ok || got["v"] != int64(2) {
		t.Errorf("got %#v want {v:2}", rec.values[0])
	}
	if rec.paths[0] != "$.x[1]" {
		t.Errorf("got path %q want $.x[1]", rec.paths[0])
	}
}

// S4: same document as S3, with two definite bindings on indices 0 and 2
// sharing no listener set, standing in for $.x[0,2].
func TestScenario4MultiIndexAsTwoBindings(t *testing.T) {
	var rec recorder
	b := NewBuilder()
	e0 := pathexpr.New(pathop.NewRoot(), pathop.NewChild("x"), pathop.NewArrayIndex(0))
	e2 := pathexpr.New(pathop.NewRoot(), pathop.NewChild("x"), pathop.NewArrayIndex(2))
	if _, err := b.Bind(e0, rec.listen()); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Bind(e2, rec.listen()); err != nil {
		t.Fatal(err)
	}
	ctx := b.Build()
	feedXArray(t, ctx)

	if len(rec.values) != 2 {
		t.Fatalf("got %d firings want 2", len(rec.values))
	}
	v0 := rec.values[0].(map[string]any)
	v2 := rec.values[1].(map[string]any)
	if v0["v"] != int64(1) || v2["v"] != int64(3) {
		t.Errorf("got %#v, %#v want {v:1}, {v:3}", v0, v2)
	}
}

func feedXArray(t *testing.T, ctx *Context) {
	t.Helper()
	must(t, ctx.StartJSON())
	must(t, ctx.StartObject())
	must(t, ctx.StartObjectEntry("x"))
	must(t, ctx.StartArray())
	for i := int64(1); i <= 3; i++ {
		must(t, ctx.StartObject())
		must(t, ctx.StartObjectEntry("v"))
		must(t, ctx.Primitive(i))
		must(t, ctx.EndObject())
	}
	must(t, ctx.EndArray())
	must(t, ctx.EndObject())
	must(t, ctx.EndJSON())
}

// S5: {"a":{"b":{"a":{"b":42}}}}; bindings $..a.b (indefinite) and $.a.b
// (definite), skipOverlappedPath on. Both bindings match $.a.b and each
// fires once there with {"a":{"b":42}}; the inner $.a.b.a.b match is
// suppressed.
func TestScenario5OverlapSuppression(t *testing.T) {
	var rec recorder
	b := NewBuilder().SkipOverlappedPath()
	deep := pathexpr.New(pathop.NewRoot(), pathop.NewDeepScan(), pathop.NewChild("a"), pathop.NewChild("b"))
	def := pathexpr.New(pathop.NewRoot(), pathop.NewChild("a"), pathop.NewChild("b"))
	if _, err := b.Bind(deep, rec.listen()); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Bind(def, rec.listen()); err != nil {
		t.Fatal(err)
	}
	ctx := b.Build()

	must(t, ctx.StartJSON())
	must(t, ctx.StartObject())
	must(t, ctx.StartObjectEntry("a"))
	must(t, ctx.StartObject())
	must(t, ctx.StartObjectEntry("b"))
	must(t, ctx.StartObject())
	must(t, ctx.StartObjectEntry("a"))
	must(t, ctx.StartObject())
	must(t, ctx.StartObjectEntry("b"))
	must(t, ctx.Primitive(int64(42)))
	must(t, ctx.EndObject())
	must(t, ctx.EndObject())
	must(t, ctx.EndObject())
	must(t, ctx.EndObject())
	must(t, ctx.EndJSON())

	if len(rec.values) != 2 {
		t.Fatalf("got %d firings want 2 (one per binding at $.a.b; overlap should suppress the inner match): %#v", len(rec.values), rec.values)
	}
	got, ok := rec.values[0].(map[string]any)
	if !ok {
		t.Fatalf("got %#v, want an assembled object", rec.values[0])
	}
	inner, ok := got["a"].(map[string]any)
	if !ok || inner["b"] != int64(42) {
		t.Errorf("got %#v want {a:{b:42}}", got)
	}
}

// S6: [1,2,3,4]; binding $[*] whose listener calls StopParsing after 2.
func TestScenario6StopParsing(t *testing.T) {
	var rec recorder
	b := NewBuilder()
	star := pathexpr.New(pathop.NewRoot(), pathop.NewWildcard())
	stopAfter2 := func(ctx listener.ParsingContext, v any) error {
		rec.values = append(rec.values, v)
		if v == int64(2) {
			ctx.StopParsing()
		}
		return nil
	}
	if _, err := b.Bind(star, stopAfter2); err != nil {
		t.Fatal(err)
	}
	ctx := b.Build()

	must(t, ctx.StartJSON())
	must(t, ctx.StartArray())
	for i := int64(1); i <= 4; i++ {
		must(t, ctx.Primitive(i))
	}
	must(t, ctx.EndArray())
	must(t, ctx.EndJSON())

	if len(rec.values) != 2 || rec.values[0] != int64(1) || rec.values[1] != int64(2) {
		t.Fatalf("got %#v want [1 2]", rec.values)
	}
}

func TestDepthSymmetryAfterEndJSON(t *testing.T) {
	b := NewBuilder()
	ctx := b.Build()
	must(t, ctx.StartJSON())
	must(t, ctx.StartObject())
	must(t, ctx.StartObjectEntry("a"))
	must(t, ctx.Primitive(int64(1)))
	must(t, ctx.EndObject())
	must(t, ctx.EndJSON())
	if ctx.pos != nil || ctx.dispatcher != nil {
		t.Error("expected position and dispatcher to be released after endJSON")
	}
}

// A consecutive DeepScan-DeepScan expression drives pathexpr.Expression.Match
// into comparing a DeepScan operator positionally, which pathop.Operator.Match
// refuses (pathop.ErrUnsupportedPositionalMatch). With FatalStrategy wired in,
// that must surface as an error satisfying errors.Is(err, ErrUnsupportedPathOperator).
func TestUnsupportedPathOperatorWrapsSentinel(t *testing.T) {
	var rec recorder
	b := NewBuilder().WithErrorStrategy(listener.FatalStrategy{})
	expr := pathexpr.New(pathop.NewRoot(), pathop.NewDeepScan(), pathop.NewDeepScan(), pathop.NewChild("x"))
	if _, err := b.Bind(expr, rec.listen()); err != nil {
		t.Fatal(err)
	}
	ctx := b.Build()

	must(t, ctx.StartJSON())
	must(t, ctx.StartObject())
	err := ctx.StartObjectEntry("a")
	if err == nil || !errors.Is(err, ErrUnsupportedPathOperator) {
		t.Fatalf("got %v want an error wrapping ErrUnsupportedPathOperator", err)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
