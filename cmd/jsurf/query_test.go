package main

import "testing"

func TestCompileWhereEmptyAlwaysMatches(t *testing.T) {
	where, err := compileWhere("")
	if err != nil {
		t.Fatal(err)
	}
	ok, err := where(42, "$.a")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("expected an empty -where condition to match everything")
	}
}

func TestCompileWhereFiltersOnValue(t *testing.T) {
	where, err := compileWhere("value > 10")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		value any
		want  bool
	}{
		{5, false},
		{15, true},
	}
	for _, tt := range tests {
		got, err := where(tt.value, "$.price")
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("where(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestCompileWhereCanReferencePath(t *testing.T) {
	where, err := compileWhere(`path == "$.store.book[0].price"`)
	if err != nil {
		t.Fatal(err)
	}
	ok, err := where(nil, "$.store.book[0].price")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("expected path-based condition to match")
	}
}

func TestCompileWhereRejectsBadExpression(t *testing.T) {
	if _, err := compileWhere("value >"); err == nil {
		t.Error("expected an error compiling a malformed expr-lang condition")
	}
}
