package provider

import "testing"

func TestNativeAssembly(t *testing.T) {
	n := Native{}
	obj := n.CreateObject()
	obj = n.ConsumeObjectEntry(obj, "a", n.PrimitiveInt(1))
	arr := n.CreateArray()
	arr = n.ConsumeArrayElement(arr, n.PrimitiveString("x"))
	obj = n.ConsumeObjectEntry(obj, "list", arr)

	m, ok := obj.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", obj)
	}
	if m["a"] != int64(1) {
		t.Errorf("got %v want 1", m["a"])
	}
	list, ok := m["list"].([]any)
	if !ok || len(list) != 1 || list[0] != "x" {
		t.Errorf("got %#v want [\"x\"]", m["list"])
	}
}

func TestNativeWrapRejectsUnknownType(t *testing.T) {
	n := Native{}
	if _, err := n.Wrap(struct{}{}); err == nil {
		t.Error("expected an error wrapping an unsupported primitive type")
	}
}

func TestNativeCast(t *testing.T) {
	n := Native{}
	obj := n.CreateObject()
	obj = n.ConsumeObjectEntry(obj, "Name", n.PrimitiveString("book"))

	var target struct {
		Name string `json:"Name"`
	}
	if err := n.Cast(obj, &target); err != nil {
		t.Fatal(err)
	}
	if target.Name != "book" {
		t.Errorf("got %q want %q", target.Name, "book")
	}
}

func TestEqualAndDiff(t *testing.T) {
	a := map[string]any{"x": 1}
	b := map[string]any{"x": 1}
	eq, err := Equal(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !eq {
		t.Error("expected a and b to be equal")
	}

	c := map[string]any{"x": 2}
	eq, err = Equal(a, c)
	if err != nil {
		t.Fatal(err)
	}
	if eq {
		t.Error("expected a and c to differ")
	}
}
