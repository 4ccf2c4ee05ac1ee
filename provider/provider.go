// Package provider defines the value-builder contract consumed by the
// collector stack (spec §6) and ships two implementations: Native (the
// stdlib map/slice/primitive tree) and YAMLNode (a goccy/go-yaml AST
// tree), demonstrating that the matching core depends only on the
// contract.
package provider

// Builder constructs opaque object/array/primitive values as a document is
// assembled. Implementations must be side-effect-free apart from the
// structures they build (spec §6).
type Builder interface {
	CreateObject() any
	CreateArray() any
	IsObject(v any) bool
	IsArray(v any) bool

	// ConsumeObjectEntry attaches value under key within obj, returning the
	// (possibly new, for immutable builders) object.
	ConsumeObjectEntry(obj any, key string, value any) any
	// ConsumeArrayElement appends value to arr, returning the (possibly
	// new) array.
	ConsumeArrayElement(arr any, value any) any

	PrimitiveBool(b bool) any
	PrimitiveInt(i int64) any
	PrimitiveFloat(f float64) any
	PrimitiveString(s string) any
	PrimitiveNull() any

	// Wrap converts a raw event primitive (bool, int64, float64, string,
	// or nil, per the event contract in spec §6) into this builder's
	// representation, dispatching to the Primitive* methods above.
	Wrap(raw any) (any, error)

	// Cast decodes an assembled value into target, for the typed-listener
	// adapter (listener.Typed).
	Cast(value any, target any) error
}
