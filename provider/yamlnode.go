package provider

import (
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/token"
	"github.com/pkg/errors"
)

// YAMLNode builds goccy/go-yaml AST nodes instead of plain Go values,
// letting a matched subtree be re-serialized as YAML without a second
// parse. Demonstrates the pluggable value-builder contract alongside
// jsonevents/yamllexer's pluggable lexer.
type YAMLNode struct{}

func (YAMLNode) CreateObject() any { return ast.Mapping(nil, false) }
func (YAMLNode) CreateArray() any  { return ast.Sequence(nil, false) }

func (YAMLNode) IsObject(v any) bool { _, ok := v.(*ast.MappingNode); return ok }
func (YAMLNode) IsArray(v any) bool  { _, ok := v.(*ast.SequenceNode); return ok }

func (YAMLNode) ConsumeObjectEntry(obj any, key string, value any) any {
	m := obj.(*ast.MappingNode)
	keyNode := ast.String(token.New(key, key, nil))
	valNode, _ := value.(ast.Node)
	m.Values = append(m.Values, ast.MappingValue(nil, keyNode, valNode))
	return m
}

func (YAMLNode) ConsumeArrayElement(arr any, value any) any {
	s := arr.(*ast.SequenceNode)
	valNode, _ := value.(ast.Node)
	s.Values = append(s.Values, valNode)
	return s
}

func (YAMLNode) PrimitiveBool(b bool) any {
	return ast.Bool(token.New(strconv.FormatBool(b), strconv.FormatBool(b), nil))
}

func (YAMLNode) PrimitiveInt(i int64) any {
	s := strconv.FormatInt(i, 10)
	return ast.Integer(token.New(s, s, nil))
}

func (YAMLNode) PrimitiveFloat(f float64) any {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	return ast.Float(token.New(s, s, nil))
}

func (YAMLNode) PrimitiveString(s string) any {
	return ast.String(token.New(s, s, nil))
}

func (YAMLNode) PrimitiveNull() any {
	return ast.Null(token.New("null", "null", nil))
}

func (y YAMLNode) Wrap(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return y.PrimitiveNull(), nil
	case bool:
		return y.PrimitiveBool(v), nil
	case int64:
		return y.PrimitiveInt(v), nil
	case float64:
		return y.PrimitiveFloat(v), nil
	case string:
		return y.PrimitiveString(v), nil
	default:
		return nil, errors.Errorf("provider: unsupported primitive type %T", raw)
	}
}

// Cast decodes the assembled AST node into target by round-tripping it
// through goccy/go-yaml's node-aware decoder.
func (YAMLNode) Cast(value any, target any) error {
	n, ok := value.(ast.Node)
	if !ok {
		return errors.Errorf("provider: YAMLNode.Cast: value is %T, not ast.Node", value)
	}
	if err := yaml.NodeToValue(n, target); err != nil {
		return errors.Wrap(err, "provider: YAMLNode.Cast")
	}
	return nil
}
