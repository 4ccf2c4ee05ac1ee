// Package yamllexer feeds jsonevents.Sink from a parsed
// github.com/goccy/go-yaml AST. YAML is a JSON superset, so walking its
// tree and emitting the same event stream as jsonlexer proves the
// matching core depends only on the event contract, not on JSON's own
// grammar.
package yamllexer

import (
	"fmt"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"github.com/surfkit/jsonsurf/jsonevents"
)

// Feed parses src as YAML and walks every document in it, emitting SAX
// events to sink.
func Feed(src []byte, sink jsonevents.Sink) error {
	file, err := parser.ParseBytes(src, 0)
	if err != nil {
		return err
	}
	if err := sink.StartJSON(); err != nil {
		return err
	}
	for _, doc := range file.Docs {
		if doc.Body == nil {
			continue
		}
		if err := feedNode(doc.Body, sink); err != nil {
			return err
		}
	}
	return sink.EndJSON()
}

func feedNode(n ast.Node, sink jsonevents.Sink) error {
	switch v := n.(type) {
	case *ast.MappingNode:
		if err := sink.StartObject(); err != nil {
			return err
		}
		for _, entry := range v.Values {
			if err := feedMappingValue(entry, sink); err != nil {
				return err
			}
		}
		return sink.EndObject()
	case *ast.MappingValueNode:
		if err := sink.StartObject(); err != nil {
			return err
		}
		if err := feedMappingValue(v, sink); err != nil {
			return err
		}
		return sink.EndObject()
	case *ast.SequenceNode:
		if err := sink.StartArray(); err != nil {
			return err
		}
		for _, item := range v.Values {
			if err := feedNode(item, sink); err != nil {
				return err
			}
		}
		return sink.EndArray()
	case *ast.StringNode:
		return sink.Primitive(v.Value)
	case *ast.IntegerNode:
		switch iv := v.Value.(type) {
		case int64:
			return sink.Primitive(iv)
		case uint64:
			return sink.Primitive(int64(iv))
		default:
			return fmt.Errorf("yamllexer: unexpected integer representation %T", v.Value)
		}
	case *ast.FloatNode:
		return sink.Primitive(v.Value)
	case *ast.BoolNode:
		return sink.Primitive(v.Value)
	case *ast.NullNode:
		return sink.Primitive(nil)
	default:
		return fmt.Errorf("yamllexer: unsupported node %T", n)
	}
}

func feedMappingValue(v *ast.MappingValueNode, sink jsonevents.Sink) error {
	key, ok := v.Key.(*ast.StringNode)
	if !ok {
		return fmt.Errorf("yamllexer: non-string map key %T", v.Key)
	}
	if err := sink.StartObjectEntry(key.Value); err != nil {
		return err
	}
	return feedNode(v.Value, sink)
}
