// Package jsonlexer feeds jsonevents.Sink from a standard library
// encoding/json token stream. The default SAX backend: no third-party
// token-level JSON parser appears anywhere in the retrieved pack (only
// full-document parsers), so the standard library's own Decoder.Token is
// the correct, justified choice here (see DESIGN.md).
package jsonlexer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/surfkit/jsonsurf/jsonevents"
)

// Feed drains r as JSON, translating encoding/json tokens into sink calls.
func Feed(r io.Reader, sink jsonevents.Sink) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := sink.StartJSON(); err != nil {
		return err
	}
	if err := feedValue(dec, sink); err != nil {
		return err
	}
	return sink.EndJSON()
}

func feedValue(dec *json.Decoder, sink jsonevents.Sink) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	return feedToken(dec, sink, tok)
}

func feedToken(dec *json.Decoder, sink jsonevents.Sink, tok json.Token) error {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return feedObject(dec, sink)
		case '[':
			return feedArray(dec, sink)
		default:
			return fmt.Errorf("jsonlexer: unexpected closing delimiter %v", t)
		}
	case json.Number:
		return feedNumber(sink, t)
	case string:
		return sink.Primitive(t)
	case bool:
		return sink.Primitive(t)
	case nil:
		return sink.Primitive(nil)
	default:
		return fmt.Errorf("jsonlexer: unexpected token %T", tok)
	}
}

func feedObject(dec *json.Decoder, sink jsonevents.Sink) error {
	if err := sink.StartObject(); err != nil {
		return err
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("jsonlexer: expected object key, got %T", keyTok)
		}
		if err := sink.StartObjectEntry(key); err != nil {
			return err
		}
		if err := feedValue(dec, sink); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return err
	}
	return sink.EndObject()
}

func feedArray(dec *json.Decoder, sink jsonevents.Sink) error {
	if err := sink.StartArray(); err != nil {
		return err
	}
	for dec.More() {
		if err := feedValue(dec, sink); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return err
	}
	return sink.EndArray()
}

func feedNumber(sink jsonevents.Sink, n json.Number) error {
	if i, err := n.Int64(); err == nil {
		return sink.Primitive(i)
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("jsonlexer: invalid number %q: %w", n.String(), err)
	}
	return sink.Primitive(f)
}
