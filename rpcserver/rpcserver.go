// Package rpcserver exposes a jsonsurf.Context over JSON-RPC 2.0 for
// long-lived, out-of-process use, grounded on the teacher's
// cmd/tony-lsp/main.go stdio Stream/Conn wiring — but talking the
// jsonrpc2 transport directly rather than through go.lsp.dev/protocol's
// generated LSP surface, which this service has no use for.
package rpcserver

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"

	"go.lsp.dev/jsonrpc2"

	"github.com/surfkit/jsonsurf"
	"github.com/surfkit/jsonsurf/internal/surflog"
	"github.com/surfkit/jsonsurf/jsonevents/jsonlexer"
	"github.com/surfkit/jsonsurf/listener"
	"github.com/surfkit/jsonsurf/pathcompile"
)

// BindParams requests a binding for a JSONPath-like expression, identified
// by a client-chosen opaque ID used later in match notifications.
type BindParams struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// BindResult acknowledges a bind request.
type BindResult struct {
	OK bool `json:"ok"`
}

// FeedParams carries one JSON document to run through every bound path.
type FeedParams struct {
	JSON string `json:"json"`
}

// FeedResult acknowledges a completed feed.
type FeedResult struct {
	OK bool `json:"ok"`
}

// MatchParams is sent as a "match" notification each time a bound path
// fires while processing a feed.
type MatchParams struct {
	ID    string `json:"id"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// stdioReadWriteCloser adapts separate reader/writer halves (e.g.
// os.Stdin/os.Stdout, or the two ends of a net.Conn) into the
// io.ReadWriteCloser jsonrpc2.NewStream wants.
type stdioReadWriteCloser struct {
	read  io.Reader
	write io.Writer
}

func (s *stdioReadWriteCloser) Read(p []byte) (int, error)  { return s.read.Read(p) }
func (s *stdioReadWriteCloser) Write(p []byte) (int, error) { return s.write.Write(p) }
func (s *stdioReadWriteCloser) Close() error                { return nil }

// Server binds a set of JSONPath expressions, freezes them into a
// jsonsurf.Context on the first feed, and streams match notifications
// back over a jsonrpc2.Conn as documents are fed through it.
type Server struct {
	mu      sync.Mutex
	builder *jsonsurf.Builder
	surf    *jsonsurf.Context
	conn    jsonrpc2.Conn
}

// NewServer returns a Server ready to accept "bind" requests.
func NewServer() *Server {
	return &Server{builder: jsonsurf.NewBuilder()}
}

// Serve runs the server over rw until the connection closes or ctx is
// cancelled, mirroring the teacher's main()'s NewStream/NewConn/Go/Done
// sequence.
func (s *Server) Serve(ctx context.Context, rw io.ReadWriter) error {
	stream := jsonrpc2.NewStream(&stdioReadWriteCloser{read: rw, write: rw})
	conn := jsonrpc2.NewConn(stream)
	s.conn = conn
	conn.Go(ctx, s.handle)
	<-conn.Done()
	return conn.Err()
}

func (s *Server) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	switch req.Method() {
	case "bind":
		var p BindParams
		if err := json.Unmarshal(req.Params(), &p); err != nil {
			return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.ParseError, err.Error()))
		}
		result, err := s.bind(p)
		return reply(ctx, result, err)
	case "feed":
		var p FeedParams
		if err := json.Unmarshal(req.Params(), &p); err != nil {
			return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.ParseError, err.Error()))
		}
		result, err := s.feed(ctx, p)
		return reply(ctx, result, err)
	default:
		return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.MethodNotFound, "rpcserver: unknown method "+req.Method()))
	}
}

// bind compiles path and registers a listener that notifies the client
// with a "match" notification, named by id, each time it fires. Binding
// after the first feed fails with jsonsurf.ErrBuilderFrozen, surfaced as
// a JSON-RPC error.
func (s *Server) bind(p BindParams) (*BindResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expr, err := pathcompile.Compile(p.Path)
	if err != nil {
		return nil, err
	}
	id := p.ID
	notify := func(ctx2 listener.ParsingContext, v any) error {
		if s.conn == nil {
			return nil
		}
		return s.conn.Notify(context.Background(), "match", &MatchParams{
			ID:    id,
			Path:  ctx2.JSONPath(),
			Value: v,
		})
	}
	if _, err := s.builder.Bind(expr, notify); err != nil {
		return nil, err
	}
	surflog.Binding().Sugar().Debugf("rpcserver: bound %s as %s", p.Path, id)
	return &BindResult{OK: true}, nil
}

// feed freezes the builder on first use, then streams one document's
// events through the resulting Context, firing whatever "match"
// notifications the bound paths produce along the way.
func (s *Server) feed(ctx context.Context, p FeedParams) (*FeedResult, error) {
	s.mu.Lock()
	if s.surf == nil {
		s.surf = s.builder.Build()
	}
	surf := s.surf
	s.mu.Unlock()

	if err := jsonlexer.Feed(strings.NewReader(p.JSON), surf); err != nil {
		return nil, err
	}
	return &FeedResult{OK: true}, nil
}
