// Package jsonsurf is a streaming JSONPath matcher: given a JSON document
// delivered as SAX-style events and a set of pre-registered JSONPath
// expressions bound to listeners, it dispatches matching subtrees (or
// primitive values) to those listeners while the document is being
// parsed. No full in-memory tree is ever built.
package jsonsurf

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/surfkit/jsonsurf/binding"
	"github.com/surfkit/jsonsurf/collector"
	"github.com/surfkit/jsonsurf/internal/surflog"
	"github.com/surfkit/jsonsurf/listener"
	"github.com/surfkit/jsonsurf/pathop"
	"github.com/surfkit/jsonsurf/position"
	"github.com/surfkit/jsonsurf/provider"
)

// Context is the central state machine (C5, spec §4.5): it consumes SAX
// events, advances the live position, queries the binding index, and
// hands matched sub-trees to the collector dispatcher. A Context is
// single-use: build it once via Builder, feed it exactly one parser pass,
// then discard it. It is not safe for concurrent use.
type Context struct {
	index    *binding.Index
	provider provider.Builder
	strategy listener.ErrorStrategy

	skipOverlap bool

	pos        *position.Position
	dispatcher *collector.Dispatcher
	stopped    bool
}

// StartJSON resets position and collector state for a new parse.
func (c *Context) StartJSON() error {
	c.pos = position.New()
	c.dispatcher = &collector.Dispatcher{}
	c.stopped = false
	return nil
}

// EndJSON releases position and collector state (spec §5, resource
// lifecycle).
func (c *Context) EndJSON() error {
	c.pos = nil
	c.dispatcher = nil
	return nil
}

// IsStopped reports whether a listener has called StopParsing.
func (c *Context) IsStopped() bool { return c.stopped }

// StopParsing latches the stop flag. All subsequent events become no-ops
// except teardown (spec §5).
func (c *Context) StopParsing() { c.stopped = true }

// JSONPath is the canonical dot/bracket form of the live position.
func (c *Context) JSONPath() string {
	if c.pos == nil {
		return "$"
	}
	return c.pos.String()
}

// Key is the innermost object key, if the innermost frame is OBJECT.
func (c *Context) Key() (string, bool) {
	if c.pos == nil {
		return "", false
	}
	return c.pos.GetKey()
}

func (c *Context) hooks() collector.Hooks {
	return collector.Hooks{
		PropagateStop: c.StopParsing,
		IsStopped:     c.IsStopped,
	}
}

// doMatchPrimitive runs doMatching's primitive branch: every matched
// listener is invoked synchronously with primitiveValue (spec §4.5 step
// 3, "onPrimitive").
func (c *Context) doMatchPrimitive(primitiveValue any) error {
	if c.skipOverlap && c.dispatcher.Len() > 0 {
		return nil
	}
	matched, err := c.index.Lookup(c.pos, nil)
	if err != nil {
		return c.wrapMatchError(err)
	}
	for _, b := range matched {
		for _, l := range b.Listeners {
			if c.stopped {
				return nil
			}
			if err := l(c, primitiveValue); err != nil {
				if herr := c.strategy.HandleListenerFailure(c, err); herr != nil {
					return herr
				}
			}
		}
	}
	return nil
}

// doMatchStructural runs doMatching's structural branch: a new Collector
// is built (not yet registered) from every matched binding's listeners.
// If structural matches exist, it returns the new Collector; the caller
// registers it on the dispatcher only once this event's broadcast to the
// *existing* collector stack has already run, so the new collector is
// never handed the very same event twice (spec §5: "the collector is
// registered before the enclosing start-event propagates further").
func (c *Context) doMatchStructural() (*collector.Collector, error) {
	if c.skipOverlap && c.dispatcher.Len() > 0 {
		return nil, nil
	}
	matched, err := c.index.Lookup(c.pos, nil)
	if err != nil {
		return nil, c.wrapMatchError(err)
	}
	if len(matched) == 0 {
		return nil, nil
	}

	path := c.JSONPath()
	key, hasKey := c.Key()

	var listeners []listener.Listener
	for _, b := range matched {
		listeners = append(listeners, b.Listeners...)
	}
	coll := collector.New(listeners, c.provider, c.strategy, path, key, hasKey)
	surflog.Match().Debug("structural match found", zap.String("path", path), zap.Int("listeners", len(listeners)))
	return coll, nil
}

// wrapMatchError tags a binding.Index.Lookup failure with the right
// sentinel kind (spec §7) before handing it to the configured
// ErrorStrategy: an unrecognized path-operator variant surfaced through
// pathop.ErrUnsupportedPositionalMatch is ErrUnsupportedPathOperator, not
// a value-builder problem.
func (c *Context) wrapMatchError(err error) error {
	var unsupported *pathop.ErrUnsupportedPositionalMatch
	if errors.As(err, &unsupported) {
		err = listener.WrapSentinel(ErrUnsupportedPathOperator, err)
	}
	return c.strategy.HandleProviderFailure(c, err)
}

// StartObject handles a document object opening.
func (c *Context) StartObject() error {
	if c.stopped {
		return nil
	}
	parent := c.pos.PeekKind()
	var pending *collector.Collector
	if parent == position.Array || parent == position.Root {
		if parent == position.Array {
			c.pos.AdvanceArrayIndex()
		}
		var err error
		if pending, err = c.doMatchStructural(); err != nil {
			return err
		}
	}
	if err := c.dispatcher.StartObject(c.hooks()); err != nil {
		return err
	}
	if pending != nil {
		pending.Prime(position.Object)
		c.dispatcher.Register(pending)
	}
	return nil
}

// EndObject handles a document object closing.
func (c *Context) EndObject() error {
	if c.stopped {
		return nil
	}
	c.pos.PopIfKind(position.Object)
	return c.dispatcher.EndObject(c.hooks())
}

// StartObjectEntry handles a named object entry's key.
func (c *Context) StartObjectEntry(key string) error {
	if c.stopped {
		return nil
	}
	c.pos.PushObjectEntry(key)
	if err := c.dispatcher.StartObjectEntry(key, c.hooks()); err != nil {
		return err
	}
	pending, err := c.doMatchStructural()
	if err != nil {
		return err
	}
	if pending != nil {
		// The entry's value hasn't started yet: register empty and let the
		// next event (its first) establish this collector's root.
		c.dispatcher.Register(pending)
	}
	return nil
}

// StartArray handles a document array opening.
func (c *Context) StartArray() error {
	if c.stopped {
		return nil
	}
	parent := c.pos.PeekKind()
	var pending *collector.Collector
	if parent == position.Array || parent == position.Root {
		if parent == position.Array {
			c.pos.AdvanceArrayIndex()
		}
		var err error
		if pending, err = c.doMatchStructural(); err != nil {
			return err
		}
	}
	c.pos.PushArray()
	if err := c.dispatcher.StartArray(c.hooks()); err != nil {
		return err
	}
	if pending != nil {
		pending.Prime(position.Array)
		c.dispatcher.Register(pending)
	}
	return nil
}

// EndArray handles a document array closing. Two position pops happen:
// the ARRAY frame, then the enclosing OBJECT entry frame if one exists
// (spec §9's "two-pop rule").
func (c *Context) EndArray() error {
	if c.stopped {
		return nil
	}
	c.pos.PopIfKind(position.Array)
	c.pos.PopIfKind(position.Object)
	return c.dispatcher.EndArray(c.hooks())
}

// Primitive handles a scalar value (bool, int64, float64, string, or nil).
func (c *Context) Primitive(value any) error {
	if c.stopped {
		return nil
	}
	parent := c.pos.PeekKind()
	switch parent {
	case position.Array:
		c.pos.AdvanceArrayIndex()
		if err := c.doMatchPrimitive(value); err != nil {
			return err
		}
	case position.Root:
		if err := c.doMatchPrimitive(value); err != nil {
			return err
		}
	case position.Object:
		c.pos.PopIfKind(position.Object)
	}
	return c.dispatcher.Primitive(value, c.hooks())
}
