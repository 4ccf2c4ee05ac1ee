// Package collector implements the Collector and its Dispatcher (spec
// §3/§4.6, C6): the transient sub-tree builders that reconstruct matched
// fragments while the document streams past, and the stack that routes
// events to every currently-active one.
package collector

import (
	"github.com/surfkit/jsonsurf/listener"
	"github.com/surfkit/jsonsurf/position"
	"github.com/surfkit/jsonsurf/provider"
)

type frame struct {
	kind  position.Kind // Object or Array
	value any
	key   string // pending key for an Object frame, set by StartObjectEntry
}

// Collector records one matched subtree. It is registered when a
// structural match fires and deregisters itself the instant its own
// nesting depth returns to zero, at which point it invokes every target
// listener exactly once (spec §4.6).
type Collector struct {
	listeners []listener.Listener
	builder   provider.Builder
	strategy  listener.ErrorStrategy

	// path is the canonical JSONPath captured at match time — fixed for
	// this collector's whole lifetime, since the live position may have
	// already moved past the matched frame by the time this collector
	// completes (see DESIGN.md).
	path string
	key  string
	hasKey bool

	stack []frame
	root   any
	done   bool
}

// New creates a Collector for a structural match. path/key/hasKey capture
// the ParsingContext seen by the match that created it.
func New(listeners []listener.Listener, builder provider.Builder, strategy listener.ErrorStrategy, path, key string, hasKey bool) *Collector {
	return &Collector{
		listeners: listeners,
		builder:   builder,
		strategy:  strategy,
		path:      path,
		key:       key,
		hasKey:    hasKey,
	}
}

// Done reports whether the collector has completed and fired its
// listeners.
func (c *Collector) Done() bool { return c.done }

// Path is the canonical JSONPath this collector was matched at, for
// logging and diagnostics.
func (c *Collector) Path() string { return c.path }

// Prime seeds the collector with its own opening container frame, for the
// case where it was created in direct response to a startObject/startArray
// event (spec §4.5's "initializeCollector"): that event will not reach
// this collector again via the dispatcher's generic broadcast, since the
// collector did not exist yet when the event was forwarded.
func (c *Collector) Prime(kind position.Kind) {
	switch kind {
	case position.Object:
		c.pushObject()
	case position.Array:
		c.pushArray()
	}
}

func (c *Collector) pushObject() {
	c.stack = append(c.stack, frame{kind: position.Object, value: c.builder.CreateObject()})
}

func (c *Collector) pushArray() {
	c.stack = append(c.stack, frame{kind: position.Array, value: c.builder.CreateArray()})
}

// attach folds a completed value into the enclosing frame, or — if the
// stack is empty — establishes it as the collector's root, completing the
// collector.
func (c *Collector) attach(v any) {
	if len(c.stack) == 0 {
		c.root = v
		c.done = true
		return
	}
	top := &c.stack[len(c.stack)-1]
	switch top.kind {
	case position.Object:
		top.value = c.builder.ConsumeObjectEntry(top.value, top.key, v)
		top.key = ""
	case position.Array:
		top.value = c.builder.ConsumeArrayElement(top.value, v)
	}
}

// StartObject forwards a startObject event to this collector.
func (c *Collector) StartObject() {
	if c.done {
		return
	}
	c.pushObject()
}

// EndObject forwards an endObject event, completing the collector if its
// own stack bottoms out.
func (c *Collector) EndObject() {
	if c.done || len(c.stack) == 0 {
		return
	}
	top := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.attach(top.value)
}

// StartObjectEntry records the pending key on this collector's current top
// frame, a no-op unless that frame is an Object frame.
func (c *Collector) StartObjectEntry(key string) {
	if c.done || len(c.stack) == 0 {
		return
	}
	top := &c.stack[len(c.stack)-1]
	if top.kind == position.Object {
		top.key = key
	}
}

// StartArray forwards a startArray event to this collector.
func (c *Collector) StartArray() {
	if c.done {
		return
	}
	c.pushArray()
}

// EndArray forwards an endArray event, completing the collector if its own
// stack bottoms out.
func (c *Collector) EndArray() {
	if c.done || len(c.stack) == 0 {
		return
	}
	top := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.attach(top.value)
}

// Primitive forwards a primitive event to this collector: either it fills
// this collector's own root (if its stack is still empty — the deferred
// entry-match case), or it fills the pending slot of the current top
// frame.
func (c *Collector) Primitive(raw any) error {
	if c.done {
		return nil
	}
	v, err := c.builder.Wrap(raw)
	if err != nil {
		return err
	}
	c.attach(v)
	return nil
}

// Fire invokes every target listener with the assembled root value, in
// registration order, routing failures through the configured
// ErrorStrategy. propagateStop is called if a listener calls StopParsing,
// so the owning context's overall stop flag is set too. Must only be
// called once Done() is true.
func (c *Collector) Fire(propagateStop func(), isStopped func() bool) error {
	ctx := &snapshotContext{path: c.path, key: c.key, hasKey: c.hasKey, propagate: propagateStop, isStopped: isStopped}
	for _, l := range c.listeners {
		if err := l(ctx, c.root); err != nil {
			if handled := c.strategy.HandleListenerFailure(ctx, err); handled != nil {
				return handled
			}
		}
		if ctx.IsStopped() {
			break
		}
	}
	return nil
}

// snapshotContext implements listener.ParsingContext with a path/key
// frozen at match time (spec §4, "position fidelity"): by the time a
// collector fires, the live position may already have moved past the
// frame it matched.
type snapshotContext struct {
	path      string
	key       string
	hasKey    bool
	propagate func()
	isStopped func() bool
}

func (s *snapshotContext) JSONPath() string { return s.path }
func (s *snapshotContext) Key() (string, bool) {
	return s.key, s.hasKey
}
func (s *snapshotContext) StopParsing() {
	if s.propagate != nil {
		s.propagate()
	}
}
func (s *snapshotContext) IsStopped() bool {
	if s.isStopped != nil {
		return s.isStopped()
	}
	return false
}
