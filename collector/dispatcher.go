package collector

import (
	"github.com/surfkit/jsonsurf/internal/surflog"
	"go.uber.org/zap"
)

// Dispatcher owns the stack of currently-active collectors and broadcasts
// every structural SAX event to all of them (spec §4.6): this is what lets
// sibling matches at different depths coexist, e.g. one collector
// recording $.store.book while another for $..price fires inside it.
//
// Kept as an explicit stack, not recursive dispatch, so a listener that
// calls stopParsing() mid-firing can be observed between invocations
// without unwinding the parser's call stack (spec §9).
type Dispatcher struct {
	collectors []*Collector
}

// Len reports how many collectors are currently active.
func (d *Dispatcher) Len() int { return len(d.collectors) }

// Register appends a newly-matched collector. It starts receiving
// broadcasts on the next event (spec §5: "the collector is registered
// before the enclosing start-event propagates further").
func (d *Dispatcher) Register(c *Collector) {
	d.collectors = append(d.collectors, c)
	surflog.Collect().Debug("collector registered",
		zap.String("path", c.Path()), zap.Int("active", len(d.collectors)))
}

// Reset drops every active collector (used by endJSON teardown).
func (d *Dispatcher) Reset() { d.collectors = nil }

// Hooks lets the dispatcher call back into the owning context without
// importing it: PropagateStop is invoked when a fired listener calls
// StopParsing; IsStopped reports the context-wide stop latch so firing
// can short-circuit mid-collector.
type Hooks struct {
	PropagateStop func()
	IsStopped     func() bool
}

// visit applies apply to every currently-registered collector in
// registration order (outer-first, per spec §4.6), then fires and removes
// any that completed as a result. event names the structural transition
// for debug logging (JSONSURF_DEBUG_COLLECT).
func (d *Dispatcher) visit(event string, hooks Hooks, apply func(*Collector)) error {
	if len(d.collectors) == 0 {
		return nil
	}
	surflog.Collect().Debug("structural transition",
		zap.String("event", event), zap.Int("active", len(d.collectors)))
	live := d.collectors[:0]
	for _, c := range d.collectors {
		if hooks.IsStopped != nil && hooks.IsStopped() {
			live = append(live, c)
			continue
		}
		apply(c)
		if c.Done() {
			surflog.Collect().Debug("collector complete", zap.String("path", c.Path()))
			if err := c.Fire(hooks.PropagateStop, hooks.IsStopped); err != nil {
				return err
			}
			continue
		}
		live = append(live, c)
	}
	d.collectors = live
	return nil
}

func (d *Dispatcher) StartObject(hooks Hooks) error {
	return d.visit("startObject", hooks, func(c *Collector) { c.StartObject() })
}

func (d *Dispatcher) EndObject(hooks Hooks) error {
	return d.visit("endObject", hooks, func(c *Collector) { c.EndObject() })
}

func (d *Dispatcher) StartObjectEntry(key string, hooks Hooks) error {
	return d.visit("startObjectEntry", hooks, func(c *Collector) { c.StartObjectEntry(key) })
}

func (d *Dispatcher) StartArray(hooks Hooks) error {
	return d.visit("startArray", hooks, func(c *Collector) { c.StartArray() })
}

func (d *Dispatcher) EndArray(hooks Hooks) error {
	return d.visit("endArray", hooks, func(c *Collector) { c.EndArray() })
}

func (d *Dispatcher) Primitive(raw any, hooks Hooks) error {
	var werr error
	err := d.visit("primitive", hooks, func(c *Collector) {
		if e := c.Primitive(raw); e != nil && werr == nil {
			werr = e
		}
	})
	if err != nil {
		return err
	}
	return werr
}
