package jsonsurf

import (
	"github.com/surfkit/jsonsurf/binding"
	"github.com/surfkit/jsonsurf/internal/surflog"
	"github.com/surfkit/jsonsurf/listener"
	"github.com/surfkit/jsonsurf/pathexpr"
	"github.com/surfkit/jsonsurf/provider"
)

// Builder configures a Context before a single parser pass. Bind (and
// BindTyped) after Build() fails with ErrBuilderFrozen, mirroring the
// teacher's own frozen-after-build functional-option builders
// (gomap.FromOption, parse.ParseOption). The option setters
// (SkipOverlappedPath, WithJSONProvider, WithErrorStrategy) have no error
// result and do not fail after Build().
type Builder struct {
	bindings    *binding.Builder
	provider    provider.Builder
	strategy    listener.ErrorStrategy
	skipOverlap bool
	frozen      bool
}

// NewBuilder returns a Builder defaulting to the Native value builder and
// ContinueStrategy error handling. The default strategy logs through
// surflog.Collect(), so a listener/provider failure is visible with
// JSONSURF_DEBUG_COLLECT set rather than vanishing silently.
func NewBuilder() *Builder {
	return &Builder{
		bindings: binding.NewBuilder(),
		provider: provider.Native{},
		strategy: listener.ContinueStrategy{Logger: surflog.Collect()},
	}
}

// Bind registers an expression with one or more listeners.
func (b *Builder) Bind(expr *pathexpr.Expression, listeners ...listener.Listener) (*Builder, error) {
	if b.frozen {
		return b, ErrBuilderFrozen
	}
	if err := b.bindings.Bind(expr, listeners...); err != nil {
		return b, err
	}
	return b, nil
}

// BindTyped registers an expression with listeners that expect value T,
// casting the assembled/primitive value via the configured provider
// before each listener runs (spec §6, "bind(expression, type,
// typedListeners…)").
func BindTyped[T any](b *Builder, expr *pathexpr.Expression, listeners ...func(ctx listener.ParsingContext, v T) error) (*Builder, error) {
	wrapped := make([]listener.Listener, len(listeners))
	for i, f := range listeners {
		f := f
		wrapped[i] = listener.Typed(func(value any) (T, error) {
			var out T
			err := b.provider.Cast(value, &out)
			return out, err
		}, f)
	}
	return b.Bind(expr, wrapped...)
}

// SkipOverlappedPath suppresses nested matches while an outer match is
// recording. Deliberately an over-approximation (spec §9): it checks only
// whether the collector stack is non-empty, never true containment.
func (b *Builder) SkipOverlappedPath() *Builder {
	b.skipOverlap = true
	return b
}

// WithJSONProvider sets the value builder used to assemble matched
// subtrees.
func (b *Builder) WithJSONProvider(p provider.Builder) *Builder {
	b.provider = p
	return b
}

// WithErrorStrategy sets the listener/provider failure policy.
func (b *Builder) WithErrorStrategy(s listener.ErrorStrategy) *Builder {
	b.strategy = s
	return b
}

// Build freezes the Builder and returns a ready-to-use Context.
func (b *Builder) Build() *Context {
	b.frozen = true
	return &Context{
		index:       b.bindings.Build(),
		provider:    b.provider,
		strategy:    b.strategy,
		skipOverlap: b.skipOverlap,
	}
}
