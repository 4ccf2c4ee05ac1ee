package jsonsurf

import (
	"github.com/pkg/errors"

	"github.com/surfkit/jsonsurf/listener"
)

// Sentinel error kinds surfaced by the matching core (spec §7). Created
// with github.com/pkg/errors; failures are tagged with a kind through
// listener.WrapSentinel, so callers can errors.Is their way to the
// underlying kind and still reach the cause. ErrListenerFailure and
// ErrProviderFailure are the same values the listener package's
// ErrorStrategy implementations wrap failures in, re-exported here so
// callers never need to import listener just to compare against them.
var (
	// ErrBuilderFrozen is returned by Builder.Bind (and BindTyped) once
	// Build() has been called.
	ErrBuilderFrozen = errors.New("jsonsurf: builder is frozen")

	// ErrUnsupportedPathOperator is returned when the matcher encounters a
	// path-operator variant it does not recognize.
	ErrUnsupportedPathOperator = errors.New("jsonsurf: unsupported path operator")

	// ErrListenerFailure wraps an error raised by a user Listener. Never
	// propagated directly to the parser; routed through the configured
	// ErrorStrategy.
	ErrListenerFailure = listener.ErrListenerFailure

	// ErrProviderFailure wraps a failure handed to the ErrorStrategy's
	// HandleProviderFailure, where the context routes binding-lookup
	// errors. A failed BindTyped cast is returned by the listener and so
	// is handled as a listener failure; a primitive the value builder
	// cannot wrap inside a collector is returned from the event handler
	// without passing through the strategy.
	ErrProviderFailure = listener.ErrProviderFailure
)
