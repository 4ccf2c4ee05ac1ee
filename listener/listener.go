// Package listener defines the listener contract invoked on a match (spec
// §6), the ParsingContext surface exposed during invocation, and the
// pluggable error-handling strategy (spec §7).
package listener

// ParsingContext is what a Listener observes while it runs: the live (or,
// for a just-completed collector, snapshotted) position, and the means to
// stop the parse early.
type ParsingContext interface {
	// JSONPath is the canonical dot/bracket path of the matched value.
	JSONPath() string
	// Key is the innermost object key, if any.
	Key() (string, bool)
	StopParsing()
	IsStopped() bool
}

// Listener receives one matched value: either a primitive, or a value
// assembled by a Collector. value's concrete type is whatever the
// configured value builder produces.
type Listener func(ctx ParsingContext, value any) error

// ErrorStrategy decides what happens when a Listener or value-builder
// operation fails (spec §7). A non-nil return from either method is
// treated as fatal and propagates out of the SAX event handler that
// triggered it; returning nil means the failure was handled.
type ErrorStrategy interface {
	HandleListenerFailure(ctx ParsingContext, err error) error
	HandleProviderFailure(ctx ParsingContext, err error) error
}
