package listener

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Sentinel error kinds FatalStrategy wraps a failure in when it re-raises
// it (spec §7); the strategies themselves receive the unwrapped error.
// Declared here, alongside the strategies that raise them, and re-exported
// by the root jsonsurf package for errors.Is use by callers.
var (
	// ErrListenerFailure wraps an error raised by a user Listener.
	ErrListenerFailure = errors.New("listener: listener failure")

	// ErrProviderFailure wraps a failure handed to HandleProviderFailure
	// (the context routes binding-lookup errors there). A failed typed
	// cast is returned by the Typed listener and reaches
	// HandleListenerFailure instead.
	ErrProviderFailure = errors.New("listener: provider failure")
)

// WrapSentinel reports cause under sentinel, so errors.Is matches either
// one: an unsupported-operator error wrapped as ErrProviderFailure by
// FatalStrategy must still satisfy errors.Is(err, ErrUnsupportedPathOperator)
// for whichever sentinel the match-time wrapping already attached.
func WrapSentinel(sentinel, cause error) error {
	return &sentinelError{sentinel: sentinel, cause: cause}
}

type sentinelError struct {
	sentinel error
	cause    error
}

func (e *sentinelError) Error() string        { return e.cause.Error() + ": " + e.sentinel.Error() }
func (e *sentinelError) Unwrap() error        { return e.cause }
func (e *sentinelError) Is(target error) bool { return target == e.sentinel }

// ContinueStrategy logs the failure and lets parsing continue. The default
// strategy; NewBuilder wires its Logger to surflog.Collect() so a failure
// is visible with JSONSURF_DEBUG_COLLECT set instead of vanishing silently.
type ContinueStrategy struct {
	Logger *zap.Logger
}

func (s ContinueStrategy) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s ContinueStrategy) HandleListenerFailure(ctx ParsingContext, err error) error {
	s.log().Warn("listener failure", zap.String("path", ctx.JSONPath()), zap.Error(err))
	return nil
}

func (s ContinueStrategy) HandleProviderFailure(ctx ParsingContext, err error) error {
	s.log().Warn("provider failure", zap.String("path", ctx.JSONPath()), zap.Error(err))
	return nil
}

// StopStrategy halts parsing (as if the listener itself had called
// StopParsing) but does not propagate the error to the parser.
type StopStrategy struct{}

func (StopStrategy) HandleListenerFailure(ctx ParsingContext, err error) error {
	ctx.StopParsing()
	return nil
}

func (StopStrategy) HandleProviderFailure(ctx ParsingContext, err error) error {
	ctx.StopParsing()
	return nil
}

// FatalStrategy re-raises the failure so it propagates out of the SAX
// event handler that triggered it.
type FatalStrategy struct{}

func (FatalStrategy) HandleListenerFailure(ctx ParsingContext, err error) error {
	return WrapSentinel(ErrListenerFailure, err)
}

func (FatalStrategy) HandleProviderFailure(ctx ParsingContext, err error) error {
	return WrapSentinel(ErrProviderFailure, err)
}
