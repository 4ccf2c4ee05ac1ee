package listener

// Typed wraps a cast function and a user callback expecting T into a plain
// Listener. A thin adapter outside the hot path (spec §9, "type-binding
// listeners"): it runs the value builder's cast-equivalent once the value
// is already fully assembled, then forwards to f.
func Typed[T any](cast func(value any) (T, error), f func(ctx ParsingContext, v T) error) Listener {
	return func(ctx ParsingContext, value any) error {
		v, err := cast(value)
		if err != nil {
			return err
		}
		return f(ctx, v)
	}
}
