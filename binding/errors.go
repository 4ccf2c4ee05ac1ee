package binding

import "github.com/pkg/errors"

// ErrFrozen is returned by Builder.Bind once Build has been called.
var ErrFrozen = errors.New("binding: builder is frozen")
