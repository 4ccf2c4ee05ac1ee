package pathcompile

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/surfkit/jsonsurf/pathop"
)

// keywords is a read-mostly, build-time registry of bracket keywords the
// compiler recognizes beyond integers/quoted-fields/slices — grounded on
// eval.Register's sync.RWMutex-guarded global Symbol table, reused here
// for the compiler's operator-name table rather than per-document state
// (spec.md §9's concurrency note explicitly scopes that reuse to the
// compiler, never the hot matching path).
var (
	keywordsMu sync.RWMutex
	keywords   = map[string]func() pathop.Operator{}
)

// ErrKeywordExists mirrors eval.ErrSymbolExists: registering the same
// bracket keyword twice is a programmer error, not a runtime condition.
var ErrKeywordExists = errors.New("pathcompile: keyword already registered")

// RegisterKeyword adds a named bracket keyword (e.g. "*") resolving to a
// fixed pathop.Operator, for extension by callers that want additional
// bracket forms without forking the parser.
func RegisterKeyword(name string, op func() pathop.Operator) error {
	keywordsMu.Lock()
	defer keywordsMu.Unlock()
	if _, exists := keywords[name]; exists {
		return fmt.Errorf("%s: %w", name, ErrKeywordExists)
	}
	keywords[name] = op
	return nil
}

func lookupKeyword(name string) (func() pathop.Operator, bool) {
	keywordsMu.RLock()
	defer keywordsMu.RUnlock()
	op, ok := keywords[name]
	return op, ok
}

func init() {
	_ = RegisterKeyword("*", func() pathop.Operator { return pathop.NewWildcard() })
}
