// Package surflog provides the env-var-gated structured logger shared by
// the matching core. Silent by default; set JSONSURF_DEBUG_MATCH,
// JSONSURF_DEBUG_COLLECT, or JSONSURF_DEBUG_BINDING to get a development
// logger for that concern. Mirrors the teacher's env-var-per-concern debug
// flags, backed by a real zap.Logger instead of ad hoc fmt.Fprintf calls.
package surflog

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	once sync.Once

	match    *zap.Logger
	collect  *zap.Logger
	binding  *zap.Logger
)

func build(enabled bool, name string) *zap.Logger {
	if !enabled {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l.Named(name)
}

func init() {
	once.Do(func() {
		match = build(os.Getenv("JSONSURF_DEBUG_MATCH") != "", "match")
		collect = build(os.Getenv("JSONSURF_DEBUG_COLLECT") != "", "collect")
		binding = build(os.Getenv("JSONSURF_DEBUG_BINDING") != "", "binding")
	})
}

// Match returns the logger for path-matching events (position transitions,
// doMatching decisions).
func Match() *zap.Logger { return match }

// Collect returns the logger for collector lifecycle events (registration,
// completion, listener/provider failures).
func Collect() *zap.Logger { return collect }

// Binding returns the logger for binding-index construction and lookup.
func Binding() *zap.Logger { return binding }
