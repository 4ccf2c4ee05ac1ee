// Package testdiff provides human-readable diffs for test failure
// messages, grounded on libdiff.DiffString's use of
// github.com/sergi/go-diff/diffmatchpatch in the teacher.
package testdiff

import (
	"encoding/json"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Strings returns a readable character-level diff between a and b.
func Strings(a, b string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	return dmp.DiffPrettyText(diffs)
}

// JSON marshals a and b and diffs their encodings, for failure messages
// comparing assembled collector values.
func JSON(a, b any) string {
	aj, errA := json.MarshalIndent(a, "", "  ")
	bj, errB := json.MarshalIndent(b, "", "  ")
	if errA != nil || errB != nil {
		return "<unable to marshal for diff>"
	}
	return Strings(string(aj), string(bj))
}
