package provider

import (
	"encoding/json"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/pkg/errors"
)

// Equal reports whether a and b encode to the same JSON value, used to
// state the round-trip testable property (spec §8, property 7) without
// hand-rolling a deep-equal over arbitrary value-builder output.
func Equal(a, b any) (bool, error) {
	diff, err := Diff(a, b)
	if err != nil {
		return false, err
	}
	return string(diff) == "{}", nil
}

// Diff returns the JSON merge patch (RFC 7396) that turns a into b, via
// evanphx/json-patch. An empty patch ("{}") means a and b are equal.
func Diff(a, b any) ([]byte, error) {
	aj, err := json.Marshal(a)
	if err != nil {
		return nil, errors.Wrap(err, "provider: marshal a")
	}
	bj, err := json.Marshal(b)
	if err != nil {
		return nil, errors.Wrap(err, "provider: marshal b")
	}
	patch, err := jsonpatch.CreateMergePatch(aj, bj)
	if err != nil {
		return nil, errors.Wrap(err, "provider: create merge patch")
	}
	return patch, nil
}
