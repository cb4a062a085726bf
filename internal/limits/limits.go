// Package limits enforces the two document safety bounds: maximum raw input
// size and maximum nesting depth. Both checks run before any recursive
// algorithm touches a tree.
package limits

import (
	"fmt"

	"github.com/jaathavan18/jot/internal/errors"
	"github.com/jaathavan18/jot/internal/models"
)

const (
	// MaxInputSize is the largest raw document accepted, in bytes.
	MaxInputSize = 1 << 20 // 1 MiB

	// MaxDepth is the deepest nesting accepted. Depth counts container
	// boundaries crossed from the root: a scalar document has depth 0,
	// {"a": 1} has depth 1, and {"a": [1]} has depth 2. A document whose
	// deepest leaf crosses exactly MaxDepth containers passes.
	MaxDepth = 50
)

// CheckSize validates a raw input length against MaxInputSize.
func CheckSize(n int) error {
	if n > MaxInputSize {
		return errors.NewLimitsError(
			fmt.Sprintf("input is %d bytes, maximum is %d", n, MaxInputSize),
			errors.ErrInputTooLarge,
		)
	}
	return nil
}

// Depth returns the nesting depth of v: the number of Array/Object
// boundaries crossed from the root to the deepest leaf.
func Depth(v models.Value) int {
	switch t := v.(type) {
	case models.Array:
		max := 0
		for _, elt := range t {
			if d := Depth(elt); d > max {
				max = d
			}
		}
		return max + 1
	case models.Object:
		max := 0
		for _, m := range t {
			if d := Depth(m.Value); d > max {
				max = d
			}
		}
		return max + 1
	default:
		return 0
	}
}

// CheckDepth validates the nesting depth of an already-parsed value against
// MaxDepth. The parser enforces the same bound during decoding, so this is
// only needed for trees constructed some other way.
func CheckDepth(v models.Value) error {
	if d := Depth(v); d > MaxDepth {
		return errors.NewLimitsError(
			fmt.Sprintf("document is nested %d levels deep, maximum is %d", d, MaxDepth),
			errors.ErrNestingTooDeep,
		)
	}
	return nil
}
