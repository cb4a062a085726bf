// Package diff implements structural comparison of two Value trees.
//
// The result is an ordered list of change records addressed by canonical
// $-rooted paths ("$", "$.key", "$.items[0]"). Traversal order is part of
// the contract: object comparison visits the first document's keys in their
// stored order (covering removals and shared-key recursion) and then the
// second document's new keys in their stored order (covering additions), so
// the same pair of documents always yields the same record sequence.
package diff

import (
	"strconv"

	"github.com/jaathavan18/jot/internal/models"
)

// ChangeType classifies one detected difference.
type ChangeType string

const (
	// Added means the path exists only in the second document.
	Added ChangeType = "added"
	// Removed means the path exists only in the first document.
	Removed ChangeType = "removed"
	// Changed means both documents hold the same variant with different
	// values at the path.
	Changed ChangeType = "changed"
	// TypeChanged means the documents hold different variants at the path.
	TypeChanged ChangeType = "type_changed"
)

// A Change is one detected difference between two documents. Only Path and
// Type are always present; the snapshot fields depend on the change type.
type Change struct {
	Path string     `json:"path"`
	Type ChangeType `json:"type"`

	// From and To name the variants involved in a type change.
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`

	// OldValue and NewValue snapshot both sides of a changed or
	// type-changed position.
	OldValue models.Value `json:"old_value,omitempty"`
	NewValue models.Value `json:"new_value,omitempty"`

	// Value snapshots an added or removed subtree.
	Value models.Value `json:"value,omitempty"`
}

// Diff compares first and second and returns the ordered change list. Equal
// documents yield an empty (nil) list. Diff never fails for well-formed,
// limit-compliant inputs, neither of which is mutated; it allocates only
// the output slice.
func Diff(first, second models.Value) []Change {
	var out []Change
	compare("$", first, second, &out)
	return out
}

func compare(path string, a, b models.Value, out *[]Change) {
	if a.Kind() != b.Kind() {
		*out = append(*out, Change{
			Path:     path,
			Type:     TypeChanged,
			From:     a.Kind().String(),
			To:       b.Kind().String(),
			OldValue: a,
			NewValue: b,
		})
		return
	}

	switch av := a.(type) {
	case models.Object:
		bv := b.(models.Object)
		for _, m := range av {
			childPath := path + "." + m.Key
			if other, ok := bv.Find(m.Key); ok {
				compare(childPath, m.Value, other, out)
			} else {
				*out = append(*out, Change{Path: childPath, Type: Removed, Value: m.Value})
			}
		}
		for _, m := range bv {
			if !av.Has(m.Key) {
				*out = append(*out, Change{Path: path + "." + m.Key, Type: Added, Value: m.Value})
			}
		}

	case models.Array:
		bv := b.(models.Array)
		n := len(av)
		if len(bv) < n {
			n = len(bv)
		}
		for i := 0; i < n; i++ {
			compare(path+"["+strconv.Itoa(i)+"]", av[i], bv[i], out)
		}
		for i := n; i < len(av); i++ {
			*out = append(*out, Change{Path: path + "[" + strconv.Itoa(i) + "]", Type: Removed, Value: av[i]})
		}
		for i := n; i < len(bv); i++ {
			*out = append(*out, Change{Path: path + "[" + strconv.Itoa(i) + "]", Type: Added, Value: bv[i]})
		}

	default:
		if !models.Equal(a, b) {
			*out = append(*out, Change{Path: path, Type: Changed, OldValue: a, NewValue: b})
		}
	}
}
