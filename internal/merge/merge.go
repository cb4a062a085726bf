// Package merge implements recursive deep merging of two Value trees.
package merge

import "github.com/jaathavan18/jot/internal/models"

// Merge combines base and override into a new tree. It is total: every pair
// of well-formed values merges without error.
//
// When both sides are objects, the result holds the union of their keys:
// base's keys first in base's order (shared keys merged recursively), then
// override-only keys appended in override's order. In every other case the
// override value wins outright, including when the variants differ, and
// arrays always replace wholesale rather than merging element-wise.
//
// Neither input is mutated. Containers that diverge are rebuilt; unchanged
// subtrees may be shared between input and output, which is unobservable
// because both are immutable.
func Merge(base, override models.Value) models.Value {
	bo, ok := base.(models.Object)
	if !ok {
		return override
	}
	oo, ok := override.(models.Object)
	if !ok {
		return override
	}

	out := make(models.Object, 0, len(bo)+len(oo))
	for _, m := range bo {
		if ov, found := oo.Find(m.Key); found {
			out = append(out, models.Field(m.Key, Merge(m.Value, ov)))
		} else {
			out = append(out, m)
		}
	}
	for _, m := range oo {
		if !bo.Has(m.Key) {
			out = append(out, m)
		}
	}
	return out
}
