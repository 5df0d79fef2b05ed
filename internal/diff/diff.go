// Package diff partitions directory listings by name so the syncer can decide
// what to copy, what to remove and what to inspect further.
package diff

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// Result splits two name listings into the entries present only on the source
// side, only on the replica side, and on both. Slices are sorted so callers
// apply actions in a stable order.
type Result struct {
	OnlySource  []string
	OnlyReplica []string
	Both        []string
}

// Names compares entry names from the same directory level of the source and
// replica trees. Comparison is exact; names differing in case are distinct
// entries.
func Names(source, replica []string) Result {
	src := mapset.NewSet(source...)
	dst := mapset.NewSet(replica...)

	res := Result{
		OnlySource:  src.Difference(dst).ToSlice(),
		OnlyReplica: dst.Difference(src).ToSlice(),
		Both:        src.Intersect(dst).ToSlice(),
	}

	slices.Sort(res.OnlySource)
	slices.Sort(res.OnlyReplica)
	slices.Sort(res.Both)

	return res
}
