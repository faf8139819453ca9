// Package ranking implements the promotion/demotion pass a usage tracker
// runs once per epoch: sort the live score table, promote the top band,
// evict the tail, and leave a retention band in between to damp churn.
package ranking

import (
	"math"
	"sort"

	"github.com/IvanBrykalov/usagetracker/internal/scoretable"
)

// Params bundles the thresholds and callbacks Run needs. All fields are
// read-only for the duration of one Run call.
type Params struct {
	PromoteThresh   uint32
	PromoteCapacity uint32
	RemoveThresh    float64
	MinPromoteScore float64
	PromoteFunc     func(key uint64, arg any)
	PromoteArg      any
	DemoteFunc      func(key uint64, arg any)
	DemoteArg       any
}

// Run sorts every live element in t by score (ties broken by key
// identity within the RemoveThresh hysteresis band), then walks the
// sorted order applying three bands:
//
//   - [0, PromoteThresh): promote if not already promoted and the
//     element clears MinPromoteScore.
//   - [PromoteThresh, PromoteCapacity): retention band, left untouched.
//   - [PromoteCapacity, ...): demote (if currently promoted) and remove
//     from the table.
//
// Run is a no-op on an empty table.
func Run(t *scoretable.Table, p Params) {
	if t.Len() == 0 {
		return
	}

	elems := make([]*scoretable.Element, 0, t.Len())
	t.Each(func(e *scoretable.Element) { elems = append(elems, e) })

	sort.Slice(elems, func(i, j int) bool { return less(elems[i], elems[j], p.RemoveThresh) })

	for i, e := range elems {
		switch {
		case uint32(i) < p.PromoteThresh && e.EffectiveScore() > p.MinPromoteScore:
			if !e.Promoted {
				e.Promoted = true
				if p.PromoteFunc != nil {
					p.PromoteFunc(e.Key, p.PromoteArg)
				}
			}
		case uint32(i) >= p.PromoteCapacity:
			if e.Promoted {
				e.Promoted = false
				if p.DemoteFunc != nil {
					p.DemoteFunc(e.Key, p.DemoteArg)
				}
			}
			t.Remove(e.Key)
		}
	}
}

// less is the hysteresis-aware total order: scores within removeThresh
// of each other are treated as tied and broken by key identity, which
// keeps the sort deterministic without relying on sort.Slice stability.
func less(a, b *scoretable.Element, removeThresh float64) bool {
	sa, sb := a.EffectiveScore(), b.EffectiveScore()
	diff := sa - sb
	if math.IsNaN(diff) {
		diff = 0
	}
	if math.Abs(diff) < removeThresh {
		return a.Key < b.Key
	}
	return sa > sb
}
