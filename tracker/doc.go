// Package tracker implements an online top-K usage tracker: it ingests a
// stream of Touch calls, maintains an exponentially-decayed popularity
// score per key behind a bounded LRU admission filter, and invokes
// promote/demote callbacks as top-K membership changes across epochs.
//
// A Tracker is single-threaded: all methods on one instance must be
// called from a single logical owner, and callbacks must not re-enter
// the same instance. Running many independent Tracker instances
// concurrently, each on its own goroutine, is fine and requires no
// synchronization since instances share no state.
//
// Basic usage
//
//	promoted, demoted := map[uint64]bool{}, map[uint64]bool{}
//	tr, err := tracker.New(tracker.Options{
//	    PromoteCapacity: 1000,
//	    PromoteThresh:   100,
//	    RemoveThresh:    0.02,
//	    Decay:           tracker.Decay{M: 0.9, C: 0.1},
//	    MinPromoteScore: 0.8,
//	    PromoteFunc:     func(k uint64, _ any) { promoted[k] = true },
//	    DemoteFunc:      func(k uint64, _ any) { delete(promoted, k); demoted[k] = true },
//	})
//	if err != nil {
//	    // handle invalid Options
//	}
//	defer tr.Close()
//
//	tr.Touch(42)
//	tr.Touch(42) // repeated touches within an epoch coalesce
//	tr.Progress() // advance one epoch; fires PromoteFunc/DemoteFunc as membership changes
//
//	score, err := tr.GetScore(42)
//
// With a min-score floor
//
//	// Seed key 7 as always-active even if it is never touched, e.g.
//	// because a peer reported it as hot.
//	tr.SetMinScore(7, 0.9)
//	tr.Progress()
//	score, _ := tr.GetScore(7) // >= 0.9
//
// Exporting metrics (example Prometheus adapter)
//
//	m := prom.New(nil, "tracker", "demo", nil) // implements tracker.Metrics
//	tr, _ := tracker.New(tracker.Options{
//	    PromoteCapacity: 1000,
//	    PromoteThresh:   100,
//	    Decay:           tracker.Decay{M: 0.9, C: 0.1},
//	    PromoteFunc:     func(uint64, any) {},
//	    DemoteFunc:      func(uint64, any) {},
//	    Metrics:         m,
//	})
//
// Design
//
//   - Single-threaded: one Tracker instance is owned by exactly one
//     logical actor; no operation blocks and no method is safe to call
//     concurrently with another method on the same instance. Many
//     independent instances may run concurrently with no synchronization
//     since they share no state.
//
//   - Admission: Touch records a key in a fixed-capacity LRU filter
//     (internal/admit) that de-duplicates the touch stream within one
//     epoch. The filter never allocates past its initial arena.
//
//   - Scoring: Progress decays every live element's score by Decay.M,
//     then adds Decay.C for keys touched this epoch. A continuously
//     touched key's score converges to C/(1-M).
//
//   - Ranking: once per Progress, internal/ranking sorts the live score
//     table (ties within RemoveThresh broken by key identity) and
//     applies three bands: promote the top PromoteThresh, leave a
//     retention band up to PromoteCapacity untouched, and demote+evict
//     everything past it.
//
//   - Min-score floor: SetMinScore imposes an external floor on a key's
//     effective score without touching its decayed Score; GetScore and
//     ranking both see max(Score, MinScore).
//
//   - Metrics: Options.Metrics receives Progressed/Promoted/Demoted/Size
//     signals. By default NoopMetrics is used; plug a Prometheus adapter
//     to export metrics (see metrics/prom).
package tracker
