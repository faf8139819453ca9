package tracker

// Decay holds the exponential-moving-average parameters applied to every
// live element on each Progress call: Score <- Score*M, plus C if the
// key was touched this epoch.
type Decay struct {
	// M is the per-epoch multiplicative decay factor, in [0, 1].
	M float64
	// C is the per-epoch additive touch contribution, in [0, 1].
	C float64
}

// Metrics exposes tracker-level observability hooks. A NoopMetrics
// implementation is provided and used by default.
type Metrics interface {
	// Progressed records one completed Progress call and its wall-clock
	// duration.
	Progressed(d float64)
	// Promoted records one key becoming promoted.
	Promoted()
	// Demoted records one promoted key being demoted.
	Demoted()
	// Size reports the live score-table size and admission-filter size
	// immediately after a Progress call.
	Size(tableLen, admitLen int)
}

// Clock provides time in seconds since an arbitrary epoch; used only to
// time Progress calls for metrics, never for decay math (decay is
// epoch-counted, not wall-clock-based).
type Clock interface{ NowSeconds() float64 }

// Options configures a Tracker. There is no useful zero value: Validate
// rejects a zero Options (PromoteCapacity must be > 0, callbacks must be
// set), so every Tracker is built through New.
type Options struct {
	// PromoteCapacity is the maximum number of live elements in the score
	// table; also the admission filter's capacity. Must be > 0.
	PromoteCapacity uint32

	// PromoteThresh is how many top-ranked keys are promoted each epoch.
	// Must be <= PromoteCapacity.
	PromoteThresh uint32

	// RemoveThresh is the hysteresis band: elements whose effective
	// scores differ by less than this are treated as tied and ordered
	// by key identity instead. Must be in [0, 1].
	RemoveThresh float64

	// Decay controls the per-epoch score update. Both fields must be in
	// [0, 1]. C <= 1-M keeps scores bounded in [0,1]; Validate does not
	// enforce this and accepts any M and C that are each in [0, 1].
	Decay Decay

	// MinPromoteScore is the minimum effective score required for
	// promotion. Recommended default 0.8. Must be in [0, 1].
	MinPromoteScore float64

	// PromoteFunc is invoked when a key transitions to promoted. Required.
	PromoteFunc func(key uint64, arg any)
	// PromoteArg is passed verbatim to PromoteFunc.
	PromoteArg any

	// DemoteFunc is invoked exactly once when a promoted key ranks at or
	// past PromoteCapacity and is evicted. A promoted key that falls into
	// the retention band stays promoted and is not demoted. Required.
	DemoteFunc func(key uint64, arg any)
	// DemoteArg is passed verbatim to DemoteFunc.
	DemoteArg any

	// Metrics receives observability events. Nil => NoopMetrics{}.
	Metrics Metrics

	// Clock overrides the time source used to time Progress for metrics.
	// Nil => wall clock.
	Clock Clock
}

// Validate checks every constraint on Options and returns a
// *TrackerError{Kind: KindInvalidParam} describing the first violation
// found. It does not mutate o.
func (o *Options) Validate() error {
	if o.PromoteCapacity == 0 {
		return newError(KindInvalidParam, "PromoteCapacity must be > 0")
	}
	if o.PromoteThresh > o.PromoteCapacity {
		return newError(KindInvalidParam, "PromoteThresh must be <= PromoteCapacity")
	}
	if !inUnit(o.RemoveThresh) {
		return newError(KindInvalidParam, "RemoveThresh must be in [0, 1]")
	}
	if !inUnit(o.Decay.M) {
		return newError(KindInvalidParam, "Decay.M must be in [0, 1]")
	}
	if !inUnit(o.Decay.C) {
		return newError(KindInvalidParam, "Decay.C must be in [0, 1]")
	}
	if !inUnit(o.MinPromoteScore) {
		return newError(KindInvalidParam, "MinPromoteScore must be in [0, 1]")
	}
	if o.PromoteFunc == nil {
		return newError(KindInvalidParam, "PromoteFunc must not be nil")
	}
	if o.DemoteFunc == nil {
		return newError(KindInvalidParam, "DemoteFunc must not be nil")
	}
	return nil
}

func inUnit(v float64) bool { return v >= 0 && v <= 1 }
