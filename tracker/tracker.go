package tracker

import (
	"time"

	"github.com/IvanBrykalov/usagetracker/internal/admit"
	"github.com/IvanBrykalov/usagetracker/internal/ranking"
	"github.com/IvanBrykalov/usagetracker/internal/scoretable"
)

// Tracker is the public facade wiring the admission filter, score table,
// and ranking engine into one online top-K usage tracker.
type Tracker struct {
	opt    Options
	admit  *admit.Filter
	table  *scoretable.Table
	closed bool
}

// New validates opt and builds a Tracker. On validation failure it
// returns the error and leaves no allocated resources.
func New(opt Options) (*Tracker, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}

	f, err := admit.New(opt.PromoteCapacity)
	if err != nil {
		return nil, newError(KindInvalidParam, err.Error())
	}

	// Pre-reserve at 2x PromoteCapacity: the transient peak inside Progress
	// is bounded by PromoteCapacity + touches_this_epoch, which is itself
	// capped at PromoteCapacity (the admission filter's own capacity), so
	// the table never needs to grow past this reservation.
	tb := scoretable.New(2 * int(opt.PromoteCapacity))

	return &Tracker{opt: opt, admit: f, table: tb}, nil
}

// Close releases the admission filter and score table. It does not
// invoke DemoteFunc for still-promoted entries. Idempotent.
func (t *Tracker) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	t.admit = nil
	t.table = nil
	return nil
}

// Touch records that key was accessed this epoch. O(1), hot path. A
// Touch on a closed Tracker is silently ignored.
func (t *Tracker) Touch(key uint64) {
	if t.closed {
		return
	}
	t.admit.Touch(key)
}

// Progress advances one epoch: decays every live score, admits this
// epoch's touched keys at the baseline contribution, runs the ranking
// engine, resets the admission filter, and reports metrics.
func (t *Tracker) Progress() {
	if t.closed {
		return
	}
	start := t.now()

	c := t.opt.Decay.C
	m := t.opt.Decay.M
	t.table.Each(func(e *scoretable.Element) {
		e.Score *= m
		if t.admit.Contains(e.Key) {
			e.Score += c
		}
	})

	t.admit.Each(func(key uint64) {
		t.table.GetOrInsert(key, c)
	})

	if t.table.Len() > 0 {
		ranking.Run(t.table, ranking.Params{
			PromoteThresh:   t.opt.PromoteThresh,
			PromoteCapacity: t.opt.PromoteCapacity,
			RemoveThresh:    t.opt.RemoveThresh,
			MinPromoteScore: t.opt.MinPromoteScore,
			PromoteFunc:     t.countingPromote,
			PromoteArg:      t.opt.PromoteArg,
			DemoteFunc:      t.countingDemote,
			DemoteArg:       t.opt.DemoteArg,
		})
	}

	t.admit.Reset()

	t.opt.Metrics.Progressed(t.now() - start)
	t.opt.Metrics.Size(t.table.Len(), t.admit.Len())
}

func (t *Tracker) countingPromote(key uint64, arg any) {
	t.opt.Metrics.Promoted()
	t.opt.PromoteFunc(key, arg)
}

func (t *Tracker) countingDemote(key uint64, arg any) {
	t.opt.Metrics.Demoted()
	t.opt.DemoteFunc(key, arg)
}

// GetScore returns max(Score, MinScore) for key, or ErrNoSuchKey if
// key is not present.
func (t *Tracker) GetScore(key uint64) (float64, error) {
	if t.closed {
		return 0, ErrClosed
	}
	e, ok := t.table.Get(key)
	if !ok {
		return 0, ErrNoSuchKey
	}
	return e.EffectiveScore(), nil
}

// SetMinScore inserts-or-updates key's element and sets its MinScore
// floor. It does not touch Score, and does not re-evaluate promotion
// immediately; the new floor is observed at the next Progress.
func (t *Tracker) SetMinScore(key uint64, s float64) {
	if t.closed {
		return
	}
	e, _ := t.table.GetOrInsert(key, t.opt.Decay.C)
	e.MinScore = s
}

// Remove drops key's element with no callback. Returns ErrNoSuchKey
// if key was not present.
func (t *Tracker) Remove(key uint64) error {
	if t.closed {
		return ErrClosed
	}
	if !t.table.Remove(key) {
		return ErrNoSuchKey
	}
	return nil
}

// Len reports the number of live elements in the score table.
func (t *Tracker) Len() int {
	if t.closed {
		return 0
	}
	return t.table.Len()
}

func (t *Tracker) now() float64 {
	if t.opt.Clock != nil {
		return t.opt.Clock.NowSeconds()
	}
	return float64(time.Now().UnixNano()) / 1e9
}
