package ranking

import (
	"testing"

	"github.com/IvanBrykalov/usagetracker/internal/scoretable"
)

func seed(t *scoretable.Table, scores map[uint64]float64) {
	for k, s := range scores {
		e, _ := t.GetOrInsert(k, 0)
		e.Score = s
	}
}

func TestRun_EmptyTableIsNoop(t *testing.T) {
	t.Parallel()

	tb := scoretable.New(4)
	called := false
	Run(tb, Params{PromoteThresh: 2, PromoteCapacity: 4, PromoteFunc: func(uint64, any) { called = true }})
	if called {
		t.Fatal("Run must not invoke callbacks on an empty table")
	}
}

func TestRun_PromotesTopN(t *testing.T) {
	t.Parallel()

	tb := scoretable.New(8)
	seed(tb, map[uint64]float64{1: 0.9, 2: 0.8, 3: 0.7, 4: 0.1})

	var promoted []uint64
	Run(tb, Params{
		PromoteThresh:   2,
		PromoteCapacity: 8,
		RemoveThresh:    0,
		PromoteFunc:     func(k uint64, _ any) { promoted = append(promoted, k) },
	})

	if len(promoted) != 2 {
		t.Fatalf("promoted = %v, want 2 keys", promoted)
	}
	want := map[uint64]bool{1: true, 2: true}
	for _, k := range promoted {
		if !want[k] {
			t.Fatalf("unexpected promotion of key %d", k)
		}
	}
}

func TestRun_EvictsPastCapacityAndDemotes(t *testing.T) {
	t.Parallel()

	tb := scoretable.New(8)
	// Key 1 is promoted but ranks last, so it falls past PromoteCapacity;
	// key 4 ranks first and is the only survivor.
	seed(tb, map[uint64]float64{1: 0.1, 2: 0.8, 3: 0.7, 4: 0.9})
	e1, _ := tb.Get(1)
	e1.Promoted = true

	var demoted []uint64
	Run(tb, Params{
		PromoteThresh:   0, // nobody newly promoted this round
		PromoteCapacity: 1,
		RemoveThresh:    0,
		DemoteFunc:      func(k uint64, _ any) { demoted = append(demoted, k) },
	})

	if len(demoted) != 1 || demoted[0] != 1 {
		t.Fatalf("demoted = %v, want [1]", demoted)
	}
	if tb.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (ranks past PromoteCapacity removed)", tb.Len())
	}
	if _, ok := tb.Get(1); ok {
		t.Fatal("demoted/evicted element must be removed from the table")
	}
}

func TestRun_RetentionBandLeavesElementsUntouched(t *testing.T) {
	t.Parallel()

	tb := scoretable.New(8)
	seed(tb, map[uint64]float64{1: 0.9, 2: 0.8, 3: 0.7})

	Run(tb, Params{PromoteThresh: 1, PromoteCapacity: 3, RemoveThresh: 0})

	if tb.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (retention band keeps all three)", tb.Len())
	}
	e2, _ := tb.Get(2)
	if e2.Promoted {
		t.Fatal("element ranked in the retention band must not be promoted")
	}
}

func TestRun_MinPromoteScoreGuardsPromotion(t *testing.T) {
	t.Parallel()

	tb := scoretable.New(4)
	seed(tb, map[uint64]float64{1: 0.5})

	var promoted bool
	Run(tb, Params{
		PromoteThresh:   4,
		PromoteCapacity: 4,
		MinPromoteScore: 0.8,
		PromoteFunc:     func(uint64, any) { promoted = true },
	})
	if promoted {
		t.Fatal("element below MinPromoteScore must not be promoted")
	}
}

func TestRun_HysteresisTiebreaksByKey(t *testing.T) {
	t.Parallel()

	tb := scoretable.New(4)
	// Scores 0.50 and 0.51 differ by less than RemoveThresh=0.2, so they
	// are treated as tied and ordered by key identity (smaller key first).
	seed(tb, map[uint64]float64{10: 0.50, 20: 0.51})

	var promoted []uint64
	Run(tb, Params{
		PromoteThresh:   1,
		PromoteCapacity: 4,
		RemoveThresh:    0.2,
		PromoteFunc:     func(k uint64, _ any) { promoted = append(promoted, k) },
	})

	if len(promoted) != 1 || promoted[0] != 10 {
		t.Fatalf("promoted = %v, want [10] (tiebreak favors the smaller key)", promoted)
	}
}

func TestRun_AlreadyPromotedIsNotRenotified(t *testing.T) {
	t.Parallel()

	tb := scoretable.New(4)
	seed(tb, map[uint64]float64{1: 0.9})
	e1, _ := tb.Get(1)
	e1.Promoted = true

	calls := 0
	Run(tb, Params{PromoteThresh: 1, PromoteCapacity: 4, PromoteFunc: func(uint64, any) { calls++ }})
	if calls != 0 {
		t.Fatalf("PromoteFunc called %d times, want 0 for an already-promoted element", calls)
	}
}
