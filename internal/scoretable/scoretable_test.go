package scoretable

import "testing"

func TestGetOrInsert_CreatesOnce(t *testing.T) {
	t.Parallel()

	tb := New(4)
	e1, inserted := tb.GetOrInsert(1, 0.2)
	if !inserted {
		t.Fatal("first GetOrInsert must report inserted=true")
	}
	if e1.Score != 0.2 || e1.MinScore != 0 || e1.Promoted {
		t.Fatalf("unexpected baseline element: %+v", e1)
	}

	e2, inserted := tb.GetOrInsert(1, 0.9)
	if inserted {
		t.Fatal("second GetOrInsert for the same key must report inserted=false")
	}
	if e2 != e1 {
		t.Fatal("GetOrInsert must return a stable pointer for an existing key")
	}
	if e2.Score != 0.2 {
		t.Fatal("GetOrInsert must not overwrite an existing element's Score")
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	tb := New(4)
	tb.GetOrInsert(1, 0.1)

	if !tb.Remove(1) {
		t.Fatal("Remove(1) must report true when the key is present")
	}
	if tb.Remove(1) {
		t.Fatal("Remove(1) must report false the second time")
	}
	if _, ok := tb.Get(1); ok {
		t.Fatal("key must be gone after Remove")
	}
}

func TestEach_VisitsAllLiveElements(t *testing.T) {
	t.Parallel()

	tb := New(8)
	for k := uint64(0); k < 5; k++ {
		tb.GetOrInsert(k, 0.1)
	}
	tb.Remove(2)

	seen := map[uint64]bool{}
	tb.Each(func(e *Element) { seen[e.Key] = true })

	if len(seen) != 4 {
		t.Fatalf("Each visited %d elements, want 4", len(seen))
	}
	if seen[2] {
		t.Fatal("Each visited a removed key")
	}
}

func TestEffectiveScore(t *testing.T) {
	t.Parallel()

	e := &Element{Score: 0.3, MinScore: 0.6}
	if got := e.EffectiveScore(); got != 0.6 {
		t.Fatalf("EffectiveScore() = %v, want 0.6 (MinScore floor)", got)
	}
	e.MinScore = 0.1
	if got := e.EffectiveScore(); got != 0.3 {
		t.Fatalf("EffectiveScore() = %v, want 0.3 (Score dominates)", got)
	}
}
