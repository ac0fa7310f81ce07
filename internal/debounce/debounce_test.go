package debounce

import (
	"math/rand"
	"testing"
)

// TestS4LeadingEdge mirrors spec §8 scenario S4: the cell emits the
// leading edge immediately and does not emit again on stabilization
// because prior (Up) != current (Down).
func TestS4LeadingEdge(t *testing.T) {
	c := New()
	samples := []bool{ // U,U,D,U,D,U,D,D,D,D,D,D,D,D,D,D,D,D,D,D
		false, false, true, false, true, false, true, true, true, true,
		true, true, true, true, true, true, true, true, true, true,
	}
	const T = uint64(10)
	var edges []Edge
	for tick, s := range samples {
		if e := c.Sample(uint64(tick), s, T); e != NoEdge {
			edges = append(edges, e)
		}
	}
	if len(edges) != 1 || edges[0] != EdgeDown {
		t.Fatalf("expected exactly one EdgeDown, got %v", edges)
	}
	if !c.Pressed() {
		t.Fatal("expected cell to settle pressed")
	}
}

// TestS5CancelledEdge mirrors spec §8 scenario S5: the leading edge is
// emitted, then cancelled by an Up emitted once the cell resettles to Up
// (the prior stable value) for T ticks.
func TestS5CancelledEdge(t *testing.T) {
	c := New()
	samples := []bool{ // U,U,D,U,U,U,U,U,U,U,U,U,U,U,U
		false, false, true, false, false, false, false, false, false,
		false, false, false, false, false, false,
	}
	const T = uint64(10)
	var edges []Edge
	for tick, s := range samples {
		if e := c.Sample(uint64(tick), s, T); e != NoEdge {
			edges = append(edges, e)
		}
	}
	if len(edges) != 2 || edges[0] != EdgeDown || edges[1] != EdgeUp {
		t.Fatalf("expected EdgeDown then EdgeUp, got %v", edges)
	}
	if c.Pressed() {
		t.Fatal("expected cell to settle released")
	}
}

// TestStableNoOscillation verifies a key that never bounces emits exactly
// the one edge implied by its samples (Up to Down) and nothing on settling.
func TestStableNoOscillation(t *testing.T) {
	c := New()
	const T = uint64(5)
	if e := c.Sample(0, false, T); e != NoEdge {
		t.Fatalf("initial Up sample should not edge, got %v", e)
	}
	if e := c.Sample(1, true, T); e != EdgeDown {
		t.Fatalf("expected EdgeDown, got %v", e)
	}
	// Hold down past T with no further edges.
	for tick := uint64(2); tick < 2+T; tick++ {
		if e := c.Sample(tick, true, T); e != NoEdge {
			t.Fatalf("unexpected edge %v while holding down", e)
		}
	}
}

// TestEdgeCountNeverExceedsSampleTransitions is the property in spec §8
// item 3: emitted edges never exceed the number of raw sample
// transitions, for randomized sequences.
func TestEdgeCountNeverExceedsSampleTransitions(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	for trial := 0; trial < 200; trial++ {
		c := New()
		prevSample := false
		transitions := 0
		emitted := 0
		const T = uint64(7)
		for tick := uint64(0); tick < 300; tick++ {
			s := rng.Intn(3) == 0 // biased toward holding
			if s != prevSample {
				transitions++
			}
			prevSample = s
			if e := c.Sample(tick, s, T); e != NoEdge {
				emitted++
			}
		}
		if emitted > transitions {
			t.Fatalf("trial %d: emitted %d edges from %d transitions", trial, emitted, transitions)
		}
	}
}

// TestSettleAfterWindowMatchesInvariant4 checks spec §8 item 4: after a
// suffix of >= T consecutive equal samples M starting from Stable(N), the
// cell is Stable(M) and net edges equal {} if M==N else {N->M}.
func TestSettleAfterWindowMatchesInvariant4(t *testing.T) {
	const T = uint64(10)
	for _, initialPressed := range []bool{false, true} {
		for _, target := range []bool{true, false} {
			c := New()
			if initialPressed {
				// drive the cell to Stable(Down) first.
				for tick := uint64(0); tick <= T; tick++ {
					c.Sample(tick, true, T)
				}
			}

			base := uint64(1000)
			edgeCount := 0
			var got Edge
			for i := uint64(0); i < T+1; i++ {
				if e := c.Sample(base+i, target, T); e != NoEdge {
					edgeCount++
					got = e
				}
			}

			if c.Pressed() != target {
				t.Fatalf("initialPressed=%v target=%v: expected settle to %v, got %v", initialPressed, target, target, c.Pressed())
			}

			if target == initialPressed {
				if edgeCount != 0 {
					t.Fatalf("initialPressed=%v target=%v: expected no net edge, got %d edges", initialPressed, target, edgeCount)
				}
				continue
			}
			wantEdge := EdgeUp
			if target {
				wantEdge = EdgeDown
			}
			if edgeCount != 1 || got != wantEdge {
				t.Fatalf("initialPressed=%v target=%v: expected exactly one %v edge, got %d edges (last=%v)", initialPressed, target, wantEdge, edgeCount, got)
			}
		}
	}
}
