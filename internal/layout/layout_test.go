package layout

import (
	"testing"

	"quickdraw/internal/action"
	"quickdraw/internal/keycode"
)

func coord(r, c uint8) action.Coord { return action.Coord{Row: r, Col: c} }

// TestS1BasicPressRelease mirrors spec §8 scenario S1.
func TestS1BasicPressRelease(t *testing.T) {
	tbl, err := NewTable(1, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	tbl.Set(0, 0, 0, action.KC(keycode.A))
	e := NewEngine(tbl, 0)

	e.Press(coord(0, 0), 0)
	if ks := e.Keycodes(); len(ks) != 1 || ks[0] != keycode.A {
		t.Fatalf("expected {A}, got %v", ks)
	}
	e.Release(coord(0, 0), 1)
	if ks := e.Keycodes(); len(ks) != 0 {
		t.Fatalf("expected {}, got %v", ks)
	}
}

// TestS2MultiKeycodeShiftedPunctuation mirrors spec §8 scenario S2.
func TestS2MultiKeycodeShiftedPunctuation(t *testing.T) {
	tbl, _ := NewTable(1, 1, 1)
	tbl.Set(0, 0, 0, action.Multi(keycode.LShift, keycode.Kb1))
	e := NewEngine(tbl, 0)

	e.Press(coord(0, 0), 0)
	ks := e.Keycodes()
	if len(ks) != 2 || ks[0] != keycode.LShift || ks[1] != keycode.Kb1 {
		t.Fatalf("expected {LShift, Kb1}, got %v", ks)
	}
	e.Release(coord(0, 0), 1)
	if ks := e.Keycodes(); len(ks) != 0 {
		t.Fatalf("expected {}, got %v", ks)
	}
}

// TestS3LayerModifierSum mirrors spec §8 scenario S3.
func TestS3LayerModifierSum(t *testing.T) {
	tbl, _ := NewTable(4, 1, 3)
	tbl.Set(0, 0, 0, action.Layer(1))
	tbl.Set(0, 0, 1, action.Layer(2))
	tbl.Set(1, 0, 1, action.Trans())       // with layer 1 active, (0,1) falls through to Layer(2) on the default layer
	tbl.Set(3, 0, 2, action.KC(keycode.A)) // "X" stand-in

	e := NewEngine(tbl, 0)

	e.Press(coord(0, 0), 0) // layer -> 1
	e.Press(coord(0, 1), 1) // layer -> 3
	e.Press(coord(0, 2), 2) // KeyCode(X) at layer 3

	if got := e.CurrentLayer(); got != 3 {
		t.Fatalf("expected current layer 3, got %d", got)
	}
	ks := e.Keycodes()
	if len(ks) != 1 || ks[0] != keycode.A {
		t.Fatalf("expected {X}, got %v", ks)
	}

	e.Release(coord(0, 1), 3)
	if ks := e.Keycodes(); len(ks) != 1 {
		t.Fatalf("expected only X remains, got %v", ks)
	}

	e.Release(coord(0, 0), 4)
	e.Release(coord(0, 2), 4)
	if ks := e.Keycodes(); len(ks) != 0 {
		t.Fatalf("expected {} after releasing all, got %v", ks)
	}
}

// TestInvariant6TransparentChaining mirrors spec §8 invariant 6.
func TestInvariant6TransparentChaining(t *testing.T) {
	// Force current layer to 1 via a layer modifier elsewhere.
	tbl2, _ := NewTable(2, 1, 2)
	tbl2.Set(0, 0, 1, action.Layer(1))
	tbl2.Set(0, 0, 0, action.KC(keycode.A))
	tbl2.Set(1, 0, 0, action.Trans())
	e2 := NewEngine(tbl2, 0)
	e2.Press(coord(0, 1), 0) // layer -> 1
	e2.Press(coord(0, 0), 1) // Trans at layer 1 retries at default (0) -> KeyCode(A)
	if ks := e2.Keycodes(); len(ks) != 1 || ks[0] != keycode.A {
		t.Fatalf("expected transparent chaining to yield A, got %v", ks)
	}

	// Both layers Trans -> NoOp.
	tbl3, _ := NewTable(2, 1, 1)
	tbl3.Set(0, 0, 0, action.Trans())
	tbl3.Set(1, 0, 0, action.Trans())
	e3 := NewEngine(tbl3, 1)
	e3.Press(coord(0, 0), 0)
	if ks := e3.Keycodes(); len(ks) != 0 {
		t.Fatalf("expected NoOp when both layers are Trans, got %v", ks)
	}
}

// TestInvariant1CurrentLayerStaysInRange is spec §8 invariant 1.
func TestInvariant1CurrentLayerStaysInRange(t *testing.T) {
	tbl, _ := NewTable(3, 1, 2)
	tbl.Set(0, 0, 0, action.Layer(100))  // would overflow
	tbl.Set(0, 0, 1, action.Layer(-100)) // would underflow
	e := NewEngine(tbl, 0)

	e.Press(coord(0, 0), 0)
	if l := e.CurrentLayer(); l < 0 || l >= tbl.NumLayers() {
		t.Fatalf("layer out of range: %d", l)
	}
	e.Press(coord(0, 1), 1)
	if l := e.CurrentLayer(); l < 0 || l >= tbl.NumLayers() {
		t.Fatalf("layer out of range: %d", l)
	}
}

// TestInvariant2ReleaseDropsAllStatesAtCoord is spec §8 invariant 2.
func TestInvariant2ReleaseDropsAllStatesAtCoord(t *testing.T) {
	tbl, _ := NewTable(1, 1, 1)
	tbl.Set(0, 0, 0, action.Seq(action.KC(keycode.LShift), action.KC(keycode.A)))
	e := NewEngine(tbl, 0)

	e.Press(coord(0, 0), 0)
	if len(e.Keycodes()) != 2 {
		t.Fatalf("expected both keycodes pushed, got %v", e.Keycodes())
	}
	e.Release(coord(0, 0), 1)
	if len(e.Keycodes()) != 0 {
		t.Fatalf("expected release to drop every state at the coord, got %v", e.Keycodes())
	}
}

func TestDefaultLayerOutOfRangeIgnored(t *testing.T) {
	tbl, _ := NewTable(2, 1, 1)
	tbl.Set(0, 0, 0, action.DefaultLayer(5))
	e := NewEngine(tbl, 0)
	e.Press(coord(0, 0), 0)
	if e.DefaultLayer() != 0 {
		t.Fatalf("expected out-of-range DefaultLayer to be ignored, got %d", e.DefaultLayer())
	}
}

func TestStateStackOverflowSilentlyDropsPush(t *testing.T) {
	tbl, _ := NewTable(1, 1, 1)
	tbl.Set(0, 0, 0, action.KC(keycode.A))
	e := NewEngine(tbl, 0)
	for i := 0; i < MaxActiveStates+10; i++ {
		e.push(action.ActiveState{Kind: action.StateNormalKey, Coord: coord(0, 0), KeyCode: keycode.A})
	}
	if len(e.states) != MaxActiveStates {
		t.Fatalf("expected push to cap at %d, got %d", MaxActiveStates, len(e.states))
	}
}

func TestHoldTapDefaultPolicyTapOnEarlyRelease(t *testing.T) {
	tbl, _ := NewTable(1, 1, 1)
	tbl.Set(0, 0, 0, action.Action{
		Kind: action.KindHoldTap,
		HoldTap: &action.HoldTap{
			Hold:    action.Layer(1),
			Tap:     action.KC(keycode.A),
			Timeout: 50,
			Policy:  action.Default,
		},
	})
	e := NewEngine(tbl, 0)

	e.Press(coord(0, 0), 0)
	if len(e.Keycodes()) != 0 {
		t.Fatal("hold-tap pending should not yet resolve to any keycode")
	}
	// Released well before timeout: resolves to Tap, which must actually
	// register a keycode (the physical tap happened) rather than vanish.
	e.Release(coord(0, 0), 10)
	if ks := e.Keycodes(); len(ks) != 1 || ks[0] != keycode.A {
		t.Fatalf("expected tap to register {A}, got %v", ks)
	}
	// The tap is momentary: the next Tick flushes it even though its
	// timeout (50) hasn't elapsed, since the key is already up.
	e.Tick(11)
	if ks := e.Keycodes(); len(ks) != 0 {
		t.Fatalf("expected tap pulse to clear after one tick, got %v", ks)
	}
}

func TestHoldTapDefaultPolicyHoldAfterTimeout(t *testing.T) {
	tbl, _ := NewTable(2, 1, 1)
	tbl.Set(0, 0, 0, action.Action{
		Kind: action.KindHoldTap,
		HoldTap: &action.HoldTap{
			Hold:    action.Layer(1),
			Tap:     action.KC(keycode.A),
			Timeout: 50,
			Policy:  action.Default,
		},
	})
	e := NewEngine(tbl, 0)

	e.Press(coord(0, 0), 0)
	e.Tick(60) // past timeout
	if got := e.CurrentLayer(); got != 1 {
		t.Fatalf("expected hold to resolve the layer modifier, got layer %d", got)
	}
	e.Release(coord(0, 0), 61)
	if got := e.CurrentLayer(); got != 0 {
		t.Fatalf("expected layer to drop back to default after release, got %d", got)
	}
}
