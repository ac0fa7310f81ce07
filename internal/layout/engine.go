package layout

import (
	"quickdraw/internal/action"
	"quickdraw/internal/keycode"
)

// MaxActiveStates bounds the ActiveState stack (spec §7 "State-stack
// overflow"): pushes past this are silently dropped, matching source
// behavior, rather than treated as a fatal error (§9 open question,
// resolved in DESIGN.md).
const MaxActiveStates = 64

// Engine is the layout/layer engine (spec §4.5): it resolves Events
// against a Table, drives the ActiveState stack, and exposes the current
// layer and active keycode set.
//
// Grounded on the teacher's orchestrator-wires-subcomponents shape
// (internal/emulator/emulator.go) and its small dependency-injected
// collaborator interfaces (internal/cpu/cpu.go's MemoryInterface):
// CustomEvent plays that collaborator role here.
type Engine struct {
	table        *Table
	defaultLayer int
	states       []action.ActiveState

	// CustomEvent reports a Custom action's press/release to the host
	// (spec §4.5 "report to the host a CustomEvent::Press(&t)"). It may
	// be left nil if no layer uses Custom.
	CustomEvent func(coord action.Coord, value interface{}, press bool)

	// customActive tracks which coords currently have an active Custom
	// action, for matching the release event. Custom actions push
	// nothing onto the bounded ActiveState stack (§4.5), so this is
	// tracked separately and never counts against MaxActiveStates.
	customActive map[action.Coord]interface{}
}

// NewEngine builds an engine over table, starting at defaultLayer. An
// out-of-range defaultLayer is clamped into [0, NumLayers).
func NewEngine(table *Table, defaultLayer int) *Engine {
	if defaultLayer < 0 {
		defaultLayer = 0
	}
	if n := table.NumLayers(); defaultLayer >= n {
		defaultLayer = n - 1
	}
	return &Engine{
		table:        table,
		defaultLayer: defaultLayer,
		customActive: make(map[action.Coord]interface{}),
	}
}

// DefaultLayer returns the engine's current default layer index.
func (e *Engine) DefaultLayer() int { return e.defaultLayer }

// CurrentLayer is default_layer + sum of active LayerModifier values,
// saturated into [0, NumLayers) (spec §4.5, §9 "order-independent sum").
func (e *Engine) CurrentLayer() int {
	sum := e.defaultLayer
	for _, s := range e.states {
		if s.Kind == action.StateLayerModifier {
			sum += s.Value
		}
	}
	n := e.table.NumLayers()
	if sum < 0 {
		return 0
	}
	if sum >= n {
		return n - 1
	}
	return sum
}

// resolve implements the §4.5 lookup-on-press rule, including the
// transparent-chaining retry at the default layer.
func (e *Engine) resolve(layer int, c action.Coord) action.Action {
	a, ok := e.table.Get(layer, c.Row, c.Col)
	if !ok {
		return action.NoOp()
	}
	if a.Kind == action.KindTrans && layer != e.defaultLayer {
		def, ok := e.table.Get(e.defaultLayer, c.Row, c.Col)
		if !ok || def.Kind == action.KindTrans {
			return action.NoOp()
		}
		return def
	}
	return a
}

// push appends a state, silently dropping it if the stack is already at
// MaxActiveStates (§7).
func (e *Engine) push(s action.ActiveState) {
	if len(e.states) >= MaxActiveStates {
		return
	}
	e.states = append(e.states, s)
}

// Press resolves and executes the action bound to c at the current
// layer, at tick now (used for hold-tap timing and interleave policies).
func (e *Engine) Press(c action.Coord, now uint64) {
	e.notifyOtherPress(c, now)
	a := e.resolve(e.CurrentLayer(), c)
	e.execute(a, c, now)
}

// execute runs a on press, recursively for MultipleActions (§4.5).
func (e *Engine) execute(a action.Action, c action.Coord, now uint64) {
	switch a.Kind {
	case action.KindNoOp, action.KindTrans:
		// nothing
	case action.KindKeyCode:
		e.push(action.ActiveState{Kind: action.StateNormalKey, Coord: c, KeyCode: a.KeyCode})
	case action.KindMultipleKeyCodes:
		for _, k := range a.KeyCodes {
			e.push(action.ActiveState{Kind: action.StateNormalKey, Coord: c, KeyCode: k})
		}
	case action.KindMultipleActions:
		for _, sub := range a.Actions {
			e.execute(sub, c, now)
		}
	case action.KindLayer:
		e.push(action.ActiveState{Kind: action.StateLayerModifier, Coord: c, Value: a.Layer})
	case action.KindDefaultLayer:
		if a.Layer >= 0 && a.Layer < e.table.NumLayers() {
			e.defaultLayer = a.Layer
		}
		// out of range: ignored, default_layer unchanged (§7).
	case action.KindHoldTap:
		e.push(action.ActiveState{
			Kind:        action.StateHoldTapPending,
			Coord:       c,
			HoldTap:     a.HoldTap,
			StartedTick: now,
		})
	case action.KindCustom:
		e.customActive[c] = a.Custom
		if e.CustomEvent != nil {
			e.CustomEvent(c, a.Custom, true)
		}
	}
}

// Release drops every active state at c (§4.5), resolving a still-
// pending hold-tap at c as a Tap (released before timeout) before
// dropping it.
func (e *Engine) Release(c action.Coord, now uint64) {
	e.resolvePermissiveHolds(c, now)

	// Compact states-at-c out first and only then run the resolved taps'
	// execute calls, which push onto e.states themselves (§4.5): running
	// execute mid-filter would push onto the live field while kept still
	// aliases the pre-filter backing array, and the final e.states = kept
	// would silently discard whatever execute just pushed.
	var pendingTaps []action.Action
	kept := e.states[:0]
	for _, s := range e.states {
		if s.Coord != c {
			kept = append(kept, s)
			continue
		}
		if s.Kind == action.StateHoldTapPending {
			pendingTaps = append(pendingTaps, s.HoldTap.Tap)
		}
	}
	e.states = kept

	for _, a := range pendingTaps {
		e.executeTapPulse(a, c, now)
	}

	if v, ok := e.customActive[c]; ok {
		delete(e.customActive, c)
		if e.CustomEvent != nil {
			e.CustomEvent(c, v, false)
		}
	}
}

// executeTapPulse executes a hold-tap's resolved Tap action and marks
// every state it pushes as Pulse: the physical key that produced the tap
// is already up, so these states have no Release call coming and are
// instead flushed by the next Tick (§4.5 "if released before timeout,
// it's a tap").
func (e *Engine) executeTapPulse(a action.Action, c action.Coord, now uint64) {
	start := len(e.states)
	e.execute(a, c, now)
	for i := start; i < len(e.states); i++ {
		e.states[i].Pulse = true
	}
}

// notifyOtherPress applies the HoldOnOtherKeyPress policy immediately,
// and records OtherPressSeen for PermissiveHold, for every pending
// hold-tap state at a coordinate other than c (§4.5).
func (e *Engine) notifyOtherPress(c action.Coord, now uint64) {
	for i := range e.states {
		s := &e.states[i]
		if s.Kind != action.StateHoldTapPending || s.Coord == c {
			continue
		}
		switch s.HoldTap.Policy {
		case action.HoldOnOtherKeyPress:
			e.resolveHoldAt(i, now)
		case action.PermissiveHold:
			s.OtherPressSeen = true
		}
	}
}

// resolvePermissiveHolds resolves any pending hold-tap under
// PermissiveHold whose coord differs from c and which has already seen
// another key's press; c releasing now completes that "other key
// press-and-release" window (§4.5).
func (e *Engine) resolvePermissiveHolds(c action.Coord, now uint64) {
	for i := range e.states {
		s := &e.states[i]
		if s.Kind != action.StateHoldTapPending || s.Coord == c {
			continue
		}
		if s.HoldTap.Policy == action.PermissiveHold && s.OtherPressSeen {
			e.resolveHoldAt(i, now)
		}
	}
}

// resolveHoldAt converts the pending hold-tap state at index i into its
// Hold resolution in place, so it remains held until its own coord is
// released.
func (e *Engine) resolveHoldAt(i int, now uint64) {
	s := e.states[i]
	ht := s.HoldTap
	e.states[i] = action.ActiveState{
		Kind:     action.StateHoldTapResolved,
		Coord:    s.Coord,
		Resolved: ht.Hold,
	}
	e.execute(ht.Hold, s.Coord, now)
}

// Tick advances hold-tap timing: any pending hold-tap whose Timeout has
// elapsed resolves to Hold (§4.5 "Default: ... held past timeout, it's a
// hold"), and any tap Pulse left over from the previous tick is flushed.
func (e *Engine) Tick(now uint64) {
	kept := e.states[:0]
	for _, s := range e.states {
		if !s.Pulse {
			kept = append(kept, s)
		}
	}
	e.states = kept

	for i := range e.states {
		s := e.states[i]
		if s.Kind != action.StateHoldTapPending {
			continue
		}
		if now-s.StartedTick >= s.HoldTap.Timeout {
			e.resolveHoldAt(i, now)
		}
	}
}

// Keycodes returns the keycodes of every active StateNormalKey, in
// insertion order (§4.5 "host only observes the set").
func (e *Engine) Keycodes() []keycode.Keycode {
	var out []keycode.Keycode
	for _, s := range e.states {
		if s.Kind == action.StateNormalKey {
			out = append(out, s.KeyCode)
		}
	}
	return out
}
