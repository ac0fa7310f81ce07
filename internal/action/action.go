// Package action implements the spec §3 Action tagged variant and the
// ActiveState stack entries it produces when executed by the layout
// engine (spec §4.5).
package action

import "quickdraw/internal/keycode"

// Coord is a (row, column) matrix location.
type Coord struct {
	Row uint8
	Col uint8
}

// Kind tags which variant an Action holds.
type Kind int

const (
	KindNoOp Kind = iota
	KindTrans
	KindKeyCode
	KindMultipleKeyCodes
	KindMultipleActions
	KindLayer
	KindDefaultLayer
	KindHoldTap
	KindCustom
)

// Action is the spec §3 tagged variant. Only the fields relevant to Kind
// are meaningful; this mirrors the teacher's opcode-dispatch discipline
// (internal/cpu.go's switch on an enumerated tag) rather than a Go
// interface per variant, since every Action here is plain data with no
// per-variant behavior of its own — all behavior lives in the engine.
type Action struct {
	Kind Kind

	KeyCode  keycode.Keycode   // KindKeyCode
	KeyCodes []keycode.Keycode // KindMultipleKeyCodes
	Actions  []Action          // KindMultipleActions
	Layer    int               // KindLayer, KindDefaultLayer

	HoldTap *HoldTap // KindHoldTap

	Custom interface{} // KindCustom, opaque to the core
}

// HoldTap is the optional deferred-resolution action described in §4.5 and
// §9 ("Hold-tap coroutines"): it resolves to either Hold or Tap depending
// on a timeout and an interleaving policy.
type HoldTap struct {
	Hold    Action
	Tap     Action
	Timeout uint64 // ticks
	Policy  InterleavePolicy
}

// InterleavePolicy controls how another key event during the hold-tap's
// timeout window resolves it early.
type InterleavePolicy int

const (
	// Default: resolves to Tap if released before Timeout, Hold if held
	// past Timeout. Other key activity does not affect resolution.
	Default InterleavePolicy = iota
	// HoldOnOtherKeyPress resolves to Hold immediately on any other key
	// press within the timeout window.
	HoldOnOtherKeyPress
	// PermissiveHold resolves to Hold only once another key has both
	// pressed and released within the timeout window.
	PermissiveHold
)

// Convenience constructors.

func NoOp() Action { return Action{Kind: KindNoOp} }

func Trans() Action { return Action{Kind: KindTrans} }

func KC(k keycode.Keycode) Action { return Action{Kind: KindKeyCode, KeyCode: k} }

func Multi(ks ...keycode.Keycode) Action {
	return Action{Kind: KindMultipleKeyCodes, KeyCodes: ks}
}

func Seq(as ...Action) Action {
	return Action{Kind: KindMultipleActions, Actions: as}
}

func Layer(n int) Action { return Action{Kind: KindLayer, Layer: n} }

func DefaultLayer(n int) Action { return Action{Kind: KindDefaultLayer, Layer: n} }

func Custom(v interface{}) Action { return Action{Kind: KindCustom, Custom: v} }

// StateKind tags an ActiveState variant.
type StateKind int

const (
	StateNormalKey StateKind = iota
	StateLayerModifier
	StateHoldTapPending
	StateHoldTapResolved
)

// ActiveState is a held logical effect on the engine's stack (spec §3).
// Fields are held by value, never by reference into the LayerTable, per
// §9 "No pointers into states".
type ActiveState struct {
	Kind StateKind

	Coord Coord

	KeyCode keycode.Keycode // StateNormalKey
	Value   int             // StateLayerModifier

	// Hold-tap bookkeeping.
	HoldTap     *HoldTap
	StartedTick uint64
	Resolved    Action // once resolved, the action substituted for this state
	OtherPressSeen bool

	// Pulse marks a state produced by a resolved Tap (§4.5 "if released
	// before timeout, it's a tap"): the physical key is already up, so
	// this state is observable in Keycodes() until the engine's next Tick
	// call flushes it, rather than waiting on a Release that will never
	// come for this coord.
	Pulse bool
}
