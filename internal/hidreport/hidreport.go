// Package hidreport assembles the 8-byte USB HID boot keyboard report
// (spec §4.6, §6): byte 0 is the modifier bitmask, byte 1 is reserved,
// bytes 2..7 are up to six non-modifier keycodes.
//
// Byte layout grounded on the out-of-pack boot-keyboard example
// (other_examples/ardnew-softusb, main.go: "Boot keyboard report format:
// [modifiers, reserved, key1..key6]").
package hidreport

import "quickdraw/internal/keycode"

// Report is the 8-byte boot keyboard report.
type Report [8]byte

// RolloverKey is pushed into every key slot when more than six
// non-modifier keys are active simultaneously (spec §4.6 "overflow fills
// the key slots with the rollover indicator").
const RolloverKey = keycode.ErrorRollOver

// Assemble builds a Report from the active keycode set: modifier
// keycodes (IsModifier) are OR'd into the modifier byte; the first six
// non-modifier keycodes fill the key slots in order. More than six
// non-modifier keys overflow into an all-rollover report.
func Assemble(keys []keycode.Keycode) Report {
	var r Report
	var nonModifiers []keycode.Keycode
	for _, k := range keys {
		if k.IsModifier() {
			r[0] |= k.ModifierBit()
			continue
		}
		nonModifiers = append(nonModifiers, k)
	}

	if len(nonModifiers) > 6 {
		for i := 2; i < 8; i++ {
			r[i] = byte(RolloverKey)
		}
		return r
	}
	for i, k := range nonModifiers {
		r[2+i] = byte(k)
	}
	return r
}

// Assembler tracks the last report pushed and only surfaces a new one
// when it differs (spec §4.6 "a new report is pushed when it differs
// from the last sent").
type Assembler struct {
	last Report
	have bool
}

// Push assembles keys into a Report and returns it along with whether it
// differs from the previously pushed report (changed=true on the very
// first call).
func (a *Assembler) Push(keys []keycode.Keycode) (Report, bool) {
	r := Assemble(keys)
	changed := !a.have || r != a.last
	a.last = r
	a.have = true
	return r, changed
}
