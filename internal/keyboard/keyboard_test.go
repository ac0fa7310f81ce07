package keyboard

import (
	"bytes"
	"testing"

	"quickdraw/internal/action"
	"quickdraw/internal/halflink"
	"quickdraw/internal/keycode"
	"quickdraw/internal/layout"
)

func fixedProbe(closedRowBit uint8) func(uint8) uint8 {
	return func(col uint8) uint8 {
		if col == 0 {
			return closedRowBit
		}
		return 0
	}
}

func newTestKeyboard(t *testing.T, recv *halflink.Receiver) *Keyboard {
	t.Helper()
	half, err := NewHalf(1, 2, 1000, 400000, fixedProbe(0), 3, 0)
	if err != nil {
		t.Fatalf("NewHalf: %v", err)
	}
	tbl, err := layout.NewTable(1, 1, 4) // room for both halves merged: col 0..1 local, 2..3 remote
	if err != nil {
		t.Fatal(err)
	}
	tbl.Set(0, 0, 0, action.KC(keycode.A))
	tbl.Set(0, 0, 2, action.KC(keycode.B))
	return New(half, tbl, 0, nil, recv)
}

func TestApplyRemoteEventDrivesHIDReport(t *testing.T) {
	k := newTestKeyboard(t, nil)

	r, changed := k.ApplyRemoteEvent(0, 2, true, 0)
	if !changed {
		t.Fatal("expected first press to change the report")
	}
	if r[2] != byte(keycode.B) {
		t.Fatalf("expected keycode B in report, got %v", r)
	}

	r, changed = k.ApplyRemoteEvent(0, 2, false, 1)
	if !changed {
		t.Fatal("expected release to change the report back")
	}
	if r[2] != 0 {
		t.Fatalf("expected empty report after release, got %v", r)
	}
}

func TestPumpRemoteDecodesWireEventAndMerges(t *testing.T) {
	var wire bytes.Buffer
	sender := halflink.NewSender(&wire)
	if err := sender.Send(halflink.Event{Row: 0, Col: 0, Press: true}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	receiver := halflink.NewReceiver(&wire)
	k := newTestKeyboard(t, receiver)

	r, changed, err := k.PumpRemote(0, 2) // remote half's columns offset by 2
	if err != nil {
		t.Fatalf("PumpRemote: %v", err)
	}
	if !changed {
		t.Fatal("expected the relayed press to change the report")
	}
	if r[2] != byte(keycode.B) {
		t.Fatalf("expected keycode B (table col 2) in report, got %v", r)
	}
}

func TestStepLocalProducesScanDrivenReport(t *testing.T) {
	half, err := NewHalf(1, 2, 1000, 400000, fixedProbe(1), 3, 0) // row 0 col 0 always closed
	if err != nil {
		t.Fatalf("NewHalf: %v", err)
	}
	tbl, _ := layout.NewTable(1, 1, 2)
	tbl.Set(0, 0, 0, action.KC(keycode.A))
	k := New(half, tbl, 0, nil, nil)

	ticksPerScan := uint64(400000 / 1000)
	var lastReport [8]byte
	for i := uint64(0); i < ticksPerScan*3; i++ {
		r, _ := k.StepLocal(i)
		lastReport = r
	}
	if lastReport[2] != byte(keycode.A) {
		t.Fatalf("expected A held down from the always-closed cell, got %v", lastReport)
	}
}
