package keyboard

import (
	"sync"

	"quickdraw/internal/action"
	"quickdraw/internal/halflink"
	"quickdraw/internal/hidreport"
	"quickdraw/internal/layout"
	"quickdraw/internal/obslog"
)

// Keyboard is the USB-connected half's top-level orchestrator: it owns
// its own scanning Half plus the layout engine, HID assembler, and
// shared logger, and merges in events relayed from the remote
// (scanning-only) half over a halflink.Receiver.
//
// §5 models shared mutable state (layout engine, debouncer array, scan
// buffer selector, log ring) as resources behind priority-based critical
// sections. A single sync.Mutex is the host-simulable equivalent: the
// high-priority USB path and the low-priority scan/serial paths both
// take mu before touching Layout or HID, mirroring the teacher's
// keyMu guard (internal/ui/fyne_ui.go) around shared input state.
type Keyboard struct {
	mu sync.Mutex

	Local   *Half
	Layout  *layout.Engine
	HID     hidreport.Assembler
	Logger  *obslog.Logger
	Receiver *halflink.Receiver // nil for a single-half (no remote) build
}

// New builds the USB-connected half's orchestrator.
func New(local *Half, table *layout.Table, defaultLayer int, logger *obslog.Logger, receiver *halflink.Receiver) *Keyboard {
	return &Keyboard{
		Local:    local,
		Layout:   layout.NewEngine(table, defaultLayer),
		Logger:   logger,
		Receiver: receiver,
	}
}

// StepLocal advances the local scanning half by one tick, feeding any
// resulting events through the layout engine, and returns the current
// (possibly unchanged) HID report and whether it changed.
func (k *Keyboard) StepLocal(now uint64) (hidreport.Report, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	events := k.Local.Step(k.Logger)

	for _, e := range events {
		k.applyEvent(e.Coord, e.Press, now)
	}
	return k.HID.Push(k.Layout.Keycodes())
}

// ApplyRemoteEvent merges one event relayed from the scanning-only half
// (already column-offset-adjusted by the caller) into the layout engine.
// It takes the same critical section as StepLocal, modeling §5's
// requirement that the layout engine is one resource shared across
// priority levels.
func (k *Keyboard) ApplyRemoteEvent(row, col uint8, press bool, now uint64) (hidreport.Report, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.applyEvent(action.Coord{Row: row, Col: col}, press, now)
	return k.HID.Push(k.Layout.Keycodes())
}

// applyEvent must be called with mu held.
func (k *Keyboard) applyEvent(c action.Coord, press bool, now uint64) {
	if press {
		k.Layout.Press(c, now)
	} else {
		k.Layout.Release(c, now)
	}
	if k.Logger != nil {
		k.Logger.LogLayout(obslog.LevelDebug, "layer resolved", map[string]interface{}{
			"layer": k.Layout.CurrentLayer(),
		})
	}
}

// Tick drives the layout engine's hold-tap timeout resolution (§4.5).
func (k *Keyboard) Tick(now uint64) (hidreport.Report, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.Layout.Tick(now)
	return k.HID.Push(k.Layout.Keycodes())
}

// PumpRemote blocks on one Receiver.Recv() call and, on success, applies
// the decoded event via ApplyRemoteEvent with colOffset added. Errors from
// Recv are returned as-is: io.EOF means the link was closed; any other
// error is a *halflink.LinkError, the §7 "serial link corruption" fatal
// condition for the caller's boot sequence to act on (e.g. halt).
func (k *Keyboard) PumpRemote(now uint64, colOffset uint8) (hidreport.Report, bool, error) {
	e, err := k.Receiver.Recv()
	if err != nil {
		return hidreport.Report{}, false, err
	}
	r, changed := k.ApplyRemoteEvent(e.Row, e.Col+colOffset, e.Press, now)
	return r, changed, nil
}
