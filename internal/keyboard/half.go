// Package keyboard wires the per-module pieces into the two-half
// keyboard described by spec §1-§6: each half scans and debounces its
// own matrix and keeps its own event log ring; the USB-connected half
// also runs the layout engine and HID report assembler, merging in events
// relayed from the scanning-only half over the half-link.
//
// Grounded on the teacher's orchestrator-wires-subcomponents shape
// (internal/emulator/emulator.go: a struct holding every subcomponent by
// pointer, built via New.../NewXWithY constructors).
package keyboard

import (
	"quickdraw/internal/debounce"
	"quickdraw/internal/eventlog"
	"quickdraw/internal/obslog"
	"quickdraw/internal/scan"
)

// Half is one physical half's scanning pipeline: matrix scanner,
// scan-to-event adapter, and its own event log ring.
type Half struct {
	Scanner   *scan.Scanner
	Adapter   *scan.Adapter
	Ring      *eventlog.Ring
	ColOffset uint8 // added to Col when merging into the unified layout coordinate space (§4.4 reception)
}

// NewHalf builds one half's scanning pipeline for an R x C matrix.
func NewHalf(rows, cols uint8, fullScansPerSecond, ticksPerSecond uint64, probe func(uint8) uint8, stableWindow uint64, colOffset uint8) (*Half, error) {
	scanner, err := scan.NewScanner(rows, cols, fullScansPerSecond, ticksPerSecond, probe)
	if err != nil {
		return nil, err
	}
	return &Half{
		Scanner:   scanner,
		Adapter:   scan.NewAdapter(rows, cols, stableWindow),
		Ring:      &eventlog.Ring{},
		ColOffset: colOffset,
	}, nil
}

// Step advances the half's scanner by one tick and returns any emitted
// (already column-offset-adjusted) events. It also appends each
// transition, with its unadjusted coordinate, to the half's own event log
// ring.
func (h *Half) Step(logger *obslog.Logger) []scan.Event {
	h.Scanner.Step()
	now := h.Scanner.Tick()
	var events []scan.Event
	events = h.Adapter.Feed(h.Scanner.ReadableFrame(), now, events)
	for i := range events {
		e := &events[i]
		kind := eventlog.KindRelease
		if e.Press {
			kind = eventlog.KindPress
		}
		var debState debounce.DebState
		if cell := h.Adapter.Cell(e.Coord.Row, e.Coord.Col); cell != nil {
			debState = cell.State()
		}
		h.Ring.Log(uint32(now), e.Coord.Row, e.Coord.Col, debState, kind)
		if logger != nil {
			logger.LogScan(obslog.LevelTrace, "scan event", map[string]interface{}{
				"row": e.Coord.Row, "col": e.Coord.Col, "press": e.Press,
			})
		}
		e.Coord.Col += h.ColOffset
	}
	return events
}
