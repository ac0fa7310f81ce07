// Package scan implements the DMA-orchestrated matrix scanner (spec §4.1)
// and the scan-to-event adapter (spec §4.3): it strobes columns, samples
// rows into a double-buffered ScanFrame, and walks a readable frame
// through per-key debouncers to yield Events.
package scan

import (
	"fmt"

	"quickdraw/internal/action"
	"quickdraw/internal/clock"
)

// MaxRows/MaxCols bound the matrix per spec §6 ("agnostic to R, C
// provided R,C <= 8"); a column word is one byte, bit k = row k closed.
const (
	MaxRows = 8
	MaxCols = 8
)

// Frame is one column-packed snapshot of the matrix: Frame[col] has bit k
// set iff row k is closed for that column (spec §3 ScanFrame, §4.1 bit
// layout).
type Frame [MaxCols]uint8

// Closed reports whether (row, col) is closed in this frame.
func (f *Frame) Closed(row, col uint8) bool {
	if col >= MaxCols || row >= MaxRows {
		return false
	}
	return f[col]&(1<<row) != 0
}

func (f *Frame) set(row, col uint8, closed bool) {
	if closed {
		f[col] |= 1 << row
	} else {
		f[col] &^= 1 << row
	}
}

// Scanner drives a ping-pong double buffer of two Frames using a
// ScanClock, the way a PWM timer + DMA pair would drive real column/row
// hardware (§4.1). Sampling is supplied by a Probe function standing in
// for the row GPIO read the target board's HAL performs.
type Scanner struct {
	Rows, Cols uint8

	clock *clock.ScanClock

	// Probe reads the live electrical state of all rows for the given
	// column. On a real board this reads a GPIO port; here it is
	// supplied by the caller (hardware HAL or a test/simulator).
	Probe func(col uint8) uint8

	buf          [2]Frame
	writeHalf    int // which buffer half DMA is currently filling
	readyHalf    int // which half is stable for the consumer to read
	currentFrame *Frame
}

// NewScanner builds a scanner for an R x C matrix at fullScansPerSecond,
// using ticksPerSecond as the shared tick domain with the debouncer.
// Halts per §4.1 "if scan cannot be configured the device is
// non-functional" is modeled as a returned error; the caller's boot
// sequence decides whether that is fatal.
func NewScanner(rows, cols uint8, fullScansPerSecond, ticksPerSecond uint64, probe func(col uint8) uint8) (*Scanner, error) {
	if rows == 0 || rows > MaxRows || cols == 0 || cols > MaxCols {
		return nil, fmt.Errorf("scan: matrix %dx%d exceeds %dx%d bound", rows, cols, MaxRows, MaxCols)
	}
	if probe == nil {
		return nil, fmt.Errorf("scan: probe function required")
	}
	sc, err := clock.NewScanClock(uint32(cols), fullScansPerSecond, ticksPerSecond)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	s := &Scanner{Rows: rows, Cols: cols, Probe: probe}
	s.currentFrame = &s.buf[0]
	sc.DriveColumn = func(col uint32) {
		// The drive strobe itself has no host-visible effect in this
		// simulation: it exists only to pace SampleColumn, matching the
		// "drive one slot early" timing rule.
		_ = col
	}
	sc.SampleColumn = func(col uint32) {
		s.currentFrame[col] = s.Probe(uint8(col))
	}
	sc.HalfDone = func() {
		s.readyHalf = s.writeHalf
		s.writeHalf = 1 - s.writeHalf
		s.currentFrame = &s.buf[s.writeHalf]
	}
	sc.Done = func() {
		s.readyHalf = s.writeHalf
		s.writeHalf = 1 - s.writeHalf
		s.currentFrame = &s.buf[s.writeHalf]
	}
	s.clock = sc
	return s, nil
}

// Step advances the scan clock by one tick.
func (s *Scanner) Step() { s.clock.Step() }

// Tick returns the current shared tick count.
func (s *Scanner) Tick() uint64 { return s.clock.Tick }

// ReadableFrame returns the half that is stable for the CPU to read; the
// scanner's DMA may not be stopped while the other half fills (§4.1, §5).
func (s *Scanner) ReadableFrame() *Frame { return &s.buf[s.readyHalf] }

// Coord is re-exported from the action package so adapter callers only
// need to import scan.
type Coord = action.Coord
