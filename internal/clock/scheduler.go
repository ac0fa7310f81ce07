// Package clock schedules the matrix scanner's column-drive / row-sample
// timing (spec §4.1) the way a PWM timer + DMA pair would on the target
// MCU, so the timing model can be exercised and tested on the host.
package clock

import "fmt"

// ScanClock coordinates column strobing and row sampling against a single
// monotonic tick counter. One full revolution (Columns slots) is one scan
// period; the clock calls DriveColumn for the column that should now start
// settling and SampleColumn for the column whose settling window has just
// elapced, matching "column drive is emitted one slot early" (§4.1).
type ScanClock struct {
	// Tick is the monotonic counter driving both the scanner and, via the
	// same value, the debouncer's stable-window timer (§4.2 uses the same
	// tick domain).
	Tick uint64

	Columns uint32

	// SlotTicks is the number of ticks per column slot; SampleTicks is the
	// offset within a slot (2/5 of SlotTicks per §4.1) at which the row
	// sample fires.
	SlotTicks   uint64
	SampleTicks uint64

	// DriveColumn strobes column col high and begins its settling window.
	DriveColumn func(col uint32)
	// SampleColumn samples all rows for column col into the write-side
	// buffer half.
	SampleColumn func(col uint32)
	// HalfDone/Done notify the consumer that a buffer half is ready,
	// mirroring the DMA half-transfer/transfer-complete interrupts a real
	// scanner raises for a double-length circular buffer: one full
	// revolution of all Columns slots fills one half, the next fills the
	// other, alternating forever. HalfDone fires when the first half's
	// revolution completes, Done when the second half's does.
	HalfDone func()
	Done     func()

	slot         uint32
	offsetInSlot uint64
	drivenAtBoot bool
	onSecondHalf bool
}

// NewScanClock builds a clock for a matrix with the given column count,
// targeting fullScansPerSecond full matrix scans per second, at the given
// tick rate (ticks per second). SampleTicks is derived as 2/5 of the slot
// per the settling-budget rule in §4.1.
func NewScanClock(columns uint32, fullScansPerSecond, ticksPerSecond uint64) (*ScanClock, error) {
	if columns == 0 {
		return nil, fmt.Errorf("clock: columns must be > 0")
	}
	if fullScansPerSecond == 0 || ticksPerSecond == 0 {
		return nil, fmt.Errorf("clock: rates must be > 0")
	}
	ticksPerScan := ticksPerSecond / fullScansPerSecond
	slotTicks := ticksPerScan / uint64(columns)
	if slotTicks < 5 {
		return nil, fmt.Errorf("clock: scan frequency too high for tick rate (slot=%d ticks)", slotTicks)
	}
	return &ScanClock{
		Columns:     columns,
		SlotTicks:   slotTicks,
		SampleTicks: slotTicks * 2 / 5,
	}, nil
}

// Step advances the clock by one tick, firing DriveColumn/SampleColumn/
// HalfDone/Done as their boundaries are crossed.
func (c *ScanClock) Step() {
	if !c.drivenAtBoot {
		// Prime the pipeline: the column sampled in slot 0 must already be
		// settling, so it is driven one slot "early" relative to boot.
		if c.DriveColumn != nil {
			c.DriveColumn(0)
		}
		c.drivenAtBoot = true
	}

	if c.offsetInSlot == 0 {
		next := (c.slot + 1) % c.Columns
		if c.DriveColumn != nil {
			c.DriveColumn(next)
		}
	}
	if c.offsetInSlot == c.SampleTicks {
		if c.SampleColumn != nil {
			c.SampleColumn(c.slot)
		}
	}

	c.Tick++
	c.offsetInSlot++
	if c.offsetInSlot >= c.SlotTicks {
		c.offsetInSlot = 0
		c.slot++
		if c.slot >= c.Columns {
			// One full revolution (all Columns sampled) just completed.
			c.slot = 0
			if c.onSecondHalf {
				if c.Done != nil {
					c.Done()
				}
			} else if c.HalfDone != nil {
				c.HalfDone()
			}
			c.onSecondHalf = !c.onSecondHalf
		}
	}
}

// StepN advances the clock by n ticks.
func (c *ScanClock) StepN(n uint64) {
	for i := uint64(0); i < n; i++ {
		c.Step()
	}
}

// Reset returns the clock to tick 0, slot 0.
func (c *ScanClock) Reset() {
	c.Tick = 0
	c.slot = 0
	c.offsetInSlot = 0
	c.drivenAtBoot = false
	c.onSecondHalf = false
}
