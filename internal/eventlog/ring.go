// Package eventlog implements the fixed 1024-slot event log ring (spec
// §4.7): a single-writer, lock-free buffer read externally by a
// memory-probe debugger. It is distinct from internal/obslog, which is a
// host-side diagnostic logger with its own buffering and filtering; this
// ring models the on-target, JTAG/SWD-probed record of scan events.
//
// Grounded on the teacher's internal/debug.Logger circular buffer shape
// (fixed-size slice, write index wrapping by modulo), stripped of the
// channel/goroutine/mutex machinery that logger uses: §5 specifies this
// resource has no locking at all, torn reads being tolerable because the
// reader takes head first, then the body.
package eventlog

import "quickdraw/internal/debounce"

// Size is the fixed slot count (spec §4.7, §6).
const Size = 1024

// Kind tags what kind of transition a Record describes.
type Kind uint8

const (
	KindNone Kind = iota
	KindPress
	KindRelease
)

// Record is one packed, 8-byte log entry: a 4-byte tick timestamp, the
// matrix coordinate, the debouncer FSM state at the time of the record,
// and the event kind (spec §6 "LogRecord is packed, 8 bytes total").
type Record struct {
	Timestamp uint32
	Row       uint8
	Col       uint8
	Deb       uint8
	Event     uint8
}

// Ring is the fixed 1024-slot event log (spec §4.7). The zero value is
// ready to use; per §9 "boot singletons", a real target allocates exactly
// one of these at init and never again.
type Ring struct {
	head uint32 // next write index, mod Size
	body [Size]Record
}

// Write appends rec at head and advances it, overwriting the oldest
// record once the ring has wrapped (§4.7 "overwrite is silent"). This is
// the single writer (debouncer/adapter path, §5); no locking is used.
func (r *Ring) Write(rec Record) {
	r.body[r.head%Size] = rec
	r.head++
}

// Log is a convenience wrapper building a Record from debouncer state.
func (r *Ring) Log(now uint32, row, col uint8, deb debounce.DebState, kind Kind) {
	r.Write(Record{
		Timestamp: now,
		Row:       row,
		Col:       col,
		Deb:       uint8(deb),
		Event:     uint8(kind),
	})
}

// Head returns the raw write index (not yet taken mod Size), matching
// the on-target `head: u32` field an external probe reads first (§6).
func (r *Ring) Head() uint32 { return r.head }

// Body returns the backing array, for a probe reading it directly by
// address the way JTAG/SWD would (§6 "well-known static address").
func (r *Ring) Body() *[Size]Record { return &r.body }

// Chronological reconstructs the log in oldest-to-newest order, the way
// an external reader does per §4.7: "starting at head and reading
// head..size, 0..head". Before the ring has filled once, unwritten slots
// are zero Records and are included as-is; a probe with access to the
// write count can trim them, but the ring itself does not track that.
func (r *Ring) Chronological() []Record {
	out := make([]Record, 0, Size)
	start := r.head % Size
	for i := uint32(0); i < Size; i++ {
		out = append(out, r.body[(start+i)%Size])
	}
	return out
}
