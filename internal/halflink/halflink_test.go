package halflink

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// TestS6WireRoundTrip mirrors spec §8 scenario S6.
func TestS6WireRoundTrip(t *testing.T) {
	w, err := Pack(Event{Row: 5, Col: 3, Press: false})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if w != 0x9D {
		t.Fatalf("expected wire byte 0x9D, got 0x%02X", w)
	}
	got := Unpack(w)
	if got != (Event{Row: 5, Col: 3, Press: false}) {
		t.Fatalf("unpack mismatch: %+v", got)
	}
}

// TestRoundTripAllValidCoords is spec §8 property 5: pack/unpack is
// identity for every valid row, col, press combination.
func TestRoundTripAllValidCoords(t *testing.T) {
	for row := uint8(0); row <= 7; row++ {
		for col := uint8(0); col <= 7; col++ {
			for _, press := range []bool{true, false} {
				e := Event{Row: row, Col: col, Press: press}
				w, err := Pack(e)
				if err != nil {
					t.Fatalf("Pack(%+v): %v", e, err)
				}
				if got := Unpack(w); got != e {
					t.Fatalf("round trip mismatch for %+v: got %+v", e, got)
				}
			}
		}
	}
}

func TestPackRejectsOutOfRangeCoord(t *testing.T) {
	if _, err := Pack(Event{Row: 8, Col: 0}); err == nil {
		t.Fatal("expected error for row out of range")
	}
	if _, err := Pack(Event{Row: 0, Col: 8}); err == nil {
		t.Fatal("expected error for col out of range")
	}
}

// TestUnpackIgnoresReservedBit matches §9's resolved open question: the
// reserved bit is masked off, not treated as corruption.
func TestUnpackIgnoresReservedBit(t *testing.T) {
	w, _ := Pack(Event{Row: 5, Col: 3, Press: false})
	dirty := w | 0x40 // set reserved bit 6
	if got := Unpack(dirty); got != Unpack(w) {
		t.Fatalf("reserved bit changed decode: %+v vs %+v", got, Unpack(w))
	}
}

func TestSenderReceiverRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	sender := NewSender(&buf)
	events := []Event{
		{Row: 0, Col: 0, Press: true},
		{Row: 7, Col: 7, Press: false},
		{Row: 2, Col: 5, Press: true},
	}
	for _, e := range events {
		if err := sender.Send(e); err != nil {
			t.Fatalf("Send(%+v): %v", e, err)
		}
	}

	receiver := NewReceiver(&buf)
	for _, want := range events {
		got, err := receiver.Recv()
		if err != nil {
			t.Fatalf("Recv: %v", err)
		}
		if got != want {
			t.Fatalf("expected %+v, got %+v", want, got)
		}
	}
}

func TestReceiverEOFPassedThroughUnwrapped(t *testing.T) {
	receiver := NewReceiver(bytes.NewReader(nil))
	_, err := receiver.Recv()
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("line noise") }

func TestReceiverWrapsTransportErrorAsFatal(t *testing.T) {
	receiver := NewReceiver(errReader{})
	_, err := receiver.Recv()
	if err == nil {
		t.Fatal("expected a fatal link error")
	}
	var linkErr *LinkError
	if !errors.As(err, &linkErr) {
		t.Fatalf("expected *LinkError, got %T: %v", err, err)
	}
}
