package halflink

import (
	"errors"
	"io"
)

// LinkError wraps a corruption condition on the serial link (framing,
// noise, overrun, parity). Per §7, these are unrecoverable: the caller is
// expected to halt rather than retry.
//
// Grounded on the wrapped-error shape used for port-level failures in the
// pack's serial driver (Daedaluz-goserial/error.go).
type LinkError struct {
	msg string
	err error
}

func (e *LinkError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *LinkError) Unwrap() error { return e.err }

func wrapFatal(msg string, err error) error {
	if err == nil {
		return nil
	}
	return &LinkError{msg: msg, err: err}
}

// ErrCorruptFrame names a corrupt-frame condition. No function in this
// package returns it: Unpack decodes every octet (bit 6 alone is never a
// corruption signal, §9), and Sender/Receiver report transport failures
// as *LinkError.
var ErrCorruptFrame = errors.New("halflink: corrupt frame")

// Sender writes Events onto the link as packed WireFrames, one octet
// each. It has no internal buffering: §4.4's latency budget requires the
// caller to interleave packing with a blocking transmit, which io.Writer
// already models for a real UART peripheral.
type Sender struct {
	w io.Writer
}

// NewSender wraps w (conceptually a UART TX FIFO) as a Sender.
func NewSender(w io.Writer) *Sender { return &Sender{w: w} }

// Send packs e and writes the single resulting octet. Any write error is
// treated as link corruption per §7 and returned wrapped in a LinkError.
func (s *Sender) Send(e Event) error {
	w, err := Pack(e)
	if err != nil {
		return err
	}
	buf := [1]byte{byte(w)}
	if _, err := s.w.Write(buf[:]); err != nil {
		return wrapFatal("halflink: send failed", err)
	}
	return nil
}

// Receiver reads packed WireFrames off the link and decodes them into
// Events local to the sender's half.
type Receiver struct {
	r io.Reader
}

// NewReceiver wraps r (conceptually a UART RX FIFO) as a Receiver.
func NewReceiver(r io.Reader) *Receiver { return &Receiver{r: r} }

// Recv blocks for exactly one octet and decodes it. io.EOF is passed
// through unwrapped so callers can distinguish "link closed" from
// "link corrupted"; any other read error is wrapped as fatal per §7.
func (r *Receiver) Recv() (Event, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r.r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return Event{}, err
		}
		return Event{}, wrapFatal("halflink: recv failed", err)
	}
	return Unpack(WireFrame(buf[0])), nil
}
