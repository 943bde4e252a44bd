package fragment

import (
	"errors"
	"fmt"
)

// HeaderSize is the fixed frame header length in bytes.
const HeaderSize = 3

// MaxFragments is the largest fragment count the header can express.
const MaxFragments = 255

// Frame errors.
var (
	ErrShortFrame = errors.New("frame shorter than header")
	ErrBadIndex   = errors.New("fragment index out of range")
)

// Frame is one on-the-wire unit: the fragmentation header plus a chunk of the
// payload.
type Frame struct {
	PacketID uint8
	Index    uint8
	Count    uint8
	Data     []byte
}

// Encode returns the wire representation of f.
func (f Frame) Encode() []byte {
	buf := make([]byte, HeaderSize+len(f.Data))
	buf[0] = f.PacketID
	buf[1] = f.Index
	buf[2] = f.Count
	copy(buf[HeaderSize:], f.Data)
	return buf
}

// Size returns the encoded length of f.
func (f Frame) Size() int {
	return HeaderSize + len(f.Data)
}

// String implements fmt.Stringer.
func (f Frame) String() string {
	return fmt.Sprintf("frame[id=%d %d/%d %dB]", f.PacketID, f.Index, f.Count, len(f.Data))
}

// Decode parses a wire frame. The returned Data aliases b.
func Decode(b []byte) (Frame, error) {
	if len(b) < HeaderSize {
		return Frame{}, ErrShortFrame
	}
	f := Frame{
		PacketID: b[0],
		Index:    b[1],
		Count:    b[2],
		Data:     b[HeaderSize:],
	}
	if f.Count > 0 && f.Index >= f.Count {
		return f, fmt.Errorf("%w: index %d, count %d", ErrBadIndex, f.Index, f.Count)
	}
	return f, nil
}
