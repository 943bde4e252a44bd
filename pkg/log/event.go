package log

import (
	"fmt"
	"strings"
	"time"
)

// Event is one captured occurrence on a link. Exactly one of Frame, Payload,
// StateChange and Error is set. CBOR keys are integers to keep capture files
// small.
type Event struct {
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies one connection cycle with a peer. Events outside
	// a session (scan failures, peripheral writes) leave it empty.
	SessionID string `cbor:"2,keyasint,omitempty"`

	// Direction is DirectionNone for state and error events.
	Direction Direction `cbor:"3,keyasint,omitempty"`

	Layer    Layer    `cbor:"4,keyasint"`
	Category Category `cbor:"5,keyasint"`

	Interface   string `cbor:"6,keyasint,omitempty"`
	PeerAddress string `cbor:"7,keyasint,omitempty"`

	Frame       *FrameEvent       `cbor:"10,keyasint,omitempty"`
	Payload     *PayloadEvent     `cbor:"11,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"13,keyasint,omitempty"`
}

// Kind names the populated detail of e: frame, payload, state, error or
// unknown.
func (e Event) Kind() string {
	switch {
	case e.Frame != nil:
		return "frame"
	case e.Payload != nil:
		return "payload"
	case e.StateChange != nil:
		return "state"
	case e.Error != nil:
		return "error"
	}
	return "unknown"
}

// PacketID returns the packet identifier of a frame or payload event.
func (e Event) PacketID() (uint8, bool) {
	switch {
	case e.Frame != nil:
		return e.Frame.PacketID, true
	case e.Payload != nil:
		return e.Payload.PacketID, true
	}
	return 0, false
}

// Direction is the data flow of a frame or payload relative to this node.
type Direction uint8

const (
	DirectionNone Direction = iota
	DirectionIn
	DirectionOut
)

// Layer is where an event was captured.
type Layer uint8

const (
	// LayerRadio covers characteristic reads and writes.
	LayerRadio Layer = iota
	// LayerFragment covers reassembly and duplicate suppression.
	LayerFragment
	// LayerInterface covers connection supervision.
	LayerInterface
)

// Category classifies an event.
type Category uint8

const (
	CategoryFrame Category = iota
	CategoryPayload
	CategoryState
	CategoryError
)

var (
	directionNames = []string{DirectionNone: "-", DirectionIn: "IN", DirectionOut: "OUT"}
	layerNames     = []string{LayerRadio: "RADIO", LayerFragment: "FRAGMENT", LayerInterface: "INTERFACE"}
	categoryNames  = []string{CategoryFrame: "FRAME", CategoryPayload: "PAYLOAD", CategoryState: "STATE", CategoryError: "ERROR"}
)

func (d Direction) String() string { return name(directionNames, int(d)) }
func (l Layer) String() string     { return name(layerNames, int(l)) }
func (c Category) String() string  { return name(categoryNames, int(c)) }

func name(names []string, i int) string {
	if i < len(names) {
		return names[i]
	}
	return "UNKNOWN"
}

// ParseDirection accepts "in" or "out" in any case.
func ParseDirection(s string) (Direction, error) {
	i, err := parse(directionNames[DirectionIn:], s, "direction")
	if err != nil {
		return DirectionNone, err
	}
	return DirectionIn + Direction(i), nil
}

// ParseLayer accepts radio, fragment or interface in any case.
func ParseLayer(s string) (Layer, error) {
	i, err := parse(layerNames, s, "layer")
	return Layer(i), err
}

// ParseCategory accepts frame, payload, state or error in any case.
func ParseCategory(s string) (Category, error) {
	i, err := parse(categoryNames, s, "category")
	return Category(i), err
}

func parse(names []string, s, what string) (int, error) {
	for i, n := range names {
		if strings.EqualFold(n, s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("invalid %s %q (want one of %s)", what, s, strings.ToLower(strings.Join(names, ", ")))
}

// FrameEvent is one frame written to or read from the characteristic.
type FrameEvent struct {
	PacketID uint8 `cbor:"1,keyasint"`
	Index    uint8 `cbor:"2,keyasint"`
	Count    uint8 `cbor:"3,keyasint"`

	// Size includes the 3-byte header.
	Size int `cbor:"4,keyasint"`

	// Data holds at most MaxFrameData bytes of the frame.
	Data      []byte `cbor:"5,keyasint,omitempty"`
	Truncated bool   `cbor:"6,keyasint,omitempty"`
}

// PayloadEvent is a complete payload leaving the queue or leaving the
// reassembler.
type PayloadEvent struct {
	PacketID  uint8 `cbor:"1,keyasint"`
	Size      int   `cbor:"2,keyasint"`
	Fragments int   `cbor:"3,keyasint,omitempty"`

	// Duplicate marks a payload the dedup window suppressed.
	Duplicate bool `cbor:"4,keyasint,omitempty"`
}

// StateChangeEvent is a supervisor state transition.
type StateChangeEvent struct {
	OldState string `cbor:"1,keyasint,omitempty"`
	NewState string `cbor:"2,keyasint"`
	Reason   string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData is a radio failure that was logged and swallowed.
type ErrorEventData struct {
	Layer   Layer  `cbor:"1,keyasint"`
	Message string `cbor:"2,keyasint"`

	// Context names the operation, e.g. "connect" or "health check".
	Context string `cbor:"3,keyasint,omitempty"`
}

// MaxFrameData is the number of raw frame bytes kept in a FrameEvent.
const MaxFrameData = 64

// TruncateFrameData returns a copy of data limited to MaxFrameData bytes and
// whether it was cut short.
func TruncateFrameData(data []byte) ([]byte, bool) {
	if len(data) > MaxFrameData {
		return append([]byte(nil), data[:MaxFrameData]...), true
	}
	return append([]byte(nil), data...), false
}
