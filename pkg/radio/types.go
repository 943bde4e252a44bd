package radio

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Protocol identifiers shared by every node.
var (
	ServiceUUID        = uuid.MustParse("5f1b8a20-4b1c-4d2e-9a36-52e8c1a0b7d1")
	CharacteristicUUID = uuid.MustParse("5f1b8a21-4b1c-4d2e-9a36-52e8c1a0b7d1")
)

const (
	// NamePrefix marks advertised names of compatible nodes.
	NamePrefix = "RNS-"

	// DefaultMTU is the conservative per-write payload size assumed for BLE.
	DefaultMTU = 512
)

// Radio errors.
var (
	ErrNotFound     = errors.New("service or characteristic not found")
	ErrClosed       = errors.New("radio closed")
	ErrNotConnected = errors.New("not connected")
	ErrUnsupported  = errors.New("operation not supported by characteristic")
)

// Radio is the BLE capability used by the link layer.
type Radio interface {
	// MTU returns the largest frame accepted by a single characteristic write.
	MTU() int

	// Connect opens a session with the peer at address.
	Connect(ctx context.Context, address string) (Session, error)

	// Scan listens for advertisements for the given window and returns what it saw.
	Scan(ctx context.Context, window time.Duration) ([]Advertisement, error)

	// Advertise announces this node under name. Repeated calls refresh it.
	Advertise(ctx context.Context, name string) error

	// StopAdvertising withdraws the announcement.
	StopAdvertising() error

	// Serve hosts the protocol characteristic; writes from remote centrals
	// are passed to handler.
	Serve(handler WriteHandler) error

	// Close releases the radio.
	Close() error
}

// Session is a connection to one peer.
type Session interface {
	// Address returns the peer address.
	Address() string

	// Characteristic resolves a characteristic by service and characteristic
	// UUID. It returns ErrNotFound when the peer does not expose the pair.
	Characteristic(ctx context.Context, service, char uuid.UUID) (Characteristic, error)

	// Close disconnects the session.
	Close() error
}

// Characteristic is a resolved remote characteristic.
type Characteristic interface {
	Capabilities() Capabilities
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, frame []byte) error
}

// Capabilities reports what a characteristic claims to support.
type Capabilities struct {
	Read  bool
	Write bool
}

// String implements fmt.Stringer.
func (c Capabilities) String() string {
	switch {
	case c.Read && c.Write:
		return "read|write"
	case c.Read:
		return "read"
	case c.Write:
		return "write"
	default:
		return "none"
	}
}

// WriteHandler receives a frame written to the hosted characteristic by the
// central at from.
type WriteHandler func(from string, frame []byte)

// Advertisement is one scan result.
type Advertisement struct {
	Address string
	Name    string
	RSSI    int16
}

// Peer describes who to talk to: either a configured address or a discovered
// advertisement.
type Peer struct {
	Address string
	Name    string

	// Static is true for a configured point-to-point peer.
	Static bool
}

// StaticPeer returns the descriptor of a configured peer.
func StaticPeer(address string) Peer {
	return Peer{Address: address, Static: true}
}

// PeerFromAdvertisement returns the descriptor of a discovered peer.
func PeerFromAdvertisement(adv Advertisement) Peer {
	return Peer{Address: adv.Address, Name: adv.Name}
}

// String implements fmt.Stringer.
func (p Peer) String() string {
	if p.Name == "" {
		return p.Address
	}
	return p.Name + "@" + p.Address
}

// MatchPrefix returns the advertisements whose name starts with prefix,
// keeping the first result per address.
func MatchPrefix(advs []Advertisement, prefix string) []Advertisement {
	seen := make(map[string]bool, len(advs))
	out := make([]Advertisement, 0, len(advs))
	for _, adv := range advs {
		if !strings.HasPrefix(adv.Name, prefix) || seen[adv.Address] {
			continue
		}
		seen[adv.Address] = true
		out = append(out, adv)
	}
	return out
}
