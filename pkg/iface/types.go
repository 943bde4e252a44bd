package iface

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/blelink/blelink-go/pkg/dedup"
	"github.com/blelink/blelink-go/pkg/log"
	"github.com/blelink/blelink-go/pkg/radio"
	"github.com/blelink/blelink-go/pkg/supervisor"
)

// Interface errors.
var (
	ErrInvalidConfig      = errors.New("invalid interface configuration")
	ErrMissingPeerAddress = errors.New("peer_address must be specified for point-to-point mode")
	ErrUnknownMode        = errors.New("unknown mode")
	ErrNoOwner            = errors.New("owner is required")
	ErrNoRadio            = errors.New("radio is required")
	ErrAlreadyStarted     = errors.New("interface already started")
)

// BitrateGuess is the nominal link speed reported to the owner, in bits per
// second.
const BitrateGuess = 50000

// Defaults.
const (
	DefaultFrameDelay    = 10 * time.Millisecond
	DefaultStatsInterval = 10 * time.Second
)

// Mode selects the connection strategy.
type Mode string

const (
	// ModePointToPoint keeps one persistent session with PeerAddress.
	ModePointToPoint Mode = "point-to-point"

	// ModeDiscovery scans for and advertises to peers carrying the
	// protocol name prefix.
	ModeDiscovery Mode = "discovery"
)

// Owner receives complete inbound payloads.
type Owner interface {
	Inbound(payload []byte, from *Interface)
}

// Config configures an Interface.
type Config struct {
	// Name identifies the interface in logs and String.
	Name string

	// Mode selects point-to-point or discovery operation.
	Mode Mode

	// PeerAddress is the radio address to dial. Required in point-to-point
	// mode.
	PeerAddress string

	// ConnectionInterval is the health-check and retry cadence in
	// point-to-point mode.
	ConnectionInterval time.Duration

	// DeviceName is the advertised name in discovery mode. Derived from
	// Name when empty.
	DeviceName string

	// ScanInterval is the duration of each discovery sweep.
	ScanInterval time.Duration

	// AdvertiseInterval is the advertisement refresh cadence.
	AdvertiseInterval time.Duration

	// DedupCapacity is the size of the duplicate suppression window.
	DedupCapacity int

	// ReassemblyTimeout evicts partial reassemblies older than this.
	// Zero keeps them until completed.
	ReassemblyTimeout time.Duration

	// FrameDelay paces consecutive frame writes of one payload.
	FrameDelay time.Duration

	// StatsInterval is the housekeeping cadence.
	StatsInterval time.Duration

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// ProtocolLogger receives frame, payload and state events.
	// If nil, no protocol events are captured.
	ProtocolLogger log.Logger
}

// DefaultConfig returns a point-to-point Config with the documented defaults.
// PeerAddress still has to be set.
func DefaultConfig() Config {
	return Config{
		Mode:               ModePointToPoint,
		ConnectionInterval: supervisor.DefaultConnectionInterval,
		ScanInterval:       supervisor.DefaultScanInterval,
		AdvertiseInterval:  supervisor.DefaultAdvertiseInterval,
		DedupCapacity:      dedup.DefaultCapacity,
		FrameDelay:         DefaultFrameDelay,
		StatsInterval:      DefaultStatsInterval,
	}
}

// Validate checks the mode-specific required fields.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModePointToPoint:
		if strings.TrimSpace(c.PeerAddress) == "" {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrMissingPeerAddress)
		}
	case ModeDiscovery:
	default:
		return fmt.Errorf("%w: %w %q", ErrInvalidConfig, ErrUnknownMode, c.Mode)
	}

	if c.ConnectionInterval < 0 || c.ScanInterval < 0 || c.AdvertiseInterval < 0 {
		return fmt.Errorf("%w: intervals must not be negative", ErrInvalidConfig)
	}
	if c.FrameDelay < 0 || c.ReassemblyTimeout < 0 || c.StatsInterval < 0 {
		return fmt.Errorf("%w: delays must not be negative", ErrInvalidConfig)
	}
	return nil
}

// AdvertisedName returns DeviceName, or a name derived from Name.
func (c *Config) AdvertisedName() string {
	if c.DeviceName != "" {
		return c.DeviceName
	}
	return DeriveDeviceName(c.Name)
}

// DeriveDeviceName turns an interface name into an advertisable device name
// carrying the protocol prefix: "BLE Test" becomes "RNS-BLE-Test".
func DeriveDeviceName(name string) string {
	base := strings.Join(strings.Fields(name), "-")
	if base == "" {
		base = "Node"
	}
	if strings.HasPrefix(base, radio.NamePrefix) {
		return base
	}
	return radio.NamePrefix + base
}

func (c *Config) strategy() supervisor.Strategy {
	if c.Mode == ModeDiscovery {
		return supervisor.Discovery{
			DeviceName:        c.AdvertisedName(),
			ScanInterval:      c.ScanInterval,
			AdvertiseInterval: c.AdvertiseInterval,
		}
	}
	return supervisor.PointToPoint{
		Peer:               c.PeerAddress,
		ConnectionInterval: c.ConnectionInterval,
	}
}

// Snapshot is a point-in-time copy of the interface counters.
type Snapshot struct {
	TxBytes         uint64
	RxBytes         uint64
	TxPayloads      uint64
	RxPayloads      uint64
	Duplicates      uint64
	Malformed       uint64
	Dropped         uint64
	ConnectFailures uint64
	Queued          int
	State           supervisor.State
}
