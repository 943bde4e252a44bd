package supervisor

import (
	"context"
	"fmt"
	"time"

	"github.com/blelink/blelink-go/pkg/radio"
)

// Strategy selects how the supervisor finds and talks to peers.
// Implementations are PointToPoint and Discovery.
type Strategy interface {
	fmt.Stringer

	workers(s *Supervisor) []func(ctx context.Context) error
}

// Strategy defaults.
const (
	DefaultConnectionInterval = 5 * time.Second
	DefaultScanInterval       = 5 * time.Second
	DefaultAdvertiseInterval  = 2 * time.Second
)

// PointToPoint keeps a persistent session with one configured peer.
type PointToPoint struct {
	// Peer is the radio address to dial.
	Peer string

	// ConnectionInterval is the health-check cadence and the base of the
	// retry delay.
	ConnectionInterval time.Duration
}

// String implements fmt.Stringer.
func (p PointToPoint) String() string {
	return "point-to-point " + p.Peer
}

func (p PointToPoint) workers(s *Supervisor) []func(ctx context.Context) error {
	if p.ConnectionInterval <= 0 {
		p.ConnectionInterval = DefaultConnectionInterval
	}
	w := &pointToPoint{s: s, cfg: p}
	return []func(ctx context.Context) error{w.run}
}

// Discovery finds peers by scanning and announces this node.
type Discovery struct {
	// DeviceName is the name this node advertises.
	DeviceName string

	// ScanInterval is the duration of each scan sweep.
	ScanInterval time.Duration

	// AdvertiseInterval is the advertisement refresh cadence.
	AdvertiseInterval time.Duration

	// NamePrefix filters scan results. Default radio.NamePrefix.
	NamePrefix string
}

// String implements fmt.Stringer.
func (d Discovery) String() string {
	return "discovery " + d.DeviceName
}

func (d Discovery) workers(s *Supervisor) []func(ctx context.Context) error {
	if d.ScanInterval <= 0 {
		d.ScanInterval = DefaultScanInterval
	}
	if d.AdvertiseInterval <= 0 {
		d.AdvertiseInterval = DefaultAdvertiseInterval
	}
	if d.NamePrefix == "" {
		d.NamePrefix = radio.NamePrefix
	}
	w := &discovery{s: s, cfg: d}
	return []func(ctx context.Context) error{w.scanLoop, w.advertiseLoop}
}
