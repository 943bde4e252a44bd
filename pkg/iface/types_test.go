package iface

import (
	"errors"
	"testing"
	"time"

	"github.com/blelink/blelink-go/pkg/supervisor"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"point-to-point ok", func(c *Config) { c.PeerAddress = "F9:7F:43:01:0A:D4" }, nil},
		{"point-to-point missing peer", func(c *Config) {}, ErrMissingPeerAddress},
		{"point-to-point blank peer", func(c *Config) { c.PeerAddress = "  " }, ErrMissingPeerAddress},
		{"discovery needs no peer", func(c *Config) { c.Mode = ModeDiscovery }, nil},
		{"unknown mode", func(c *Config) { c.Mode = "mesh" }, ErrUnknownMode},
		{"negative interval", func(c *Config) {
			c.Mode = ModeDiscovery
			c.ScanInterval = -time.Second
		}, ErrInvalidConfig},
		{"negative frame delay", func(c *Config) {
			c.PeerAddress = "AA"
			c.FrameDelay = -1
		}, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want it to wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Mode != ModePointToPoint {
		t.Errorf("Mode = %q, want %q", cfg.Mode, ModePointToPoint)
	}
	if cfg.ConnectionInterval != 5*time.Second {
		t.Errorf("ConnectionInterval = %v, want 5s", cfg.ConnectionInterval)
	}
	if cfg.ScanInterval != 5*time.Second {
		t.Errorf("ScanInterval = %v, want 5s", cfg.ScanInterval)
	}
	if cfg.AdvertiseInterval != 2*time.Second {
		t.Errorf("AdvertiseInterval = %v, want 2s", cfg.AdvertiseInterval)
	}
	if cfg.DedupCapacity != 100 {
		t.Errorf("DedupCapacity = %d, want 100", cfg.DedupCapacity)
	}
}

func TestAdvertisedName(t *testing.T) {
	tests := []struct {
		name, deviceName, want string
	}{
		{"BLE Discovery", "", "RNS-BLE-Discovery"},
		{"  spaced   out  ", "", "RNS-spaced-out"},
		{"RNS-Already", "", "RNS-Already"},
		{"", "", "RNS-Node"},
		{"ignored", "RNS-Test-Device-A", "RNS-Test-Device-A"},
	}
	for _, tt := range tests {
		cfg := Config{Name: tt.name, DeviceName: tt.deviceName}
		if got := cfg.AdvertisedName(); got != tt.want {
			t.Errorf("AdvertisedName(%q, %q) = %q, want %q", tt.name, tt.deviceName, got, tt.want)
		}
	}
}

func TestStrategySelection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PeerAddress = "AA"
	cfg.ConnectionInterval = 3 * time.Second
	p, ok := cfg.strategy().(supervisor.PointToPoint)
	if !ok {
		t.Fatalf("strategy = %T, want PointToPoint", cfg.strategy())
	}
	if p.Peer != "AA" || p.ConnectionInterval != 3*time.Second {
		t.Errorf("PointToPoint = %+v", p)
	}

	cfg = DefaultConfig()
	cfg.Mode = ModeDiscovery
	cfg.Name = "Kitchen"
	d, ok := cfg.strategy().(supervisor.Discovery)
	if !ok {
		t.Fatalf("strategy = %T, want Discovery", cfg.strategy())
	}
	if d.DeviceName != "RNS-Kitchen" {
		t.Errorf("DeviceName = %q, want RNS-Kitchen", d.DeviceName)
	}
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0 B/s"},
		{512, "512.0 B/s"},
		{1536, "1.5 KiB/s"},
		{3 * 1024 * 1024, "3.0 MiB/s"},
	}
	for _, tt := range tests {
		if got := formatRate(tt.in); got != tt.want {
			t.Errorf("formatRate(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
