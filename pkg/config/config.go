// Package config loads node configuration files.
//
// A file lists interfaces the way a routing stack's configuration section
// does; each enabled entry of type BluetoothInterface becomes one
// iface.Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/blelink/blelink-go/pkg/iface"
)

// TypeBluetooth is the interface type this module implements.
const TypeBluetooth = "BluetoothInterface"

// ErrNoInterfaces is returned when a file declares no interfaces at all.
var ErrNoInterfaces = errors.New("no interfaces declared")

// LoadError describes a configuration file that could not be used.
type LoadError struct {
	File    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString("config")
	if e.File != "" {
		b.WriteString(" ")
		b.WriteString(e.File)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Seconds is a duration written as a float number of seconds.
type Seconds float64

// Duration converts s to a time.Duration.
func (s Seconds) Duration() time.Duration {
	return time.Duration(float64(s) * float64(time.Second))
}

// File is the root of a configuration file.
type File struct {
	Logging    Logging     `yaml:"logging"`
	Interfaces []Interface `yaml:"interfaces"`
}

// Logging configures the node's log output.
type Logging struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// ProtocolLog is the path of a protocol capture file.
	ProtocolLog string `yaml:"protocol_log"`
}

// Interface is one entry of the interfaces list.
type Interface struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Enabled *bool  `yaml:"enabled"`

	// Mode is optional; it is inferred from peer_address when empty.
	Mode string `yaml:"mode"`

	PeerAddress        string  `yaml:"peer_address"`
	ConnectionInterval Seconds `yaml:"connection_interval"`

	DeviceName        string  `yaml:"device_name"`
	ScanInterval      Seconds `yaml:"scan_interval"`
	AdvertiseInterval Seconds `yaml:"advertise_interval"`

	DedupCapacity     int     `yaml:"dedup_capacity"`
	ReassemblyTimeout Seconds `yaml:"reassembly_timeout"`
	FrameDelay        Seconds `yaml:"frame_delay"`
}

// IsEnabled reports whether the entry is enabled. Entries without an
// enabled key are enabled.
func (e *Interface) IsEnabled() bool {
	return e.Enabled == nil || *e.Enabled
}

// IsBluetooth reports whether the entry is handled by this module.
func (e *Interface) IsBluetooth() bool {
	return e.Type == "" || e.Type == TypeBluetooth
}

// mode returns the explicit mode or the one implied by the other keys.
func (e *Interface) mode() iface.Mode {
	switch {
	case e.Mode != "":
		return iface.Mode(e.Mode)
	case e.PeerAddress != "":
		return iface.ModePointToPoint
	case e.DeviceName != "" || e.ScanInterval > 0 || e.AdvertiseInterval > 0:
		return iface.ModeDiscovery
	default:
		return iface.ModePointToPoint
	}
}

// ToInterfaceConfig maps the entry onto iface defaults and validates the
// result.
func (e *Interface) ToInterfaceConfig() (iface.Config, error) {
	cfg := iface.DefaultConfig()
	cfg.Name = e.Name
	cfg.Mode = e.mode()
	cfg.PeerAddress = e.PeerAddress
	cfg.DeviceName = e.DeviceName

	if e.ConnectionInterval != 0 {
		cfg.ConnectionInterval = e.ConnectionInterval.Duration()
	}
	if e.ScanInterval != 0 {
		cfg.ScanInterval = e.ScanInterval.Duration()
	}
	if e.AdvertiseInterval != 0 {
		cfg.AdvertiseInterval = e.AdvertiseInterval.Duration()
	}
	if e.DedupCapacity != 0 {
		cfg.DedupCapacity = e.DedupCapacity
	}
	if e.FrameDelay != 0 {
		cfg.FrameDelay = e.FrameDelay.Duration()
	}
	cfg.ReassemblyTimeout = e.ReassemblyTimeout.Duration()

	if err := cfg.Validate(); err != nil {
		return iface.Config{}, fmt.Errorf("interface %q: %w", e.Name, err)
	}
	return cfg, nil
}

// Active returns the configs of all enabled Bluetooth entries, in file
// order.
func (f *File) Active() ([]iface.Config, error) {
	var out []iface.Config
	for i := range f.Interfaces {
		e := &f.Interfaces[i]
		if !e.IsEnabled() || !e.IsBluetooth() {
			continue
		}
		cfg, err := e.ToInterfaceConfig()
		if err != nil {
			return nil, err
		}
		out = append(out, cfg)
	}
	return out, nil
}

// Parse parses a configuration file from YAML bytes.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &LoadError{Message: "parsing yaml", Cause: err}
	}
	if len(f.Interfaces) == 0 {
		return nil, &LoadError{Message: "validating", Cause: ErrNoInterfaces}
	}

	seen := make(map[string]bool, len(f.Interfaces))
	for i, e := range f.Interfaces {
		if strings.TrimSpace(e.Name) == "" {
			return nil, &LoadError{Message: fmt.Sprintf("interface #%d has no name", i+1)}
		}
		if seen[e.Name] {
			return nil, &LoadError{Message: fmt.Sprintf("duplicate interface name %q", e.Name)}
		}
		seen[e.Name] = true
	}
	return &f, nil
}

// Load reads and parses a configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "reading", Cause: err}
	}
	f, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
		}
		return nil, err
	}
	return f, nil
}
