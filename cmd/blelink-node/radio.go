package main

import (
	"fmt"
	"log/slog"

	"github.com/blelink/blelink-go/pkg/radio"
	"github.com/blelink/blelink-go/pkg/radio/netradio"
)

// Radio backends.
const (
	radioBluez = "bluez"
	radioNet   = "net"
)

// radioOptions selects and configures the backend for every interface.
type radioOptions struct {
	Kind      string
	MTU       int
	Listen    string
	Interface string
}

func (o radioOptions) validate(interfaces int) error {
	switch o.Kind {
	case radioBluez:
		if interfaces > 1 {
			return fmt.Errorf("the bluez radio drives one adapter; %d interfaces enabled", interfaces)
		}
	case radioNet:
		if interfaces > 1 && o.Listen != "" && o.Listen != ":0" {
			return fmt.Errorf("-listen %s cannot be shared by %d interfaces", o.Listen, interfaces)
		}
	default:
		return fmt.Errorf("unknown radio %q (must be %s or %s)", o.Kind, radioBluez, radioNet)
	}
	return nil
}

func newRadio(o radioOptions, logger *slog.Logger) (radio.Radio, error) {
	switch o.Kind {
	case radioBluez:
		return newBluezRadio(o.MTU, logger)
	case radioNet:
		cfg := netradio.DefaultConfig()
		if o.Listen != "" {
			cfg.ListenAddr = o.Listen
		}
		if o.MTU > 0 {
			cfg.MTU = o.MTU
		}
		cfg.Interface = o.Interface
		cfg.Logger = logger
		r, err := netradio.New(cfg)
		if err != nil {
			return nil, err
		}
		if logger != nil {
			logger.Info("net radio listening", "addr", r.Addr().String())
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown radio %q", o.Kind)
	}
}
