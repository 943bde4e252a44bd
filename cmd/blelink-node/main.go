// Command blelink-node runs BLE link interfaces outside a routing stack.
//
// It loads a YAML configuration listing interfaces, or builds a single
// interface from flags, starts each on its own radio and logs every payload
// that arrives. An optional console queues payloads by hand.
//
// Usage:
//
//	blelink-node [flags]
//
// Flags:
//
//	-config string        Configuration file path
//	-peer string          Peer address for a point-to-point interface
//	-name string          Interface name (default "BLE Interface")
//	-device-name string   Advertised name in discovery mode
//	-radio string         Radio backend: bluez, net (default "bluez")
//	-listen string        Listen address of the net radio (default ":0")
//	-mtu int              Radio payload size per write (default 512)
//	-log-level string     Log level: debug, info, warn, error
//	-protocol-log string  File path for protocol event logging (CBOR format)
//	-protocol-log-max-mb int  Rotate the capture file at this size (0 disables)
//	-interactive          Start the interactive console
//
// Examples:
//
//	# Persistent link to a paired peer
//	blelink-node -peer F9:7F:43:01:0A:D4
//
//	# Discover peers on the LAN without BLE hardware
//	blelink-node -radio net -name "Bench A" -interactive
//
//	# Everything from a config file, with a protocol capture
//	blelink-node -config /etc/blelink/node.yaml -protocol-log node.blog
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/blelink/blelink-go/cmd/blelink-node/interactive"
	"github.com/blelink/blelink-go/pkg/config"
	"github.com/blelink/blelink-go/pkg/iface"
	blelog "github.com/blelink/blelink-go/pkg/log"
	"github.com/blelink/blelink-go/pkg/radio"
)

// shutdownGrace bounds how long Detach may take before radio calls are
// cancelled.
const shutdownGrace = 10 * time.Second

var (
	configFile  = flag.String("config", "", "Configuration file path")
	peer        = flag.String("peer", "", "Peer address for a point-to-point interface")
	name        = flag.String("name", "BLE Interface", "Interface name")
	deviceName  = flag.String("device-name", "", "Advertised name in discovery mode (derived from -name if empty)")
	radioKind   = flag.String("radio", radioBluez, "Radio backend: bluez, net")
	listen      = flag.String("listen", "", "Listen address of the net radio")
	netIface    = flag.String("net-iface", "", "Network interface for mDNS (net radio only)")
	mtu         = flag.Int("mtu", radio.DefaultMTU, "Radio payload size per write")
	logLevel    = flag.String("log-level", "", "Log level: debug, info, warn, error (default info)")
	protocolLog = flag.String("protocol-log", "", "File path for protocol event logging (CBOR format)")
	captureMax  = flag.Int("protocol-log-max-mb", 0, "Rotate the capture file at this size in MiB, keeping 3 old files (0 disables)")
	interact    = flag.Bool("interactive", false, "Start the interactive console")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	file, err := loadConfig()
	if err != nil {
		return err
	}

	level := *logLevel
	if level == "" {
		level = file.Logging.Level
	}
	slogLevel, err := parseLevel(level)
	if err != nil {
		return err
	}

	capture := *protocolLog
	if capture == "" {
		capture = file.Logging.ProtocolLog
	}

	cfgs, err := file.Active()
	if err != nil {
		return err
	}
	if len(cfgs) == 0 {
		return fmt.Errorf("no enabled %s entries", config.TypeBluetooth)
	}
	opts := radioOptions{Kind: *radioKind, MTU: *mtu, Listen: *listen, Interface: *netIface}
	if err := opts.validate(len(cfgs)); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The console must exist before the logger so log lines do not
	// overwrite the prompt.
	n := newNode(nil)
	var console *interactive.Console
	var logOut io.Writer = os.Stderr
	if *interact {
		console, err = interactive.New(n)
		if err != nil {
			return err
		}
		logOut = console.Stderr()
		n.OnInbound(console.ShowInbound)
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slogLevel}))
	n.logger = logger

	var protocolLogger blelog.Logger = blelog.NoopLogger{}
	if capture != "" {
		fl, err := blelog.NewFileLogger(capture,
			blelog.WithHeader(captureHeader(cfgs, opts.MTU)),
			blelog.WithRotation(int64(*captureMax)<<20, 3))
		if err != nil {
			return fmt.Errorf("failed to create protocol logger: %w", err)
		}
		defer fl.Close()
		protocolLogger = fl
		logger.Info("protocol logging", "file", capture)
	}
	if slogLevel <= slog.LevelDebug {
		protocolLogger = blelog.Tee(protocolLogger, blelog.NewSlogAdapter(logger))
	}

	for _, cfg := range cfgs {
		cfg.Logger = logger
		cfg.ProtocolLogger = protocolLogger
		if err := n.add(ctx, cfg, opts); err != nil {
			_ = n.Shutdown(shutdownGrace)
			return err
		}
	}

	if console != nil {
		go console.Run(ctx, cancel)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("received signal", "signal", sig.String())
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	if err := n.Shutdown(shutdownGrace); err != nil {
		logger.Warn("shutdown", "error", err)
	}
	return nil
}

// captureHeader describes this node at the top of a capture file.
func captureHeader(cfgs []iface.Config, mtu int) blelog.Header {
	node, _ := os.Hostname()
	names := make([]string, 0, len(cfgs))
	for _, cfg := range cfgs {
		names = append(names, cfg.Name)
	}
	return blelog.Header{
		Node:           node,
		Interfaces:     names,
		MTU:            mtu,
		Service:        radio.ServiceUUID.String(),
		Characteristic: radio.CharacteristicUUID.String(),
	}
}

// loadConfig reads -config, or builds a one-interface file from flags.
func loadConfig() (*config.File, error) {
	if *configFile != "" {
		return config.Load(*configFile)
	}

	entry := config.Interface{
		Name:        *name,
		Type:        config.TypeBluetooth,
		PeerAddress: *peer,
		DeviceName:  *deviceName,
	}
	if *peer == "" {
		entry.Mode = string(iface.ModeDiscovery)
	}
	return &config.File{Interfaces: []config.Interface{entry}}, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q (must be debug, info, warn, or error)", s)
	}
}
