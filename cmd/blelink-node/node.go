package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blelink/blelink-go/pkg/iface"
	"github.com/blelink/blelink-go/pkg/radio"
)

// node owns the interfaces of one process. It plays the routing stack's part:
// it logs what arrives and lets the console inject payloads.
type node struct {
	logger *slog.Logger

	mu         sync.Mutex
	interfaces []*iface.Interface
	radios     []radio.Radio
	onInbound  func(payload []byte, from *iface.Interface)

	received atomic.Uint64
}

func newNode(logger *slog.Logger) *node {
	return &node{logger: logger}
}

// Inbound implements iface.Owner.
func (n *node) Inbound(payload []byte, from *iface.Interface) {
	n.received.Add(1)
	n.logger.Info("payload received", "iface", from.Name(), "size", len(payload))

	n.mu.Lock()
	cb := n.onInbound
	n.mu.Unlock()
	if cb != nil {
		cb(payload, from)
	}
}

// OnInbound registers a callback for every received payload.
func (n *node) OnInbound(cb func(payload []byte, from *iface.Interface)) {
	n.mu.Lock()
	n.onInbound = cb
	n.mu.Unlock()
}

// add builds and starts one interface on its own radio.
func (n *node) add(ctx context.Context, cfg iface.Config, opts radioOptions) error {
	r, err := newRadio(opts, cfg.Logger)
	if err != nil {
		return fmt.Errorf("radio for %q: %w", cfg.Name, err)
	}

	ifc, err := iface.New(n, cfg, r)
	if err != nil {
		_ = r.Close()
		return err
	}
	if err := ifc.Start(ctx); err != nil {
		_ = r.Close()
		return err
	}

	n.mu.Lock()
	n.interfaces = append(n.interfaces, ifc)
	n.radios = append(n.radios, r)
	n.mu.Unlock()

	n.logger.Info("interface up", "iface", ifc.String(), "mtu", ifc.MTU(), "bitrate", ifc.Bitrate())
	return nil
}

// Interfaces returns the running interfaces.
func (n *node) Interfaces() []*iface.Interface {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*iface.Interface(nil), n.interfaces...)
}

// Send offers payload to every online interface and returns how many took it.
func (n *node) Send(payload []byte) int {
	sent := 0
	for _, ifc := range n.Interfaces() {
		if ifc.Online() {
			ifc.ProcessOutgoing(payload)
			sent++
		}
	}
	return sent
}

// Detach takes every interface offline.
func (n *node) Detach() {
	for _, ifc := range n.Interfaces() {
		ifc.Detach()
	}
}

// Shutdown detaches, waits up to grace for the workers, then closes the
// interfaces and radios.
func (n *node) Shutdown(grace time.Duration) error {
	n.Detach()

	done := make(chan struct{})
	go func() {
		for _, ifc := range n.Interfaces() {
			ifc.Wait()
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(grace):
		n.logger.Warn("interfaces still busy, cancelling", "grace", grace)
	}

	var errs []error
	for _, ifc := range n.Interfaces() {
		errs = append(errs, ifc.Close())
	}
	n.mu.Lock()
	radios := n.radios
	n.radios = nil
	n.mu.Unlock()
	for _, r := range radios {
		errs = append(errs, r.Close())
	}
	return errors.Join(errs...)
}

// Received is the number of payloads delivered by all interfaces.
func (n *node) Received() uint64 {
	return n.received.Load()
}
