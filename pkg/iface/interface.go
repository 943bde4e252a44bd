package iface

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/blelink/blelink-go/pkg/fragment"
	"github.com/blelink/blelink-go/pkg/radio"
	"github.com/blelink/blelink-go/pkg/supervisor"
	"github.com/blelink/blelink-go/pkg/txqueue"
)

// Interface is one BLE link attached to an owner.
type Interface struct {
	config Config
	owner  Owner
	radio  radio.Radio
	queue  *txqueue.Queue
	sup    *supervisor.Supervisor

	online     atomic.Bool
	started    atomic.Bool
	rxBytes    atomic.Uint64
	rxPayloads atomic.Uint64
	offline    atomic.Uint64

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New validates cfg and builds an Interface. Nothing runs until Start.
func New(owner Owner, cfg Config, r radio.Radio) (*Interface, error) {
	if owner == nil {
		return nil, ErrNoOwner
	}
	if r == nil {
		return nil, ErrNoRadio
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.StatsInterval == 0 {
		cfg.StatsInterval = DefaultStatsInterval
	}

	i := &Interface{
		config: cfg,
		owner:  owner,
		radio:  r,
		queue:  txqueue.New(),
		done:   make(chan struct{}),
	}

	sup, err := supervisor.New(supervisor.Config{
		Strategy:          cfg.strategy(),
		Radio:             r,
		Queue:             i.queue,
		Deliver:           i.ProcessIncoming,
		Online:            i.online.Load,
		Interface:         cfg.Name,
		FrameDelay:        cfg.FrameDelay,
		DedupCapacity:     cfg.DedupCapacity,
		ReassemblyTimeout: cfg.ReassemblyTimeout,
		Logger:            cfg.Logger,
		ProtocolLogger:    cfg.ProtocolLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	i.sup = sup
	return i, nil
}

// Start brings the interface online and launches the supervisor and the
// housekeeping worker. It returns immediately.
func (i *Interface) Start(ctx context.Context) error {
	if !i.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	i.mu.Lock()
	i.cancel = cancel
	i.mu.Unlock()

	i.online.Store(true)
	i.logInfo("interface started", "strategy", i.sup.Strategy().String(), "mtu", i.MTU())

	g, gctx := errgroup.WithContext(ctx)
	hctx, stopHousekeeping := context.WithCancel(gctx)
	g.Go(func() error {
		defer stopHousekeeping()
		return i.sup.Run(gctx)
	})
	g.Go(func() error {
		i.housekeeping(hctx)
		return nil
	})

	go func() {
		defer close(i.done)
		defer cancel()
		if err := g.Wait(); err != nil {
			i.debug("workers stopped with error", "error", err)
		}
		i.online.Store(false)
		i.logInfo("interface stopped")
	}()
	return nil
}

// Wait blocks until the workers started by Start have exited. It returns
// immediately if Start was never called.
func (i *Interface) Wait() {
	if !i.started.Load() {
		return
	}
	<-i.done
}

// Detach takes the interface offline. Workers notice at their next loop
// iteration; in-flight radio calls are not interrupted.
func (i *Interface) Detach() {
	i.online.Store(false)
	i.debug("detached")
}

// Close detaches, cancels in-flight radio calls and waits for the workers.
func (i *Interface) Close() error {
	i.Detach()
	i.mu.Lock()
	cancel := i.cancel
	i.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	i.Wait()
	return nil
}

// Online reports whether the interface accepts outbound payloads.
func (i *Interface) Online() bool {
	return i.online.Load()
}

// ProcessOutgoing queues payload for transmission. Payloads offered while
// offline are dropped silently.
func (i *Interface) ProcessOutgoing(payload []byte) {
	if !i.online.Load() {
		i.offline.Add(1)
		i.debug("dropping outbound payload while offline", "size", len(payload))
		return
	}
	i.queue.Enqueue(payload)
	i.debug("queued outbound payload", "size", len(payload), "queued", i.queue.Len())
}

// ProcessIncoming hands a complete, deduplicated payload to the owner.
func (i *Interface) ProcessIncoming(payload []byte) {
	i.rxBytes.Add(uint64(len(payload)))
	i.rxPayloads.Add(1)
	i.debug("received payload", "size", len(payload))
	i.owner.Inbound(payload, i)
}

// MTU is the largest payload chunk carried by one frame.
func (i *Interface) MTU() int {
	return i.radio.MTU() - fragment.HeaderSize
}

// ShouldIngressLimit always reports false. The link never signals
// backpressure.
func (i *Interface) ShouldIngressLimit() bool {
	return false
}

// Bitrate is the nominal link speed in bits per second.
func (i *Interface) Bitrate() int {
	return BitrateGuess
}

// Name returns the configured interface name.
func (i *Interface) Name() string {
	return i.config.Name
}

// Mode returns the connection strategy in use.
func (i *Interface) Mode() Mode {
	return i.config.Mode
}

// State returns the supervisor's connection state.
func (i *Interface) State() supervisor.State {
	return i.sup.State()
}

// Stats returns a snapshot of the counters.
func (i *Interface) Stats() Snapshot {
	s := i.sup.Stats()
	return Snapshot{
		TxBytes:         s.TxBytes,
		RxBytes:         i.rxBytes.Load(),
		TxPayloads:      s.TxPayloads,
		RxPayloads:      i.rxPayloads.Load(),
		Duplicates:      s.Duplicates,
		Malformed:       s.Malformed,
		Dropped:         s.Dropped + i.offline.Load(),
		ConnectFailures: s.ConnectFailures,
		Queued:          i.queue.Len(),
		State:           i.sup.State(),
	}
}

// String implements fmt.Stringer.
func (i *Interface) String() string {
	if i.config.Mode == ModeDiscovery {
		return fmt.Sprintf("BluetoothInterface[%s (discovery)]", i.config.Name)
	}
	return fmt.Sprintf("BluetoothInterface[%s -> %s]", i.config.Name, i.config.PeerAddress)
}

func (i *Interface) debug(msg string, args ...any) {
	if i.config.Logger != nil {
		i.config.Logger.Debug(msg, append([]any{"iface", i.config.Name}, args...)...)
	}
}

func (i *Interface) logInfo(msg string, args ...any) {
	if i.config.Logger != nil {
		i.config.Logger.Info(msg, append([]any{"iface", i.config.Name}, args...)...)
	}
}
