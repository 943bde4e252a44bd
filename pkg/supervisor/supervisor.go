package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/blelink/blelink-go/pkg/fragment"
	"github.com/blelink/blelink-go/pkg/log"
	"github.com/blelink/blelink-go/pkg/radio"
	"github.com/blelink/blelink-go/pkg/txqueue"
)

// Supervisor defaults.
const (
	DefaultPollInterval = 100 * time.Millisecond
	DefaultScanPause    = 1 * time.Second

	inboundBuffer = 64
)

// Configuration errors.
var (
	ErrNoStrategy = errors.New("no connection strategy")
	ErrNoRadio    = errors.New("no radio")
	ErrNoQueue    = errors.New("no transmit queue")
)

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the default Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Config configures a Supervisor.
type Config struct {
	// Strategy is PointToPoint or Discovery. Required.
	Strategy Strategy

	// Radio provides BLE access. Required.
	Radio radio.Radio

	// Queue holds payloads waiting for the radio. Required.
	Queue *txqueue.Queue

	// Deliver receives every complete, non-duplicate payload.
	Deliver func(payload []byte)

	// Online reports whether workers should keep running. Nil means always.
	Online func() bool

	// OnStateChange is called from the worker goroutine after each transition.
	OnStateChange func(old, new State)

	// Interface names the owning interface in log output.
	Interface string

	// PollInterval is the queue drain cadence while connected.
	PollInterval time.Duration

	// FrameDelay separates consecutive frame writes of one payload.
	FrameDelay time.Duration

	// ScanPause separates discovery sweeps.
	ScanPause time.Duration

	// DedupCapacity bounds the duplicate window. Zero uses the default.
	DedupCapacity int

	// ReassemblyTimeout evicts partial payloads. Zero keeps them forever.
	ReassemblyTimeout time.Duration

	// Sleeper replaces time-based waits in tests.
	Sleeper Sleeper

	// Clock replaces time.Now in tests.
	Clock func() time.Time

	// Logger receives operational debug logs. Nil disables logging.
	Logger *slog.Logger

	// ProtocolLogger receives frame, payload and state events.
	ProtocolLogger log.Logger
}

// Stats holds cumulative supervisor counters.
type Stats struct {
	TxBytes         uint64
	TxPayloads      uint64
	FramesSent      uint64
	FramesReceived  uint64
	Duplicates      uint64
	Malformed       uint64
	Dropped         uint64
	ConnectFailures uint64
}

type counters struct {
	txBytes         atomic.Uint64
	txPayloads      atomic.Uint64
	framesSent      atomic.Uint64
	framesReceived  atomic.Uint64
	duplicates      atomic.Uint64
	malformed       atomic.Uint64
	dropped         atomic.Uint64
	connectFailures atomic.Uint64
}

// inboundFrame is a raw frame waiting for the dispatch worker.
type inboundFrame struct {
	from    string
	session string
	data    []byte
}

// Supervisor drives one radio according to its Strategy.
type Supervisor struct {
	config Config
	plog   log.Logger

	state   atomic.Uint32
	retry   *RetryPolicy
	inbound chan inboundFrame
	stats   counters

	// runCtx is set by Run for the peripheral write handler.
	runCtx atomic.Pointer[context.Context]
}

// New validates config and creates a supervisor. Nothing runs until Run.
func New(config Config) (*Supervisor, error) {
	if config.Strategy == nil {
		return nil, ErrNoStrategy
	}
	if config.Radio == nil {
		return nil, ErrNoRadio
	}
	if config.Queue == nil {
		return nil, ErrNoQueue
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultPollInterval
	}
	if config.ScanPause <= 0 {
		config.ScanPause = DefaultScanPause
	}
	if config.Sleeper == nil {
		config.Sleeper = Sleep
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	if config.Deliver == nil {
		config.Deliver = func([]byte) {}
	}

	s := &Supervisor{
		config:  config,
		plog:    log.OrNoop(config.ProtocolLogger),
		inbound: make(chan inboundFrame, inboundBuffer),
	}
	if p, ok := config.Strategy.(PointToPoint); ok {
		interval := p.ConnectionInterval
		if interval <= 0 {
			interval = DefaultConnectionInterval
		}
		s.retry = NewRetryPolicy(interval)
	}
	return s, nil
}

// State returns the current connection state.
func (s *Supervisor) State() State {
	return State(s.state.Load())
}

// Retry returns the point-to-point retry policy, or nil for discovery.
func (s *Supervisor) Retry() *RetryPolicy {
	return s.retry
}

// Strategy returns the configured strategy.
func (s *Supervisor) Strategy() Strategy {
	return s.config.Strategy
}

// Stats returns a snapshot of the counters.
func (s *Supervisor) Stats() Stats {
	return Stats{
		TxBytes:         s.stats.txBytes.Load(),
		TxPayloads:      s.stats.txPayloads.Load(),
		FramesSent:      s.stats.framesSent.Load(),
		FramesReceived:  s.stats.framesReceived.Load(),
		Duplicates:      s.stats.duplicates.Load(),
		Malformed:       s.stats.malformed.Load(),
		Dropped:         s.stats.dropped.Load(),
		ConnectFailures: s.stats.connectFailures.Load(),
	}
}

// Run starts the workers and blocks until they have all stopped, either
// because Online reported false or ctx was cancelled. Runtime radio errors
// are logged, not returned.
func (s *Supervisor) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.runCtx.Store(&ctx)
	if err := s.config.Radio.Serve(s.handleWrite); err != nil {
		s.debug("peripheral unavailable", "error", err)
	}

	workers := s.config.Strategy.workers(s)
	radioDone := make(chan struct{})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.dispatch(gctx, radioDone)
	})
	g.Go(func() error {
		defer close(radioDone)

		var wg errgroup.Group
		for _, w := range workers {
			wg.Go(func() error { return w(gctx) })
		}
		err := wg.Wait()
		if serr := s.config.Radio.Serve(nil); serr != nil {
			s.debug("failed to release peripheral", "error", serr)
		}
		return err
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// handleWrite is the peripheral write handler.
func (s *Supervisor) handleWrite(from string, frame []byte) {
	ctxp := s.runCtx.Load()
	if ctxp == nil {
		return
	}
	select {
	case s.inbound <- inboundFrame{from: from, data: frame}:
	case <-(*ctxp).Done():
	}
}

// submit queues a frame read by a worker for the dispatch worker.
func (s *Supervisor) submit(ctx context.Context, from, session string, frame []byte) {
	select {
	case s.inbound <- inboundFrame{from: from, session: session, data: frame}:
	case <-ctx.Done():
	}
}

func (s *Supervisor) online() bool {
	return s.config.Online == nil || s.config.Online()
}

// running reports whether a worker loop should continue.
func (s *Supervisor) running(ctx context.Context) bool {
	return ctx.Err() == nil && s.online()
}

func (s *Supervisor) sleep(ctx context.Context, d time.Duration) error {
	return s.config.Sleeper(ctx, d)
}

// setState records a transition. Only the connection or scan worker calls it.
func (s *Supervisor) setState(next State, session, peer, reason string) {
	prev := State(s.state.Swap(uint32(next)))
	if prev == next {
		return
	}
	s.logState(prev, next, session, peer, reason)
	if s.config.OnStateChange != nil {
		s.config.OnStateChange(prev, next)
	}
}

// sendPayload fragments payload and writes each frame in index order.
func (s *Supervisor) sendPayload(ctx context.Context, ch radio.Characteristic, payload []byte, session, peer string) error {
	mtu := s.config.Radio.MTU() - fragment.HeaderSize
	_, frames, err := fragment.Fragment(payload, mtu, s.config.Clock())
	if err != nil {
		s.stats.dropped.Add(1)
		return err
	}

	for i, f := range frames {
		if i > 0 && s.config.FrameDelay > 0 {
			if err := s.sleep(ctx, s.config.FrameDelay); err != nil {
				s.stats.dropped.Add(1)
				return err
			}
		}
		wire := f.Encode()
		if err := ch.Write(ctx, wire); err != nil {
			s.stats.dropped.Add(1)
			return err
		}
		s.stats.framesSent.Add(1)
		s.logFrame(log.DirectionOut, session, peer, f, wire)
	}

	s.stats.txBytes.Add(uint64(len(payload)))
	s.stats.txPayloads.Add(1)
	s.logPayload(log.DirectionOut, session, peer, frames[0].PacketID, len(payload), len(frames), false)
	return nil
}

// readInto reads the characteristic and hands a non-empty value to the
// dispatch worker.
func (s *Supervisor) readInto(ctx context.Context, ch radio.Characteristic, session, peer string) error {
	value, err := ch.Read(ctx)
	if err != nil {
		return err
	}
	if len(value) > 0 {
		s.submit(ctx, peer, session, value)
	}
	return nil
}

func (s *Supervisor) debug(msg string, args ...any) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, append([]any{"iface", s.config.Interface}, args...)...)
	}
}
