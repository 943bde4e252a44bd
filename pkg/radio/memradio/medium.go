// Package memradio is an in-process radio medium for tests.
//
// Radios created from one Medium can scan, connect and write to each other
// without hardware. Faults can be injected per radio to exercise the
// supervisor's recovery paths.
package memradio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/blelink/blelink-go/pkg/radio"
)

// Medium connects the radios created from it.
type Medium struct {
	mu     sync.Mutex
	radios map[string]*Radio
	mtu    int
}

// NewMedium creates an empty medium with radio.DefaultMTU.
func NewMedium() *Medium {
	return &Medium{
		radios: make(map[string]*Radio),
		mtu:    radio.DefaultMTU,
	}
}

// SetMTU changes the frame limit of every radio on the medium.
func (m *Medium) SetMTU(mtu int) {
	m.mu.Lock()
	m.mtu = mtu
	m.mu.Unlock()
}

// NewRadio attaches a radio with the given address.
func (m *Medium) NewRadio(address string) *Radio {
	r := &Radio{
		medium:  m,
		address: address,
		caps:    radio.Capabilities{Read: true, Write: true},
	}
	m.mu.Lock()
	m.radios[address] = r
	m.mu.Unlock()
	return r
}

func (m *Medium) lookup(address string) (*Radio, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.radios[address]
	return r, ok
}

func (m *Medium) advertising(except string) []radio.Advertisement {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []radio.Advertisement
	for addr, r := range m.radios {
		if addr == except {
			continue
		}
		if name, ok := r.advertisedName(); ok {
			out = append(out, radio.Advertisement{Address: addr, Name: name})
		}
	}
	return out
}

// Radio is one node on a Medium.
type Radio struct {
	medium  *Medium
	address string

	mu          sync.Mutex
	name        string
	advertising bool
	handler     radio.WriteHandler
	value       []byte
	caps        radio.Capabilities
	hidden      bool
	closed      bool

	failConnects int
	failWrites   int

	connects int
	reads    int
	writes   int
}

// Address returns the radio's address on the medium.
func (r *Radio) Address() string {
	return r.address
}

// SetValue sets the value returned to centrals reading this radio's
// characteristic.
func (r *Radio) SetValue(v []byte) {
	r.mu.Lock()
	r.value = append([]byte(nil), v...)
	r.mu.Unlock()
}

// SetCapabilities sets the capabilities the hosted characteristic claims.
func (r *Radio) SetCapabilities(c radio.Capabilities) {
	r.mu.Lock()
	r.caps = c
	r.mu.Unlock()
}

// HideCharacteristic makes characteristic lookups against this radio fail
// with radio.ErrNotFound.
func (r *Radio) HideCharacteristic(hidden bool) {
	r.mu.Lock()
	r.hidden = hidden
	r.mu.Unlock()
}

// FailConnects makes the next n connection attempts to this radio fail.
func (r *Radio) FailConnects(n int) {
	r.mu.Lock()
	r.failConnects = n
	r.mu.Unlock()
}

// FailWrites makes the next n writes to this radio's characteristic fail.
func (r *Radio) FailWrites(n int) {
	r.mu.Lock()
	r.failWrites = n
	r.mu.Unlock()
}

// Counters returns how many connects, reads and writes this radio has
// received as a peripheral.
func (r *Radio) Counters() (connects, reads, writes int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connects, r.reads, r.writes
}

func (r *Radio) advertisedName() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.name, r.advertising && !r.closed
}

// MTU implements radio.Radio.
func (r *Radio) MTU() int {
	return r.medium.mtuValue()
}

// Connect implements radio.Radio.
func (r *Radio) Connect(ctx context.Context, address string) (radio.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.isClosed() {
		return nil, radio.ErrClosed
	}

	target, ok := r.medium.lookup(address)
	if !ok {
		return nil, fmt.Errorf("connect %s: %w", address, radio.ErrNotConnected)
	}

	target.mu.Lock()
	defer target.mu.Unlock()
	if target.closed {
		return nil, fmt.Errorf("connect %s: %w", address, radio.ErrNotConnected)
	}
	target.connects++
	if target.failConnects > 0 {
		target.failConnects--
		return nil, fmt.Errorf("connect %s: injected failure", address)
	}
	return &session{from: r.address, target: target}, nil
}

// Scan implements radio.Radio. It waits for the window, then reports every
// radio advertising at that moment.
func (r *Radio) Scan(ctx context.Context, window time.Duration) ([]radio.Advertisement, error) {
	if r.isClosed() {
		return nil, radio.ErrClosed
	}
	if window > 0 {
		t := time.NewTimer(window)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	return r.medium.advertising(r.address), nil
}

// Advertise implements radio.Radio.
func (r *Radio) Advertise(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return radio.ErrClosed
	}
	r.name = name
	r.advertising = true
	return nil
}

// StopAdvertising implements radio.Radio.
func (r *Radio) StopAdvertising() error {
	r.mu.Lock()
	r.advertising = false
	r.mu.Unlock()
	return nil
}

// Serve implements radio.Radio.
func (r *Radio) Serve(handler radio.WriteHandler) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return radio.ErrClosed
	}
	r.handler = handler
	return nil
}

// Close implements radio.Radio.
func (r *Radio) Close() error {
	r.mu.Lock()
	r.closed = true
	r.advertising = false
	r.handler = nil
	r.mu.Unlock()
	return nil
}

// Serving reports whether a write handler is installed.
func (r *Radio) Serving() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handler != nil
}

func (r *Radio) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

type session struct {
	from   string
	target *Radio

	mu     sync.Mutex
	closed bool
}

func (s *session) Address() string {
	return s.target.address
}

func (s *session) Characteristic(ctx context.Context, service, char uuid.UUID) (radio.Characteristic, error) {
	if s.isClosed() {
		return nil, radio.ErrNotConnected
	}
	s.target.mu.Lock()
	hidden := s.target.hidden
	s.target.mu.Unlock()

	if hidden || service != radio.ServiceUUID || char != radio.CharacteristicUUID {
		return nil, radio.ErrNotFound
	}
	return &characteristic{session: s}, nil
}

func (s *session) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

func (s *session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

type characteristic struct {
	session *session
}

func (c *characteristic) Capabilities() radio.Capabilities {
	t := c.session.target
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.caps
}

func (c *characteristic) Read(ctx context.Context) ([]byte, error) {
	if c.session.isClosed() {
		return nil, radio.ErrNotConnected
	}
	t := c.session.target
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, radio.ErrNotConnected
	}
	if !t.caps.Read {
		return nil, radio.ErrUnsupported
	}
	t.reads++
	return append([]byte(nil), t.value...), nil
}

func (c *characteristic) Write(ctx context.Context, frame []byte) error {
	if c.session.isClosed() {
		return radio.ErrNotConnected
	}
	t := c.session.target
	mtu := t.medium.mtuValue()

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return radio.ErrNotConnected
	}
	if !t.caps.Write {
		t.mu.Unlock()
		return radio.ErrUnsupported
	}
	if len(frame) > mtu {
		t.mu.Unlock()
		return fmt.Errorf("write of %d bytes exceeds mtu %d", len(frame), mtu)
	}
	t.writes++
	if t.failWrites > 0 {
		t.failWrites--
		t.mu.Unlock()
		return fmt.Errorf("write to %s: injected failure", t.address)
	}
	handler := t.handler
	t.mu.Unlock()

	if handler != nil {
		handler(c.session.from, append([]byte(nil), frame...))
	}
	return nil
}

func (m *Medium) mtuValue() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mtu
}

var _ radio.Radio = (*Radio)(nil)
