package netradio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/enbility/zeroconf/v3"
	"github.com/google/uuid"

	"github.com/blelink/blelink-go/pkg/radio"
)

// Config configures a network radio.
type Config struct {
	// ListenAddr is the TCP address the hosted characteristic listens on.
	// Default ":0" picks a free port.
	ListenAddr string

	// Interface restricts mDNS to one network interface. Empty uses all.
	Interface string

	// MTU is the largest frame accepted per write. Default radio.DefaultMTU.
	MTU int

	// TTL for mDNS records. Zero uses the library default.
	TTL time.Duration

	// Logger for debug output. Nil disables logging.
	Logger *slog.Logger
}

// DefaultConfig returns a config listening on a free port.
func DefaultConfig() Config {
	return Config{
		ListenAddr: ":0",
		MTU:        radio.DefaultMTU,
	}
}

// Radio implements radio.Radio over mDNS and TCP.
type Radio struct {
	config   Config
	listener net.Listener

	mu         sync.Mutex
	handler    radio.WriteHandler
	value      []byte
	server     *zeroconf.Server
	advertised string
	conns      map[net.Conn]struct{}
	closed     bool

	// extra browse options, set by tests
	clientOpts []zeroconf.ClientOption

	wg sync.WaitGroup
}

// New starts listening and returns the radio. Nothing is advertised until
// Advertise is called.
func New(config Config) (*Radio, error) {
	if config.ListenAddr == "" {
		config.ListenAddr = ":0"
	}
	if config.MTU <= 0 {
		config.MTU = radio.DefaultMTU
	}

	ln, err := net.Listen("tcp", config.ListenAddr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", config.ListenAddr, err)
	}

	r := &Radio{
		config:   config,
		listener: ln,
		conns:    make(map[net.Conn]struct{}),
	}
	r.wg.Add(1)
	go r.acceptLoop()
	return r, nil
}

// Addr returns the address the hosted characteristic listens on.
func (r *Radio) Addr() net.Addr {
	return r.listener.Addr()
}

// SetValue sets the value returned to remote reads.
func (r *Radio) SetValue(v []byte) {
	r.mu.Lock()
	r.value = append([]byte(nil), v...)
	r.mu.Unlock()
}

// MTU implements radio.Radio.
func (r *Radio) MTU() int {
	return r.config.MTU
}

// Connect implements radio.Radio. The address is host:port.
func (r *Radio) Connect(ctx context.Context, address string) (radio.Session, error) {
	if r.isClosed() {
		return nil, radio.ErrClosed
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", address, err)
	}
	return newSession(conn, address), nil
}

// Scan implements radio.Radio by browsing mDNS for the window.
func (r *Radio) Scan(ctx context.Context, window time.Duration) ([]radio.Advertisement, error) {
	if r.isClosed() {
		return nil, radio.ErrClosed
	}

	scanCtx, cancel := context.WithTimeout(ctx, window)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	browseErr := make(chan error, 1)
	go func() {
		browseErr <- zeroconf.Browse(scanCtx, ServiceType, Domain, entries, removed, r.browserOptions()...)
	}()

	own := r.ownPort()
	seen := make(map[string]bool)
	var out []radio.Advertisement
	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				entries = nil
				continue
			}
			adv, ok := entryToAdvertisement(entry)
			if !ok || seen[adv.Address] || entry.Port == own && r.isOwnName(entry.Instance) {
				continue
			}
			seen[adv.Address] = true
			out = append(out, adv)
		case _, ok := <-removed:
			if !ok {
				removed = nil
			}
		case err := <-browseErr:
			if err != nil && scanCtx.Err() == nil {
				return out, fmt.Errorf("browse: %w", err)
			}
			return out, ctx.Err()
		case <-scanCtx.Done():
			return out, ctx.Err()
		}
	}
}

// Advertise implements radio.Radio. Re-advertising the same name is a no-op.
func (r *Radio) Advertise(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return radio.ErrClosed
	}
	if r.server != nil && r.advertised == name {
		return nil
	}
	if r.server != nil {
		r.server.Shutdown()
		r.server = nil
	}

	var opts []zeroconf.ServerOption
	if r.config.TTL > 0 {
		opts = append(opts, zeroconf.TTL(uint32(r.config.TTL.Seconds())))
	}

	server, err := zeroconf.Register(
		name,
		ServiceType,
		Domain,
		r.ownPort(),
		txtRecords(),
		r.interfaces(),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to register %s: %w", name, err)
	}

	r.server = server
	r.advertised = name
	return nil
}

// StopAdvertising implements radio.Radio.
func (r *Radio) StopAdvertising() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.server != nil {
		r.server.Shutdown()
		r.server = nil
		r.advertised = ""
	}
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

// Close implements radio.Radio. It stops advertising, closes the listener
// and every accepted connection, and waits for their goroutines.
func (r *Radio) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	if r.server != nil {
		r.server.Shutdown()
		r.server = nil
	}
	for c := range r.conns {
		c.Close()
	}
	r.mu.Unlock()

	err := r.listener.Close()
	r.wg.Wait()
	return err
}

func (r *Radio) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func (r *Radio) isOwnName(instance string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.advertised != "" && r.advertised == instance
}

func (r *Radio) ownPort() int {
	if tcp, ok := r.listener.Addr().(*net.TCPAddr); ok {
		return tcp.Port
	}
	return 0
}

// interfaces returns the network interfaces to use. Nil means all.
func (r *Radio) interfaces() []net.Interface {
	if r.config.Interface == "" {
		return nil
	}
	iface, err := net.InterfaceByName(r.config.Interface)
	if err != nil {
		return nil
	}
	return []net.Interface{*iface}
}

func (r *Radio) browserOptions() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption
	if ifaces := r.interfaces(); ifaces != nil {
		opts = append(opts, zeroconf.SelectIfaces(ifaces))
	}
	return append(opts, r.clientOpts...)
}

func (r *Radio) debug(msg string, args ...any) {
	if r.config.Logger != nil {
		r.config.Logger.Debug(msg, args...)
	}
}

func (r *Radio) acceptLoop() {
	defer r.wg.Done()

	for {
		conn, err := r.listener.Accept()
		if err != nil {
			if !r.isClosed() {
				r.debug("netradio: accept failed", "error", err)
			}
			return
		}

		r.mu.Lock()
		if r.closed {
			r.mu.Unlock()
			conn.Close()
			return
		}
		r.conns[conn] = struct{}{}
		r.mu.Unlock()

		r.wg.Add(1)
		go r.handleConn(conn)
	}
}

func (r *Radio) handleConn(conn net.Conn) {
	defer r.wg.Done()
	defer func() {
		r.mu.Lock()
		delete(r.conns, conn)
		r.mu.Unlock()
		conn.Close()
	}()

	connID := uuid.New().String()
	from := conn.RemoteAddr().String()
	r.debug("netradio: central connected", "conn", connID, "remote", from)

	framer := NewFramer(conn)
	for {
		req, err := framer.ReadFrame()
		if err != nil {
			if !errors.Is(err, io.EOF) && !r.isClosed() {
				r.debug("netradio: read request failed", "conn", connID, "error", err)
			}
			return
		}

		resp := r.handleRequest(from, op(req[0]), req[1:])
		if err := framer.WriteFrame(resp); err != nil {
			r.debug("netradio: write response failed", "conn", connID, "error", err)
			return
		}
	}
}

func (r *Radio) handleRequest(from string, o op, body []byte) []byte {
	switch o {
	case opDiscover:
		svc, chr, err := parseDiscoverBody(body)
		if err != nil || svc != radio.ServiceUUID || chr != radio.CharacteristicUUID {
			return []byte{byte(statusNotFound)}
		}
		return []byte{byte(statusOK), encodeCaps(radio.Capabilities{Read: true, Write: true})}

	case opRead:
		r.mu.Lock()
		value := append([]byte(nil), r.value...)
		r.mu.Unlock()
		return append([]byte{byte(statusOK)}, value...)

	case opWrite:
		if len(body) > r.config.MTU {
			return []byte{byte(statusUnsupported)}
		}
		r.mu.Lock()
		handler := r.handler
		r.mu.Unlock()
		if handler != nil {
			handler(from, append([]byte(nil), body...))
		}
		return []byte{byte(statusOK)}

	default:
		return []byte{byte(statusUnsupported)}
	}
}

func entryToAdvertisement(entry *zeroconf.ServiceEntry) (radio.Advertisement, bool) {
	if entry == nil || !matchesProtocol(entry.Text) {
		return radio.Advertisement{}, false
	}

	var host string
	switch {
	case len(entry.AddrIPv4) > 0:
		host = entry.AddrIPv4[0].String()
	case len(entry.AddrIPv6) > 0:
		host = entry.AddrIPv6[0].String()
	default:
		return radio.Advertisement{}, false
	}

	return radio.Advertisement{
		Address: net.JoinHostPort(host, strconv.Itoa(entry.Port)),
		Name:    entry.Instance,
	}, true
}

var _ radio.Radio = (*Radio)(nil)
