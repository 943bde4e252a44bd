package netradio

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/blelink/blelink-go/pkg/radio"
)

// session is a TCP connection to a remote hosted characteristic. Requests
// are serialized; each waits for its response.
type session struct {
	conn    net.Conn
	framer  *Framer
	address string

	mu     sync.Mutex
	closed bool
}

func newSession(conn net.Conn, address string) *session {
	return &session{
		conn:    conn,
		framer:  NewFramer(conn),
		address: address,
	}
}

func (s *session) Address() string {
	return s.address
}

func (s *session) Characteristic(ctx context.Context, service, char uuid.UUID) (radio.Characteristic, error) {
	resp, err := s.request(ctx, opDiscover, discoverBody(service, char))
	if err != nil {
		return nil, err
	}
	if len(resp) != 1 {
		return nil, fmt.Errorf("%w: discover", errBadResponse)
	}
	return &characteristic{session: s, caps: decodeCaps(resp[0])}, nil
}

func (s *session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}

// request sends one operation and returns the response body on success.
func (s *session) request(ctx context.Context, o op, body []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, radio.ErrNotConnected
	}

	deadline := time.Time{}
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}
	if err := s.conn.SetDeadline(deadline); err != nil {
		return nil, err
	}

	// Abort a blocked exchange when ctx is cancelled.
	stop := context.AfterFunc(ctx, func() {
		_ = s.conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	req := append([]byte{byte(o)}, body...)
	if err := s.framer.WriteFrame(req); err != nil {
		return nil, err
	}
	resp, err := s.framer.ReadFrame()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	if err := status(resp[0]).err(); err != nil {
		return nil, err
	}
	return resp[1:], nil
}

type characteristic struct {
	session *session
	caps    radio.Capabilities
}

func (c *characteristic) Capabilities() radio.Capabilities {
	return c.caps
}

func (c *characteristic) Read(ctx context.Context) ([]byte, error) {
	return c.session.request(ctx, opRead, nil)
}

func (c *characteristic) Write(ctx context.Context, frame []byte) error {
	_, err := c.session.request(ctx, opWrite, frame)
	return err
}
