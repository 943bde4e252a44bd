//go:build linux

package bluez

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"tinygo.org/x/bluetooth"

	"github.com/blelink/blelink-go/pkg/radio"
)

type session struct {
	radio   *Radio
	device  bluetooth.Device
	address string

	mu     sync.Mutex
	closed bool
}

func (s *session) Address() string {
	return s.address
}

func (s *session) Characteristic(ctx context.Context, service, char uuid.UUID) (radio.Characteristic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	svcUUID, err := toBluetoothUUID(service)
	if err != nil {
		return nil, err
	}
	chrUUID, err := toBluetoothUUID(char)
	if err != nil {
		return nil, err
	}

	services, err := s.device.DiscoverServices([]bluetooth.UUID{svcUUID})
	if err != nil || len(services) == 0 {
		return nil, radio.ErrNotFound
	}
	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{chrUUID})
	if err != nil || len(chars) == 0 {
		return nil, radio.ErrNotFound
	}

	// BlueZ does not report characteristic flags through this API; the
	// protocol characteristic is always hosted read/write.
	return &characteristic{
		char: chars[0],
		caps: radio.Capabilities{Read: true, Write: true},
		mtu:  s.radio.MTU(),
	}, nil
}

func (s *session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.device.Disconnect()
}

type characteristic struct {
	char bluetooth.DeviceCharacteristic
	caps radio.Capabilities
	mtu  int
}

func (c *characteristic) Capabilities() radio.Capabilities {
	return c.caps
}

func (c *characteristic) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	buf := make([]byte, c.mtu)
	n, err := c.char.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("read characteristic: %w", err)
	}
	return buf[:n], nil
}

func (c *characteristic) Write(ctx context.Context, frame []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(frame) > c.mtu {
		return fmt.Errorf("write of %d bytes exceeds mtu %d", len(frame), c.mtu)
	}
	if _, err := c.char.WriteWithoutResponse(frame); err != nil {
		return fmt.Errorf("write characteristic: %w", err)
	}
	return nil
}
