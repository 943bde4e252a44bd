//go:build linux

package bluez

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"tinygo.org/x/bluetooth"

	"github.com/blelink/blelink-go/pkg/radio"
)

// Config configures the BlueZ radio.
type Config struct {
	// MTU is the frame size assumed per characteristic write.
	// Default radio.DefaultMTU.
	MTU int

	// Logger for debug output. Nil disables logging.
	Logger *slog.Logger
}

// Radio implements radio.Radio on the default BlueZ adapter.
type Radio struct {
	config  Config
	adapter *bluetooth.Adapter

	serviceUUID bluetooth.UUID
	charUUID    bluetooth.UUID

	mu       sync.Mutex
	adv      *bluetooth.Advertisement
	advName  string
	hosted   bluetooth.Characteristic
	served   bool
	handler  radio.WriteHandler
	scanning bool
	closed   bool
}

// New enables the default adapter.
func New(config Config) (*Radio, error) {
	if config.MTU <= 0 {
		config.MTU = radio.DefaultMTU
	}

	svc, err := toBluetoothUUID(radio.ServiceUUID)
	if err != nil {
		return nil, err
	}
	chr, err := toBluetoothUUID(radio.CharacteristicUUID)
	if err != nil {
		return nil, err
	}

	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("enable adapter: %w", err)
	}

	return &Radio{
		config:      config,
		adapter:     adapter,
		serviceUUID: svc,
		charUUID:    chr,
	}, nil
}

func toBluetoothUUID(id uuid.UUID) (bluetooth.UUID, error) {
	u, err := bluetooth.ParseUUID(id.String())
	if err != nil {
		return bluetooth.UUID{}, fmt.Errorf("parse uuid %s: %w", id, err)
	}
	return u, nil
}

func (r *Radio) debug(msg string, args ...any) {
	if r.config.Logger != nil {
		r.config.Logger.Debug(msg, args...)
	}
}

// MTU implements radio.Radio.
func (r *Radio) MTU() int {
	return r.config.MTU
}

// Connect implements radio.Radio. The address is a MAC address.
func (r *Radio) Connect(ctx context.Context, address string) (radio.Session, error) {
	if r.isClosed() {
		return nil, radio.ErrClosed
	}

	mac, err := bluetooth.ParseMAC(address)
	if err != nil {
		return nil, fmt.Errorf("parse address %q: %w", address, err)
	}
	addr := bluetooth.Address{MACAddress: bluetooth.MACAddress{MAC: mac}}

	type result struct {
		device bluetooth.Device
		err    error
	}
	done := make(chan result, 1)
	go func() {
		d, err := r.adapter.Connect(addr, bluetooth.ConnectionParams{})
		done <- result{device: d, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("connect %s: %w", address, res.err)
		}
		return &session{radio: r, device: res.device, address: address}, nil
	case <-ctx.Done():
		// The connect cannot be aborted; release the device if it arrives.
		go func() {
			if res := <-done; res.err == nil {
				_ = res.device.Disconnect()
			}
		}()
		return nil, ctx.Err()
	}
}

// Scan implements radio.Radio.
func (r *Radio) Scan(ctx context.Context, window time.Duration) ([]radio.Advertisement, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, radio.ErrClosed
	}
	r.scanning = true
	r.mu.Unlock()

	var mu sync.Mutex
	seen := make(map[string]bool)
	var out []radio.Advertisement

	onResult := func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
		addr := result.Address.String()
		mu.Lock()
		defer mu.Unlock()
		if seen[addr] {
			return
		}
		seen[addr] = true
		out = append(out, radio.Advertisement{
			Address: addr,
			Name:    result.LocalName(),
			RSSI:    result.RSSI,
		})
	}
	scanErr := runScan(ctx, window,
		func() error { return r.adapter.Scan(onResult) },
		func() {
			if err := r.adapter.StopScan(); err != nil {
				r.debug("bluez: stop scan failed", "error", err)
			}
		})

	r.mu.Lock()
	r.scanning = false
	r.mu.Unlock()

	mu.Lock()
	defer mu.Unlock()
	if err := ctx.Err(); err != nil {
		return out, err
	}
	if scanErr != nil {
		return out, fmt.Errorf("scan: %w", scanErr)
	}
	return out, nil
}

// runScan runs a blocking scan until it returns on its own, the window
// elapses or ctx is done. In the latter two cases stop is called and the
// scan result is still collected exactly once.
func runScan(ctx context.Context, window time.Duration, scan func() error, stop func()) error {
	done := make(chan error, 1)
	go func() { done <- scan() }()

	timer := time.NewTimer(window)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
	case <-ctx.Done():
	}
	stop()
	return <-done
}

// Advertise implements radio.Radio.
func (r *Radio) Advertise(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return radio.ErrClosed
	}
	if r.adv != nil && r.advName == name {
		return nil
	}
	if r.adv != nil {
		_ = r.adv.Stop()
	}

	adv := r.adapter.DefaultAdvertisement()
	err := adv.Configure(bluetooth.AdvertisementOptions{
		LocalName:    name,
		ServiceUUIDs: []bluetooth.UUID{r.serviceUUID},
	})
	if err != nil {
		return fmt.Errorf("configure advertisement: %w", err)
	}
	if err := adv.Start(); err != nil {
		return fmt.Errorf("start advertisement: %w", err)
	}

	r.adv = adv
	r.advName = name
	return nil
}

// StopAdvertising implements radio.Radio.
func (r *Radio) StopAdvertising() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.adv == nil {
		return nil
	}
	err := r.adv.Stop()
	r.adv = nil
	r.advName = ""
	return err
}

// Serve implements radio.Radio. The GATT service is registered once; later
// calls only swap the handler.
func (r *Radio) Serve(handler radio.WriteHandler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return radio.ErrClosed
	}
	r.handler = handler
	if r.served {
		return nil
	}

	err := r.adapter.AddService(&bluetooth.Service{
		UUID: r.serviceUUID,
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				Handle: &r.hosted,
				UUID:   r.charUUID,
				Flags: bluetooth.CharacteristicReadPermission |
					bluetooth.CharacteristicWritePermission |
					bluetooth.CharacteristicWriteWithoutResponsePermission,
				WriteEvent: r.onWrite,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("add service: %w", err)
	}
	r.served = true
	return nil
}

// SetValue updates the value remote centrals read from the hosted
// characteristic.
func (r *Radio) SetValue(v []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.served {
		return radio.ErrNotConnected
	}
	_, err := r.hosted.Write(v)
	return err
}

func (r *Radio) onWrite(client bluetooth.Connection, offset int, value []byte) {
	if offset != 0 {
		r.debug("bluez: ignoring offset write", "offset", offset)
		return
	}

	r.mu.Lock()
	handler := r.handler
	r.mu.Unlock()

	if handler != nil {
		handler(fmt.Sprintf("conn-%v", client), append([]byte(nil), value...))
	}
}

// Close implements radio.Radio.
func (r *Radio) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	r.handler = nil
	if r.adv != nil {
		_ = r.adv.Stop()
		r.adv = nil
	}
	if r.scanning {
		_ = r.adapter.StopScan()
	}
	return nil
}

func (r *Radio) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

var _ radio.Radio = (*Radio)(nil)
