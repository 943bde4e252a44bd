package iface

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blelink/blelink-go/pkg/radio/memradio"
	"github.com/blelink/blelink-go/pkg/supervisor"
)

type inbound struct {
	payload []byte
	from    *Interface
}

type recordingOwner struct {
	mu  sync.Mutex
	got []inbound
}

func (o *recordingOwner) Inbound(payload []byte, from *Interface) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.got = append(o.got, inbound{payload: payload, from: from})
}

func (o *recordingOwner) all() []inbound {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]inbound(nil), o.got...)
}

func pointToPoint(name, peer string) Config {
	cfg := DefaultConfig()
	cfg.Name = name
	cfg.PeerAddress = peer
	cfg.FrameDelay = time.Millisecond
	cfg.StatsInterval = 10 * time.Millisecond
	return cfg
}

func TestNewValidation(t *testing.T) {
	r := memradio.NewMedium().NewRadio("AA")
	owner := &recordingOwner{}

	_, err := New(nil, pointToPoint("a", "BB"), r)
	assert.ErrorIs(t, err, ErrNoOwner)

	_, err = New(owner, pointToPoint("a", "BB"), nil)
	assert.ErrorIs(t, err, ErrNoRadio)

	_, err = New(owner, pointToPoint("a", ""), r)
	assert.ErrorIs(t, err, ErrMissingPeerAddress)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	ifc, err := New(owner, pointToPoint("a", "BB"), r)
	require.NoError(t, err)
	assert.False(t, ifc.Online())
	assert.Equal(t, supervisor.StateDisconnected, ifc.State())
}

func TestProcessOutgoingWhileOffline(t *testing.T) {
	r := memradio.NewMedium().NewRadio("AA")
	ifc, err := New(&recordingOwner{}, pointToPoint("a", "BB"), r)
	require.NoError(t, err)

	assert.NotPanics(t, func() { ifc.ProcessOutgoing([]byte("nobody listens")) })

	stats := ifc.Stats()
	assert.Zero(t, stats.Queued)
	assert.Equal(t, uint64(1), stats.Dropped)
}

func TestProcessIncomingForwardsToOwner(t *testing.T) {
	r := memradio.NewMedium().NewRadio("AA")
	owner := &recordingOwner{}
	ifc, err := New(owner, pointToPoint("a", "BB"), r)
	require.NoError(t, err)

	ifc.ProcessIncoming([]byte("abc"))
	ifc.ProcessIncoming([]byte("defgh"))

	got := owner.all()
	require.Len(t, got, 2)
	assert.Same(t, ifc, got[0].from)
	assert.Equal(t, []byte("defgh"), got[1].payload)

	stats := ifc.Stats()
	assert.Equal(t, uint64(8), stats.RxBytes)
	assert.Equal(t, uint64(2), stats.RxPayloads)
}

func TestInterfaceProperties(t *testing.T) {
	medium := memradio.NewMedium()
	r := medium.NewRadio("AA")

	p2p, err := New(&recordingOwner{}, pointToPoint("BLE Test Interface", "F9:7F:43:01:0A:D4"), r)
	require.NoError(t, err)
	assert.Equal(t, "BluetoothInterface[BLE Test Interface -> F9:7F:43:01:0A:D4]", p2p.String())
	assert.Equal(t, 509, p2p.MTU())
	assert.False(t, p2p.ShouldIngressLimit())
	assert.Equal(t, 50000, p2p.Bitrate())
	assert.Equal(t, ModePointToPoint, p2p.Mode())

	medium.SetMTU(23)
	assert.Equal(t, 20, p2p.MTU())

	cfg := DefaultConfig()
	cfg.Name = "BLE Discovery"
	cfg.Mode = ModeDiscovery
	disc, err := New(&recordingOwner{}, cfg, r)
	require.NoError(t, err)
	assert.Equal(t, "BluetoothInterface[BLE Discovery (discovery)]", disc.String())
	assert.Equal(t, "BLE Discovery", disc.Name())
}

func TestStartTwice(t *testing.T) {
	medium := memradio.NewMedium()
	ifc, err := New(&recordingOwner{}, pointToPoint("a", "BB"), medium.NewRadio("AA"))
	require.NoError(t, err)

	require.NoError(t, ifc.Start(context.Background()))
	assert.True(t, ifc.Online())
	assert.ErrorIs(t, ifc.Start(context.Background()), ErrAlreadyStarted)

	require.NoError(t, ifc.Close())
	assert.False(t, ifc.Online())
}

func TestWaitWithoutStart(t *testing.T) {
	ifc, err := New(&recordingOwner{}, pointToPoint("a", "BB"), memradio.NewMedium().NewRadio("AA"))
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		ifc.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait blocked on an interface that was never started")
	}
}

func TestExchangeAndDetach(t *testing.T) {
	medium := memradio.NewMedium()
	medium.SetMTU(64)
	radioA := medium.NewRadio("AA")
	radioB := medium.NewRadio("BB")

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ownerB := &recordingOwner{}
	cfgB := DefaultConfig()
	cfgB.Name = "listener"
	cfgB.Mode = ModeDiscovery
	cfgB.ScanInterval = 5 * time.Millisecond
	cfgB.AdvertiseInterval = 5 * time.Millisecond
	cfgB.StatsInterval = 10 * time.Millisecond
	b, err := New(ownerB, cfgB, radioB)
	require.NoError(t, err)

	cfgA := pointToPoint("sender", "BB")
	cfgA.Logger = logger
	a, err := New(&recordingOwner{}, cfgA, radioA)
	require.NoError(t, err)

	require.NoError(t, b.Start(context.Background()))
	require.Eventually(t, radioB.Serving, 2*time.Second, time.Millisecond)
	require.NoError(t, a.Start(context.Background()))

	payload := bytes.Repeat([]byte{0x42}, 300)
	a.ProcessOutgoing(payload)

	require.Eventually(t, func() bool { return len(ownerB.all()) == 1 }, 5*time.Second, time.Millisecond)
	got := ownerB.all()[0]
	assert.Equal(t, payload, got.payload)
	assert.Same(t, b, got.from)

	require.Eventually(t, func() bool { return a.Stats().TxPayloads == 1 }, time.Second, time.Millisecond)
	stats := a.Stats()
	assert.Equal(t, uint64(300), stats.TxBytes)
	assert.Zero(t, stats.Queued)
	assert.Equal(t, supervisor.StateConnected, stats.State)

	a.Detach()
	b.Detach()
	a.ProcessOutgoing([]byte("late"))
	assert.Zero(t, a.Stats().Queued)

	waitOrFail(t, a)
	waitOrFail(t, b)
	assert.Equal(t, supervisor.StateDisconnected, a.State())
	assert.Contains(t, logs.String(), "interface started")
	assert.Contains(t, logs.String(), "dropping outbound payload while offline")
}

func waitOrFail(t *testing.T, ifc *Interface) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		ifc.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatalf("%s did not stop after Detach", ifc)
	}
}

func TestWaitAfterDetachWithDefaultStatsInterval(t *testing.T) {
	medium := memradio.NewMedium()
	peer := medium.NewRadio("BB")
	require.NoError(t, peer.Serve(func(string, []byte) {}))

	cfg := pointToPoint("a", "BB")
	cfg.StatsInterval = DefaultStatsInterval
	ifc, err := New(&recordingOwner{}, cfg, medium.NewRadio("AA"))
	require.NoError(t, err)
	require.NoError(t, ifc.Start(context.Background()))
	require.Eventually(t, func() bool { return ifc.State() == supervisor.StateConnected },
		2*time.Second, time.Millisecond)

	start := time.Now()
	ifc.Detach()
	waitOrFail(t, ifc)
	assert.Less(t, time.Since(start), 2*time.Second, "housekeeping must stop with the supervisor")
}

func TestCloseCancelsWorkers(t *testing.T) {
	medium := memradio.NewMedium()
	cfg := pointToPoint("a", "nobody")
	cfg.StatsInterval = time.Hour
	ifc, err := New(&recordingOwner{}, cfg, medium.NewRadio("AA"))
	require.NoError(t, err)
	require.NoError(t, ifc.Start(context.Background()))

	closed := make(chan error, 1)
	go func() { closed <- ifc.Close() }()
	select {
	case err := <-closed:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return")
	}

	assert.ErrorIs(t, ifc.Start(context.Background()), ErrAlreadyStarted)
}
