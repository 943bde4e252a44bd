package memradio

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blelink/blelink-go/pkg/radio"
)

func TestScanSeesAdvertisingPeers(t *testing.T) {
	m := NewMedium()
	a := m.NewRadio("AA")
	b := m.NewRadio("BB")
	m.NewRadio("CC") // silent

	ctx := context.Background()
	require.NoError(t, a.Advertise(ctx, "RNS-A"))
	require.NoError(t, b.Advertise(ctx, "RNS-B"))

	advs, err := a.Scan(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []radio.Advertisement{{Address: "BB", Name: "RNS-B"}}, advs)

	require.NoError(t, b.StopAdvertising())
	advs, err = a.Scan(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, advs)
}

func TestWriteReachesHandler(t *testing.T) {
	m := NewMedium()
	central := m.NewRadio("AA")
	peripheral := m.NewRadio("BB")

	var mu sync.Mutex
	var got [][]byte
	var from string
	require.NoError(t, peripheral.Serve(func(addr string, frame []byte) {
		mu.Lock()
		defer mu.Unlock()
		from = addr
		got = append(got, frame)
	}))

	ctx := context.Background()
	sess, err := central.Connect(ctx, "BB")
	require.NoError(t, err)
	defer sess.Close()

	ch, err := sess.Characteristic(ctx, radio.ServiceUUID, radio.CharacteristicUUID)
	require.NoError(t, err)
	assert.Equal(t, radio.Capabilities{Read: true, Write: true}, ch.Capabilities())

	require.NoError(t, ch.Write(ctx, []byte{1, 0, 1, 'x'}))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "AA", from)
	assert.Equal(t, [][]byte{{1, 0, 1, 'x'}}, got)

	_, _, writes := peripheral.Counters()
	assert.Equal(t, 1, writes)
}

func TestCharacteristicMismatch(t *testing.T) {
	m := NewMedium()
	central := m.NewRadio("AA")
	peripheral := m.NewRadio("BB")
	ctx := context.Background()

	sess, err := central.Connect(ctx, "BB")
	require.NoError(t, err)

	_, err = sess.Characteristic(ctx, uuid.New(), radio.CharacteristicUUID)
	assert.ErrorIs(t, err, radio.ErrNotFound)

	peripheral.HideCharacteristic(true)
	_, err = sess.Characteristic(ctx, radio.ServiceUUID, radio.CharacteristicUUID)
	assert.ErrorIs(t, err, radio.ErrNotFound)
}

func TestInjectedFaults(t *testing.T) {
	m := NewMedium()
	central := m.NewRadio("AA")
	peripheral := m.NewRadio("BB")
	ctx := context.Background()

	peripheral.FailConnects(2)
	for i := 0; i < 2; i++ {
		_, err := central.Connect(ctx, "BB")
		assert.Error(t, err)
	}
	sess, err := central.Connect(ctx, "BB")
	require.NoError(t, err)

	ch, err := sess.Characteristic(ctx, radio.ServiceUUID, radio.CharacteristicUUID)
	require.NoError(t, err)

	peripheral.FailWrites(1)
	assert.Error(t, ch.Write(ctx, []byte{0, 0, 1}))
	assert.NoError(t, ch.Write(ctx, []byte{0, 0, 1}))

	connects, _, writes := peripheral.Counters()
	assert.Equal(t, 3, connects)
	assert.Equal(t, 2, writes)
}

func TestWriteRespectsMTU(t *testing.T) {
	m := NewMedium()
	m.SetMTU(8)
	central := m.NewRadio("AA")
	m.NewRadio("BB")
	ctx := context.Background()

	sess, err := central.Connect(ctx, "BB")
	require.NoError(t, err)
	ch, err := sess.Characteristic(ctx, radio.ServiceUUID, radio.CharacteristicUUID)
	require.NoError(t, err)

	assert.NoError(t, ch.Write(ctx, make([]byte, 8)))
	assert.Error(t, ch.Write(ctx, make([]byte, 9)))
}

func TestReadCapabilities(t *testing.T) {
	m := NewMedium()
	central := m.NewRadio("AA")
	peripheral := m.NewRadio("BB")
	peripheral.SetValue([]byte{9, 0, 1, 'v'})
	ctx := context.Background()

	sess, err := central.Connect(ctx, "BB")
	require.NoError(t, err)
	ch, err := sess.Characteristic(ctx, radio.ServiceUUID, radio.CharacteristicUUID)
	require.NoError(t, err)

	v, err := ch.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 0, 1, 'v'}, v)

	peripheral.SetCapabilities(radio.Capabilities{Write: true})
	_, err = ch.Read(ctx)
	assert.ErrorIs(t, err, radio.ErrUnsupported)
}

func TestClosedRadio(t *testing.T) {
	m := NewMedium()
	central := m.NewRadio("AA")
	peripheral := m.NewRadio("BB")
	ctx := context.Background()

	require.NoError(t, peripheral.Close())
	_, err := central.Connect(ctx, "BB")
	assert.ErrorIs(t, err, radio.ErrNotConnected)

	require.NoError(t, central.Close())
	_, err = central.Scan(ctx, 0)
	assert.ErrorIs(t, err, radio.ErrClosed)
}
