package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/blelink/blelink-go/pkg/log"
)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.blog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()
	return path
}

// sampleSession is one point-to-point cycle: connect, send a two-frame
// payload, receive a duplicate, drop.
func sampleSession() []log.Event {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	at := func(ms int) time.Time { return ts.Add(time.Duration(ms) * time.Millisecond) }
	const sess = "5b1e2c3d-0000-4000-8000-000000000001"

	return []log.Event{
		{Timestamp: at(0), SessionID: sess, Interface: "ble0", PeerAddress: "F9:7F:43:01:0A:D4",
			Layer: log.LayerInterface, Category: log.CategoryState,
			StateChange: &log.StateChangeEvent{OldState: "DISCONNECTED", NewState: "CONNECTING"}},
		{Timestamp: at(10), SessionID: sess, Interface: "ble0", PeerAddress: "F9:7F:43:01:0A:D4",
			Direction: log.DirectionOut, Layer: log.LayerRadio, Category: log.CategoryFrame,
			Frame: &log.FrameEvent{PacketID: 7, Index: 0, Count: 2, Size: 23, Data: []byte{7, 0, 2, 0xAB}}},
		{Timestamp: at(20), SessionID: sess, Interface: "ble0", PeerAddress: "F9:7F:43:01:0A:D4",
			Direction: log.DirectionOut, Layer: log.LayerRadio, Category: log.CategoryFrame,
			Frame: &log.FrameEvent{PacketID: 7, Index: 1, Count: 2, Size: 9}},
		{Timestamp: at(20), SessionID: sess, Interface: "ble0", PeerAddress: "F9:7F:43:01:0A:D4",
			Direction: log.DirectionOut, Layer: log.LayerFragment, Category: log.CategoryPayload,
			Payload: &log.PayloadEvent{PacketID: 7, Size: 26, Fragments: 2}},
		{Timestamp: at(30), SessionID: sess, Interface: "ble0", PeerAddress: "F9:7F:43:01:0A:D4",
			Direction: log.DirectionIn, Layer: log.LayerFragment, Category: log.CategoryPayload,
			Payload: &log.PayloadEvent{PacketID: 9, Size: 4, Fragments: 1}},
		{Timestamp: at(40), SessionID: sess, Interface: "ble0", PeerAddress: "F9:7F:43:01:0A:D4",
			Direction: log.DirectionIn, Layer: log.LayerFragment, Category: log.CategoryPayload,
			Payload: &log.PayloadEvent{PacketID: 9, Size: 4, Fragments: 1, Duplicate: true}},
		{Timestamp: at(1500), SessionID: sess, Interface: "ble0", PeerAddress: "F9:7F:43:01:0A:D4",
			Layer: log.LayerRadio, Category: log.CategoryError,
			Error: &log.ErrorEventData{Layer: log.LayerRadio, Message: "link lost", Context: "health check"}},
	}
}
