package log

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestFileLoggerWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node.blog")

	logger, err := NewFileLogger(path, WithHeader(Header{
		Node:           "bench",
		Interfaces:     []string{"ble0", "ble1"},
		MTU:            23,
		Service:        "5f1b8a20-4b1c-4d2e-9a36-52e8c1a0b7d1",
		Characteristic: "5f1b8a21-4b1c-4d2e-9a36-52e8c1a0b7d1",
	}))
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Log(Event{
		Timestamp: time.Now(),
		Direction: DirectionOut,
		Layer:     LayerRadio,
		Category:  CategoryFrame,
		Frame:     &FrameEvent{PacketID: 0x2a, Index: 1, Count: 3, Size: 23},
	})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()

	h := r.Header()
	if h.Magic != Magic || h.Version != FormatVersion {
		t.Errorf("header identity = %q v%d", h.Magic, h.Version)
	}
	if h.Node != "bench" || len(h.Interfaces) != 2 || h.MTU != 23 {
		t.Errorf("header = %+v", h)
	}
	if h.Created.IsZero() {
		t.Error("header Created not set")
	}

	events := readAll(t, r)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if f := events[0].Frame; f == nil || f.PacketID != 0x2a || f.Index != 1 || f.Count != 3 {
		t.Errorf("frame = %+v", f)
	}
}

func TestFileLoggerAppendKeepsSingleHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node.blog")

	for run := 0; run < 2; run++ {
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}
		logger.Log(Event{Timestamp: time.Now(), Category: CategoryState, StateChange: &StateChangeEvent{NewState: "CONNECTED"}})
		logger.Close()
	}

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()
	if n := len(readAll(t, r)); n != 2 {
		t.Errorf("got %d events across two runs, want 2", n)
	}
}

func TestFileLoggerRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "node.blog")

	logger, err := NewFileLogger(path, WithHeader(Header{Node: "rot"}), WithRotation(200, 2))
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	for i := 0; i < 40; i++ {
		logger.Log(Event{
			Timestamp: time.Now(),
			Direction: DirectionIn,
			Layer:     LayerFragment,
			Category:  CategoryPayload,
			Payload:   &PayloadEvent{PacketID: uint8(i), Size: 100},
		})
	}
	if err := logger.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	logger.Close()

	for _, name := range []string{path, path + ".1", path + ".2"} {
		r, err := NewReader(name)
		if err != nil {
			t.Fatalf("NewReader(%s) failed: %v", filepath.Base(name), err)
		}
		if r.Header().Node != "rot" {
			t.Errorf("%s: header node = %q", filepath.Base(name), r.Header().Node)
		}
		r.Close()
	}
	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Errorf("expected at most two backups, stat .3: %v", err)
	}
}

func TestFileLoggerRotationWithoutBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node.blog")

	logger, err := NewFileLogger(path, WithRotation(150, 0))
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	for i := 0; i < 20; i++ {
		logger.Log(Event{Timestamp: time.Now(), Category: CategoryPayload, Payload: &PayloadEvent{PacketID: uint8(i)}})
	}
	logger.Close()

	if _, err := os.Stat(path + ".1"); !os.IsNotExist(err) {
		t.Errorf("no backups expected, stat .1: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() >= 150+100 {
		t.Errorf("file size %d, expected it to restart after rotation", info.Size())
	}
}

func TestFileLoggerIgnoresLogAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node.blog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close returned %v, want nil", err)
	}
	logger.Log(Event{Timestamp: time.Now()})

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()
	if n := len(readAll(t, r)); n != 0 {
		t.Errorf("got %d events after closed Log, want 0", n)
	}
}

func TestFileLoggerConcurrentWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node.blog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	const writers, perWriter = 8, 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				logger.Log(Event{
					Timestamp: time.Now(),
					Layer:     LayerFragment,
					Category:  CategoryPayload,
					Payload:   &PayloadEvent{PacketID: uint8(j), Size: id},
				})
			}
		}(i)
	}
	wg.Wait()
	logger.Close()

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()
	if n := len(readAll(t, r)); n != writers*perWriter {
		t.Errorf("read %d events, want %d", n, writers*perWriter)
	}
}

func TestReaderRejectsForeignFiles(t *testing.T) {
	dir := t.TempDir()

	text := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(text, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewReader(text); !errors.Is(err, ErrNotCapture) {
		t.Errorf("text file: err = %v, want ErrNotCapture", err)
	}

	// A bare event without a header.
	bare := filepath.Join(dir, "bare.blog")
	data, err := encMode.Marshal(Event{Timestamp: time.Now(), Category: CategoryError, Error: &ErrorEventData{Message: "x"}})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bare, data, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewReader(bare); !errors.Is(err, ErrNotCapture) {
		t.Errorf("headerless file: err = %v, want ErrNotCapture", err)
	}

	future := filepath.Join(dir, "future.blog")
	data, err = encMode.Marshal(Header{Magic: Magic, Version: FormatVersion + 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(future, data, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewReader(future); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("future version: err = %v, want ErrUnsupportedVersion", err)
	}
}

func TestReaderEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.blog")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()
	if r.Header().Magic != "" {
		t.Errorf("empty file header = %+v", r.Header())
	}
	if n := len(readAll(t, r)); n != 0 {
		t.Errorf("got %d events, want 0", n)
	}
}
