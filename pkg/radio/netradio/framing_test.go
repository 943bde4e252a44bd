package netradio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

type loopback struct {
	bytes.Buffer
}

func TestFramerRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
	}{
		{"single byte", []byte{0x42}},
		{"frame sized", bytes.Repeat([]byte{0xAA}, 515)},
		{"max size", bytes.Repeat([]byte{0x01}, DefaultMaxMessageSize)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf loopback
			f := NewFramer(&buf)

			if err := f.WriteFrame(tt.payload); err != nil {
				t.Fatalf("WriteFrame failed: %v", err)
			}
			if buf.Len() != LengthPrefixSize+len(tt.payload) {
				t.Errorf("frame size = %d, want %d", buf.Len(), LengthPrefixSize+len(tt.payload))
			}

			got, err := f.ReadFrame()
			if err != nil {
				t.Fatalf("ReadFrame failed: %v", err)
			}
			if !bytes.Equal(got, tt.payload) {
				t.Errorf("payload mismatch: got %d bytes, want %d", len(got), len(tt.payload))
			}
		})
	}
}

func TestFramerErrors(t *testing.T) {
	t.Run("empty write", func(t *testing.T) {
		var buf loopback
		if err := NewFramer(&buf).WriteFrame(nil); !errors.Is(err, ErrMessageEmpty) {
			t.Errorf("expected ErrMessageEmpty, got %v", err)
		}
	})

	t.Run("oversized write", func(t *testing.T) {
		var buf loopback
		err := NewFramer(&buf).WriteFrame(make([]byte, DefaultMaxMessageSize+1))
		if !errors.Is(err, ErrMessageTooLarge) {
			t.Errorf("expected ErrMessageTooLarge, got %v", err)
		}
	})

	t.Run("oversized read", func(t *testing.T) {
		var buf loopback
		var prefix [LengthPrefixSize]byte
		binary.BigEndian.PutUint32(prefix[:], DefaultMaxMessageSize+1)
		buf.Write(prefix[:])
		if _, err := NewFramer(&buf).ReadFrame(); !errors.Is(err, ErrMessageTooLarge) {
			t.Errorf("expected ErrMessageTooLarge, got %v", err)
		}
	})

	t.Run("truncated payload", func(t *testing.T) {
		var buf loopback
		buf.Write([]byte{0, 0, 0, 10, 1, 2, 3})
		if _, err := NewFramer(&buf).ReadFrame(); !errors.Is(err, ErrFrameTruncated) {
			t.Errorf("expected ErrFrameTruncated, got %v", err)
		}
	})

	t.Run("clean EOF", func(t *testing.T) {
		var buf loopback
		if _, err := NewFramer(&buf).ReadFrame(); err != io.EOF {
			t.Errorf("expected io.EOF, got %v", err)
		}
	})
}
