package fragment

import (
	"bytes"
	"errors"
	"testing"
)

func TestFrameEncodeDecode(t *testing.T) {
	f := Frame{PacketID: 0xAB, Index: 1, Count: 3, Data: []byte("chunk")}

	wire := f.Encode()
	if len(wire) != f.Size() {
		t.Fatalf("encoded length = %d, want %d", len(wire), f.Size())
	}
	if !bytes.Equal(wire[:HeaderSize], []byte{0xAB, 1, 3}) {
		t.Errorf("header = %x, want ab0103", wire[:HeaderSize])
	}

	got, err := Decode(wire)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got.PacketID != f.PacketID || got.Index != f.Index || got.Count != f.Count {
		t.Errorf("header mismatch: got %v, want %v", got, f)
	}
	if !bytes.Equal(got.Data, f.Data) {
		t.Errorf("data = %q, want %q", got.Data, f.Data)
	}
}

func TestDecodeShortFrame(t *testing.T) {
	for _, b := range [][]byte{nil, {}, {1}, {1, 2}} {
		if _, err := Decode(b); !errors.Is(err, ErrShortFrame) {
			t.Errorf("Decode(%x): expected ErrShortFrame, got %v", b, err)
		}
	}
}

func TestDecodeHeaderOnly(t *testing.T) {
	got, err := Decode([]byte{7, 0, 1})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(got.Data) != 0 {
		t.Errorf("data length = %d, want 0", len(got.Data))
	}
}

func TestDecodeIndexOutOfRange(t *testing.T) {
	if _, err := Decode([]byte{7, 3, 3, 0xff}); !errors.Is(err, ErrBadIndex) {
		t.Errorf("expected ErrBadIndex, got %v", err)
	}
}
