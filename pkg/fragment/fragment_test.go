package fragment

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
	"time"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestFragmentSizes(t *testing.T) {
	payload := bytes.Repeat([]byte{0x5a}, 46)

	id, frames, err := Fragment(payload, 20, epoch)
	if err != nil {
		t.Fatalf("Fragment failed: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}

	wantSizes := []int{20, 20, 6}
	for i, f := range frames {
		if len(f.Data) != wantSizes[i] {
			t.Errorf("frame %d: size %d, want %d", i, len(f.Data), wantSizes[i])
		}
		if f.Count != 3 {
			t.Errorf("frame %d: count %d, want 3", i, f.Count)
		}
		if f.Index != uint8(i) {
			t.Errorf("frame %d: index %d", i, f.Index)
		}
		if f.PacketID != id {
			t.Errorf("frame %d: packet id %d, want %d", i, f.PacketID, id)
		}
	}
}

func TestFragmentOutOfOrderDelivery(t *testing.T) {
	payload := make([]byte, 46)
	for i := range payload {
		payload[i] = byte(i)
	}

	_, frames, err := Fragment(payload, 20, epoch)
	if err != nil {
		t.Fatalf("Fragment failed: %v", err)
	}

	r := NewReassembler()
	if _, ok := r.Feed("peer", frames[2]); ok {
		t.Fatal("payload complete after index 2 only")
	}
	if _, ok := r.Feed("peer", frames[0]); ok {
		t.Fatal("payload complete after indices 2 and 0")
	}
	got, ok := r.Feed("peer", frames[1])
	if !ok {
		t.Fatal("payload not complete after all indices")
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("reassembled %x, want %x", got, payload)
	}
	if r.Pending() != 0 {
		t.Errorf("Pending = %d after completion, want 0", r.Pending())
	}
}

func TestFragmentEmptyPayload(t *testing.T) {
	_, frames, err := Fragment(nil, 20, epoch)
	if err != nil {
		t.Fatalf("Fragment failed: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	if frames[0].Count != 1 || len(frames[0].Data) != 0 {
		t.Errorf("got %v, want one empty fragment", frames[0])
	}

	got, ok := NewReassembler().Feed("peer", frames[0])
	if !ok || len(got) != 0 {
		t.Errorf("Feed = %x, %v; want empty, true", got, ok)
	}
}

func TestFragmentInvalidMTU(t *testing.T) {
	if _, _, err := Fragment([]byte("x"), 0, epoch); !errors.Is(err, ErrInvalidMTU) {
		t.Errorf("expected ErrInvalidMTU, got %v", err)
	}
}

func TestFragmentTooManyFragments(t *testing.T) {
	if _, _, err := Fragment(make([]byte, 256), 1, epoch); !errors.Is(err, ErrTooManyFragments) {
		t.Errorf("expected ErrTooManyFragments, got %v", err)
	}
	if _, frames, err := Fragment(make([]byte, 255), 1, epoch); err != nil || len(frames) != 255 {
		t.Errorf("255 fragments: got %d frames, err %v", len(frames), err)
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, mtu := range []int{1, 2, 3, 7, 20, 64, 509} {
		for n := 0; n <= 255 && n <= mtu*MaxFragments; n += 1 + n/8 {
			payload := make([]byte, n)
			rng.Read(payload)

			_, frames, err := Fragment(payload, mtu, epoch.Add(time.Duration(n)))
			if err != nil {
				t.Fatalf("mtu=%d n=%d: Fragment failed: %v", mtu, n, err)
			}

			r := NewReassembler()
			var got []byte
			var done bool
			for i, f := range frames {
				// Round-trip through the wire format as well.
				decoded, err := Decode(f.Encode())
				if err != nil {
					t.Fatalf("mtu=%d n=%d: Decode failed: %v", mtu, n, err)
				}
				got, done = r.Feed("peer", decoded)
				if done != (i == len(frames)-1) {
					t.Fatalf("mtu=%d n=%d: completion at frame %d of %d", mtu, n, i, len(frames))
				}
			}
			if !bytes.Equal(got, payload) {
				t.Errorf("mtu=%d n=%d: round trip mismatch", mtu, n)
			}
		}
	}
}

func TestPermutationIndependence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	payload := make([]byte, 100)
	rng.Read(payload)

	_, frames, err := Fragment(payload, 9, epoch)
	if err != nil {
		t.Fatalf("Fragment failed: %v", err)
	}

	for trial := 0; trial < 50; trial++ {
		order := rng.Perm(len(frames))
		r := NewReassembler()
		for i, idx := range order {
			got, done := r.Feed("peer", frames[idx])
			if i < len(order)-1 {
				if done {
					t.Fatalf("trial %d: completed early after %d frames", trial, i+1)
				}
				continue
			}
			if !done || !bytes.Equal(got, payload) {
				t.Fatalf("trial %d: order %v did not reassemble", trial, order)
			}
		}
	}
}

func TestPacketIDDependsOnTime(t *testing.T) {
	payload := []byte("same payload")

	if PacketID(payload, epoch) != PacketID(payload, epoch) {
		t.Error("PacketID is not deterministic")
	}

	seen := make(map[uint8]bool)
	for i := 0; i < 32; i++ {
		seen[PacketID(payload, epoch.Add(time.Duration(i)))] = true
	}
	if len(seen) < 2 {
		t.Error("PacketID ignores the timestamp")
	}
}
