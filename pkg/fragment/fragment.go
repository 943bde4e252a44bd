package fragment

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2s"
)

// Fragmentation errors.
var (
	ErrInvalidMTU       = errors.New("mtu must be at least 1")
	ErrTooManyFragments = errors.New("payload needs more than 255 fragments")
)

// PacketID derives the 8-bit identifier for payload sent at time now.
func PacketID(payload []byte, now time.Time) uint8 {
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(now.UnixNano()))

	h, _ := blake2s.New256(nil) // only fails for keys longer than 32 bytes
	h.Write(payload)
	h.Write(ts[:])
	sum := h.Sum(nil)

	// The digest reduced modulo 256 is its last byte.
	return sum[len(sum)-1]
}

// Fragment splits payload into consecutive chunks of at most mtu bytes.
// An empty payload yields a single empty fragment. Chunks alias payload.
func Fragment(payload []byte, mtu int, now time.Time) (uint8, []Frame, error) {
	if mtu < 1 {
		return 0, nil, ErrInvalidMTU
	}

	count := 1
	if len(payload) > mtu {
		count = (len(payload) + mtu - 1) / mtu
	}
	if count > MaxFragments {
		return 0, nil, fmt.Errorf("%w: %d bytes at mtu %d", ErrTooManyFragments, len(payload), mtu)
	}

	id := PacketID(payload, now)
	frames := make([]Frame, 0, count)
	for i := 0; i < count; i++ {
		start := i * mtu
		end := min(start+mtu, len(payload))
		frames = append(frames, Frame{
			PacketID: id,
			Index:    uint8(i),
			Count:    uint8(count),
			Data:     payload[start:end],
		})
	}
	return id, frames, nil
}
