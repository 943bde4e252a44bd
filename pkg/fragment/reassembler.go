package fragment

import (
	"bytes"
	"time"
)

type entryKey struct {
	peer     string
	packetID uint8
}

type entry struct {
	count    uint8
	parts    map[uint8][]byte
	lastSeen time.Time
}

// Reassembler collects fragments until every declared index is present.
//
// A Reassembler is not safe for concurrent use. The supervisor's dispatch
// worker owns one exclusively.
type Reassembler struct {
	entries map[entryKey]*entry
	timeout time.Duration
	now     func() time.Time
}

// ReassemblerOption configures a Reassembler.
type ReassemblerOption func(*Reassembler)

// WithTimeout evicts partial payloads that have not received a fragment for d.
// Zero keeps them until they complete.
func WithTimeout(d time.Duration) ReassemblerOption {
	return func(r *Reassembler) {
		r.timeout = d
	}
}

// WithClock overrides the time source used for expiry.
func WithClock(now func() time.Time) ReassemblerOption {
	return func(r *Reassembler) {
		r.now = now
	}
}

// NewReassembler creates an empty Reassembler.
func NewReassembler(opts ...ReassemblerOption) *Reassembler {
	r := &Reassembler{
		entries: make(map[entryKey]*entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Feed adds a frame received from peer. It returns the payload and true once
// all fragments of the frame's packet are present.
//
// Single-fragment frames are returned immediately without touching the map.
// The fragment count of the first frame seen for a packet is authoritative;
// later frames with an index beyond it are dropped.
func (r *Reassembler) Feed(peer string, f Frame) ([]byte, bool) {
	if f.Count == 1 {
		return append([]byte(nil), f.Data...), true
	}
	if f.Count == 0 {
		return nil, false
	}

	now := r.now()
	r.expire(now)

	key := entryKey{peer: peer, packetID: f.PacketID}
	e, ok := r.entries[key]
	if !ok {
		e = &entry{
			count: f.Count,
			parts: make(map[uint8][]byte, f.Count),
		}
		r.entries[key] = e
	}
	if f.Index >= e.count {
		return nil, false
	}

	e.parts[f.Index] = append([]byte(nil), f.Data...)
	e.lastSeen = now

	if len(e.parts) < int(e.count) {
		return nil, false
	}

	var buf bytes.Buffer
	for i := 0; i < int(e.count); i++ {
		buf.Write(e.parts[uint8(i)])
	}
	delete(r.entries, key)
	return buf.Bytes(), true
}

// Pending returns the number of incomplete payloads held.
func (r *Reassembler) Pending() int {
	return len(r.entries)
}

func (r *Reassembler) expire(now time.Time) {
	if r.timeout <= 0 {
		return
	}
	for k, e := range r.entries {
		if now.Sub(e.lastSeen) > r.timeout {
			delete(r.entries, k)
		}
	}
}
