package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Filter selects events. Zero-valued fields select everything.
type Filter struct {
	SessionID   string
	Interface   string
	PeerAddress string

	// Direction never matches state and error events, which have none.
	Direction *Direction
	Layer     *Layer
	Category  *Category

	// PacketID matches frame and payload events carrying that identifier.
	PacketID *uint8

	// TimeStart is inclusive, TimeEnd exclusive.
	TimeStart *time.Time
	TimeEnd   *time.Time
}

// Match reports whether e passes every criterion of f.
func (f Filter) Match(e Event) bool {
	switch {
	case f.SessionID != "" && e.SessionID != f.SessionID,
		f.Interface != "" && e.Interface != f.Interface,
		f.PeerAddress != "" && e.PeerAddress != f.PeerAddress,
		f.Direction != nil && e.Direction != *f.Direction,
		f.Layer != nil && e.Layer != *f.Layer,
		f.Category != nil && e.Category != *f.Category,
		f.TimeStart != nil && e.Timestamp.Before(*f.TimeStart),
		f.TimeEnd != nil && !e.Timestamp.Before(*f.TimeEnd):
		return false
	}
	if f.PacketID != nil {
		id, ok := e.PacketID()
		return ok && id == *f.PacketID
	}
	return true
}

// Reader streams the events of one capture file.
type Reader struct {
	file   *os.File
	dec    *cbor.Decoder
	filter Filter
	header Header
}

// NewReader opens path and reads every event.
func NewReader(path string) (*Reader, error) {
	return Open(path, Filter{})
}

// Open opens path and reads the events filter selects. The header is
// validated before Open returns.
func Open(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := &Reader{file: f, dec: decMode.NewDecoder(f), filter: filter}
	if err := r.readHeader(); err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

func (r *Reader) readHeader() error {
	var raw cbor.RawMessage
	if err := r.dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrNotCapture, err)
	}
	if err := decMode.Unmarshal(raw, &r.header); err != nil || r.header.Magic != Magic {
		return ErrNotCapture
	}
	if r.header.Version > FormatVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, r.header.Version)
	}
	return nil
}

// Header returns the file header. It is zero for an empty file.
func (r *Reader) Header() Header {
	return r.header
}

// Next returns the next selected event, or io.EOF at the end of the file.
func (r *Reader) Next() (Event, error) {
	for {
		var e Event
		if err := r.dec.Decode(&e); err != nil {
			return Event{}, err
		}
		if r.filter.Match(e) {
			return e, nil
		}
	}
}

// Each calls fn for every remaining selected event and stops at the first
// error fn returns.
func (r *Reader) Each(fn func(Event) error) error {
	for {
		e, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read event: %w", err)
		}
		if err := fn(e); err != nil {
			return err
		}
	}
}

func (r *Reader) Close() error {
	return r.file.Close()
}
