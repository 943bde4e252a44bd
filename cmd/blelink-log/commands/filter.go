package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/blelink/blelink-go/pkg/log"
)

// FilterSpec holds filter criteria as typed on the command line. Empty
// fields select everything.
type FilterSpec struct {
	Session   string
	Interface string
	Peer      string
	Layer     string
	Direction string
	Category  string
	Packet    string
	TimeStart string
	TimeEnd   string
}

// Build parses s into a log.Filter.
func (s FilterSpec) Build() (log.Filter, error) {
	f := log.Filter{SessionID: s.Session, Interface: s.Interface, PeerAddress: s.Peer}

	if s.Layer != "" {
		l, err := log.ParseLayer(s.Layer)
		if err != nil {
			return f, err
		}
		f.Layer = &l
	}
	if s.Direction != "" {
		d, err := log.ParseDirection(s.Direction)
		if err != nil {
			return f, err
		}
		f.Direction = &d
	}
	if s.Category != "" {
		c, err := log.ParseCategory(s.Category)
		if err != nil {
			return f, err
		}
		f.Category = &c
	}
	if s.Packet != "" {
		n, err := strconv.ParseUint(s.Packet, 0, 8)
		if err != nil {
			return f, fmt.Errorf("invalid packet id %q: want 0-255", s.Packet)
		}
		id := uint8(n)
		f.PacketID = &id
	}
	for _, tb := range []struct {
		flag, value string
		dst         **time.Time
	}{
		{"time-start", s.TimeStart, &f.TimeStart},
		{"time-end", s.TimeEnd, &f.TimeEnd},
	} {
		if tb.value == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, tb.value)
		if err != nil {
			return f, fmt.Errorf("invalid %s: %w", tb.flag, err)
		}
		*tb.dst = &ts
	}
	return f, nil
}

// RunFilter copies the events of path that filter selects into a new
// capture file at output, keeping the source header. It returns the number
// of events copied.
func RunFilter(path, output string, filter log.Filter) (int, error) {
	reader, err := log.Open(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	out, err := log.NewFileLogger(output, log.WithHeader(reader.Header()))
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}

	n := 0
	err = reader.Each(func(e log.Event) error {
		out.Log(e)
		n++
		return nil
	})
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = out.Err()
	}
	return n, err
}
