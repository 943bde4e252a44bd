package commands

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"github.com/blelink/blelink-go/pkg/log"
)

// Stats aggregates the selected events of one capture file.
type Stats struct {
	Header      log.Header
	Events      int
	Errors      int
	First, Last time.Time

	ByLayer     map[log.Layer]int
	ByCategory  map[log.Category]int
	ByDirection map[log.Direction]int

	// Sessions is keyed by session id. Events without one (scan errors,
	// peripheral writes) only show up in the totals.
	Sessions map[string]*SessionStats
}

// SessionStats covers one connection cycle.
type SessionStats struct {
	ID          string
	Interface   string
	Peer        string
	First, Last time.Time
	Events      int
	Frames      InOut
	Payloads    InOut
	Bytes       InOut
	Duplicates  int
}

// InOut is a pair of directional counters.
type InOut struct {
	In, Out int
}

func (c *InOut) add(dir log.Direction, n int) {
	if dir == log.DirectionIn {
		c.In += n
	} else {
		c.Out += n
	}
}

func (c InOut) String() string {
	return fmt.Sprintf("%d/%d", c.In, c.Out)
}

// Span is the time between the first and last event.
func (s *Stats) Span() time.Duration {
	return s.Last.Sub(s.First)
}

// Collect aggregates the events of path that match filter.
func Collect(path string, filter log.Filter) (*Stats, error) {
	r, err := log.Open(path, filter)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	defer r.Close()

	s := &Stats{
		Header:      r.Header(),
		ByLayer:     map[log.Layer]int{},
		ByCategory:  map[log.Category]int{},
		ByDirection: map[log.Direction]int{},
		Sessions:    map[string]*SessionStats{},
	}
	if err := r.Each(func(e log.Event) error {
		s.add(e)
		return nil
	}); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Stats) add(e log.Event) {
	s.Events++
	s.ByLayer[e.Layer]++
	s.ByCategory[e.Category]++
	if e.Direction != log.DirectionNone {
		s.ByDirection[e.Direction]++
	}
	if e.Error != nil {
		s.Errors++
	}
	if s.First.IsZero() || e.Timestamp.Before(s.First) {
		s.First = e.Timestamp
	}
	if e.Timestamp.After(s.Last) {
		s.Last = e.Timestamp
	}

	if e.SessionID == "" {
		return
	}
	sess := s.Sessions[e.SessionID]
	if sess == nil {
		sess = &SessionStats{ID: e.SessionID, First: e.Timestamp, Last: e.Timestamp}
		s.Sessions[e.SessionID] = sess
	}
	sess.Events++
	if e.Timestamp.After(sess.Last) {
		sess.Last = e.Timestamp
	}
	if sess.Interface == "" {
		sess.Interface = e.Interface
	}
	if sess.Peer == "" {
		sess.Peer = e.PeerAddress
	}

	switch {
	case e.Frame != nil:
		sess.Frames.add(e.Direction, 1)
	case e.Payload != nil && e.Payload.Duplicate:
		sess.Duplicates++
	case e.Payload != nil:
		sess.Payloads.add(e.Direction, 1)
		sess.Bytes.add(e.Direction, e.Payload.Size)
	}
}

// sortedSessions orders sessions by their first event.
func (s *Stats) sortedSessions() []*SessionStats {
	out := make([]*SessionStats, 0, len(s.Sessions))
	for _, sess := range s.Sessions {
		out = append(out, sess)
	}
	slices.SortFunc(out, func(a, b *SessionStats) int {
		return a.First.Compare(b.First)
	})
	return out
}

// RunStats prints counters and a per-session table for the selected events.
func RunStats(path string, filter log.Filter, w io.Writer) error {
	s, err := Collect(path, filter)
	if err != nil {
		return err
	}
	return s.Print(w)
}

// Print renders s as text with pterm tables.
func (s *Stats) Print(w io.Writer) error {
	if s.Header.Magic != "" {
		fmt.Fprintln(w, describeHeader(s.Header))
	}
	fmt.Fprintf(w, "%d events", s.Events)
	if s.Events > 0 {
		fmt.Fprintf(w, " between %s and %s (%s)",
			s.First.Format(timeLayout), s.Last.Format(timeLayout), s.Span().Round(time.Millisecond))
	}
	fmt.Fprintln(w)

	counts := pterm.TableData{{"Group", "Value", "Events"}}
	for _, l := range []log.Layer{log.LayerRadio, log.LayerFragment, log.LayerInterface} {
		counts = appendCount(counts, "layer", l.String(), s.ByLayer[l])
	}
	for _, c := range []log.Category{log.CategoryFrame, log.CategoryPayload, log.CategoryState, log.CategoryError} {
		counts = appendCount(counts, "category", c.String(), s.ByCategory[c])
	}
	for _, d := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		counts = appendCount(counts, "direction", d.String(), s.ByDirection[d])
	}
	if len(counts) > 1 {
		fmt.Fprintln(w)
		if err := renderTable(w, counts); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\n%d sessions\n", len(s.Sessions))
	if len(s.Sessions) > 0 {
		rows := pterm.TableData{{"Session", "Interface", "Peer", "Frames in/out", "Payloads in/out", "Bytes in/out", "Dup", "Duration"}}
		for _, sess := range s.sortedSessions() {
			rows = append(rows, []string{
				shortenID(sess.ID),
				sess.Interface,
				sess.Peer,
				sess.Frames.String(),
				sess.Payloads.String(),
				sess.Bytes.String(),
				strconv.Itoa(sess.Duplicates),
				sess.Last.Sub(sess.First).Round(time.Millisecond).String(),
			})
		}
		fmt.Fprintln(w)
		if err := renderTable(w, rows); err != nil {
			return err
		}
	}

	if s.Errors > 0 {
		fmt.Fprintf(w, "\n%d errors\n", s.Errors)
	}
	return nil
}

func appendCount(t pterm.TableData, group, value string, n int) pterm.TableData {
	if n == 0 {
		return t
	}
	return append(t, []string{group, value, strconv.Itoa(n)})
}

func renderTable(w io.Writer, data pterm.TableData) error {
	return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(w).Render()
}
