// Package commands implements the blelink-log subcommands.
package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/blelink/blelink-go/pkg/log"
)

const timeLayout = "2006-01-02T15:04:05.000000Z"

// RunView prints the header of path and every event filter selects, one
// line each, with frame bytes on an indented second line.
func RunView(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.Open(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	if h := reader.Header(); h.Magic != "" {
		fmt.Fprintln(w, describeHeader(h))
	}
	return reader.Each(func(e log.Event) error {
		writeEvent(w, e)
		return nil
	})
}

func describeHeader(h log.Header) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# capture v%d", h.Version)
	if h.Node != "" {
		fmt.Fprintf(&b, " from %s", h.Node)
	}
	if len(h.Interfaces) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(h.Interfaces, ", "))
	}
	if h.MTU > 0 {
		fmt.Fprintf(&b, " mtu=%d", h.MTU)
	}
	if !h.Created.IsZero() {
		fmt.Fprintf(&b, " started %s", h.Created.UTC().Format(timeLayout))
	}
	return b.String()
}

func writeEvent(w io.Writer, e log.Event) {
	fmt.Fprintf(w, "%s [%s] %s %-3s %-9s %-7s %s",
		e.Timestamp.UTC().Format(timeLayout), shortenID(e.SessionID), e.Interface,
		e.Direction, e.Layer, e.Kind(), summary(e))
	if e.PeerAddress != "" {
		fmt.Fprintf(w, " peer=%s", e.PeerAddress)
	}
	fmt.Fprintln(w)

	if e.Frame != nil && len(e.Frame.Data) > 0 {
		suffix := ""
		if e.Frame.Truncated {
			suffix = "..."
		}
		fmt.Fprintf(w, "    data %s%s\n", hex.EncodeToString(e.Frame.Data), suffix)
	}
}

func summary(e log.Event) string {
	switch {
	case e.Frame != nil:
		f := e.Frame
		return fmt.Sprintf("packet %d fragment %d/%d, %d bytes", f.PacketID, int(f.Index)+1, f.Count, f.Size)
	case e.Payload != nil:
		p := e.Payload
		s := fmt.Sprintf("packet %d, %d bytes in %d fragments", p.PacketID, p.Size, p.Fragments)
		if p.Duplicate {
			s += " (duplicate, suppressed)"
		}
		return s
	case e.StateChange != nil:
		sc := e.StateChange
		s := sc.OldState + " -> " + sc.NewState
		if sc.OldState == "" {
			s = "-> " + sc.NewState
		}
		if sc.Reason != "" {
			s += " (" + sc.Reason + ")"
		}
		return s
	case e.Error != nil:
		if e.Error.Context == "" {
			return e.Error.Message
		}
		return e.Error.Context + ": " + e.Error.Message
	}
	return ""
}

// shortenID returns the first 8 characters of a session ID, or "-".
func shortenID(id string) string {
	switch {
	case id == "":
		return "-"
	case len(id) > 8:
		return id[:8]
	}
	return id
}
