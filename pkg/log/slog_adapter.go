package log

import (
	"context"
	"fmt"
	"log/slog"
)

// SlogAdapter mirrors protocol events into an operational slog.Logger at
// debug level, one record per event.
type SlogAdapter struct {
	logger *slog.Logger
}

func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes event as a record named "ble <kind>".
func (a *SlogAdapter) Log(event Event) {
	ctx := context.Background()
	if !a.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}

	attrs := []slog.Attr{slog.String("layer", event.Layer.String())}
	if event.Direction != DirectionNone {
		attrs = append(attrs, slog.String("dir", event.Direction.String()))
	}
	for _, kv := range [][2]string{
		{"iface", event.Interface},
		{"peer", event.PeerAddress},
		{"session", event.SessionID},
	} {
		if kv[1] != "" {
			attrs = append(attrs, slog.String(kv[0], kv[1]))
		}
	}
	attrs = append(attrs, detailAttrs(event)...)

	a.logger.LogAttrs(ctx, slog.LevelDebug, "ble "+event.Kind(), attrs...)
}

func detailAttrs(e Event) []slog.Attr {
	switch {
	case e.Frame != nil:
		f := e.Frame
		return []slog.Attr{
			slog.String("frame", fmt.Sprintf("%d:%d/%d", f.PacketID, f.Index, f.Count)),
			slog.Int("size", f.Size),
		}
	case e.Payload != nil:
		p := e.Payload
		attrs := []slog.Attr{
			slog.Int("packet", int(p.PacketID)),
			slog.Int("size", p.Size),
			slog.Int("fragments", p.Fragments),
		}
		if p.Duplicate {
			attrs = append(attrs, slog.Bool("duplicate", true))
		}
		return attrs
	case e.StateChange != nil:
		sc := e.StateChange
		attrs := []slog.Attr{slog.String("from", sc.OldState), slog.String("to", sc.NewState)}
		if sc.Reason != "" {
			attrs = append(attrs, slog.String("reason", sc.Reason))
		}
		return attrs
	case e.Error != nil:
		return []slog.Attr{
			slog.String("op", e.Error.Context),
			slog.String("error", e.Error.Message),
		}
	}
	return nil
}

var _ Logger = (*SlogAdapter)(nil)
