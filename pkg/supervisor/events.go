package supervisor

import (
	"time"

	"github.com/blelink/blelink-go/pkg/fragment"
	"github.com/blelink/blelink-go/pkg/log"
)

func (s *Supervisor) event(session, peer string, layer log.Layer, category log.Category) log.Event {
	return log.Event{
		Timestamp:   time.Now(),
		SessionID:   session,
		Layer:       layer,
		Category:    category,
		Interface:   s.config.Interface,
		PeerAddress: peer,
	}
}

func (s *Supervisor) logFrame(dir log.Direction, session, peer string, f fragment.Frame, wire []byte) {
	e := s.event(session, peer, log.LayerRadio, log.CategoryFrame)
	e.Direction = dir
	data, truncated := log.TruncateFrameData(wire)
	e.Frame = &log.FrameEvent{
		PacketID:  f.PacketID,
		Index:     f.Index,
		Count:     f.Count,
		Size:      len(wire),
		Data:      data,
		Truncated: truncated,
	}
	s.plog.Log(e)
}

func (s *Supervisor) logPayload(dir log.Direction, session, peer string, id uint8, size, fragments int, duplicate bool) {
	e := s.event(session, peer, log.LayerFragment, log.CategoryPayload)
	e.Direction = dir
	e.Payload = &log.PayloadEvent{
		PacketID:  id,
		Size:      size,
		Fragments: fragments,
		Duplicate: duplicate,
	}
	s.plog.Log(e)
}

func (s *Supervisor) logState(prev, next State, session, peer, reason string) {
	e := s.event(session, peer, log.LayerInterface, log.CategoryState)
	e.Direction = log.DirectionNone
	e.StateChange = &log.StateChangeEvent{
		OldState: prev.String(),
		NewState: next.String(),
		Reason:   reason,
	}
	s.plog.Log(e)
}

// logError records a runtime radio failure in both sinks.
func (s *Supervisor) logError(session, peer, context string, err error) {
	s.debug(context+" failed", "peer", peer, "error", err)

	e := s.event(session, peer, log.LayerRadio, log.CategoryError)
	e.Direction = log.DirectionNone
	e.Error = &log.ErrorEventData{
		Layer:   log.LayerRadio,
		Message: err.Error(),
		Context: context,
	}
	s.plog.Log(e)
}
