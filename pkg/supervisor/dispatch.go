package supervisor

import (
	"context"

	"github.com/blelink/blelink-go/pkg/dedup"
	"github.com/blelink/blelink-go/pkg/fragment"
	"github.com/blelink/blelink-go/pkg/log"
)

// dispatch owns reassembly and deduplication. It runs until ctx is done, or
// until radioDone is closed and the inbound buffer is drained.
func (s *Supervisor) dispatch(ctx context.Context, radioDone <-chan struct{}) error {
	reasm := fragment.NewReassembler(
		fragment.WithTimeout(s.config.ReassemblyTimeout),
		fragment.WithClock(s.config.Clock),
	)
	window := dedup.NewWindow(s.config.DedupCapacity)

	for {
		select {
		case in := <-s.inbound:
			s.handleFrame(reasm, window, in)
		case <-radioDone:
			for {
				select {
				case in := <-s.inbound:
					s.handleFrame(reasm, window, in)
				default:
					return nil
				}
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func (s *Supervisor) handleFrame(reasm *fragment.Reassembler, window *dedup.Window, in inboundFrame) {
	f, err := fragment.Decode(in.data)
	if err != nil {
		s.stats.malformed.Add(1)
		s.debug("discarding malformed frame", "peer", in.from, "size", len(in.data), "error", err)
		return
	}
	s.stats.framesReceived.Add(1)
	s.logFrame(log.DirectionIn, in.session, in.from, f, in.data)

	payload, ok := reasm.Feed(in.from, f)
	if !ok {
		return
	}

	if window.Seen(f.PacketID) {
		s.stats.duplicates.Add(1)
		s.logPayload(log.DirectionIn, in.session, in.from, f.PacketID, len(payload), int(f.Count), true)
		return
	}

	s.logPayload(log.DirectionIn, in.session, in.from, f.PacketID, len(payload), int(f.Count), false)
	s.config.Deliver(payload)
}
