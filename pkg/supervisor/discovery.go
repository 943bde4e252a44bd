package supervisor

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/blelink/blelink-go/pkg/radio"
)

type discovery struct {
	s   *Supervisor
	cfg Discovery
}

// scanLoop is the scan worker: sweep, visit every matching peer once, pause.
func (w *discovery) scanLoop(ctx context.Context) error {
	s := w.s
	defer s.setState(StateDisconnected, "", "", "stopped")

	for s.running(ctx) {
		advs, err := s.config.Radio.Scan(ctx, w.cfg.ScanInterval)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.logError("", "", "scan", err)
		}

		for _, adv := range radio.MatchPrefix(advs, w.cfg.NamePrefix) {
			if !s.running(ctx) {
				return nil
			}
			if adv.Name == w.cfg.DeviceName {
				continue
			}
			w.visit(ctx, radio.PeerFromAdvertisement(adv))
		}

		if err := s.sleep(ctx, s.config.ScanPause); err != nil {
			return nil
		}
	}
	return nil
}

// visit opens a short-lived session with peer and performs at most one read
// and one single-payload write.
func (w *discovery) visit(ctx context.Context, peer radio.Peer) {
	s := w.s
	session := uuid.New().String()
	addr := peer.Address

	s.setState(StateConnecting, session, addr, peer.Name)
	sess, err := s.config.Radio.Connect(ctx, addr)
	if err != nil {
		s.stats.connectFailures.Add(1)
		s.logError(session, addr, "connect", err)
		s.setState(StateDisconnected, session, addr, err.Error())
		return
	}

	reason := ""
	defer func() {
		s.setState(StateDisconnecting, session, addr, reason)
		if err := sess.Close(); err != nil {
			s.debug("close session failed", "peer", addr, "error", err)
		}
		s.setState(StateDisconnected, session, addr, reason)
	}()

	ch, err := sess.Characteristic(ctx, radio.ServiceUUID, radio.CharacteristicUUID)
	if errors.Is(err, radio.ErrNotFound) {
		reason = "not a protocol peer"
		return
	}
	if err != nil {
		reason = err.Error()
		s.logError(session, addr, "resolve characteristic", err)
		return
	}
	s.setState(StateConnected, session, addr, peer.Name)

	caps := ch.Capabilities()
	if caps.Read {
		if err := s.readInto(ctx, ch, session, addr); err != nil {
			reason = err.Error()
			s.logError(session, addr, "read", err)
			return
		}
	}

	if caps.Write {
		payload, ok := s.config.Queue.TryDequeue()
		if !ok {
			return
		}
		if err := s.sendPayload(ctx, ch, payload, session, addr); err != nil {
			reason = err.Error()
			s.logError(session, addr, "write", err)
		}
	}
}

// advertiseLoop is the advertise worker.
func (w *discovery) advertiseLoop(ctx context.Context) error {
	s := w.s
	defer func() {
		if err := s.config.Radio.StopAdvertising(); err != nil {
			s.debug("stop advertising failed", "error", err)
		}
	}()

	for s.running(ctx) {
		if err := s.config.Radio.Advertise(ctx, w.cfg.DeviceName); err != nil {
			s.logError("", "", "advertise", err)
		}
		if err := s.sleep(ctx, w.cfg.AdvertiseInterval); err != nil {
			return nil
		}
	}
	return nil
}
