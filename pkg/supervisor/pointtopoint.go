package supervisor

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/blelink/blelink-go/pkg/radio"
)

type pointToPoint struct {
	s   *Supervisor
	cfg PointToPoint
}

// run is the connection worker.
func (w *pointToPoint) run(ctx context.Context) error {
	s := w.s
	for s.running(ctx) {
		err := w.cycle(ctx)
		if !s.running(ctx) {
			break
		}
		if err == nil {
			continue
		}

		delay := s.retry.Next()
		s.debug("retrying connection", "peer", w.cfg.Peer, "attempt", s.retry.Attempts(), "delay", delay)
		if err := s.sleep(ctx, delay); err != nil {
			break
		}
	}
	s.setState(StateDisconnected, "", w.cfg.Peer, "stopped")
	return nil
}

// cycle connects, serves the session until it fails or the supervisor stops,
// and releases it.
func (w *pointToPoint) cycle(ctx context.Context) error {
	s := w.s
	peer := w.cfg.Peer
	session := uuid.New().String()

	s.setState(StateConnecting, session, peer, "")
	sess, err := s.config.Radio.Connect(ctx, peer)
	if err != nil {
		s.stats.connectFailures.Add(1)
		s.logError(session, peer, "connect", err)
		s.setState(StateDisconnected, session, peer, err.Error())
		return err
	}

	ch, err := sess.Characteristic(ctx, radio.ServiceUUID, radio.CharacteristicUUID)
	if err != nil {
		s.stats.connectFailures.Add(1)
		s.logError(session, peer, "resolve characteristic", err)
		w.release(sess, session, err.Error())
		return err
	}

	s.setState(StateConnected, session, peer, "")
	s.retry.Reset()

	err = w.serve(ctx, ch, session)
	reason := "stopped"
	if err != nil {
		reason = err.Error()
	}
	w.release(sess, session, reason)
	return err
}

// serve drains the queue every poll interval and runs a health check every
// connection interval.
func (w *pointToPoint) serve(ctx context.Context, ch radio.Characteristic, session string) error {
	s := w.s
	peer := w.cfg.Peer
	caps := ch.Capabilities()
	lastCheck := s.config.Clock()

	for s.running(ctx) {
		if caps.Write {
			for s.running(ctx) {
				payload, ok := s.config.Queue.TryDequeue()
				if !ok {
					break
				}
				if err := s.sendPayload(ctx, ch, payload, session, peer); err != nil {
					s.logError(session, peer, "write", err)
					return err
				}
			}
		}

		if now := s.config.Clock(); now.Sub(lastCheck) >= w.cfg.ConnectionInterval {
			lastCheck = now
			if err := w.healthCheck(ctx, ch, caps, session); err != nil {
				s.logError(session, peer, "health check", err)
				return err
			}
		}

		if err := s.sleep(ctx, s.config.PollInterval); err != nil {
			return nil
		}
	}
	return nil
}

func (w *pointToPoint) healthCheck(ctx context.Context, ch radio.Characteristic, caps radio.Capabilities, session string) error {
	if !caps.Read {
		return nil
	}
	if err := w.s.readInto(ctx, ch, session, w.cfg.Peer); err != nil {
		return fmt.Errorf("read: %w", err)
	}
	return nil
}

func (w *pointToPoint) release(sess radio.Session, session, reason string) {
	s := w.s
	s.setState(StateDisconnecting, session, w.cfg.Peer, reason)
	if err := sess.Close(); err != nil {
		s.debug("close session failed", "peer", w.cfg.Peer, "error", err)
	}
	s.setState(StateDisconnected, session, w.cfg.Peer, reason)
}
