package log

import (
	"sync"
	"testing"
	"time"
)

func TestTeeForwardsToEveryLogger(t *testing.T) {
	var a, b Recorder

	Tee(&a, nil, &b).Log(Event{Timestamp: time.Now(), SessionID: "s-1"})

	for i, r := range []*Recorder{&a, &b} {
		events := r.Events(Filter{})
		if len(events) != 1 || events[0].SessionID != "s-1" {
			t.Errorf("logger %d got %+v", i, events)
		}
	}
}

func TestTeeCollapses(t *testing.T) {
	if _, ok := Tee().(NoopLogger); !ok {
		t.Error("Tee() should be a NoopLogger")
	}
	if _, ok := Tee(nil, nil).(NoopLogger); !ok {
		t.Error("Tee(nil, nil) should be a NoopLogger")
	}
	r := &Recorder{}
	if Tee(nil, r) != Logger(r) {
		t.Error("Tee with one logger should return it unchanged")
	}
}

func TestOrNoop(t *testing.T) {
	if _, ok := OrNoop(nil).(NoopLogger); !ok {
		t.Error("OrNoop(nil) should return NoopLogger")
	}
	r := &Recorder{}
	if OrNoop(r) != Logger(r) {
		t.Error("OrNoop should pass through a non-nil logger")
	}
}

func TestRecorderConcurrentAndFiltered(t *testing.T) {
	var r Recorder
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(dir Direction) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				r.Log(Event{Direction: dir, Category: CategoryFrame, Frame: &FrameEvent{}})
			}
		}(Direction(i%2) + DirectionIn)
	}
	wg.Wait()

	if n := len(r.Events(Filter{})); n != 40 {
		t.Errorf("recorded %d events, want 40", n)
	}
	out := DirectionOut
	if n := len(r.Events(Filter{Direction: &out})); n != 20 {
		t.Errorf("outbound events = %d, want 20", n)
	}
}
