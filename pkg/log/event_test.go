package log

import "testing"

func TestEnumStrings(t *testing.T) {
	cases := []struct {
		got, want string
	}{
		{DirectionNone.String(), "-"},
		{DirectionIn.String(), "IN"},
		{DirectionOut.String(), "OUT"},
		{Direction(9).String(), "UNKNOWN"},
		{LayerRadio.String(), "RADIO"},
		{LayerFragment.String(), "FRAGMENT"},
		{LayerInterface.String(), "INTERFACE"},
		{CategoryFrame.String(), "FRAME"},
		{CategoryPayload.String(), "PAYLOAD"},
		{CategoryState.String(), "STATE"},
		{CategoryError.String(), "ERROR"},
		{Category(42).String(), "UNKNOWN"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("got %q, want %q", c.got, c.want)
		}
	}
}

func TestZeroDirectionIsNone(t *testing.T) {
	var e Event
	if e.Direction != DirectionNone {
		t.Errorf("zero Direction = %v, want DirectionNone", e.Direction)
	}
}

func TestParseEnums(t *testing.T) {
	if d, err := ParseDirection("In"); err != nil || d != DirectionIn {
		t.Errorf("ParseDirection(In) = %v, %v", d, err)
	}
	if d, err := ParseDirection("OUT"); err != nil || d != DirectionOut {
		t.Errorf("ParseDirection(OUT) = %v, %v", d, err)
	}
	for _, s := range []string{"-", "none", "sideways"} {
		if _, err := ParseDirection(s); err == nil {
			t.Errorf("ParseDirection(%q) should fail", s)
		}
	}
	if l, err := ParseLayer("fragment"); err != nil || l != LayerFragment {
		t.Errorf("ParseLayer(fragment) = %v, %v", l, err)
	}
	if _, err := ParseLayer("wire"); err == nil {
		t.Error("ParseLayer(wire) should fail")
	}
	if c, err := ParseCategory("Error"); err != nil || c != CategoryError {
		t.Errorf("ParseCategory(Error) = %v, %v", c, err)
	}
	if _, err := ParseCategory("message"); err == nil {
		t.Error("ParseCategory(message) should fail")
	}
}

func TestEventKindAndPacketID(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		kind  string
		id    uint8
		hasID bool
	}{
		{"Frame", Event{Frame: &FrameEvent{PacketID: 4}}, "frame", 4, true},
		{"Payload", Event{Payload: &PayloadEvent{PacketID: 200}}, "payload", 200, true},
		{"State", Event{StateChange: &StateChangeEvent{NewState: "CONNECTED"}}, "state", 0, false},
		{"Error", Event{Error: &ErrorEventData{Message: "x"}}, "error", 0, false},
		{"Empty", Event{}, "unknown", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.Kind(); got != tt.kind {
				t.Errorf("Kind() = %q, want %q", got, tt.kind)
			}
			id, ok := tt.event.PacketID()
			if ok != tt.hasID || id != tt.id {
				t.Errorf("PacketID() = %d, %v, want %d, %v", id, ok, tt.id, tt.hasID)
			}
		})
	}
}

func TestTruncateFrameData(t *testing.T) {
	short := []byte{1, 2, 3}
	got, truncated := TruncateFrameData(short)
	if truncated || len(got) != 3 {
		t.Errorf("short: got len %d truncated=%v", len(got), truncated)
	}
	short[0] = 9
	if got[0] != 1 {
		t.Error("TruncateFrameData should copy its input")
	}

	long := make([]byte, MaxFrameData+10)
	got, truncated = TruncateFrameData(long)
	if !truncated || len(got) != MaxFrameData {
		t.Errorf("long: got len %d truncated=%v", len(got), truncated)
	}
}
