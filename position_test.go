package hses

import "testing"

func TestEncodeDecodePulsePositionRoundTrip(t *testing.T) {
	p := &Position{Pulse: &PulsePosition{
		Joints: [8]int32{100, -200, 300, 0, 0, 0, 0, 0},
		Tool:   1,
	}}
	raw, err := EncodePosition(p)
	if err != nil {
		t.Fatalf("EncodePosition: %v", err)
	}
	if len(raw) != 52 {
		t.Fatalf("expected 52-byte wire form, got %d", len(raw))
	}

	got, err := DecodePosition(raw)
	if err != nil {
		t.Fatalf("DecodePosition: %v", err)
	}
	if got.Pulse == nil || got.Cartesian != nil {
		t.Fatalf("expected decoded pulse position, got %+v", got)
	}
	if got.Pulse.Joints != p.Pulse.Joints || got.Pulse.Tool != p.Pulse.Tool {
		t.Fatalf("round trip mismatch: %+v vs %+v", got.Pulse, p.Pulse)
	}
}

func TestEncodeDecodeCartesianPositionRoundTrip(t *testing.T) {
	p := &Position{Cartesian: &CartesianPosition{
		X: 123000, Y: -45000, Z: 67000,
		Rx: 1000, Ry: 2000, Rz: -3000,
		Frame: FrameRobot,
		Tool:  2,
	}}
	raw, err := EncodePosition(p)
	if err != nil {
		t.Fatalf("EncodePosition: %v", err)
	}

	got, err := DecodePosition(raw)
	if err != nil {
		t.Fatalf("DecodePosition: %v", err)
	}
	if got.Cartesian == nil || got.Pulse != nil {
		t.Fatalf("expected decoded cartesian position, got %+v", got)
	}
	c := got.Cartesian
	if c.X != 123000 || c.Y != -45000 || c.Z != 67000 || c.Frame != FrameRobot || c.Tool != 2 {
		t.Fatalf("round trip mismatch: %+v", c)
	}
}

func TestUserFrameRoundTrip(t *testing.T) {
	for n := 1; n <= 16; n++ {
		f := UserFrame(n)
		p := &Position{Cartesian: &CartesianPosition{Frame: f}}
		raw, err := EncodePosition(p)
		if err != nil {
			t.Fatalf("EncodePosition(user %d): %v", n, err)
		}
		got, err := DecodePosition(raw)
		if err != nil {
			t.Fatalf("DecodePosition(user %d): %v", n, err)
		}
		if got.Cartesian.Frame != f {
			t.Fatalf("user frame %d round trip mismatch: got %v want %v", n, got.Cartesian.Frame, f)
		}
	}
}

func TestDecodePositionShortPayload(t *testing.T) {
	if _, err := DecodePosition(make([]byte, 10)); err != ErrShortPayload {
		t.Fatalf("expected ErrShortPayload, got %v", err)
	}
}

func TestEncodePositionRejectsEmptyUnion(t *testing.T) {
	if _, err := EncodePosition(&Position{}); err != ErrInvalidRange {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}
