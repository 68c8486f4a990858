package mock

import (
	"testing"

	"github.com/hse-go/hses"
)

func TestStateVariableReadWrite(t *testing.T) {
	s := NewState()
	if err := s.writeVariable(hses.KindD, 12, int32(4242)); err != nil {
		t.Fatalf("writeVariable: %v", err)
	}
	v, err := s.readVariable(hses.KindD, 12)
	if err != nil {
		t.Fatalf("readVariable: %v", err)
	}
	if v.(int32) != 4242 {
		t.Fatalf("got %v, want 4242", v)
	}
}

func TestStateRegisterWritableBoundary(t *testing.T) {
	s := NewState()
	if err := s.writeRegister(hses.RegisterWritableMax, 7); err != nil {
		t.Fatalf("writeRegister at boundary: %v", err)
	}
	if err := s.writeRegister(hses.RegisterWritableMax+1, 7); err != hses.ErrInvalidRange {
		t.Fatalf("expected ErrInvalidRange past the writable boundary, got %v", err)
	}
}

func TestStateIOWritableOnlyNetworkInput(t *testing.T) {
	s := NewState()
	if err := s.writeIO(2701, true); err != nil {
		t.Fatalf("writeIO(network input): %v", err)
	}
	if err := s.writeIO(1, true); err != hses.ErrInvalidRange {
		t.Fatalf("expected ErrInvalidRange writing a user input, got %v", err)
	}
	s.SeedIO(1, true)
	if !s.readIO(1) {
		t.Fatalf("expected seeded I/O bit to read back true")
	}
}

func TestStateRobotPositionIndependentOfVariableStorage(t *testing.T) {
	s := NewState()
	pulsePos := &hses.Position{Pulse: &hses.PulsePosition{Joints: [8]int32{1, 2, 3}}}
	s.SeedRobotPosition(1, pulsePos)

	if err := s.writeVariable(hses.KindP, 1, &hses.Position{Pulse: &hses.PulsePosition{Joints: [8]int32{9, 9, 9}}}); err != nil {
		t.Fatalf("writeVariable(P): %v", err)
	}

	got := s.readRobotPosition(1)
	if got.Pulse.Joints != pulsePos.Pulse.Joints {
		t.Fatalf("robotPositions storage was clobbered by variable storage: %+v", got.Pulse.Joints)
	}
}

func TestStateAlarmHistorySeedAndRead(t *testing.T) {
	s := NewState()
	rec := &hses.AlarmRecord{Code: 99}
	s.SeedAlarmHistory(5, rec)

	got, ok := s.readAlarmHistory(5)
	if !ok {
		t.Fatalf("expected seeded history slot 5 to be found")
	}
	if got.Code != 99 {
		t.Fatalf("got code %d, want 99", got.Code)
	}

	if _, ok := s.readAlarmHistory(6); ok {
		t.Fatalf("expected unseeded history slot 6 to be absent")
	}
}
