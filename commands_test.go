package hses

import "testing"

func TestNewReadByteVariableRejectsOutOfRangeIndex(t *testing.T) {
	if _, err := NewReadByteVariable(1000); err != ErrInvalidRange {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if _, err := NewReadByteVariable(999); err != nil {
		t.Fatalf("expected index 999 to be valid, got %v", err)
	}
}

func TestNewWritePluralRegistersRejectsReadOnlyTail(t *testing.T) {
	values := make([]int16, 10)
	if _, err := NewWritePluralRegisters(RegisterWritableMax-5, values); err != ErrInvalidRange {
		t.Fatalf("expected ErrInvalidRange when the write spills into the read-only tail, got %v", err)
	}
	if _, err := NewWritePluralRegisters(0, values[:1]); err != nil {
		t.Fatalf("expected a single register write at 0 to succeed, got %v", err)
	}
}

func TestNewReadPluralIORejectsOddCount(t *testing.T) {
	if _, err := NewReadPluralIO(2701, 3); err != ErrInvalidRange {
		t.Fatalf("expected ErrInvalidRange for an odd I/O count, got %v", err)
	}
}

func TestNewWritePluralIORejectsNonNetworkInput(t *testing.T) {
	values := []bool{true, false}
	if _, err := NewWritePluralIO(1, values); err != ErrInvalidRange {
		t.Fatalf("expected ErrInvalidRange writing a user-input number, got %v", err)
	}
	if _, err := NewWritePluralIO(2701, values); err != nil {
		t.Fatalf("expected writing network inputs to succeed, got %v", err)
	}
}

func TestNewJobSelectRejectsInvalidInstance(t *testing.T) {
	sel := &SelectedJob{JobName: "JOB1", Line: 0}
	if _, err := NewJobSelect(2, sel, nil); err != ErrInvalidRange {
		t.Fatalf("expected ErrInvalidRange for instance 2, got %v", err)
	}
	if _, err := NewJobSelect(1, sel, nil); err != nil {
		t.Fatalf("expected master task instance 1 to be valid, got %v", err)
	}
	if _, err := NewJobSelect(10, sel, nil); err != nil {
		t.Fatalf("expected sub task instance 10 to be valid, got %v", err)
	}
}

func TestNewSetCycleModeRejectsUnknownMode(t *testing.T) {
	if _, err := NewSetCycleMode(CycleMode(99)); err != ErrInvalidEnum {
		t.Fatalf("expected ErrInvalidEnum, got %v", err)
	}
}

func TestNewReadPositionValidatesInstanceRanges(t *testing.T) {
	if _, err := NewReadPosition(50); err != ErrInvalidRange {
		t.Fatalf("expected ErrInvalidRange for instance 50, got %v", err)
	}
	if _, err := NewReadPosition(1); err != nil {
		t.Fatalf("expected pulse instance 1 to be valid, got %v", err)
	}
	if _, err := NewReadPosition(101); err != nil {
		t.Fatalf("expected cartesian instance 101 to be valid, got %v", err)
	}
}

func TestNewReadAlarmHistoryRejectsOutOfRange(t *testing.T) {
	if _, err := NewReadAlarmHistory(0); err != ErrInvalidRange {
		t.Fatalf("expected ErrInvalidRange for instance 0, got %v", err)
	}
	if _, err := NewReadAlarmHistory(1001); err != ErrInvalidRange {
		t.Fatalf("expected ErrInvalidRange for instance 1001, got %v", err)
	}
}

func TestCommandEncodeRequestFrameUsesCommandFields(t *testing.T) {
	cmd, err := NewReadByteVariable(5)
	if err != nil {
		t.Fatalf("NewReadByteVariable: %v", err)
	}
	raw, err := cmd.EncodeRequestFrame(9)
	if err != nil {
		t.Fatalf("EncodeRequestFrame: %v", err)
	}
	f, err := DecodeRequest(raw)
	if err != nil {
		t.Fatalf("DecodeRequest: %v", err)
	}
	if f.CommandID != SingleVariableCommandID(KindB) || f.Instance != 5 || f.RequestID != 9 {
		t.Fatalf("unexpected frame: %+v", f)
	}
}
