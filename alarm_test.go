package hses

import (
	"testing"

	"golang.org/x/text/encoding/japanese"
)

func TestEncodeDecodeAlarmAllRoundTrip(t *testing.T) {
	rec := &AlarmRecord{
		Code: 4080,
		Data: 1,
		Type: 1,
		Time: "21/02/14 10:00",
		Name: "SAFETY FENCE OPEN",
	}
	raw, err := EncodeAlarmAll(rec, japanese.ShiftJIS)
	if err != nil {
		t.Fatalf("EncodeAlarmAll: %v", err)
	}
	if len(raw) != 60 {
		t.Fatalf("expected 60-byte alarm record, got %d", len(raw))
	}

	got, err := DecodeAlarmAll(raw, japanese.ShiftJIS)
	if err != nil {
		t.Fatalf("DecodeAlarmAll: %v", err)
	}
	if got.Code != rec.Code || got.Data != rec.Data || got.Type != rec.Type {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, rec)
	}
	if got.Time != rec.Time || got.Name != rec.Name {
		t.Fatalf("string round trip mismatch: %+v vs %+v", got, rec)
	}
}

func TestEncodeDecodeAlarmFieldSingleAttribute(t *testing.T) {
	rec := &AlarmRecord{Code: 4080, Name: "SAFETY FENCE OPEN"}

	codeBytes, err := EncodeAlarmField(AlarmAttributeCode, rec, japanese.ShiftJIS)
	if err != nil {
		t.Fatalf("EncodeAlarmField(Code): %v", err)
	}
	if len(codeBytes) != 4 {
		t.Fatalf("expected 4-byte code field, got %d", len(codeBytes))
	}
	got, err := DecodeAlarmField(AlarmAttributeCode, codeBytes, japanese.ShiftJIS)
	if err != nil {
		t.Fatalf("DecodeAlarmField(Code): %v", err)
	}
	if got.Code != rec.Code {
		t.Fatalf("code round trip mismatch: %d vs %d", got.Code, rec.Code)
	}

	nameBytes, err := EncodeAlarmField(AlarmAttributeName, rec, japanese.ShiftJIS)
	if err != nil {
		t.Fatalf("EncodeAlarmField(Name): %v", err)
	}
	if len(nameBytes) != 32 {
		t.Fatalf("expected 32-byte name field, got %d", len(nameBytes))
	}
	gotName, err := DecodeAlarmField(AlarmAttributeName, nameBytes, japanese.ShiftJIS)
	if err != nil {
		t.Fatalf("DecodeAlarmField(Name): %v", err)
	}
	if gotName.Name != rec.Name {
		t.Fatalf("name round trip mismatch: %q vs %q", gotName.Name, rec.Name)
	}
}

func TestClassifyAlarmHistory(t *testing.T) {
	cases := []struct {
		instance   int
		wantSub    AlarmSub
		wantOffset int
		wantOK     bool
	}{
		{1, AlarmSubMajorFailure, 0, true},
		{250, AlarmSubMajorFailure, 249, true},
		{251, AlarmSubMonitor, 0, true},
		{751, AlarmSubUserUser, 0, true},
		{1000, AlarmSubUserUser, 249, true},
		{0, 0, 0, false},
		{1001, 0, 0, false},
	}
	for _, c := range cases {
		sub, offset, ok := ClassifyAlarmHistory(c.instance)
		if ok != c.wantOK {
			t.Errorf("ClassifyAlarmHistory(%d) ok = %v, want %v", c.instance, ok, c.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if sub != c.wantSub || offset != c.wantOffset {
			t.Errorf("ClassifyAlarmHistory(%d) = (%v, %d), want (%v, %d)", c.instance, sub, offset, c.wantSub, c.wantOffset)
		}
	}
}
