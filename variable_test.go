package hses

import (
	"testing"

	"golang.org/x/text/encoding/japanese"
)

func TestEncodeVariableBytePadsTo4(t *testing.T) {
	out, err := EncodeVariable(nil, KindB, byte(0xAB))
	if err != nil {
		t.Fatalf("EncodeVariable: %v", err)
	}
	want := []byte{0xAB, 0x00, 0x00, 0x00}
	if string(out) != string(want) {
		t.Fatalf("got %x, want %x", out, want)
	}

	v, err := DecodeVariable(nil, KindB, out)
	if err != nil {
		t.Fatalf("DecodeVariable: %v", err)
	}
	if v.(byte) != 0xAB {
		t.Fatalf("round trip mismatch: %v", v)
	}
}

func TestEncodeVariableIntPadsTo4(t *testing.T) {
	out, err := EncodeVariable(nil, KindI, int16(-5))
	if err != nil {
		t.Fatalf("EncodeVariable: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("expected 4-byte padded int, got %d bytes", len(out))
	}
	v, err := DecodeVariable(nil, KindI, out)
	if err != nil {
		t.Fatalf("DecodeVariable: %v", err)
	}
	if v.(int16) != -5 {
		t.Fatalf("round trip mismatch: %v", v)
	}
}

func TestPluralElementWidthPacksTight(t *testing.T) {
	cases := []struct {
		kind VariableKind
		want int
	}{
		{KindB, 1},
		{KindI, 2},
		{KindD, 4},
		{KindR, 4},
		{KindS, 16},
	}
	for _, c := range cases {
		if got := PluralElementWidth(c.kind); got != c.want {
			t.Errorf("PluralElementWidth(%v) = %d, want %d", c.kind, got, c.want)
		}
	}
}

func TestEncodeDecodePluralElementRoundTrip(t *testing.T) {
	b, err := EncodePluralElement(nil, KindB, byte(0x7F))
	if err != nil {
		t.Fatalf("EncodePluralElement(B): %v", err)
	}
	if len(b) != 1 {
		t.Fatalf("expected 1-byte tight-packed B element, got %d", len(b))
	}
	v, err := DecodePluralElement(nil, KindB, b)
	if err != nil {
		t.Fatalf("DecodePluralElement(B): %v", err)
	}
	if v.(byte) != 0x7F {
		t.Fatalf("round trip mismatch: %v", v)
	}

	i, err := EncodePluralElement(nil, KindI, int16(1234))
	if err != nil {
		t.Fatalf("EncodePluralElement(I): %v", err)
	}
	if len(i) != 2 {
		t.Fatalf("expected 2-byte tight-packed I element, got %d", len(i))
	}
	iv, err := DecodePluralElement(nil, KindI, i)
	if err != nil {
		t.Fatalf("DecodePluralElement(I): %v", err)
	}
	if iv.(int16) != 1234 {
		t.Fatalf("round trip mismatch: %v", iv)
	}
}

func TestEncodeVariableStringRoundTrip(t *testing.T) {
	out, err := EncodeVariable(japanese.ShiftJIS, KindS, "JOB1")
	if err != nil {
		t.Fatalf("EncodeVariable(S): %v", err)
	}
	if len(out) != 16 {
		t.Fatalf("expected 16-byte string slot, got %d", len(out))
	}
	v, err := DecodeVariable(japanese.ShiftJIS, KindS, out)
	if err != nil {
		t.Fatalf("DecodeVariable(S): %v", err)
	}
	if v.(string) != "JOB1" {
		t.Fatalf("round trip mismatch: %q", v)
	}
}

func TestEncodeVariableStringTooLong(t *testing.T) {
	long := "this job name is much too long to fit in sixteen bytes"
	if _, err := EncodeVariable(japanese.ShiftJIS, KindS, long); err != ErrStringTooLong {
		t.Fatalf("expected ErrStringTooLong, got %v", err)
	}
}

func TestDecodeVariableShortPayload(t *testing.T) {
	if _, err := DecodeVariable(nil, KindD, []byte{1, 2}); err != ErrShortPayload {
		t.Fatalf("expected ErrShortPayload, got %v", err)
	}
}
