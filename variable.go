package hses

import (
	"math"

	"golang.org/x/text/encoding"
)

// VariableKind identifies one of the eight variable element types (§3.2).
type VariableKind byte

const (
	KindB  VariableKind = iota // byte, 1 byte
	KindI                      // i16, 2 bytes
	KindD                      // i32, 4 bytes
	KindR                      // f32, 4 bytes
	KindS                      // 16-byte string
	KindP                      // position, 52 bytes
	KindBP                     // base position, 52 bytes
	KindEX                     // external axis, 52 bytes
)

// WireWidth returns the natural byte width of a value of kind (§3.3
// invariant: a mismatch is a protocol error). Single-variable commands
// pad B and I values to 4 bytes on the wire (see EncodeVariable).
func (k VariableKind) WireWidth() int {
	switch k {
	case KindB:
		return 1
	case KindI:
		return 2
	case KindD, KindR:
		return 4
	case KindS:
		return 16
	case KindP, KindBP, KindEX:
		return 52
	default:
		return 0
	}
}

// pluralBounds returns the maximum element count for a plural command
// of kind k, and whether the count must be a multiple of 2 (§4.1, and the
// Open Question resolution in DESIGN.md: parity is enforced for B and I/O
// only, never for I, D, R, S or registers).
func (k VariableKind) pluralBounds() (max int, parity2 bool) {
	switch k {
	case KindB:
		return 474, true
	case KindI:
		return 237, false
	case KindD, KindR:
		return 118, false
	case KindS:
		return 29, false
	default:
		return 0, false
	}
}

// PluralBounds is the exported form of pluralBounds, for the mock server
// (a separate package) to validate plural counts against the same bounds.
func (k VariableKind) PluralBounds() (max int, parity2 bool) { return k.pluralBounds() }

const (
	ioPluralMax  = 474
	regPluralMax = 237
)

// SingleVariableCommandID returns the command id used for a single B/I/D/
// R/S/P/BP/EX variable command (0x7A-0x81), per §4.4.
func SingleVariableCommandID(k VariableKind) uint16 {
	return 0x7A + uint16(k)
}

// PluralVariableCommandID returns the command id used for a plural
// variable command (0x302-0x306), per §4.4. Position kinds (P/BP/EX) are
// not addressed in plural form by this core.
func PluralVariableCommandID(k VariableKind) (uint16, bool) {
	switch k {
	case KindB:
		return 0x302, true
	case KindI:
		return 0x303, true
	case KindD:
		return 0x304, true
	case KindR:
		return 0x305, true
	case KindS:
		return 0x306, true
	default:
		return 0, false
	}
}

// PluralElementWidth returns the tight-packed per-element width a plural
// command of kind k uses. This differs from the single-variable wire
// width for KindB and KindI: a single-variable command pads a scalar
// value up to 4 bytes, but plural commands pack each element at its
// natural width with no padding (§4.1 "fixed-width elements").
func PluralElementWidth(k VariableKind) int {
	switch k {
	case KindB:
		return 1
	case KindI:
		return 2
	default:
		return k.WireWidth()
	}
}

// EncodePluralElement encodes one element of a plural variable payload.
func EncodePluralElement(enc encoding.Encoding, k VariableKind, v interface{}) ([]byte, error) {
	switch k {
	case KindB:
		return []byte{v.(byte)}, nil
	case KindI:
		out := make([]byte, 2)
		putInt16(out, v.(int16))
		return out, nil
	default:
		return EncodeVariable(enc, k, v)
	}
}

// DecodePluralElement decodes one element of a plural variable payload.
func DecodePluralElement(enc encoding.Encoding, k VariableKind, b []byte) (interface{}, error) {
	switch k {
	case KindB:
		if len(b) < 1 {
			return nil, ErrShortPayload
		}
		return b[0], nil
	case KindI:
		if len(b) < 2 {
			return nil, ErrShortPayload
		}
		return getInt16(b[0:2]), nil
	default:
		return DecodeVariable(enc, k, b)
	}
}

// EncodeVariable encodes a single value of kind k to its wire form.
// v must be the Go type matching k: byte, int16, int32, float32, string,
// or *Position.
func EncodeVariable(enc encoding.Encoding, k VariableKind, v interface{}) ([]byte, error) {
	switch k {
	case KindB:
		out := make([]byte, 4)
		out[0] = v.(byte)
		return out, nil
	case KindI:
		return padInt16To4(v.(int16)), nil
	case KindD:
		out := make([]byte, 4)
		putInt32(out, v.(int32))
		return out, nil
	case KindR:
		out := make([]byte, 4)
		putUint32(out, math.Float32bits(v.(float32)))
		return out, nil
	case KindS:
		return encodeString(enc, v.(string), 16)
	case KindP, KindBP, KindEX:
		return EncodePosition(v.(*Position))
	default:
		return nil, ErrInvalidEnum
	}
}

// DecodeVariable decodes a single wire-form value of kind k.
func DecodeVariable(enc encoding.Encoding, k VariableKind, b []byte) (interface{}, error) {
	switch k {
	case KindB:
		if len(b) < 1 {
			return nil, ErrShortPayload
		}
		return b[0], nil
	case KindI:
		if len(b) < 4 {
			return nil, ErrShortPayload
		}
		return unpadInt16From4(b), nil
	case KindD:
		if len(b) < 4 {
			return nil, ErrShortPayload
		}
		return getInt32(b[0:4]), nil
	case KindR:
		if len(b) < 4 {
			return nil, ErrShortPayload
		}
		return math.Float32frombits(getUint32(b[0:4])), nil
	case KindS:
		if len(b) < 16 {
			return nil, ErrShortPayload
		}
		return decodeString(enc, b[0:16]), nil
	case KindP, KindBP, KindEX:
		if len(b) < 52 {
			return nil, ErrShortPayload
		}
		return DecodePosition(b[0:52])
	default:
		return nil, ErrInvalidEnum
	}
}
