package hses

import "golang.org/x/text/encoding"

// Service values used to address operations within a command (§3.1,
// GLOSSARY).
const (
	ServiceGetAll      byte = 0x01
	ServiceSetSingle   byte = 0x10
	ServiceSetAll      byte = 0x02
	ServiceGetSingle   byte = 0x0E
	ServiceReadPlural  byte = 0x33
	ServiceWritePlural byte = 0x34
)

// Command is a typed descriptor uniting command id, instance, attribute,
// service, request payload encoding and response decoding (§4.2). T is
// the Go type the command resolves to on success.
type Command[T any] struct {
	CommandID uint16
	Instance  uint16
	Attribute byte
	Service   byte
	Payload   []byte

	// decode turns a successful response payload into a T.
	decode func(enc encoding.Encoding, payload []byte) (T, error)
}

// EncodeRequestFrame encodes the command into a complete wire frame ready
// to send, using requestID for correlation.
func (c *Command[T]) EncodeRequestFrame(requestID byte) ([]byte, error) {
	return EncodeRequest(c.CommandID, c.Instance, c.Attribute, c.Service, requestID, DivisionRobot, c.Payload)
}

// DecodeResult decodes a successful response's payload into T, using enc
// for any embedded string fields.
func (c *Command[T]) DecodeResult(enc encoding.Encoding, payload []byte) (T, error) {
	return c.decode(enc, payload)
}

// pluralHeader encodes the 4-byte little-endian count prefix shared by
// every plural command (§4.1).
func pluralHeader(count int) []byte {
	out := make([]byte, 4)
	putUint32(out, uint32(count))
	return out
}

// decodePluralCount decodes the count prefix of a plural payload and
// returns it with the bytes that follow. It does not check the count;
// callers compare it against the count they expect.
func decodePluralCount(b []byte) (count int, rest []byte, err error) {
	if len(b) < 4 {
		return 0, nil, ErrShortPayload
	}
	return int(getUint32(b[0:4])), b[4:], nil
}

// validatePluralCount enforces the per-kind bounds of §4.1, including the
// B/I-O parity rule resolved in DESIGN.md.
func validatePluralCount(count, max int, parity2 bool) error {
	if count <= 0 || count > max {
		return ErrInvalidRange
	}
	if parity2 && count%2 != 0 {
		return ErrInvalidRange
	}
	return nil
}

// PluralHeader, DecodePluralCount and ValidatePluralCount are the
// exported forms of the helpers above, for the mock server (a separate
// package) to build and parse plural payloads against the same rules the
// client descriptors use.
func PluralHeader(count int) []byte                   { return pluralHeader(count) }
func DecodePluralCount(b []byte) (int, []byte, error) { return decodePluralCount(b) }
func ValidatePluralCount(count, max int, parity2 bool) error {
	return validatePluralCount(count, max, parity2)
}
