package hses

import (
	"bytes"
	"encoding/binary"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// effectiveEncoding returns enc, or the default Shift-JIS encoding if enc
// is nil. Command constructors that take an optional text encoding (for
// building a request before a Client exists) use this so they never
// dereference a nil encoding.Encoding.
func effectiveEncoding(enc encoding.Encoding) encoding.Encoding {
	if enc == nil {
		return japanese.ShiftJIS
	}
	return enc
}

func putUint16(b []byte, v uint16) { binary.LittleEndian.PutUint16(b, v) }
func putInt16(b []byte, v int16)   { binary.LittleEndian.PutUint16(b, uint16(v)) }
func putInt32(b []byte, v int32)   { binary.LittleEndian.PutUint32(b, uint32(v)) }
func putUint32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }

func getUint16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }
func getInt16(b []byte) int16   { return int16(binary.LittleEndian.Uint16(b)) }
func getInt32(b []byte) int32   { return int32(binary.LittleEndian.Uint32(b)) }
func getUint32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }

// padInt16To4 zero-pads a little-endian 2-byte signed value to the 4 bytes
// single-variable responses use on the wire (§4.1).
func padInt16To4(v int16) []byte {
	out := make([]byte, 4)
	putInt16(out[0:2], v)
	return out
}

// unpadInt16From4 strips the zero padding a single-variable response adds
// to a 16-bit value.
func unpadInt16From4(b []byte) int16 {
	return getInt16(b[0:2])
}

// encodeString encodes s into a fixed-width wire slot using enc, which
// must not be nil (callers apply the Shift-JIS default, see
// effectiveEncoding), zero-padding the remainder. Returns
// ErrStringTooLong if the encoded form does not fit width bytes.
func encodeString(enc encoding.Encoding, s string, width int) ([]byte, error) {
	encoded, _, err := transform.String(enc.NewEncoder(), s)
	if err != nil {
		return nil, ErrStringTooLong
	}
	if len(encoded) > width {
		return nil, ErrStringTooLong
	}
	out := make([]byte, width)
	copy(out, encoded)
	return out, nil
}

// decodeString decodes a fixed-width wire slot using enc, discarding
// trailing bytes from the first zero byte onward before decoding, and
// substituting the Unicode replacement character for any byte sequence
// the encoding cannot map (§9: decoding must be lossy-tolerant).
func decodeString(enc encoding.Encoding, b []byte) string {
	if idx := bytes.IndexByte(b, 0x00); idx >= 0 {
		b = b[:idx]
	}

	decoded, _, err := transform.Bytes(enc.NewDecoder(), b)
	if err != nil {
		// best-effort: decode what we can rune by rune, substituting
		// the replacement character for anything unmappable.
		var sb bytes.Buffer
		rest := b
		for len(rest) > 0 {
			chunk, _, derr := transform.Bytes(enc.NewDecoder(), rest)
			if derr == nil {
				sb.Write(chunk)
				break
			}
			sb.WriteRune(utf8.RuneError)
			rest = rest[1:]
		}
		return sb.String()
	}

	return string(decoded)
}
