package hses

import (
	"encoding/binary"
)

// Division selects the top-level namespace of a request (§3.1).
type Division byte

const (
	DivisionRobot Division = 0x01
	DivisionFile  Division = 0x02
)

const (
	magic         = "YERC"
	reservedMagic = 0x03
	filler        = "99999999"

	ackRequest  = 0x00
	ackResponse = 0x01

	finalBlock = uint32(0x80000000)
)

// RequestFrame is the decoded form of a request datagram.
type RequestFrame struct {
	Division    Division
	RequestID   byte
	CommandID   uint16
	Instance    uint16
	Attribute   byte
	Service     byte
	Payload     []byte
	BlockNumber uint32
}

// ResponseFrame is the decoded form of a response datagram (§4.1).
type ResponseFrame struct {
	RequestID   byte
	Service     byte
	Status      byte
	AddedStatus uint16
	Payload     []byte
	BlockNumber uint32
}

// EncodeRequest assembles a complete 32+P byte frame for a request.
func EncodeRequest(cmdID, instance uint16, attribute, service, requestID byte, division Division, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayloadSize {
		return nil, ErrEncodingTooLarge
	}

	buf := make([]byte, HeaderSize+len(payload))
	copy(buf[0:4], magic)
	binary.LittleEndian.PutUint16(buf[4:6], HeaderSize)
	binary.LittleEndian.PutUint16(buf[6:8], uint16(len(payload)))
	buf[8] = reservedMagic
	buf[9] = byte(division)
	buf[10] = ackRequest
	buf[11] = requestID
	binary.LittleEndian.PutUint32(buf[12:16], 0)
	copy(buf[16:24], filler)

	binary.LittleEndian.PutUint16(buf[24:26], cmdID)
	binary.LittleEndian.PutUint16(buf[26:28], instance)
	buf[28] = attribute
	buf[29] = service
	buf[30] = 0
	buf[31] = 0

	copy(buf[HeaderSize:], payload)

	return buf, nil
}

// EncodeResponse assembles a complete response frame. blockNumber is
// written as given; the mock server passes FinalBlockNumber(), since every
// reply it produces is a single, final block (§4.4).
func EncodeResponse(service, status byte, addedStatus uint16, requestID byte, division Division, blockNumber uint32, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayloadSize {
		return nil, ErrEncodingTooLarge
	}

	buf := make([]byte, HeaderSize+len(payload))
	copy(buf[0:4], magic)
	binary.LittleEndian.PutUint16(buf[4:6], HeaderSize)
	binary.LittleEndian.PutUint16(buf[6:8], uint16(len(payload)))
	buf[8] = reservedMagic
	buf[9] = byte(division)
	buf[10] = ackResponse
	buf[11] = requestID
	binary.LittleEndian.PutUint32(buf[12:16], blockNumber)
	copy(buf[16:24], filler)

	addedStatusSize := byte(0)
	if addedStatus != 0 {
		if addedStatus > 0xff {
			addedStatusSize = 2
		} else {
			addedStatusSize = 1
		}
	}

	buf[24] = service
	buf[25] = status
	buf[26] = addedStatusSize
	buf[27] = 0
	binary.LittleEndian.PutUint16(buf[28:30], addedStatus)
	buf[30] = 0
	buf[31] = 0

	copy(buf[HeaderSize:], payload)

	return buf, nil
}

func validateCommonHeader(b []byte) (payloadSize int, err error) {
	if len(b) < HeaderSize {
		return 0, ErrTruncated
	}
	if string(b[0:4]) != magic {
		return 0, ErrMalformedHeader
	}
	if binary.LittleEndian.Uint16(b[4:6]) != HeaderSize {
		return 0, ErrMalformedHeader
	}
	payloadSize = int(binary.LittleEndian.Uint16(b[6:8]))
	if payloadSize > MaxPayloadSize {
		return 0, ErrMalformedHeader
	}
	if b[8] != reservedMagic {
		return 0, ErrMalformedHeader
	}
	if Division(b[9]) != DivisionRobot && Division(b[9]) != DivisionFile {
		return 0, ErrMalformedHeader
	}
	if string(b[16:24]) != filler {
		return 0, ErrMalformedHeader
	}
	if len(b) < HeaderSize+payloadSize {
		return 0, ErrTruncated
	}
	return payloadSize, nil
}

// DecodeRequest validates and decodes a request frame, used by the mock
// server.
func DecodeRequest(b []byte) (*RequestFrame, error) {
	payloadSize, err := validateCommonHeader(b)
	if err != nil {
		return nil, err
	}
	if b[10] != ackRequest {
		return nil, ErrMalformedHeader
	}

	f := &RequestFrame{
		Division:    Division(b[9]),
		RequestID:   b[11],
		BlockNumber: binary.LittleEndian.Uint32(b[12:16]),
		CommandID:   binary.LittleEndian.Uint16(b[24:26]),
		Instance:    binary.LittleEndian.Uint16(b[26:28]),
		Attribute:   b[28],
		Service:     b[29],
		Payload:     append([]byte(nil), b[HeaderSize:HeaderSize+payloadSize]...),
	}

	return f, nil
}

// DecodeResponse validates and decodes a response frame (§4.1).
func DecodeResponse(b []byte) (*ResponseFrame, error) {
	payloadSize, err := validateCommonHeader(b)
	if err != nil {
		return nil, err
	}
	if b[10] != ackResponse {
		return nil, ErrMalformedHeader
	}

	addedStatusSize := b[26]
	if addedStatusSize > 2 {
		return nil, ErrMalformedHeader
	}

	f := &ResponseFrame{
		RequestID:   b[11],
		BlockNumber: binary.LittleEndian.Uint32(b[12:16]),
		Service:     b[24],
		Status:      b[25],
		AddedStatus: binary.LittleEndian.Uint16(b[28:30]),
		Payload:     append([]byte(nil), b[HeaderSize:HeaderSize+payloadSize]...),
	}

	return f, nil
}

// IsFinalBlock reports whether a response's block number carries the
// high-bit "final block" marker (§3.1, §9).
func IsFinalBlock(blockNumber uint32) bool {
	return blockNumber&finalBlock != 0
}

// FinalBlockNumber returns the block number the mock server stamps on
// every reply it produces: the high bit set, sequence 0.
func FinalBlockNumber() uint32 {
	return finalBlock
}
