package hses

import "golang.org/x/text/encoding"

// AlarmSub identifies one of the four alarm-history sub-ranges (§3.2).
type AlarmSub int

const (
	AlarmSubMajorFailure AlarmSub = iota
	AlarmSubMonitor
	AlarmSubUserSystem
	AlarmSubUserUser
)

// AlarmHistorySlots is the number of slots per sub-range.
const AlarmHistorySlots = 250

// ClassifyAlarmHistory maps a 1..1000 alarm history instance number to
// its sub-range and its 0-based offset within that sub-range. ok is false
// for an out-of-range instance (§4.4 "Alarm history").
func ClassifyAlarmHistory(instance int) (sub AlarmSub, offset int, ok bool) {
	if instance < 1 || instance > 4*AlarmHistorySlots {
		return 0, 0, false
	}
	idx := instance - 1
	return AlarmSub(idx / AlarmHistorySlots), idx % AlarmHistorySlots, true
}

// AlarmRecord is the decoded form of an alarm entry (§3.2). Sub is not
// part of the wire payload; callers reading history fill it in from the
// instance number via ClassifyAlarmHistory so a record carries its own
// sub-range alongside its fields.
type AlarmRecord struct {
	Code int32
	Data int32
	Type int32
	Time string
	Name string
	Sub  AlarmSub
}

// AlarmAttribute selects which field of an alarm record a 0x70 command
// addresses.
type AlarmAttribute byte

const (
	AlarmAttributeAll  AlarmAttribute = 0
	AlarmAttributeCode AlarmAttribute = 1
	AlarmAttributeData AlarmAttribute = 2
	AlarmAttributeType AlarmAttribute = 3
	AlarmAttributeTime AlarmAttribute = 4
	AlarmAttributeName AlarmAttribute = 5
)

const (
	AlarmDataCommandID    uint16 = 0x70
	AlarmHistoryCommandID uint16 = 0x71
)

// EncodeAlarmAll encodes the concatenated "all fields" alarm payload
// (§4.4: code(4), data(4), type(4), time(16), name(32)).
func EncodeAlarmAll(rec *AlarmRecord, textEnc encoding.Encoding) ([]byte, error) {
	out := make([]byte, 4+4+4+16+32)
	putInt32(out[0:4], rec.Code)
	putInt32(out[4:8], rec.Data)
	putInt32(out[8:12], rec.Type)

	timeBytes, err := encodeString(textEnc, rec.Time, 16)
	if err != nil {
		return nil, err
	}
	copy(out[12:28], timeBytes)

	nameBytes, err := encodeString(textEnc, rec.Name, 32)
	if err != nil {
		return nil, err
	}
	copy(out[28:60], nameBytes)

	return out, nil
}

// DecodeAlarmField decodes a single-attribute alarm payload (§4.4 "Alarm
// data": attribute selects one field instead of the concatenated record).
func DecodeAlarmField(attr AlarmAttribute, b []byte, textEnc encoding.Encoding) (*AlarmRecord, error) {
	switch attr {
	case AlarmAttributeCode:
		if len(b) < 4 {
			return nil, ErrShortPayload
		}
		return &AlarmRecord{Code: getInt32(b[0:4])}, nil
	case AlarmAttributeData:
		if len(b) < 4 {
			return nil, ErrShortPayload
		}
		return &AlarmRecord{Data: getInt32(b[0:4])}, nil
	case AlarmAttributeType:
		if len(b) < 4 {
			return nil, ErrShortPayload
		}
		return &AlarmRecord{Type: getInt32(b[0:4])}, nil
	case AlarmAttributeTime:
		if len(b) < 16 {
			return nil, ErrShortPayload
		}
		return &AlarmRecord{Time: decodeString(textEnc, b[0:16])}, nil
	case AlarmAttributeName:
		if len(b) < 32 {
			return nil, ErrShortPayload
		}
		return &AlarmRecord{Name: decodeString(textEnc, b[0:32])}, nil
	default:
		return DecodeAlarmAll(b, textEnc)
	}
}

// EncodeAlarmField is EncodeAlarmAll's single-attribute counterpart, used
// by the mock server to answer an attribute-scoped alarm data request.
func EncodeAlarmField(attr AlarmAttribute, rec *AlarmRecord, textEnc encoding.Encoding) ([]byte, error) {
	switch attr {
	case AlarmAttributeCode:
		out := make([]byte, 4)
		putInt32(out, rec.Code)
		return out, nil
	case AlarmAttributeData:
		out := make([]byte, 4)
		putInt32(out, rec.Data)
		return out, nil
	case AlarmAttributeType:
		out := make([]byte, 4)
		putInt32(out, rec.Type)
		return out, nil
	case AlarmAttributeTime:
		return encodeString(textEnc, rec.Time, 16)
	case AlarmAttributeName:
		return encodeString(textEnc, rec.Name, 32)
	default:
		return EncodeAlarmAll(rec, textEnc)
	}
}

// DecodeAlarmAll decodes the concatenated "all fields" alarm payload.
func DecodeAlarmAll(b []byte, textEnc encoding.Encoding) (*AlarmRecord, error) {
	if len(b) < 60 {
		return nil, ErrShortPayload
	}
	return &AlarmRecord{
		Code: getInt32(b[0:4]),
		Data: getInt32(b[4:8]),
		Type: getInt32(b[8:12]),
		Time: decodeString(textEnc, b[12:28]),
		Name: decodeString(textEnc, b[28:60]),
	}, nil
}
