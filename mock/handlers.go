package mock

import (
	"encoding/binary"

	"github.com/hse-go/hses"
)

// registerDefaultHandlers wires up one Handler per command family named
// in §4.4, covering the full command set this core addresses.
func registerDefaultHandlers(r *HandlerRegistry) {
	for _, k := range []hses.VariableKind{
		hses.KindB, hses.KindI, hses.KindD, hses.KindR, hses.KindS,
		hses.KindP, hses.KindBP, hses.KindEX,
	} {
		r.Register(hses.SingleVariableCommandID(k), singleVariableHandler(k))
	}

	for _, k := range []hses.VariableKind{hses.KindB, hses.KindI, hses.KindD, hses.KindR, hses.KindS} {
		id, _ := hses.PluralVariableCommandID(k)
		r.Register(id, pluralVariableHandler(k))
	}

	r.Register(hses.AlarmDataCommandID, alarmDataHandler)
	r.Register(hses.AlarmHistoryCommandID, alarmHistoryHandler)
	r.Register(hses.StatusCommandID, statusHandler)
	r.Register(hses.ExecutingJobInfoCommandID, executingJobInfoHandler)
	r.Register(0x75, positionReadHandler)
	r.Register(0x82, alarmResetHandler)
	r.Register(0x83, holdServoHandler)
	r.Register(0x84, cycleModeHandler)
	r.Register(hses.JobStartCommandID, jobStartHandler)
	r.Register(hses.JobSelectCommandID, jobSelectHandler)
	r.Register(hses.PluralRegisterCommandID, pluralRegisterHandler)
	r.Register(hses.PluralIOCommandID, pluralIOHandler)
}

// --- single variables (0x7A-0x81) ---

func singleVariableHandler(k hses.VariableKind) Handler {
	return func(state *State, frame *hses.RequestFrame) ([]byte, byte, uint16) {
		if frame.Attribute != 1 {
			return nil, hses.StatusInvalidElement, 0
		}
		if frame.Instance > 999 {
			return nil, hses.StatusInvalidElement, 0
		}

		switch frame.Service {
		case hses.ServiceGetSingle:
			v, err := state.readVariable(k, frame.Instance)
			if err != nil {
				return nil, hses.StatusInvalidElement, 0
			}
			payload, err := hses.EncodeVariable(state.encoding(), k, v)
			if err != nil {
				return nil, hses.StatusAbnormalReply, 0
			}
			return payload, hses.StatusSuccess, 0

		case hses.ServiceSetSingle:
			v, err := hses.DecodeVariable(state.encoding(), k, frame.Payload)
			if err != nil {
				return nil, hses.StatusInvalidElement, 0
			}
			if err := state.writeVariable(k, frame.Instance, v); err != nil {
				return nil, hses.StatusInvalidElement, 0
			}
			return nil, hses.StatusSuccess, 0

		default:
			return nil, hses.StatusInvalidElement, 0
		}
	}
}

// --- plural variables (0x302-0x306) ---

func pluralVariableHandler(k hses.VariableKind) Handler {
	max, parity2 := k.PluralBounds()

	return func(state *State, frame *hses.RequestFrame) ([]byte, byte, uint16) {
		switch frame.Service {
		case hses.ServiceReadPlural:
			count, _, err := hses.DecodePluralCount(frame.Payload)
			if err != nil {
				return nil, hses.StatusInvalidElement, 0
			}
			if hses.ValidatePluralCount(count, max, parity2) != nil {
				return nil, hses.StatusInvalidElement, 0
			}

			out := hses.PluralHeader(count)
			for i := 0; i < count; i++ {
				v, err := state.readVariable(k, frame.Instance+uint16(i))
				if err != nil {
					return nil, hses.StatusInvalidElement, 0
				}
				elem, err := hses.EncodePluralElement(state.encoding(), k, v)
				if err != nil {
					return nil, hses.StatusAbnormalReply, 0
				}
				out = append(out, elem...)
			}
			return out, hses.StatusSuccess, 0

		case hses.ServiceWritePlural:
			count, rest, err := hses.DecodePluralCount(frame.Payload)
			if err != nil {
				return nil, hses.StatusInvalidElement, 0
			}
			if hses.ValidatePluralCount(count, max, parity2) != nil {
				return nil, hses.StatusInvalidElement, 0
			}

			width := hses.PluralElementWidth(k)
			if len(rest) < count*width {
				return nil, hses.StatusInvalidElement, 0
			}
			for i := 0; i < count; i++ {
				v, err := hses.DecodePluralElement(state.encoding(), k, rest[i*width:(i+1)*width])
				if err != nil {
					return nil, hses.StatusInvalidElement, 0
				}
				if err := state.writeVariable(k, frame.Instance+uint16(i), v); err != nil {
					return nil, hses.StatusInvalidElement, 0
				}
			}
			return hses.PluralHeader(count), hses.StatusSuccess, 0

		default:
			return nil, hses.StatusInvalidElement, 0
		}
	}
}

// --- registers (0x301) ---

func pluralRegisterHandler(state *State, frame *hses.RequestFrame) ([]byte, byte, uint16) {
	switch frame.Service {
	case hses.ServiceReadPlural:
		count, _, err := hses.DecodePluralCount(frame.Payload)
		if err != nil || count <= 0 || count > 237 {
			return nil, hses.StatusInvalidElement, 0
		}
		out := hses.PluralHeader(count)
		for i := 0; i < count; i++ {
			v, err := state.readRegister(frame.Instance + uint16(i))
			if err != nil {
				return nil, hses.StatusInvalidElement, 0
			}
			elem := make([]byte, 2)
			binary.LittleEndian.PutUint16(elem, uint16(v))
			out = append(out, elem...)
		}
		return out, hses.StatusSuccess, 0

	case hses.ServiceWritePlural:
		count, rest, err := hses.DecodePluralCount(frame.Payload)
		if err != nil || count <= 0 || count > 237 || len(rest) < count*2 {
			return nil, hses.StatusInvalidElement, 0
		}
		for i := 0; i < count; i++ {
			v := int16(binary.LittleEndian.Uint16(rest[i*2 : i*2+2]))
			if err := state.writeRegister(frame.Instance+uint16(i), v); err != nil {
				return nil, hses.StatusInvalidElement, 0
			}
		}
		return hses.PluralHeader(count), hses.StatusSuccess, 0

	default:
		return nil, hses.StatusInvalidElement, 0
	}
}

// --- I/O (0x300) ---

func pluralIOHandler(state *State, frame *hses.RequestFrame) ([]byte, byte, uint16) {
	switch frame.Service {
	case hses.ServiceReadPlural:
		count, _, err := hses.DecodePluralCount(frame.Payload)
		if err != nil || count <= 0 || count > 474 || count%2 != 0 {
			return nil, hses.StatusInvalidElement, 0
		}
		byteCount := (count + 7) / 8
		packed := make([]byte, byteCount)
		for i := 0; i < count; i++ {
			if state.readIO(int(frame.Instance) + i) {
				packed[i/8] |= 1 << (uint(i) % 8)
			}
		}
		return append(hses.PluralHeader(count), packed...), hses.StatusSuccess, 0

	case hses.ServiceWritePlural:
		count, rest, err := hses.DecodePluralCount(frame.Payload)
		if err != nil || count <= 0 || count > 474 || count%2 != 0 {
			return nil, hses.StatusInvalidElement, 0
		}
		byteCount := (count + 7) / 8
		if len(rest) < byteCount {
			return nil, hses.StatusInvalidElement, 0
		}
		for i := 0; i < count; i++ {
			bitSet := (rest[i/8]>>(uint(i)%8))&0x01 == 0x01
			if err := state.writeIO(int(frame.Instance)+i, bitSet); err != nil {
				return nil, hses.StatusInvalidElement, 0
			}
		}
		return hses.PluralHeader(count), hses.StatusSuccess, 0

	default:
		return nil, hses.StatusInvalidElement, 0
	}
}

// --- alarm data / history (0x70, 0x71) ---

func alarmDataHandler(state *State, frame *hses.RequestFrame) ([]byte, byte, uint16) {
	if frame.Instance < 1 || frame.Service != hses.ServiceGetAll {
		return nil, hses.StatusInvalidElement, 0
	}
	rec, ok := state.readAlarm(int(frame.Instance))
	if !ok {
		return nil, hses.StatusInstanceNotFound, 0
	}
	payload, err := hses.EncodeAlarmField(hses.AlarmAttribute(frame.Attribute), rec, state.encoding())
	if err != nil {
		return nil, hses.StatusAbnormalReply, 0
	}
	return payload, hses.StatusSuccess, 0
}

func alarmHistoryHandler(state *State, frame *hses.RequestFrame) ([]byte, byte, uint16) {
	if frame.Service != hses.ServiceGetAll {
		return nil, hses.StatusInvalidElement, 0
	}
	sub, _, ok := hses.ClassifyAlarmHistory(int(frame.Instance))
	if !ok {
		// out-of-range instance: empty payload, not an error (§4.4, §9).
		return []byte{}, hses.StatusSuccess, 0
	}
	rec, found := state.readAlarmHistory(int(frame.Instance))
	if !found {
		// slot not populated: also an empty payload (§9 Open Question).
		return []byte{}, hses.StatusSuccess, 0
	}
	rec.Sub = sub
	payload, err := hses.EncodeAlarmAll(rec, state.encoding())
	if err != nil {
		return nil, hses.StatusAbnormalReply, 0
	}
	return payload, hses.StatusSuccess, 0
}

// --- status (0x72) ---

func statusHandler(state *State, frame *hses.RequestFrame) ([]byte, byte, uint16) {
	if frame.Service != hses.ServiceGetAll {
		return nil, hses.StatusInvalidElement, 0
	}
	return hses.EncodeStatus(statusPtr(state)), hses.StatusSuccess, 0
}

func statusPtr(state *State) *hses.Status {
	st := state.readStatus()
	return &st
}

// --- executing job info (0x73) ---

func executingJobInfoHandler(state *State, frame *hses.RequestFrame) ([]byte, byte, uint16) {
	if frame.Instance > hses.MaxTask || frame.Service != hses.ServiceGetAll {
		return nil, hses.StatusInvalidElement, 0
	}
	info := state.readJobInfo(frame.Instance)
	payload, err := hses.EncodeJobInfoAll(info, state.encoding())
	if err != nil {
		return nil, hses.StatusAbnormalReply, 0
	}
	return payload, hses.StatusSuccess, 0
}

// --- position read (0x75) ---

func positionReadHandler(state *State, frame *hses.RequestFrame) ([]byte, byte, uint16) {
	if frame.Service != hses.ServiceGetAll {
		return nil, hses.StatusInvalidElement, 0
	}
	valid := (frame.Instance >= 1 && frame.Instance <= 30) || (frame.Instance >= 101 && frame.Instance <= 110)
	if !valid {
		return nil, hses.StatusInvalidElement, 0
	}

	pos := state.readRobotPosition(frame.Instance)
	payload, err := hses.EncodePosition(pos)
	if err != nil {
		return nil, hses.StatusAbnormalReply, 0
	}
	return payload, hses.StatusSuccess, 0
}

// --- alarm reset (0x82) ---

func alarmResetHandler(state *State, frame *hses.RequestFrame) ([]byte, byte, uint16) {
	if frame.Attribute != 1 || frame.Service != hses.ServiceSetSingle {
		return nil, hses.StatusInvalidElement, 0
	}
	switch hses.AlarmResetKind(frame.Instance) {
	case hses.AlarmResetReset, hses.AlarmResetCancel:
		return nil, hses.StatusSuccess, 0
	default:
		return nil, hses.StatusInvalidElement, 0
	}
}

// --- hold/servo (0x83) ---

func holdServoHandler(state *State, frame *hses.RequestFrame) ([]byte, byte, uint16) {
	if frame.Attribute != 1 || frame.Service != hses.ServiceSetSingle || len(frame.Payload) < 4 {
		return nil, hses.StatusInvalidElement, 0
	}
	target := hses.HoldServoTarget(frame.Instance)
	switch target {
	case hses.TargetHold, hses.TargetServo, hses.TargetHlock:
	default:
		return nil, hses.StatusInvalidElement, 0
	}
	on := int32(binary.LittleEndian.Uint32(frame.Payload[0:4])) == 1
	state.ApplyHoldServo(target, on)
	return nil, hses.StatusSuccess, 0
}

// --- cycle mode (0x84) ---

func cycleModeHandler(state *State, frame *hses.RequestFrame) ([]byte, byte, uint16) {
	if frame.Instance != 2 || frame.Attribute != 1 || frame.Service != hses.ServiceSetSingle || len(frame.Payload) < 4 {
		return nil, hses.StatusInvalidElement, 0
	}
	mode := hses.CycleMode(int32(binary.LittleEndian.Uint32(frame.Payload[0:4])))
	if mode < hses.CycleModeStep || mode > hses.CycleModeContinuous {
		return nil, hses.StatusInvalidElement, 0
	}
	state.SetCycleMode(mode)
	return nil, hses.StatusSuccess, 0
}

// --- job start (0x86) ---

func jobStartHandler(state *State, frame *hses.RequestFrame) ([]byte, byte, uint16) {
	if frame.Instance != 1 || frame.Attribute != 1 || frame.Service != hses.ServiceSetSingle {
		return nil, hses.StatusInvalidElement, 0
	}
	state.SetRunning(true)
	return nil, hses.StatusSuccess, 0
}

// --- job select (0x87) ---

func jobSelectHandler(state *State, frame *hses.RequestFrame) ([]byte, byte, uint16) {
	if frame.Attribute != 1 || frame.Service != hses.ServiceSetAll {
		return nil, hses.StatusInvalidElement, 0
	}
	if !hses.IsValidJobSelectInstance(frame.Instance) {
		return nil, hses.StatusInvalidElement, 0
	}
	sel, err := hses.DecodeJobSelect(frame.Payload, state.encoding())
	if err != nil {
		return nil, hses.StatusInvalidElement, 0
	}
	state.writeSelectedJob(frame.Instance, sel)
	return nil, hses.StatusSuccess, 0
}
