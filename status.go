package hses

// Status is the decoded form of the 8-byte status payload (§3.2, §4.4).
type Status struct {
	Step         bool
	OneCycle     bool
	Continuous   bool
	Running      bool
	SpeedLimited bool
	Teach        bool
	Play         bool
	Remote       bool
	HoldPendant  bool
	HoldExternal bool
	HoldCommand  bool
	Alarm        bool
	Error        bool
	ServoOn      bool
}

// StatusCommandID is the command id for the status command (0x72).
const StatusCommandID uint16 = 0x72

func bit(b byte, n uint) bool { return (b>>n)&0x01 == 0x01 }

func setBit(b *byte, n uint, v bool) {
	if v {
		*b |= 1 << n
	}
}

// EncodeStatus encodes a Status into the 8-byte wire payload (§4.4
// "Status"): byte 0 holds {step,one-cycle,continuous,running,
// speed-limited,teach,play,remote}; byte 4 holds {hold-pendant,
// hold-external,hold-command,alarm,error,servo-on}; the rest is reserved
// zero.
func EncodeStatus(s *Status) []byte {
	out := make([]byte, 8)

	setBit(&out[0], 0, s.Step)
	setBit(&out[0], 1, s.OneCycle)
	setBit(&out[0], 2, s.Continuous)
	setBit(&out[0], 3, s.Running)
	setBit(&out[0], 4, s.SpeedLimited)
	setBit(&out[0], 5, s.Teach)
	setBit(&out[0], 6, s.Play)
	setBit(&out[0], 7, s.Remote)

	setBit(&out[4], 0, s.HoldPendant)
	setBit(&out[4], 1, s.HoldExternal)
	setBit(&out[4], 2, s.HoldCommand)
	setBit(&out[4], 3, s.Alarm)
	setBit(&out[4], 4, s.Error)
	setBit(&out[4], 5, s.ServoOn)

	return out
}

// DecodeStatus decodes the 8-byte status payload.
func DecodeStatus(b []byte) (*Status, error) {
	if len(b) < 8 {
		return nil, ErrShortPayload
	}

	return &Status{
		Step:         bit(b[0], 0),
		OneCycle:     bit(b[0], 1),
		Continuous:   bit(b[0], 2),
		Running:      bit(b[0], 3),
		SpeedLimited: bit(b[0], 4),
		Teach:        bit(b[0], 5),
		Play:         bit(b[0], 6),
		Remote:       bit(b[0], 7),

		HoldPendant:  bit(b[4], 0),
		HoldExternal: bit(b[4], 1),
		HoldCommand:  bit(b[4], 2),
		Alarm:        bit(b[4], 3),
		Error:        bit(b[4], 4),
		ServoOn:      bit(b[4], 5),
	}, nil
}
