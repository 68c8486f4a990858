package hses

// CoordinateFrame identifies the Cartesian coordinate system of a Position (§3.2).
type CoordinateFrame byte

const (
	FrameBase CoordinateFrame = iota
	FrameRobot
	FrameTool
	FrameUser1
	// FrameUser2 .. FrameUser16 follow FrameUser1 consecutively.
)

// UserFrame returns the CoordinateFrame for user coordinate system n
// (1..16).
func UserFrame(n int) CoordinateFrame {
	return FrameUser1 + CoordinateFrame(n-1)
}

// Position is a tagged sum of a pulse (joint-space) or Cartesian
// (task-space) position (§3.2).
type Position struct {
	Pulse     *PulsePosition
	Cartesian *CartesianPosition
}

// PulsePosition is joint-space position data: up to 8 axis encoder
// counts plus a tool number. Axes beyond the controller's active count
// are zero.
type PulsePosition struct {
	Joints [8]int32
	Tool   int32
	// ExtConfig preserves unknown configuration bits verbatim (§4.1).
	ExtConfig int32
}

// CartesianPosition is task-space position data. X/Y/Z are in
// micrometres, Rx/Ry/Rz in millidegrees, matching the wire units exactly
// (§4.1) so round-trips are exact.
type CartesianPosition struct {
	X, Y, Z    int32
	Rx, Ry, Rz int32
	UserCoord  int32
	Frame      CoordinateFrame
	Config     int32
	Tool       int32
	// ExtConfig preserves unknown configuration bits verbatim (§4.1).
	ExtConfig int32
}

const (
	posTypePulse     = 0x00
	posTypeCartBase  = 0x10
	posTypeCartRobot = 0x11
	posTypeCartTool  = 0x12
	posTypeCartUser1 = 0x13
)

func frameToTypeByte(f CoordinateFrame) int32 {
	switch {
	case f == FrameBase:
		return posTypeCartBase
	case f == FrameRobot:
		return posTypeCartRobot
	case f == FrameTool:
		return posTypeCartTool
	case f >= FrameUser1:
		return posTypeCartUser1 + int32(f-FrameUser1)
	default:
		return posTypeCartBase
	}
}

func typeByteToFrame(t int32) CoordinateFrame {
	switch {
	case t == posTypeCartBase:
		return FrameBase
	case t == posTypeCartRobot:
		return FrameRobot
	case t == posTypeCartTool:
		return FrameTool
	case t >= posTypeCartUser1:
		return UserFrame(int(t-posTypeCartUser1) + 1)
	default:
		return FrameBase
	}
}

// EncodePosition encodes a Position to its 52-byte wire form (§4.1).
func EncodePosition(p *Position) ([]byte, error) {
	out := make([]byte, 52)

	switch {
	case p.Pulse != nil:
		pp := p.Pulse
		putInt32(out[0:4], posTypePulse)
		putInt32(out[4:8], 0) // config: unused for pulse
		putInt32(out[8:12], pp.Tool)
		putInt32(out[12:16], 0) // user_coord: unused for pulse
		putInt32(out[16:20], pp.ExtConfig)
		for i := 0; i < 8; i++ {
			putInt32(out[20+i*4:24+i*4], pp.Joints[i])
		}

	case p.Cartesian != nil:
		cp := p.Cartesian
		putInt32(out[0:4], frameToTypeByte(cp.Frame))
		putInt32(out[4:8], cp.Config)
		putInt32(out[8:12], cp.Tool)
		putInt32(out[12:16], cp.UserCoord)
		putInt32(out[16:20], cp.ExtConfig)
		putInt32(out[20:24], cp.X)
		putInt32(out[24:28], cp.Y)
		putInt32(out[28:32], cp.Z)
		putInt32(out[32:36], cp.Rx)
		putInt32(out[36:40], cp.Ry)
		putInt32(out[40:44], cp.Rz)
		// bytes 44:52 are padding, left zero

	default:
		return nil, ErrInvalidRange
	}

	return out, nil
}

// DecodePosition decodes a 52-byte wire-form position (§4.1).
func DecodePosition(b []byte) (*Position, error) {
	if len(b) < 52 {
		return nil, ErrShortPayload
	}

	typeByte := getInt32(b[0:4])

	if typeByte == posTypePulse {
		pp := &PulsePosition{
			Tool:      getInt32(b[8:12]),
			ExtConfig: getInt32(b[16:20]),
		}
		for i := 0; i < 8; i++ {
			pp.Joints[i] = getInt32(b[20+i*4 : 24+i*4])
		}
		return &Position{Pulse: pp}, nil
	}

	if typeByte >= posTypeCartBase && typeByte <= posTypeCartUser1+15 {
		cp := &CartesianPosition{
			Frame:     typeByteToFrame(typeByte),
			Config:    getInt32(b[4:8]),
			Tool:      getInt32(b[8:12]),
			UserCoord: getInt32(b[12:16]),
			ExtConfig: getInt32(b[16:20]),
			X:         getInt32(b[20:24]),
			Y:         getInt32(b[24:28]),
			Z:         getInt32(b[28:32]),
			Rx:        getInt32(b[32:36]),
			Ry:        getInt32(b[36:40]),
			Rz:        getInt32(b[40:44]),
		}
		return &Position{Cartesian: cp}, nil
	}

	return nil, ErrInvalidEnum
}
