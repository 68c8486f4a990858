// Package mock implements a deterministic stand-in for the controller
// side of the HSES protocol, for hermetic end-to-end tests (§4.4).
package mock

import (
	"sync"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"

	"github.com/hse-go/hses"
)

const (
	variableSlots = 1000
	registerSlots = hses.RegisterMax + 1
)

// State holds everything the controller remembers between requests
// (§3.2). Every exported accessor locks internally for the duration of
// its own operation, so a multi-field read (job info "all", status,
// alarm "all") observes a consistent snapshot even while another
// goroutine is mutating a different field concurrently (§3.3: "only the
// dispatch loop mutates; readers snapshot").
type State struct {
	mu sync.RWMutex

	textEncoding encoding.Encoding

	bytes   [variableSlots]byte
	ints    [variableSlots]int16
	dints   [variableSlots]int32
	reals   [variableSlots]float32
	strings [variableSlots]string

	positions     map[uint16]*hses.Position
	basePositions map[uint16]*hses.Position
	externalAxes  map[uint16]*hses.Position

	// robotPositions backs the 0x75 position-read command, keyed by its
	// own instance numbering (1..30 pulse groups, 101..110 Cartesian).
	// It is independent of the P/BP/EX variable storage above: 0x75
	// reports the controller's current position for a control group,
	// which is a different addressing scheme from variable storage.
	robotPositions map[uint16]*hses.Position

	registers [registerSlots]int16

	io map[int]bool

	alarms       map[int]*hses.AlarmRecord
	alarmHistory map[int]*hses.AlarmRecord

	jobInfo     map[uint16]*hses.JobInfo
	selectedJob map[uint16]*hses.SelectedJob

	status    hses.Status
	cycleMode hses.CycleMode
}

// NewState builds a State with Shift-JIS text encoding and everything
// else zero-valued, ready to be handed to NewServer.
func NewState() *State {
	return &State{
		textEncoding:   japanese.ShiftJIS,
		positions:      make(map[uint16]*hses.Position),
		basePositions:  make(map[uint16]*hses.Position),
		externalAxes:   make(map[uint16]*hses.Position),
		robotPositions: make(map[uint16]*hses.Position),
		io:             make(map[int]bool),
		alarms:         make(map[int]*hses.AlarmRecord),
		alarmHistory:   make(map[int]*hses.AlarmRecord),
		jobInfo:        make(map[uint16]*hses.JobInfo),
		selectedJob:    make(map[uint16]*hses.SelectedJob),
		cycleMode:      hses.CycleModeStep,
	}
}

// SetTextEncoding overrides the encoding used to decode/encode string
// fields (alarm time/name, job names). Shift-JIS by default.
func (s *State) SetTextEncoding(enc encoding.Encoding) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.textEncoding = enc
}

func (s *State) encoding() encoding.Encoding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.textEncoding
}

// SetStatus installs the status bits reported by the status command.
func (s *State) SetStatus(st hses.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = st
}

func (s *State) readStatus() hses.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *State) setServoOnLocked(on bool)  { s.status.ServoOn = on }
func (s *State) setHoldLocked(target hses.HoldServoTarget, on bool) {
	switch target {
	case hses.TargetHold:
		s.status.HoldCommand = on
	case hses.TargetServo:
		s.setServoOnLocked(on)
	case hses.TargetHlock:
		// hlock has no dedicated Status field; tracked only as an
		// accepted operation (§4.4 "Hold/Servo").
	}
}

// ApplyHoldServo implements the 0x83 handler's state transition.
func (s *State) ApplyHoldServo(target hses.HoldServoTarget, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setHoldLocked(target, on)
}

// SetCycleMode / readCycleMode implement the 0x84 handler's state.
func (s *State) SetCycleMode(m hses.CycleMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycleMode = m
}

func (s *State) readCycleMode() hses.CycleMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cycleMode
}

// SetRunning flips the status Running bit, used by the job-start handler.
func (s *State) SetRunning(running bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Running = running
}

// --- variables ---

func (s *State) readVariable(k hses.VariableKind, idx uint16) (interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readVariableLocked(k, idx)
}

func (s *State) readVariableLocked(k hses.VariableKind, idx uint16) (interface{}, error) {
	if int(idx) >= variableSlots {
		return nil, hses.ErrInvalidRange
	}
	switch k {
	case hses.KindB:
		return s.bytes[idx], nil
	case hses.KindI:
		return s.ints[idx], nil
	case hses.KindD:
		return s.dints[idx], nil
	case hses.KindR:
		return s.reals[idx], nil
	case hses.KindS:
		return s.strings[idx], nil
	case hses.KindP:
		return s.positionOrZeroLocked(s.positions, idx), nil
	case hses.KindBP:
		return s.positionOrZeroLocked(s.basePositions, idx), nil
	case hses.KindEX:
		return s.positionOrZeroLocked(s.externalAxes, idx), nil
	default:
		return nil, hses.ErrInvalidEnum
	}
}

func (s *State) positionOrZeroLocked(m map[uint16]*hses.Position, idx uint16) *hses.Position {
	if p, ok := m[idx]; ok {
		return p
	}
	return &hses.Position{Pulse: &hses.PulsePosition{}}
}

func (s *State) writeVariable(k hses.VariableKind, idx uint16, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeVariableLocked(k, idx, v)
}

func (s *State) writeVariableLocked(k hses.VariableKind, idx uint16, v interface{}) error {
	if int(idx) >= variableSlots {
		return hses.ErrInvalidRange
	}
	switch k {
	case hses.KindB:
		s.bytes[idx] = v.(byte)
	case hses.KindI:
		s.ints[idx] = v.(int16)
	case hses.KindD:
		s.dints[idx] = v.(int32)
	case hses.KindR:
		s.reals[idx] = v.(float32)
	case hses.KindS:
		s.strings[idx] = v.(string)
	case hses.KindP:
		s.positions[idx] = v.(*hses.Position)
	case hses.KindBP:
		s.basePositions[idx] = v.(*hses.Position)
	case hses.KindEX:
		s.externalAxes[idx] = v.(*hses.Position)
	default:
		return hses.ErrInvalidEnum
	}
	return nil
}

// SeedRobotPosition installs the position the 0x75 command reports for
// the given instance (1..30 pulse groups, 101..110 Cartesian).
func (s *State) SeedRobotPosition(instance uint16, pos *hses.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.robotPositions[instance] = pos
}

func (s *State) readRobotPosition(instance uint16) *hses.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.robotPositions[instance]; ok {
		return p
	}
	return &hses.Position{Pulse: &hses.PulsePosition{}}
}

// --- registers ---

func (s *State) readRegister(addr uint16) (int16, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !hses.IsValidRegister(addr) {
		return 0, hses.ErrInvalidRange
	}
	return s.registers[addr], nil
}

func (s *State) writeRegister(addr uint16, v int16) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !hses.IsWritableRegister(addr) {
		return hses.ErrInvalidRange
	}
	s.registers[addr] = v
	return nil
}

// --- I/O ---

func (s *State) readIO(n int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.io[n]
}

func (s *State) writeIO(n int, v bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !hses.IsWritableIO(n) {
		return hses.ErrInvalidRange
	}
	s.io[n] = v
	return nil
}

// SeedIO lets a test pre-populate I/O bits outside the writable range
// (e.g. sensor inputs the controller itself would set).
func (s *State) SeedIO(n int, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.io[n] = v
}

// --- alarms ---

// SeedAlarm installs a live alarm record at a 1-based instance.
func (s *State) SeedAlarm(instance int, rec *hses.AlarmRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alarms[instance] = rec
}

func (s *State) readAlarm(instance int) (*hses.AlarmRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.alarms[instance]
	return rec, ok
}

// SeedAlarmHistory installs a history record at a 1..1000 instance.
func (s *State) SeedAlarmHistory(instance int, rec *hses.AlarmRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alarmHistory[instance] = rec
}

func (s *State) readAlarmHistory(instance int) (*hses.AlarmRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.alarmHistory[instance]
	return rec, ok
}

// --- job info ---

// SetJobInfo installs the executing job info for a task (0..5).
func (s *State) SetJobInfo(task uint16, info *hses.JobInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobInfo[task] = info
}

func (s *State) readJobInfo(task uint16) *hses.JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if info, ok := s.jobInfo[task]; ok {
		return info
	}
	return &hses.JobInfo{}
}

func (s *State) writeSelectedJob(task uint16, sel *hses.SelectedJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedJob[task] = sel
}

func (s *State) readSelectedJob(task uint16) *hses.SelectedJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sel, ok := s.selectedJob[task]; ok {
		return sel
	}
	return &hses.SelectedJob{}
}
