package hses

import "golang.org/x/text/encoding"

// JobInfo is the per-task executing job state (§3.2, §4.4 "Executing job
// info").
type JobInfo struct {
	JobName       string
	Line          int32
	Step          int32
	SpeedOverride int32
}

// SelectedJob is the per-task selected (not necessarily executing) job
// (§3.2).
type SelectedJob struct {
	JobName string
	Line    int32
}

// JobInfoAttribute selects which field of a job info record a 0x73
// command addresses.
type JobInfoAttribute byte

const (
	JobInfoAttributeAll           JobInfoAttribute = 0
	JobInfoAttributeJobName       JobInfoAttribute = 1
	JobInfoAttributeLine          JobInfoAttribute = 2
	JobInfoAttributeStep          JobInfoAttribute = 3
	JobInfoAttributeSpeedOverride JobInfoAttribute = 4
)

const (
	ExecutingJobInfoCommandID uint16 = 0x73
	JobSelectCommandID        uint16 = 0x87
	JobStartCommandID         uint16 = 0x86
)

// MaxTask is the highest task index (0..5, §3.2).
const MaxTask = 5

// EncodeJobInfoAll encodes the "all fields" executing job info payload:
// job_name(32), line(4), step(4), speed_override(4).
func EncodeJobInfoAll(info *JobInfo, textEnc encoding.Encoding) ([]byte, error) {
	out := make([]byte, 32+4+4+4)
	nameBytes, err := encodeString(textEnc, info.JobName, 32)
	if err != nil {
		return nil, err
	}
	copy(out[0:32], nameBytes)
	putInt32(out[32:36], info.Line)
	putInt32(out[36:40], info.Step)
	putInt32(out[40:44], info.SpeedOverride)
	return out, nil
}

// DecodeJobInfoAll decodes the "all fields" executing job info payload.
func DecodeJobInfoAll(b []byte, textEnc encoding.Encoding) (*JobInfo, error) {
	if len(b) < 44 {
		return nil, ErrShortPayload
	}
	return &JobInfo{
		JobName:       decodeString(textEnc, b[0:32]),
		Line:          getInt32(b[32:36]),
		Step:          getInt32(b[36:40]),
		SpeedOverride: getInt32(b[40:44]),
	}, nil
}

// EncodeJobSelect encodes a job-select request payload: job_name(32) ||
// line(4, LE). line must be <= 9999 (§4.4 "Job select").
func EncodeJobSelect(sel *SelectedJob, textEnc encoding.Encoding) ([]byte, error) {
	if sel.Line > 9999 {
		return nil, ErrInvalidRange
	}
	out := make([]byte, 36)
	nameBytes, err := encodeString(textEnc, sel.JobName, 32)
	if err != nil {
		return nil, err
	}
	copy(out[0:32], nameBytes)
	putInt32(out[32:36], sel.Line)
	return out, nil
}

// DecodeJobSelect decodes a job-select request payload.
func DecodeJobSelect(b []byte, textEnc encoding.Encoding) (*SelectedJob, error) {
	if len(b) < 36 {
		return nil, ErrShortPayload
	}
	line := getInt32(b[32:36])
	if line > 9999 {
		return nil, ErrInvalidRange
	}
	return &SelectedJob{
		JobName: decodeString(textEnc, b[0:32]),
		Line:    line,
	}, nil
}

// IsValidJobSelectInstance reports whether instance is a legal target for
// the job-select command: 1 (master task) or 10..15 (sub tasks), per
// §4.4 "Job select".
func IsValidJobSelectInstance(instance uint16) bool {
	return instance == 1 || (instance >= 10 && instance <= 15)
}
