package hses

import (
	"errors"
	"fmt"
)

// Framing errors: local to the codec, never retried.
var (
	ErrMalformedHeader  = errors.New("malformed header")
	ErrTruncated        = errors.New("truncated frame")
	ErrEncodingTooLarge = errors.New("payload exceeds maximum frame size")
)

// Payload errors: local to the codec, never retried.
var (
	ErrShortPayload  = errors.New("payload too short")
	ErrStringTooLong = errors.New("string exceeds wire slot width")
	ErrInvalidEnum   = errors.New("invalid enumeration value")
	ErrInvalidRange  = errors.New("value out of allowed range")
)

// Transport errors: retried up to Configuration.RetryCount.
var (
	ErrTimeout = errors.New("request timed out")
)

// ControllerError wraps a non-zero response status/added-status pair
// returned by the controller (or mock). It is final and never retried.
type ControllerError struct {
	Status      byte
	AddedStatus uint16
}

func (e *ControllerError) Error() string {
	return fmt.Sprintf("controller error: status=0x%02x added_status=0x%04x", e.Status, e.AddedStatus)
}

// Is allows errors.Is(err, &ControllerError{Status: s}) to match on the
// status byte alone, mirroring how callers usually only care about it.
// A target with a non-zero AddedStatus must match that field as well.
func (e *ControllerError) Is(target error) bool {
	ce, ok := target.(*ControllerError)
	if !ok {
		return false
	}
	if ce.AddedStatus != 0 && ce.AddedStatus != e.AddedStatus {
		return false
	}
	return ce.Status == e.Status
}

// Status byte values the core recognizes (§7).
const (
	StatusSuccess          byte = 0x00
	StatusUndefinedCommand byte = 0x08
	StatusInvalidElement   byte = 0x09
	StatusAbnormalReply    byte = 0x1F
	StatusInstanceNotFound byte = 0x28
)
