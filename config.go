package hses

import (
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
)

// Default client configuration values (§6.2).
const (
	DefaultTimeout    = 300 * time.Millisecond
	DefaultRetryCount = 3
	DefaultRetryDelay = 100 * time.Millisecond
	DefaultBufferSize = 8192
	MaxPayloadSize    = 479
	HeaderSize        = 32
	RobotPort         = 10040
	FilePort          = 10041
)

// Configuration holds the knobs of §6.2. Zero-value fields are filled in
// with the defaults above by NewClient.
type Configuration struct {
	// Timeout is the per-attempt response wait.
	Timeout time.Duration
	// RetryCount is the number of additional attempts made on timeout or
	// I/O error, beyond the first.
	RetryCount int
	// RetryDelay is the base delay before a retry; actual delay is
	// RetryDelay * 2^attempt.
	RetryDelay time.Duration
	// BufferSize is the receive buffer capacity in bytes.
	BufferSize int
	// TextEncoding decodes/encodes fixed-width string payloads. Defaults
	// to Shift-JIS, matching how Yaskawa controllers ship.
	TextEncoding encoding.Encoding
	// Logger receives diagnostic messages. A nil Logger is replaced with
	// the default implementation.
	Logger LeveledLogger
}

func (c *Configuration) applyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RetryCount == 0 {
		c.RetryCount = DefaultRetryCount
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.BufferSize == 0 {
		c.BufferSize = DefaultBufferSize
	}
	if c.TextEncoding == nil {
		c.TextEncoding = japanese.ShiftJIS
	}
	if c.Logger == nil {
		c.Logger = NewLogger("hses-client")
	}
}
