package mock

import (
	"net"
	"testing"
	"time"

	"github.com/hse-go/hses"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := NewServer("127.0.0.1", NewState(), WithPorts(0, 0))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(func() { srv.Close() })
	return srv
}

// roundTrip sends a raw request frame to the robot port and returns the
// decoded response, bypassing the Client entirely so tests can exercise
// framing the Client's own constructors would never produce.
func roundTrip(t *testing.T, srv *Server, raw []byte) *hses.ResponseFrame {
	t.Helper()
	conn, err := net.DialUDP("udp", nil, srv.RobotAddr())
	if err != nil {
		t.Fatalf("DialUDP: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write(raw); err != nil {
		t.Fatalf("Write: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(time.Second))

	buf := make([]byte, 1024)
	n, err := conn.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	frame, err := hses.DecodeResponse(buf[:n])
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	return frame
}

func TestServerUndefinedCommandReturnsStatus08(t *testing.T) {
	srv := newTestServer(t)

	raw, err := hses.EncodeRequest(0xFFFF, 0, 0, hses.ServiceGetAll, 1, hses.DivisionRobot, nil)
	if err != nil {
		t.Fatalf("EncodeRequest: %v", err)
	}

	resp := roundTrip(t, srv, raw)
	if resp.Status != hses.StatusUndefinedCommand {
		t.Fatalf("got status 0x%02x, want 0x%02x", resp.Status, hses.StatusUndefinedCommand)
	}
}

func TestServerMalformedFrameIsSilentlyDropped(t *testing.T) {
	srv := newTestServer(t)

	conn, err := net.DialUDP("udp", nil, srv.RobotAddr())
	if err != nil {
		t.Fatalf("DialUDP: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("not a valid frame at all")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	buf := make([]byte, 64)
	if _, err := conn.Read(buf); err == nil {
		t.Fatalf("expected no response to a malformed frame")
	}
}

func TestHandlerRegistryDispatchUnknownCommand(t *testing.T) {
	r := NewHandlerRegistry()
	s := NewState()
	frame := &hses.RequestFrame{CommandID: 0x9999}

	_, status, _ := r.Dispatch(s, frame)
	if status != hses.StatusUndefinedCommand {
		t.Fatalf("got status 0x%02x, want 0x%02x", status, hses.StatusUndefinedCommand)
	}
}
