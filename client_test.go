package hses_test

import (
	"errors"
	"testing"
	"time"

	"github.com/hse-go/hses"
	"github.com/hse-go/hses/mock"
)

func newTestServer(t *testing.T) *mock.Server {
	t.Helper()
	srv, err := mock.NewServer("127.0.0.1", mock.NewState(), mock.WithPorts(0, 0))
	if err != nil {
		t.Fatalf("mock.NewServer: %v", err)
	}
	t.Cleanup(func() { srv.Close() })
	return srv
}

func newTestClient(t *testing.T, srv *mock.Server, conf hses.Configuration) *hses.Client {
	t.Helper()
	cli, err := hses.NewClientAddr(srv.RobotAddr().String(), conf)
	if err != nil {
		t.Fatalf("hses.NewClientAddr: %v", err)
	}
	t.Cleanup(func() { cli.Close() })
	return cli
}

func TestClientReadStatusHappyPath(t *testing.T) {
	srv := newTestServer(t)
	srv.State().SetStatus(hses.Status{Running: true, ServoOn: true, Play: true})

	cli := newTestClient(t, srv, hses.Configuration{})

	st, err := hses.Send(cli, hses.NewReadStatus())
	if err != nil {
		t.Fatalf("Send(status): %v", err)
	}
	if !st.Running || !st.ServoOn || !st.Play {
		t.Fatalf("unexpected status: %+v", st)
	}
}

func TestClientByteVariableRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	cli := newTestClient(t, srv, hses.Configuration{})

	wcmd, err := hses.NewWriteByteVariable(5, 0xAB)
	if err != nil {
		t.Fatalf("NewWriteByteVariable: %v", err)
	}
	if _, err := hses.Send(cli, wcmd); err != nil {
		t.Fatalf("Send(write byte): %v", err)
	}

	rcmd, err := hses.NewReadByteVariable(5)
	if err != nil {
		t.Fatalf("NewReadByteVariable: %v", err)
	}
	v, err := hses.Send(cli, rcmd)
	if err != nil {
		t.Fatalf("Send(read byte): %v", err)
	}
	if v != 0xAB {
		t.Fatalf("got %#x, want 0xAB", v)
	}
}

func TestClientPluralRegisterRoundTripAndWritableBoundary(t *testing.T) {
	srv := newTestServer(t)
	cli := newTestClient(t, srv, hses.Configuration{})

	wcmd, err := hses.NewWritePluralRegisters(0, []int16{10, 20, 30})
	if err != nil {
		t.Fatalf("NewWritePluralRegisters: %v", err)
	}
	if _, err := hses.Send(cli, wcmd); err != nil {
		t.Fatalf("Send(write registers): %v", err)
	}

	rcmd, err := hses.NewReadPluralRegisters(0, 3)
	if err != nil {
		t.Fatalf("NewReadPluralRegisters: %v", err)
	}
	vals, err := hses.Send(cli, rcmd)
	if err != nil {
		t.Fatalf("Send(read registers): %v", err)
	}
	if len(vals) != 3 || vals[0] != 10 || vals[1] != 20 || vals[2] != 30 {
		t.Fatalf("unexpected values: %v", vals)
	}

	// Registers 560-999 are read-only: the client rejects a write that
	// would spill past the writable boundary before a frame is ever sent.
	if _, err := hses.NewWritePluralRegisters(558, []int16{1, 2, 3}); err != hses.ErrInvalidRange {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestClientUnseededAlarmReturnsControllerError(t *testing.T) {
	srv := newTestServer(t)
	cli := newTestClient(t, srv, hses.Configuration{})

	cmd, err := hses.NewReadAlarmData(1, hses.AlarmAttributeAll)
	if err != nil {
		t.Fatalf("NewReadAlarmData: %v", err)
	}
	_, err = hses.Send(cli, cmd)
	if err == nil {
		t.Fatalf("expected an error reading an unseeded alarm instance")
	}
	if !errors.Is(err, &hses.ControllerError{Status: hses.StatusInstanceNotFound}) {
		t.Fatalf("expected StatusInstanceNotFound, got %v", err)
	}
}

func TestClientRetriesAfterDroppedDatagram(t *testing.T) {
	srv := newTestServer(t)
	srv.State().SetStatus(hses.Status{Running: true})
	srv.DropNextDatagrams(1)

	cli := newTestClient(t, srv, hses.Configuration{
		Timeout:    60 * time.Millisecond,
		RetryCount: 2,
		RetryDelay: 10 * time.Millisecond,
	})

	st, err := hses.Send(cli, hses.NewReadStatus())
	if err != nil {
		t.Fatalf("expected the retry to recover from the dropped datagram, got: %v", err)
	}
	if !st.Running {
		t.Fatalf("unexpected status after retry: %+v", st)
	}
}

func TestClientReadAlarmHistoryUnpopulatedSlotIsNil(t *testing.T) {
	srv := newTestServer(t)
	cli := newTestClient(t, srv, hses.Configuration{})

	cmd, err := hses.NewReadAlarmHistory(1)
	if err != nil {
		t.Fatalf("NewReadAlarmHistory: %v", err)
	}
	rec, err := hses.Send(cli, cmd)
	if err != nil {
		t.Fatalf("Send(alarm history): %v", err)
	}
	if rec != nil {
		t.Fatalf("expected a nil record for an unpopulated history slot, got %+v", rec)
	}
}
