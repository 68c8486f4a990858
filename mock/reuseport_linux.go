//go:build linux

package mock

import (
	"context"
	"fmt"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// listenReusable binds host:port with SO_REUSEPORT set, so a test suite
// that restarts the mock server rapidly (or runs the robot and file
// listeners back to back in the same process) doesn't trip
// "address already in use" while the kernel drains the previous socket's
// TIME_WAIT state.
func listenReusable(host string, port int) (*net.UDPConn, error) {
	lc := net.ListenConfig{
		Control: func(_, _ string, c syscall.RawConn) error {
			var sockErr error
			err := c.Control(func(fd uintptr) {
				sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
			})
			if err != nil {
				return err
			}
			return sockErr
		},
	}

	pc, err := lc.ListenPacket(context.Background(), "udp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return nil, err
	}
	return pc.(*net.UDPConn), nil
}
