//go:build !linux

package mock

import (
	"fmt"
	"net"
)

// listenReusable falls back to a plain bind on platforms without
// SO_REUSEPORT support in this package (§6.1: the dual-port listener
// works everywhere, the reuse behavior is a Linux-only convenience).
func listenReusable(host string, port int) (*net.UDPConn, error) {
	addr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return nil, err
	}
	return net.ListenUDP("udp", addr)
}
