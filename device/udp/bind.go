package udp

import (
	"fmt"
	"net"
	"strconv"
)

// Bind opens the UDP socket the logger broadcasts to (e.g. 127.0.0.1:12060).
func Bind(address string, port int) (*net.UDPConn, error) {
	if port < 0 || port > 65535 {
		return nil, fmt.Errorf("invalid UDP port %d", port)
	}

	hostport := net.JoinHostPort(address, strconv.Itoa(port))

	addr, err := net.ResolveUDPAddr("udp", hostport)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", hostport, err)
	}

	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", hostport, err)
	}

	return conn, nil
}
