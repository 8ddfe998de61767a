package net

import (
	"fmt"
	"log"
	"net"
)

// ShareURL is the websocket address other machines on the LAN can use to
// reach a server on port.
func ShareURL(port int, path string) string {
	return fmt.Sprintf("ws://%s:%d%s", outgoingIP(), port, path)
}

// outgoingIP prefers the address of the default route and falls back to the
// first non-loopback IPv4 interface address.
func outgoingIP() string {
	if conn, err := net.Dial("udp", "8.8.8.8:80"); err == nil {
		defer conn.Close()
		return conn.LocalAddr().(*net.UDPAddr).IP.String()
	}

	addrs, err := net.InterfaceAddrs()
	if err == nil {
		for _, address := range addrs {
			if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
				return ipnet.IP.String()
			}
		}
	}
	log.Println("[NET] No suitable local IP found, share address uses loopback")
	return "127.0.0.1"
}
