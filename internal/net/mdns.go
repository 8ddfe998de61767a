package net

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/mdns"
)

const ServiceType = "_turtleboard._tcp"

// Advertise announces an interpreter endpoint on the local network. The
// websocket path travels in a "path=" TXT record.
func Advertise(port int, path string) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	info := []string{"TurtleBoard", "path=" + path}
	service, err := mdns.NewMDNSService(host, ServiceType, "", "", port, nil, info)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Discover browses for an advertised interpreter and returns the websocket
// URL of the first usable answer.
func Discover(ctx context.Context, timeout time.Duration) (string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = timeout

	errc := make(chan error, 1)
	go func() {
		errc <- mdns.Query(params)
		close(entries)
	}()
	drain := func() {
		go func() {
			for range entries {
			}
		}()
	}

	for {
		select {
		case e, ok := <-entries:
			if !ok {
				if err := <-errc; err != nil {
					return "", fmt.Errorf("discover: %w", err)
				}
				return "", ErrNoService
			}
			if url := entryURL(e); url != "" {
				drain()
				return url, nil
			}
		case <-ctx.Done():
			drain()
			return "", ctx.Err()
		}
	}
}

func entryURL(e *mdns.ServiceEntry) string {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return ""
	}
	path := "/ws"
	for _, f := range e.InfoFields {
		if p, ok := strings.CutPrefix(f, "path="); ok && p != "" {
			path = p
		}
	}
	return fmt.Sprintf("ws://%s:%d%s", e.AddrV4, e.Port, path)
}
