package main

import (
	"context"
	"log"
	"os"
	"strings"

	"TurtleBoard/internal/config"
	tnet "TurtleBoard/internal/net"
	"TurtleBoard/internal/ui"
)

const (
	CustomURLScheme = "turtleboard://"
	fallbackURL     = "ws://localhost:8888/ws"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	url := interpreterURL(cfg, os.Args[1:])
	log.Printf("Using interpreter at %s", url)

	client := tnet.NewClient(url)
	defer client.Close()
	ui.RunApp(cfg, client)
}

// interpreterURL picks the interpreter endpoint: a share link on the command
// line, then the environment, then whatever mDNS finds, then localhost.
func interpreterURL(cfg config.Client, args []string) string {
	if len(args) > 0 {
		if u := linkToURL(args[0]); u != "" {
			return u
		}
	}
	if cfg.InterpreterURL != "" {
		return cfg.InterpreterURL
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DiscoveryTimeout)
	defer cancel()
	u, err := tnet.Discover(ctx, cfg.DiscoveryTimeout)
	if err != nil {
		log.Printf("Interpreter discovery failed: %v", err)
		return fallbackURL
	}
	return u
}

// linkToURL accepts "turtleboard://host:port" links as well as plain
// websocket URLs.
func linkToURL(arg string) string {
	switch {
	case strings.HasPrefix(arg, CustomURLScheme):
		addr := strings.TrimSuffix(strings.TrimPrefix(arg, CustomURLScheme), "/")
		if addr == "" {
			return ""
		}
		return "ws://" + addr + "/ws"
	case strings.HasPrefix(arg, "ws://"), strings.HasPrefix(arg, "wss://"):
		return arg
	}
	return ""
}
