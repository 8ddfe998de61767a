// Command turtle-tty plays a turtle program in the terminal.
//
// Usage:
//
//	turtle-tty [-url ws://host:port/ws] [-speed step|normal|fast] program.cody
//	turtle-tty -events trace.json
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"TurtleBoard/internal/config"
	tnet "TurtleBoard/internal/net"
	"TurtleBoard/internal/playback"
	"TurtleBoard/internal/sound"
	"TurtleBoard/internal/state"
)

const fallbackURL = "ws://localhost:8888/ws"

func main() {
	eventsFile := flag.String("events", "", "play a recorded event trace instead of running a program")
	url := flag.String("url", "", "interpreter websocket URL")
	speedName := flag.String("speed", "normal", "initial speed: step, normal or fast")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [program]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	speed, err := parseSpeed(*speedName)
	if err != nil {
		log.Fatal(err)
	}

	var events []state.Event
	switch {
	case *eventsFile != "":
		events, err = readTrace(*eventsFile)
	case flag.NArg() == 1:
		events, err = runProgram(cfg, *url, flag.Arg(0))
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}

	// The screen owns the terminal from here on.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to initialise screen: %v", err)
	}

	var beeper *sound.Beeper
	if cfg.Sound {
		if beeper, err = sound.New(); err != nil {
			// Non-fatal, play silently
			log.Printf("Audio initialization failed: %v", err)
		}
	}

	p := newPlayer(screen, cfg, events, speed, beeper)
	p.run()
	p.cleanup()
}

func parseSpeed(name string) (playback.SpeedMode, error) {
	switch strings.ToLower(name) {
	case "step", "0":
		return playback.Step, nil
	case "normal", "1":
		return playback.Normal, nil
	case "fast", "2":
		return playback.Fast, nil
	}
	return playback.Normal, fmt.Errorf("unknown speed %q", name)
}

func readTrace(path string) ([]state.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return state.DecodeEvents(data)
}

func runProgram(cfg config.Client, url, path string) ([]state.Event, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read program: %w", err)
	}
	if url == "" {
		url = cfg.InterpreterURL
	}
	if url == "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.DiscoveryTimeout)
		url, err = tnet.Discover(ctx, cfg.DiscoveryTimeout)
		cancel()
		if err != nil {
			log.Printf("Interpreter discovery failed: %v", err)
			url = fallbackURL
		}
	}

	client := tnet.NewClient(url)
	defer client.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	events, err := client.Execute(ctx, string(code))
	if err != nil {
		return nil, fmt.Errorf("network or server error: %w", err)
	}
	return events, nil
}
