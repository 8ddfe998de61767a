// Command replayd stands in for the interpreter during development: it
// answers every program with the same recorded event trace.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"TurtleBoard/internal/config"
	tnet "TurtleBoard/internal/net"
	"TurtleBoard/internal/state"
)

func main() {
	cfg, err := config.LoadReplay()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	events, err := loadEvents(cfg.EventsFile)
	if err != nil {
		log.Fatalf("Failed to load events: %v", err)
	}
	log.Printf("[REPLAYD] Serving %d events", len(events))

	srv := tnet.NewServer(tnet.Replay{Events: events})
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, srv)
	httpSrv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Port), Handler: mux}

	if cfg.Advertise {
		m, err := tnet.Advertise(cfg.Port, cfg.Path)
		if err != nil {
			log.Printf("[REPLAYD] mDNS advertising disabled: %v", err)
		} else {
			defer m.Shutdown()
		}
	}

	share := tnet.ShareURL(cfg.Port, cfg.Path)
	log.Printf("[REPLAYD] Listening on %s", share)
	log.Printf("[REPLAYD] Share link: turtleboard://%s", strings.TrimSuffix(strings.TrimPrefix(share, "ws://"), cfg.Path))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Peers.CloseAll()
		httpSrv.Shutdown(shutdownCtx)
	}()

	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("[REPLAYD] Failed to start server: %v", err)
	}
}

func loadEvents(path string) ([]state.Event, error) {
	if path == "" {
		return demoSquare(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return state.DecodeEvents(data)
}

// demoSquare is the trace of a program drawing a 100px square and
// announcing it.
func demoSquare() []state.Event {
	events := []state.Event{state.ClearEvent{}}
	x, y := 250.0, 250.0
	dirs := []struct{ dx, dy, heading float64 }{
		{0, -100, 0},
		{100, 0, 90},
		{0, 100, 180},
		{-100, 0, 270},
	}
	for i, d := range dirs {
		events = append(events, state.MoveEvent{
			FromX: x, FromY: y, ToX: x + d.dx, ToY: y + d.dy,
			NewHeading: d.heading, Color: "blue", PenDown: true,
		})
		x, y = x+d.dx, y+d.dy
		// turn in place after each side
		next := dirs[(i+1)%len(dirs)].heading
		events = append(events, state.MoveEvent{FromX: x, FromY: y, ToX: x, ToY: y, NewHeading: next, Color: "blue", PenDown: true})
	}
	return append(events, state.SayEvent{Message: "Done!"})
}
