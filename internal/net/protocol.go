package net

import (
	"context"
	"errors"

	"TurtleBoard/internal/state"
)

// Operations understood by an interpreter endpoint.
const (
	OpExecute  = "execute"
	OpValidate = "validate"
)

var (
	ErrClosed    = errors.New("net: client closed")
	ErrNoService = errors.New("net: no interpreter found")
)

// Interpreter runs programs remotely and hands back their event trace.
type Interpreter interface {
	Execute(ctx context.Context, code string) ([]state.Event, error)
	Validate(ctx context.Context, code string) ([]Diagnostic, error)
}

// Diagnostic is one validation finding, attached to a source line.
type Diagnostic struct {
	Line    int    `json:"lineNumber"`
	Message string `json:"message"`
}

type Request struct {
	ID   string `json:"id"`
	Op   string `json:"op"`
	Code string `json:"code"`
}

type Response struct {
	ID          string            `json:"id"`
	Events      []state.WireEvent `json:"events,omitempty"`
	Diagnostics []Diagnostic      `json:"diagnostics,omitempty"`
	Error       string            `json:"error,omitempty"`
}
