package playback

import (
	"errors"
	"fmt"

	"TurtleBoard/internal/state"
)

// ErrBusy is returned when Play or ResetDrawing is called during a pass.
var ErrBusy = errors.New("playback: execution already in progress")

// RuntimeFault is an unexpected failure while applying or drawing an event.
type RuntimeFault struct {
	Index int
	Kind  state.EventKind
	Err   error
}

func (f *RuntimeFault) Error() string {
	if f.Kind == "" {
		return fmt.Sprintf("playback: event %d: %v", f.Index, f.Err)
	}
	return fmt.Sprintf("playback: event %d (%s): %v", f.Index, f.Kind, f.Err)
}

func (f *RuntimeFault) Unwrap() error { return f.Err }
