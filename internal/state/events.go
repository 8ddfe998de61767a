package state

import (
	"encoding/json"
	"fmt"
)

// WireEvent is the flattened JSON shape the interpreter sends for every event.
type WireEvent struct {
	Type         EventKind `json:"type"`
	FromX        float64   `json:"fromX,omitempty"`
	FromY        float64   `json:"fromY,omitempty"`
	ToX          float64   `json:"toX,omitempty"`
	ToY          float64   `json:"toY,omitempty"`
	NewDirection float64   `json:"newDirection,omitempty"`
	Color        string    `json:"color,omitempty"`
	IsPenDown    bool      `json:"isPenDown,omitempty"`
	Message      string    `json:"message,omitempty"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
}

type moveWire struct {
	Type         EventKind `json:"type"`
	FromX        float64   `json:"fromX"`
	FromY        float64   `json:"fromY"`
	ToX          float64   `json:"toX"`
	ToY          float64   `json:"toY"`
	NewDirection float64   `json:"newDirection"`
	Color        string    `json:"color"`
	IsPenDown    bool      `json:"isPenDown"`
}

type sayWire struct {
	Type    EventKind `json:"type"`
	Message string    `json:"message"`
}

type errorWire struct {
	Type         EventKind `json:"type"`
	ErrorMessage string    `json:"errorMessage"`
}

// MarshalJSON writes every field that belongs to the event's type, zero
// values included, and nothing else.
func (w WireEvent) MarshalJSON() ([]byte, error) {
	switch w.Type {
	case KindMove:
		return json.Marshal(moveWire{
			Type:         w.Type,
			FromX:        w.FromX,
			FromY:        w.FromY,
			ToX:          w.ToX,
			ToY:          w.ToY,
			NewDirection: w.NewDirection,
			Color:        w.Color,
			IsPenDown:    w.IsPenDown,
		})
	case KindSay:
		return json.Marshal(sayWire{Type: w.Type, Message: w.Message})
	case KindError:
		return json.Marshal(errorWire{Type: w.Type, ErrorMessage: w.ErrorMessage})
	}
	return json.Marshal(struct {
		Type EventKind `json:"type"`
	}{w.Type})
}

// DecodeEvents parses an interpreter event list.
func DecodeEvents(data []byte) ([]Event, error) {
	var raw []WireEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return FromWire(raw)
}

// EncodeEvents renders events back into the interpreter's wire format.
func EncodeEvents(events []Event) ([]byte, error) {
	raw, err := ToWire(events)
	if err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}

// FromWire converts decoded wire events, rejecting unknown discriminators.
func FromWire(raw []WireEvent) ([]Event, error) {
	events := make([]Event, 0, len(raw))
	for i, w := range raw {
		switch w.Type {
		case KindClear:
			events = append(events, ClearEvent{})
		case KindMove:
			events = append(events, MoveEvent{
				FromX:      w.FromX,
				FromY:      w.FromY,
				ToX:        w.ToX,
				ToY:        w.ToY,
				NewHeading: w.NewDirection,
				Color:      w.Color,
				PenDown:    w.IsPenDown,
			})
		case KindSay:
			events = append(events, SayEvent{Message: w.Message})
		case KindError:
			events = append(events, ErrorEvent{Message: w.ErrorMessage})
		default:
			return nil, fmt.Errorf("decode event %d: unknown type %q", i, w.Type)
		}
	}
	return events, nil
}

func ToWire(events []Event) ([]WireEvent, error) {
	raw := make([]WireEvent, 0, len(events))
	for i, ev := range events {
		w, err := toWire(ev)
		if err != nil {
			return nil, fmt.Errorf("encode event %d: %w", i, err)
		}
		raw = append(raw, w)
	}
	return raw, nil
}

func toWire(ev Event) (WireEvent, error) {
	switch e := ev.(type) {
	case ClearEvent:
		return WireEvent{Type: KindClear}, nil
	case MoveEvent:
		return WireEvent{
			Type:         KindMove,
			FromX:        e.FromX,
			FromY:        e.FromY,
			ToX:          e.ToX,
			ToY:          e.ToY,
			NewDirection: e.NewHeading,
			Color:        e.Color,
			IsPenDown:    e.PenDown,
		}, nil
	case SayEvent:
		return WireEvent{Type: KindSay, Message: e.Message}, nil
	case ErrorEvent:
		return WireEvent{Type: KindError, ErrorMessage: e.Message}, nil
	}
	return WireEvent{}, fmt.Errorf("unsupported event %T", ev)
}
