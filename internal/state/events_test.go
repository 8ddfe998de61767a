package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTrace = `[
	{"type":"ClearEvent"},
	{"type":"MoveEvent","fromX":250,"fromY":250,"toX":250,"toY":150,"newDirection":0,"color":"red","isPenDown":true},
	{"type":"SayEvent","message":"hello"},
	{"type":"ErrorEvent","errorMessage":"line 3: unknown command"}
]`

func TestDecodeEvents(t *testing.T) {
	events, err := DecodeEvents([]byte(sampleTrace))
	require.NoError(t, err)

	assert.Equal(t, []Event{
		ClearEvent{},
		MoveEvent{FromX: 250, FromY: 250, ToX: 250, ToY: 150, NewHeading: 0, Color: "red", PenDown: true},
		SayEvent{Message: "hello"},
		ErrorEvent{Message: "line 3: unknown command"},
	}, events)
}

func TestDecodeEventsRejectsUnknownType(t *testing.T) {
	_, err := DecodeEvents([]byte(`[{"type":"ClearEvent"},{"type":"JumpEvent"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event 1")
	assert.Contains(t, err.Error(), "JumpEvent")
}

func TestDecodeEventsRejectsBadJSON(t *testing.T) {
	_, err := DecodeEvents([]byte(`{"type":"ClearEvent"}`))
	require.Error(t, err)
}

func TestEncodeEventsKeepsWireNames(t *testing.T) {
	events, err := DecodeEvents([]byte(sampleTrace))
	require.NoError(t, err)

	data, err := EncodeEvents(events)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"newDirection"`)
	assert.Contains(t, string(data), `"isPenDown":true`)
	assert.Contains(t, string(data), `"errorMessage":"line 3: unknown command"`)

	again, err := DecodeEvents(data)
	require.NoError(t, err)
	assert.Equal(t, events, again)
}

func TestEncodeEventsKeepsZeroFields(t *testing.T) {
	data, err := EncodeEvents([]Event{
		MoveEvent{FromX: 0, FromY: 0, ToX: 10, ToY: 0, NewHeading: 0, Color: "red", PenDown: false},
		SayEvent{},
		ClearEvent{},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"type":"MoveEvent","fromX":0,"fromY":0,"toX":10,"toY":0,"newDirection":0,"color":"red","isPenDown":false},
		{"type":"SayEvent","message":""},
		{"type":"ClearEvent"}
	]`, string(data))
}
