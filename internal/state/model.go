package state

// Canvas geometry shared by every surface.
const (
	CanvasSize     = 500
	StrokeWidth    = 2.0
	OutlineWidth   = 1.5
	DefaultColor   = "blue"
	DefaultHeading = 0.0
)

type Point struct{ X, Y float64 }

// Stroke is one straight segment left behind by a pen-down move.
type Stroke struct {
	FromX, FromY float64
	ToX, ToY     float64
	Color        string
}

// Pointer is the turtle: where it stands, where it faces and the color it
// draws with. Heading is in degrees, clockwise, 0 pointing up.
type Pointer struct {
	X, Y    float64
	Heading float64
	Color   string
}

func DefaultPointer() Pointer {
	return Pointer{X: CanvasSize / 2, Y: CanvasSize / 2, Heading: DefaultHeading, Color: DefaultColor}
}

type EventKind string

const (
	KindClear EventKind = "ClearEvent"
	KindMove  EventKind = "MoveEvent"
	KindSay   EventKind = "SayEvent"
	KindError EventKind = "ErrorEvent"
)

// Event is one entry of the interpreter's execution trace.
type Event interface {
	Kind() EventKind
}

type ClearEvent struct{}

type MoveEvent struct {
	FromX, FromY float64
	ToX, ToY     float64
	NewHeading   float64
	Color        string
	PenDown      bool
}

type SayEvent struct {
	Message string
}

type ErrorEvent struct {
	Message string
}

func (ClearEvent) Kind() EventKind { return KindClear }
func (MoveEvent) Kind() EventKind  { return KindMove }
func (SayEvent) Kind() EventKind   { return KindSay }
func (ErrorEvent) Kind() EventKind { return KindError }
