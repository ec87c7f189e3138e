package logic

import (
	"fmt"
	"time"
)

// Color is the color shown by one road's signal head. Red is the zero value:
// any road a phase does not light green or yellow is red.
type Color int

const (
	Red Color = iota
	Yellow
	Green
)

func (c Color) String() string {
	switch c {
	case Red:
		return "RED"
	case Yellow:
		return "YELLOW"
	case Green:
		return "GREEN"
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

// Phase is one fixed combination of road colors held for a duration
type Phase struct {
	RoadA Color
	RoadB Color
	Hold  time.Duration
}

func (p Phase) String() string {
	return fmt.Sprintf("{A: %v, B: %v, hold: %v}", p.RoadA, p.RoadB, p.Hold)
}

// lineFor maps a road's color to the line lighting it. The phase tables built
// here are exhaustive over the three colors; anything else is a programming
// error.
func lineFor(base LineID, c Color) LineID {
	switch c {
	case Red:
		return base + LineARed
	case Yellow:
		return base + LineAYellow
	case Green:
		return base + LineAGreen
	}
	panic(fmt.Sprintf("no line for color %d", int(c)))
}

// ActiveLines returns the set of lines lit during the phase: exactly one
// line per road
func (p Phase) ActiveLines() LineSet {
	var s LineSet
	s = s.With(lineFor(LineARed, p.RoadA))
	s = s.With(lineFor(LineBRed, p.RoadB))
	return s
}

// NewPhases builds the canonical six-phase cycle from the three hold
// durations: road A green, road A yellow, all red buffer, road B green,
// road B yellow, all red buffer.
func NewPhases(green, yellow, allRed time.Duration) []Phase {
	return []Phase{
		{RoadA: Green, RoadB: Red, Hold: green},
		{RoadA: Yellow, RoadB: Red, Hold: yellow},
		{RoadA: Red, RoadB: Red, Hold: allRed},
		{RoadA: Red, RoadB: Green, Hold: green},
		{RoadA: Red, RoadB: Yellow, Hold: yellow},
		{RoadA: Red, RoadB: Red, Hold: allRed},
	}
}

// Default hold durations, matching the original intersection timing
const (
	DefaultGreenHold  = 5 * time.Second
	DefaultYellowHold = 1 * time.Second
	DefaultAllRedHold = 1 * time.Second
)

// DefaultPhases builds the six-phase cycle with the default timing
func DefaultPhases() []Phase {
	return NewPhases(DefaultGreenHold, DefaultYellowHold, DefaultAllRedHold)
}
