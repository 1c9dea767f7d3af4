package frame

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Direction names a side of a key in its own frame.
// Front is toward the typist (-Y), Top is up (+Z).
type Direction uint8

const (
	Front Direction = iota
	Back
	Left
	Right
	Top
	Bottom
	FrontLeft
	FrontRight
	BackLeft
	BackRight
)

var dirNames = [...]string{
	Front:      "front",
	Back:       "back",
	Left:       "left",
	Right:      "right",
	Top:        "top",
	Bottom:     "bottom",
	FrontLeft:  "front-left",
	FrontRight: "front-right",
	BackLeft:   "back-left",
	BackRight:  "back-right",
}

func (d Direction) String() string {
	if int(d) < len(dirNames) {
		return dirNames[d]
	}
	return fmt.Sprintf("Direction(%d)", d)
}

// Local returns the unnormalized direction in frame coordinates.
func (d Direction) Local() r3.Vec {
	switch d {
	case Front:
		return r3.Vec{Y: -1}
	case Back:
		return r3.Vec{Y: 1}
	case Left:
		return r3.Vec{X: -1}
	case Right:
		return r3.Vec{X: 1}
	case Top:
		return r3.Vec{Z: 1}
	case Bottom:
		return r3.Vec{Z: -1}
	case FrontLeft:
		return r3.Vec{X: -1, Y: -1}
	case FrontRight:
		return r3.Vec{X: 1, Y: -1}
	case BackLeft:
		return r3.Vec{X: -1, Y: 1}
	case BackRight:
		return r3.Vec{X: 1, Y: 1}
	}
	panic("invalid direction " + d.String())
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case Front:
		return Back
	case Back:
		return Front
	case Left:
		return Right
	case Right:
		return Left
	case Top:
		return Bottom
	case Bottom:
		return Top
	case FrontLeft:
		return BackRight
	case FrontRight:
		return BackLeft
	case BackLeft:
		return FrontRight
	case BackRight:
		return FrontLeft
	}
	panic("invalid direction " + d.String())
}
