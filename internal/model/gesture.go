package model

import (
	"fmt"
	"time"
)

// Stroke durations for the single-point gestures.
const (
	TapDuration       = 50 * time.Millisecond
	LongPressDuration = 600 * time.Millisecond
)

// Point is a screen coordinate.
type Point struct {
	X, Y int
}

// Gesture is a single-stroke pointer path executed over Duration.
type Gesture struct {
	Path     []Point
	Duration time.Duration
}

// Tap builds a single-point stroke held for TapDuration.
func Tap(x, y int) Gesture {
	return Gesture{Path: []Point{{X: x, Y: y}, {X: x, Y: y}}, Duration: TapDuration}
}

// LongPress builds a single-point stroke held for LongPressDuration.
func LongPress(x, y int) Gesture {
	return Gesture{Path: []Point{{X: x, Y: y}, {X: x, Y: y}}, Duration: LongPressDuration}
}

// Swipe builds a two-point stroke with the caller's duration.
func Swipe(x1, y1, x2, y2 int, d time.Duration) (Gesture, error) {
	if d < 0 {
		return Gesture{}, fmt.Errorf("swipe duration must be non-negative, got %s", d)
	}
	return Gesture{Path: []Point{{X: x1, Y: y1}, {X: x2, Y: y2}}, Duration: d}, nil
}

// Start returns the first point of the path.
func (g Gesture) Start() Point {
	if len(g.Path) == 0 {
		return Point{}
	}
	return g.Path[0]
}

// End returns the last point of the path.
func (g Gesture) End() Point {
	if len(g.Path) == 0 {
		return Point{}
	}
	return g.Path[len(g.Path)-1]
}

// Stationary reports whether the stroke starts and ends at the same point.
func (g Gesture) Stationary() bool {
	return g.Start() == g.End()
}
