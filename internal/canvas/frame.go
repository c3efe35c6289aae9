package canvas

import (
	"image"
	"time"
)

// LineStyle of a reference line.
type LineStyle int

const (
	Solid LineStyle = iota
	Dotted
)

func (s LineStyle) String() string {
	if s == Dotted {
		return "dotted"
	}
	return "solid"
}

// Limits is an axis range in data coordinates.
type Limits struct {
	Min, Max float64
}

func (l Limits) span() float64 {
	return l.Max - l.Min
}

// Point is one scatter marker in data coordinates.
type Point struct {
	X, Y  float64
	Group string
}

// VLine is a vertical reference line at data coordinate X.
type VLine struct {
	X     float64
	Style LineStyle
}

// Frame is an immutable snapshot of a surface after one render.
type Frame struct {
	ID           int
	Image        *image.RGBA
	Points       []Point
	Lines        []VLine
	Title        string
	XLim, YLim   Limits
	YAxisVisible bool
}

// Animation is an ordered sequence of frames with playback metadata.
type Animation struct {
	Frames   []Frame
	Interval time.Duration
	// LoopCount follows image/gif: 0 repeats forever.
	LoopCount     int
	Width, Height int
}

func (a *Animation) Len() int {
	return len(a.Frames)
}

// Duration is the length of one pass through the animation.
func (a *Animation) Duration() time.Duration {
	return time.Duration(len(a.Frames)) * a.Interval
}
