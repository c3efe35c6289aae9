package canvas

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/ivlev/playanim/internal/config"
)

// Figure margins as fractions of the figure size (matplotlib defaults).
const (
	marginLeft   = 0.125
	marginRight  = 0.9
	marginBottom = 0.11
	marginTop    = 0.88
)

// Surface is a single mutable 2D drawing area. It keeps a display list of
// what was plotted since the last Clear and rasterizes it on Snapshot.
// It never draws a legend. A Surface must not be shared between animations.
type Surface struct {
	width, height int
	dpi           float64
	markerSize    float64
	background    color.RGBA
	palette       *Palette
	img           *image.RGBA

	points     []Point
	lines      []VLine
	title      string
	xlim, ylim *Limits
	yAxis      bool
	despined   bool
}

func New(style config.Style) (*Surface, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	bg, err := parseColor(style.Background)
	if err != nil {
		return nil, fmt.Errorf("background colour: %w", err)
	}
	pal, err := NewPalette(style.Palette)
	if err != nil {
		return nil, err
	}

	w, h := style.Size()
	s := &Surface{
		width:      w,
		height:     h,
		dpi:        float64(style.DPI),
		markerSize: style.MarkerSize,
		background: bg,
		palette:    pal,
		img:        image.NewRGBA(image.Rect(0, 0, w, h)),
	}
	s.Clear()
	return s, nil
}

func (s *Surface) Bounds() image.Rectangle {
	return s.img.Rect
}

func (s *Surface) Palette() *Palette {
	return s.palette
}

// Clear drops everything drawn since the last Clear and resets axis state.
// Team colours survive so a group keeps its colour for the whole animation.
func (s *Surface) Clear() {
	s.points = s.points[:0]
	s.lines = s.lines[:0]
	s.title = ""
	s.xlim, s.ylim = nil, nil
	s.yAxis = true
	s.despined = false
}

func (s *Surface) Scatter(x, y float64, group string) {
	s.palette.Color(group)
	s.points = append(s.points, Point{X: x, Y: y, Group: group})
}

func (s *Surface) AxVLine(x float64, style LineStyle) {
	s.lines = append(s.lines, VLine{X: x, Style: style})
}

func (s *Surface) SetTitle(title string) {
	s.title = title
}

func (s *Surface) SetXLim(min, max float64) {
	s.xlim = &Limits{Min: min, Max: max}
}

func (s *Surface) SetYLim(min, max float64) {
	s.ylim = &Limits{Min: min, Max: max}
}

// HideYAxis removes the y ticks and their labels.
func (s *Surface) HideYAxis() {
	s.yAxis = false
}

// Despine removes the left, top and right borders of the axes.
func (s *Surface) Despine() {
	s.despined = true
}

// XLim returns the effective x range, derived from the data when unset.
func (s *Surface) XLim() Limits {
	if s.xlim != nil {
		return *s.xlim
	}
	return s.autoLimits(func(p Point) float64 { return p.X }, true)
}

func (s *Surface) YLim() Limits {
	if s.ylim != nil {
		return *s.ylim
	}
	return s.autoLimits(func(p Point) float64 { return p.Y }, false)
}

func (s *Surface) autoLimits(coord func(Point) float64, withLines bool) Limits {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range s.points {
		v := coord(p)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if withLines {
		for _, l := range s.lines {
			lo = math.Min(lo, l.X)
			hi = math.Max(hi, l.X)
		}
	}
	if math.IsInf(lo, 0) {
		return Limits{Min: 0, Max: 1}
	}
	if lo == hi {
		return Limits{Min: lo - 0.5, Max: hi + 0.5}
	}
	pad := (hi - lo) * 0.05
	return Limits{Min: lo - pad, Max: hi + pad}
}

// Snapshot rasterizes the current display list and returns a copy of it.
func (s *Surface) Snapshot(id int) Frame {
	s.rasterize()

	img := image.NewRGBA(s.img.Rect)
	copy(img.Pix, s.img.Pix)

	return Frame{
		ID:           id,
		Image:        img,
		Points:       append([]Point(nil), s.points...),
		Lines:        append([]VLine(nil), s.lines...),
		Title:        s.title,
		XLim:         s.XLim(),
		YLim:         s.YLim(),
		YAxisVisible: s.yAxis,
	}
}

// axesRect is the plotting area in pixels.
func (s *Surface) axesRect() image.Rectangle {
	w, h := float64(s.width), float64(s.height)
	return image.Rect(
		int(math.Round(w*marginLeft)),
		int(math.Round(h*(1-marginTop))),
		int(math.Round(w*marginRight)),
		int(math.Round(h*(1-marginBottom))),
	)
}

// ToPixel maps data coordinates to pixel coordinates.
func (s *Surface) ToPixel(x, y float64) (float64, float64) {
	r := s.axesRect()
	xl, yl := s.XLim(), s.YLim()
	px := float64(r.Min.X) + (x-xl.Min)/xl.span()*float64(r.Dx())
	py := float64(r.Min.Y) + (yl.Max-y)/yl.span()*float64(r.Dy())
	return px, py
}

// pt converts typographic points to pixels.
func (s *Surface) pt(v float64) float64 {
	return v * s.dpi / 72
}
