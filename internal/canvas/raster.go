package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

var (
	black     = color.RGBA{A: 0xff}
	white     = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	spineGray = color.RGBA{R: 0x26, G: 0x26, B: 0x26, A: 0xff}
)

const circleKappa = 0.5522847498

func (s *Surface) rasterize() {
	draw.Draw(s.img, s.img.Rect, image.NewUniform(s.background), image.Point{}, draw.Src)

	axes := s.img.SubImage(s.axesRect()).(*image.RGBA)

	radius := math.Sqrt(s.markerSize) / 2 * s.dpi / 72
	edge := math.Max(1, s.pt(0.75))
	for _, p := range s.points {
		px, py := s.ToPixel(p.X, p.Y)
		fillCircle(axes, px, py, radius, white)
		fillCircle(axes, px, py, radius-edge, s.palette.Color(p.Group))
	}

	lw := int(math.Max(1, math.Round(s.pt(1.5))))
	for _, l := range s.lines {
		px, _ := s.ToPixel(l.X, 0)
		s.vline(axes, int(math.Round(px)), lw, l.Style)
	}

	s.drawSpines()
	s.drawTicks()

	if s.title != "" {
		r := s.axesRect()
		drawText(s.img, s.title, (r.Min.X+r.Max.X)/2, r.Min.Y-8, true)
	}
}

func (s *Surface) vline(dst *image.RGBA, x, lw int, style LineStyle) {
	r := dst.Bounds()
	x0 := x - lw/2
	if style == Solid {
		draw.Draw(dst, image.Rect(x0, r.Min.Y, x0+lw, r.Max.Y), image.NewUniform(black), image.Point{}, draw.Src)
		return
	}

	on := lw
	off := int(math.Max(1, math.Round(1.65*float64(lw))))
	for y := r.Min.Y; y < r.Max.Y; y += on + off {
		draw.Draw(dst, image.Rect(x0, y, x0+lw, y+on), image.NewUniform(black), image.Point{}, draw.Src)
	}
}

func (s *Surface) drawSpines() {
	r := s.axesRect()
	c := image.NewUniform(spineGray)
	draw.Draw(s.img, image.Rect(r.Min.X, r.Max.Y, r.Max.X, r.Max.Y+1), c, image.Point{}, draw.Src)
	if s.despined {
		return
	}
	draw.Draw(s.img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c, image.Point{}, draw.Src)
	draw.Draw(s.img, image.Rect(r.Min.X-1, r.Min.Y, r.Min.X, r.Max.Y+1), c, image.Point{}, draw.Src)
	draw.Draw(s.img, image.Rect(r.Max.X, r.Min.Y, r.Max.X+1, r.Max.Y+1), c, image.Point{}, draw.Src)
}

func (s *Surface) drawTicks() {
	r := s.axesRect()
	c := image.NewUniform(spineGray)
	tick := int(math.Max(2, math.Round(s.pt(3.5))))

	for _, v := range niceTicks(s.XLim()) {
		px, _ := s.ToPixel(v, 0)
		x := int(math.Round(px))
		draw.Draw(s.img, image.Rect(x, r.Max.Y, x+1, r.Max.Y+tick), c, image.Point{}, draw.Src)
		drawText(s.img, formatTick(v), x, r.Max.Y+tick+13, true)
	}

	if !s.yAxis {
		return
	}
	for _, v := range niceTicks(s.YLim()) {
		_, py := s.ToPixel(0, v)
		y := int(math.Round(py))
		draw.Draw(s.img, image.Rect(r.Min.X-tick, y, r.Min.X, y+1), c, image.Point{}, draw.Src)
		label := formatTick(v)
		w := font.MeasureString(basicfont.Face7x13, label).Round()
		drawText(s.img, label, r.Min.X-tick-4-w, y+4, false)
	}
}

// fillCircle draws an anti-aliased disc clipped to dst's bounds.
func fillCircle(dst *image.RGBA, cx, cy, r float64, c color.Color) {
	if r <= 0 {
		return
	}
	x0, y0 := int(math.Floor(cx-r)), int(math.Floor(cy-r))
	x1, y1 := int(math.Ceil(cx+r)), int(math.Ceil(cy+r))
	w, h := x1-x0, y1-y0

	lx, ly := float32(cx-float64(x0)), float32(cy-float64(y0))
	rr, kr := float32(r), float32(r*circleKappa)

	z := vector.NewRasterizer(w, h)
	z.MoveTo(lx+rr, ly)
	z.CubeTo(lx+rr, ly+kr, lx+kr, ly+rr, lx, ly+rr)
	z.CubeTo(lx-kr, ly+rr, lx-rr, ly+kr, lx-rr, ly)
	z.CubeTo(lx-rr, ly-kr, lx-kr, ly-rr, lx, ly-rr)
	z.CubeTo(lx+kr, ly-rr, lx+rr, ly-kr, lx+rr, ly)
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	draw.DrawMask(dst, image.Rect(x0, y0, x1, y1), image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}

// drawText draws s with its baseline at y. When centered, x is the middle
// of the string, otherwise its left edge.
func drawText(dst draw.Image, s string, x, y int, centered bool) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(black),
		Face: basicfont.Face7x13,
	}
	if centered {
		x -= d.MeasureString(s).Round() / 2
	}
	d.Dot = fixed.P(x, y)
	d.DrawString(s)
}

// niceTicks picks round tick positions inside l, about six of them.
func niceTicks(l Limits) []float64 {
	span := l.span()
	if span <= 0 {
		return nil
	}
	raw := span / 6
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := mag * 10
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if raw <= m*mag {
			step = m * mag
			break
		}
	}

	var ticks []float64
	for v := math.Ceil(l.Min/step) * step; v <= l.Max+step*1e-9; v += step {
		// avoid -0 and accumulated float noise
		ticks = append(ticks, math.Round(v/step)*step+0)
	}
	return ticks
}

func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
