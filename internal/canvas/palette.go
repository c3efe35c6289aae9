package canvas

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette assigns a stable colour to each group label in order of first use.
type Palette struct {
	base     []colorful.Color
	assigned map[string]color.RGBA
	order    []string
}

func NewPalette(hexes []string) (*Palette, error) {
	p := &Palette{assigned: make(map[string]color.RGBA)}
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("palette colour %q: %w", h, err)
		}
		p.base = append(p.base, c)
	}
	return p, nil
}

// Color returns the colour of a group, assigning the next free one if needed.
func (p *Palette) Color(group string) color.RGBA {
	if c, ok := p.assigned[group]; ok {
		return c
	}

	i := len(p.order)
	var c colorful.Color
	if i < len(p.base) {
		c = p.base[i]
	} else {
		// golden angle keeps generated hues apart
		h := math.Mod(float64(i)*137.508, 360)
		c = colorful.Hcl(h, 0.55, 0.6).Clamped()
	}

	rgba := toRGBA(c)
	p.assigned[group] = rgba
	p.order = append(p.order, group)
	return rgba
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func parseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	return toRGBA(c), nil
}
