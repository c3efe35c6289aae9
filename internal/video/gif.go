package video

import (
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/playanim/internal/canvas"
)

// GIFWriter writes a looping GIF. Frames are quantized in parallel.
type GIFWriter struct {
	Workers int
}

func (w *GIFWriter) Ext() string { return ".gif" }

func (w *GIFWriter) Encode(ctx context.Context, anim *canvas.Animation, path string) error {
	if anim.Len() == 0 {
		return fmt.Errorf("animation has no frames")
	}

	g, err := w.build(ctx, anim)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, g); err != nil {
		f.Close()
		return fmt.Errorf("gif encode error: %w", err)
	}
	return f.Close()
}

func (w *GIFWriter) build(ctx context.Context, anim *canvas.Animation) (*gif.GIF, error) {
	out := &gif.GIF{
		Image:     make([]*image.Paletted, anim.Len()),
		Delay:     frameDelays(anim.Interval, anim.Len()),
		LoopCount: anim.LoopCount,
	}

	eg, ctx := errgroup.WithContext(ctx)
	if w.Workers > 0 {
		eg.SetLimit(w.Workers)
	}
	for i := range anim.Frames {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src := anim.Frames[i].Image
			dst := image.NewPaletted(src.Bounds(), palette.Plan9)
			// flat colours: no dithering
			draw.Draw(dst, dst.Rect, src, src.Rect.Min, draw.Src)
			out.Image[i] = dst
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// frameDelays converts the interval to GIF delays (1/100 s). Each frame ends
// at the rounded ideal timestamp, so rounding errors do not accumulate.
func frameDelays(interval time.Duration, n int) []int {
	const tick = 10 * time.Millisecond
	delays := make([]int, n)
	prev := 0
	for i := range delays {
		end := int((time.Duration(i+1)*interval + tick/2) / tick)
		d := end - prev
		if d < 1 {
			d = 1
		}
		delays[i] = d
		prev += d
	}
	return delays
}
