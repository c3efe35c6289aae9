package video

import (
	"context"
	"fmt"
	"strings"

	"github.com/ivlev/playanim/internal/canvas"
)

// Encoder persists a finished animation to a file.
type Encoder interface {
	Encode(ctx context.Context, anim *canvas.Animation, path string) error
	Ext() string
}

// ForFormat returns the encoder for an output format (gif or mp4).
func ForFormat(format string, opts Options) (Encoder, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "gif", "":
		return &GIFWriter{Workers: opts.Workers}, nil
	case "mp4":
		return &FFmpegEncoder{FPS: opts.FPS, Codec: opts.Codec, Quality: opts.Quality}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

type Options struct {
	Workers int
	FPS     int
	Codec   string
	Quality int
}
