package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
	"time"

	"github.com/ivlev/playanim/internal/canvas"
)

// FFmpegEncoder pipes raw RGBA frames into ffmpeg and writes H.264 video.
type FFmpegEncoder struct {
	FPS     int    // output rate; 0 = derived from the animation interval
	Codec   string // libx264, h264_nvenc, h264_videotoolbox
	Quality int
}

func (e *FFmpegEncoder) Ext() string { return ".mp4" }

func (e *FFmpegEncoder) Encode(ctx context.Context, anim *canvas.Animation, path string) error {
	if anim.Len() == 0 {
		return fmt.Errorf("animation has no frames")
	}

	args := e.buildFFmpegArgs(anim.Width, anim.Height, anim.Interval, path)
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe error: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}

	for _, f := range anim.Frames {
		if err := writeRawRGBA(stdin, f.Image); err != nil {
			stdin.Close()
			cmd.Wait()
			return fmt.Errorf("write raw error frame %d: %w", f.ID, err)
		}
	}
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w\nLog: %s", err, out.String())
	}
	return nil
}

func (e *FFmpegEncoder) buildFFmpegArgs(w, h int, interval time.Duration, path string) []string {
	inRate := float64(time.Second) / float64(interval)
	fps := e.FPS
	if fps <= 0 {
		fps = int(inRate + 0.5)
	}
	codec := e.Codec
	if codec == "" {
		codec = "libx264"
	}

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", w, h),
		"-framerate", fmt.Sprintf("%g", inRate),
		"-i", "-",
		"-r", fmt.Sprintf("%d", fps),
		// yuv420p needs even dimensions
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2:color=white",
		"-pix_fmt", "yuv420p",
		"-c:v", codec,
	}

	// quality flag depends on the encoder
	switch codec {
	case "h264_videotoolbox":
		q := e.Quality
		if q == 0 {
			q = 75
		}
		args = append(args, "-b:v", fmt.Sprintf("%dk", q*100))
	case "h264_nvenc":
		q := e.Quality
		if q == 0 {
			q = 28
		}
		args = append(args, "-cq", fmt.Sprintf("%d", q))
	default: // libx264
		q := e.Quality
		if q == 0 {
			q = 23
		}
		args = append(args, "-crf", fmt.Sprintf("%d", q), "-preset", "medium")
	}

	return append(args, path)
}

func writeRawRGBA(w io.Writer, img *image.RGBA) error {
	bounds := img.Bounds()
	if img.Stride != bounds.Dx()*4 || bounds.Min != (image.Point{}) {
		tight := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(tight, tight.Rect, img, bounds.Min, draw.Src)
		img = tight
	}
	_, err := w.Write(img.Pix)
	return err
}
