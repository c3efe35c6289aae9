package engine

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/playanim/internal/canvas"
	"github.com/ivlev/playanim/internal/config"
	"github.com/ivlev/playanim/internal/system"
	"github.com/ivlev/playanim/internal/tracking"
	"github.com/ivlev/playanim/internal/tween"
	"github.com/ivlev/playanim/internal/video"
)

// Project animates every selected play of a tracking file and writes one
// output file per play.
type Project struct {
	Config  *config.Config
	Encoder video.Encoder
}

func NewProject(cfg *config.Config, enc video.Encoder) *Project {
	return &Project{
		Config:  cfg,
		Encoder: enc,
	}
}

// OutputName is the file name of a play's animation.
func OutputName(key tracking.Key, ext string) string {
	return fmt.Sprintf("game_%d_play_%d%s", key.GameID, key.PlayID, ext)
}

func (p *Project) Run(ctx context.Context) error {
	startTime := time.Now()

	easing, err := tween.ByName(p.Config.Easing)
	if err != nil {
		return err
	}

	rows, err := tracking.LoadFile(p.Config.InputPath)
	if err != nil {
		return fmt.Errorf("load tracking data: %w", err)
	}

	plays := p.selectPlays(tracking.GroupPlays(rows))
	if len(plays) == 0 {
		return fmt.Errorf("no plays match game %d play %d in %s", p.Config.GameID, p.Config.PlayID, p.Config.InputPath)
	}

	if err := os.MkdirAll(p.Config.OutputDir, 0755); err != nil {
		return err
	}

	w, h := p.Config.Style.Size()
	fmt.Println("--- [PROJECT: PLAY ANIMATOR] ---")
	fmt.Printf("[*] Source: %s | Rows: %d | Plays: %d\n", p.Config.InputPath, len(rows), len(plays))
	fmt.Printf("[*] Canvas: %dx%d @ %d DPI | Interval: %s | Tween: %d\n", w, h, p.Config.Style.DPI, p.Config.Interval(), p.Config.Tween)
	fmt.Println("--------------------------------")

	results := make([]string, len(plays))
	var done, frames atomic.Int64

	workers := p.Config.Workers
	if workers < 1 {
		workers = 1
	}
	// every worker holds a whole animation until it is encoded
	if capped := system.WorkersForMemory(workers, p.playBytes(plays)); capped < workers {
		fmt.Printf("[*] Workers limited to %d by available memory\n", capped)
		workers = capped
	}

	// Each play gets its own surface, so plays can run side by side
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, play := range plays {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			key, _ := play.Key()

			out, anim, err := p.renderPlay(gctx, play, key, easing)
			if err != nil {
				log.Printf("[!] Error animating %s: %v", key, err)
				return nil
			}
			results[i] = out
			frames.Add(int64(anim.Len()))
			fmt.Printf("[>] Ready: %d/%d %s (%d frames, %s)\n", done.Add(1), len(plays), out, anim.Len(), anim.Duration())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r == "" {
			failed++
		}
	}

	if p.Config.ShowStats {
		p.report(time.Since(startTime), len(plays), int(frames.Load()))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d plays were not animated, see log above", failed, len(plays))
	}
	return nil
}

func (p *Project) selectPlays(all []*tracking.Play) []*tracking.Play {
	var out []*tracking.Play
	for _, play := range all {
		key, err := play.Key()
		if err != nil {
			continue
		}
		if p.Config.GameID != 0 && key.GameID != p.Config.GameID {
			continue
		}
		if p.Config.PlayID != 0 && key.PlayID != p.Config.PlayID {
			continue
		}
		play.BallTeam = p.Config.Style.BallTeam
		out = append(out, play)
	}
	return out
}

// playBytes estimates the peak memory of the largest play: an RGBA snapshot
// per frame plus the paletted copy a GIF encoder makes.
func (p *Project) playBytes(plays []*tracking.Play) uint64 {
	maxFrames := 0
	for _, play := range plays {
		maxFrames = max(maxFrames, len(play.FrameIDs()))
	}
	if p.Config.Tween > 0 && maxFrames > 1 {
		maxFrames += (maxFrames - 1) * p.Config.Tween
	}
	w, h := p.Config.Style.Size()
	return uint64(maxFrames) * uint64(w) * uint64(h) * 5
}

func (p *Project) renderPlay(ctx context.Context, play *tracking.Play, key tracking.Key, easing tween.Easing) (string, *canvas.Animation, error) {
	if p.Config.Tween > 0 {
		play = tween.Expand(play, p.Config.Tween, easing)
	}

	style := p.Config.Style
	style.Interval = p.Config.Interval()

	anim, err := Animate(play, style)
	if err != nil {
		return "", nil, err
	}

	out := filepath.Join(p.Config.OutputDir, OutputName(key, p.Encoder.Ext()))
	if err := p.Encoder.Encode(ctx, anim, out); err != nil {
		return "", nil, fmt.Errorf("encode %s: %w", out, err)
	}
	return out, anim, nil
}

func (p *Project) report(total time.Duration, plays, frames int) {
	fps := float64(frames) / total.Seconds()
	fmt.Printf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Total Time: %.2fs\n"+
			"Plays: %d\n"+
			"Frames: %d\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		total.Seconds(), plays, frames, fps,
	)

	// Append a line to benchmark.log
	logEntry := fmt.Sprintf("[%s] Input: %s | Plays: %d | Frames: %d | Total: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		filepath.Base(p.Config.InputPath),
		plays,
		frames,
		total.Seconds(),
		fps,
	)

	f, err := os.OpenFile(filepath.Join(p.Config.OutputDir, "benchmark.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Printf("[!] Could not write benchmark.log: %v\n", err)
		return
	}
	f.WriteString(logEntry)
	f.Close()
}
