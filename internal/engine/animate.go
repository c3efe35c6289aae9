package engine

import (
	"fmt"

	"github.com/ivlev/playanim/internal/canvas"
	"github.com/ivlev/playanim/internal/config"
	"github.com/ivlev/playanim/internal/renderer"
	"github.com/ivlev/playanim/internal/tracking"
)

// Animate renders every frame of a single play, in increasing frame order,
// onto one surface and returns the snapshots as a looping animation.
// The animation is not written anywhere.
func Animate(play *tracking.Play, style config.Style) (*canvas.Animation, error) {
	if play.BallTeam == "" && style.BallTeam != "" {
		p := *play
		p.BallTeam = style.BallTeam
		play = &p
	}

	key, err := play.Key()
	if err != nil {
		return nil, err
	}

	los, err := play.LineOfScrimmage()
	if err != nil {
		return nil, fmt.Errorf("%s: line of scrimmage: %w", key, err)
	}

	surface, err := canvas.New(style)
	if err != nil {
		return nil, err
	}
	// colours follow the play's team order, not the first frame's
	for _, team := range play.Teams() {
		surface.Palette().Color(team)
	}

	ids := play.FrameIDs()
	b := surface.Bounds()
	anim := &canvas.Animation{
		Frames:    make([]canvas.Frame, 0, len(ids)),
		Interval:  style.Interval,
		LoopCount: 0,
		Width:     b.Dx(),
		Height:    b.Dy(),
	}

	for _, fid := range ids {
		if err := renderer.Frame(fid, surface, los, play); err != nil {
			return nil, fmt.Errorf("%s: frame %d: %w", key, fid, err)
		}
		anim.Frames = append(anim.Frames, surface.Snapshot(fid))
	}

	return anim, nil
}
