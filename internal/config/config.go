package config

import "time"

type Config struct {
	InputPath    string
	OutputDir    string
	Format       string // gif | mp4
	GameID       int64  // 0 = all games
	PlayID       int64  // 0 = all plays
	Tween        int    // in-between frames per tracking frame
	Easing       string // linear, quad, cubic
	Workers      int
	FPS          int
	VideoEncoder string
	Quality      int
	ShowStats    bool
	Style        Style
}

// Interval returns the time between two frames of the finished animation.
func (c *Config) Interval() time.Duration {
	d := c.Style.Interval
	if c.Tween > 0 {
		d /= time.Duration(c.Tween + 1)
	}
	return d
}
