package engine

import (
	"context"
	"fmt"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ivlev/playanim/internal/config"
	"github.com/ivlev/playanim/internal/tracking"
	"github.com/ivlev/playanim/internal/video"
)

func writeTrackingCSV(t *testing.T, plays ...*tracking.Play) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("gameId,playId,nflId,frameId,x,y,team\n")
	for _, p := range plays {
		for _, r := range p.Rows {
			nfl := "NA"
			if r.NflID != 0 {
				nfl = fmt.Sprint(r.NflID)
			}
			fmt.Fprintf(&b, "%d,%d,%s,%d,%g,%g,%s\n", r.GameID, r.PlayID, nfl, r.FrameID, r.X, r.Y, r.Team)
		}
	}
	path := filepath.Join(t.TempDir(), "tracking.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func withKey(p *tracking.Play, game, play int64) *tracking.Play {
	rows := make([]tracking.Row, len(p.Rows))
	for i, r := range p.Rows {
		r.GameID, r.PlayID = game, play
		rows[i] = r
	}
	return tracking.NewPlay(rows)
}

func testConfig(t *testing.T, input string) *config.Config {
	return &config.Config{
		InputPath: input,
		OutputDir: filepath.Join(t.TempDir(), "output"),
		Workers:   2,
		Style:     testStyle(),
	}
}

func gifFrames(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return len(g.Image)
}

func TestProjectRun(t *testing.T) {
	input := writeTrackingCSV(t, withKey(examplePlay(3), 1, 10), withKey(examplePlay(2), 1, 20))
	cfg := testConfig(t, input)

	if err := NewProject(cfg, &video.GIFWriter{}).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for name, want := range map[string]int{"game_1_play_10.gif": 3, "game_1_play_20.gif": 2} {
		if got := gifFrames(t, filepath.Join(cfg.OutputDir, name)); got != want {
			t.Errorf("%s: expected %d frames, got %d", name, want, got)
		}
	}
}

func TestProjectSelectsPlay(t *testing.T) {
	input := writeTrackingCSV(t, withKey(examplePlay(2), 1, 10), withKey(examplePlay(2), 2, 10))
	cfg := testConfig(t, input)
	cfg.GameID = 2

	if err := NewProject(cfg, &video.GIFWriter{}).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	entries, err := os.ReadDir(cfg.OutputDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "game_2_play_10.gif" {
		t.Errorf("Expected only game_2_play_10.gif, got %v", entries)
	}
}

func TestProjectNoMatchingPlay(t *testing.T) {
	cfg := testConfig(t, writeTrackingCSV(t, withKey(examplePlay(1), 1, 10)))
	cfg.PlayID = 99
	if err := NewProject(cfg, &video.GIFWriter{}).Run(context.Background()); err == nil {
		t.Error("Expected error when no play matches")
	}
}

func TestProjectReportsFailedPlay(t *testing.T) {
	noBall := tracking.NewPlay([]tracking.Row{
		{GameID: 3, PlayID: 1, FrameID: 1, NflID: 5, X: 10, Y: 10, Team: "A"},
	})
	cfg := testConfig(t, writeTrackingCSV(t, withKey(examplePlay(2), 1, 10), noBall))

	err := NewProject(cfg, &video.GIFWriter{}).Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Fatalf("Expected partial failure error, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "game_1_play_10.gif")); err != nil {
		t.Errorf("Healthy play should still be written: %v", err)
	}
}

func TestProjectTween(t *testing.T) {
	cfg := testConfig(t, writeTrackingCSV(t, withKey(examplePlay(3), 1, 10)))
	cfg.Tween = 2
	cfg.Easing = "quad"
	cfg.ShowStats = true

	if err := NewProject(cfg, &video.GIFWriter{}).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	// 3 frames with 2 in-betweens per gap
	if got := gifFrames(t, filepath.Join(cfg.OutputDir, "game_1_play_10.gif")); got != 7 {
		t.Errorf("Expected 7 frames, got %d", got)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "benchmark.log")); err != nil {
		t.Errorf("Expected benchmark.log: %v", err)
	}
}

func TestPlayBytes(t *testing.T) {
	cfg := &config.Config{Style: config.DefaultStyle()}
	p := NewProject(cfg, &video.GIFWriter{})
	plays := []*tracking.Play{examplePlay(2), examplePlay(10)}

	const frame = 1440 * 640 * 5
	if got := p.playBytes(plays); got != 10*frame {
		t.Errorf("Expected %d bytes, got %d", 10*frame, got)
	}

	cfg.Tween = 2
	if got := p.playBytes(plays); got != 28*frame {
		t.Errorf("With tween: expected %d bytes, got %d", 28*frame, got)
	}
}

func TestOutputName(t *testing.T) {
	if got := OutputName(tracking.Key{GameID: 2022090800, PlayID: 56}, ".gif"); got != "game_2022090800_play_56.gif" {
		t.Errorf("Unexpected name %s", got)
	}
}
