package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Style holds the look of the field diagram. Axis limits and end zones are
// fixed by the renderer and are not part of the style.
type Style struct {
	FigWidth   float64       `yaml:"fig_width"`  // inches
	FigHeight  float64       `yaml:"fig_height"` // inches
	DPI        int           `yaml:"dpi"`
	MarkerSize float64       `yaml:"marker_size"` // points^2
	Interval   time.Duration `yaml:"interval"`
	BallTeam   string        `yaml:"ball_team"`
	Background string        `yaml:"background"`
	Palette    []string      `yaml:"palette"` // hex colours, assigned to teams in order of appearance
}

func DefaultStyle() Style {
	return Style{
		FigWidth:   14.4,
		FigHeight:  6.4,
		DPI:        100,
		MarkerSize: 100,
		Interval:   100 * time.Millisecond,
		BallTeam:   "football",
		Background: "#ffffff",
		Palette: []string{
			"#4c72b0", "#dd8452", "#55a868", "#c44e52", "#8172b3",
			"#937860", "#da8bc3", "#8c8c8c", "#ccb974", "#64b5cd",
		},
	}
}

// Size returns the surface size in pixels.
func (s Style) Size() (width, height int) {
	return int(s.FigWidth*float64(s.DPI) + 0.5), int(s.FigHeight*float64(s.DPI) + 0.5)
}

func (s Style) Validate() error {
	if s.FigWidth <= 0 || s.FigHeight <= 0 {
		return fmt.Errorf("invalid figure size %.2fx%.2f", s.FigWidth, s.FigHeight)
	}
	if s.DPI <= 0 {
		return fmt.Errorf("invalid dpi %d", s.DPI)
	}
	if s.MarkerSize <= 0 {
		return fmt.Errorf("invalid marker size %.2f", s.MarkerSize)
	}
	if s.Interval <= 0 {
		return fmt.Errorf("invalid interval %s", s.Interval)
	}
	return nil
}

// LoadStyle reads a style from a YAML file. Keys missing in the file keep
// their default values.
func LoadStyle(path string) (Style, error) {
	style := DefaultStyle()

	data, err := os.ReadFile(path)
	if err != nil {
		return style, err
	}

	if err := yaml.Unmarshal(data, &style); err != nil {
		return style, fmt.Errorf("parse style %s: %w", path, err)
	}

	return style, style.Validate()
}

// WriteStyle writes a style to a YAML file
func WriteStyle(style Style, path string) error {
	data, err := yaml.Marshal(style)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
