package renderer

import (
	"github.com/ivlev/playanim/internal/canvas"
	"github.com/ivlev/playanim/internal/tracking"
)

// Field view in yards. The range is fixed so the field never rescales
// between frames.
const (
	FieldXMin = -10.0
	FieldXMax = 110.0
	FieldYMin = 0.0
	FieldYMax = 54.0

	// Goal lines
	EndZoneNear = 0.0
	EndZoneFar  = 100.0
)

// Axes is the drawing surface a frame is rendered onto.
type Axes interface {
	Clear()
	Scatter(x, y float64, group string)
	AxVLine(x float64, style canvas.LineStyle)
	SetTitle(title string)
	SetXLim(min, max float64)
	SetYLim(min, max float64)
	HideYAxis()
	Despine()
}

// Frame clears ax and draws one frame of the play on it: every entity of
// the frame coloured by team, the line of scrimmage and both goal lines.
// An unknown frame id yields an empty field.
func Frame(frameID int, ax Axes, los float64, play *tracking.Play) error {
	// without this every frame is drawn over the previous ones
	ax.Clear()

	key, err := play.Key()
	if err != nil {
		return err
	}

	for _, r := range play.Frame(frameID) {
		ax.Scatter(r.X, r.Y, r.Team)
	}

	ax.AxVLine(los, canvas.Dotted)
	ax.AxVLine(EndZoneNear, canvas.Solid)
	ax.AxVLine(EndZoneFar, canvas.Solid)

	ax.SetTitle(key.String())
	ax.Despine()
	ax.HideYAxis()

	ax.SetXLim(FieldXMin, FieldXMax)
	ax.SetYLim(FieldYMin, FieldYMax)
	return nil
}
