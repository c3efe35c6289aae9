package tween

import (
	"fmt"

	"github.com/fogleman/ease"

	"github.com/ivlev/playanim/internal/tracking"
)

// Easing maps linear progress in [0, 1] to eased progress.
type Easing func(t float64) float64

// ByName returns an easing curve: linear, quad or cubic.
func ByName(name string) (Easing, error) {
	switch name {
	case "linear", "":
		return ease.Linear, nil
	case "quad":
		return ease.InOutQuad, nil
	case "cubic":
		return ease.InOutCubic, nil
	default:
		return nil, fmt.Errorf("unknown easing: %s", name)
	}
}

// entity identifies a tracked object across frames. Rows without an nflId
// are told apart by their order within the team in each frame.
type entity struct {
	team  string
	nflID int64
	nth   int
}

// entities returns the key of every row of one frame, in row order.
func entities(rows []tracking.Row) []entity {
	seen := make(map[string]int)
	keys := make([]entity, len(rows))
	for i, r := range rows {
		k := entity{team: r.Team, nflID: r.NflID}
		if r.NflID == 0 {
			k.nth = seen[r.Team]
			seen[r.Team]++
		}
		keys[i] = k
	}
	return keys
}

// Expand inserts steps interpolated frames between every two consecutive
// frames of the play and renumbers frames so that they stay consecutive.
// The first frame keeps its id, so the line of scrimmage is unchanged.
// An entity missing from the next frame holds its position.
func Expand(play *tracking.Play, steps int, fn Easing) *tracking.Play {
	ids := play.FrameIDs()
	if steps <= 0 || len(ids) < 2 {
		return play
	}
	if fn == nil {
		fn = ease.Linear
	}

	stride := steps + 1
	out := make([]tracking.Row, 0, len(play.Rows)*stride)

	for i, fid := range ids {
		base := ids[0] + i*stride
		cur := play.Frame(fid)
		for _, r := range cur {
			r.FrameID = base
			out = append(out, r)
		}
		if i == len(ids)-1 {
			break
		}

		following := play.Frame(ids[i+1])
		next := make(map[entity]tracking.Row, len(following))
		for j, k := range entities(following) {
			next[k] = following[j]
		}
		keys := entities(cur)

		for k := 1; k <= steps; k++ {
			t := fn(float64(k) / float64(stride))
			for j, r := range cur {
				to, ok := next[keys[j]]
				if !ok {
					to = r
				}
				out = append(out, tracking.Row{
					GameID:  r.GameID,
					PlayID:  r.PlayID,
					FrameID: base + k,
					NflID:   r.NflID,
					X:       lerp(r.X, to.X, t),
					Y:       lerp(r.Y, to.Y, t),
					Team:    r.Team,
				})
			}
		}
	}

	return &tracking.Play{Rows: out, BallTeam: play.BallTeam}
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
