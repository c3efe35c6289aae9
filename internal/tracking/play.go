package tracking

import (
	"errors"
	"fmt"
	"sort"
)

// BallTeam is the team label the tracking data uses for the ball.
const BallTeam = "football"

// FirstFrame is the frame the line of scrimmage is read from.
const FirstFrame = 1

var (
	ErrBallNotFound  = errors.New("ball not found at first frame")
	ErrDuplicateBall = errors.New("more than one ball row at first frame")
	ErrMixedPlays    = errors.New("dataset contains more than one game/play")
	ErrEmptyPlay     = errors.New("play has no rows")
)

// Row is one tracked entity (player or ball) at one frame of a play.
type Row struct {
	GameID  int64
	PlayID  int64
	FrameID int
	NflID   int64 // 0 for the ball
	X, Y    float64
	Team    string
}

// Key identifies a play.
type Key struct {
	GameID int64
	PlayID int64
}

func (k Key) String() string {
	return fmt.Sprintf("game %d play %d", k.GameID, k.PlayID)
}

// Play is the read-only dataset of a single play.
type Play struct {
	Rows []Row

	// BallTeam overrides the ball sentinel label; empty means BallTeam.
	BallTeam string
}

func NewPlay(rows []Row) *Play {
	return &Play{Rows: rows}
}

func (p *Play) ballLabel() string {
	if p.BallTeam != "" {
		return p.BallTeam
	}
	return BallTeam
}

// Key returns the (game, play) pair shared by every row.
func (p *Play) Key() (Key, error) {
	if len(p.Rows) == 0 {
		return Key{}, ErrEmptyPlay
	}
	k := Key{GameID: p.Rows[0].GameID, PlayID: p.Rows[0].PlayID}
	for _, r := range p.Rows[1:] {
		if r.GameID != k.GameID || r.PlayID != k.PlayID {
			return Key{}, fmt.Errorf("%w: %s and game %d play %d", ErrMixedPlays, k, r.GameID, r.PlayID)
		}
	}
	return k, nil
}

// LineOfScrimmage returns the ball's x coordinate at the first frame.
func (p *Play) LineOfScrimmage() (float64, error) {
	ball := p.ballLabel()
	found := false
	var los float64
	for _, r := range p.Rows {
		if r.FrameID != FirstFrame || r.Team != ball {
			continue
		}
		if found {
			return 0, ErrDuplicateBall
		}
		los = r.X
		found = true
	}
	if !found {
		return 0, ErrBallNotFound
	}
	return los, nil
}

// FrameIDs returns the distinct frame ids in increasing order.
func (p *Play) FrameIDs() []int {
	seen := make(map[int]struct{})
	var ids []int
	for _, r := range p.Rows {
		if _, ok := seen[r.FrameID]; ok {
			continue
		}
		seen[r.FrameID] = struct{}{}
		ids = append(ids, r.FrameID)
	}
	sort.Ints(ids)
	return ids
}

// Frame returns the rows of one frame in dataset order.
func (p *Play) Frame(frameID int) []Row {
	var rows []Row
	for _, r := range p.Rows {
		if r.FrameID == frameID {
			rows = append(rows, r)
		}
	}
	return rows
}

// Teams returns team labels in order of first appearance.
func (p *Play) Teams() []string {
	seen := make(map[string]struct{})
	var teams []string
	for _, r := range p.Rows {
		if _, ok := seen[r.Team]; ok {
			continue
		}
		seen[r.Team] = struct{}{}
		teams = append(teams, r.Team)
	}
	return teams
}

// GroupPlays splits rows into plays ordered by game id, then play id.
func GroupPlays(rows []Row) []*Play {
	byKey := make(map[Key][]Row)
	var keys []Key
	for _, r := range rows {
		k := Key{GameID: r.GameID, PlayID: r.PlayID}
		if _, ok := byKey[k]; !ok {
			keys = append(keys, k)
		}
		byKey[k] = append(byKey[k], r)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].GameID != keys[j].GameID {
			return keys[i].GameID < keys[j].GameID
		}
		return keys[i].PlayID < keys[j].PlayID
	})

	plays := make([]*Play, 0, len(keys))
	for _, k := range keys {
		plays = append(plays, NewPlay(byKey[k]))
	}
	return plays
}
