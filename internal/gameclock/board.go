package gameclock

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// ErrUnknownTeam is returned for anything other than home or away
var ErrUnknownTeam = errors.New("unknown team")

// maxLogEntries bounds the in-memory event log
const maxLogEntries = 200

const (
	// MaxPlayPoints is the most points a single score change can add
	MaxPlayPoints = 99
	// MaxScore is the highest score a team can reach
	MaxScore = 999
)

// Team identifies a side of the scoreboard
type Team string

const (
	Home Team = "home"
	Away Team = "away"
)

// ParseTeam accepts "home"/"away" and their first letters, in any case
func ParseTeam(s string) (Team, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "home", "h":
		return Home, nil
	case "away", "a":
		return Away, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTeam, s)
	}
}

// ScoreChange is one entry on the undo stack. Points is the change actually
// applied, so a minus at zero records 0.
type ScoreChange struct {
	Team   Team
	Points int
}

// Board is the scoreboard: the game clock, both scores, possession and the
// undo stack. It is not safe for concurrent use.
type Board struct {
	wall       quartz.Clock
	clock      *Clock
	home       int
	away       int
	possession Team
	undo       []ScoreChange
	events     []string // newest first
	logger     *log.Logger
}

// NewBoard creates a board with a paused clock set to a full period
func NewBoard(wall quartz.Clock, period time.Duration, logger *log.Logger) *Board {
	return &Board{
		wall:       wall,
		clock:      NewClock(wall, period),
		possession: Home,
		logger:     logger.WithPrefix("board"),
	}
}

// Clock returns the game clock
func (b *Board) Clock() *Clock {
	return b.clock
}

// Score adds points for a team
func (b *Board) Score(team Team, points int) error {
	if err := checkTeam(team); err != nil {
		return err
	}
	if points <= 0 || points > MaxPlayPoints {
		return fmt.Errorf("points must be between 1 and %d, got %d", MaxPlayPoints, points)
	}
	if b.Points(team)+points > MaxScore {
		return fmt.Errorf("score for %s cannot exceed %d", team, MaxScore)
	}

	b.apply(team, points)
	b.undo = append(b.undo, ScoreChange{Team: team, Points: points})
	b.record(fmt.Sprintf("%s +%d", strings.ToUpper(string(team)), points))
	b.logger.Info("Score", "team", team, "points", points, "home", b.home, "away", b.away)
	return nil
}

// Minus takes a point away from a team, never going below zero
func (b *Board) Minus(team Team) error {
	if err := checkTeam(team); err != nil {
		return err
	}

	applied := b.apply(team, -1)
	b.undo = append(b.undo, ScoreChange{Team: team, Points: applied})
	b.record(fmt.Sprintf("%s −1", strings.ToUpper(string(team))))
	b.logger.Info("Minus", "team", team, "applied", applied, "home", b.home, "away", b.away)
	return nil
}

// Undo reverts the most recent score change. It returns false when there is
// nothing to undo.
func (b *Board) Undo() (ScoreChange, bool) {
	if len(b.undo) == 0 {
		return ScoreChange{}, false
	}

	last := b.undo[len(b.undo)-1]
	b.undo = b.undo[:len(b.undo)-1]
	b.apply(last.Team, -last.Points)
	b.record(fmt.Sprintf("UNDO %s %+d", strings.ToUpper(string(last.Team)), last.Points))
	b.logger.Info("Undo", "team", last.Team, "points", last.Points, "home", b.home, "away", b.away)
	return last, true
}

// SetPossession marks which team has the ball
func (b *Board) SetPossession(team Team) error {
	if err := checkTeam(team); err != nil {
		return err
	}
	b.possession = team
	b.logger.Debug("Possession", "team", team)
	return nil
}

// Possession returns the team with the ball
func (b *Board) Possession() Team {
	return b.possession
}

// Points returns a team's score
func (b *Board) Points(team Team) int {
	if team == Away {
		return b.away
	}
	return b.home
}

// Differential returns the absolute score margin
func (b *Board) Differential() int {
	d := b.home - b.away
	if d < 0 {
		return -d
	}
	return d
}

// Trailing returns the team that is behind, and false on a tie
func (b *Board) Trailing() (Team, bool) {
	switch {
	case b.home < b.away:
		return Home, true
	case b.away < b.home:
		return Away, true
	default:
		return "", false
	}
}

// UndoDepth returns the number of changes that can be undone
func (b *Board) UndoDepth() int {
	return len(b.undo)
}

// Events returns the event log, newest first
func (b *Board) Events() []string {
	out := make([]string, len(b.events))
	copy(out, b.events)
	return out
}

// apply adds delta to a team's score, clamped at zero, and returns the
// change actually made
func (b *Board) apply(team Team, delta int) int {
	score := &b.home
	if team == Away {
		score = &b.away
	}
	before := *score
	*score = max(0, before+delta)
	return *score - before
}

func (b *Board) record(text string) {
	entry := fmt.Sprintf("%s  %s", b.wall.Now().Format("15:04:05"), text)
	b.events = append([]string{entry}, b.events...)
	if len(b.events) > maxLogEntries {
		b.events = b.events[:maxLogEntries]
	}
}

func checkTeam(team Team) error {
	if team != Home && team != Away {
		return fmt.Errorf("%w: %q", ErrUnknownTeam, team)
	}
	return nil
}
