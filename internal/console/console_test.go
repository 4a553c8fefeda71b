package console

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/gamemanager/internal/config"
	"github.com/lox/gamemanager/internal/gameclock"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	board := gameclock.NewBoard(quartz.NewMock(t), gameclock.DefaultPeriod, logger)
	s, err := NewSession(board, config.Default(), logger)
	require.NoError(t, err)
	return s
}

func run(t *testing.T, s *Session, line string) []string {
	t.Helper()
	out, err := s.Execute(line)
	require.NoError(t, err, line)
	return out
}

func TestSession_Scoring(t *testing.T) {
	s := newTestSession(t)

	run(t, s, "home 7")
	run(t, s, "AWAY 3")
	run(t, s, "minus a")
	assert.Equal(t, 7, s.Board().Points(gameclock.Home))
	assert.Equal(t, 2, s.Board().Points(gameclock.Away))

	run(t, s, "undo")
	assert.Equal(t, 3, s.Board().Points(gameclock.Away))

	run(t, s, "pos away")
	assert.Equal(t, gameclock.Away, s.Board().Possession())
}

func TestSession_Combos(t *testing.T) {
	s := newTestSession(t)

	assert.Equal(t, []string{"Scores are level, nothing to chase"}, run(t, s, "combos"))

	run(t, s, "home 7")
	run(t, s, "away 3")
	assert.Equal(t, []string{
		"Ways to score 4:",
		"  Safety×2 (2 plays, 4 pts)",
	}, run(t, s, "combos"))

	assert.Equal(t, []string{"No exact combination for 1"}, run(t, s, "combos 1"))

	out := run(t, s, "combos 7")
	require.Len(t, out, 3)
	assert.Equal(t, "  TD+PAT×1 (1 plays, 7 pts)", out[1])
	assert.Equal(t, "  FG×1 + Safety×2 (3 plays, 7 pts)", out[2])

	_, err := s.Execute("combos -4")
	assert.Error(t, err)
}

func TestSession_Combos_Truncated(t *testing.T) {
	s := newTestSession(t)
	s.finder.MaxResults = 2

	out := run(t, s, "combos 14")
	require.Len(t, out, 4)
	assert.Equal(t, "  TD+2×1 + TD×1 (2 plays, 14 pts)", out[1])
	assert.Equal(t, "  TD+PAT×2 (2 plays, 14 pts)", out[2])
	assert.Contains(t, out[3], "more")
}

func TestSession_Kneel(t *testing.T) {
	s := newTestSession(t)
	run(t, s, "set 2:00")

	assert.Equal(t, []string{
		"Kneel-out from 02:00, trailing team has 0 timeouts:",
		"  Kneel 1: 2s off, play clock burns 40s, 1:18 remaining",
		"  Kneel 2: 2s off, play clock burns 40s, 0:36 remaining",
		"  Kneel 3: 2s off, play clock burns 34s, 0:00 remaining",
		"Clock can be run out",
	}, run(t, s, "kneel 0"))

	out := run(t, s, "kneel 3 1:00")
	assert.Equal(t, "Trailing team gets the ball back with 00:54", out[len(out)-1])
}

func TestSession_Stops(t *testing.T) {
	s := newTestSession(t)

	out := run(t, s, "stops 2 1:30")
	require.Len(t, out, 5)
	assert.Equal(t, "Defensive stops from 01:30 with 2 timeouts:", out[0])
	assert.Equal(t, "Ball back with 00:32 (0 timeouts left)", out[4])
}

func TestSession_SimulationArguments(t *testing.T) {
	s := newTestSession(t)

	_, err := s.Execute("kneel 4")
	assert.Error(t, err)
	_, err = s.Execute("stops x")
	assert.Error(t, err)
	_, err = s.Execute("stops 1 1:5")
	assert.ErrorIs(t, err, gameclock.ErrInvalidTimeFormat)
	_, err = s.Execute("stops 1 1:00 extra")
	assert.Error(t, err)
}

func TestSession_Clock(t *testing.T) {
	s := newTestSession(t)

	run(t, s, "set 0:45")
	assert.Equal(t, 45, s.Board().Clock().Seconds())

	run(t, s, "start")
	assert.True(t, s.Board().Clock().Running())
	run(t, s, "pause")
	assert.False(t, s.Board().Clock().Running())

	run(t, s, "reset")
	assert.Equal(t, "12:00", s.Board().Clock().String())

	_, err := s.Execute("set soon")
	assert.ErrorIs(t, err, gameclock.ErrInvalidTimeFormat)
}

func TestSession_Misc(t *testing.T) {
	s := newTestSession(t)

	out, err := s.Execute("   ")
	require.NoError(t, err)
	assert.Nil(t, out)

	assert.Equal(t, []string{"Nothing to undo"}, run(t, s, "undo"))
	assert.Equal(t, Help, run(t, s, "help"))

	_, err = s.Execute("punt")
	assert.ErrorIs(t, err, ErrUnknownCommand)

	_, err = s.Execute("quit")
	assert.ErrorIs(t, err, ErrQuit)

	_, err = s.Execute("home")
	assert.Error(t, err)
	_, err = s.Execute("home six")
	assert.Error(t, err)
	_, err = s.Execute("minus visitors")
	assert.ErrorIs(t, err, gameclock.ErrUnknownTeam)
}

func TestSession_HugeScoreIsRejected(t *testing.T) {
	s := newTestSession(t)

	for range 2 {
		_, err := s.Execute("home 9223372036854775807")
		assert.Error(t, err)
	}
	assert.Equal(t, 0, s.Board().Points(gameclock.Home))
	assert.Equal(t, 0, s.Board().UndoDepth())

	_, err := s.Execute("set 200000000:00")
	assert.ErrorIs(t, err, gameclock.ErrInvalidTimeFormat)
	assert.Equal(t, "12:00", s.Board().Clock().String())
}
