package tui

import (
	"errors"
	"io"
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/gamemanager/internal/config"
	"github.com/lox/gamemanager/internal/console"
	"github.com/lox/gamemanager/internal/gameclock"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

type savedSnapshots struct {
	snaps []gameclock.Snapshot
	err   error
}

func (s *savedSnapshots) save(snap gameclock.Snapshot) error {
	s.snaps = append(s.snaps, snap)
	return s.err
}

func newTestModel(t *testing.T) (*Model, *savedSnapshots) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}) // Quiet logger for tests
	board := gameclock.NewBoard(quartz.NewMock(t), gameclock.DefaultPeriod, logger)
	session, err := console.NewSession(board, config.Default(), logger)
	require.NoError(t, err)

	saved := &savedSnapshots{}
	return NewModel(session, logger, saved.save), saved
}

func enter(m *Model, line string) tea.Cmd {
	m.commandInput.SetValue(line)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func TestModel_CommandUpdatesBoardAndSaves(t *testing.T) {
	m, saved := newTestModel(t)

	enter(m, "home 7")
	enter(m, "away 3")

	board := m.session.Board()
	assert.Equal(t, 7, board.Points(gameclock.Home))
	assert.Equal(t, 3, board.Points(gameclock.Away))
	assert.Empty(t, m.commandInput.Value())

	require.Len(t, saved.snaps, 2)
	assert.Equal(t, 7, saved.snaps[1].Home)
	assert.Equal(t, 3, saved.snaps[1].Away)

	assert.Equal(t, []string{"> home 7", "> away 3"}, m.Output())
}

func TestModel_CommandOutputAndErrors(t *testing.T) {
	m, saved := newTestModel(t)

	enter(m, "combos 7")
	enter(m, "punt")

	assert.Equal(t, []string{
		"> combos 7",
		"Ways to score 7:",
		"  TD+PAT×1 (1 plays, 7 pts)",
		"  FG×1 + Safety×2 (3 plays, 7 pts)",
		"> punt",
		"unknown command: punt",
	}, m.Output())
	assert.Len(t, saved.snaps, 1, "failed commands are not saved")
}

func TestModel_EmptyLineIsIgnored(t *testing.T) {
	m, saved := newTestModel(t)

	cmd := enter(m, "   ")
	assert.Nil(t, cmd)
	assert.Empty(t, m.Output())
	assert.Empty(t, saved.snaps)
}

func TestModel_QuitCommand(t *testing.T) {
	m, saved := newTestModel(t)

	cmd := enter(m, "quit")
	assert.NotNil(t, cmd)
	assert.True(t, m.Quitting())
	assert.Empty(t, m.View())
	assert.Len(t, saved.snaps, 1, "quitting saves the board")
}

func TestModel_CtrlCQuits(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.NotNil(t, cmd)
	assert.True(t, m.Quitting())
}

func TestModel_TabMovesFocusToOutput(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.focusedPane)

	m.commandInput.SetValue("home 7")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 0, m.session.Board().Points(gameclock.Home), "enter only runs commands when the input is focused")

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.focusedPane)
}

func TestModel_SaveFailureIsNotFatal(t *testing.T) {
	m, saved := newTestModel(t)
	saved.err = errors.New("disk full")

	enter(m, "home 3")
	assert.Equal(t, 3, m.session.Board().Points(gameclock.Home))
	assert.False(t, m.Quitting())
}

func TestModel_View(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	enter(m, "home 10")
	enter(m, "away 3")
	enter(m, "pos away")

	view := m.View()
	assert.Contains(t, view, "GAME MANAGER")
	assert.Contains(t, view, "12:00")
	assert.Contains(t, view, "paused")
	assert.Contains(t, view, "HOME")
	assert.Contains(t, view, "AWAY")
	assert.Contains(t, view, "Margin: 7 (AWAY trails)")
	assert.Contains(t, view, "HOME +10")
}

func TestModel_ViewTiedGame(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	enter(m, "home 3")
	enter(m, "away 3")

	view := m.View()
	assert.Contains(t, view, "Margin: 0")
	assert.NotContains(t, view, "trails")
}

func TestModel_TickKeepsTicking(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(tickMsg{})
	assert.NotNil(t, cmd)
}
