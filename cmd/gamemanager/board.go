package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/gamemanager/internal/config"
	"github.com/lox/gamemanager/internal/console"
	"github.com/lox/gamemanager/internal/gameclock"
	"github.com/lox/gamemanager/internal/tui"
)

// BoardCmd runs the interactive scoreboard
type BoardCmd struct {
	Snapshot string `short:"s" help:"Snapshot file (overrides config)"`
	Fresh    bool   `help:"Ignore any saved snapshot and start a new game"`
}

func (c *BoardCmd) Run(globals *GlobalFlags) error {
	cfg, err := globals.load()
	if err != nil {
		return err
	}
	if c.Snapshot != "" {
		cfg.Clock.SnapshotFile = c.Snapshot
	}

	// The TUI owns the terminal so logs go to a file
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	logger := newLogger(cfg, logFile)

	board, err := c.openBoard(cfg, quartz.NewReal(), logger)
	if err != nil {
		return err
	}
	session, err := console.NewSession(board, cfg, logger)
	if err != nil {
		return err
	}

	snapshotFile := cfg.Clock.SnapshotFile
	save := func(snap gameclock.Snapshot) error {
		return gameclock.SaveSnapshot(snapshotFile, snap)
	}

	logger.Info("Starting scoreboard", "snapshot", snapshotFile, "period", board.Clock().Period())
	p := tea.NewProgram(tui.NewModel(session, logger, save), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("scoreboard failed: %w", err)
	}
	return nil
}

// openBoard creates the board and restores the saved game unless asked not to
func (c *BoardCmd) openBoard(cfg *config.Config, wall quartz.Clock, logger *log.Logger) (*gameclock.Board, error) {
	period, err := cfg.Period()
	if err != nil {
		return nil, err
	}
	board := gameclock.NewBoard(wall, period, logger)
	if c.Fresh {
		return board, nil
	}

	snap, ok, err := gameclock.LoadSnapshot(cfg.Clock.SnapshotFile)
	if err != nil {
		return nil, err
	}
	if !ok {
		return board, nil
	}
	if err := board.Restore(snap); err != nil {
		return nil, fmt.Errorf("failed to restore %s: %w", cfg.Clock.SnapshotFile, err)
	}
	logger.Info("Restored game", "snapshot", cfg.Clock.SnapshotFile, "home", snap.Home, "away", snap.Away)
	return board, nil
}
