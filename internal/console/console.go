// Package console interprets the one-line commands typed at the scoreboard.
package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/gamemanager/internal/clocksim"
	"github.com/lox/gamemanager/internal/config"
	"github.com/lox/gamemanager/internal/gameclock"
	"github.com/lox/gamemanager/internal/scoring"
)

var (
	// ErrUnknownCommand is returned for input that is not a command
	ErrUnknownCommand = errors.New("unknown command")
	// ErrQuit is returned by the quit command
	ErrQuit = errors.New("quit")
)

// Help lists the available commands
var Help = []string{
	"home <pts> | away <pts>     add points",
	"minus home|away             take a point away",
	"undo                        revert the last score change",
	"pos home|away               set possession",
	"start | pause | reset       run, stop or reset the clock",
	"set <m:ss>                  set the clock",
	"combos [target]             ways to make up the margin",
	"kneel [timeouts] [m:ss]     can the leader kneel it out?",
	"stops [timeouts] [m:ss]     time left after defensive stops",
	"quit",
}

// Session applies commands to a board using the configured calculators
type Session struct {
	board       *gameclock.Board
	finder      *scoring.Finder
	kneel       clocksim.KneelOptions
	stops       clocksim.StopOptions
	maxTimeouts int
	logger      *log.Logger
}

// NewSession creates a session over board
func NewSession(board *gameclock.Board, cfg *config.Config, logger *log.Logger) (*Session, error) {
	finder, err := cfg.Finder()
	if err != nil {
		return nil, err
	}
	logger = logger.WithPrefix("console")
	finder.Logger = logger

	return &Session{
		board:       board,
		finder:      finder,
		kneel:       cfg.KneelOptions(),
		stops:       cfg.StopOptions(),
		maxTimeouts: cfg.Timeouts.Max,
		logger:      logger,
	}, nil
}

// Board returns the board the session drives
func (s *Session) Board() *gameclock.Board {
	return s.board
}

// Execute runs one command line and returns the lines to display
func (s *Session) Execute(line string) ([]string, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil, nil
	}
	cmd, args := fields[0], fields[1:]
	s.logger.Debug("Execute", "command", cmd, "args", args)

	switch cmd {
	case "home", "away":
		return s.score(cmd, args)
	case "minus":
		return s.minus(args)
	case "undo":
		if _, ok := s.board.Undo(); !ok {
			return []string{"Nothing to undo"}, nil
		}
		return nil, nil
	case "pos", "possession":
		return s.possession(args)
	case "start":
		s.board.Clock().Start()
		return nil, nil
	case "pause", "stop":
		s.board.Clock().Pause()
		return nil, nil
	case "reset":
		s.board.Clock().Reset()
		return nil, nil
	case "set":
		return s.set(args)
	case "combos":
		return s.combos(args)
	case "kneel":
		return s.simulate(args, s.kneelOut)
	case "stops":
		return s.simulate(args, s.defensiveStops)
	case "help", "?":
		return Help, nil
	case "quit", "exit":
		return nil, ErrQuit
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}

func (s *Session) score(team string, args []string) ([]string, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("usage: %s <points>", team)
	}
	points, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("invalid points %q", args[0])
	}
	t, err := gameclock.ParseTeam(team)
	if err != nil {
		return nil, err
	}
	return nil, s.board.Score(t, points)
}

func (s *Session) minus(args []string) ([]string, error) {
	if len(args) != 1 {
		return nil, errors.New("usage: minus home|away")
	}
	t, err := gameclock.ParseTeam(args[0])
	if err != nil {
		return nil, err
	}
	return nil, s.board.Minus(t)
}

func (s *Session) possession(args []string) ([]string, error) {
	if len(args) != 1 {
		return nil, errors.New("usage: pos home|away")
	}
	t, err := gameclock.ParseTeam(args[0])
	if err != nil {
		return nil, err
	}
	return nil, s.board.SetPossession(t)
}

func (s *Session) set(args []string) ([]string, error) {
	if len(args) != 1 {
		return nil, errors.New("usage: set <m:ss>")
	}
	d, err := gameclock.ParseClock(args[0])
	if err != nil {
		return nil, err
	}
	s.board.Clock().Set(d)
	return nil, nil
}

func (s *Session) combos(args []string) ([]string, error) {
	target := s.board.Differential()
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid target %q", args[0])
		}
		target = n
	}

	result, err := s.finder.Find(target)
	if err != nil {
		return nil, err
	}
	return RenderCombos(result), nil
}

// simulate parses "[timeouts] [m:ss]" against board defaults and runs sim
func (s *Session) simulate(args []string, sim func(clocksim.ClockState) ([]string, error)) ([]string, error) {
	state := clocksim.ClockState{
		RemainingSeconds:  s.board.Clock().Seconds(),
		TimeoutsAvailable: s.maxTimeouts,
	}

	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 || n > s.maxTimeouts {
			return nil, fmt.Errorf("timeouts must be between 0 and %d, got %q", s.maxTimeouts, args[0])
		}
		state.TimeoutsAvailable = n
	}
	if len(args) > 1 {
		d, err := gameclock.ParseClock(args[1])
		if err != nil {
			return nil, err
		}
		state.RemainingSeconds = gameclock.WholeSeconds(d)
	}
	if len(args) > 2 {
		return nil, errors.New("too many arguments")
	}

	return sim(state)
}

func (s *Session) kneelOut(state clocksim.ClockState) ([]string, error) {
	out, err := clocksim.SimulateKneelOut(state, s.kneel)
	if err != nil {
		return nil, err
	}
	return RenderKneel(state, out), nil
}

func (s *Session) defensiveStops(state clocksim.ClockState) ([]string, error) {
	out, err := clocksim.SimulateDefensiveStops(state, s.stops)
	if err != nil {
		return nil, err
	}
	return RenderStops(state, out), nil
}
