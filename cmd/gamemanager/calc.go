package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/gamemanager/internal/clocksim"
	"github.com/lox/gamemanager/internal/config"
	"github.com/lox/gamemanager/internal/console"
	"github.com/lox/gamemanager/internal/gameclock"
	"github.com/lox/gamemanager/internal/scoring"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)
)

// printLines writes the first line as a title and the rest plainly
func printLines(w io.Writer, lines []string) {
	for i, l := range lines {
		if i == 0 {
			l = titleStyle.Render(l)
		}
		fmt.Fprintln(w, l)
	}
}

// CombosCmd lists the ways to make up a margin
type CombosCmd struct {
	Target int `arg:"" help:"Points margin to make up"`
	Max    int `short:"n" help:"Maximum combinations to show (overrides config)"`
	Budget int `help:"Search node budget, negative for unbounded (overrides config)"`
}

func (c *CombosCmd) Run(globals *GlobalFlags) error {
	cfg, err := globals.load()
	if err != nil {
		return err
	}
	return c.run(cfg, stderrLogger(cfg), os.Stdout)
}

func (c *CombosCmd) run(cfg *config.Config, logger *log.Logger, w io.Writer) error {
	finder, err := cfg.Finder()
	if err != nil {
		return err
	}
	finder.Logger = logger
	if c.Max != 0 {
		finder.MaxResults = c.Max
	}
	if c.Budget != 0 {
		finder.NodeBudget = c.Budget
	}

	result, err := finder.Find(c.Target)
	if err != nil {
		return err
	}
	printLines(w, console.RenderCombos(result))
	return nil
}

// TableCmd tabulates combinations for a range of margins
type TableCmd struct {
	From    int `default:"1" help:"First margin"`
	To      int `default:"24" help:"Last margin (at most 500 margins per table)"`
	Workers int `short:"w" help:"Concurrent searches (overrides config, 0 for one per CPU)"`
}

func (c *TableCmd) Run(globals *GlobalFlags) error {
	cfg, err := globals.load()
	if err != nil {
		return err
	}
	logger := stderrLogger(cfg)
	ctx := setupSignalHandler(logger)
	return c.run(ctx, cfg, logger, os.Stdout)
}

func (c *TableCmd) run(ctx context.Context, cfg *config.Config, logger *log.Logger, w io.Writer) error {
	finder, err := cfg.Finder()
	if err != nil {
		return err
	}
	finder.Logger = logger

	workers := cfg.Scoring.Workers
	if c.Workers != 0 {
		workers = c.Workers
	}

	results, err := scoring.FindRange(ctx, finder, c.From, c.To, workers)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MARGIN\tWAYS\tFEWEST\tBEST")
	for _, r := range results {
		ways := fmt.Sprintf("%d", r.Found)
		if !r.Exhaustive {
			ways += "+"
		}
		fewest, best := "-", "-"
		if len(r.Combos) > 0 {
			fewest = fmt.Sprintf("%d", r.Combos[0].Plays())
			best = r.Combos[0].Label()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.Target, ways, fewest, best)
	}
	return tw.Flush()
}

// SimulationFlags are shared by the kneel and stops commands
type SimulationFlags struct {
	Clock     string `arg:"" help:"Time remaining (m:ss or seconds)"`
	Timeouts  int    `short:"t" default:"3" help:"Timeouts the trailing team has"`
	PlayClock int    `help:"Play clock seconds (overrides config)"`
}

// state validates the flags into a simulation start state
func (f SimulationFlags) state(cfg *config.Config) (clocksim.ClockState, error) {
	d, err := gameclock.ParseClock(f.Clock)
	if err != nil {
		return clocksim.ClockState{}, err
	}
	if err := cfg.CheckTimeouts(f.Timeouts); err != nil {
		return clocksim.ClockState{}, err
	}
	return clocksim.ClockState{
		RemainingSeconds:  gameclock.WholeSeconds(d),
		TimeoutsAvailable: f.Timeouts,
	}, nil
}

// KneelCmd simulates a kneel-out
type KneelCmd struct {
	SimulationFlags `embed:""`

	Kneels          int `help:"Number of kneels (overrides config)"`
	SecondsPerKneel int `help:"Seconds each kneel takes (overrides config)"`
}

func (c *KneelCmd) Run(globals *GlobalFlags) error {
	cfg, err := globals.load()
	if err != nil {
		return err
	}
	return c.run(cfg, os.Stdout)
}

func (c *KneelCmd) run(cfg *config.Config, w io.Writer) error {
	state, err := c.state(cfg)
	if err != nil {
		return err
	}

	opts := cfg.KneelOptions()
	if c.Kneels != 0 {
		opts.Kneels = c.Kneels
	}
	if c.SecondsPerKneel != 0 {
		opts.SecondsPerKneel = c.SecondsPerKneel
	}
	if c.PlayClock != 0 {
		opts.PlayClock = c.PlayClock
	}

	out, err := clocksim.SimulateKneelOut(state, opts)
	if err != nil {
		return err
	}
	printLines(w, console.RenderKneel(state, out))
	return nil
}

// StopsCmd simulates defensive stops
type StopsCmd struct {
	SimulationFlags `embed:""`

	Downs          int `help:"Number of downs (overrides config)"`
	SecondsPerPlay int `help:"Seconds each play takes (overrides config)"`
}

func (c *StopsCmd) Run(globals *GlobalFlags) error {
	cfg, err := globals.load()
	if err != nil {
		return err
	}
	return c.run(cfg, os.Stdout)
}

func (c *StopsCmd) run(cfg *config.Config, w io.Writer) error {
	state, err := c.state(cfg)
	if err != nil {
		return err
	}

	opts := cfg.StopOptions()
	if c.Downs != 0 {
		opts.Downs = c.Downs
	}
	if c.SecondsPerPlay != 0 {
		opts.SecondsPerPlay = c.SecondsPerPlay
	}
	if c.PlayClock != 0 {
		opts.PlayClock = c.PlayClock
	}

	out, err := clocksim.SimulateDefensiveStops(state, opts)
	if err != nil {
		return err
	}
	printLines(w, console.RenderStops(state, out))
	return nil
}
