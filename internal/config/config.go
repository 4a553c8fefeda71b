// Package config loads the gamemanager HCL configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/lox/gamemanager/internal/clocksim"
	"github.com/lox/gamemanager/internal/gameclock"
	"github.com/lox/gamemanager/internal/scoring"
)

// Config represents the complete gamemanager configuration
type Config struct {
	Clock    ClockSettings
	Log      LogSettings
	Scoring  ScoringSettings
	Kneel    KneelSettings
	Stops    StopSettings
	Timeouts TimeoutSettings
}

// fileConfig is the HCL file layout. Every block is optional.
type fileConfig struct {
	Clock    *ClockSettings   `hcl:"clock,block"`
	Log      *LogSettings     `hcl:"log,block"`
	Scoring  *ScoringSettings `hcl:"scoring,block"`
	Kneel    *KneelSettings   `hcl:"kneel,block"`
	Stops    *StopSettings    `hcl:"stops,block"`
	Timeouts *TimeoutSettings `hcl:"timeouts,block"`
}

// ClockSettings configures the game clock
type ClockSettings struct {
	Period       string `hcl:"period,optional"`
	SnapshotFile string `hcl:"snapshot_file,optional"`
}

// LogSettings configures logging
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// ScoringSettings configures the combination finder
type ScoringSettings struct {
	MaxResults int          `hcl:"max_results,optional"`
	NodeBudget int          `hcl:"node_budget,optional"`
	Workers    int          `hcl:"workers,optional"`
	Plays      []PlayConfig `hcl:"play,block"`
}

// PlayConfig defines one scoring play
type PlayConfig struct {
	Label  string `hcl:"label,label"`
	Points int    `hcl:"points"`
}

// KneelSettings configures the kneel-out simulation
type KneelSettings struct {
	Count           int `hcl:"count,optional"`
	SecondsPerKneel int `hcl:"seconds_per_kneel,optional"`
	PlayClock       int `hcl:"play_clock,optional"`
}

// StopSettings configures the defensive-stop simulation
type StopSettings struct {
	Downs          int `hcl:"downs,optional"`
	SecondsPerPlay int `hcl:"seconds_per_play,optional"`
	PlayClock      int `hcl:"play_clock,optional"`
}

// TimeoutSettings bounds the timeout counts accepted from the user. Max must be
// at least 1; zero is read as unset and replaced by the default of 3.
type TimeoutSettings struct {
	Max int `hcl:"max,optional"`
}

// Default returns the default configuration
func Default() *Config {
	kneel := clocksim.DefaultKneelOptions()
	stops := clocksim.DefaultStopOptions()

	cfg := &Config{
		Clock: ClockSettings{
			Period:       gameclock.FormatClock(gameclock.DefaultPeriod),
			SnapshotFile: "gamemanager-state.hcl",
		},
		Log: LogSettings{
			Level: "info",
			File:  "gamemanager.log",
		},
		Scoring: ScoringSettings{
			MaxResults: scoring.DefaultMaxResults,
			NodeBudget: scoring.DefaultNodeBudget,
		},
		Kneel: KneelSettings{
			Count:           kneel.Kneels,
			SecondsPerKneel: kneel.SecondsPerKneel,
			PlayClock:       kneel.PlayClock,
		},
		Stops: StopSettings{
			Downs:          stops.Downs,
			SecondsPerPlay: stops.SecondsPerPlay,
			PlayClock:      stops.PlayClock,
		},
		Timeouts: TimeoutSettings{Max: 3},
	}
	for _, p := range scoring.Football().Plays() {
		cfg.Scoring.Plays = append(cfg.Scoring.Plays, PlayConfig{Label: p.Label, Points: p.Points})
	}
	return cfg
}

// Load loads configuration from an HCL file. A missing file yields defaults.
func Load(filename string) (*Config, error) {
	// Check if file exists
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := &Config{}
	if fc.Clock != nil {
		cfg.Clock = *fc.Clock
	}
	if fc.Log != nil {
		cfg.Log = *fc.Log
	}
	if fc.Scoring != nil {
		cfg.Scoring = *fc.Scoring
	}
	if fc.Kneel != nil {
		cfg.Kneel = *fc.Kneel
	}
	if fc.Stops != nil {
		cfg.Stops = *fc.Stops
	}
	if fc.Timeouts != nil {
		cfg.Timeouts = *fc.Timeouts
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Bytes renders the configuration as HCL
func (c *Config) Bytes() []byte {
	fc := fileConfig{
		Clock:    &c.Clock,
		Log:      &c.Log,
		Scoring:  &c.Scoring,
		Kneel:    &c.Kneel,
		Stops:    &c.Stops,
		Timeouts: &c.Timeouts,
	}

	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(&fc, f.Body())
	return f.Bytes()
}

// Save writes the configuration as HCL, refusing to replace an existing file
func (c *Config) Save(filename string) error {
	out, err := os.OpenFile(filename, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	if _, err := out.Write(c.Bytes()); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return out.Close()
}

// applyDefaults fills zero values from Default. Kneel and stop counts of zero
// are taken as unset since a simulation with no snaps is never useful, and a
// timeouts max of zero is unset, so the default of 3 applies.
func (c *Config) applyDefaults() {
	def := Default()

	if c.Clock.Period == "" {
		c.Clock.Period = def.Clock.Period
	}
	if c.Clock.SnapshotFile == "" {
		c.Clock.SnapshotFile = def.Clock.SnapshotFile
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = def.Log.File
	}
	if c.Scoring.MaxResults == 0 {
		c.Scoring.MaxResults = def.Scoring.MaxResults
	}
	if c.Scoring.NodeBudget == 0 {
		c.Scoring.NodeBudget = def.Scoring.NodeBudget
	}
	if len(c.Scoring.Plays) == 0 {
		c.Scoring.Plays = def.Scoring.Plays
	}
	if c.Kneel.Count == 0 {
		c.Kneel.Count = def.Kneel.Count
	}
	if c.Kneel.SecondsPerKneel == 0 {
		c.Kneel.SecondsPerKneel = def.Kneel.SecondsPerKneel
	}
	if c.Kneel.PlayClock == 0 {
		c.Kneel.PlayClock = def.Kneel.PlayClock
	}
	if c.Stops.Downs == 0 {
		c.Stops.Downs = def.Stops.Downs
	}
	if c.Stops.SecondsPerPlay == 0 {
		c.Stops.SecondsPerPlay = def.Stops.SecondsPerPlay
	}
	if c.Stops.PlayClock == 0 {
		c.Stops.PlayClock = def.Stops.PlayClock
	}
	if c.Timeouts.Max == 0 {
		c.Timeouts.Max = def.Timeouts.Max
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := c.Period(); err != nil {
		return err
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	if c.Scoring.MaxResults < 1 {
		return fmt.Errorf("scoring: max_results must be positive, got %d", c.Scoring.MaxResults)
	}
	if c.Scoring.Workers < 0 {
		return fmt.Errorf("scoring: workers must not be negative, got %d", c.Scoring.Workers)
	}
	if _, err := c.Catalog(); err != nil {
		return err
	}

	if err := c.KneelOptions().Validate(); err != nil {
		return fmt.Errorf("kneel: %w", err)
	}
	if err := c.StopOptions().Validate(); err != nil {
		return fmt.Errorf("stops: %w", err)
	}

	if c.Timeouts.Max < 0 {
		return fmt.Errorf("timeouts: max must not be negative, got %d", c.Timeouts.Max)
	}

	return nil
}

// Period returns the parsed clock period
func (c *Config) Period() (time.Duration, error) {
	d, err := gameclock.ParseClock(c.Clock.Period)
	if err != nil {
		return 0, fmt.Errorf("clock: period: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("clock: period must be positive, got %s", c.Clock.Period)
	}
	return d, nil
}

// Catalog builds the scoring catalog from the configured plays
func (c *Config) Catalog() (scoring.Catalog, error) {
	plays := make([]scoring.Play, len(c.Scoring.Plays))
	for i, p := range c.Scoring.Plays {
		plays[i] = scoring.Play{Points: p.Points, Label: p.Label}
	}
	catalog, err := scoring.NewCatalog(plays...)
	if err != nil {
		return scoring.Catalog{}, fmt.Errorf("scoring: %w", err)
	}
	return catalog, nil
}

// Finder builds a combination finder from the scoring settings
func (c *Config) Finder() (*scoring.Finder, error) {
	catalog, err := c.Catalog()
	if err != nil {
		return nil, err
	}
	f := scoring.NewFinder(catalog)
	f.MaxResults = c.Scoring.MaxResults
	f.NodeBudget = c.Scoring.NodeBudget
	return f, nil
}

// KneelOptions returns the kneel-out simulation options
func (c *Config) KneelOptions() clocksim.KneelOptions {
	return clocksim.KneelOptions{
		Kneels:          c.Kneel.Count,
		SecondsPerKneel: c.Kneel.SecondsPerKneel,
		PlayClock:       c.Kneel.PlayClock,
	}
}

// StopOptions returns the defensive-stop simulation options
func (c *Config) StopOptions() clocksim.StopOptions {
	return clocksim.StopOptions{
		Downs:          c.Stops.Downs,
		SecondsPerPlay: c.Stops.SecondsPerPlay,
		PlayClock:      c.Stops.PlayClock,
	}
}

// CheckTimeouts validates a timeout count supplied by the user
func (c *Config) CheckTimeouts(n int) error {
	if n < 0 || n > c.Timeouts.Max {
		return fmt.Errorf("timeouts must be between 0 and %d, got %d", c.Timeouts.Max, n)
	}
	return nil
}
