package gameclock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// Snapshot is the persisted form of a board
type Snapshot struct {
	ClockMillis int64        `hcl:"clock_ms"`
	Home        int          `hcl:"home"`
	Away        int          `hcl:"away"`
	Possession  string       `hcl:"possession"`
	Undo        []UndoRecord `hcl:"undo,block"`
}

// UndoRecord is a ScoreChange as written to a snapshot
type UndoRecord struct {
	Team   string `hcl:"team"`
	Points int    `hcl:"points"`
}

// Snapshot captures the board. A running clock is captured at its current
// reading.
func (b *Board) Snapshot() Snapshot {
	snap := Snapshot{
		ClockMillis: b.clock.Remaining().Milliseconds(),
		Home:        b.home,
		Away:        b.away,
		Possession:  string(b.possession),
	}
	for _, c := range b.undo {
		snap.Undo = append(snap.Undo, UndoRecord{Team: string(c.Team), Points: c.Points})
	}
	return snap
}

// Restore replaces the board state with a snapshot. The clock is left paused.
func (b *Board) Restore(snap Snapshot) error {
	if snap.Home < 0 || snap.Away < 0 || snap.ClockMillis < 0 {
		return fmt.Errorf("snapshot has negative values: home=%d away=%d clock_ms=%d", snap.Home, snap.Away, snap.ClockMillis)
	}
	if snap.Home > MaxScore || snap.Away > MaxScore {
		return fmt.Errorf("snapshot score above %d: home=%d away=%d", MaxScore, snap.Home, snap.Away)
	}
	possession, err := ParseTeam(snap.Possession)
	if err != nil {
		return fmt.Errorf("snapshot possession: %w", err)
	}

	undo := make([]ScoreChange, 0, len(snap.Undo))
	for i, r := range snap.Undo {
		team, err := ParseTeam(r.Team)
		if err != nil {
			return fmt.Errorf("snapshot undo entry %d: %w", i, err)
		}
		if r.Points < -MaxPlayPoints || r.Points > MaxPlayPoints {
			return fmt.Errorf("snapshot undo entry %d: points %d out of range", i, r.Points)
		}
		undo = append(undo, ScoreChange{Team: team, Points: r.Points})
	}

	b.clock.Set(time.Duration(snap.ClockMillis) * time.Millisecond)
	b.home = snap.Home
	b.away = snap.Away
	b.possession = possession
	b.undo = undo
	b.logger.Debug("Restored snapshot", "home", b.home, "away", b.away, "clock", b.clock.String(), "undo", len(undo))
	return nil
}

// SaveSnapshot writes the snapshot as HCL, atomically replacing filename
func SaveSnapshot(filename string, snap Snapshot) error {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(&snap, f.Body())
	return writeFileAtomic(filename, f.Bytes(), 0o644)
}

// LoadSnapshot reads a snapshot written by SaveSnapshot. A missing file is
// not an error; ok is false.
func LoadSnapshot(filename string) (snap Snapshot, ok bool, err error) {
	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to read snapshot: %w", err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return Snapshot{}, false, fmt.Errorf("failed to parse snapshot: %s", diags.Error())
	}

	diags = gohcl.DecodeBody(file.Body, nil, &snap)
	if diags.HasErrors() {
		return Snapshot{}, false, fmt.Errorf("failed to decode snapshot: %s", diags.Error())
	}
	return snap, true, nil
}

// writeFileAtomic writes to a temp file in the same directory and renames it
// over filename, so readers see the old snapshot or the new one, never half.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	committed = true
	return nil
}
