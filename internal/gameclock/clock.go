// Package gameclock holds the live game state: the countdown clock, the
// scoreboard with its undo stack, and best-effort snapshots of both.
package gameclock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/coder/quartz"
)

// ErrInvalidTimeFormat is returned when a clock string cannot be parsed
var ErrInvalidTimeFormat = errors.New("invalid time format")

// DefaultPeriod is the length of a quarter
const DefaultPeriod = 12 * time.Minute

// MaxClock is the longest clock ParseClock accepts
const MaxClock = 24 * time.Hour

// ParseClock parses "M:SS" (or a bare number of seconds) into a duration.
// Only unsigned digits are accepted and the result must not exceed MaxClock.
func ParseClock(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidTimeFormat)
	}

	minStr, secStr, hasColon := strings.Cut(s, ":")
	if !hasColon {
		secs, ok := parseDigits(s)
		if !ok || secs > int64(MaxClock/time.Second) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
		return time.Duration(secs) * time.Second, nil
	}

	mins, ok := parseDigits(minStr)
	if !ok || mins > int64(MaxClock/time.Minute) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	if len(secStr) != 2 {
		return 0, fmt.Errorf("%w: %q needs two digit seconds", ErrInvalidTimeFormat, s)
	}
	secs, ok := parseDigits(secStr)
	if !ok || secs > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	d := time.Duration(mins)*time.Minute + time.Duration(secs)*time.Second
	if d > MaxClock {
		return 0, fmt.Errorf("%w: %q is longer than %s", ErrInvalidTimeFormat, s, MaxClock)
	}
	return d, nil
}

// parseDigits parses a non-empty run of ASCII digits with no sign
func parseDigits(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatClock renders d as zero padded "MM:SS", rounded to the nearest second
func FormatClock(d time.Duration) string {
	t := WholeSeconds(d)
	return fmt.Sprintf("%02d:%02d", t/60, t%60)
}

// WholeSeconds rounds d to the nearest second, clamped at zero
func WholeSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d.Round(time.Second) / time.Second)
}

// Seconds converts whole seconds to a duration
func Seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// Clock is a countdown game clock. It is not safe for concurrent use.
type Clock struct {
	wall      quartz.Clock
	period    time.Duration
	remaining time.Duration
	running   bool
	lastTick  time.Time
}

// NewClock creates a paused clock set to a full period
func NewClock(wall quartz.Clock, period time.Duration) *Clock {
	if period <= 0 {
		period = DefaultPeriod
	}
	return &Clock{
		wall:      wall,
		period:    period,
		remaining: period,
	}
}

// Start runs the clock. A clock at zero stays stopped.
func (c *Clock) Start() {
	c.advance()
	if c.running || c.remaining <= 0 {
		return
	}
	c.running = true
	c.lastTick = c.wall.Now()
}

// Pause stops the clock, keeping the time already run off
func (c *Clock) Pause() {
	c.advance()
	c.running = false
}

// Reset stops the clock and sets it back to a full period
func (c *Clock) Reset() {
	c.Set(c.period)
}

// Set stops the clock and sets the time remaining
func (c *Clock) Set(d time.Duration) {
	c.running = false
	c.remaining = max(d, 0)
}

// Remaining returns the time left on the clock
func (c *Clock) Remaining() time.Duration {
	c.advance()
	return c.remaining
}

// Seconds returns the time left in whole seconds
func (c *Clock) Seconds() int {
	return WholeSeconds(c.Remaining())
}

// Running reports whether the clock is counting down
func (c *Clock) Running() bool {
	c.advance()
	return c.running
}

// Period returns the length of a full period
func (c *Clock) Period() time.Duration {
	return c.period
}

// String renders the time remaining as "MM:SS"
func (c *Clock) String() string {
	return FormatClock(c.Remaining())
}

func (c *Clock) advance() {
	if !c.running {
		return
	}
	now := c.wall.Now()
	c.remaining -= now.Sub(c.lastTick)
	c.lastTick = now
	if c.remaining <= 0 {
		c.remaining = 0
		c.running = false
	}
}
