// Package clocksim plans the end of a game clock: whether the leading team can
// kneel out the clock, and how much time a trailing team keeps by getting
// stops on defence.
//
// Both simulations are deterministic and work in whole seconds. Each call
// works on its own copy of the input state.
package clocksim

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when a state or option is negative
var ErrInvalidInput = errors.New("invalid simulation input")

// ClockState is the clock and the trailing team's timeouts at the start of a
// simulation
type ClockState struct {
	RemainingSeconds  int
	TimeoutsAvailable int
}

// Step records the effect of one snap
type Step struct {
	Play            int // 1-based
	SecondsConsumed int // play time plus any play clock burned after it
	TimeoutUsed     bool
	RemainingAfter  int
}

// Outcome is the result of a simulation
type Outcome struct {
	RemainingSeconds int
	TimeoutsLeft     int
	Steps            []Step
	// Plan narrates each step in order, one line per snap
	Plan []string
}

// Exhausted reports whether the clock ran out during the simulation
func (o Outcome) Exhausted() bool {
	return o.RemainingSeconds == 0
}

func (s ClockState) validate() error {
	if s.RemainingSeconds < 0 {
		return fmt.Errorf("%w: remaining seconds %d", ErrInvalidInput, s.RemainingSeconds)
	}
	if s.TimeoutsAvailable < 0 {
		return fmt.Errorf("%w: timeouts %d", ErrInvalidInput, s.TimeoutsAvailable)
	}
	return nil
}

func nonNegative(name string, v int) error {
	if v < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidInput, name, v)
	}
	return nil
}

func formatSeconds(s int) string {
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

func timeoutsLeft(n int) string {
	if n == 1 {
		return "1 timeout left"
	}
	return fmt.Sprintf("%d timeouts left", n)
}
