package clocksim

import "fmt"

// StopOptions describes the leading team's possession the defence is trying
// to get off the field
type StopOptions struct {
	Downs          int
	SecondsPerPlay int
	PlayClock      int
}

// DefaultStopOptions returns three six-second running plays against a 40
// second play clock
func DefaultStopOptions() StopOptions {
	return StopOptions{
		Downs:          3,
		SecondsPerPlay: 6,
		PlayClock:      40,
	}
}

// Validate checks that no option is negative
func (o StopOptions) Validate() error {
	if err := nonNegative("downs", o.Downs); err != nil {
		return err
	}
	if err := nonNegative("seconds per play", o.SecondsPerPlay); err != nil {
		return err
	}
	return nonNegative("play clock", o.PlayClock)
}

// SimulateDefensiveStops plans how much time the trailing team keeps when it
// stops the leading team on every down. After each play it calls a timeout
// while it has one; once they are gone the play clock runs down before the
// next snap.
func SimulateDefensiveStops(state ClockState, opts StopOptions) (Outcome, error) {
	if err := state.validate(); err != nil {
		return Outcome{}, err
	}
	if err := opts.Validate(); err != nil {
		return Outcome{}, err
	}

	remaining := state.RemainingSeconds
	timeouts := state.TimeoutsAvailable
	out := Outcome{}

	for down := 1; down <= opts.Downs && remaining > 0; down++ {
		play := min(opts.SecondsPerPlay, remaining)
		remaining -= play
		step := Step{Play: down, SecondsConsumed: play}

		var line string
		switch {
		case remaining == 0:
			line = fmt.Sprintf("Down %d: %ds play runs out the clock", down, play)
		case timeouts > 0:
			timeouts--
			step.TimeoutUsed = true
			line = fmt.Sprintf("Down %d: %ds play, timeout, %s remaining (%s)",
				down, play, formatSeconds(remaining), timeoutsLeft(timeouts))
		default:
			burn := min(opts.PlayClock, remaining)
			remaining -= burn
			step.SecondsConsumed += burn
			line = fmt.Sprintf("Down %d: %ds play, no timeouts, %ds play clock burn, %s remaining",
				down, play, burn, formatSeconds(remaining))
		}

		step.RemainingAfter = remaining
		out.Steps = append(out.Steps, step)
		out.Plan = append(out.Plan, line)
	}

	out.RemainingSeconds = remaining
	out.TimeoutsLeft = timeouts
	return out, nil
}
