package clocksim

import "fmt"

// KneelOptions describes the leading team's victory formation
type KneelOptions struct {
	Kneels          int
	SecondsPerKneel int
	PlayClock       int
}

// DefaultKneelOptions returns three kneels of two seconds against a 40 second
// play clock
func DefaultKneelOptions() KneelOptions {
	return KneelOptions{
		Kneels:          3,
		SecondsPerKneel: 2,
		PlayClock:       40,
	}
}

// Validate checks that no option is negative
func (o KneelOptions) Validate() error {
	if err := nonNegative("kneels", o.Kneels); err != nil {
		return err
	}
	if err := nonNegative("seconds per kneel", o.SecondsPerKneel); err != nil {
		return err
	}
	return nonNegative("play clock", o.PlayClock)
}

// SimulateKneelOut models the leading team kneeling to run out the clock.
//
// Each kneel takes SecondsPerKneel off the clock. If time is left the trailing
// team calls a timeout when it has one, which stops the clock before the next
// snap. Otherwise the leading team lets the play clock run down first. A
// result of zero means the game ends without the trailing team getting the
// ball back.
func SimulateKneelOut(state ClockState, opts KneelOptions) (Outcome, error) {
	if err := state.validate(); err != nil {
		return Outcome{}, err
	}
	if err := opts.Validate(); err != nil {
		return Outcome{}, err
	}

	remaining := state.RemainingSeconds
	timeouts := state.TimeoutsAvailable
	out := Outcome{}

	for kneel := 1; kneel <= opts.Kneels && remaining > 0; kneel++ {
		used := min(opts.SecondsPerKneel, remaining)
		remaining -= used
		step := Step{Play: kneel, SecondsConsumed: used}

		var line string
		switch {
		case remaining == 0:
			line = fmt.Sprintf("Kneel %d: %ds off, clock expires", kneel, used)
		case timeouts > 0:
			timeouts--
			step.TimeoutUsed = true
			line = fmt.Sprintf("Kneel %d: %ds off, timeout called (%s), %s remaining",
				kneel, used, timeoutsLeft(timeouts), formatSeconds(remaining))
		default:
			burn := min(opts.PlayClock, remaining)
			remaining -= burn
			step.SecondsConsumed += burn
			line = fmt.Sprintf("Kneel %d: %ds off, play clock burns %ds, %s remaining",
				kneel, used, burn, formatSeconds(remaining))
		}

		step.RemainingAfter = remaining
		out.Steps = append(out.Steps, step)
		out.Plan = append(out.Plan, line)
	}

	out.RemainingSeconds = remaining
	out.TimeoutsLeft = timeouts
	return out, nil
}
