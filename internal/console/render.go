package console

import (
	"fmt"

	"github.com/lox/gamemanager/internal/clocksim"
	"github.com/lox/gamemanager/internal/gameclock"
	"github.com/lox/gamemanager/internal/scoring"
)

// RenderCombos renders a finder result as display lines. No combination is a
// normal outcome and renders as a message, not an error.
func RenderCombos(r scoring.Result) []string {
	if r.Target == 0 {
		return []string{"Scores are level, nothing to chase"}
	}
	if len(r.Combos) == 0 {
		if !r.Exhaustive {
			return []string{fmt.Sprintf("No combination for %d found before the search limit", r.Target)}
		}
		return []string{fmt.Sprintf("No exact combination for %d", r.Target)}
	}

	lines := []string{fmt.Sprintf("Ways to score %d:", r.Target)}
	for _, c := range r.Combos {
		lines = append(lines, "  "+c.String())
	}
	if r.Found > len(r.Combos) {
		lines = append(lines, fmt.Sprintf("  ... %d more", r.Found-len(r.Combos)))
	}
	if !r.Exhaustive {
		lines = append(lines, "  (search stopped early, list may be incomplete)")
	}
	return lines
}

// RenderKneel renders a kneel-out outcome
func RenderKneel(start clocksim.ClockState, o clocksim.Outcome) []string {
	lines := []string{fmt.Sprintf("Kneel-out from %s, trailing team has %d timeouts:",
		formatSeconds(start.RemainingSeconds), start.TimeoutsAvailable)}
	for _, p := range o.Plan {
		lines = append(lines, "  "+p)
	}
	if o.Exhausted() {
		lines = append(lines, "Clock can be run out")
	} else {
		lines = append(lines, fmt.Sprintf("Trailing team gets the ball back with %s", formatSeconds(o.RemainingSeconds)))
	}
	return lines
}

// RenderStops renders a defensive-stop outcome
func RenderStops(start clocksim.ClockState, o clocksim.Outcome) []string {
	lines := []string{fmt.Sprintf("Defensive stops from %s with %d timeouts:",
		formatSeconds(start.RemainingSeconds), start.TimeoutsAvailable)}
	for _, p := range o.Plan {
		lines = append(lines, "  "+p)
	}
	if o.Exhausted() {
		lines = append(lines, "Clock expires before the ball comes back")
	} else {
		lines = append(lines, fmt.Sprintf("Ball back with %s (%d timeouts left)", formatSeconds(o.RemainingSeconds), o.TimeoutsLeft))
	}
	return lines
}

func formatSeconds(s int) string {
	return gameclock.FormatClock(gameclock.Seconds(s))
}
