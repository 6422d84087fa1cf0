package tuitest

import "time"

// Keys turns a keypad sequence into steps, one key press per rune, each
// sent gap after the previous one. Spaces are skipped so scripts can be
// written the way the display reads, e.g. "12 + 3 =".
func Keys(sequence string, gap time.Duration) []Step {
	steps := make([]Step, 0, len(sequence))
	for _, r := range sequence {
		if r == ' ' {
			continue
		}
		steps = append(steps, Step{Delay: gap, Input: []byte(string(r))})
	}
	return steps
}

// Script concatenates step groups.
func Script(groups ...[]Step) []Step {
	var steps []Step
	for _, group := range groups {
		steps = append(steps, group...)
	}
	return steps
}

// Press wraps a single control sequence such as KeyCtrlQ into a step.
func Press(input []byte, delay time.Duration) []Step {
	return []Step{{Delay: delay, Input: input}}
}
