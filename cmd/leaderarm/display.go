package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gwillem/leaderarm/pkg/robot"
)

var jointAbbreviator = strings.NewReplacer("shoulder_", "s_", "elbow_", "e_", "wrist_", "w_")

// shortJointName compacts joint names for the single-line display.
func shortJointName(name robot.JointName) string {
	return jointAbbreviator.Replace(string(name))
}

// renderLine formats one tick as a compact status line:
//
//	s_pan: 12.34 | s_lift: -5.00 | ... [1.2ms, 30Hz]
func renderLine(action robot.Action, loop time.Duration) string {
	parts := make([]string, 0, len(action))
	for _, name := range robot.AllJoints() {
		value, ok := action[name]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:%6.2f", shortJointName(name), value))
	}

	hz := 0.0
	if loop > 0 {
		hz = 1 / loop.Seconds()
	}
	timing := fmt.Sprintf("[%.1fms, %.0fHz]", float64(loop.Microseconds())/1000, hz)

	return strings.Join(parts, " | ") + " " + timing
}

// printLine redraws the status line in place: \r returns to start of line,
// \033[K clears from cursor to end of line.
func printLine(s string) {
	fmt.Printf("\r\033[K%s", s)
}
