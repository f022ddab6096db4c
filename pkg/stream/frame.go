// Package stream fans leader arm actions out to websocket subscribers.
package stream

import (
	"encoding/json"
	"time"

	"github.com/gwillem/leaderarm/pkg/robot"
)

// Frame is the wire format pushed to subscribers, one per tick.
// Timestamp is unix seconds; Actions maps joint name to normalized angle.
type Frame struct {
	Timestamp float64            `json:"timestamp"`
	Actions   map[string]float64 `json:"actions"`
}

// NewFrame builds a frame from an action reading.
func NewFrame(at time.Time, action robot.Action) Frame {
	actions := make(map[string]float64, len(action))
	for name, value := range action {
		actions[string(name)] = value
	}
	return Frame{
		Timestamp: float64(at.UnixNano()) / 1e9,
		Actions:   actions,
	}
}

// Marshal encodes the frame as a JSON message.
func (f Frame) Marshal() ([]byte, error) {
	return json.Marshal(f)
}
