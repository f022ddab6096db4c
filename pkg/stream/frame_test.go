package stream

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/gwillem/leaderarm/pkg/robot"
)

func TestFrame_WireFormat(t *testing.T) {
	at := time.Unix(1700000000, 250_000_000)
	action := robot.Action{}
	for i, name := range robot.AllJoints() {
		action[name] = float64(i*10) - 25
	}

	msg, err := NewFrame(at, action).Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded struct {
		Timestamp float64            `json:"timestamp"`
		Actions   map[string]float64 `json:"actions"`
	}
	if err := json.Unmarshal(msg, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if math.Abs(decoded.Timestamp-1700000000.25) > 0.001 {
		t.Errorf("timestamp = %f, want 1700000000.25", decoded.Timestamp)
	}

	if len(decoded.Actions) != 6 {
		t.Fatalf("actions has %d entries, want 6", len(decoded.Actions))
	}
	for _, name := range robot.AllJoints() {
		got, ok := decoded.Actions[string(name)]
		if !ok {
			t.Errorf("actions missing joint %q", name)
			continue
		}
		if got != action[name] {
			t.Errorf("actions[%q] = %f, want %f", name, got, action[name])
		}
	}
}

func TestFrame_JointNamesHaveNoSuffix(t *testing.T) {
	msg, err := NewFrame(time.Now(), robot.Action{robot.WristRoll: 1}).Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(msg, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	var actions map[string]float64
	if err := json.Unmarshal(decoded["actions"], &actions); err != nil {
		t.Fatalf("unmarshal actions: %v", err)
	}
	if _, ok := actions["wrist_roll"]; !ok {
		t.Errorf("actions keyed %v, want plain joint name wrist_roll", actions)
	}
}
