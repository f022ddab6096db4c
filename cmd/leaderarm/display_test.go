package main

import (
	"strings"
	"testing"
	"time"

	"github.com/gwillem/leaderarm/pkg/robot"
)

func TestShortJointName(t *testing.T) {
	tests := []struct {
		name     robot.JointName
		expected string
	}{
		{robot.ShoulderPan, "s_pan"},
		{robot.ShoulderLift, "s_lift"},
		{robot.ElbowFlex, "e_flex"},
		{robot.WristFlex, "w_flex"},
		{robot.WristRoll, "w_roll"},
		{robot.Gripper, "gripper"},
	}

	for _, tt := range tests {
		if got := shortJointName(tt.name); got != tt.expected {
			t.Errorf("shortJointName(%s) = %q, want %q", tt.name, got, tt.expected)
		}
	}
}

func TestRenderLine(t *testing.T) {
	action := robot.Action{
		robot.ShoulderPan: 12.3,
		robot.Gripper:     -45.6,
	}

	line := renderLine(action, 2*time.Millisecond)

	if !strings.Contains(line, "s_pan: 12.30") {
		t.Errorf("line missing shoulder_pan reading: %q", line)
	}
	if !strings.Contains(line, "gripper:-45.60") {
		t.Errorf("line missing gripper reading: %q", line)
	}
	if !strings.Contains(line, "[2.0ms, 500Hz]") {
		t.Errorf("line missing loop timing: %q", line)
	}

	// shoulder_pan comes before gripper regardless of map order
	if strings.Index(line, "s_pan") > strings.Index(line, "gripper") {
		t.Errorf("joints not in servo ID order: %q", line)
	}
}

func TestRenderLine_ZeroLoop(t *testing.T) {
	line := renderLine(robot.Action{robot.WristRoll: 1}, 0)
	if !strings.Contains(line, "[0.0ms, 0Hz]") {
		t.Errorf("zero loop duration not handled: %q", line)
	}
}
