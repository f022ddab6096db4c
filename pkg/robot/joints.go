// Package robot provides access to the SO-101 leader arm.
package robot

// JointName identifies a joint in the arm.
type JointName string

// Joint names for the SO-101 arm.
const (
	ShoulderPan  JointName = "shoulder_pan"
	ShoulderLift JointName = "shoulder_lift"
	ElbowFlex    JointName = "elbow_flex"
	WristFlex    JointName = "wrist_flex"
	WristRoll    JointName = "wrist_roll"
	Gripper      JointName = "gripper"
)

// AllJoints returns all joint names in order (matching servo IDs 1-6).
func AllJoints() []JointName {
	return []JointName{
		ShoulderPan,
		ShoulderLift,
		ElbowFlex,
		WristFlex,
		WristRoll,
		Gripper,
	}
}

// Action is a single reading of the arm: normalized joint angles keyed by
// joint name, produced once per polling tick.
type Action map[JointName]float64
