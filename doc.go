// Package leaderarm reads joint angles from an SO-101 leader arm and
// relays them to the terminal or to websocket subscribers.
//
// The leader arm is the controller half of a LeRobot-style teleoperation
// setup: a passive arm the operator moves by hand. This module connects to
// it over a feetech serial servo bus, polls its joint positions at a fixed
// frame rate, and either displays them live or fans them out as JSON frames
// to connected websocket clients.
//
// # Installation
//
//	go install github.com/gwillem/leaderarm/cmd/leaderarm@latest
//
// # Usage
//
// First, run setup to detect and calibrate the leader arm:
//
//	leaderarm setup
//
// Then display joint angles live:
//
//	leaderarm test --fps 30
//
// Or stream them over websocket:
//
//	leaderarm websocket --fps 30 --host localhost --port 8765
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/leaderarm: CLI with setup, calibrate, test, and websocket commands
//   - pkg/robot: leader arm access, calibration, and configuration
//   - pkg/poll: fixed-rate polling loop
//   - pkg/stream: websocket broadcast server
package leaderarm
