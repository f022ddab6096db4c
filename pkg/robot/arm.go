package robot

import (
	"context"
	"fmt"

	"github.com/hipsterbrown/feetech-servo/feetech"
)

// Leader represents a leader arm: a passive arm whose joint positions are
// read but never written.
type Leader struct {
	bus         *feetech.Bus
	group       *feetech.ServoGroup
	calibration Calibration
	port        string
}

// Connect opens a serial connection to the leader arm.
func Connect(port string, cal Calibration) (*Leader, error) {
	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     port,
		BaudRate: 1_000_000,
		Protocol: feetech.ProtocolSTS,
	})
	if err != nil {
		return nil, fmt.Errorf("open bus: %w", err)
	}

	// Create servo group from calibration IDs
	ids := cal.MotorIDs()
	group := feetech.NewServoGroupByIDs(bus, ids...)

	return &Leader{
		bus:         bus,
		group:       group,
		calibration: cal,
		port:        port,
	}, nil
}

// Port returns the serial port the arm is connected on.
func (l *Leader) Port() string {
	return l.port
}

// Close closes the arm's bus connection.
func (l *Leader) Close() error {
	return l.bus.Close()
}

// DisableTorque disables torque on all servos so the operator can move the
// arm freely.
func (l *Leader) DisableTorque(ctx context.Context) error {
	return l.group.DisableAll(ctx)
}

// Action reads current positions from all joints.
// Returns normalized angles in the range [-100, 100].
func (l *Leader) Action(ctx context.Context) (Action, error) {
	// Read raw positions using sync read
	rawPositions, err := l.group.Positions(ctx)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	// Normalize each position
	action := make(Action, len(rawPositions))
	for id, raw := range rawPositions {
		name, cal, ok := l.calibration.ByID(id)
		if !ok {
			continue
		}
		action[name] = cal.Normalize(raw)
	}

	return action, nil
}
