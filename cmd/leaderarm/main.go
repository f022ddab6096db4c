package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/gwillem/leaderarm/pkg/robot"
)

type Options struct {
	Config     string `long:"config" description:"Path to the config file (default: leaderarm.json)"`
	SerialPort string `long:"serial-port" description:"Override the configured device port"`

	Setup     SetupCommand     `command:"setup" description:"Scan for the leader arm and calibrate it"`
	Calibrate CalibrateCommand `command:"calibrate" description:"Record the leader arm's range of motion"`
	Test      TestCommand      `command:"test" description:"Display joint angles live in the terminal"`
	Websocket WebsocketCommand `command:"websocket" alias:"ws" description:"Stream joint angles to websocket clients"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "Leader arm relay - read SO-101 leader arm joint angles and display or stream them"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}

// configPath resolves the config file location, honoring --config.
func configPath() string {
	if opts.Config != "" {
		return opts.Config
	}
	return robot.DefaultConfigFile
}

// loadLeader loads the config and opens the device connection. Exits with a
// hint when setup has not been run yet.
func loadLeader() *robot.Leader {
	cfg, err := robot.LoadConfigFrom(configPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, "No configuration found. Run 'leaderarm setup' first.")
		os.Exit(1)
	}

	if opts.SerialPort != "" {
		cfg.Port = opts.SerialPort
	}
	if cfg.Port == "" {
		fmt.Fprintln(os.Stderr, "Arm not configured. Run 'leaderarm setup' first.")
		os.Exit(1)
	}
	if !cfg.IsCalibrated() {
		fmt.Fprintln(os.Stderr, "Arm not calibrated. Run 'leaderarm setup' first.")
		os.Exit(1)
	}

	leader, err := robot.Connect(cfg.Port, cfg.Calibration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to leader arm: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Leader device connected on %s\n", leader.Port())
	return leader
}

// releaseLeader closes the device connection and confirms to the operator.
func releaseLeader(dev io.Closer) {
	dev.Close()
	fmt.Println("Leader device disconnected")
}
