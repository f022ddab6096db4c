package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/hipsterbrown/feetech-servo/feetech"

	"github.com/gwillem/leaderarm/pkg/robot"
)

type CalibrateCommand struct{}

func (c *CalibrateCommand) Execute(args []string) error {
	cfg, err := robot.LoadConfigFrom(configPath())
	if err != nil {
		if opts.SerialPort == "" {
			fmt.Fprintln(os.Stderr, "No configuration found. Run 'leaderarm setup' first, or pass --serial-port.")
			os.Exit(1)
		}
		cfg = &robot.Config{ID: robot.DefaultArmID}
	}
	if opts.SerialPort != "" {
		cfg.Port = opts.SerialPort
	}
	if cfg.Port == "" {
		fmt.Fprintln(os.Stderr, "Arm not configured. Run 'leaderarm setup' first, or pass --serial-port.")
		os.Exit(1)
	}

	cal, err := calibrateLeaderPort(cfg.Port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error calibrating: %v\n", err)
		os.Exit(1)
	}
	cfg.Calibration = cal

	if err := cfg.SaveTo(configPath()); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println(successStyle.Render("Leader arm calibrated."))
	fmt.Printf("Calibration saved to %s\n", configPath())
	return nil
}

// calibrateLeaderPort records the arm's range of motion and returns the
// resulting calibration.
func calibrateLeaderPort(port string) (robot.Calibration, error) {
	fmt.Printf("Calibrating leader arm on %s\n", port)
	fmt.Println()

	bus, servos, err := connectToLeader(port)
	if err != nil {
		return nil, fmt.Errorf("connect to arm: %w", err)
	}
	defer bus.Close()

	servoMap := make(map[int]*feetech.Servo)
	for _, s := range servos {
		servoMap[s.ID] = feetech.NewServo(bus, s.ID, s.Model)
	}

	// Disable all servos so the operator can move the arm freely
	ctx := context.Background()
	for _, servo := range servoMap {
		servo.Disable(ctx)
	}

	fmt.Println(subHeaderStyle.Render("Record range of motion"))
	fmt.Println("Move each joint to its minimum AND maximum positions.")
	fmt.Println("Explore the full range of motion for all joints.")
	fmt.Println()

	// Seed the recorder with the arm's resting positions
	start := make(map[robot.JointName]int)
	for i, name := range robot.AllJoints() {
		pos, _ := servoMap[i+1].Position(ctx)
		start[name] = pos
	}
	recorder := robot.NewRangeRecorder(start)

	p := tea.NewProgram(newCalibrationModel(servoMap, recorder))
	if _, err := p.Run(); err != nil {
		return nil, fmt.Errorf("run calibration: %w", err)
	}

	fmt.Println()
	return recorder.Calibration(), nil
}

// Calibration TUI model
type calibrationModel struct {
	servoMap map[int]*feetech.Servo
	recorder *robot.RangeRecorder
	quitting bool
}

type tickMsg time.Time

func newCalibrationModel(servoMap map[int]*feetech.Servo, recorder *robot.RangeRecorder) calibrationModel {
	return calibrationModel{
		servoMap: servoMap,
		recorder: recorder,
	}
}

func (m calibrationModel) Init() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m calibrationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tickMsg:
		// Read positions from servos
		ctx := context.Background()
		for i, name := range robot.AllJoints() {
			pos, err := m.servoMap[i+1].Position(ctx)
			if err != nil {
				continue
			}
			m.recorder.Observe(name, pos)
		}
		return m, tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})
	}

	return m, nil
}

func (m calibrationModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder

	// Table styles
	tableHeaderStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	tableJointStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Padding(0, 1)
	tableCellStyle := lipgloss.NewStyle().Padding(0, 1)
	tableCurrentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Padding(0, 1)
	tableRangeGoodStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Padding(0, 1)
	tableRangeLowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 1)

	joints := robot.AllJoints()
	rows := make([][]string, 0, len(joints))
	ranges := make([]int, 0, len(joints))
	for _, name := range joints {
		rangeSize := m.recorder.Max[name] - m.recorder.Min[name]
		ranges = append(ranges, rangeSize)
		rows = append(rows, []string{
			string(name),
			fmt.Sprintf("%d", m.recorder.Current[name]),
			fmt.Sprintf("%d", m.recorder.Min[name]),
			fmt.Sprintf("%d", m.recorder.Max[name]),
			fmt.Sprintf("%d", rangeSize),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Joint", "Current", "Min", "Max", "Range").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			switch col {
			case 0:
				return tableJointStyle
			case 1:
				return tableCurrentStyle
			case 4:
				if row >= 0 && row < len(ranges) && ranges[row] > 500 {
					return tableRangeGoodStyle
				}
				return tableRangeLowStyle
			default:
				return tableCellStyle
			}
		})

	sb.WriteString(t.Render())
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("Press Enter when done"))

	return sb.String()
}
