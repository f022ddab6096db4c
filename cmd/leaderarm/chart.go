package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/gwillem/leaderarm/pkg/poll"
	"github.com/gwillem/leaderarm/pkg/robot"
)

const (
	headerHeight = 2 // title + blank line
	legendHeight = 2 // legend row + blank
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border
)

// Joint colors - distinct colors for each joint
var jointColors = map[robot.JointName]string{
	robot.ShoulderPan:  "196", // red
	robot.ShoulderLift: "208", // orange
	robot.ElbowFlex:    "226", // yellow
	robot.WristFlex:    "46",  // green
	robot.WristRoll:    "51",  // cyan
	robot.Gripper:      "201", // magenta
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type chartModel struct {
	poller     *poll.Poller
	chart      *streamlinechart.Model
	width      int      // terminal width
	height     int      // terminal height
	logs       []string // last N log messages
	quitting   bool
	lastAction robot.Action // track previous action to detect movement
}

func (m *chartModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// hasMovement checks if any joint angle has changed from the last reading
func (m *chartModel) hasMovement(action robot.Action) bool {
	if m.lastAction == nil {
		return true // first reading, consider it movement
	}
	for name, pos := range action {
		if lastPos, ok := m.lastAction[name]; !ok || pos != lastPos {
			return true
		}
	}
	return false
}

// Messages from the poller
type sampleMsg poll.Sample

func waitForSample(p *poll.Poller) tea.Cmd {
	return func() tea.Msg {
		return sampleMsg(<-p.Samples())
	}
}

// chartSize calculates the size of the chart based on terminal dimensions
func (m *chartModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 20 // default size before we know terminal size
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - legendHeight - footerHeight - borderSize
	if height < 10 {
		height = 10
	}
	return width, height
}

func (m *chartModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

func initialChartModel(poller *poll.Poller) chartModel {
	chart := streamlinechart.New(80, 20,
		streamlinechart.WithYRange(-100, 100),
	)

	// Set up data set styles for each joint
	for _, name := range robot.AllJoints() {
		color := jointColors[name]
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		chart.SetDataSetStyles(string(name), runes.ThinLineStyle, style)
	}

	return chartModel{
		poller: poller,
		chart:  &chart,
	}
}

func (m chartModel) Init() tea.Cmd {
	return waitForSample(m.poller)
}

func (m chartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case sampleMsg:
		s := poll.Sample(msg)
		if s.Err != nil {
			m.addLog(fmt.Sprintf("[%s] read error: %v", s.Timestamp.Format("15:04:05"), s.Err))
		} else if s.Action != nil {
			// Only update chart if there's movement (freeze when idle)
			if m.hasMovement(s.Action) {
				for name, pos := range s.Action {
					m.chart.PushDataSet(string(name), pos)
				}
				m.chart.DrawAll()
				m.lastAction = s.Action
			}
		}
		return m, waitForSample(m.poller)
	}

	return m, nil
}

func (m chartModel) View() string {
	if m.quitting {
		return "Display stopped.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render("Leader Arm Monitor"))
	sb.WriteString(fmt.Sprintf(" - %d fps", m.poller.FPS()))
	if m.width > 0 {
		sb.WriteString(statusStyle.Render(fmt.Sprintf("  [%dx%d]", m.width, m.height)))
	}
	sb.WriteString("\n\n")

	// Chart
	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	// Legend
	sb.WriteString(renderLegend())
	sb.WriteString("\n")

	// Log box
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.width - 4).
		Foreground(lipgloss.Color("9")) // bright red

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("Press 'q' to quit")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func renderLegend() string {
	var items []string
	for _, name := range robot.AllJoints() {
		color := jointColors[name]
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
		item := colorStyle.Render("━━") + " " + string(name)
		items = append(items, item)
	}
	return strings.Join(items, "  ")
}

func runChart(ctx context.Context, poller *poll.Poller) error {
	p := tea.NewProgram(initialChartModel(poller), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run display: %w", err)
	}
	return nil
}
