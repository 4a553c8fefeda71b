// Package tui is the interactive terminal scoreboard.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/gamemanager/internal/console"
	"github.com/lox/gamemanager/internal/gameclock"
)

// refreshInterval is how often the clock display is redrawn
const refreshInterval = 200 * time.Millisecond

// maxOutputLines bounds the command output history
const maxOutputLines = 500

// sidebarEvents is how many board events the sidebar shows
const sidebarEvents = 8

// SaveFunc persists a board snapshot
type SaveFunc func(gameclock.Snapshot) error

type tickMsg time.Time

// Model is the Bubble Tea model for the scoreboard
type Model struct {
	session *console.Session
	logger  *log.Logger
	save    SaveFunc

	// UI components
	outputViewport viewport.Model
	commandInput   textinput.Model

	// State
	output      []string
	quitting    bool
	focusedPane int // 0 = output, 1 = input

	// Dimensions
	width  int
	height int
}

// NewModel creates a scoreboard model. save may be nil.
func NewModel(session *console.Session, logger *log.Logger, save SaveFunc) *Model {
	// Sized properly when WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "home 7, undo, set 2:00, combos, kneel 2, help"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return &Model{
		session:        session,
		logger:         logger.WithPrefix("tui"),
		save:           save,
		outputViewport: vp,
		commandInput:   ti,
		focusedPane:    1,
	}
}

// Init starts the cursor blink and the clock refresh
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, m.quit()
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.commandInput.Focus()
			} else {
				m.focusedPane = 0
				m.commandInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				line := strings.TrimSpace(m.commandInput.Value())
				m.commandInput.SetValue("")
				if cmd := m.runCommand(line); cmd != nil {
					return m, cmd
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.outputViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.outputViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.outputViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.outputViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.outputViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.outputViewport.GotoBottom()
			}
		}
	}

	// Only update input if it's focused
	if m.focusedPane == 1 {
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// runCommand executes a line and records its output. It returns a command
// only when the program should exit.
func (m *Model) runCommand(line string) tea.Cmd {
	if line == "" {
		return nil
	}

	out, err := m.session.Execute(line)
	if errors.Is(err, console.ErrQuit) {
		return m.quit()
	}

	m.addOutput(InfoStyle.Render("> " + line))
	if err != nil {
		m.logger.Warn("Command failed", "command", line, "error", err)
		m.addOutput(ErrorStyle.Render(err.Error()))
		return nil
	}
	for _, l := range out {
		m.addOutput(OutputStyle.Render(l))
	}

	m.persist()
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.persist()
	return tea.Sequence(tea.ClearScreen, tea.Quit)
}

func (m *Model) persist() {
	if m.save == nil {
		return
	}
	if err := m.save(m.session.Board().Snapshot()); err != nil {
		m.logger.Warn("Failed to save snapshot", "error", err)
	}
}

func (m *Model) addOutput(line string) {
	m.output = append(m.output, line)
	if len(m.output) > maxOutputLines {
		m.output = m.output[len(m.output)-maxOutputLines:]
	}
	m.outputViewport.SetContent(strings.Join(m.output, "\n"))
	m.outputViewport.GotoBottom()
}

// Output returns the command output history, oldest first
func (m *Model) Output() []string {
	out := make([]string, len(m.output))
	copy(out, m.output)
	return out
}

// Quitting reports whether the user has asked to exit
func (m *Model) Quitting() bool {
	return m.quitting
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Input pane (bottom, full width)
	inputContent := m.renderInputPane()
	inputHeight := lipgloss.Height(inputContent)
	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(max(m.width-2, 1)).
		Height(max(inputHeight, 1))
	if m.focusedPane == 1 {
		inputStyle = inputStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	inputPane := inputStyle.Render(inputContent)

	// Scoreboard sidebar (right of the output pane)
	sidebarContent := m.renderScoreboard()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 28)
	paneHeight := max(m.height-inputHeight-4, 1)

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	// Output pane (top left, fills remaining width)
	outputWidth := max(m.width-sidebarWidth-4, 1)
	m.outputViewport.Width = outputWidth
	m.outputViewport.Height = paneHeight

	outputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(outputWidth).
		Height(paneHeight)
	if m.focusedPane == 0 {
		outputStyle = outputStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	outputPane := outputStyle.Render(m.outputViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, outputPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, inputPane)
}

// renderScoreboard renders the clock, scores and recent events
func (m *Model) renderScoreboard() string {
	board := m.session.Board()
	clock := board.Clock()

	var content strings.Builder

	content.WriteString(HeaderStyle.Render(" GAME MANAGER "))
	content.WriteString("\n\n")

	state := "paused"
	if clock.Running() {
		state = "running"
	}
	content.WriteString(ClockStyle.Render(clock.String()))
	content.WriteString(InfoStyle.Render("  " + state))
	content.WriteString("\n\n")

	for _, team := range []gameclock.Team{gameclock.Home, gameclock.Away} {
		marker := "  "
		if board.Possession() == team {
			marker = PossessionStyle.Render("● ")
		}
		content.WriteString(marker)
		content.WriteString(TeamStyle.Render(fmt.Sprintf("%-5s %3d", strings.ToUpper(string(team)), board.Points(team))))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	margin := fmt.Sprintf("Margin: %d", board.Differential())
	if team, ok := board.Trailing(); ok {
		margin += fmt.Sprintf(" (%s trails)", strings.ToUpper(string(team)))
	}
	content.WriteString(WarningStyle.Render(margin))
	content.WriteString("\n\n")

	events := board.Events()
	if len(events) > sidebarEvents {
		events = events[:sidebarEvents]
	}
	for _, e := range events {
		content.WriteString(InfoStyle.Render(e))
		content.WriteString("\n")
	}

	return content.String()
}

// renderInputPane renders the command input and help text
func (m *Model) renderInputPane() string {
	var content strings.Builder

	content.WriteString(m.commandInput.View())
	content.WriteString("\n")

	if m.focusedPane == 0 {
		content.WriteString(InfoStyle.Render("Output focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		content.WriteString(InfoStyle.Render("Enter to run • 'help' for commands • Tab to scroll output • Ctrl+C to quit"))
	}

	return content.String()
}
