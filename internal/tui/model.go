package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Protocol selects which dialogue flow drives the chat.
type Protocol string

const (
	ProtocolExamine Protocol = "v1"
	ProtocolNarrow  Protocol = "v2"
)

// TriagePort is the TUI-facing subset of the dialogue controller.
type TriagePort interface {
	ExamineQuery(ctx context.Context, sessionID, query string, firstQuery bool) (string, bool, error)
	NarrowQuery(ctx context.Context, sessionID, query string, firstQuery bool, punishFactor int) (string, bool, error)
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	controller TriagePort
	protocol   Protocol
	sessionID  string

	input      textinput.Model
	viewport   viewport.Model
	transcript []string
	status     string

	firstTurn bool
	punish    int
	done      bool
	ready     bool
}

// New creates a new chat model bound to one session.
func New(controller TriagePort, protocol Protocol, sessionID string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Describe your symptoms and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		controller: controller,
		protocol:   protocol,
		sessionID:  sessionID,
		input:      ti,
		viewport:   vp,
		firstTurn:  true,
		punish:     1,
		status:     "Describe what you are feeling.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ch := chatBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header + status + input frame + spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-ch)
		m.viewport.SetContent(strings.Join(m.transcript, "\n\n"))
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" {
			if m.done {
				return m, tea.Quit
			}
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m = m.sendQuery(q)
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) sendQuery(query string) Model {
	ctx := context.Background()
	var reply string
	var more bool
	var err error
	switch m.protocol {
	case ProtocolNarrow:
		reply, more, err = m.controller.NarrowQuery(ctx, m.sessionID, query, m.firstTurn, m.punish)
	default:
		reply, more, err = m.controller.ExamineQuery(ctx, m.sessionID, query, m.firstTurn)
	}
	if err != nil {
		m.status = "Error: " + err.Error()
		return m
	}
	m.firstTurn = false
	m.transcript = append(m.transcript,
		userStyle.Render("You: ")+query,
		botStyle.Render("Assistant: ")+reply,
	)
	m.input.SetValue("")
	m.viewport.SetContent(strings.Join(m.transcript, "\n\n"))
	m.viewport.GotoBottom()
	if more {
		// Each clarifying turn moves the session closer to a forced final
		// diagnosis.
		if m.punish < 3 {
			m.punish++
		}
		m.status = "The assistant needs more detail."
		return m
	}
	m.done = true
	m.input.Blur()
	m.status = "Session complete. Press Enter to exit."
	return m
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Symptom Triage Assistant")
	chat := chatBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + chat + "\n" + input + "\n" + status
}

var (
	chatBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	botStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
