package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flight/internal/core"
	"github.com/vovakirdan/tui-flight/internal/session"
	"github.com/vovakirdan/tui-flight/internal/sim"
)

// DefaultGameOverHold is how long the game-over screen stays up before
// the program exits on its own. Any key exits sooner.
const DefaultGameOverHold = 2 * time.Second

// Sounder plays feedback tones. Implementations must not block.
type Sounder interface {
	Jump()
	Crash()
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithSounder enables sound feedback.
func WithSounder(s Sounder) ModelOption {
	return func(m *Model) {
		m.sounder = s
	}
}

// WithPollInterval sets how often the session is stepped.
func WithPollInterval(d time.Duration) ModelOption {
	return func(m *Model) {
		if d > 0 {
			m.poll = d
		}
	}
}

// WithGameOverHold sets how long the game-over screen is shown.
func WithGameOverHold(d time.Duration) ModelOption {
	return func(m *Model) {
		m.hold = d
	}
}

// WithOnFinish registers a callback run once when the session ends.
func WithOnFinish(fn func(session.Result)) ModelOption {
	return func(m *Model) {
		m.onFinish = fn
	}
}

// WithTitle sets the header shown above the field.
func WithTitle(title string) ModelOption {
	return func(m *Model) {
		m.title = title
	}
}

// Model is the Bubble Tea model driving one flight session.
// Key presses are queued and applied on the next tick, so the session
// still sees input, advance, render and collision in that order.
type Model struct {
	sess     *session.Session
	keys     KeyMap
	help     help.Model
	sounder  Sounder
	onFinish func(session.Result)
	poll     time.Duration
	hold     time.Duration
	title    string

	pendingJump bool
	finished    bool
	quitting    bool
	width       int
	height      int
}

// NewModel creates a model for sess.
func NewModel(sess *session.Session, opts ...ModelOption) Model {
	m := Model{
		sess: sess,
		keys: DefaultKeyMap(),
		help: help.New(),
		poll: session.DefaultPollTimeout,
		hold: DefaultGameOverHold,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.poll)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()

	case gameOverMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.sess.Phase() == session.PhaseGameOver {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.sess.Apply(core.ActionQuit)
		m.finish()
		m.quitting = true
		return m, tea.Quit
	case core.ActionJump:
		m.pendingJump = true
	}
	return m, nil
}

// handleTick steps the session once.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.sess.Phase() != session.PhaseRunning {
		return m, nil
	}

	action := core.ActionNone
	if m.pendingJump {
		action = core.ActionJump
		m.pendingJump = false
	}

	jumps := m.sess.JumpCount()
	phase := m.sess.Step(action)
	if m.sounder != nil && m.sess.JumpCount() > jumps {
		m.sounder.Jump()
	}

	if phase == session.PhaseGameOver {
		if m.sounder != nil {
			m.sounder.Crash()
		}
		m.finish()
		return m, holdCmd(m.hold)
	}

	return m, tickCmd(m.poll)
}

func (m *Model) finish() {
	if m.finished {
		return
	}
	m.finished = true
	if m.onFinish != nil {
		m.onFinish(m.sess.Result())
	}
}

// Session returns the driven session.
func (m Model) Session() *session.Session {
	return m.sess
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting && m.sess.Phase() != session.PhaseGameOver {
		return ""
	}

	frame := m.sess.Frame()
	if frame == nil {
		frame = sim.Compose(m.sess.State(), m.sess.Params())
	}

	var sb strings.Builder
	if m.title != "" {
		sb.WriteString(m.title)
		sb.WriteRune('\n')
	}
	sb.WriteString(RenderFrame(frame))
	sb.WriteRune('\n')

	if m.sess.Phase() == session.PhaseGameOver {
		sb.WriteString(GameOverLine(m.sess.Score()))
		return sb.String()
	}

	sb.WriteString(ScoreLine(m.sess.Score()))
	if warn := m.sizeWarning(); warn != "" {
		sb.WriteString("  ")
		sb.WriteString(warnStyle.Render(warn))
	}
	sb.WriteRune('\n')
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

// sizeWarning reports a terminal smaller than the field.
func (m Model) sizeWarning() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	p := m.sess.Params()
	if m.width < p.Width || m.height < p.Height+2 {
		return fmt.Sprintf("terminal %dx%d is smaller than the %dx%d field", m.width, m.height, p.Width, p.Height+2)
	}
	return ""
}

// Run plays sess in the current terminal and returns its result.
func Run(sess *session.Session, opts ...ModelOption) (session.Result, error) {
	p := tea.NewProgram(
		NewModel(sess, opts...),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return sess.Result(), fmt.Errorf("tui: %w", err)
	}
	if m, ok := final.(Model); ok {
		return m.Session().Result(), nil
	}
	return sess.Result(), nil
}
