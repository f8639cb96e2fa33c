package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morphofolio/backend/internal/dashboard"
	"github.com/morphofolio/backend/internal/model"
	"github.com/morphofolio/backend/internal/service"
)

// requestTimeout bounds each call into the message store.
const requestTimeout = 10 * time.Second

// Mode represents the current input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
)

// messagesLoadedMsg carries the result of a List call. On failure messages
// is the store's last-known list.
type messagesLoadedMsg struct {
	messages []model.Message
	err      error
}

// statusUpdatedMsg carries the result of an UpdateStatus call.
type statusUpdatedMsg struct {
	id      string
	message model.Message
	err     error
}

// Model is the terminal dashboard model.
type Model struct {
	svc   service.MessageService
	state dashboard.State

	mode   Mode
	input  textinput.Model
	cursor int

	loading  bool
	inFlight map[string]bool
	notice   string

	width  int
	height int
}

// NewModel creates a dashboard backed by svc.
func NewModel(svc service.MessageService) Model {
	ti := textinput.New()
	ti.Placeholder = "name, email, subject or text"
	ti.Prompt = "/ "
	ti.CharLimit = 128
	ti.Width = 40

	return Model{
		svc:      svc,
		state:    dashboard.New(nil),
		input:    ti,
		loading:  true,
		inFlight: make(map[string]bool),
	}
}

// State returns the current dashboard state.
func (m Model) State() dashboard.State { return m.state }

// Notice returns the current notice line, empty when there is none.
func (m Model) Notice() string { return m.notice }

func (m Model) fetch() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		list, err := svc.List(ctx)
		return messagesLoadedMsg{messages: list, err: err}
	}
}

func (m Model) updateStatus(id string, status model.MessageStatus) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		msg, err := svc.UpdateStatus(ctx, id, status)
		return statusUpdatedMsg{id: id, message: msg, err: err}
	}
}

// target is the message a status action applies to: the open message, or
// the row under the cursor when nothing is open.
func (m Model) target() (model.Message, bool) {
	if sel, ok := m.state.Selected(); ok {
		return sel, true
	}
	visible := m.state.Visible()
	if m.cursor >= 0 && m.cursor < len(visible) {
		return visible[m.cursor], true
	}
	return model.Message{}, false
}

func (m *Model) clampCursor() {
	n := len(m.state.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
