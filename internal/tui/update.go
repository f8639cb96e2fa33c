package tui

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morphofolio/backend/internal/dashboard"
	"github.com/morphofolio/backend/internal/model"
	"github.com/morphofolio/backend/internal/service"
)

// Init starts the first load.
func (m Model) Init() tea.Cmd {
	return m.fetch()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case messagesLoadedMsg:
		m.loading = false
		m.state = m.state.ReplaceMessages(msg.messages)
		if msg.err != nil {
			slog.Warn("dashboard refresh failed", "error", msg.err)
			m.notice = "Couldn't load messages; showing the last known list."
		}
		m.clampCursor()
		return m, nil

	case statusUpdatedMsg:
		delete(m.inFlight, msg.id)
		if msg.err != nil {
			slog.Warn("dashboard status update failed", "message_id", msg.id, "error", msg.err)
			if errors.Is(msg.err, service.ErrMessageNotFound) {
				m.notice = "That message no longer exists."
			} else {
				m.notice = "Couldn't update the message status."
			}
			return m, nil
		}
		m.state = m.state.ApplyStatus(msg.message)
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if m.mode == ModeSearch {
			return m.updateSearch(msg)
		}
		return m.handleNormalKeys(msg)
	}
	return m, nil
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.state.Visible())-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.Select):
		visible := m.state.Visible()
		if m.cursor < len(visible) {
			m.state = m.state.Select(visible[m.cursor].ID)
		}

	case key.Matches(msg, keys.Search):
		m.mode = ModeSearch
		m.input.SetValue(m.state.Search())
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, keys.NextStatus):
		m.state = m.state.WithStatusFilter(m.state.StatusFilter().Next())
		m.cursor = 0

	case key.Matches(msg, keys.MarkRead):
		return m.markStatus(model.StatusRead)

	case key.Matches(msg, keys.MarkReplied):
		return m.markStatus(model.StatusReplied)

	case key.Matches(msg, keys.Refresh):
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, m.fetch()

	case key.Matches(msg, keys.Clear):
		switch {
		case m.notice != "":
			m.notice = ""
		case m.state.FiltersActive():
			m.state = m.state.ClearFilters()
			m.input.SetValue("")
			m.cursor = 0
		default:
			m.state = m.state.ClearSelection()
		}
	}
	return m, nil
}

// markStatus issues a status update unless one is already running for the
// same message or the status is not offered for it.
func (m Model) markStatus(status model.MessageStatus) (tea.Model, tea.Cmd) {
	target, ok := m.target()
	if !ok || m.inFlight[target.ID] || !offers(target, status) {
		return m, nil
	}
	m.inFlight[target.ID] = true
	return m, m.updateStatus(target.ID, status)
}

func offers(msg model.Message, status model.MessageStatus) bool {
	for _, s := range dashboard.Actions(msg) {
		if s == status {
			return true
		}
	}
	return false
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.input.Blur()
		m.input.SetValue("")
		m.state = m.state.WithSearch("")
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.state = m.state.WithSearch(m.input.Value())
	m.cursor = 0
	return m, cmd
}

func (m Model) statusLine() string {
	if m.loading {
		return "loading…"
	}
	if n := len(m.inFlight); n > 0 {
		return fmt.Sprintf("saving %d…", n)
	}
	return ""
}
