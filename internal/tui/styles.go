package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/morphofolio/backend/internal/model"
)

var (
	Primary   = lipgloss.Color("#4ECDC4")
	Unread    = lipgloss.Color("#FFB347")
	Read      = lipgloss.Color("#6C9BD2")
	Replied   = lipgloss.Color("#95E1A3")
	Danger    = lipgloss.Color("#FF6B6B")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	StatStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(TextMuted)

	TabActiveStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Underline(true).
			Foreground(Primary)

	RowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	RowCursorStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Background(Surface).
			Bold(true)

	DetailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true).
			Padding(0, 1)

	MutedStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)
)

// StatusBadge renders a colored status label.
func StatusBadge(s model.MessageStatus) string {
	var c lipgloss.Color
	switch s {
	case model.StatusUnread:
		c = Unread
	case model.StatusRead:
		c = Read
	case model.StatusReplied:
		c = Replied
	default:
		c = TextMuted
	}
	return lipgloss.NewStyle().Foreground(c).Bold(s == model.StatusUnread).Render(string(s))
}
