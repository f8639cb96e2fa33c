package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morphofolio/backend/internal/dashboard"
	"github.com/morphofolio/backend/internal/model"
)

const timeLayout = "2006-01-02 15:04"

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	if m.mode == ModeSearch {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	} else if term := m.state.Search(); term != "" {
		b.WriteString(MutedStyle.Render(fmt.Sprintf("search: %q", term)))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(NoticeStyle.Render("! " + m.notice + "  (esc to dismiss)"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	list := m.renderList()
	if sel, ok := m.state.Selected(); ok {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", m.renderDetail(sel)))
	} else {
		b.WriteString(list)
	}
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	st := m.state.Stats()
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		StatStyle.Render(fmt.Sprintf("total %d", st.Total)),
		StatStyle.Foreground(Unread).Render(fmt.Sprintf("unread %d", st.Unread)),
		StatStyle.Foreground(Read).Render(fmt.Sprintf("read %d", st.Read)),
		StatStyle.Foreground(Replied).Render(fmt.Sprintf("replied %d", st.Replied)),
	)
	title := HeaderStyle.Render("Messages")
	if line := m.statusLine(); line != "" {
		title += MutedStyle.Render(" " + line)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, stats)
}

func (m Model) renderTabs() string {
	current := m.state.StatusFilter()
	tabs := make([]string, 0, len(model.StatusFilters))
	for _, f := range model.StatusFilters {
		style := TabStyle
		if f == current {
			style = TabActiveStyle
		}
		tabs = append(tabs, style.Render(string(f)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderList() string {
	visible := m.state.Visible()
	if len(visible) == 0 {
		if m.loading {
			return MutedStyle.Render("  loading messages…")
		}
		if m.state.FiltersActive() {
			return MutedStyle.Render("  No messages match. Press esc to clear filters.")
		}
		return MutedStyle.Render("  No messages yet.")
	}

	sel, hasSel := m.state.Selected()
	rows := make([]string, 0, len(visible))
	for i, msg := range visible {
		marker := " "
		if hasSel && sel.ID == msg.ID {
			marker = "›"
		}
		line := fmt.Sprintf("%s %-8s %-20s %s", marker, StatusBadge(msg.Status), truncate(msg.Name, 20), truncate(msg.Subject, 40))
		if i == m.cursor {
			rows = append(rows, RowCursorStyle.Render(line))
		} else {
			rows = append(rows, RowStyle.Render(line))
		}
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderDetail(msg model.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", HeaderStyle.UnsetPadding().Render(msg.Subject))
	fmt.Fprintf(&b, "From: %s <%s>\n", msg.Name, msg.Email)
	fmt.Fprintf(&b, "Received: %s  Status: %s\n", msg.CreatedAt.Local().Format(timeLayout), StatusBadge(msg.Status))
	fmt.Fprintf(&b, "%s\n\n", MutedStyle.Render("Reply: "+dashboard.ReplyURL(msg)))
	b.WriteString(msg.Message)

	if acts := dashboard.Actions(msg); len(acts) > 0 {
		hints := make([]string, 0, len(acts))
		for _, a := range acts {
			switch a {
			case model.StatusRead:
				hints = append(hints, "r: mark read")
			case model.StatusReplied:
				hints = append(hints, "R: mark replied")
			}
		}
		if m.inFlight[msg.ID] {
			hints = append(hints, "saving…")
		}
		b.WriteString("\n\n")
		b.WriteString(MutedStyle.Render(strings.Join(hints, "  ")))
	}

	width := 60
	if m.width > 0 && m.width/2 < width {
		width = m.width / 2
	}
	return DetailStyle.Width(width).Render(b.String())
}

func (m Model) renderHelp() string {
	parts := make([]string, 0, len(keys.help()))
	for _, k := range keys.help() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return HelpStyle.Render(strings.Join(parts, " • "))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
