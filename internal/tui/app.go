package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morphofolio/backend/internal/service"
)

// Run starts the dashboard and blocks until the user quits.
func Run(svc service.MessageService) error {
	p := tea.NewProgram(NewModel(svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
