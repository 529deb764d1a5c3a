package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"inventario-cli/internal/api"
	"inventario-cli/internal/auditlog"
)

// Run starts the interactive client. The initial view depends on whether a
// persisted session exists: with a token we go straight to the item list,
// without one we land on the login form.
func Run(client *api.Client, audit auditlog.Log, log zerolog.Logger) error {
	applyColorProfilePreference()
	applyThemePreference()
	m := newAppModel(client, audit, log)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
