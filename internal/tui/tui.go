// Package tui is the interactive roster: member list with keyboard drag and
// drop, member detail/edit, add-member form and tag management.
package tui

import (
	"log/slog"

	"clubroster/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	// AvatarMaxPixels bounds embedded avatar images (0 disables scaling).
	AvatarMaxPixels int
	// MarkdownStyle forces a glamour style; empty follows the terminal background.
	MarkdownStyle string
	Logger        *slog.Logger
}

func Run(st *store.Store, opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()

	m, err := newAppModel(st, opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
