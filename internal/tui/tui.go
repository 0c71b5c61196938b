package tui

import (
	"os"

	"lifeline-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(dir string, db *store.DB) error {
	return RunWithWorkspace(dir, db, "")
}

func RunWithWorkspace(dir string, db *store.DB, workspace string) error {
	applyConfigPreferences()
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference()

	m := newAppModel(dir, workspace, db)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// applyConfigPreferences promotes persisted appearance settings to the env
// defaults the theme/glyph helpers read, without overriding explicit env vars.
func applyConfigPreferences() {
	cfg, err := store.LoadConfig()
	if err != nil || cfg.TUI == nil {
		return
	}
	if cfg.TUI.Theme != "" && os.Getenv("LIFELINE_TUI_THEME") == "" {
		_ = os.Setenv("LIFELINE_TUI_THEME", cfg.TUI.Theme)
	}
	if cfg.TUI.Glyphs != "" && os.Getenv("LIFELINE_TUI_GLYPHS") == "" {
		_ = os.Setenv("LIFELINE_TUI_GLYPHS", cfg.TUI.Glyphs)
	}
}
