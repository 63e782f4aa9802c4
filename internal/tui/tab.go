package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Tab is one top-level screen of the App.
type Tab interface {
	ID() string
	Title() string
	// Scope selects the key bindings that apply right now.
	Scope() string
	Mount(ctx context.Context) tea.Cmd
	Remount(ctx context.Context) tea.Cmd
	Unmount()
	Mounted() bool
	// Capturing reports whether the tab wants raw keys (text entry).
	Capturing() bool
	HandleKey(a *App, msg tea.KeyMsg) (bool, tea.Cmd)
	Update(a *App, msg tea.Msg) tea.Cmd
	// Status is the status bar text for this tab and whether it is an error.
	Status() (msg string, isErr bool)
	View(a *App, width, height int) string
}
