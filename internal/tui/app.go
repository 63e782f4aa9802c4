package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// App ties the directory tabs together.
type App struct {
	ctx       context.Context
	tabs      []Tab
	activeTab int
	keys      *KeyRegistry
	spinner   spinner.Model
	width     int
	height    int
	quitting  bool
}

// New builds the App. startTab is a tab ID; unknown IDs fall back to the first tab.
func New(ctx context.Context, tabs []Tab, startTab string) *App {
	a := &App{
		ctx:     ctx,
		tabs:    tabs,
		keys:    NewKeyRegistry(DefaultKeyBindings()),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		width:   100,
		height:  32,
	}
	for i, t := range tabs {
		if t.ID() == startTab {
			a.activeTab = i
		}
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.mountActive())
}

// Close unmounts every tab, cancelling in-flight fetches.
func (a *App) Close() {
	for _, t := range a.tabs {
		t.Unmount()
	}
}

func (a *App) ActiveTab() Tab {
	if len(a.tabs) == 0 {
		return nil
	}
	return a.tabs[a.activeTab]
}

func (a *App) ActiveScope() string {
	if t := a.ActiveTab(); t != nil {
		return t.Scope()
	}
	return scopeList
}

func (a *App) mountActive() tea.Cmd {
	t := a.ActiveTab()
	if t == nil {
		return nil
	}
	return t.Mount(a.ctx)
}

// SwitchTab activates tabs[index], mounting it the first time it is shown.
func (a *App) SwitchTab(index int) tea.Cmd {
	if index < 0 || index >= len(a.tabs) {
		return nil
	}
	a.activeTab = index
	return a.mountActive()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	case tea.KeyMsg:
		return a, a.handleKey(m)
	}

	cmds := make([]tea.Cmd, 0, len(a.tabs))
	for _, t := range a.tabs {
		if cmd := t.Update(a, msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(m tea.KeyMsg) tea.Cmd {
	if m.String() == "ctrl+c" {
		a.quitting = true
		return tea.Quit
	}
	t := a.ActiveTab()
	if t == nil {
		return tea.Quit
	}
	if t.Capturing() {
		_, cmd := t.HandleKey(a, m)
		return cmd
	}

	scope := t.Scope()
	if handled, cmd := t.HandleKey(a, m); handled {
		return cmd
	}
	switch {
	case a.keys.IsAction(m, "quit", scope):
		a.quitting = true
		return tea.Quit
	case a.keys.IsAction(m, "refresh", scope):
		return t.Remount(a.ctx)
	case a.keys.IsAction(m, "next-tab", scope):
		return a.SwitchTab((a.activeTab + 1) % len(a.tabs))
	}
	for i := range a.tabs {
		if a.keys.IsAction(m, fmt.Sprintf("switch-tab-%d", i+1), scope) {
			return a.SwitchTab(i)
		}
	}
	return nil
}

func (a *App) View() string {
	if a.quitting {
		return "Goodbye\n"
	}
	header := a.renderHeader()
	status := a.renderStatusBar()
	footer := a.renderFooter()
	bodyHeight := max(0, a.height-lipgloss.Height(header)-lipgloss.Height(status)-lipgloss.Height(footer))

	var body string
	if t := a.ActiveTab(); t != nil && bodyHeight > 0 {
		body = t.View(a, max(1, a.width-2), bodyHeight)
	}
	body = fitHeight(body, bodyHeight)
	view := strings.Join([]string{header, status, body, footer}, "\n")
	return appStyle.Width(max(1, a.width)).MaxWidth(max(1, a.width)).Render(view)
}

func (a *App) renderHeader() string {
	tabs := make([]string, 0, len(a.tabs))
	for i, t := range a.tabs {
		label := fmt.Sprintf("%d:%s", i+1, t.Title())
		if i == a.activeTab {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	left := headerAppStyle.Render("Robotics Directory")
	right := tabSepStyle.Render(" ") + strings.Join(tabs, tabSepStyle.Render("│"))
	gap := 1
	if w := ansi.StringWidth(left) + ansi.StringWidth(right); w+1 < a.width {
		gap = a.width - w
	}
	return renderBar(headerBarStyle, max(1, a.width), left+tabSepStyle.Render(strings.Repeat(" ", gap))+right)
}

// statusLine reports the active tab's status.
func (a *App) statusLine() (string, bool) {
	t := a.ActiveTab()
	if t == nil {
		return "", false
	}
	return t.Status()
}

func (a *App) renderStatusBar() string {
	msg, isErr := a.statusLine()
	msg = strings.TrimSpace(msg)
	if msg == "" {
		msg = "Ready"
	}
	if isErr {
		return renderBar(statusErrBarStyle, max(1, a.width), msg)
	}
	return renderBar(statusBarStyle, max(1, a.width), msg)
}

func (a *App) renderFooter() string {
	bindings := a.keys.BindingsForScope(a.ActiveScope())
	keyStyle := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Background(colorMantle)
	descStyle := lipgloss.NewStyle().Foreground(colorMuted).Background(colorMantle)
	space := lipgloss.NewStyle().Background(colorMantle).Render(" ")
	sep := lipgloss.NewStyle().Background(colorMantle).Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if len(b.Keys) == 0 {
			continue
		}
		h := key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Description)).Help()
		parts = append(parts, keyStyle.Render(h.Key)+space+descStyle.Render(h.Desc))
	}
	line := strings.Join(parts, sep)
	if line == "" {
		line = descStyle.Render("type to jump")
	}
	return renderBar(footerStyle, max(1, a.width), line)
}

func renderBar(style lipgloss.Style, width int, text string) string {
	line := ansi.Truncate(strings.ReplaceAll(text, "\n", " "), width, "")
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return style.Width(width).MaxWidth(width).Render(line)
}

func fitHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
