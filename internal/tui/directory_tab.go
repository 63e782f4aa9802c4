package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/robodir/internal/directory"
)

// presenter turns records into text for one entity type.
type presenter[T any] struct {
	// noun is the plural used in messages, e.g. "students".
	noun   string
	row    func(T) (title, sub string)
	header func(T) string
	detail func(T) []string
}

// directoryTab renders a directory.Screen: loading, then detail if something is
// selected, otherwise the list.
type directoryTab[T any] struct {
	id      string
	title   string
	screen  *directory.Screen[T]
	present presenter[T]

	jumping bool
	query   string
}

func newDirectoryTab[T any](id, title string, screen *directory.Screen[T], p presenter[T]) *directoryTab[T] {
	return &directoryTab[T]{id: id, title: title, screen: screen, present: p}
}

func (t *directoryTab[T]) ID() string      { return t.id }
func (t *directoryTab[T]) Title() string   { return t.title }
func (t *directoryTab[T]) Mounted() bool   { return t.screen.Mounted() }
func (t *directoryTab[T]) Capturing() bool { return t.jumping }

// Screen exposes the view model, mainly for tests.
func (t *directoryTab[T]) Screen() *directory.Screen[T] { return t.screen }

func (t *directoryTab[T]) Scope() string {
	if t.jumping {
		return scopeJump
	}
	switch t.screen.Phase() {
	case directory.PhaseLoading:
		return scopeLoading
	case directory.PhaseError:
		return scopeError
	}
	if _, ok := t.screen.Selected(); ok {
		return scopeDetail
	}
	return scopeList
}

func (t *directoryTab[T]) Mount(ctx context.Context) tea.Cmd {
	return t.screen.Mount(ctx)
}

func (t *directoryTab[T]) Remount(ctx context.Context) tea.Cmd {
	t.jumping, t.query = false, ""
	return t.screen.Remount(ctx)
}

func (t *directoryTab[T]) Unmount() {
	t.jumping, t.query = false, ""
	t.screen.Unmount()
}

func (t *directoryTab[T]) Update(_ *App, msg tea.Msg) tea.Cmd {
	if loaded, ok := msg.(directory.LoadedMsg[T]); ok {
		t.screen.Apply(loaded)
	}
	return nil
}

// Status is derived from this tab's screen alone, so a result landing on a
// hidden tab never changes what the active tab reports.
func (t *directoryTab[T]) Status() (string, bool) {
	switch t.screen.Phase() {
	case directory.PhaseError:
		return fmt.Sprintf("could not load %s: %v", t.present.noun, t.screen.Err()), true
	case directory.PhaseReady:
		if t.screen.Err() == nil {
			return fmt.Sprintf("%d %s", len(t.screen.Items()), t.present.noun), false
		}
	}
	return "", false
}

func (t *directoryTab[T]) HandleKey(a *App, msg tea.KeyMsg) (bool, tea.Cmd) {
	scope := t.Scope()
	switch scope {
	case scopeJump:
		return t.handleJumpKey(a, msg), nil
	case scopeDetail:
		if a.keys.IsAction(msg, "back", scope) {
			t.screen.Back()
			return true, nil
		}
	case scopeList:
		switch {
		case a.keys.IsAction(msg, "up", scope):
			t.screen.MoveCursor(-1)
			return true, nil
		case a.keys.IsAction(msg, "down", scope):
			t.screen.MoveCursor(1)
			return true, nil
		case a.keys.IsAction(msg, "select", scope):
			t.screen.SelectCursor()
			return true, nil
		case a.keys.IsAction(msg, "jump", scope):
			if len(t.screen.Items()) > 0 {
				t.jumping, t.query = true, ""
			}
			return true, nil
		}
	}
	return false, nil
}

func (t *directoryTab[T]) handleJumpKey(a *App, msg tea.KeyMsg) bool {
	switch {
	case a.keys.IsAction(msg, "jump-accept", scopeJump):
		t.jumping = false
		t.screen.SelectCursor()
	case a.keys.IsAction(msg, "jump-cancel", scopeJump):
		t.jumping, t.query = false, ""
	case msg.Type == tea.KeyBackspace || msg.Type == tea.KeyCtrlH || msg.Type == tea.KeyDelete:
		if r := []rune(t.query); len(r) > 0 {
			t.query = string(r[:len(r)-1])
			t.screen.Jump(t.query)
		}
	case msg.Type == tea.KeySpace:
		t.query += " "
		t.screen.Jump(t.query)
	case msg.Type == tea.KeyRunes:
		t.query += string(msg.Runes)
		t.screen.Jump(t.query)
	}
	return true
}

func (t *directoryTab[T]) View(a *App, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	switch t.screen.Phase() {
	case directory.PhaseLoading:
		return a.spinner.View() + " Loading " + t.present.noun + "..."
	case directory.PhaseError:
		msg := "Could not load " + t.present.noun + "."
		if err := t.screen.Err(); err != nil {
			msg += "\n" + ansi.Truncate(err.Error(), width, "…")
		}
		return errorStyle.Render(msg) + "\n" + rowSubStyle.Render("press r to try again")
	}
	if item, ok := t.screen.Selected(); ok {
		return t.renderDetail(item, width)
	}
	return t.renderList(width, height)
}

func (t *directoryTab[T]) renderDetail(item T, width int) string {
	lines := []string{
		backStyle.Render("← Back"),
		"",
		titleStyle.Render(t.present.header(item)),
	}
	for _, l := range t.present.detail(item) {
		lines = append(lines, ansi.Truncate(l, max(1, width-4), "…"))
	}
	return detailBoxStyle.Width(max(1, width-2)).Render(strings.Join(lines, "\n"))
}

func (t *directoryTab[T]) renderList(width, height int) string {
	items := t.screen.Items()
	var b strings.Builder
	b.WriteString(titleStyle.Render(t.title))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(rowSubStyle.Render("No " + t.present.noun + "."))
		return b.String()
	}

	rowsHeight := height - 1
	if t.jumping {
		rowsHeight--
	}
	start, end := visibleWindow(len(items), t.screen.Cursor(), max(1, rowsHeight))
	for i := start; i < end; i++ {
		title, sub := t.present.row(items[i])
		marker := "  "
		style := rowStyle
		if i == t.screen.Cursor() {
			marker = cursorStyle.Render("▶ ")
			style = cursorStyle
		}
		line := marker + style.Render(title)
		if sub != "" {
			line += "  " + rowSubStyle.Render(sub)
		}
		b.WriteString(ansi.Truncate(line, width, "…"))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if t.jumping {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(colorAccent).Render("/"+t.query+"▏"))
	}
	return b.String()
}

// visibleWindow keeps cursor inside a window of size rows over n items.
func visibleWindow(n, cursor, rows int) (int, int) {
	if n <= rows {
		return 0, n
	}
	start := cursor - rows/2
	start = max(0, min(start, n-rows))
	return start, start + rows
}
