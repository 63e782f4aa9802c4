package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Scopes reported by tabs. A binding with no scopes applies everywhere.
const (
	scopeLoading = "loading"
	scopeList    = "list"
	scopeDetail  = "detail"
	scopeError   = "error"
	scopeJump    = "jump"
)

type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if b.Description != "" && scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

func (r *KeyRegistry) IsAction(msg tea.KeyMsg, action, scope string) bool {
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		if b.Action != action || !scopeMatch(scope, b.Scopes) {
			continue
		}
		for _, k := range b.Keys {
			if normalizeKey(k) == pressed {
				return true
			}
		}
	}
	return false
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == "*" || s == scope {
			return true
		}
	}
	return false
}

var browseScopes = []string{scopeLoading, scopeList, scopeDetail, scopeError}

func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"k", "up"}, Action: "up", Description: "up", Scopes: []string{scopeList}},
		{Keys: []string{"j", "down"}, Action: "down", Description: "down", Scopes: []string{scopeList}},
		{Keys: []string{"enter"}, Action: "select", Description: "open", Scopes: []string{scopeList}},
		{Keys: []string{"/"}, Action: "jump", Description: "jump", Scopes: []string{scopeList}},
		{Keys: []string{"esc", "backspace"}, Action: "back", Description: "back", Scopes: []string{scopeDetail}},
		{Keys: []string{"enter"}, Action: "jump-accept", Description: "go", Scopes: []string{scopeJump}},
		{Keys: []string{"esc"}, Action: "jump-cancel", Description: "cancel", Scopes: []string{scopeJump}},
		{Keys: []string{"r"}, Action: "refresh", Description: "refresh", Scopes: browseScopes},
		{Keys: []string{"tab"}, Action: "next-tab", Description: "next tab", Scopes: browseScopes},
		{Keys: []string{"1"}, Action: "switch-tab-1", Scopes: browseScopes},
		{Keys: []string{"2"}, Action: "switch-tab-2", Scopes: browseScopes},
		{Keys: []string{"q"}, Action: "quit", Description: "quit", Scopes: browseScopes},
	}
}
