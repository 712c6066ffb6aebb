// Package keymap defines keybindings for the TUI.
package keymap

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds every binding the explorer uses. Several bindings share
// keys (enter, esc) and are told apart by the view's mode.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding

	// Navigation.
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Cancel key.Binding

	// Query input.
	Submit   key.Binding
	NewQuery key.Binding

	// Explore runs a neighbour query for the highlighted result.
	Explore key.Binding

	// Refresh reloads corpus or settings data.
	Refresh key.Binding
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: bind("q", "quit", "q", "ctrl+c"),
		Help: bind("?", "help", "?"),

		Up:     bind("↑/k", "up", "up", "k"),
		Down:   bind("↓/j", "down", "down", "j"),
		Select: bind("enter", "select", "enter"),
		Back:   bind("esc", "back", "esc"),
		Cancel: bind("esc", "cancel", "esc"),

		Submit:   bind("enter", "query", "enter"),
		NewQuery: bind("n", "new query", "n", "/"),

		Explore: bind("enter", "explore word", "enter"),
		Refresh: bind("r", "refresh", "r"),
	}
}

// ShortHelp is shown in the status line.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// ResultsHelp lists the keys available while browsing results.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.NewQuery, k.Up, k.Explore, k.Back}
}

// FullHelp groups bindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Submit, k.Back, k.Cancel},
		{k.NewQuery, k.Explore, k.Refresh},
		{k.Help, k.Quit},
	}
}

// Matches reports whether keyStr is one of binding's keys.
func Matches(keyStr string, binding key.Binding) bool {
	return slices.Contains(binding.Keys(), keyStr)
}
