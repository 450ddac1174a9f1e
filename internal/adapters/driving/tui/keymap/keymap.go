// Package keymap holds the TUI key bindings and the hint sets shown for
// each screen.
package keymap

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap is every binding the TUI reacts to.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	// Search runs the full search for the typed query.
	Search key.Binding

	Up   key.Binding
	Down key.Binding

	// Select opens the highlighted row.
	Select key.Binding

	// NewSearch returns focus to the query input.
	NewSearch key.Binding

	// Thread actions. Votes and Accept apply to the highlighted post.
	UpVote   key.Binding
	DownVote key.Binding
	Accept   key.Binding
	Reply    key.Binding
	Submit   key.Binding
	Refresh  key.Binding
}

func bind(label, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:      bind("q", "quit", "q", "ctrl+c"),
		Help:      bind("?", "help", "?"),
		Back:      bind("esc", "back", "esc"),
		Search:    bind("enter", "search", "enter"),
		Up:        bind("↑/k", "up", "up", "k"),
		Down:      bind("↓/j", "down", "down", "j"),
		Select:    bind("enter", "open", "enter"),
		NewSearch: bind("/", "new search", "/", "n"),
		UpVote:    bind("+", "upvote", "+", "="),
		DownVote:  bind("-", "downvote", "-"),
		Accept:    bind("a", "accept", "a"),
		Reply:     bind("r", "reply", "r"),
		Submit:    bind("ctrl+s", "send", "ctrl+s"),
		Refresh:   bind("ctrl+r", "reload", "ctrl+r"),
	}
}

// ShortHelp is shown while typing a query.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Down, k.Back}
}

// ResultsHelp is shown while moving through results.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.NewSearch, k.Up, k.Select, k.Back}
}

// ThreadHelp is shown on a question thread.
func (k *KeyMap) ThreadHelp() []key.Binding {
	return []key.Binding{k.UpVote, k.DownVote, k.Accept, k.Reply, k.Back}
}

// ReplyHelp is shown while writing an answer.
func (k *KeyMap) ReplyHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Back}
}

// FullHelp groups every binding by screen.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Search, k.NewSearch, k.Back},
		{k.UpVote, k.DownVote, k.Accept, k.Reply, k.Submit, k.Refresh},
		{k.Help, k.Quit},
	}
}

// Matches reports whether keyStr, as produced by tea.KeyMsg.String, triggers
// binding. Disabled bindings never match.
func Matches(keyStr string, binding key.Binding) bool {
	return binding.Enabled() && slices.Contains(binding.Keys(), keyStr)
}
