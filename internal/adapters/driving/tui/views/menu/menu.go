// Package menu provides the landing view of the TUI.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/keymap"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/messages"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/styles"
)

// Item is one entry of the menu. Items with Quit set end the program
// instead of switching view.
type Item struct {
	Label       string
	Description string
	Shortcut    string
	View        messages.ViewType
	Quit        bool
}

// DefaultItems returns the entries shown on the landing screen.
func DefaultItems() []Item {
	return []Item{
		{Label: "Search questions", Description: "Find answers, filter with [tag]", Shortcut: "s", View: messages.ViewSearch},
		{Label: "Browse tags", Description: "Popular and matching tags", Shortcut: "t", View: messages.ViewTags},
		{Label: "Help", Description: "Keybindings", Shortcut: "?", View: messages.ViewHelp},
		{Label: "Quit", Shortcut: "q", Quit: true},
	}
}

// View is the landing menu.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	items    []Item
	selected int
	user     string
	width    int
	height   int
	ready    bool
}

// NewView creates the menu with DefaultItems.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{styles: s, keymap: km, items: DefaultItems()}
}

// Init implements the view contract. The menu has no startup work.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update moves the cursor, follows shortcuts and opens the chosen item.
// Navigation wraps at both ends.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, v.keymap.Up):
			v.selected = (v.selected - 1 + len(v.items)) % len(v.items)
			return v, nil
		case keymap.Matches(k, v.keymap.Down):
			v.selected = (v.selected + 1) % len(v.items)
			return v, nil
		case keymap.Matches(k, v.keymap.Select):
			return v, v.open(v.items[v.selected])
		case k == "ctrl+c":
			return v, tea.Quit
		}
		for i, item := range v.items {
			if item.Shortcut == k {
				v.selected = i
				return v, v.open(item)
			}
		}
	}
	return v, nil
}

func (v *View) open(item Item) tea.Cmd {
	if item.Quit {
		return tea.Quit
	}
	target := item.View
	return func() tea.Msg {
		return messages.ViewChanged{View: target}
	}
}

// View renders the menu.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Rocket Fuel"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Questions and answers from your team"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		line := fmt.Sprintf("[%s] %s", item.Shortcut, item.Label)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		if item.Description != "" {
			b.WriteString("  " + v.styles.Muted.Render(item.Description))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.user != "" {
		b.WriteString(v.styles.Success.Render("● ") + v.styles.Muted.Render("Signed in as "+v.user))
	} else {
		b.WriteString(v.styles.Warning.Render("○ Not signed in.") +
			v.styles.Muted.Render(" Run 'rocketfuel login' to post and vote."))
	}
	return b.String()
}

// SetDimensions records the terminal size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// SetUser sets the display name shown in the footer. Empty means signed out.
func (v *View) SetUser(user string) {
	v.user = user
}

// Selected returns the highlighted index.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the menu entries.
func (v *View) Items() []Item {
	return v.items
}
