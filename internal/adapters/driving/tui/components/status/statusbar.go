// Package status renders the one-line bar at the bottom of each view.
package status

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/keymap"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/styles"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

// State selects the left-hand text and the key hints on the right.
type State string

const (
	StateReady     State = "ready"
	StateSearching State = "searching"
	StateResults   State = "results"
	StateError     State = "error"
	StateThread    State = "thread"
	StateReplying  State = "replying"
)

// Bar shows what the view is doing, who is signed in and which keys apply.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	help    help.Model
	state   State
	message string
	user    string
	count   int
	more    bool
	width   int
}

// NewBar creates a bar in StateReady.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	h := help.New()
	h.ShortSeparator = " · "
	h.Styles.ShortKey = s.Normal
	h.Styles.ShortDesc = s.Muted
	h.Styles.ShortSeparator = s.Muted

	return &Bar{styles: s, keymap: km, help: h, state: StateReady, width: 80}
}

// ShowSearch derives the bar from a search field snapshot. more marks a
// result page that may continue past what is shown.
func (b *Bar) ShowSearch(st domain.SearchState, more bool) {
	b.message = ""
	b.count = len(st.Results)
	b.more = more

	switch {
	case st.Phase == domain.SearchPhaseIdle:
		b.state = StateReady
		b.count = 0
		b.more = false
	case st.Phase == domain.SearchPhasePendingDebounce || st.Phase == domain.SearchPhaseLoading:
		b.state = StateSearching
	case st.Err != nil:
		b.state = StateError
		b.message = st.Err.Error()
	default:
		b.state = StateResults
	}
}

// View renders the bar at the configured width.
func (b *Bar) View() string {
	left := b.status()
	if b.user != "" {
		left += b.styles.Muted.Render(" · " + b.user)
	}

	b.help.Width = max(b.width-lipgloss.Width(left)-4, 0)
	right := b.help.ShortHelpView(b.hints())

	gap := max(b.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return b.styles.StatusBar.Width(b.width).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, left, lipgloss.NewStyle().Width(gap).Render(""), right),
	)
}

func (b *Bar) status() string {
	switch b.state {
	case StateSearching:
		return b.styles.Muted.Render("Searching...")
	case StateError:
		if b.message == "" {
			return b.styles.Error.Render("Error")
		}
		return b.styles.Error.Render("Error: " + b.message)
	case StateThread, StateReplying:
		if b.message == "" {
			return b.styles.Normal.Render("Thread")
		}
		return b.styles.Normal.Render(b.message)
	case StateResults:
		return b.styles.Normal.Render(b.resultText())
	}
	if b.message != "" {
		return b.styles.Normal.Render(b.message)
	}
	return b.styles.Muted.Render("Ready")
}

func (b *Bar) resultText() string {
	switch {
	case b.count == 0:
		return "No results"
	case b.count == 1 && !b.more:
		return "1 result"
	case b.more:
		return fmt.Sprintf("%d+ results", b.count)
	}
	return fmt.Sprintf("%d results", b.count)
}

func (b *Bar) hints() []key.Binding {
	switch b.state {
	case StateThread:
		return b.keymap.ThreadHelp()
	case StateReplying:
		return b.keymap.ReplyHelp()
	case StateResults:
		if b.count > 0 {
			return b.keymap.ResultsHelp()
		}
	}
	return b.keymap.ShortHelp()
}

// SetState sets the state directly.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// SetMessage sets the text shown for the thread and error states.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetUser sets the signed-in name; empty hides it.
func (b *Bar) SetUser(user string) {
	b.user = user
}

// User returns the displayed name.
func (b *Bar) User() string {
	return b.user
}

// SetResultCount sets the number shown in StateResults.
func (b *Bar) SetResultCount(count int) {
	b.count = count
}

// ResultCount returns the displayed result count.
func (b *Bar) ResultCount() int {
	return b.count
}

// SetWidth sets the rendered width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the rendered width.
func (b *Bar) Width() int {
	return b.width
}

// Clear returns to StateReady, keeping the user.
func (b *Bar) Clear() {
	b.state = StateReady
	b.message = ""
	b.count = 0
	b.more = false
}
