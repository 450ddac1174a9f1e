// Package styles holds the Rocket Fuel palette and the lipgloss styles
// built from it, along with small renderers for post metadata.
package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a colour palette.
type Theme struct {
	Accent  lipgloss.Color // titles, cursor, vote counts
	Tag     lipgloss.Color
	Text    lipgloss.Color
	Dim     lipgloss.Color
	Good    lipgloss.Color // accepted answers, positive votes
	Coins   lipgloss.Color // bounties
	Bad     lipgloss.Color // errors, negative votes
	Frame   lipgloss.Color
	Surface lipgloss.Color // status bar and selection text
}

// DefaultTheme returns the dark orange-on-slate palette.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:  lipgloss.Color("#F97316"),
		Tag:     lipgloss.Color("#38BDF8"),
		Text:    lipgloss.Color("#E2E8F0"),
		Dim:     lipgloss.Color("#64748B"),
		Good:    lipgloss.Color("#4ADE80"),
		Coins:   lipgloss.Color("#FACC15"),
		Bad:     lipgloss.Color("#F87171"),
		Frame:   lipgloss.Color("#334155"),
		Surface: lipgloss.Color("#0F172A"),
	}
}

// Styles are the lipgloss styles shared by every view.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Tag      lipgloss.Style

	// Votes colours a non-negative score, Downvoted a negative one.
	Votes     lipgloss.Style
	Downvoted lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Border     lipgloss.Style
}

// NewStyles builds styles from theme, falling back to DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	framed := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Frame)

	return &Styles{
		theme:      theme,
		Title:      fg(theme.Accent).Bold(true),
		Subtitle:   fg(theme.Tag).Bold(true),
		Normal:     fg(theme.Text),
		Muted:      fg(theme.Dim),
		Selected:   fg(theme.Surface).Background(theme.Accent).Bold(true),
		Error:      fg(theme.Bad),
		Success:    fg(theme.Good),
		Warning:    fg(theme.Coins),
		Tag:        fg(theme.Tag),
		Votes:      fg(theme.Accent).Bold(true),
		Downvoted:  fg(theme.Bad).Bold(true),
		InputField: framed.Padding(0, 1),
		StatusBar:  fg(theme.Dim).Background(theme.Surface).Padding(0, 1),
		Border:     framed,
	}
}

// DefaultStyles returns styles for DefaultTheme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// VoteCount renders a signed score such as +3 or -1.
func (s *Styles) VoteCount(votes int) string {
	text := fmt.Sprintf("%+d", votes)
	if votes < 0 {
		return s.Downvoted.Render(text)
	}
	return s.Votes.Render(text)
}

// TagChip renders label the way it is typed in a query.
func (s *Styles) TagChip(label string) string {
	return s.Tag.Render("[" + label + "]")
}

// Bounty renders a coin reward, or nothing when there is none.
func (s *Styles) Bounty(coins int) string {
	if coins <= 0 {
		return ""
	}
	return s.Warning.Render(fmt.Sprintf("%d coins", coins))
}
