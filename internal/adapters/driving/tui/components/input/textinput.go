// Package input provides the query field used by the search and tags views.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/styles"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

const (
	maxQueryLength = 256
	minFieldWidth  = 20
	defaultWidth   = 60
)

// QueryInput is a labelled single-line query field. It remembers whether
// the last Update edited the text so views can forward only real edits
// to their search controller.
type QueryInput struct {
	field   textinput.Model
	styles  *styles.Styles
	label   string
	width   int
	changed bool
	chips   bool
}

// NewQueryInput creates a focused field shown after label.
func NewQueryInput(s *styles.Styles, label, placeholder string) *QueryInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	field := textinput.New()
	field.Prompt = "› "
	field.Placeholder = placeholder
	field.CharLimit = maxQueryLength
	field.Focus()

	q := &QueryInput{field: field, styles: s, label: label}
	q.SetWidth(defaultWidth)
	return q
}

// ShowTagChips toggles the row of [label] filters rendered below the field.
func (q *QueryInput) ShowTagChips(show bool) {
	q.chips = show
}

// Init starts the cursor blinking.
func (q *QueryInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards msg to the field and records whether the text changed.
func (q *QueryInput) Update(msg tea.Msg) (*QueryInput, tea.Cmd) {
	before := q.field.Value()
	var cmd tea.Cmd
	q.field, cmd = q.field.Update(msg)
	q.changed = q.field.Value() != before
	return q, cmd
}

// Changed reports whether the most recent Update edited the text.
func (q *QueryInput) Changed() bool {
	return q.changed
}

// View renders the label, the field and, when enabled, the active tag filters.
func (q *QueryInput) View() string {
	label := q.styles.Title.Render(q.label)
	field := q.styles.InputField.Render(q.field.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	row := lipgloss.JoinHorizontal(lipgloss.Center, label, " ", field)

	if !q.chips {
		return row
	}
	tags := q.Query().Tags
	if len(tags) == 0 {
		return row
	}
	chips := make([]string, len(tags))
	for i, t := range tags {
		chips[i] = q.styles.TagChip(t)
	}
	return row + "\n" + q.styles.Muted.Render("filters ") + strings.Join(chips, " ")
}

// Value returns the raw text.
func (q *QueryInput) Value() string {
	return q.field.Value()
}

// Query parses the text into free text and tag filters.
func (q *QueryInput) Query() domain.SearchQuery {
	return domain.ParseSearchQuery(q.field.Value())
}

// Blank reports whether the text holds nothing worth searching for.
func (q *QueryInput) Blank() bool {
	return domain.NormalizeQuery(q.field.Value()) == ""
}

// SetValue replaces the text and puts the cursor after it.
// It does not count as an edit for Changed.
func (q *QueryInput) SetValue(value string) {
	q.field.SetValue(value)
	q.field.CursorEnd()
	q.changed = false
}

// Focus gives the field keyboard focus.
func (q *QueryInput) Focus() tea.Cmd {
	return q.field.Focus()
}

// Blur removes keyboard focus.
func (q *QueryInput) Blur() {
	q.field.Blur()
}

// Focused reports whether the field has keyboard focus.
func (q *QueryInput) Focused() bool {
	return q.field.Focused()
}

// SetWidth sizes the field to fit width alongside its label and border.
func (q *QueryInput) SetWidth(width int) {
	q.width = width
	frame := q.styles.InputField.GetHorizontalFrameSize()
	fieldWidth := width - lipgloss.Width(q.label) - lipgloss.Width(q.field.Prompt) - frame - 1
	q.field.Width = max(fieldWidth, minFieldWidth)
}

// Width returns the width last passed to SetWidth.
func (q *QueryInput) Width() int {
	return q.width
}

// Reset clears the text.
func (q *QueryInput) Reset() {
	q.field.Reset()
	q.changed = false
}
