// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/styles"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

// MoreLabel is the row that expands a quick search into a full one.
const MoreLabel = "View more results"

type rowKind int

const (
	rowResult rowKind = iota
	rowMore
	rowHint
)

type row struct {
	kind  rowKind
	index int
}

// ResultList displays search results, an optional "more" row and query hints.
// Hints are shown only while there are no results.
type ResultList struct {
	results  []domain.SearchResult
	hints    []string
	more     bool
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

func (r *ResultList) rows() []row {
	rows := make([]row, 0, len(r.results)+len(r.hints)+1)
	for i := range r.results {
		rows = append(rows, row{kind: rowResult, index: i})
	}
	if len(r.results) > 0 && r.more {
		rows = append(rows, row{kind: rowMore})
	}
	if len(r.results) == 0 {
		for i := range r.hints {
			rows = append(rows, row{kind: rowHint, index: i})
		}
	}
	return rows
}

// View renders the result list.
func (r *ResultList) View() string {
	rows := r.rows()
	if len(rows) == 0 {
		return ""
	}

	lines := make([]string, 0, len(rows)+2)
	if len(r.results) == 0 {
		lines = append(lines, r.styles.Subtitle.Render("Recent searches"), "")
	}

	// Each result takes two lines.
	visible := (r.height - 2) / 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := start + visible
	if end > len(rows) {
		end = len(rows)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderRow(i, rows[i]))
	}
	return strings.Join(lines, "\n")
}

func (r *ResultList) renderRow(pos int, rw row) string {
	indicator := "  "
	if pos == r.selected {
		indicator = "> "
	}

	switch rw.kind {
	case rowMore:
		if pos == r.selected {
			return r.styles.Selected.Render(indicator + MoreLabel)
		}
		return r.styles.Subtitle.Render(indicator + MoreLabel)
	case rowHint:
		if pos == r.selected {
			return r.styles.Selected.Render(indicator + r.hints[rw.index])
		}
		return r.styles.Muted.Render(indicator + r.hints[rw.index])
	}

	return r.renderResult(pos, &r.results[rw.index])
}

func (r *ResultList) renderResult(pos int, result *domain.SearchResult) string {
	indicator := "  "
	if pos == r.selected {
		indicator = "> "
	}

	title := result.Title
	if result.Kind == domain.ResultKindTag {
		title = "[" + title + "]"
	}
	if title == "" {
		title = "(Untitled)"
	}
	maxTitle := r.width - 14
	if maxTitle < 10 {
		maxTitle = 10
	}
	if len(title) > maxTitle {
		title = title[:maxTitle-3] + "..."
	}

	if result.Kind == domain.ResultKindTag {
		if pos == r.selected {
			return r.styles.Selected.Render(indicator + title)
		}
		return r.styles.Tag.Render(indicator + title)
	}

	votes := fmt.Sprintf("%+d", result.Votes)
	var titleLine string
	if pos == r.selected {
		titleLine = r.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxTitle, title, votes))
	} else {
		titleLine = r.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxTitle, title)) +
			r.styles.VoteCount(result.Votes)
	}

	meta := make([]string, 0, 4)
	if result.CreatedBy != "" {
		meta = append(meta, r.styles.Muted.Render(result.CreatedBy))
	}
	for _, t := range result.Tags {
		meta = append(meta, r.styles.TagChip(t))
	}
	if coins := r.styles.Bounty(result.Bounty); coins != "" {
		meta = append(meta, coins)
	}
	if result.Answered {
		meta = append(meta, r.styles.Success.Render("answered"))
	}
	return titleLine + "\n    " + strings.Join(meta, " ")
}

// SetResults replaces the results and resets the selection.
func (r *ResultList) SetResults(results []domain.SearchResult) {
	r.results = results
	r.selected = 0
}

// Results returns the current results.
func (r *ResultList) Results() []domain.SearchResult {
	return r.results
}

// SetMore toggles the "more" row after the results.
func (r *ResultList) SetMore(more bool) {
	r.more = more
	r.clamp()
}

// HasMore reports whether the "more" row is shown.
func (r *ResultList) HasMore() bool {
	return r.more && len(r.results) > 0
}

// SetHints sets the queries offered while there are no results.
func (r *ResultList) SetHints(hints []string) {
	r.hints = hints
	r.clamp()
}

// Hints returns the current hints.
func (r *ResultList) Hints() []string {
	return r.hints
}

// Selected returns the index of the selected row.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected row.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < r.Count() {
		r.selected = index
	}
}

// SelectedResult returns the selected result, or nil if another row is selected.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	rows := r.rows()
	if r.selected < 0 || r.selected >= len(rows) || rows[r.selected].kind != rowResult {
		return nil
	}
	return &r.results[rows[r.selected].index]
}

// MoreSelected reports whether the "more" row is selected.
func (r *ResultList) MoreSelected() bool {
	rows := r.rows()
	return r.selected >= 0 && r.selected < len(rows) && rows[r.selected].kind == rowMore
}

// SelectedHint returns the selected hint, if a hint is selected.
func (r *ResultList) SelectedHint() (string, bool) {
	rows := r.rows()
	if r.selected < 0 || r.selected >= len(rows) || rows[r.selected].kind != rowHint {
		return "", false
	}
	return r.hints[rows[r.selected].index], true
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < r.Count()-1 {
		r.selected++
	}
}

// AtTop reports whether the first row is selected.
func (r *ResultList) AtTop() bool {
	return r.selected == 0
}

func (r *ResultList) clamp() {
	if n := r.Count(); r.selected >= n {
		r.selected = n - 1
	}
	if r.selected < 0 {
		r.selected = 0
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of selectable rows.
func (r *ResultList) Count() int {
	return len(r.rows())
}

// IsEmpty returns whether the list has no rows.
func (r *ResultList) IsEmpty() bool {
	return r.Count() == 0
}
