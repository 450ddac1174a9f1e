package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func typeRunes(q *QueryInput, text string) {
	for _, r := range text {
		q.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewQueryInput(t *testing.T) {
	q := NewQueryInput(nil, "Search", "Ask anything")

	assert.True(t, q.Focused())
	assert.Empty(t, q.Value())
	assert.True(t, q.Blank())
	assert.Equal(t, defaultWidth, q.Width())
}

func TestQueryInput_ChangedTracksEdits(t *testing.T) {
	q := NewQueryInput(nil, "Search", "")

	typeRunes(q, "go")
	assert.Equal(t, "go", q.Value())
	assert.True(t, q.Changed())

	q.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.False(t, q.Changed(), "cursor movement is not an edit")

	q.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.True(t, q.Changed())
	assert.Equal(t, "o", q.Value())
}

func TestQueryInput_SetValueIsNotAnEdit(t *testing.T) {
	q := NewQueryInput(nil, "Search", "")
	typeRunes(q, "a")

	q.SetValue("[golang] channels")

	assert.False(t, q.Changed())
	assert.Equal(t, "[golang] channels", q.Value())
}

func TestQueryInput_Query(t *testing.T) {
	q := NewQueryInput(nil, "Search", "")
	q.SetValue("[golang] [docker] cancel context")

	got := q.Query()

	assert.Equal(t, []string{"golang", "docker"}, got.Tags)
	assert.Equal(t, "cancel context", got.Content)
}

func TestQueryInput_Blank(t *testing.T) {
	q := NewQueryInput(nil, "Search", "")

	q.SetValue("   ")
	assert.True(t, q.Blank())

	q.SetValue(" x ")
	assert.False(t, q.Blank())
}

func TestQueryInput_ViewTagChips(t *testing.T) {
	q := NewQueryInput(nil, "Search", "")
	q.SetValue("[golang] cancel")

	assert.NotContains(t, q.View(), "filters")

	q.ShowTagChips(true)
	view := q.View()
	assert.Contains(t, view, "Search")
	assert.Contains(t, view, "filters")
	assert.Contains(t, view, "golang")

	q.SetValue("plain text")
	assert.NotContains(t, q.View(), "filters")
}

func TestQueryInput_SetWidthHasFloor(t *testing.T) {
	q := NewQueryInput(nil, "Search", "")

	q.SetWidth(10)

	assert.Equal(t, 10, q.Width())
	assert.Equal(t, minFieldWidth, q.field.Width)
}

func TestQueryInput_FocusAndReset(t *testing.T) {
	q := NewQueryInput(nil, "Tags", "")
	typeRunes(q, "k8s")

	q.Blur()
	assert.False(t, q.Focused())
	q.Focus()
	assert.True(t, q.Focused())

	q.Reset()
	assert.Empty(t, q.Value())
	assert.False(t, q.Changed())
}
