package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestStyles_VoteCount(t *testing.T) {
	s := DefaultStyles()

	assert.Contains(t, s.VoteCount(3), "+3")
	assert.Contains(t, s.VoteCount(0), "+0")
	assert.Contains(t, s.VoteCount(-2), "-2")
}

func TestStyles_TagChip(t *testing.T) {
	assert.Contains(t, DefaultStyles().TagChip("golang"), "[golang]")
}

func TestStyles_Bounty(t *testing.T) {
	s := DefaultStyles()

	assert.Empty(t, s.Bounty(0))
	assert.Empty(t, s.Bounty(-5))
	assert.Contains(t, s.Bounty(50), "50 coins")
}
