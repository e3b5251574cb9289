package present

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"slidedeck/internal/deck"
	"slidedeck/internal/domain"
)

func TestTransitionFor(t *testing.T) {
	assert.Equal(t, Transition{Enter: Right, Exit: Left}, TransitionFor(deck.Forward))
	assert.Equal(t, Transition{Enter: Left, Exit: Right}, TransitionFor(deck.Backward))
	assert.Equal(t, 1, Right.Sign())
	assert.Equal(t, -1, Left.Sign())
}

func TestVariantIsDeterministicAndBounded(t *testing.T) {
	for id := -10; id < 50; id++ {
		for n := 1; n < 6; n++ {
			v := Variant(id, n)
			assert.GreaterOrEqual(t, v, 0)
			assert.Less(t, v, n)
			assert.Equal(t, v, Variant(id, n))
		}
	}
	assert.Equal(t, 0, Variant(7, 0))
}

func TestLayoutFor(t *testing.T) {
	assert.True(t, LayoutFor(4).ImageRight)
	assert.False(t, LayoutFor(5).ImageRight)
	assert.Equal(t, -2, LayoutFor(3).Tilt)
	assert.Equal(t, 1, LayoutFor(4).Tilt)
	assert.Equal(t, 3, LayoutFor(5).Tilt)
	assert.Equal(t, LayoutFor(6), LayoutFor(6))
}

func TestSplitTitle(t *testing.T) {
	first, rest := SplitTitle("SOPAN & ETIKA")
	assert.Equal(t, "SOPAN", first)
	assert.Equal(t, "& ETIKA", rest)
	first, rest = SplitTitle("  ")
	assert.Empty(t, first)
	assert.Empty(t, rest)
}

func TestHeading(t *testing.T) {
	assert.Equal(t, "INTERAKSI NYATA", Heading(domain.Slide{Title: "Interaksi Nyata", Type: domain.KindFooter}))
	assert.Equal(t, "SOPAN & ETIKA", Heading(domain.Slide{Title: "sopan & etika", Type: domain.KindHero}))
	assert.Equal(t, "Jejak Digital", Heading(domain.Slide{Title: "Jejak Digital", Type: domain.KindSplit}))
}
