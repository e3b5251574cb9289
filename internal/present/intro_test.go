package present

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntroFramePhases(t *testing.T) {
	h := newHarness(t, DefaultIntro)

	phase, progress := h.s.IntroFrame()
	assert.Equal(t, IntroLoading, phase)
	assert.Zero(t, progress)

	h.clock.Add(3 * time.Second)
	phase, progress = h.s.IntroFrame()
	assert.Equal(t, IntroCredit, phase)
	assert.InDelta(t, 0.5, progress, 0.001)

	h.clock.Add(3 * time.Second)
	phase, progress = h.s.IntroFrame()
	assert.Equal(t, IntroTitle, phase)
	assert.Equal(t, 1.0, progress)

	h.clock.Add(time.Second)
	assert.False(t, h.s.IntroActive())
	phase, progress = h.s.IntroFrame()
	assert.Equal(t, IntroTitle, phase)
	assert.Equal(t, 1.0, progress)
}

func TestIntroDisabled(t *testing.T) {
	h := newHarness(t, 0)
	assert.False(t, h.s.IntroActive())
	assert.Zero(t, h.s.IntroDuration())
}
