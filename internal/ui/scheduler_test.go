package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerDeferralWindow(t *testing.T) {
	var s scheduler
	require.True(t, s.ShouldSortNow(false), "an idle table sorts on every merge")

	s.KeyPressed()
	for cycle := 1; cycle <= sortDeferralLimit; cycle++ {
		assert.False(t, s.ShouldSortNow(false), "cycle %d after a key still defers", cycle)
		s.TickIdle()
	}
	assert.True(t, s.ShouldSortNow(false), "the cycle after the window applies the sort")
}

func TestSchedulerKeyResetsWindow(t *testing.T) {
	var s scheduler
	s.KeyPressed()
	s.TickIdle()
	s.TickIdle()
	s.TickIdle()

	s.KeyPressed()
	for cycle := 1; cycle <= sortDeferralLimit; cycle++ {
		assert.False(t, s.ShouldSortNow(false), "cycle %d after the second key still defers", cycle)
		s.TickIdle()
	}
	assert.True(t, s.ShouldSortNow(false))
}

func TestSchedulerTreeNeverDefers(t *testing.T) {
	var s scheduler
	s.KeyPressed()
	assert.True(t, s.ShouldSortNow(true), "tree layout depends on live adjacency")
	assert.False(t, s.ShouldSortNow(false))
}

func TestSchedulerTickIdleFloorsAtZero(t *testing.T) {
	var s scheduler
	s.TickIdle()
	s.TickIdle()
	assert.True(t, s.ShouldSortNow(false))

	s.KeyPressed()
	assert.False(t, s.ShouldSortNow(false), "extra idle ticks before a key must not pre-burn the window")
}

func TestSchedulerRedrawFlag(t *testing.T) {
	var s scheduler
	assert.False(t, s.ConsumeRedraw())

	s.MarkRedraw()
	s.MarkRedraw()
	assert.True(t, s.ConsumeRedraw(), "marking is idempotent")
	assert.False(t, s.ConsumeRedraw(), "consuming clears the flag")
}
