package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pokerbot/bot/game"
)

func TestTally(t *testing.T) {
	var tl Tally
	for _, k := range []game.ActionKind{game.Discard, game.Raise, game.Raise, game.Call, game.Check, game.Fold} {
		tl.AddAction(k)
	}
	tl.AddDeal(20, 3)
	tl.AddDeal(-4, 1)
	tl.AddDeal(0, 1)
	tl.AddDeal(-6, 0)

	assert.Equal(t, 6, tl.Decisions)
	assert.Equal(t, 1, tl.Discards)
	assert.Equal(t, 2, tl.Raises)
	assert.Equal(t, 4, tl.Deals)
	assert.Equal(t, 1, tl.Won)
	assert.Equal(t, 1, tl.Tied)
	assert.Equal(t, 10, tl.NetChips)
	assert.Equal(t, [6]int{0, 2, 0, 1, 0, 0}, tl.Strength)

	assert.InDelta(t, 2.0, tl.AF(), 1e-9)
	// 10 chips / 2bb = 5bb over 4 deals.
	assert.InDelta(t, 125.0, tl.BBPer100(2), 1e-9)
	assert.Zero(t, tl.BBPer100(0))
}

func TestAFWithoutCalls(t *testing.T) {
	tl := Tally{Raises: 3}
	assert.InDelta(t, 3.0, tl.AF(), 1e-9)
}

func TestWilsonCI95(t *testing.T) {
	lo, hi := WilsonCI95(0, 0, 0)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)

	lo, hi = WilsonCI95(50, 0, 100)
	assert.Less(t, lo, 0.5)
	assert.Greater(t, hi, 0.5)
	assert.InDelta(t, 0.5, (lo+hi)/2, 1e-9)
}

func TestSummary(t *testing.T) {
	tl := Tally{Deals: 10, Won: 6, NetChips: 40, Raises: 4, Calls: 2}
	s := tl.Summary(2)
	assert.Equal(t, 10, s.Deals)
	assert.InDelta(t, 2.0, s.AF, 1e-9)
	assert.InDelta(t, 200.0, s.BBPer100, 1e-9)
	assert.Less(t, s.WinLow, s.WinHigh)
}
