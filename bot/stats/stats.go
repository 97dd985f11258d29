package stats

import (
	"math"

	"pokerbot/bot/game"
)

// Tally is the running record of one bot session.
type Tally struct {
	Deals     int `json:"deals"`
	Won       int `json:"won"`
	Tied      int `json:"tied"`
	NetChips  int `json:"net_chips"`
	Discards  int `json:"discards"`
	Raises    int `json:"raises"`
	Calls     int `json:"calls"`
	Checks    int `json:"checks"`
	Folds     int `json:"folds"`
	Decisions int `json:"decisions"`

	// Strength[i] counts deals that ended with hand strength i (1..5).
	Strength [6]int `json:"strength"`
}

func (t *Tally) AddAction(k game.ActionKind) {
	t.Decisions++
	switch k {
	case game.Discard:
		t.Discards++
	case game.Raise:
		t.Raises++
	case game.Call:
		t.Calls++
	case game.Check:
		t.Checks++
	case game.Fold:
		t.Folds++
	}
}

func (t *Tally) AddDeal(delta, strength int) {
	t.Deals++
	t.NetChips += delta
	switch {
	case delta > 0:
		t.Won++
	case delta == 0:
		t.Tied++
	}
	if strength >= 1 && strength < len(t.Strength) {
		t.Strength[strength]++
	}
}

// AF is the aggression factor, raises per call.
func (t *Tally) AF() float64 {
	if t.Calls == 0 {
		return float64(t.Raises)
	}
	return float64(t.Raises) / float64(t.Calls)
}

func (t *Tally) BBPer100(bb int) float64 {
	if t.Deals == 0 || bb <= 0 {
		return 0
	}
	return (float64(t.NetChips) / float64(bb)) / (float64(t.Deals) / 100.0)
}

func (t *Tally) WinRateCI95() (low, hi float64) {
	return WilsonCI95(t.Won, t.Tied, t.Deals)
}

// WilsonCI95 for Bernoulli win rate using wins/ties/total deals.
func WilsonCI95(wins, ties, total int) (low, hi float64) {
	if total <= 0 {
		return 0, 1
	}
	z := 1.96
	n := float64(total)
	p := (float64(wins) + 0.5*float64(ties)) / n
	den := 1 + (z*z)/n
	center := p + (z*z)/(2*n)
	half := z * math.Sqrt((p*(1-p))/n+(z*z)/(4*n*n))
	return (center - half) / den, (center + half) / den
}

// Summary is the JSON shape served by the stats API.
type Summary struct {
	Tally
	AF       float64 `json:"af"`
	BBPer100 float64 `json:"bb_per_100"`
	WinLow   float64 `json:"win_ci_low"`
	WinHigh  float64 `json:"win_ci_high"`
}

func (t Tally) Summary(bb int) Summary {
	lo, hi := t.WinRateCI95()
	return Summary{Tally: t, AF: t.AF(), BBPer100: t.BBPer100(bb), WinLow: lo, WinHigh: hi}
}
