package cards

import (
	"fmt"

	poker "github.com/paulhankin/poker"
)

// Convert our Card -> library card.
func toPH(c Card) (poker.Card, error) {
	var s poker.Suit
	switch c.Suit {
	case 'c':
		s = poker.Club
	case 'd':
		s = poker.Diamond
	case 'h':
		s = poker.Heart
	case 's':
		s = poker.Spade
	default:
		var zero poker.Card
		return zero, &InvalidSuitError{Token: c.String(), Suit: c.Suit}
	}
	// Our ranks: 2..14 (Ace=14). Library: 1..13 (Ace=1).
	r := poker.Rank(c.Rank)
	if c.Rank == 14 {
		r = poker.Rank(1)
	}
	return poker.MakeCard(s, r)
}

// Describe labels the best made hand out of hole+board ("pair of aces", ...).
// It only feeds logs and the journal; no decision reads it.
func Describe(hand, board []Card) (string, error) {
	all := append(append([]Card{}, hand...), board...)
	pcs := make([]poker.Card, len(all))
	for i, c := range all {
		pc, err := toPH(c)
		if err != nil {
			return "", err
		}
		pcs[i] = pc
	}
	switch n := len(pcs); {
	case n == 3:
		return poker.Describe(pcs)
	case n >= 5:
		best := bestFive(pcs)
		return poker.Describe(best[:])
	default:
		return "", fmt.Errorf("describe: unsupported card count %d", n)
	}
}

func bestFive(pcs []poker.Card) [5]poker.Card {
	n := len(pcs)
	var best [5]poker.Card
	bestScore := int16(-32768)
	choose := [5]int{}
	var five [5]poker.Card
	var rec func(start, k int)
	rec = func(start, k int) {
		if k == 5 {
			for i := 0; i < 5; i++ {
				five[i] = pcs[choose[i]]
			}
			if score := poker.Eval5(&five); score > bestScore {
				bestScore = score
				best = five
			}
			return
		}
		for i := start; i <= n-(5-k); i++ {
			choose[k] = i
			rec(i+1, k+1)
		}
	}
	rec(0, 0)
	return best
}
