package cards

// HoleClass is the structural read of a 3-card hand.
type HoleClass struct {
	Ranks        [3]int
	Suits        [3]byte
	MinRankIndex int

	PairAt01 bool
	PairAt12 bool
	WrapPair bool // ranks[0] == ranks[2]

	SuitAt01 bool
	SuitAt12 bool
	WrapSuit bool // suits[0] == suits[2]
}

func (h HoleClass) HasAdjacentPair() bool      { return h.PairAt01 || h.PairAt12 }
func (h HoleClass) HasAdjacentSuitMatch() bool { return h.SuitAt01 || h.SuitAt12 }

// ClassifyHoleCards reads pairs and suit matches between hole-card positions.
// On a tie for lowest rank the leftmost card wins.
func ClassifyHoleCards(hand [3]Card) HoleClass {
	var h HoleClass
	for i, c := range hand {
		h.Ranks[i] = c.Rank
		h.Suits[i] = c.Suit
		if c.Rank < h.Ranks[h.MinRankIndex] {
			h.MinRankIndex = i
		}
	}
	h.PairAt01 = h.Ranks[0] == h.Ranks[1]
	h.PairAt12 = h.Ranks[1] == h.Ranks[2]
	h.WrapPair = h.Ranks[0] == h.Ranks[2]
	h.SuitAt01 = h.Suits[0] == h.Suits[1]
	h.SuitAt12 = h.Suits[1] == h.Suits[2]
	h.WrapSuit = h.Suits[0] == h.Suits[2]
	return h
}

// Overlap counts rank and suit coincidences between hole and board cards.
type Overlap struct {
	RankMatches int
	SuitMatches int
}

// BoardOverlap compares every board card against every hole card. A board
// card matching two hole cards counts twice; this is a signal, not a hand rank.
func BoardOverlap(hand, board []Card) Overlap {
	var o Overlap
	for _, b := range board {
		for _, h := range hand {
			if b.Rank == h.Rank {
				o.RankMatches++
			}
			if b.Suit == h.Suit {
				o.SuitMatches++
			}
		}
	}
	return o
}
