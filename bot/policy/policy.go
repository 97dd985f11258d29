// Package policy decides one action per decision point: which hole card to
// throw on discard streets, and how much to wager otherwise.
package policy

import (
	"errors"
	"fmt"
	"strings"

	"pokerbot/bot/cards"
	"pokerbot/bot/game"
)

var (
	ErrNoLegalActions = errors.New("policy: empty legal action set")
	ErrHandSize       = errors.New("policy: discard needs exactly 3 hole cards")
)

// Rand is the random source behind the two probabilistic gates. *rand.Rand
// satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Variant selects how the discard branch treats suit matches.
type Variant int

const (
	// VariantFaithful never records a suit match, so the suit-driven raise
	// sizing below stays unreachable.
	VariantFaithful Variant = iota
	// VariantSuitDraw records SuitMatch whenever a discard keeps two suited
	// cards, which arms the suit-driven raise sizing.
	VariantSuitDraw
)

func (v Variant) String() string {
	switch v {
	case VariantFaithful:
		return "faithful"
	case VariantSuitDraw:
		return "suit-draw"
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "faithful":
		return VariantFaithful, nil
	case "suit-draw", "suitdraw", "suit_draw":
		return VariantSuitDraw, nil
	}
	return 0, fmt.Errorf("unknown policy variant %q", s)
}

const (
	probeThreshold = 0.95 // speculative min-raise fires when Float64() > this
	callDrawRange  = 6    // call/fold gate draws uniformly from 0..5
	earlyBoardMax  = 3
)

// Context is everything one decision reads from the engine's state.
type Context struct {
	Legal    game.LegalSet
	Street   int
	Hand     []cards.Card
	Board    []cards.Card
	MyPip    int
	OppPip   int
	MyStack  int
	OppStack int
	MinRaise int // valid only when Raise is legal
	MaxRaise int
}

// Decision is the chosen action plus the rule that produced it.
type Decision struct {
	Action game.Action
	Rule   string
}

type Policy struct {
	variant Variant
	rng     Rand
	mem     Memory
}

type Option func(*Policy)

func WithVariant(v Variant) Option { return func(p *Policy) { p.variant = v } }

func New(rng Rand, opts ...Option) *Policy {
	p := &Policy{rng: rng, mem: NewMemory()}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *Policy) Variant() Variant { return p.variant }

// Memory returns a copy of the current per-deal memory.
func (p *Policy) Memory() Memory { return p.mem }

// ResetForNewDeal must be called at the start of every deal.
func (p *Policy) ResetForNewDeal() { p.mem = NewMemory() }

// Decide picks exactly one action. Discard outranks raising, raising outranks
// the passive check/call/fold fallback.
func (p *Policy) Decide(ctx Context) (Decision, error) {
	if ctx.Legal.Empty() {
		return Decision{}, ErrNoLegalActions
	}
	if ctx.Legal.Has(game.Discard) {
		return p.discard(ctx.Hand)
	}
	if ctx.Legal.Has(game.Raise) {
		if d, ok := p.raise(ctx); ok {
			return d, nil
		}
	}
	return p.passive(ctx.Legal), nil
}

func (p *Policy) discard(hand []cards.Card) (Decision, error) {
	if len(hand) != 3 {
		return Decision{}, fmt.Errorf("%w: got %d", ErrHandSize, len(hand))
	}
	h := cards.ClassifyHoleCards([3]cards.Card{hand[0], hand[1], hand[2]})

	keep := func(idx int, rule string) (Decision, error) {
		return Decision{Action: game.DiscardAction(idx), Rule: rule}, nil
	}
	pair := func(idx int, rule string) (Decision, error) {
		p.mem.HasPair = true
		return keep(idx, rule)
	}
	suited := func(idx int, rule string) (Decision, error) {
		if p.variant == VariantSuitDraw {
			p.mem.SuitMatch = true
		}
		return keep(idx, rule)
	}

	switch {
	case h.PairAt01:
		return pair(2, "pair-01")
	case h.PairAt12:
		return pair(0, "pair-12")
	case h.WrapPair:
		return pair(1, "pair-02")
	case h.SuitAt01:
		return suited(2, "suit-01")
	case h.SuitAt12:
		return suited(0, "suit-12")
	case h.WrapSuit:
		return suited(1, "suit-02")
	}
	return keep(h.MinRankIndex, "low-card")
}

func midpoint(lo, hi int) int { return lo + (hi-lo)/2 }

// raise reports ok=false when no sizing rule fires; the caller then falls back
// to passive play even though raising is legal.
func (p *Policy) raise(ctx Context) (Decision, bool) {
	lo, hi := ctx.MinRaise, ctx.MaxRaise
	boardLen := len(ctx.Board)
	if boardLen <= earlyBoardMax {
		return Decision{Action: game.RaiseAction(lo), Rule: "early-min"}, true
	}

	o := cards.BoardOverlap(ctx.Hand, ctx.Board)
	if p.mem.HasPair {
		switch {
		case o.RankMatches >= 4:
			p.mem.setStrength(5)
			return Decision{Action: game.RaiseAction(hi), Rule: "pair-board-4"}, true
		case o.RankMatches >= 2:
			p.mem.setStrength(3)
			return Decision{Action: game.RaiseAction(midpoint(lo, hi)), Rule: "pair-board-2"}, true
		}
	}
	if p.mem.SuitMatch {
		switch {
		case o.SuitMatches >= 4 && boardLen == 4:
			p.mem.setStrength(4)
			return Decision{Action: game.RaiseAction(hi), Rule: "suit-turn"}, true
		case o.SuitMatches >= 4 && boardLen == 5:
			p.mem.setStrength(3)
			return Decision{Action: game.RaiseAction(midpoint(lo, hi)), Rule: "suit-river"}, true
		case o.SuitMatches >= 2 && boardLen == 4:
			p.mem.setStrength(2)
			if p.rng.Float64() > probeThreshold {
				return Decision{Action: game.RaiseAction(lo), Rule: "suit-probe"}, true
			}
		}
	}
	return Decision{}, false
}

func (p *Policy) passive(legal game.LegalSet) Decision {
	switch {
	case legal.Has(game.Check):
		return Decision{Action: game.CheckAction(), Rule: "check"}
	case legal.Has(game.Call):
		draw := p.rng.Intn(callDrawRange)
		if p.mem.HandStrength < draw {
			return Decision{Action: game.FoldAction(), Rule: "call-gate-fold"}
		}
		return Decision{Action: game.CallAction(), Rule: "call-gate-call"}
	}
	return Decision{Action: game.FoldAction(), Rule: "fold"}
}
