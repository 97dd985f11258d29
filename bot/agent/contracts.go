package agent

import (
	"fmt"

	"pokerbot/bot/game"
)

// Observation is the per-decision snapshot the bot sees, in the form it is
// journaled and logged.
type Observation struct {
	Round        int           `json:"round"`
	Street       int           `json:"street"`
	HoleCards    []string      `json:"hole_cards"`
	Board        []string      `json:"board"` // 0..5 cards
	MyPip        int           `json:"my_pip"`
	OppPip       int           `json:"opp_pip"`
	MyStack      int           `json:"my_stack"`
	OppStack     int           `json:"opp_stack"`
	MyContrib    int           `json:"my_contribution"`
	OppContrib   int           `json:"opp_contribution"`
	ContinueCost int           `json:"continue_cost"`
	MinRaise     int           `json:"min_raise"` // raise-to; zero unless raise is legal
	MaxRaise     int           `json:"max_raise"`
	Legal        game.LegalSet `json:"legal_actions"`
}

// BuildObservation projects the engine's round state onto the active seat.
func BuildObservation(gs *game.GameState, rs *game.RoundState, active int) Observation {
	o := Observation{
		Street:       rs.Street,
		HoleCards:    append([]string{}, rs.Hands[active]...),
		Board:        append([]string{}, rs.Board...),
		MyPip:        rs.Pips[active],
		OppPip:       rs.Pips[1-active],
		MyStack:      rs.Stacks[active],
		OppStack:     rs.Stacks[1-active],
		MyContrib:    game.StartingStack - rs.Stacks[active],
		OppContrib:   game.StartingStack - rs.Stacks[1-active],
		ContinueCost: rs.ContinueCost(active),
		Legal:        rs.Legal,
	}
	if gs != nil {
		o.Round = gs.RoundNum
	}
	if rs.Legal.Has(game.Raise) {
		o.MinRaise, o.MaxRaise = rs.RaiseBounds(active)
	}
	return o
}

// Validate checks an action against the observation it was chosen for.
func Validate(o Observation, a game.Action) error {
	if !o.Legal.Has(a.Kind) {
		return fmt.Errorf("illegal action %s (legals: %v)", a, o.Legal.Strings())
	}
	switch a.Kind {
	case game.Raise:
		if a.Amount < o.MinRaise || a.Amount > o.MaxRaise {
			return fmt.Errorf("raise amount %d out of bounds [%d, %d]", a.Amount, o.MinRaise, o.MaxRaise)
		}
	case game.Discard:
		if a.Index < 0 || a.Index >= len(o.HoleCards) {
			return fmt.Errorf("discard index %d out of range for %d hole cards", a.Index, len(o.HoleCards))
		}
	}
	return nil
}
