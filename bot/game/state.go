package game

import "context"

// Match constants as configured by the engine.
const (
	NumRounds     = 1000
	StartingStack = 400
	BigBlind      = 2
	SmallBlind    = 1
)

type GameState struct {
	Bankroll  int     `json:"bankroll"`
	GameClock float64 `json:"game_clock"` // seconds left for this bot
	RoundNum  int     `json:"round_num"`  // 1..NumRounds
}

// RoundState is the engine's view of the current deal. Legal is computed by the
// engine and trusted as-is.
type RoundState struct {
	Button int         `json:"button"`
	Street int         `json:"street"`
	Pips   [2]int      `json:"pips"`
	Stacks [2]int      `json:"stacks"`
	Hands  [2][]string `json:"hands"`
	Board  []string    `json:"board"`
	Legal  LegalSet    `json:"legal_actions"`
}

func (rs *RoundState) ContinueCost(active int) int {
	return rs.Pips[1-active] - rs.Pips[active]
}

// RaiseBounds returns the legal raise-to range for the active seat.
func (rs *RoundState) RaiseBounds(active int) (minRaise, maxRaise int) {
	cost := rs.ContinueCost(active)
	maxContribution := min(rs.Stacks[active], rs.Stacks[1-active]+cost)
	minContribution := min(maxContribution, cost+max(cost, BigBlind))
	return rs.Pips[active] + minContribution, rs.Pips[active] + maxContribution
}

type TerminalState struct {
	Deltas   [2]int      `json:"deltas"`
	Previous *RoundState `json:"previous_state"`
}

// Bot is the lifecycle the driver calls into. HandleNewRound and
// HandleRoundOver bracket every deal; GetAction is called once per decision.
type Bot interface {
	HandleNewRound(ctx context.Context, gs *GameState, rs *RoundState, active int) error
	HandleRoundOver(ctx context.Context, gs *GameState, ts *TerminalState, active int) error
	GetAction(ctx context.Context, gs *GameState, rs *RoundState, active int) (Action, error)
}
