package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pokerbot/bot/cards"
	"pokerbot/bot/game"
	"pokerbot/bot/policy"
)

var _ game.Bot = (*Player)(nil)

// Player binds one policy instance to the engine's lifecycle for one match.
type Player struct {
	name    string
	session uuid.UUID
	policy  *policy.Policy
	journal Journal
	log     zerolog.Logger
	now     func() time.Time
}

type Option func(*Player)

func WithJournal(j Journal) Option {
	return func(p *Player) {
		if j != nil {
			p.journal = j
		}
	}
}

func WithLogger(l zerolog.Logger) Option { return func(p *Player) { p.log = l } }
func WithSession(id uuid.UUID) Option    { return func(p *Player) { p.session = id } }

func NewPlayer(name string, pol *policy.Policy, opts ...Option) *Player {
	p := &Player{
		name:    name,
		session: uuid.New(),
		policy:  pol,
		journal: nopJournal{},
		log:     zerolog.Nop(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	p.log = p.log.With().Str("bot", name).Str("session", p.session.String()).Logger()
	return p
}

func (p *Player) Name() string         { return p.name }
func (p *Player) SessionID() uuid.UUID { return p.session }

func (p *Player) HandleNewRound(ctx context.Context, gs *game.GameState, rs *game.RoundState, active int) error {
	p.policy.ResetForNewDeal()
	p.log.Debug().
		Int("round", gs.RoundNum).
		Int("bankroll", gs.Bankroll).
		Float64("clock", gs.GameClock).
		Bool("big_blind", active == 1).
		Strs("hole", rs.Hands[active]).
		Msg("new deal")
	return nil
}

func (p *Player) HandleRoundOver(ctx context.Context, gs *game.GameState, ts *game.TerminalState, active int) error {
	rec := RoundRecord{
		SessionID: p.session,
		Round:     gs.RoundNum,
		Delta:     ts.Deltas[active],
		Strength:  p.policy.Memory().HandStrength,
		At:        p.now(),
	}
	if prev := ts.Previous; prev != nil {
		rec.Street = prev.Street
		rec.MyCards = append([]string{}, prev.Hands[active]...)
		rec.OppCards = append([]string{}, prev.Hands[1-active]...)
	}
	p.log.Info().
		Int("round", rec.Round).
		Int("delta", rec.Delta).
		Int("street", rec.Street).
		Int("strength", rec.Strength).
		Msg("deal over")
	if err := p.journal.RecordRound(ctx, rec); err != nil {
		p.log.Warn().Err(err).Int("round", rec.Round).Msg("journal round failed")
	}
	return nil
}

func (p *Player) GetAction(ctx context.Context, gs *game.GameState, rs *game.RoundState, active int) (game.Action, error) {
	obs := BuildObservation(gs, rs, active)
	hand, err := cards.ParseAll(obs.HoleCards)
	if err != nil {
		return game.Action{}, fmt.Errorf("round %d hole cards: %w", obs.Round, err)
	}
	board, err := cards.ParseAll(obs.Board)
	if err != nil {
		return game.Action{}, fmt.Errorf("round %d board: %w", obs.Round, err)
	}

	d, err := p.policy.Decide(policy.Context{
		Legal:    obs.Legal,
		Street:   obs.Street,
		Hand:     hand,
		Board:    board,
		MyPip:    obs.MyPip,
		OppPip:   obs.OppPip,
		MyStack:  obs.MyStack,
		OppStack: obs.OppStack,
		MinRaise: obs.MinRaise,
		MaxRaise: obs.MaxRaise,
	})
	if err != nil {
		return game.Action{}, fmt.Errorf("round %d street %d: %w", obs.Round, obs.Street, err)
	}
	if err := Validate(obs, d.Action); err != nil {
		return game.Action{}, fmt.Errorf("round %d: rule %s: %w", obs.Round, d.Rule, err)
	}

	mem := p.policy.Memory()
	made, _ := cards.Describe(hand, board)
	p.log.Debug().
		Int("round", obs.Round).
		Int("street", obs.Street).
		Strs("hole", obs.HoleCards).
		Strs("board", obs.Board).
		Str("made", made).
		Stringer("action", d.Action).
		Str("rule", d.Rule).
		Int("strength", mem.HandStrength).
		Bool("has_pair", mem.HasPair).
		Msg("decision")

	rec := DecisionRecord{
		SessionID: p.session,
		Round:     obs.Round,
		Street:    obs.Street,
		Action:    d.Action,
		Rule:      d.Rule,
		Hole:      obs.HoleCards,
		Board:     obs.Board,
		Memory:    mem,
		Made:      made,
		At:        p.now(),
	}
	if err := p.journal.RecordDecision(ctx, rec); err != nil {
		p.log.Warn().Err(err).Int("round", obs.Round).Msg("journal decision failed")
	}
	return d.Action, nil
}
