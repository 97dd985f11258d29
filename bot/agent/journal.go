package agent

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pokerbot/bot/game"
	"pokerbot/bot/policy"
)

// DecisionRecord is one journaled decision.
type DecisionRecord struct {
	SessionID uuid.UUID
	Round     int
	Street    int
	Action    game.Action
	Rule      string
	Hole      []string
	Board     []string
	Memory    policy.Memory
	Made      string // best made hand, informational
	At        time.Time
}

// RoundRecord is the outcome of one deal from the bot's seat.
type RoundRecord struct {
	SessionID uuid.UUID
	Round     int
	Street    int // street the deal ended on
	Delta     int
	MyCards   []string
	OppCards  []string // empty unless shown down
	Strength  int
	At        time.Time
}

// Journal receives decision and deal records. It is bookkeeping only: a
// failing journal never changes what the bot plays.
type Journal interface {
	RecordDecision(ctx context.Context, rec DecisionRecord) error
	RecordRound(ctx context.Context, rec RoundRecord) error
}

type nopJournal struct{}

func (nopJournal) RecordDecision(context.Context, DecisionRecord) error { return nil }
func (nopJournal) RecordRound(context.Context, RoundRecord) error       { return nil }
