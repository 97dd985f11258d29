package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokerbot/bot/agent"
	"pokerbot/bot/game"
	"pokerbot/bot/policy"
)

func TestMemoryJournal(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.LatestSession(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	id := uuid.New()
	require.NoError(t, m.CreateSession(ctx, Session{ID: id, BotName: "bot", Variant: "faithful", Seed: 7}))

	s, err := m.LatestSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, s.ID)
	assert.False(t, s.CreatedAt.IsZero())

	for _, a := range []game.Action{game.DiscardAction(2), game.RaiseAction(4), game.CallAction()} {
		require.NoError(t, m.RecordDecision(ctx, agent.DecisionRecord{
			SessionID: id,
			Round:     1,
			Action:    a,
			Memory:    policy.NewMemory(),
		}))
	}
	require.NoError(t, m.RecordRound(ctx, agent.RoundRecord{SessionID: id, Round: 1, Delta: 12, Strength: 3}))
	require.NoError(t, m.RecordRound(ctx, agent.RoundRecord{SessionID: id, Round: 2, Delta: -2, Strength: 1}))

	tl, err := m.SessionStats(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, tl.Decisions)
	assert.Equal(t, 1, tl.Discards)
	assert.Equal(t, 1, tl.Raises)
	assert.Equal(t, 1, tl.Calls)
	assert.Equal(t, 2, tl.Deals)
	assert.Equal(t, 1, tl.Won)
	assert.Equal(t, 10, tl.NetChips)

	assert.Len(t, m.Decisions(id), 3)

	_, err = m.GetSession(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCreateSessionIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	a, b := uuid.New(), uuid.New()
	require.NoError(t, m.CreateSession(ctx, Session{ID: a, BotName: "first"}))
	require.NoError(t, m.CreateSession(ctx, Session{ID: b, BotName: "second"}))
	require.NoError(t, m.CreateSession(ctx, Session{ID: a, BotName: "again"}))

	s, err := m.LatestSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, b, s.ID)

	s, err = m.GetSession(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, "first", s.BotName)
}
