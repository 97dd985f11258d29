package replay

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokerbot/bot/agent"
	"pokerbot/bot/game"
	"pokerbot/bot/policy"
	"pokerbot/bot/store"
)

func TestRunDeal(t *testing.T) {
	f, err := os.Open("testdata/deal.jsonl")
	require.NoError(t, err)
	defer f.Close()

	ctx := context.Background()
	j := store.NewMemory()
	id := uuid.New()
	require.NoError(t, j.CreateSession(ctx, store.Session{ID: id, BotName: "replay"}))
	p := agent.NewPlayer("replay", policy.New(rand.New(rand.NewSource(1))), agent.WithJournal(j), agent.WithSession(id))

	var steps []Step
	n, err := Run(ctx, f, p, func(s Step) error {
		steps = append(steps, s)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 5, n)

	want := []game.Action{
		game.RaiseAction(4),   // empty board: min raise
		game.DiscardAction(2), // pair of aces kept
		game.RaiseAction(197), // Ad hits both aces: midpoint of [2, 392]
		game.DiscardAction(0), // no structure: drop the deuce
		game.CheckAction(),    // no pair kept, nothing to size
	}
	got := make([]game.Action, len(steps))
	for i, s := range steps {
		got[i] = s.Action
	}
	assert.Equal(t, want, got)
	assert.Equal(t, 3, steps[0].Line)
	assert.Equal(t, 2, steps[3].Round)

	tl, err := j.SessionStats(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, tl.Deals)
	assert.Equal(t, 22, tl.NetChips)
	assert.Equal(t, 1, tl.Strength[3])
	assert.Equal(t, 1, tl.Strength[1])
}

func TestRunReportsLine(t *testing.T) {
	in := strings.NewReader(`{"event":"new_round","game":{},"round":{"hands":[["As","Ah","2c"],[]]}}
{"event":"get_action","game":{},"round":{"hands":[["As","Ah","2c"],[]],"legal_actions":[]}}
`)
	p := agent.NewPlayer("t", policy.New(rand.New(rand.NewSource(1))))
	_, err := Run(context.Background(), in, p, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.ErrorIs(t, err, policy.ErrNoLegalActions)
}

func TestRunRejectsBadEvents(t *testing.T) {
	p := agent.NewPlayer("t", policy.New(rand.New(rand.NewSource(1))))
	for _, in := range []string{
		`{"event":"shuffle","game":{}}`,
		`{"event":"get_action","game":{}}`,
		`{"event":"round_over","game":{}}`,
		`{"event":"new_round","active":2,"game":{},"round":{}}`,
		`not json`,
	} {
		_, err := Run(context.Background(), strings.NewReader(in), p, nil)
		assert.Error(t, err, in)
	}
}

func TestRunStopsOnSinkError(t *testing.T) {
	f, err := os.Open("testdata/deal.jsonl")
	require.NoError(t, err)
	defer f.Close()

	stop := errors.New("stop")
	p := agent.NewPlayer("t", policy.New(rand.New(rand.NewSource(1))))
	n, err := Run(context.Background(), f, p, func(Step) error { return stop })
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, n)
}

func TestRunHonorsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := agent.NewPlayer("t", policy.New(rand.New(rand.NewSource(1))))
	_, err := Run(ctx, strings.NewReader(`{"event":"new_round","game":{},"round":{}}`), p, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
