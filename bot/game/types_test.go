package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegalSet(t *testing.T) {
	s := NewLegalSet(Check, Raise)
	assert.True(t, s.Has(Check))
	assert.True(t, s.Has(Raise))
	assert.False(t, s.Has(Fold))
	assert.False(t, s.Has(Discard))
	assert.Equal(t, []string{"check", "raise"}, s.Strings())
	assert.True(t, LegalSet(0).Empty())

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["check","raise"]`, string(b))

	var back LegalSet
	require.NoError(t, json.Unmarshal([]byte(`["Fold","call"]`), &back))
	assert.Equal(t, NewLegalSet(Fold, Call), back)

	assert.Error(t, json.Unmarshal([]byte(`["shove"]`), &back))
}

func TestActionJSON(t *testing.T) {
	b, err := json.Marshal(RaiseAction(14))
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"raise","amount":14}`, string(b))

	b, err = json.Marshal(DiscardAction(0))
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"discard","index":0}`, string(b))

	b, err = json.Marshal(CheckAction())
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"check"}`, string(b))

	var a Action
	require.NoError(t, json.Unmarshal([]byte(`{"action":"discard","index":2}`), &a))
	assert.Equal(t, DiscardAction(2), a)
	assert.Error(t, json.Unmarshal([]byte(`{"action":"raise"}`), &a))
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "raise(10)", RaiseAction(10).String())
	assert.Equal(t, "discard(1)", DiscardAction(1).String())
	assert.Equal(t, "fold", FoldAction().String())
}

func TestRaiseBounds(t *testing.T) {
	// Preflop: SB posted 1, BB posted 2, SB to act.
	rs := &RoundState{Pips: [2]int{1, 2}, Stacks: [2]int{399, 398}}
	assert.Equal(t, 1, rs.ContinueCost(0))
	lo, hi := rs.RaiseBounds(0)
	assert.Equal(t, 4, lo)
	assert.Equal(t, 400, hi)

	// Short opponent caps the raise.
	rs = &RoundState{Pips: [2]int{0, 10}, Stacks: [2]int{200, 20}}
	lo, hi = rs.RaiseBounds(0)
	assert.Equal(t, 20, lo)
	assert.Equal(t, 30, hi)
}
