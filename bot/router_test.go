package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokerbot/bot/agent"
	"pokerbot/bot/game"
	"pokerbot/bot/store"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRouterHealth(t *testing.T) {
	h := Router(store.NewMemory(), zerolog.Nop())
	rec := get(t, h, "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestRouterSessions(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	h := Router(m, zerolog.Nop())

	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/sessions/latest").Code)

	id := uuid.New()
	require.NoError(t, m.CreateSession(ctx, store.Session{ID: id, BotName: "bot", Variant: "faithful"}))
	require.NoError(t, m.RecordDecision(ctx, agent.DecisionRecord{SessionID: id, Action: game.RaiseAction(4)}))
	require.NoError(t, m.RecordDecision(ctx, agent.DecisionRecord{SessionID: id, Action: game.CallAction()}))
	require.NoError(t, m.RecordRound(ctx, agent.RoundRecord{SessionID: id, Delta: 8, Strength: 3}))

	for _, path := range []string{"/api/sessions/latest", "/api/sessions/" + id.String()} {
		rec := get(t, h, path)
		require.Equal(t, http.StatusOK, rec.Code, path)

		var body sessionView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, id, body.Session.ID)
		assert.Equal(t, 2, body.Stats.Decisions)
		assert.Equal(t, 1, body.Stats.Won)
		assert.InDelta(t, 1.0, body.Stats.AF, 1e-9)
		// 8 chips = 4bb in one deal.
		assert.InDelta(t, 400.0, body.Stats.BBPer100, 1e-9)
	}

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/sessions/not-a-uuid").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/sessions/"+uuid.NewString()).Code)
}
