package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pokerbot/bot/agent"
	"pokerbot/bot/stats"
)

// Memory is an in-process Journal for runs without a database.
type Memory struct {
	mu        sync.RWMutex
	sessions  map[uuid.UUID]Session
	latest    uuid.UUID
	decisions map[uuid.UUID][]agent.DecisionRecord
	rounds    map[uuid.UUID][]agent.RoundRecord
}

func NewMemory() *Memory {
	return &Memory{
		sessions:  make(map[uuid.UUID]Session),
		decisions: make(map[uuid.UUID][]agent.DecisionRecord),
		rounds:    make(map[uuid.UUID][]agent.RoundRecord),
	}
}

func (m *Memory) CreateSession(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID]; ok {
		return nil
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	m.sessions[s.ID] = s
	m.latest = s.ID
	return nil
}

func (m *Memory) RecordDecision(_ context.Context, rec agent.DecisionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decisions[rec.SessionID] = append(m.decisions[rec.SessionID], rec)
	return nil
}

func (m *Memory) RecordRound(_ context.Context, rec agent.RoundRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds[rec.SessionID] = append(m.rounds[rec.SessionID], rec)
	return nil
}

func (m *Memory) LatestSession(ctx context.Context) (Session, error) {
	m.mu.RLock()
	id := m.latest
	m.mu.RUnlock()
	if id == uuid.Nil {
		return Session{}, ErrNotFound
	}
	return m.GetSession(ctx, id)
}

func (m *Memory) GetSession(_ context.Context, id uuid.UUID) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return s, nil
}

func (m *Memory) SessionStats(_ context.Context, id uuid.UUID) (stats.Tally, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var t stats.Tally
	for _, d := range m.decisions[id] {
		t.AddAction(d.Action.Kind)
	}
	for _, r := range m.rounds[id] {
		t.AddDeal(r.Delta, r.Strength)
	}
	return t, nil
}

// Decisions returns a copy of the decisions journaled for a session.
func (m *Memory) Decisions(id uuid.UUID) []agent.DecisionRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]agent.DecisionRecord(nil), m.decisions[id]...)
}
