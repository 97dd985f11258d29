package store

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pokerbot/bot/agent"
	"pokerbot/bot/game"
	"pokerbot/bot/stats"
)

//go:embed schema.sql
var schema embed.FS

var ErrNotFound = errors.New("store: not found")

// Session identifies one bot run.
type Session struct {
	ID        uuid.UUID `json:"id"`
	BotName   string    `json:"bot_name"`
	Variant   string    `json:"variant"`
	Seed      int64     `json:"seed"`
	CreatedAt time.Time `json:"created_at"`
}

// Reader is the read side used by the stats API.
type Reader interface {
	LatestSession(ctx context.Context) (Session, error)
	GetSession(ctx context.Context, id uuid.UUID) (Session, error)
	SessionStats(ctx context.Context, id uuid.UUID) (stats.Tally, error)
}

// Journal is a writable store: sessions plus the agent's decision/deal records.
type Journal interface {
	agent.Journal
	Reader
	CreateSession(ctx context.Context, s Session) error
}

var (
	_ Journal = (*DB)(nil)
	_ Journal = (*Memory)(nil)
)

type DB struct{ *pgxpool.Pool }

func Open(ctx context.Context, dsn string) (*DB, error) {
	p, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &DB{p}, nil
}

func (db *DB) Close()                         { db.Pool.Close() }
func (db *DB) Ping(ctx context.Context) error { return db.Pool.Ping(ctx) }

func Migrate(ctx context.Context, db *DB) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, string(sqlBytes))
	return err
}

/* -----------------------------
   Write helpers
------------------------------*/

func (db *DB) CreateSession(ctx context.Context, s Session) error {
	_, err := db.Exec(ctx, `
        INSERT INTO sessions(id, bot_name, variant, seed)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (id) DO NOTHING
    `, s.ID, s.BotName, s.Variant, s.Seed)
	return err
}

func (db *DB) RecordDecision(ctx context.Context, rec agent.DecisionRecord) error {
	var amount, index any
	switch rec.Action.Kind {
	case game.Raise:
		amount = rec.Action.Amount
	case game.Discard:
		index = rec.Action.Index
	}
	var made any
	if rec.Made != "" {
		made = rec.Made
	}
	_, err := db.Exec(ctx, `
        INSERT INTO decisions(
            session_id, round_num, street,
            action, amount, discard_index, rule,
            hole, board,
            has_pair, suit_match, hand_strength, made, created_at
        ) VALUES (
            $1,$2,$3,
            $4,$5,$6,$7,
            $8,$9,
            $10,$11,$12,$13,$14
        )
    `,
		rec.SessionID, rec.Round, rec.Street,
		rec.Action.Kind.String(), amount, index, rec.Rule,
		nonNil(rec.Hole), nonNil(rec.Board),
		rec.Memory.HasPair, rec.Memory.SuitMatch, rec.Memory.HandStrength, made, rec.At,
	)
	return err
}

func (db *DB) RecordRound(ctx context.Context, rec agent.RoundRecord) error {
	_, err := db.Exec(ctx, `
        INSERT INTO rounds(
            session_id, round_num, street, delta,
            my_cards, opp_cards, hand_strength, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    `,
		rec.SessionID, rec.Round, rec.Street, rec.Delta,
		nonNil(rec.MyCards), nonNil(rec.OppCards), rec.Strength, rec.At,
	)
	return err
}

/* -----------------------------
   Read helpers
------------------------------*/

func (db *DB) LatestSession(ctx context.Context) (Session, error) {
	return db.scanSession(db.QueryRow(ctx, `
        SELECT id, bot_name, variant, seed, created_at
        FROM sessions ORDER BY created_at DESC LIMIT 1
    `))
}

func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (Session, error) {
	return db.scanSession(db.QueryRow(ctx, `
        SELECT id, bot_name, variant, seed, created_at
        FROM sessions WHERE id = $1
    `, id))
}

func (db *DB) scanSession(row pgx.Row) (Session, error) {
	var s Session
	err := row.Scan(&s.ID, &s.BotName, &s.Variant, &s.Seed, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	return s, err
}

// SessionStats aggregates a session's decisions and deals into a Tally.
func (db *DB) SessionStats(ctx context.Context, id uuid.UUID) (stats.Tally, error) {
	var t stats.Tally

	rows, err := db.Query(ctx, `
        SELECT action, count(*) FROM decisions
        WHERE session_id = $1 GROUP BY action
    `, id)
	if err != nil {
		return t, err
	}
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			rows.Close()
			return t, err
		}
		k, err := game.ParseKind(name)
		if err != nil {
			rows.Close()
			return t, fmt.Errorf("decision row: %w", err)
		}
		for i := 0; i < n; i++ {
			t.AddAction(k)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return t, err
	}

	rows, err = db.Query(ctx, `
        SELECT delta, hand_strength FROM rounds
        WHERE session_id = $1 ORDER BY round_num
    `, id)
	if err != nil {
		return t, err
	}
	defer rows.Close()
	for rows.Next() {
		var delta, strength int
		if err := rows.Scan(&delta, &strength); err != nil {
			return t, err
		}
		t.AddDeal(delta, strength)
	}
	return t, rows.Err()
}

func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
