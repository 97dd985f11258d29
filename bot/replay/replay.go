// Package replay drives a game.Bot from a recorded JSON-lines event log, one
// lifecycle call per line.
package replay

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"pokerbot/bot/game"
)

type EventType string

const (
	NewRound  EventType = "new_round"
	GetAction EventType = "get_action"
	RoundOver EventType = "round_over"
)

// Event is one line of a replay file.
type Event struct {
	Type     EventType           `json:"event"`
	Active   int                 `json:"active"`
	Game     game.GameState      `json:"game"`
	Round    *game.RoundState    `json:"round,omitempty"`
	Terminal *game.TerminalState `json:"terminal,omitempty"`
}

// Step is the bot's answer to one get_action event.
type Step struct {
	Line   int         `json:"line"`
	Round  int         `json:"round"`
	Street int         `json:"street"`
	Action game.Action `json:"action"`
}

// Sink receives every action the bot produced, in order.
type Sink func(Step) error

// Run feeds events from r to bot until EOF, ctx cancellation, or the first error.
func Run(ctx context.Context, r io.Reader, bot game.Bot, sink Sink) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line, steps := 0, 0
	for sc.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return steps, err
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		var ev Event
		if err := json.Unmarshal([]byte(text), &ev); err != nil {
			return steps, fmt.Errorf("line %d: %w", line, err)
		}
		if ev.Active != 0 && ev.Active != 1 {
			return steps, fmt.Errorf("line %d: active seat %d", line, ev.Active)
		}
		step, err := dispatch(ctx, bot, ev)
		if err != nil {
			return steps, fmt.Errorf("line %d (%s): %w", line, ev.Type, err)
		}
		if step == nil {
			continue
		}
		step.Line = line
		steps++
		if sink != nil {
			if err := sink(*step); err != nil {
				return steps, err
			}
		}
	}
	return steps, sc.Err()
}

func dispatch(ctx context.Context, bot game.Bot, ev Event) (*Step, error) {
	switch ev.Type {
	case NewRound:
		if ev.Round == nil {
			return nil, fmt.Errorf("missing round state")
		}
		return nil, bot.HandleNewRound(ctx, &ev.Game, ev.Round, ev.Active)
	case GetAction:
		if ev.Round == nil {
			return nil, fmt.Errorf("missing round state")
		}
		a, err := bot.GetAction(ctx, &ev.Game, ev.Round, ev.Active)
		if err != nil {
			return nil, err
		}
		return &Step{Round: ev.Game.RoundNum, Street: ev.Round.Street, Action: a}, nil
	case RoundOver:
		if ev.Terminal == nil {
			return nil, fmt.Errorf("missing terminal state")
		}
		return nil, bot.HandleRoundOver(ctx, &ev.Game, ev.Terminal, ev.Active)
	}
	return nil, fmt.Errorf("unknown event %q", ev.Type)
}
