package cards

import (
	"fmt"
)

// Card is a parsed two-character token such as "As". Rank is 2..14 (Ace=14).
type Card struct {
	Rank int
	Suit byte
}

const (
	rankChars = "  23456789TJQKA"
	suitChars = "cdhs"
)

// InvalidRankError reports a rank character outside 2-9,T,J,Q,K,A.
type InvalidRankError struct {
	Token string
	Rank  byte
}

func (e *InvalidRankError) Error() string {
	return fmt.Sprintf("invalid rank %q in card %q", e.Rank, e.Token)
}

// InvalidSuitError reports a suit character outside c,d,h,s.
type InvalidSuitError struct {
	Token string
	Suit  byte
}

func (e *InvalidSuitError) Error() string {
	return fmt.Sprintf("invalid suit %q in card %q", e.Suit, e.Token)
}

// RankValue maps a rank character to 2..14.
func RankValue(r byte) (int, error) {
	switch {
	case r >= '2' && r <= '9':
		return int(r - '0'), nil
	case r == 'T':
		return 10, nil
	case r == 'J':
		return 11, nil
	case r == 'Q':
		return 12, nil
	case r == 'K':
		return 13, nil
	case r == 'A':
		return 14, nil
	}
	return 0, &InvalidRankError{Token: string(r), Rank: r}
}

func Parse(token string) (Card, error) {
	if len(token) != 2 {
		return Card{}, fmt.Errorf("card %q: want 2 characters, got %d", token, len(token))
	}
	rank, err := RankValue(token[0])
	if err != nil {
		return Card{}, &InvalidRankError{Token: token, Rank: token[0]}
	}
	switch token[1] {
	case 'c', 'd', 'h', 's':
	default:
		return Card{}, &InvalidSuitError{Token: token, Suit: token[1]}
	}
	return Card{Rank: rank, Suit: token[1]}, nil
}

// ParseAll parses tokens in order and stops at the first bad one.
func ParseAll(tokens []string) ([]Card, error) {
	out := make([]Card, len(tokens))
	for i, t := range tokens {
		c, err := Parse(t)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func (c Card) String() string {
	if c.Rank < 2 || c.Rank > 14 {
		return "??"
	}
	return fmt.Sprintf("%c%c", rankChars[c.Rank], c.Suit)
}

func Strings(cs []Card) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}
