package game

import (
	"encoding/json"
	"fmt"
	"strings"
)

type ActionKind uint8

const (
	Fold ActionKind = iota
	Call
	Check
	Raise
	Discard
)

var kindNames = [...]string{
	Fold:    "fold",
	Call:    "call",
	Check:   "check",
	Raise:   "raise",
	Discard: "discard",
}

func (k ActionKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("action(%d)", k)
}

func ParseKind(s string) (ActionKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return ActionKind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// Action is the single value a bot hands back per decision. Amount is set for
// Raise (raise-to chips), Index for Discard (0-based into the hand).
type Action struct {
	Kind   ActionKind
	Amount int
	Index  int
}

func FoldAction() Action             { return Action{Kind: Fold} }
func CallAction() Action             { return Action{Kind: Call} }
func CheckAction() Action            { return Action{Kind: Check} }
func RaiseAction(amount int) Action  { return Action{Kind: Raise, Amount: amount} }
func DiscardAction(index int) Action { return Action{Kind: Discard, Index: index} }

func (a Action) String() string {
	switch a.Kind {
	case Raise:
		return fmt.Sprintf("raise(%d)", a.Amount)
	case Discard:
		return fmt.Sprintf("discard(%d)", a.Index)
	default:
		return a.Kind.String()
	}
}

type actionJSON struct {
	Action string `json:"action"`
	Amount *int   `json:"amount,omitempty"` // raise only
	Index  *int   `json:"index,omitempty"`  // discard only
}

func (a Action) MarshalJSON() ([]byte, error) {
	out := actionJSON{Action: a.Kind.String()}
	switch a.Kind {
	case Raise:
		out.Amount = &a.Amount
	case Discard:
		out.Index = &a.Index
	}
	return json.Marshal(out)
}

func (a *Action) UnmarshalJSON(b []byte) error {
	var in actionJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	k, err := ParseKind(in.Action)
	if err != nil {
		return err
	}
	*a = Action{Kind: k}
	switch k {
	case Raise:
		if in.Amount == nil {
			return fmt.Errorf("raise requires amount")
		}
		a.Amount = *in.Amount
	case Discard:
		if in.Index == nil {
			return fmt.Errorf("discard requires index")
		}
		a.Index = *in.Index
	}
	return nil
}

// LegalSet is a bitmask over ActionKind.
type LegalSet uint8

func NewLegalSet(kinds ...ActionKind) LegalSet {
	var s LegalSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

func (s LegalSet) Has(k ActionKind) bool { return s&(1<<k) != 0 }
func (s LegalSet) Empty() bool           { return s == 0 }

func (s LegalSet) Kinds() []ActionKind {
	var out []ActionKind
	for k := range kindNames {
		if s.Has(ActionKind(k)) {
			out = append(out, ActionKind(k))
		}
	}
	return out
}

func (s LegalSet) Strings() []string {
	out := []string{}
	for _, k := range s.Kinds() {
		out = append(out, k.String())
	}
	return out
}

func (s LegalSet) MarshalJSON() ([]byte, error) { return json.Marshal(s.Strings()) }

func (s *LegalSet) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}
	var out LegalSet
	for _, n := range names {
		k, err := ParseKind(n)
		if err != nil {
			return err
		}
		out |= NewLegalSet(k)
	}
	*s = out
	return nil
}
