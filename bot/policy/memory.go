package policy

const (
	minStrength = 1
	maxStrength = 5
)

// Memory is what the policy carries from one decision to the next within a
// deal. HandStrength is 1 (weakest) to 5 (quads-like) and is overwritten, not
// accumulated.
type Memory struct {
	HasPair      bool
	SuitMatch    bool
	HandStrength int
}

func NewMemory() Memory {
	return Memory{HandStrength: minStrength}
}

func (m *Memory) setStrength(s int) {
	m.HandStrength = max(minStrength, min(maxStrength, s))
}
