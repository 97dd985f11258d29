package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplayCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"replay", "replay/testdata/deal.jsonl", "--seed", "1", "--database-url", "", "--log-level", "error"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "round 1 street 0: raise(4)", lines[0])
	assert.Equal(t, "round 1 street 2: discard(2)", lines[1])
	assert.Equal(t, "round 2 street 4: check", lines[4])
	assert.Contains(t, lines[5], "deals=2 net=22")
}

func TestSecureBaseSeedVaries(t *testing.T) {
	assert.NotEqual(t, secureBaseSeed(), secureBaseSeed())
}
