package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hardCard = "I solved the daily Clues by Sam, Nov 3rd 2025 (Hard), in 2:15\n" +
	"🟩🟩\n" +
	"🟩🟡\n" +
	"🟩\n" +
	"cluesbysam.com"

func TestScoreCmd(t *testing.T) {
	cmd := newScoreCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(hardCard))
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "2025-11-03")
	assert.Contains(t, out.String(), "Hard")
	assert.Contains(t, out.String(), "221")
}

func TestScoreCmd_NotACard(t *testing.T) {
	cmd := newScoreCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("good morning"))
	cmd.SetArgs([]string{})

	assert.ErrorContains(t, cmd.Execute(), "not a Clues by Sam share card")
}

func TestScoreCmd_UnknownProfile(t *testing.T) {
	cmd := newScoreCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(hardCard))
	cmd.SetArgs([]string{"--multipliers", "silly"})

	assert.ErrorContains(t, cmd.Execute(), "unknown multiplier profile")
}
