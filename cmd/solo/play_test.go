package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayQuitPrintsSummary(t *testing.T) {
	var out bytes.Buffer
	cfg := &Config{count: 5, duration: time.Minute, seed: 7}

	err := play(context.Background(), cfg, strings.NewReader("skip\n1+1\nquit\n"), &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Skipped (-0)")
	assert.Contains(t, text, "Use each of the four digits exactly once.")
	assert.Contains(t, text, "Skipped: 1")
	assert.Contains(t, text, "Score: 0")
}

func TestPlayStopsAtEOF(t *testing.T) {
	var out bytes.Buffer
	cfg := &Config{count: 5, duration: time.Minute, seed: 7}

	require.NoError(t, play(context.Background(), cfg, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "Accuracy: 0%")
}

func TestFlagsFromEnv(t *testing.T) {
	t.Setenv("MAKETEN_COUNT", "12")
	t.Setenv("MAKETEN_DURATION", "45s")

	cfg := &Config{}
	cmd := newCmd(cfg)
	require.NoError(t, cmd.ParseFlags(nil))

	assert.Equal(t, 12, cfg.count)
	assert.Equal(t, 45*time.Second, cfg.duration)
	assert.NoError(t, cfg.validate())
}

func TestValidate(t *testing.T) {
	assert.Error(t, (&Config{count: 0, duration: time.Minute}).validate())
	assert.Error(t, (&Config{count: 3, duration: time.Millisecond}).validate())
}
