package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/michaelmacinnis/modal/internal/engine"
)

func write(t *testing.T, text string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "modal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))

	return path
}

func TestDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("MODAL_MAX_STEPS", "")
	t.Setenv("MODAL_MODE", "")

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, engine.DefaultMaxSteps, c.MaxSteps)
	assert.Equal(t, "quiet", c.Mode)
	assert.Equal(t, zapcore.WarnLevel, c.Level())
	assert.Equal(t, filepath.Join(home, ".modal_history"), c.History)
	assert.True(t, c.UseStandard())
	assert.False(t, c.Watch)
	assert.Empty(t, c.Rules)
}

func TestHomeFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("MODAL_MAX_STEPS", "")
	t.Setenv("MODAL_MODE", "")

	text := "mode: trace\nrules: [\"~/rules/*.modal\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, Name), []byte(text), 0o600))

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "trace", c.Mode)
	assert.Equal(t, []string{filepath.Join(home, "rules/*.modal")}, c.Rules)
}

func TestLoad(t *testing.T) {
	t.Setenv("MODAL_MAX_STEPS", "")
	t.Setenv("MODAL_MODE", "")

	c, err := Load(write(t, `
rules:
  - math.modal
  - lists/*.modal
standard: false
mode: step-by-step
max_steps: 500
history: /tmp/history
watch: true
log_level: debug
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"math.modal", "lists/*.modal"}, c.Rules)
	assert.False(t, c.UseStandard())
	assert.Equal(t, "step-by-step", c.Mode)
	assert.Equal(t, 500, c.MaxSteps)
	assert.Equal(t, "/tmp/history", c.History)
	assert.True(t, c.Watch)
	assert.Equal(t, zapcore.DebugLevel, c.Level())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MODAL_MAX_STEPS", "42")
	t.Setenv("MODAL_MODE", "debug")

	c, err := Load(write(t, "max_steps: 500\nmode: trace\n"))
	require.NoError(t, err)

	assert.Equal(t, 42, c.MaxSteps)
	assert.Equal(t, "debug", c.Mode)
}

func TestInvalid(t *testing.T) {
	t.Setenv("MODAL_MAX_STEPS", "")
	t.Setenv("MODAL_MODE", "")

	for _, text := range []string{
		"max_steps: -1\n",
		"mode: loud\n",
		"log_level: chatty\n",
		"rules: {\n",
		"max_steps: lots\n",
	} {
		_, err := Load(write(t, text))
		assert.Error(t, err, text)
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	err = Validate(&T{MaxSteps: 0, Mode: "loud", LogLevel: "chatty"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_steps")
	assert.Contains(t, err.Error(), "mode")
	assert.Contains(t, err.Error(), "log_level")
}
