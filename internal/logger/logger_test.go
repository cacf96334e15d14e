package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	saved := Logger
	t.Cleanup(func() { Logger = saved })
}

func TestSetOutputKeepsLevel(t *testing.T) {
	restore(t)
	Logger.SetLevel(log.InfoLevel)
	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("hidden")
	Info("generated", "file", "bot/interactions_gen.go")
	Warn("careful")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "generated")
	assert.Contains(t, out, "file=bot/interactions_gen.go")
	assert.Contains(t, out, "careful")
}

func TestConfigureFile(t *testing.T) {
	restore(t)
	file := filepath.Join(t.TempDir(), "interactgen.log")
	require.NoError(t, Configure("debug", file))
	Debug("parsed package", "dir", "bot")
	Error("failed")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "parsed package")
	assert.Contains(t, string(data), "failed")
}

func TestConfigureEnvironment(t *testing.T) {
	restore(t)
	t.Setenv("INTERACTIONS_LOG_LEVEL", "error")
	require.NoError(t, Configure("", ""))
	assert.Equal(t, log.ErrorLevel, Logger.GetLevel())

	require.NoError(t, Configure("WARN", ""))
	assert.Equal(t, log.WarnLevel, Logger.GetLevel())
}

func TestConfigureBadFile(t *testing.T) {
	restore(t)
	assert.Error(t, Configure("info", filepath.Join(t.TempDir(), "missing", "x.log")))
}
