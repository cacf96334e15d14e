package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pingSource = `package bot

// Ping checks the bot is alive.
//interactions:command   dm_permission=false,name="ping"
type Ping struct {
	// Text to echo back.
	Text string
}
`

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd("test", "none", "unknown")
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGenerateAndCheck(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"go.mod":     "module example.com/bot\n",
		"bot/bot.go": pingSource,
	})

	_, _, err := run(t, "check", "--dir", dir, "--recursive", "--color=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of date")

	out, _, err := run(t, "generate", "--dir", dir, "--recursive")
	require.NoError(t, err)
	target := filepath.Join(dir, "bot", "interactions_gen.go")
	assert.Equal(t, "Generated "+target+"\n", out)
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "// Code generated by interactgen. DO NOT EDIT."))

	out, _, err = run(t, "check", "--dir", dir, "--recursive")
	require.NoError(t, err)
	assert.Equal(t, "Generated files are up to date.\n", out)
}

func TestConfigFile(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"go.mod":            "module example.com/bot\n",
		"bot/bot.go":        pingSource,
		".interactgen.yaml": "recursive: true\nformat: json\n",
	})
	out, _, err := run(t, "list", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `"package": "example.com/bot/bot"`)

	out, _, err = run(t, "list", "--dir", dir, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "command Ping ping")
}

func TestEnvironment(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"go.mod":     "module example.com/bot\n",
		"bot/bot.go": pingSource,
	})
	t.Setenv("INTERACTGEN_RECURSIVE", "true")
	out, _, err := run(t, "validate", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "Validation successful. 1 packages: 1 commands, 0 groups, 0 choices, 0 modals\n", out)
}

func TestFormat(t *testing.T) {
	dir := writeProject(t, map[string]string{"bot.go": pingSource})

	out, _, err := run(t, "format", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "Would format "+filepath.Join(dir, "bot.go")+"\n", out)

	_, _, err = run(t, "format", "--dir", dir, "--inplace")
	require.NoError(t, err)
	content, err := os.ReadFile(filepath.Join(dir, "bot.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `//interactions:command name="ping", dm_permission=false`)
}

func TestInitAndSyntax(t *testing.T) {
	dir := writeProject(t, map[string]string{"bot.go": pingSource})
	out, _, err := run(t, "init", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "Generated "+filepath.Join(dir, "generate.go")+"\n", out)

	_, _, err = run(t, "init", "--dir", dir)
	assert.ErrorContains(t, err, "already exists")

	out, _, err = run(t, "syntax")
	require.NoError(t, err)
	assert.Contains(t, out, "interactgen Syntax Guide")
}

func TestValidateReportsErrors(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"bot.go": "package bot\n\n//interactions:command name=\"ping\"\ntype Ping struct{}\n",
	})
	_, _, err := run(t, "validate", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description is required")
}
