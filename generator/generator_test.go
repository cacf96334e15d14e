package generator

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/arran4/go-interactions/parsers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
	"gopkg.in/yaml.v3"
)

// normalize collapses runs of blanks so gofmt alignment does not matter.
func normalize(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}

func TestGenerateTxtar(t *testing.T) {
	parsers.RunTxtarTests(t, os.DirFS("."), "testdata", map[string]parsers.TxtarHandler{
		"generate": func(t *testing.T, archive *txtar.Archive) {
			writer := &CollectingFileWriter{}
			written, err := GenerateWithFS(parsers.ArchiveFS(archive), writer, ".", nil)
			require.NoError(t, err)
			require.Equal(t, []string{"interactions_gen.go"}, written)

			got := normalize(string(writer.Files["interactions_gen.go"]))
			for _, want := range strings.Split(parsers.ArchiveWant(archive), "\n") {
				want = normalize(want)
				if want == "" {
					continue
				}
				assert.Contains(t, got, want)
			}
		},
	})
}

var pingFS = fstest.MapFS{
	"go.mod": {Data: []byte("module example.com/bot\n")},
	"bot/ping.go": {Data: []byte(`package bot

// Ping checks the bot is alive.
//interactions:command name="ping"
type Ping struct {
	// Text to echo back.
	Text string
}
`)},
}

func TestGenerateWithFSRecursive(t *testing.T) {
	fsys := fstest.MapFS{}
	for k, v := range pingFS {
		fsys[k] = v
	}
	fsys["bot/testdata/skip.go"] = &fstest.MapFile{Data: []byte("package skip\n\nthis does not parse\n")}
	fsys["_scratch/skip.go"] = &fstest.MapFile{Data: []byte("package skip\n\nthis does not parse\n")}
	fsys["nested/go.mod"] = &fstest.MapFile{Data: []byte("module example.com/nested\n")}
	fsys["nested/skip.go"] = &fstest.MapFile{Data: []byte("package skip\n\nthis does not parse\n")}

	writer := &CollectingFileWriter{}
	written, err := GenerateWithFS(fsys, writer, "root", &parsers.ParseOptions{Recursive: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"root/bot/interactions_gen.go"}, written)
	assert.Contains(t, string(writer.Files["root/bot/interactions_gen.go"]), "package bot")
}

func TestGenerateRemovesStaleFile(t *testing.T) {
	fsys := fstest.MapFS{
		"bot.go":              {Data: []byte("package bot\n")},
		"interactions_gen.go": {Data: []byte("package bot\n")},
	}
	writer := &CollectingFileWriter{}
	written, err := GenerateWithFS(fsys, writer, ".", nil)
	require.NoError(t, err)
	assert.Empty(t, written)
	assert.Equal(t, []string{"interactions_gen.go"}, writer.Removed)
}

func TestGenerateNoPackages(t *testing.T) {
	_, err := GenerateWithFS(fstest.MapFS{"README.md": {Data: []byte("hi")}}, &CollectingFileWriter{}, ".", nil)
	assert.ErrorIs(t, err, ErrNoPackages)
}

func TestGenerateReportsPosition(t *testing.T) {
	fsys := fstest.MapFS{
		"bot.go": {Data: []byte(`package bot

//interactions:command name="Ping"
type Ping struct{}
`)},
	}
	_, err := GenerateWithFS(fsys, &CollectingFileWriter{}, ".", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bot.go:3:")
	assert.Contains(t, err.Error(), "lowercase")
}

func TestCheck(t *testing.T) {
	fsys := fstest.MapFS{}
	for k, v := range pingFS {
		fsys[k] = v
	}
	opts := &parsers.ParseOptions{SearchPaths: []string{"bot"}}

	err := CheckWithFS(fsys, opts, CheckOptions{Context: 3})
	var stale *StaleError
	require.ErrorAs(t, err, &stale)
	require.Len(t, stale.Files, 1)
	assert.Equal(t, "bot/interactions_gen.go", stale.Files[0].Path)
	assert.Contains(t, stale.Error(), "bot/interactions_gen.go")

	writer := &CollectingFileWriter{}
	_, err = GenerateWithFS(fsys, writer, ".", opts)
	require.NoError(t, err)
	fsys["bot/interactions_gen.go"] = &fstest.MapFile{Data: writer.Files["bot/interactions_gen.go"]}
	assert.NoError(t, CheckWithFS(fsys, opts, CheckOptions{}))

	edited := strings.Replace(string(writer.Files["bot/interactions_gen.go"]), `"ping"`, `"pong"`, 1)
	fsys["bot/interactions_gen.go"] = &fstest.MapFile{Data: []byte(edited)}
	err = CheckWithFS(fsys, opts, CheckOptions{Context: 1})
	require.ErrorAs(t, err, &stale)
	assert.Contains(t, stale.Files[0].Diff, `"pong"`)
	assert.Contains(t, stale.Files[0].Diff, `"ping"`)
}

func TestValidateAndList(t *testing.T) {
	models, err := Packages(pingFS, &parsers.ParseOptions{Recursive: true})
	require.NoError(t, err)

	s := Validate(models)
	assert.Equal(t, Summary{Packages: 1, Commands: 1}, s)
	assert.Equal(t, "1 packages: 1 commands, 0 groups, 0 choices, 0 modals", s.String())

	var text bytes.Buffer
	require.NoError(t, List(&text, models, FormatText))
	assert.Equal(t, "example.com/bot/bot (bot)\n  command Ping ping\n    option text string (required)\n", text.String())

	var js bytes.Buffer
	require.NoError(t, List(&js, models, FormatJSON))
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "example.com/bot/bot", decoded[0]["package"])

	var ym bytes.Buffer
	require.NoError(t, List(&ym, models, FormatYAML))
	var fromYAML []map[string]any
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &fromYAML))
	require.Len(t, fromYAML, 1)
	assert.Equal(t, "bot", fromYAML[0]["dir"])
	assert.Contains(t, ym.String(), "kind: required")

	assert.ErrorContains(t, List(&js, models, "xml"), "unknown format")
}

func TestFormat(t *testing.T) {
	src := `package bot

//interactions:choice
type Unit int64

const (
	//interactions:choice name_localizations=unitNames,name="Minute"
	Minute Unit = 60
)

// Ping checks the bot is alive.
//interactions:command   dm_permission=false,name="ping"
type Ping struct {
	//interactions:option max_value=5 , min_value=1
	Times *int64
	//interactions:option rename="who"
	User string
}
`
	want := `package bot

//interactions:choice
type Unit int64

const (
	//interactions:choice name="Minute", name_localizations=unitNames
	Minute Unit = 60
)

// Ping checks the bot is alive.
//interactions:command name="ping", dm_permission=false
type Ping struct {
	//interactions:option max_value=5, min_value=1
	Times *int64
	//interactions:option rename="who"
	User string
}
`
	fsys := fstest.MapFS{"bot.go": {Data: []byte(src)}}

	changed, err := FormatWithFS(fsys, &CollectingFileWriter{}, ".", nil, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"bot.go"}, changed)

	writer := &CollectingFileWriter{}
	_, err = FormatWithFS(fsys, writer, ".", nil, true)
	require.NoError(t, err)
	assert.Equal(t, want, string(writer.Files["bot.go"]))

	fsys["bot.go"] = &fstest.MapFile{Data: []byte(want)}
	changed, err = FormatWithFS(fsys, &CollectingFileWriter{}, ".", nil, true)
	require.NoError(t, err)
	assert.Empty(t, changed)
}

func TestFormatInvalidDirective(t *testing.T) {
	fsys := fstest.MapFS{"bot.go": {Data: []byte("package bot\n\n//interactions:command nme=\"ping\"\ntype Ping struct{}\n")}}
	_, err := FormatWithFS(fsys, &CollectingFileWriter{}, ".", nil, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bot.go:3:")
	assert.Contains(t, err.Error(), "invalid argument name `nme`")
}

func TestInit(t *testing.T) {
	fsys := fstest.MapFS{"bot.go": {Data: []byte("// Package bot is a bot.\npackage bot\n")}}
	writer := &CollectingFileWriter{}
	target, err := InitWithFS(fsys, writer, "proj")
	require.NoError(t, err)
	assert.Equal(t, "proj/generate.go", target)
	assert.Equal(t, "package bot\n\n"+GenerateDirective+"\n", string(writer.Files["proj/generate.go"]))

	fsys["generate.go"] = &fstest.MapFile{Data: []byte("package bot\n")}
	_, err = InitWithFS(fsys, writer, "proj")
	assert.True(t, errors.Is(err, ErrExists))
}

func TestInitDirectoryName(t *testing.T) {
	writer := &CollectingFileWriter{}
	_, err := InitWithFS(fstest.MapFS{}, writer, "my-bot")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(writer.Files["my-bot/generate.go"]), "package my_bot\n"))
}

func TestHelpSyntax(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HelpSyntax(&buf))
	assert.Contains(t, buf.String(), "//interactions:command")
	assert.Contains(t, buf.String(), "//interactions:input")
}
