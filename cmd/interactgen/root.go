package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arran4/go-interactions/internal/logger"
	"github.com/arran4/go-interactions/parsers"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	_ "github.com/arran4/go-interactions/parsers/commentv1"
)

// ConfigFile is read from the project directory when present.
const ConfigFile = ".interactgen.yaml"

// app holds the settings shared by all subcommands.
type app struct {
	v *viper.Viper
}

func newRootCmd(version, commit, date string) *cobra.Command {
	a := &app{v: viper.New()}
	a.v.SetEnvPrefix("INTERACTGEN")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "interactgen",
		Short: "Generate Discord interaction code from annotated Go types",
		Long: `interactgen reads //interactions: directives on Go types and writes
interactions_gen.go files implementing command, choice and modal parsing and
schema building on top of github.com/arran4/go-interactions.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
	}

	flags := root.PersistentFlags()
	flags.String("dir", ".", "The project root directory")
	flags.Bool("recursive", false, "Search packages below the directory")
	flags.StringSlice("path", nil, "Paths to search for packages (relative to dir)")
	flags.String("parser", parsers.DefaultParser, fmt.Sprintf("Directive parser (%s)", strings.Join(parsers.Names(), ", ")))
	flags.String("log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	flags.String("log-file", "", "Write logs to file instead of stderr")
	if err := a.v.BindPFlags(flags); err != nil {
		panic(err)
	}

	root.AddCommand(
		a.generateCmd(),
		a.checkCmd(),
		a.validateCmd(),
		a.listCmd(),
		a.formatCmd(),
		a.initCmd(),
		a.syntaxCmd(),
	)
	return root
}

// load reads the config file of the project directory and configures the logger.
func (a *app) load() error {
	config := filepath.Join(a.v.GetString("dir"), ConfigFile)
	if _, err := os.Stat(config); err == nil {
		a.v.SetConfigFile(config)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read %s: %w", config, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := logger.Configure(a.v.GetString("log-level"), a.v.GetString("log-file")); err != nil {
		return fmt.Errorf("failed to configure logger: %w", err)
	}
	if used := a.v.ConfigFileUsed(); used != "" {
		logger.Debug("loaded config", "file", used)
	}
	return nil
}

func (a *app) dir() string {
	return a.v.GetString("dir")
}

func (a *app) parseOptions() *parsers.ParseOptions {
	return &parsers.ParseOptions{
		Parser:      a.v.GetString("parser"),
		SearchPaths: a.v.GetStringSlice("path"),
		Recursive:   a.v.GetBool("recursive"),
	}
}

// bind registers the local flags of cmd with the shared settings.
func (a *app) bind(cmd *cobra.Command) *cobra.Command {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		panic(err)
	}
	return cmd
}

func dirFS(dir string) fs.FS {
	return os.DirFS(dir)
}
