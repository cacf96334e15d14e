package main

import (
	"errors"
	"fmt"

	"github.com/arran4/go-interactions/generator"
	"github.com/spf13/cobra"
)

func (a *app) generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Write interactions_gen.go for every annotated package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			written, err := generator.Generate(a.dir(), a.parseOptions())
			if err != nil {
				return err
			}
			for _, f := range written {
				fmt.Fprintf(cmd.OutOrStdout(), "Generated %s\n", f)
			}
			return nil
		},
	}
}

func (a *app) checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fail when a generated file is out of date",
		Long: `check renders every annotated package and compares the result with the
committed interactions_gen.go, printing a side by side diff of stale files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := generator.Check(a.dir(), a.parseOptions(), generator.CheckOptions{
				Context: a.v.GetInt("context"),
				Color:   a.v.GetBool("color"),
			})
			var stale *generator.StaleError
			if errors.As(err, &stale) {
				for _, f := range stale.Files {
					fmt.Fprintf(cmd.ErrOrStderr(), "--- %s\n%s\n", f.Path, f.Diff)
				}
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Generated files are up to date.")
			return nil
		},
	}
	cmd.Flags().Int("context", 3, "Unchanged lines shown around each change (-1 for all)")
	cmd.Flags().Bool("color", true, "Color the diff on terminals")
	return a.bind(cmd)
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Parse the annotated packages without writing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			models, err := generator.Packages(dirFS(a.dir()), a.parseOptions())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Validation successful. %s\n", generator.Validate(models))
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the annotated declarations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			models, err := generator.Packages(dirFS(a.dir()), a.parseOptions())
			if err != nil {
				return err
			}
			return generator.List(cmd.OutOrStdout(), models, a.v.GetString("format"))
		},
	}
	cmd.Flags().String("format", generator.FormatText, "Output format (text|json|yaml)")
	return a.bind(cmd)
}

func (a *app) formatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format",
		Short: "Rewrite directives with canonically ordered arguments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inplace := a.v.GetBool("inplace")
			changed, err := generator.Format(a.dir(), a.parseOptions(), inplace)
			if err != nil {
				return err
			}
			verb := "Would format"
			if inplace {
				verb = "Formatted"
			}
			for _, f := range changed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, f)
			}
			return nil
		},
	}
	cmd.Flags().Bool("inplace", false, "Modify files in place")
	return a.bind(cmd)
}

func (a *app) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a generate.go holding the go:generate directive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, err := generator.Init(a.dir())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %s\n", target)
			return nil
		},
	}
}

func (a *app) syntaxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "syntax",
		Short: "Print the directive reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return generator.HelpSyntax(cmd.OutOrStdout())
		},
	}
}
