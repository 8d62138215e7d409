package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jaa/cast2gif/internal/config"
	"github.com/jaa/cast2gif/internal/fileops"
	"github.com/jaa/cast2gif/internal/plan"
	"github.com/spf13/cobra"
)

func newThemeCommand(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Create and check YAML theme files",
	}
	cmd.AddCommand(newThemeInitCommand(app))
	cmd.AddCommand(newThemeValidateCommand(app))
	return cmd
}

func newThemeInitCommand(app *AppContext) *cobra.Command {
	force := false

	cmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Write a starter theme file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return &plan.ArgumentError{Err: err}
			}
			f, err := fileops.OpenOutput(path, force)
			if err != nil {
				return &plan.PathError{Op: "open theme file", Path: path, Err: err}
			}
			if _, err := f.WriteString(config.DefaultThemeTemplate()); err != nil {
				_ = fileops.Discard(f)
				return &plan.PathError{Op: "write theme file", Path: path, Err: err}
			}
			if err := f.Close(); err != nil {
				return &plan.PathError{Op: "write theme file", Path: path, Err: err}
			}

			fmt.Fprintf(app.IO.Out, "Wrote theme: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing theme file")
	return cmd
}

func newThemeValidateCommand(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a theme file and the CAST2GIF_* overrides",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.Env[config.EnvTheme]
			if app.Env == nil {
				path = os.Getenv(config.EnvTheme)
			}
			if len(args) == 1 {
				path = args[0]
			}
			theme, err := config.LoadTheme(config.LoadOptions{ExplicitPath: path, Env: app.Env})
			if err != nil {
				return &plan.ArgumentError{Err: err}
			}

			if app.Opts.JSON {
				payload := map[string]any{"valid": true, "theme": theme}
				encoded, _ := json.Marshal(payload)
				fmt.Fprintln(app.IO.Out, string(encoded))
			} else {
				fmt.Fprintln(app.IO.Out, "Theme is valid.")
			}
			return nil
		},
	}
}
