package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jaa/cast2gif/internal/config"
	"github.com/jaa/cast2gif/internal/doctor"
	"github.com/jaa/cast2gif/internal/output"
	"github.com/jaa/cast2gif/internal/pipeline"
	"github.com/spf13/cobra"
)

func newDoctorCommand(app *AppContext) *cobra.Command {
	themePath := ""

	cmd := &cobra.Command{
		Use:   "doctor [output_dir]",
		Short: "Check theme, output directory and terminal readiness",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir := "."
			if len(args) == 1 {
				outputDir = args[0]
			}
			orchestrator := pipeline.New(newConverters(config.DefaultTheme()), app.Logger)
			checker := doctor.NewChecker(func() bool {
				return output.IsTerminal(app.IO.ErrOut)
			}, orchestrator.Supports)
			report := checker.Check(doctor.Options{ThemePath: themePath, Env: app.Env, OutputDir: outputDir})

			if app.Opts.JSON {
				encoder := json.NewEncoder(app.IO.Out)
				if err := encoder.Encode(report); err != nil {
					return err
				}
			} else {
				checks := append([]doctor.Check{}, report.Checks...)
				sort.SliceStable(checks, func(i, j int) bool {
					return checks[i].Name < checks[j].Name
				})
				for _, check := range checks {
					fmt.Fprintf(app.IO.Out, "[%s] %s: %s\n", check.Severity, check.Name, check.Message)
				}
			}

			if report.HasErrors() {
				return fmt.Errorf("doctor found %d error(s)", report.ErrorCount())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&themePath, "theme", app.Env[config.EnvTheme], "Path to a YAML theme file")
	return cmd
}
