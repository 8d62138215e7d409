package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/jaa/cast2gif/internal/config"
	"github.com/jaa/cast2gif/internal/exitcode"
	"github.com/jaa/cast2gif/internal/logging"
	"github.com/jaa/cast2gif/internal/output"
	"github.com/jaa/cast2gif/internal/pipeline"
	"github.com/jaa/cast2gif/internal/plan"
	"github.com/spf13/cobra"
)

const issueTracker = "https://github.com/jaa/cast2gif/issues"

const defectMessage = "The program has encountered a critical internal error and will now exit. " +
	"This is a bug. Please report it on our issue tracker: " + issueTracker

// abort ends the process when reporting a defect fails itself.
var abort = os.Exit

func Execute(build BuildInfo, streams IOStreams) int {
	wd, _ := os.Getwd()
	return run(newApp(build, streams, wd, os.Environ()), os.Args[1:])
}

// newApp creates the bootstrap logger before anything else, so problems
// loading the environment are reported through it.
func newApp(build BuildInfo, streams IOStreams, wd string, environ []string) *AppContext {
	logger, _ := logging.New(streams.ErrOut, logging.Options{})
	env, err := loadEnvironment(wd, environ)
	if err != nil {
		logger.Warn("ignoring environment files", "error", err)
	}
	return &AppContext{Build: build, IO: streams, Env: env, Logger: logger}
}

// run is the only place where failures are reported. Typed errors produce
// one error line; defects and panics produce the fixed defect message.
func run(app *AppContext, args []string) (code int) {
	if app.Logger == nil {
		app.Logger, _ = logging.New(app.IO.ErrOut, logging.Options{})
	}
	defer func() {
		if r := recover(); r != nil {
			reportDefect(app, pipeline.Recovered(r, debug.Stack()))
			code = exitcode.Failure
		}
	}()

	root := newRootCommand(app)
	root.SetArgs(args)
	root.SetOut(app.IO.Out)
	root.SetErr(app.IO.ErrOut)

	err := root.Execute()
	if err == nil {
		return exitcode.Success
	}
	report(app, err)
	return mapExitCode(err)
}

func report(app *AppContext, err error) {
	if isDefect(err) {
		reportDefect(app, err)
		return
	}
	app.Logger.Error(err.Error())
}

func reportDefect(app *AppContext, err error) {
	defer func() {
		if r := recover(); r != nil {
			abort(exitcode.Failure)
		}
	}()

	app.Logger.Error(defectMessage)
	var defect *pipeline.DefectError
	if errors.As(err, &defect) && len(defect.Stack) > 0 {
		app.Logger.Debug("internal error", "error", err.Error(), "stack", string(defect.Stack))
		return
	}
	app.Logger.Debug("internal error", "error", err.Error())
}

func newRootCommand(app *AppContext) *cobra.Command {
	showVersion := false

	root := &cobra.Command{
		Use:   "cast2gif <cast_file> <out_file>",
		Short: "Render asciinema recordings to GIF or PNG",
		Long:  "cast2gif renders an asciicast v2 recording into an animated GIF or a PNG of its final frame, showing rasterizing and sequencing progress while it works.",
		Args: func(cmd *cobra.Command, args []string) error {
			if showVersion || len(args) == 0 {
				return nil
			}
			if len(args) != 2 {
				return &plan.ArgumentError{Err: fmt.Errorf("expected <cast_file> and <out_file>, got %d argument(s)", len(args))}
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return installLogger(app)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				printVersion(app)
				return nil
			}
			if len(args) == 0 {
				return cmd.Help()
			}
			return runConversion(app, args[0], args[1])
		},
		SilenceErrors:     true,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	defaultTheme := app.Env[config.EnvTheme]
	if app.Env == nil {
		defaultTheme = os.Getenv(config.EnvTheme)
	}
	root.Flags().StringVarP(&app.Opts.Format, "format", "F", "", "Output format: gif, png, or svg (default: from the output file extension)")
	root.Flags().BoolVarP(&app.Opts.Force, "force", "f", false, "Overwrite the output file if it exists")
	root.Flags().StringVarP(&app.Opts.FrameInterval, "frame-interval", "i", plan.DefaultFrameInterval, "Seconds between rendered frames")
	root.Flags().StringVar(&app.Opts.ThemePath, "theme", defaultTheme, "Path to a YAML theme file")
	root.Flags().StringVar(&app.Opts.Progress, "progress", "auto", "Progress rendering mode: auto, always, or never")
	root.Flags().BoolVar(&showVersion, "version", false, "Print version info")
	root.PersistentFlags().BoolVar(&app.Opts.JSON, "json", false, "Emit newline-delimited JSON events and logs")
	root.PersistentFlags().BoolVarP(&app.Opts.Quiet, "quiet", "q", false, "Hide progress output")
	root.PersistentFlags().BoolVarP(&app.Opts.Verbose, "verbose", "v", false, "Increase diagnostic output")
	root.PersistentFlags().BoolVar(&app.Opts.NoColor, "no-color", false, "Disable color output")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &plan.ArgumentError{Err: err}
	})

	root.AddCommand(newThemeCommand(app))
	root.AddCommand(newDoctorCommand(app))
	root.AddCommand(newVersionCommand(app))

	return root
}

func installLogger(app *AppContext) error {
	format := "console"
	if app.Opts.JSON {
		format = "json"
	}
	logger, err := logging.New(app.IO.ErrOut, logging.Options{
		Format:  format,
		Verbose: app.Opts.Verbose,
		Color:   !app.Opts.NoColor && output.IsTerminal(app.IO.ErrOut),
	})
	if err != nil {
		return err
	}
	if err := logging.Install(logger); err != nil && !errors.Is(err, logging.ErrAlreadyInstalled) {
		return err
	}
	app.Logger = logger
	return nil
}

func printVersion(app *AppContext) {
	version := app.Build.Version
	if version == "" {
		version = "dev"
	}
	commit := app.Build.Commit
	if commit == "" {
		commit = "unknown"
	}
	date := app.Build.Date
	if date == "" {
		date = "unknown"
	}

	fmt.Fprintf(app.IO.Out, "cast2gif version %s\ncommit: %s\nbuild_date: %s\n", version, commit, date)
}
