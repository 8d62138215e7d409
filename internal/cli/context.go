package cli

import (
	"io"
	"log/slog"
)

type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

type GlobalOptions struct {
	Format        string
	Force         bool
	FrameInterval string
	ThemePath     string
	Progress      string
	JSON          bool
	Quiet         bool
	Verbose       bool
	NoColor       bool
}

type AppContext struct {
	Build  BuildInfo
	IO     IOStreams
	Opts   GlobalOptions
	Logger *slog.Logger
	// Env holds CAST2GIF_* lookups; nil falls back to the process env.
	Env map[string]string
}
