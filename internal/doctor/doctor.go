package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jaa/cast2gif/internal/config"
	"github.com/jaa/cast2gif/internal/plan"
)

type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

type Check struct {
	Severity Severity `json:"severity"`
	Name     string   `json:"name"`
	Message  string   `json:"message"`
}

type Report struct {
	Checks []Check `json:"checks"`
}

func (r Report) HasErrors() bool {
	return r.ErrorCount() > 0
}

func (r Report) ErrorCount() int {
	count := 0
	for _, check := range r.Checks {
		if check.Severity == SeverityError {
			count++
		}
	}
	return count
}

// Options selects what the checker looks at.
type Options struct {
	ThemePath string
	Env       map[string]string
	OutputDir string
}

type Checker struct {
	LoadTheme     func(config.LoadOptions) (config.Theme, error)
	CheckWritable func(string) error
	Interactive   func() bool
	Supports      func(plan.Format) bool
}

func NewChecker(interactive func() bool, supports func(plan.Format) bool) *Checker {
	return &Checker{
		LoadTheme:     config.LoadTheme,
		CheckWritable: checkDirWritable,
		Interactive:   interactive,
		Supports:      supports,
	}
}

func (c *Checker) Check(opts Options) Report {
	report := Report{Checks: []Check{}}
	add := func(severity Severity, name, format string, args ...any) {
		report.Checks = append(report.Checks, Check{Severity: severity, Name: name, Message: fmt.Sprintf(format, args...)})
	}

	theme, err := c.LoadTheme(config.LoadOptions{ExplicitPath: opts.ThemePath, Env: opts.Env})
	switch {
	case err != nil:
		add(SeverityError, "theme", "%v", err)
	case strings.TrimSpace(opts.ThemePath) == "":
		add(SeverityInfo, "theme", "using built-in theme (foreground %s, background %s)", theme.Foreground, theme.Background)
	default:
		add(SeverityInfo, "theme", "%s loaded (foreground %s, background %s)", opts.ThemePath, theme.Foreground, theme.Background)
	}

	dir := strings.TrimSpace(opts.OutputDir)
	if dir == "" {
		dir = "."
	}
	if abs, absErr := filepath.Abs(dir); absErr == nil {
		dir = abs
	}
	if err := c.CheckWritable(dir); err != nil {
		add(SeverityError, "output", "%s is not writable: %v", dir, err)
	} else {
		add(SeverityInfo, "output", "%s is writable", dir)
	}

	if c.Interactive != nil && c.Interactive() {
		add(SeverityInfo, "terminal", "stderr is a terminal; progress bars are shown")
	} else {
		add(SeverityWarn, "terminal", "stderr is not a terminal; progress is printed as lines (use --progress always to force bars)")
	}

	for _, format := range plan.Formats() {
		if c.Supports != nil && c.Supports(format) {
			add(SeverityInfo, "format", "%s output available", format)
			continue
		}
		add(SeverityWarn, "format", "%s output is not implemented", format)
	}

	return report
}

func checkDirWritable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}

	file, err := os.CreateTemp(path, ".cast2gif-write-check-*")
	if err != nil {
		return err
	}
	name := file.Name()
	_ = file.Close()
	_ = os.Remove(name)
	return nil
}
