package cli

import (
	"errors"

	"github.com/jaa/cast2gif/internal/exitcode"
	"github.com/jaa/cast2gif/internal/pipeline"
)

// mapExitCode collapses every failure onto one code; the error class only
// decides how the failure is reported.
func mapExitCode(err error) int {
	if err == nil {
		return exitcode.Success
	}
	return exitcode.Failure
}

// isDefect reports whether err belongs on the internal-error channel.
func isDefect(err error) bool {
	var defect *pipeline.DefectError
	return errors.As(err, &defect)
}
