package cli

import (
	"fmt"
	"io"

	"github.com/blimu-dev/schemagen/internal/logger"
	"github.com/blimu-dev/schemagen/pkg/errors"
)

// ExitCode maps a command error to the process exit status: 0 on success,
// 2 for invalid invocation or configuration, 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.IsGenerationError(err):
		return 1
	case errors.Is(err, errors.ErrInvalidConfig):
		return 2
	}
	return 1
}

// ReportError writes err and its hints. With JSON logging enabled it goes to
// the logger so log collectors see one structured entry; otherwise it is
// printed to w.
func ReportError(err error, w io.Writer) {
	hint := errors.FlattenHints(err)
	if logger.JSONOutput {
		logger.Logger.Errorw("command failed", "error", err.Error(), "hint", hint)
		return
	}
	fmt.Fprintln(w, "error:", err)
	if hint != "" {
		fmt.Fprintln(w, "hint:", hint)
	}
}
