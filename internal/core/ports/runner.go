package ports

import (
	"context"

	"github.com/olusolaa/forge-deploy-automator/internal/core/domain"
)

// CommandRunner executes an external process with the working directory
// fixed to the project root. Implementations never return a Go error: launch
// failures and (in strict mode) nonzero exits are encoded in the result.
type CommandRunner interface {
	// Run executes argv directly, without shell interpretation.
	Run(ctx context.Context, strict bool, argv ...string) domain.CommandResult
	// RunShell hands cmdline to the system shell.
	RunShell(ctx context.Context, strict bool, cmdline string) domain.CommandResult
}
