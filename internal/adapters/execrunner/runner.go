package execrunner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/olusolaa/forge-deploy-automator/internal/core/domain"
	"github.com/olusolaa/forge-deploy-automator/internal/core/ports"
)

// Runner executes external processes with the working directory pinned to
// the project root. It never returns a Go error: a command that cannot be
// launched yields Success=false with the launch error as stderr text, and a
// nonzero exit flips Success only in strict mode.
type Runner struct {
	workDir string
	logger  ports.Logger
}

var _ ports.CommandRunner = (*Runner)(nil)

func New(workDir string, logger ports.Logger) *Runner {
	return &Runner{workDir: workDir, logger: logger}
}

func (r *Runner) Run(ctx context.Context, strict bool, argv ...string) domain.CommandResult {
	if len(argv) == 0 {
		return domain.CommandResult{Success: false, Stderr: "empty command"}
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	return r.execute(ctx, cmd, strict, strings.Join(argv, " "))
}

func (r *Runner) RunShell(ctx context.Context, strict bool, cmdline string) domain.CommandResult {
	cmd := exec.CommandContext(ctx, "sh", "-c", cmdline)
	return r.execute(ctx, cmd, strict, cmdline)
}

func (r *Runner) execute(ctx context.Context, cmd *exec.Cmd, strict bool, display string) domain.CommandResult {
	var stdout, stderr bytes.Buffer
	cmd.Dir = r.workDir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debugf(ctx, "Executing command: %s", display)
	err := cmd.Run()

	result := domain.CommandResult{
		Success: true,
		Stdout:  strings.TrimRight(stdout.String(), " \t\r\n"),
		Stderr:  strings.TrimRight(stderr.String(), " \t\r\n"),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The process ran and exited nonzero; only strict callers care.
			if strict {
				result.Success = false
				if result.Stderr == "" {
					result.Stderr = err.Error()
				}
			}
			r.logger.Debugf(ctx, "Command exited nonzero (%d): %s", exitErr.ExitCode(), display)
		} else {
			result.Success = false
			if result.Stderr == "" {
				result.Stderr = err.Error()
			}
			r.logger.Debugf(ctx, "Command could not be run: %s: %v", display, err)
		}
	}

	return result
}
