package optimize

import (
	"context"
	"os"
	"path/filepath"

	"github.com/olusolaa/forge-deploy-automator/internal/core/domain"
	"github.com/olusolaa/forge-deploy-automator/internal/core/ports"
)

const LinkStepName = "storage-link"

// LinkStep ensures public/storage points at the shared storage directory.
// Already-linked trees are reported as skipped so repeated runs stay quiet.
type LinkStep struct {
	phpBinary  string
	publicPath string
	runner     ports.CommandRunner
	logger     ports.Logger
}

func NewLinkStep(phpBinary, publicPath string, runner ports.CommandRunner, logger ports.Logger) *LinkStep {
	return &LinkStep{phpBinary: phpBinary, publicPath: publicPath, runner: runner, logger: logger}
}

func (s *LinkStep) Name() string {
	return LinkStepName
}

func (s *LinkStep) Run(ctx context.Context, _ *domain.EnvSettings, _ *domain.RunReport) domain.StepResult {
	linkPath := filepath.Join(s.publicPath, "storage")
	if _, err := os.Lstat(linkPath); err == nil {
		return domain.StepResult{
			Step:   LinkStepName,
			Status: domain.StepStatusSkipped,
			Detail: "public/storage already present",
		}
	}

	res := s.runner.Run(ctx, false, s.phpBinary, "artisan", "storage:link")
	if !res.Success {
		s.logger.Warnf(ctx, "storage:link failed: %s", res.Stderr)
		return domain.StepResult{
			Step:   LinkStepName,
			Status: domain.StepStatusDegraded,
			Detail: "storage:link could not be run",
		}
	}
	return domain.StepResult{
		Step:   LinkStepName,
		Status: domain.StepStatusOK,
		Detail: "storage link ensured",
	}
}
