package optimize

import (
	"context"
	"fmt"

	"github.com/olusolaa/forge-deploy-automator/internal/core/domain"
	"github.com/olusolaa/forge-deploy-automator/internal/core/ports"
)

const StepName = "application-optimize"

// Step issues the framework cache rebuilds and the queue restart, all
// non-strict: a missing sub-feature (no queue configured, closure routes)
// must not abort the deployment, and nothing is rolled back on partial
// failure.
type Step struct {
	phpBinary string
	runner    ports.CommandRunner
	logger    ports.Logger
}

func NewStep(phpBinary string, runner ports.CommandRunner, logger ports.Logger) *Step {
	return &Step{phpBinary: phpBinary, runner: runner, logger: logger}
}

func (s *Step) Name() string {
	return StepName
}

func (s *Step) Run(ctx context.Context, _ *domain.EnvSettings, _ *domain.RunReport) domain.StepResult {
	s.logger.Infof(ctx, "Optimizing application")

	artisanCmds := [][]string{
		{"artisan", "optimize:clear"},
		{"artisan", "config:cache"},
		{"artisan", "event:cache"},
		{"artisan", "route:cache"},
		{"artisan", "view:cache"},
		{"artisan", "queue:restart"},
	}

	failed := 0
	for _, args := range artisanCmds {
		argv := append([]string{s.phpBinary}, args...)
		res := s.runner.Run(ctx, false, argv...)
		if !res.Success {
			failed++
			s.logger.Warnf(ctx, "Command %s %s failed: %s", args[0], args[1], res.Stderr)
		}
	}

	result := domain.StepResult{
		Step:   StepName,
		Status: domain.StepStatusOK,
		Detail: fmt.Sprintf("%d command(s) issued", len(artisanCmds)),
	}
	if failed > 0 {
		result.Status = domain.StepStatusDegraded
		result.Detail = fmt.Sprintf("%d of %d command(s) could not be run", failed, len(artisanCmds))
	}
	return result
}
