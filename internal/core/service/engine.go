package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/olusolaa/forge-deploy-automator/internal/config"
	"github.com/olusolaa/forge-deploy-automator/internal/core/domain"
	"github.com/olusolaa/forge-deploy-automator/internal/core/ports"
	"github.com/olusolaa/forge-deploy-automator/internal/errors"
)

// DeployEngine sequences the remediation pipeline: verify the env-file
// precondition, parse the configuration once, run every registered step
// strictly in order, then render the collected report. The precondition is
// the only hard stop; steps report ok/degraded/skipped/failed outcomes and
// the run always carries on to completion.
type DeployEngine struct {
	registry  *ComponentRegistry
	envSource ports.EnvSource
	reporter  ports.Reporter
	logger    ports.Logger
	appConfig *config.Config
}

func NewDeployEngine(
	registry *ComponentRegistry,
	envSource ports.EnvSource,
	reporter ports.Reporter,
	logger ports.Logger,
	appConfig *config.Config,
) (*DeployEngine, error) {
	if registry == nil {
		return nil, errors.New(errors.CodeInternal, "registry cannot be nil")
	}
	if envSource == nil {
		return nil, errors.New(errors.CodeConfigValidation, "env source cannot be nil")
	}
	if reporter == nil {
		return nil, errors.New(errors.CodeConfigValidation, "reporter cannot be nil")
	}

	return &DeployEngine{
		registry:  registry,
		envSource: envSource,
		reporter:  reporter,
		logger:    logger,
		appConfig: appConfig,
	}, nil
}

func (e *DeployEngine) Run(ctx context.Context) error {
	e.logger.Infof(ctx, "Automator initialized (User: %s, Web: %s)",
		e.appConfig.Project.DeployUser, e.appConfig.Project.WebUser)

	if !e.envSource.Exists() {
		return errors.NewUserFacing(errors.CodeEnvFileMissing,
			"no .env file found in the project root",
			"The automator will not auto-create .env; ensure it is properly configured before deploying.")
	}

	envMap := e.envSource.Load(ctx)
	settings := domain.NewEnvSettings(envMap)
	e.logger.Debugf(ctx, "Parsed %d configuration entries", len(envMap))

	report := &domain.RunReport{
		RunID:       uuid.NewString(),
		StartedAt:   time.Now(),
		ProjectRoot: e.appConfig.Project.Root,
		DeployUser:  e.appConfig.Project.DeployUser,
		WebUser:     e.appConfig.Project.WebUser,
	}

	for _, step := range e.registry.Steps() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		stepLog := e.logger.WithFields(map[string]any{"step": step.Name()})
		stepLog.Debugf(ctx, "Starting step")

		res := step.Run(ctx, settings, report)
		report.Append(res)

		switch res.Status {
		case domain.StepStatusOK:
			stepLog.Infof(ctx, "Step completed: %s", res.Detail)
		case domain.StepStatusSkipped:
			stepLog.Infof(ctx, "Step skipped: %s", res.Detail)
		case domain.StepStatusDegraded:
			stepLog.Warnf(ctx, "Step degraded: %s", res.Detail)
		case domain.StepStatusFailed:
			stepLog.Errorf(ctx, res.Err, "Step failed: %s", res.Detail)
		}
	}

	report.FinishedAt = time.Now()

	if err := e.reporter.Report(ctx, report); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to render run report")
	}

	e.logger.Infof(ctx, "Automator finished (ok: %d, degraded: %d, skipped: %d, failed: %d)",
		report.CountByStatus(domain.StepStatusOK),
		report.CountByStatus(domain.StepStatusDegraded),
		report.CountByStatus(domain.StepStatusSkipped),
		report.CountByStatus(domain.StepStatusFailed))
	return nil
}
