package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/olusolaa/forge-deploy-automator/internal/adapters/envfile"
	"github.com/olusolaa/forge-deploy-automator/internal/adapters/execrunner"
	"github.com/olusolaa/forge-deploy-automator/internal/adapters/httpfetch"
	"github.com/olusolaa/forge-deploy-automator/internal/config"
	"github.com/olusolaa/forge-deploy-automator/internal/core/ports"
	"github.com/olusolaa/forge-deploy-automator/internal/core/service"
	"github.com/olusolaa/forge-deploy-automator/internal/errors"
	"github.com/olusolaa/forge-deploy-automator/internal/log"
	jsonreport "github.com/olusolaa/forge-deploy-automator/internal/reporting/json"
	"github.com/olusolaa/forge-deploy-automator/internal/reporting/text"
	"github.com/olusolaa/forge-deploy-automator/internal/steps/audit"
	"github.com/olusolaa/forge-deploy-automator/internal/steps/optimize"
	"github.com/olusolaa/forge-deploy-automator/internal/steps/permissions"
	"github.com/olusolaa/forge-deploy-automator/internal/steps/tools"
)

func BuildApplicationFromViper(ctx context.Context, v *viper.Viper) (*Application, error) {
	cfg := config.DefaultConfig()
	err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigParseError, "failed to unmarshal configuration")
	}

	logCfg := log.Config{Level: cfg.Settings.LogLevel, Format: cfg.Settings.LogFormat}
	logger, err := log.NewLogger(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize logger: %v\n", err)
		return nil, errors.Wrap(err, errors.CodeInternal, "logger initialization failed")
	}
	logger.Infof(ctx, "Logger initialized (Level: %s, Format: %s)", cfg.Settings.LogLevel, cfg.Settings.LogFormat)
	if v.ConfigFileUsed() != "" {
		logger.Debugf(ctx, "Using configuration file: %s", v.ConfigFileUsed())
	} else {
		logger.Debugf(ctx, "No configuration file found, using defaults/env/flags.")
	}

	if err := cfg.Resolve(config.SystemUserLookup); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigReadError, "failed to resolve project root")
	}
	logger.Debugf(ctx, "Resolved project root %s, web user %s", cfg.Project.Root, cfg.Project.WebUser)

	validate := validator.New(validator.WithRequiredStructEnabled())
	err = validate.StructCtx(ctx, cfg)
	if err != nil {
		var errorDetails strings.Builder
		errorDetails.WriteString("Configuration validation failed:")
		validationErrors := err.(validator.ValidationErrors)
		for _, fe := range validationErrors {
			errorDetails.WriteString(fmt.Sprintf("\n - Field '%s': Failed on '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
		}
		wrappedErr := errors.NewUserFacing(errors.CodeConfigValidation, errorDetails.String(), "Please check your configuration file or flags.")
		logger.Errorf(ctx, wrappedErr, "Configuration validation failed")
		return nil, wrappedErr
	}
	logger.Debugf(ctx, "Configuration validated successfully")

	registry := service.NewComponentRegistry()

	runner := execrunner.New(cfg.Project.Root, logger.WithFields(map[string]any{"component": "runner"}))
	fetcher := httpfetch.New(http.DefaultClient)
	envSource := envfile.NewSource(cfg.Project.EnvFilePath(), logger.WithFields(map[string]any{"component": "envfile"}))

	pipelineSteps := []ports.Step{
		audit.NewStep(cfg.Project.PHPBinary, runner, logger.WithFields(map[string]any{"step": audit.StepName})),
		permissions.NewStep(cfg.Project, runner, logger.WithFields(map[string]any{"step": permissions.StepName})),
		optimize.NewLinkStep(cfg.Project.PHPBinary, cfg.Project.PublicPath(), runner, logger.WithFields(map[string]any{"step": optimize.LinkStepName})),
		optimize.NewStep(cfg.Project.PHPBinary, runner, logger.WithFields(map[string]any{"step": optimize.StepName})),
		tools.NewStep(cfg.Project, cfg.Tools, runner, fetcher, logger.WithFields(map[string]any{"step": tools.StepName})),
	}
	for _, step := range pipelineSteps {
		if err := registry.RegisterStep(step); err != nil {
			return nil, err
		}
	}

	var reporter ports.Reporter
	switch cfg.Settings.ReporterType {
	case text.ReporterTypeText:
		reportLog := logger.WithFields(map[string]any{"component": "reporter", "type": text.ReporterTypeText})
		reporter, err = text.NewReporter(text.Config{NoColor: cfg.Settings.NoColor}, reportLog)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize Text reporter")
		}
	case jsonreport.ReporterTypeJSON:
		reportLog := logger.WithFields(map[string]any{"component": "reporter", "type": jsonreport.ReporterTypeJSON})
		reporter, err = jsonreport.NewReporter(jsonreport.Config{}, reportLog)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize JSON reporter")
		}
	default:
		return nil, errors.NewUserFacing(errors.CodeConfigValidation, fmt.Sprintf("unsupported reporter type: %s", cfg.Settings.ReporterType), "Supported: text, json")
	}
	if err := registry.RegisterReporter(cfg.Settings.ReporterType, reporter); err != nil {
		return nil, err
	}

	logger.Debugf(ctx, "Initializing deploy engine")
	engine, err := service.NewDeployEngine(
		registry, envSource, reporter,
		logger.WithFields(map[string]any{"component": "engine"}),
		cfg,
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize deploy engine")
	}

	logger.Infof(ctx, "Application bootstrap complete")
	return NewApplication(engine, logger), nil
}
