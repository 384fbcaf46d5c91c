package app

import (
	"context"

	"github.com/olusolaa/forge-deploy-automator/internal/core/ports"
)

// Application represents the main application that runs the deploy pipeline
type Application struct {
	Engine ports.DeployEngine
	Logger ports.Logger
}

// NewApplication creates a new application instance
func NewApplication(engine ports.DeployEngine, logger ports.Logger) *Application {
	return &Application{
		Engine: engine,
		Logger: logger,
	}
}

// Run executes the remediation-and-provisioning pipeline
func (a *Application) Run(ctx context.Context) error {
	a.Logger.Infof(ctx, "Starting deploy post-processing...")

	err := a.Engine.Run(ctx)

	if err != nil {
		a.Logger.Errorf(ctx, err, "Deploy post-processing failed")
		return err
	}

	a.Logger.Infof(ctx, "Deploy post-processing completed")
	return nil
}
