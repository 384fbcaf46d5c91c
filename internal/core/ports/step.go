package ports

import (
	"context"

	"github.com/olusolaa/forge-deploy-automator/internal/core/domain"
)

// Step is one stage of the remediation pipeline. Steps append findings or a
// deployment record to the report as a side effect and return their own
// typed outcome; they must not abort the run.
type Step interface {
	Name() string
	Run(ctx context.Context, env *domain.EnvSettings, report *domain.RunReport) domain.StepResult
}
