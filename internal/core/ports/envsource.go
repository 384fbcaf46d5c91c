package ports

import (
	"context"

	"github.com/olusolaa/forge-deploy-automator/internal/core/domain"
)

// EnvSource provides the persisted flat configuration the pipeline audits.
// Load builds a fresh map on every call and never fails on a missing file;
// Exists backs the one fatal precondition of the run.
type EnvSource interface {
	Exists() bool
	Load(ctx context.Context) domain.EnvMap
}
