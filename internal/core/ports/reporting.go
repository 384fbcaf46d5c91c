package ports

import (
	"context"

	"github.com/olusolaa/forge-deploy-automator/internal/core/domain"
)

type Reporter interface {
	Report(ctx context.Context, report *domain.RunReport) error
}
